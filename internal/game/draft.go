package game

import (
	"context"
	"fmt"
	"time"

	"github.com/peterkuimelis/manaclash/internal/log"
)

const (
	DraftRounds      = 6
	DraftOptionCount = 4
	DraftTimerShort  = 15 * time.Second // rounds 1-4
	DraftTimerLong   = 25 * time.Second // miner rounds 5-6
)

// draftCategories fixes the order of the first four rounds. Rounds 5 and 6
// present miners of every kind, with round 6 excluding the kind already
// taken.
var draftCategories = [4]Subtype{SubtypeWall, SubtypeDeflection, SubtypeContinuous, SubtypeProjectile}

// Draft is one player's six-round deck draft. Each round rolls up to four
// options from the current category; picking (or timing out) advances to
// the next round.
type Draft struct {
	Player int

	// Per-round timers, enforced by RunDraft. Zero disables the timer.
	ShortTimeout time.Duration
	LongTimeout  time.Duration

	catalog *Catalog
	rng     *RNG
	logger  log.EventLogger
	round   int // 0-based; == DraftRounds once complete
	options []*Card
	deck    []*Card
	auto    []bool // per-pick: true when the timer picked
}

// NewDraft starts a draft for the given player. A nil logger gets a
// private MemoryLogger.
func NewDraft(player int, catalog *Catalog, rng *RNG, logger log.EventLogger) *Draft {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	dr := &Draft{
		Player:       player,
		ShortTimeout: DraftTimerShort,
		LongTimeout:  DraftTimerLong,
		catalog:      catalog,
		rng:          rng,
		logger:       logger,
	}
	dr.rollOptions()
	return dr
}

// Round returns the 1-based current round, or DraftRounds once complete.
func (dr *Draft) Round() int {
	if dr.Complete() {
		return DraftRounds
	}
	return dr.round + 1
}

// CategoryName names the current round's category for display.
func (dr *Draft) CategoryName() string {
	if dr.round >= 4 {
		return "miner"
	}
	return draftCategories[dr.round].String()
}

// Options returns the current round's choices in presentation order.
func (dr *Draft) Options() []*Card {
	out := make([]*Card, len(dr.options))
	copy(out, dr.options)
	return out
}

// Complete reports whether all six rounds are done.
func (dr *Draft) Complete() bool {
	return dr.round >= DraftRounds
}

// Deck returns the drafted cards in pick order.
func (dr *Draft) Deck() []*Card {
	out := make([]*Card, len(dr.deck))
	copy(out, dr.deck)
	return out
}

// AutoPicks returns, per drafted card, whether the timer made the pick.
func (dr *Draft) AutoPicks() []bool {
	out := make([]bool, len(dr.auto))
	copy(out, dr.auto)
	return out
}

// RoundTimeout returns the timer for the current round.
func (dr *Draft) RoundTimeout() time.Duration {
	if dr.round < 4 {
		return dr.ShortTimeout
	}
	return dr.LongTimeout
}

// Pick takes one of the current options by ID.
func (dr *Draft) Pick(cardID string) error {
	if dr.Complete() {
		return fmt.Errorf("draft already complete")
	}
	for _, c := range dr.options {
		if c.ID == cardID {
			dr.take(c, false)
			return nil
		}
	}
	return fmt.Errorf("card %q is not among this round's options", cardID)
}

// TimeoutPick picks uniformly at random from the current options and flags
// the pick as auto-selected. Returns the card, or nil if already complete.
func (dr *Draft) TimeoutPick() *Card {
	if dr.Complete() {
		return nil
	}
	card := dr.options[dr.rng.Intn(len(dr.options))]
	dr.take(card, true)
	return card
}

func (dr *Draft) take(card *Card, auto bool) {
	dr.deck = append(dr.deck, card)
	dr.auto = append(dr.auto, auto)
	dr.logger.Log(log.NewDraftPickEvent(dr.round+1, dr.Player, card.ID, card.Name, auto))
	dr.round++
	if dr.Complete() {
		dr.options = nil
		dr.logger.Log(log.NewDraftCompleteEvent(dr.Player))
		return
	}
	dr.rollOptions()
}

func (dr *Draft) rollOptions() {
	var pool []*Card
	if dr.round < 4 {
		pool = dr.catalog.BySubtype(draftCategories[dr.round])
	} else {
		taken := make(map[string]bool, len(dr.deck))
		for _, c := range dr.deck {
			taken[c.ID] = true
		}
		for _, c := range dr.catalog.ByType(TypeMiner) {
			if !taken[c.ID] {
				pool = append(pool, c)
			}
		}
	}

	dr.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > DraftOptionCount {
		pool = pool[:DraftOptionCount]
	}
	dr.options = pool
	dr.logger.Log(log.NewDraftRoundStartEvent(dr.round+1, dr.Player, dr.CategoryName()))
}

// RunDraft drives a draft to completion against a controller, enforcing
// the per-round timer. A timed-out, failed, or invalid pick degrades to a
// random auto-pick; only parent-context cancellation aborts the draft.
func RunDraft(ctx context.Context, dr *Draft, pc PlayerController) ([]*Card, error) {
	for !dr.Complete() {
		roundCtx := ctx
		cancel := func() {}
		if t := dr.RoundTimeout(); t > 0 {
			roundCtx, cancel = context.WithTimeout(ctx, t)
		}
		cardID, err := pc.ChooseDraftPick(roundCtx, dr.Player, dr.Round(), dr.CategoryName(), dr.Options())
		cancel()

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil || dr.Pick(cardID) != nil {
			dr.TimeoutPick()
		}
	}
	return dr.Deck(), nil
}

// ValidateDeck enforces the deck contract a completed draft guarantees:
// six cards, exactly one wall, one deflection, one continuous, one
// projectile, and two miners of distinct kinds.
func ValidateDeck(deck []*Card) error {
	if len(deck) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(deck), DeckSize)
	}

	counts := make(map[Subtype]int)
	miners := 0
	for _, c := range deck {
		counts[c.Subtype]++
		if c.Subtype.IsMiner() {
			miners++
		}
	}

	for _, want := range draftCategories {
		if counts[want] != 1 {
			return fmt.Errorf("deck has %d %s cards, want 1", counts[want], want)
		}
	}
	if miners != 2 {
		return fmt.Errorf("deck has %d miners, want 2", miners)
	}
	for sub, n := range counts {
		if sub.IsMiner() && n > 1 {
			return fmt.Errorf("deck has %d %s cards, miner kinds must be distinct", n, sub)
		}
	}
	return nil
}

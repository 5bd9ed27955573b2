package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/peterkuimelis/manaclash/internal/log"
)

// PlayerController is the interface that human (terminal, network) and AI
// players implement.
type PlayerController interface {
	// ChooseSelection asks for this turn's pick: a card ID from playable,
	// or "" to pass. The context expires with the selection timer, and
	// implementations must return promptly when it does.
	ChooseSelection(ctx context.Context, state *GameState, player int, playable []*Card) (string, error)

	// ChooseDraftPick asks for a draft pick from the given options.
	ChooseDraftPick(ctx context.Context, player int, round int, category string, options []*Card) (string, error)

	// Notify sends a game event notification (no response needed).
	// Implementations must not call back into the duel from Notify.
	Notify(ctx context.Context, event log.GameEvent) error
}

// DuelConfig holds configuration for creating a new duel.
type DuelConfig struct {
	Deck0   []*Card // Player 0's drafted deck
	Deck1   []*Card // Player 1's drafted deck
	Names   [2]string
	Catalog *Catalog        // defaults to StandardCatalog
	Logger  log.EventLogger // defaults to a MemoryLogger

	SelectionTimeout time.Duration // per-turn selection timer (0 = untimed)
	MaxTurns         int           // stop after this many turns (0 = default limit)
	HotSeat          bool          // both players share a device, selecting in sequence
}

// Duel orchestrates an entire game between two players. All public input
// methods (SelectCard, LockAction, TimerExpired) are safe to call from
// transport goroutines concurrently and out of order; the duel serializes
// them and resolves each turn exactly once.
type Duel struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	Catalog     *Catalog

	mu       sync.Mutex
	ctx      context.Context
	timeout  time.Duration
	maxTurns int
	hotSeat  bool
	resolved bool // this turn's resolution already fired
}

// NewDuel creates a duel from the given config and player controllers.
// Both decks must satisfy the draft contract and reference only catalog
// cards; violations are hard errors, not playable states.
func NewDuel(cfg DuelConfig, p0, p1 PlayerController) (*Duel, error) {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = StandardCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	for i, deck := range [2][]*Card{cfg.Deck0, cfg.Deck1} {
		if err := ValidateDeck(deck); err != nil {
			return nil, fmt.Errorf("player %d deck: %w", i, err)
		}
		for _, card := range deck {
			if _, err := catalog.ByID(card.ID); err != nil {
				return nil, fmt.Errorf("player %d deck: %w", i, err)
			}
		}
	}

	gs := NewGameState(cfg.Names[0], cfg.Names[1])
	// The whole deck is dealt into the hand: there is no draw step, hands
	// are public, and only selections are secret.
	gs.Players[0].Hand = append([]*Card{}, cfg.Deck0...)
	gs.Players[1].Hand = append([]*Card{}, cfg.Deck1...)

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = MaxTurns
	}

	return &Duel{
		State:       gs,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		Catalog:     catalog,
		ctx:         context.Background(),
		timeout:     cfg.SelectionTimeout,
		maxTurns:    maxTurns,
		hotSeat:     cfg.HotSeat,
	}, nil
}

// Run executes the duel loop until someone wins, the game draws, or the
// context is canceled. Returns the winner (0, 1, or -1 for a draw).
func (d *Duel) Run(ctx context.Context) (int, error) {
	d.ctx = ctx
	gs := d.State
	gs.Phase = GamePhasePlaying

	for !gs.Over {
		if gs.Turn.Number >= d.maxTurns {
			d.mu.Lock()
			gs.Over = true
			gs.Winner = -1
			gs.Phase = GamePhaseOver
			gs.Result = fmt.Sprintf("Turn limit reached (%d turns)", d.maxTurns)
			d.mu.Unlock()
			break
		}
		if err := d.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := ctx.Err(); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// runTurn drives one full turn: selection entry, both players' picks, and
// the resolution that fires once both have locked.
func (d *Duel) runTurn() error {
	d.beginTurn()
	if d.hotSeat {
		return d.runHotSeatSelection()
	}
	return d.runSelection()
}

// beginTurn advances the turn counter, regenerates both players' energy,
// and starts the selection timer.
func (d *Duel) beginTurn() {
	d.mu.Lock()
	defer d.mu.Unlock()

	gs := d.State
	gs.Turn.Number++
	gs.Turn.Phase = PhaseSelection
	gs.Turn.Locked = [2]bool{}
	gs.Turn.Actions = [2]LockedAction{}
	gs.Turn.ActiveSelector = 0
	gs.Turn.TimerStart = time.Now()
	gs.Turn.TimerDuration = d.timeout
	d.resolved = false

	d.log(log.NewTurnStartEvent(gs.Turn.Number))
	for p := 0; p < 2; p++ {
		d.regenerateEnergy(p)
	}
}

// runSelection prompts both controllers concurrently and feeds their
// answers through the public input methods. The selection timer, when it
// fires, auto-locks whoever has not answered.
func (d *Duel) runSelection() error {
	type pick struct {
		player int
		cardID string
		err    error
	}

	selCtx := d.ctx
	cancel := func() {}
	if d.timeout > 0 {
		selCtx, cancel = context.WithTimeout(d.ctx, d.timeout)
	}
	defer cancel()

	results := make(chan pick, 2)
	for p := 0; p < 2; p++ {
		go func(p int) {
			id, err := d.Controllers[p].ChooseSelection(selCtx, d.State, p, d.playableFor(p))
			results <- pick{player: p, cardID: id, err: err}
		}(p)
	}

	doneCh := selCtx.Done()
	for remaining := 2; remaining > 0; {
		select {
		case r := <-results:
			remaining--
			switch {
			case r.err == nil:
				if r.cardID != "" {
					// A rejected pick still locks as a pass below.
					d.SelectCard(r.player, r.cardID)
				}
				d.LockAction(r.player)
			case selCtx.Err() != nil:
				// The timer (or shutdown) interrupted the prompt.
				d.LockAction(r.player)
			default:
				return fmt.Errorf("player %d controller: %w", r.player, r.err)
			}
		case <-doneCh:
			if err := d.ctx.Err(); err != nil {
				return err
			}
			d.TimerExpired()
			doneCh = nil // keep draining results without re-firing
		}
	}
	return nil
}

// runHotSeatSelection prompts the two players in sequence on the shared
// device, each with a fresh timer. ActiveSelector gates whose hand the
// input methods accept.
func (d *Duel) runHotSeatSelection() error {
	for p := 0; p < 2; p++ {
		d.mu.Lock()
		d.State.Turn.ActiveSelector = p
		d.mu.Unlock()

		selCtx := d.ctx
		cancel := func() {}
		if d.timeout > 0 {
			selCtx, cancel = context.WithTimeout(d.ctx, d.timeout)
		}
		id, err := d.Controllers[p].ChooseSelection(selCtx, d.State, p, d.playableFor(p))
		cancel()

		switch {
		case err == nil:
			if id != "" {
				d.SelectCard(p, id)
			}
			d.LockAction(p)
		case selCtx.Err() != nil && d.ctx.Err() == nil:
			d.mu.Lock()
			d.lockPlayer(p, true)
			d.mu.Unlock()
		default:
			if ctxErr := d.ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("player %d controller: %w", p, err)
		}
	}
	return nil
}

// playableFor returns a snapshot of the player's playable cards.
func (d *Duel) playableFor(player int) []*Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.Players[player].PlayableCards()
}

// SelectCard stages the player's pick for this turn. An empty cardID
// clears the selection back to a pass. Returns false with no state change
// when the phase is wrong, the player has locked, the card is not a
// playable card in hand, or (hot-seat) it is not the player's go.
func (d *Duel) SelectCard(player int, cardID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	gs := d.State
	if gs.Over || gs.Phase != GamePhasePlaying || gs.Turn.Phase != PhaseSelection || gs.Turn.Locked[player] {
		return false
	}
	if d.hotSeat && gs.Turn.ActiveSelector != player {
		return false
	}

	p := gs.Players[player]
	if cardID == "" {
		p.Selected = nil
		d.log(log.NewCardSelectedEvent(gs.Turn.Number, player, true))
		return true
	}
	card := p.InHand(cardID)
	if card == nil || !p.IsPlayable(card) {
		return false
	}
	p.Selected = card
	d.log(log.NewCardSelectedEvent(gs.Turn.Number, player, false))
	return true
}

// LockAction commits the player's current selection (or pass) for the
// turn. Once both players are locked the turn resolves. Returns false if
// the player was already locked or the phase is wrong.
func (d *Duel) LockAction(player int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lockPlayer(player, false)
}

// TimerExpired auto-locks every unlocked player with their current
// selection. Safe to call repeatedly; only the first call in a selection
// phase does anything. Returns whether any player was locked.
func (d *Duel) TimerExpired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	gs := d.State
	if gs.Over || gs.Turn.Phase != PhaseSelection {
		return false
	}
	did := false
	for p := 0; p < 2; p++ {
		if !gs.Turn.Locked[p] {
			d.lockPlayer(p, true)
			did = true
		}
	}
	return did
}

// lockPlayer commits one player's action. Caller holds d.mu. The second
// lock of a turn triggers resolution; the resolved flag guards against
// any double fire.
func (d *Duel) lockPlayer(player int, auto bool) bool {
	gs := d.State
	if gs.Over || gs.Turn.Phase != PhaseSelection || gs.Turn.Locked[player] {
		return false
	}

	cardID := ""
	if sel := gs.Players[player].Selected; sel != nil {
		cardID = sel.ID
	}
	gs.Turn.Locked[player] = true
	gs.Turn.Actions[player] = LockedAction{CardID: cardID, Auto: auto, LockedAt: time.Now()}
	d.log(log.NewCardLockedEvent(gs.Turn.Number, player, auto))

	if gs.Turn.Locked[0] && gs.Turn.Locked[1] && !d.resolved {
		d.resolved = true
		d.resolveTurn()
	}
	return true
}

// resolveTurn reveals both actions and walks the fixed resolution order:
// walls, deflections, miners, deflection-miner fields, attacks, repairs,
// decay, remaining payouts, victory, cleanup. Caller holds d.mu; nothing
// interrupts the pipeline once it starts.
func (d *Duel) resolveTurn() {
	gs := d.State
	turn := gs.Turn.Number

	gs.Turn.Phase = PhaseReveal
	d.log(log.NewPhaseChangeEvent(turn, gs.Turn.Phase.String()))

	// Reveal both selections. Played cards leave the hand now, whether or
	// not their placement later succeeds.
	var plays [2]*Card
	for p := 0; p < 2; p++ {
		act := gs.Turn.Actions[p]
		if act.IsPass() {
			d.log(log.NewCardRevealedEvent(turn, p, "", ""))
			continue
		}
		card := gs.Players[p].InHand(act.CardID)
		if card == nil {
			panic(fmt.Sprintf("player %d locked card %q that is not in hand", p, act.CardID))
		}
		plays[p] = card
		gs.Players[p].RemoveFromHand(card.ID)
		d.log(log.NewCardRevealedEvent(turn, p, card.ID, card.Name))
	}

	gs.Turn.Phase = PhaseResolution
	d.log(log.NewPhaseChangeEvent(turn, gs.Turn.Phase.String()))

	// 1. Walls. A placement that has become illegal is a silent no-op:
	// the card was consumed at reveal but no energy is spent.
	for p := 0; p < 2; p++ {
		if c := plays[p]; c != nil && c.Subtype == SubtypeWall {
			d.placeWall(p, c)
		}
	}

	// 2. Deflections always succeed.
	for p := 0; p < 2; p++ {
		if c := plays[p]; c != nil && c.Subtype == SubtypeDeflection {
			if d.spendEnergy(p, c) {
				gs.Players[p].ActiveDeflection = true
			}
		}
	}

	// 3. Miners.
	for p := 0; p < 2; p++ {
		if c := plays[p]; c != nil && c.Type == TypeMiner {
			d.placeMiner(p, c)
		}
	}

	// 4. A deflection-miner due to pay out raises its field now, ahead of
	// the attacks it must block. Its countdown still resets in step 8.
	for p := 0; p < 2; p++ {
		pl := gs.Players[p]
		if pl.HasDeflectionMiner() && pl.Miner.WillPayoutThisTurn(turn) {
			pl.ActiveDeflectionMiner = true
			card := d.Catalog.MustByID(pl.Miner.CardID)
			d.log(log.NewMinerPayoutEvent(turn, p, pl.Miner.CardID, card.Name, "deflection field raised"))
		}
	}

	// 5. Attacks. Both resolve regardless of HP so the same turn can
	// knock out both bases.
	for p := 0; p < 2; p++ {
		if c := plays[p]; c != nil && c.Type == TypeAttack {
			if d.spendEnergy(p, c) {
				d.resolveAttack(p, c)
			}
		}
	}

	// 6. Repair payouts run before decay so a repair can save a wall that
	// decay would finish off.
	for p := 0; p < 2; p++ {
		pl := gs.Players[p]
		if pl.Miner != nil && pl.Miner.Kind == SubtypeRepairMiner && d.tickMiner(p) {
			card := d.Catalog.MustByID(pl.Miner.CardID)
			d.log(log.NewMinerPayoutEvent(turn, p, pl.Miner.CardID, card.Name, "wall restored"))
			d.repairWall(p, pl.Miner.CardID)
		}
	}

	// 7. Wall decay.
	for p := 0; p < 2; p++ {
		d.applyDecay(p)
	}

	// 8. Remaining miner payouts.
	for p := 0; p < 2; p++ {
		pl := gs.Players[p]
		m := pl.Miner
		if m == nil || m.Kind == SubtypeRepairMiner || !d.tickMiner(p) {
			continue
		}
		switch m.Kind {
		case SubtypeDeflectionMiner:
			// Field already raised in step 4; this tick only resets.
		case SubtypeProjectileMiner, SubtypeContinuousMiner:
			card := d.Catalog.MustByID(m.CardID)
			d.log(log.NewMinerPayoutEvent(turn, p, m.CardID, card.Name, "free attack"))
			sub := SubtypeProjectile
			if m.Kind == SubtypeContinuousMiner {
				sub = SubtypeContinuous
			}
			d.resolveAttack(p, &Card{
				ID:      m.CardID,
				Name:    card.Name,
				Element: m.Element,
				Type:    TypeAttack,
				Subtype: sub,
				Power:   m.Power,
			})
		}
	}

	// 9. Victory. On a result the turn stops here.
	if gs.CheckVictory() {
		gs.Phase = GamePhaseOver
		if gs.DoubleKO {
			d.log(log.NewDoubleKOEvent(turn))
		} else {
			d.log(log.NewVictoryEvent(turn, gs.Winner, gs.Result))
		}
		return
	}

	// 10. One-turn flags and selections clear.
	gs.ResetTurnFlags()

	// 11. Record the turn and end it.
	gs.History = append(gs.History, TurnRecord{Turn: turn, Actions: gs.Turn.Actions})
	gs.Turn.Phase = PhaseTurnEnd
	d.log(log.NewTurnEndEvent(turn))
}

// log emits a game event through the logger and notifies both players.
func (d *Duel) log(event log.GameEvent) {
	d.Logger.Log(event)
	for i := 0; i < 2; i++ {
		_ = d.Controllers[i].Notify(d.ctx, event)
	}
}

package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/manaclash/internal/log"
)

func TestDraftRoundProgression(t *testing.T) {
	dr := NewDraft(0, StandardCatalog(), NewRNG(7), nil)

	wantCategories := []string{"wall", "deflection", "continuous", "projectile"}
	for round, want := range wantCategories {
		if dr.Round() != round+1 {
			t.Fatalf("Round() = %d, want %d", dr.Round(), round+1)
		}
		if dr.CategoryName() != want {
			t.Fatalf("round %d category = %q, want %q", round+1, dr.CategoryName(), want)
		}
		if dr.RoundTimeout() != DraftTimerShort {
			t.Errorf("round %d timeout = %v, want %v", round+1, dr.RoundTimeout(), DraftTimerShort)
		}
		opts := dr.Options()
		if len(opts) != DraftOptionCount {
			t.Fatalf("round %d options = %d, want %d", round+1, len(opts), DraftOptionCount)
		}
		for _, c := range opts {
			if c.Subtype.String() != want {
				t.Errorf("round %d offered %s (%s), want only %s cards", round+1, c.ID, c.Subtype, want)
			}
		}
		if err := dr.Pick(opts[0].ID); err != nil {
			t.Fatalf("round %d pick: %v", round+1, err)
		}
	}

	// Rounds 5 and 6 offer miners, round 6 minus the kind already taken.
	if dr.CategoryName() != "miner" {
		t.Fatalf("round 5 category = %q, want miner", dr.CategoryName())
	}
	if dr.RoundTimeout() != DraftTimerLong {
		t.Errorf("round 5 timeout = %v, want %v", dr.RoundTimeout(), DraftTimerLong)
	}
	opts := dr.Options()
	if len(opts) != 4 {
		t.Fatalf("round 5 options = %d, want all 4 miners", len(opts))
	}
	first := opts[0]
	if !first.Subtype.IsMiner() {
		t.Fatalf("round 5 offered %s, want a miner", first.ID)
	}
	if err := dr.Pick(first.ID); err != nil {
		t.Fatalf("round 5 pick: %v", err)
	}

	opts = dr.Options()
	if len(opts) != 3 {
		t.Fatalf("round 6 options = %d, want the 3 remaining miners", len(opts))
	}
	for _, c := range opts {
		if c.ID == first.ID {
			t.Errorf("round 6 re-offered %s", c.ID)
		}
	}
	if err := dr.Pick(opts[0].ID); err != nil {
		t.Fatalf("round 6 pick: %v", err)
	}

	if !dr.Complete() {
		t.Fatal("draft not complete after six picks")
	}
	deck := dr.Deck()
	if len(deck) != DeckSize {
		t.Fatalf("deck = %d cards, want %d", len(deck), DeckSize)
	}
	if err := ValidateDeck(deck); err != nil {
		t.Errorf("drafted deck invalid: %v", err)
	}
	if err := dr.Pick(deck[0].ID); err == nil {
		t.Error("pick accepted after completion")
	}
	if dr.TimeoutPick() != nil {
		t.Error("timeout pick produced a card after completion")
	}
}

func TestDraftRejectsOffMenuPick(t *testing.T) {
	dr := NewDraft(0, StandardCatalog(), NewRNG(1), nil)

	// Round 1 offers walls; a continuous attack is off the menu.
	if err := dr.Pick("fire-continuous"); err == nil {
		t.Error("accepted a pick outside the round's options")
	}
	if dr.Round() != 1 {
		t.Errorf("failed pick advanced the round to %d", dr.Round())
	}
	if len(dr.Deck()) != 0 {
		t.Errorf("failed pick added to the deck: %v", dr.Deck())
	}
}

func TestDraftTimeoutPickIsFlaggedAuto(t *testing.T) {
	dr := NewDraft(0, StandardCatalog(), NewRNG(3), nil)

	card := dr.TimeoutPick()
	if card == nil || card.Subtype != SubtypeWall {
		t.Fatalf("timeout pick = %v, want a wall", card)
	}
	if err := dr.Pick(dr.Options()[0].ID); err != nil {
		t.Fatalf("round 2 pick: %v", err)
	}

	auto := dr.AutoPicks()
	if len(auto) != 2 || !auto[0] || auto[1] {
		t.Errorf("auto flags = %v, want [true false]", auto)
	}
}

func TestDraftSeedDeterminism(t *testing.T) {
	run := func(seed int64) ([]string, [][]string) {
		dr := NewDraft(0, StandardCatalog(), NewRNG(seed), nil)
		var rounds [][]string
		for !dr.Complete() {
			var ids []string
			for _, c := range dr.Options() {
				ids = append(ids, c.ID)
			}
			rounds = append(rounds, ids)
			if err := dr.Pick(dr.Options()[0].ID); err != nil {
				t.Fatalf("pick: %v", err)
			}
		}
		var deck []string
		for _, c := range dr.Deck() {
			deck = append(deck, c.ID)
		}
		return deck, rounds
	}

	deckA, roundsA := run(42)
	deckB, roundsB := run(42)

	for r := range roundsA {
		for i := range roundsA[r] {
			if roundsA[r][i] != roundsB[r][i] {
				t.Errorf("round %d option %d differs: %s vs %s", r+1, i, roundsA[r][i], roundsB[r][i])
			}
		}
	}
	for i := range deckA {
		if deckA[i] != deckB[i] {
			t.Errorf("deck[%d] differs: %s vs %s", i, deckA[i], deckB[i])
		}
	}
}

func TestRunDraftDegradesBadPicksToAuto(t *testing.T) {
	pc := NewScriptedController(t, "P1")
	for i := 0; i < DraftRounds; i++ {
		pc.AddDraftPick("bogus")
	}

	dr := NewDraft(0, StandardCatalog(), NewRNG(9), nil)
	deck, err := RunDraft(context.Background(), dr, pc)
	if err != nil {
		t.Fatalf("RunDraft: %v", err)
	}
	if err := ValidateDeck(deck); err != nil {
		t.Errorf("deck invalid: %v", err)
	}
	for i, auto := range dr.AutoPicks() {
		if !auto {
			t.Errorf("pick %d not flagged auto after a bogus answer", i+1)
		}
	}
}

func TestRunDraftStopsOnParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dr := NewDraft(0, StandardCatalog(), NewRNG(9), nil)
	if _, err := RunDraft(ctx, dr, NewScriptedController(t, "P1")); err == nil {
		t.Error("RunDraft ignored a canceled context")
	}
}

func TestDraftEmitsEvents(t *testing.T) {
	logger := log.NewMemoryLogger()
	dr := NewDraft(1, StandardCatalog(), NewRNG(11), logger)
	for !dr.Complete() {
		if err := dr.Pick(dr.Options()[0].ID); err != nil {
			t.Fatalf("pick: %v", err)
		}
	}

	if got := len(logger.EventsOfType(log.EventDraftRoundStart)); got != DraftRounds {
		t.Errorf("DraftRoundStart events = %d, want %d", got, DraftRounds)
	}
	if got := len(logger.EventsOfType(log.EventDraftPick)); got != DraftRounds {
		t.Errorf("DraftPick events = %d, want %d", got, DraftRounds)
	}
	if got := len(logger.EventsOfType(log.EventDraftComplete)); got != 1 {
		t.Errorf("DraftComplete events = %d, want 1", got)
	}
}

func TestValidateDeckContract(t *testing.T) {
	if err := ValidateDeck(fireDeck()); err != nil {
		t.Errorf("fire deck rejected: %v", err)
	}

	if err := ValidateDeck(fireDeck()[:5]); err == nil {
		t.Error("five-card deck accepted")
	}

	// Two continuous attacks, no projectile.
	twoContinuous := []*Card{MagmaRampart(), EmberVeil(), InfernoRay(), MaelstromJet(), AegisTurbine(), MasonGolem()}
	if err := ValidateDeck(twoContinuous); err == nil {
		t.Error("deck without a projectile accepted")
	}

	// Two miners of the same kind.
	twinMiners := []*Card{MagmaRampart(), EmberVeil(), InfernoRay(), CinderBolt(), AegisTurbine(), AegisTurbine()}
	if err := ValidateDeck(twinMiners); err == nil {
		t.Error("deck with twin miner kinds accepted")
	}
}

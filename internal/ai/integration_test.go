package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

func draftDeck(t *testing.T, seed int64, player int, c *Controller) []*game.Card {
	t.Helper()
	dr := game.NewDraft(player, game.StandardCatalog(), game.NewRNG(seed), nil)
	deck, err := game.RunDraft(context.Background(), dr, c)
	if err != nil {
		t.Fatalf("draft for player %d: %v", player, err)
	}
	if err := game.ValidateDeck(deck); err != nil {
		t.Fatalf("player %d drafted an invalid deck: %v", player, err)
	}
	return deck
}

func TestAllMatchupsRunToCompletion(t *testing.T) {
	tiers := []Difficulty{Easy, Medium, Hard}
	for i, d0 := range tiers {
		for j, d1 := range tiers {
			t.Run(fmt.Sprintf("%s vs %s", d0, d1), func(t *testing.T) {
				seed := int64(31 + (i*3+j)*100)
				c0 := newTestController(d0, seed+10)
				c1 := newTestController(d1, seed+11)
				deck0 := draftDeck(t, seed, 0, c0)
				deck1 := draftDeck(t, seed+1, 1, c1)

				logger := log.NewMemoryLogger()
				duel, err := game.NewDuel(game.DuelConfig{
					Deck0:  deck0,
					Deck1:  deck1,
					Names:  [2]string{"A", "B"},
					Logger: logger,
				}, c0, c1)
				if err != nil {
					t.Fatalf("NewDuel: %v", err)
				}

				winner, err := duel.Run(context.Background())
				if err != nil {
					t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
					t.Fatalf("Run: %v", err)
				}
				if winner < -1 || winner > 1 {
					t.Errorf("winner = %d", winner)
				}
				if !duel.State.Over || duel.State.Result == "" {
					t.Errorf("duel not concluded: over=%v result=%q", duel.State.Over, duel.State.Result)
				}
				if duel.State.Turn.Number < 1 {
					t.Errorf("no turns played")
				}
				t.Logf("%s vs %s: %s (turn %d)", d0, d1, duel.State.Result, duel.State.Turn.Number)
			})
		}
	}
}

func TestSameSeedsReproduceTheSameGame(t *testing.T) {
	// Hot-seat prompts the two controllers in sequence, so the event order
	// is fully deterministic and the logs can be compared byte for byte.
	play := func() (int, string) {
		seed := int64(99)
		c0 := newTestController(Hard, seed+10)
		c1 := newTestController(Medium, seed+11)
		deck0 := draftDeck(t, seed, 0, c0)
		deck1 := draftDeck(t, seed+1, 1, c1)

		logger := log.NewMemoryLogger()
		duel, err := game.NewDuel(game.DuelConfig{
			Deck0:   deck0,
			Deck1:   deck1,
			Logger:  logger,
			HotSeat: true,
		}, c0, c1)
		if err != nil {
			t.Fatalf("NewDuel: %v", err)
		}
		winner, err := duel.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return winner, log.FormatAll(logger.Events())
	}

	winnerA, logA := play()
	winnerB, logB := play()
	if winnerA != winnerB {
		t.Errorf("winners differ: %d vs %d", winnerA, winnerB)
	}
	if logA != logB {
		t.Errorf("event logs differ between identical seeds (%d vs %d bytes)", len(logA), len(logB))
	}
}

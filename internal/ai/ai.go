// Package ai implements the three computer opponents. Each tier drives the
// same playable-cards query with a different decision rule; none of them
// passes while anything is playable.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

// Difficulty selects which decision rule drives the controller.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a flag value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium, or hard)", s)
	}
}

// Params tunes a tier. Chances are integer percentages (0-100); delays
// pace the controller so a human opponent sees it "think".
type Params struct {
	Name string

	// Easy: chance of following the worst-pick checklist instead of the
	// cheap-first fallback.
	WorstPickChance int

	// Medium: category weights for the fallback roll. Must sum to <= 100;
	// the remainder falls through to uniform random.
	AttackChance  int
	DefenseChance int
	MinerChance   int

	// Hard: chance of taking the runner-up score instead of the best.
	RunnerUpChance int

	DelayMinMS int
	DelayMaxMS int
}

// DefaultParams returns the stock tuning for a tier.
func DefaultParams(d Difficulty) Params {
	switch d {
	case Easy:
		return Params{
			Name:            "easy",
			WorstPickChance: 80,
			DelayMinMS:      400,
			DelayMaxMS:      1200,
		}
	case Medium:
		return Params{
			Name:          "medium",
			AttackChance:  45,
			DefenseChance: 30,
			MinerChance:   20,
			DelayMinMS:    600,
			DelayMaxMS:    1600,
		}
	default:
		return Params{
			Name:           "hard",
			RunnerUpChance: 10,
			DelayMinMS:     800,
			DelayMaxMS:     2000,
		}
	}
}

// Controller is a computer player. It implements game.PlayerController.
type Controller struct {
	difficulty Difficulty
	params     Params
	rng        *game.RNG
}

// New returns a controller with stock params and its own seeded RNG.
func New(d Difficulty, seed int64) *Controller {
	return NewWithParams(d, DefaultParams(d), game.NewRNG(seed))
}

// NewWithParams returns a controller with explicit tuning. Tests zero the
// delays and pin the RNG here.
func NewWithParams(d Difficulty, p Params, rng *game.RNG) *Controller {
	return &Controller{difficulty: d, params: p, rng: rng}
}

func (c *Controller) Difficulty() Difficulty {
	return c.difficulty
}

// ChooseSelection picks this turn's card. Returns "" (pass) only when
// nothing is playable.
func (c *Controller) ChooseSelection(ctx context.Context, state *game.GameState, player int, playable []*game.Card) (string, error) {
	if len(playable) == 0 {
		return "", nil
	}
	c.thinkDelay(ctx)

	var card *game.Card
	switch c.difficulty {
	case Easy:
		card = c.pickEasy(state, player, playable)
	case Medium:
		card = c.pickMedium(state, player, playable)
	default:
		card = c.pickHard(state, player, playable)
	}
	return card.ID, nil
}

// ChooseDraftPick drafts by tier: easy at random, medium cheap-first, hard
// by value.
func (c *Controller) ChooseDraftPick(ctx context.Context, player int, round int, category string, options []*game.Card) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no draft options in round %d", round)
	}
	c.thinkDelay(ctx)

	switch c.difficulty {
	case Easy:
		return options[c.rng.Intn(len(options))].ID, nil
	case Medium:
		best := options[0]
		for _, o := range options[1:] {
			if o.Cost < best.Cost {
				best = o
			}
		}
		return best.ID, nil
	default:
		best := options[0]
		for _, o := range options[1:] {
			if draftValue(o) > draftValue(best) {
				best = o
			}
		}
		return best.ID, nil
	}
}

// draftValue scores a draft option for the hard tier: raw stats plus a
// preference order among the miner kinds (their stats barely differ).
func draftValue(card *game.Card) int {
	v := card.Power*2 - card.Cost
	switch card.Subtype {
	case game.SubtypeProjectileMiner:
		v += 4
	case game.SubtypeRepairMiner:
		v += 3
	case game.SubtypeDeflectionMiner:
		v += 2
	case game.SubtypeContinuousMiner:
		v += 1
	}
	return v
}

// Notify implements game.PlayerController; the AI does not watch events.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// thinkDelay sleeps a random interval inside the configured window,
// bailing out early if the selection timer cancels the context.
func (c *Controller) thinkDelay(ctx context.Context) {
	if c.params.DelayMaxMS <= 0 {
		return
	}
	span := c.params.DelayMaxMS - c.params.DelayMinMS
	ms := c.params.DelayMinMS
	if span > 0 {
		ms += c.rng.Intn(span + 1)
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

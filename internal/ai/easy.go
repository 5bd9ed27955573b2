package ai

import "github.com/peterkuimelis/manaclash/internal/game"

// The easy tier is built to lose. With high probability it walks a
// checklist of the worst available moves; otherwise it plays cheap-first.
// The anti-optimality is deliberate tuning for new players, not an
// accident of weak heuristics.

const (
	easyCriticalHP    = 5
	easyLowHP         = 8
	easyHighHP        = 15
	easyStarvedEnergy = 4
)

func (c *Controller) pickEasy(state *game.GameState, player int, playable []*game.Card) *game.Card {
	if !c.rng.Chance(c.params.WorstPickChance) {
		return cheapest(playable)
	}

	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	// Worst-pick checklist, in priority order.

	// Throw the weakest attack into a standing wall.
	if opp.HasWall() {
		if card := weakestAttack(playable); card != nil {
			return card
		}
	}

	// Build economy while about to die.
	if me.HP <= easyCriticalHP {
		if card := firstOfType(playable, game.TypeMiner); card != nil {
			return card
		}
	}

	// Splurge while energy-starved.
	if me.Energy <= easyStarvedEnergy {
		if card := mostExpensive(playable); card != nil && card.Cost > 0 {
			return card
		}
	}

	// Attack instead of defending at low HP.
	if me.HP <= easyLowHP {
		if card := firstOfType(playable, game.TypeAttack); card != nil {
			return card
		}
	}

	// Wall up at full health.
	if me.HP >= easyHighHP {
		if card := firstOfSubtype(playable, game.SubtypeWall); card != nil {
			return card
		}
	}

	return playable[c.rng.Intn(len(playable))]
}

func cheapest(cards []*game.Card) *game.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Cost < best.Cost {
			best = c
		}
	}
	return best
}

func mostExpensive(cards []*game.Card) *game.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Cost > best.Cost {
			best = c
		}
	}
	return best
}

func weakestAttack(cards []*game.Card) *game.Card {
	var best *game.Card
	for _, c := range cards {
		if c.Type != game.TypeAttack {
			continue
		}
		if best == nil || c.Power < best.Power {
			best = c
		}
	}
	return best
}

func firstOfType(cards []*game.Card, t game.CardType) *game.Card {
	for _, c := range cards {
		if c.Type == t {
			return c
		}
	}
	return nil
}

func firstOfSubtype(cards []*game.Card, s game.Subtype) *game.Card {
	for _, c := range cards {
		if c.Subtype == s {
			return c
		}
	}
	return nil
}

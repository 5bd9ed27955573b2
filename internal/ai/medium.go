package ai

import "github.com/peterkuimelis/manaclash/internal/game"

// The medium tier plays an ordered heuristic: hunt miners, wall up when
// exposed, finish weakened walls, otherwise roll a weighted category.

const (
	mediumLowHP          = 10
	mediumWallNearlyGone = 3
)

func (c *Controller) pickMedium(state *game.GameState, player int, playable []*game.Card) *game.Card {
	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	// An enemy miner compounds every turn it lives; answer it first,
	// preferring projectiles since they reach the base past any wall.
	if opp.HasMiner() {
		if card := strongestOfSubtype(playable, game.SubtypeProjectile); card != nil {
			return card
		}
		if card := strongestAttack(playable); card != nil {
			return card
		}
	}

	// Exposed and hurting: wall up.
	if !me.HasWall() && me.HP <= mediumLowHP {
		if card := firstOfSubtype(playable, game.SubtypeWall); card != nil {
			return card
		}
	}

	// Their wall is nearly gone: grind it down and overflow.
	if opp.HasWall() && opp.Wall.HP <= mediumWallNearlyGone {
		if card := strongestOfSubtype(playable, game.SubtypeContinuous); card != nil {
			return card
		}
	}

	// Weighted category roll.
	roll := c.rng.Intn(100)
	switch {
	case roll < c.params.AttackChance:
		if card := c.randomOfType(playable, game.TypeAttack); card != nil {
			return card
		}
	case roll < c.params.AttackChance+c.params.DefenseChance:
		if card := c.randomOfType(playable, game.TypeDefense); card != nil {
			return card
		}
	case roll < c.params.AttackChance+c.params.DefenseChance+c.params.MinerChance:
		if card := c.randomOfType(playable, game.TypeMiner); card != nil {
			return card
		}
	}

	return playable[c.rng.Intn(len(playable))]
}

func (c *Controller) randomOfType(cards []*game.Card, t game.CardType) *game.Card {
	var pool []*game.Card
	for _, card := range cards {
		if card.Type == t {
			pool = append(pool, card)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[c.rng.Intn(len(pool))]
}

func strongestAttack(cards []*game.Card) *game.Card {
	var best *game.Card
	for _, c := range cards {
		if c.Type != game.TypeAttack {
			continue
		}
		if best == nil || c.Power > best.Power {
			best = c
		}
	}
	return best
}

func strongestOfSubtype(cards []*game.Card, s game.Subtype) *game.Card {
	var best *game.Card
	for _, c := range cards {
		if c.Subtype != s {
			continue
		}
		if best == nil || c.Power > best.Power {
			best = c
		}
	}
	return best
}

package ai

import "github.com/peterkuimelis/manaclash/internal/game"

// The hard tier scores every playable card on weighted features and plays
// the top score, with a small chance of the runner-up so it stays harder
// to read.

const (
	hardCriticalHP = 5
	hardOppLowHP   = 6
	hardLowHP      = 8
	hardHighHP     = 15
	hardEarlyTurns = 4
)

func (c *Controller) pickHard(state *game.GameState, player int, playable []*game.Card) *game.Card {
	best, second := -1, -1
	var bestScore, secondScore int
	for i, card := range playable {
		s := c.scoreCard(state, player, card)
		if best == -1 || s > bestScore {
			second, secondScore = best, bestScore
			best, bestScore = i, s
		} else if second == -1 || s > secondScore {
			second, secondScore = i, s
		}
	}
	if second >= 0 && c.rng.Chance(c.params.RunnerUpChance) {
		return playable[second]
	}
	return playable[best]
}

func (c *Controller) scoreCard(state *game.GameState, player int, card *game.Card) int {
	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]
	turn := state.Turn.Number

	var score int
	switch card.Type {
	case game.TypeAttack:
		score = 40 + card.Power*3
		if card.Subtype == game.SubtypeProjectile {
			if opp.HasWall() {
				score += 25
			}
			if opp.HasMiner() {
				// Reaches the base over the wall, so it also blasts the miner.
				score += 30
			}
		} else {
			if opp.HasWall() {
				if card.Power >= opp.Wall.HP {
					score += 20
				} else {
					score -= 15
				}
			}
			if opp.HasMiner() && (!opp.HasWall() || card.Power > opp.Wall.HP) {
				score += 25
			}
		}
		if opp.HP <= hardOppLowHP {
			score += 25
		}
		if me.HP <= hardLowHP {
			score -= 10
		}

	case game.TypeDefense:
		score = 30
		if card.Subtype == game.SubtypeWall {
			if me.HP <= hardLowHP {
				score += 30
			}
			if me.HP >= hardHighHP {
				score -= 10
			}
		} else {
			// Hands are public: a deflection is worth holding up exactly
			// when the opponent can actually throw a projectile.
			if oppCanPlaySubtype(opp, game.SubtypeProjectile) {
				score += 25
			}
			if me.HP <= hardLowHP {
				score += 15
			}
		}

	default:
		score = 35
		if turn <= hardEarlyTurns {
			score += 15
		}
		if me.HP <= hardCriticalHP {
			score -= 30
		}
	}

	// Expensive cards must earn their keep.
	score -= card.Cost * 3
	return score
}

func oppCanPlaySubtype(p *game.Player, s game.Subtype) bool {
	for _, c := range p.Hand {
		if c.Subtype == s && p.CanAfford(c) {
			return true
		}
	}
	return false
}

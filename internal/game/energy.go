package game

import "github.com/peterkuimelis/manaclash/internal/log"

// CanAfford reports whether the player has enough energy for the card.
func (p *Player) CanAfford(card *Card) bool {
	return p.Energy >= card.Cost
}

// IsPlayable reports whether the card can be selected right now:
// affordable, and not a second copy of a singleton board piece (at most
// one wall and one miner stand at a time).
func (p *Player) IsPlayable(card *Card) bool {
	if !p.CanAfford(card) {
		return false
	}
	if card.Subtype == SubtypeWall && p.HasWall() {
		return false
	}
	if card.Type == TypeMiner && p.HasMiner() {
		return false
	}
	return true
}

// PlayableCards returns the in-hand cards the player could select this
// turn, in hand order.
func (p *Player) PlayableCards() []*Card {
	var out []*Card
	for _, c := range p.Hand {
		if p.IsPlayable(c) {
			out = append(out, c)
		}
	}
	return out
}

// spendEnergy deducts the card's cost if affordable and returns whether it
// did. Energy never goes negative; an unaffordable spend changes nothing.
func (d *Duel) spendEnergy(player int, card *Card) bool {
	p := d.State.Players[player]
	if !p.CanAfford(card) {
		return false
	}
	before := p.Energy
	p.Energy -= card.Cost
	d.log(log.NewEnergySpentEvent(d.State.Turn.Number, player, card.ID, card.Name, card.Cost, before, p.Energy))
	return true
}

// regenerateEnergy applies the start-of-turn gain: +2 entering odd turns,
// +3 entering even turns, clamped to the cap. Overflow is discarded, not
// banked.
func (d *Duel) regenerateEnergy(player int) {
	p := d.State.Players[player]
	gain := RegenOdd
	if d.State.Turn.Number%2 == 0 {
		gain = RegenEven
	}
	before := p.Energy
	p.Energy += gain
	if p.Energy > p.MaxEnergy {
		p.Energy = p.MaxEnergy
	}
	d.log(log.NewEnergyGainedEvent(d.State.Turn.Number, player, gain, before, p.Energy, "regen"))
}

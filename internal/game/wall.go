package game

import "github.com/peterkuimelis/manaclash/internal/log"

// placeWall erects the card's wall at full strength. Returns false with no
// energy spent when a wall already stands or the card is not a wall.
func (d *Duel) placeWall(player int, card *Card) bool {
	p := d.State.Players[player]
	if card.Subtype != SubtypeWall || p.HasWall() {
		return false
	}
	if !d.spendEnergy(player, card) {
		return false
	}
	p.Wall = &WallInstance{
		CardID:     card.ID,
		Element:    card.Element,
		HP:         card.Power,
		MaxHP:      card.Power,
		TurnPlaced: d.State.Turn.Number,
	}
	d.log(log.NewWallPlacedEvent(d.State.Turn.Number, player, card.ID, card.Name, card.Power))
	return true
}

// damageWall sends attack damage into the defender's wall and returns the
// overflow that continues to the base. With no wall the full amount passes
// straight through.
func (d *Duel) damageWall(defender int, attackCard *Card, amount int) int {
	p := d.State.Players[defender]
	if p.Wall == nil || amount <= 0 {
		return amount
	}
	absorbed := amount
	if absorbed > p.Wall.HP {
		absorbed = p.Wall.HP
	}
	before := p.Wall.HP
	p.Wall.HP -= absorbed
	d.log(log.NewWallDamagedEvent(d.State.Turn.Number, defender, attackCard.ID, attackCard.Name, absorbed, before, p.Wall.HP))
	if p.Wall.HP <= 0 {
		d.destroyWall(defender, "combat")
	}
	return amount - absorbed
}

// repairWall restores the wall to full strength. No-op without a wall or
// with an undamaged one.
func (d *Duel) repairWall(player int, minerCardID string) {
	p := d.State.Players[player]
	if p.Wall == nil || p.Wall.HP >= p.Wall.MaxHP {
		return
	}
	before := p.Wall.HP
	p.Wall.HP = p.Wall.MaxHP
	d.log(log.NewWallRepairedEvent(d.State.Turn.Number, player, minerCardID, p.Wall.HP-before, before, p.Wall.HP))
}

// applyDecay erodes the wall by one point at turn end, destroying it at
// zero. Repairs run earlier in the same turn, so a fresh repair outlives
// the decay that follows it.
func (d *Duel) applyDecay(player int) {
	p := d.State.Players[player]
	if p.Wall == nil {
		return
	}
	before := p.Wall.HP
	p.Wall.HP -= WallDecay
	if p.Wall.HP < 0 {
		p.Wall.HP = 0
	}
	d.log(log.NewWallDecayedEvent(d.State.Turn.Number, player, WallDecay, before, p.Wall.HP))
	if p.Wall.HP <= 0 {
		d.destroyWall(player, "decay")
	}
}

// destroyWall removes the wall and records why.
func (d *Duel) destroyWall(player int, reason string) {
	p := d.State.Players[player]
	if p.Wall == nil {
		return
	}
	card := d.Catalog.MustByID(p.Wall.CardID)
	d.log(log.NewWallDestroyedEvent(d.State.Turn.Number, player, p.Wall.CardID, card.Name, reason))
	p.Wall = nil
}

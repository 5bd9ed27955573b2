package game

import "github.com/peterkuimelis/manaclash/internal/log"

// IsProtected reports whether the miner still has its placement shield:
// it cannot be killed on the turn it was deployed.
func (m *MinerInstance) IsProtected(turn int) bool {
	return m.TurnPlaced == turn
}

// WillPayoutThisTurn reports whether the miner's countdown will reach zero
// this turn. Miners never tick on their placement turn.
func (m *MinerInstance) WillPayoutThisTurn(turn int) bool {
	return m.Countdown == 1 && m.TurnPlaced != turn
}

// placeMiner deploys the card's miner. Returns false with no energy spent
// when a miner is already deployed or the card is not a miner.
func (d *Duel) placeMiner(player int, card *Card) bool {
	p := d.State.Players[player]
	if card.Type != TypeMiner || p.HasMiner() {
		return false
	}
	if !d.spendEnergy(player, card) {
		return false
	}
	interval := card.Subtype.MinerInterval()
	p.Miner = &MinerInstance{
		CardID:     card.ID,
		Kind:       card.Subtype,
		Element:    card.Element,
		Countdown:  interval,
		Interval:   interval,
		Power:      card.Power,
		TurnPlaced: d.State.Turn.Number,
	}
	d.log(log.NewMinerPlacedEvent(d.State.Turn.Number, player, card.ID, card.Name, interval))
	return true
}

// tickMiner advances the player's miner by one turn. At zero the countdown
// resets to the full interval and the tick reports a payout, so the next
// fire counts from this one. Returns false on the placement turn.
func (d *Duel) tickMiner(player int) bool {
	m := d.State.Players[player].Miner
	if m == nil || m.TurnPlaced == d.State.Turn.Number {
		return false
	}
	m.Countdown--
	if m.Countdown <= 0 {
		m.Countdown = m.Interval
		return true
	}
	return false
}

// killMiner destroys the player's miner unless it was placed this very
// turn. Returns whether it died.
func (d *Duel) killMiner(player int, reason string) bool {
	p := d.State.Players[player]
	m := p.Miner
	if m == nil {
		return false
	}
	card := d.Catalog.MustByID(m.CardID)
	if m.IsProtected(d.State.Turn.Number) {
		d.log(log.NewMinerProtectedEvent(d.State.Turn.Number, player, m.CardID, card.Name))
		return false
	}
	d.log(log.NewMinerKilledEvent(d.State.Turn.Number, player, m.CardID, card.Name, reason))
	p.Miner = nil
	return true
}

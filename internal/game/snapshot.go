package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot and RestoreGameState replicate full game state between peers:
// the host serializes after every resolution and the joiner rebuilds a
// mirror for rendering. Cards travel by ID only, so both sides must share
// a catalog. Anything unknown or out of shape is a hard error rather than
// a best-effort restore; two replicas must never drift.

type snapshotWall struct {
	CardID     string `json:"card_id"`
	HP         int    `json:"hp"`
	TurnPlaced int    `json:"turn_placed"`
}

type snapshotMiner struct {
	CardID     string `json:"card_id"`
	Countdown  int    `json:"countdown"`
	TurnPlaced int    `json:"turn_placed"`
}

type snapshotAction struct {
	CardID   string    `json:"card_id,omitempty"`
	Auto     bool      `json:"auto,omitempty"`
	LockedAt time.Time `json:"locked_at"`
}

type snapshotPlayer struct {
	Name                  string         `json:"name"`
	HP                    int            `json:"hp"`
	MaxHP                 int            `json:"max_hp"`
	Energy                int            `json:"energy"`
	MaxEnergy             int            `json:"max_energy"`
	Hand                  []string       `json:"hand"`
	Selected              string         `json:"selected,omitempty"`
	Wall                  *snapshotWall  `json:"wall,omitempty"`
	Miner                 *snapshotMiner `json:"miner,omitempty"`
	ActiveDeflection      bool           `json:"active_deflection,omitempty"`
	ActiveDeflectionMiner bool           `json:"active_deflection_miner,omitempty"`
}

type snapshotTurn struct {
	Number         int               `json:"number"`
	Phase          int               `json:"phase"`
	Locked         [2]bool           `json:"locked"`
	Actions        [2]snapshotAction `json:"actions"`
	TimerStart     time.Time         `json:"timer_start"`
	TimerDuration  time.Duration     `json:"timer_duration"`
	ActiveSelector int               `json:"active_selector"`
}

type snapshotRecord struct {
	Turn    int               `json:"turn"`
	Actions [2]snapshotAction `json:"actions"`
}

type snapshotState struct {
	ID       string            `json:"id"`
	Players  [2]snapshotPlayer `json:"players"`
	Turn     snapshotTurn      `json:"turn"`
	Phase    int               `json:"phase"`
	Winner   int               `json:"winner"`
	DoubleKO bool              `json:"double_ko,omitempty"`
	Over     bool              `json:"over,omitempty"`
	Result   string            `json:"result,omitempty"`
	History  []snapshotRecord  `json:"history,omitempty"`
}

func toSnapshotAction(a LockedAction) snapshotAction {
	return snapshotAction{CardID: a.CardID, Auto: a.Auto, LockedAt: a.LockedAt}
}

func fromSnapshotAction(a snapshotAction) LockedAction {
	return LockedAction{CardID: a.CardID, Auto: a.Auto, LockedAt: a.LockedAt}
}

// Snapshot serializes the full game state with cards referenced by ID.
func (gs *GameState) Snapshot() ([]byte, error) {
	snap := snapshotState{
		ID: gs.ID,
		Turn: snapshotTurn{
			Number:         gs.Turn.Number,
			Phase:          int(gs.Turn.Phase),
			Locked:         gs.Turn.Locked,
			TimerStart:     gs.Turn.TimerStart,
			TimerDuration:  gs.Turn.TimerDuration,
			ActiveSelector: gs.Turn.ActiveSelector,
		},
		Phase:    int(gs.Phase),
		Winner:   gs.Winner,
		DoubleKO: gs.DoubleKO,
		Over:     gs.Over,
		Result:   gs.Result,
	}
	for i := range gs.Turn.Actions {
		snap.Turn.Actions[i] = toSnapshotAction(gs.Turn.Actions[i])
	}
	for _, rec := range gs.History {
		sr := snapshotRecord{Turn: rec.Turn}
		for i := range rec.Actions {
			sr.Actions[i] = toSnapshotAction(rec.Actions[i])
		}
		snap.History = append(snap.History, sr)
	}

	for i, p := range gs.Players {
		sp := snapshotPlayer{
			Name:                  p.Name,
			HP:                    p.HP,
			MaxHP:                 p.MaxHP,
			Energy:                p.Energy,
			MaxEnergy:             p.MaxEnergy,
			Hand:                  make([]string, 0, len(p.Hand)),
			ActiveDeflection:      p.ActiveDeflection,
			ActiveDeflectionMiner: p.ActiveDeflectionMiner,
		}
		for _, c := range p.Hand {
			sp.Hand = append(sp.Hand, c.ID)
		}
		if p.Selected != nil {
			sp.Selected = p.Selected.ID
		}
		if p.Wall != nil {
			sp.Wall = &snapshotWall{CardID: p.Wall.CardID, HP: p.Wall.HP, TurnPlaced: p.Wall.TurnPlaced}
		}
		if p.Miner != nil {
			sp.Miner = &snapshotMiner{CardID: p.Miner.CardID, Countdown: p.Miner.Countdown, TurnPlaced: p.Miner.TurnPlaced}
		}
		snap.Players[i] = sp
	}

	return json.Marshal(snap)
}

// Snapshot returns a consistent snapshot of the running duel's state.
func (d *Duel) Snapshot() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.Snapshot()
}

// RestoreGameState rebuilds a GameState from snapshot bytes, resolving
// every card ID against the catalog.
func RestoreGameState(data []byte, catalog *Catalog) (*GameState, error) {
	var snap snapshotState
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("snapshot has no game ID")
	}
	if snap.Phase < int(GamePhaseMenu) || snap.Phase > int(GamePhaseOver) {
		return nil, fmt.Errorf("snapshot has invalid game phase %d", snap.Phase)
	}
	if snap.Winner < -1 || snap.Winner > 1 {
		return nil, fmt.Errorf("snapshot has invalid winner %d", snap.Winner)
	}
	if snap.Turn.Phase < int(PhaseSelection) || snap.Turn.Phase > int(PhaseTurnEnd) {
		return nil, fmt.Errorf("snapshot has invalid turn phase %d", snap.Turn.Phase)
	}

	gs := &GameState{
		ID: snap.ID,
		Turn: TurnState{
			Number:         snap.Turn.Number,
			Phase:          TurnPhase(snap.Turn.Phase),
			Locked:         snap.Turn.Locked,
			TimerStart:     snap.Turn.TimerStart,
			TimerDuration:  snap.Turn.TimerDuration,
			ActiveSelector: snap.Turn.ActiveSelector,
		},
		Phase:    GamePhase(snap.Phase),
		Winner:   snap.Winner,
		DoubleKO: snap.DoubleKO,
		Over:     snap.Over,
		Result:   snap.Result,
	}
	for i := range snap.Turn.Actions {
		gs.Turn.Actions[i] = fromSnapshotAction(snap.Turn.Actions[i])
	}
	for _, sr := range snap.History {
		rec := TurnRecord{Turn: sr.Turn}
		for i := range sr.Actions {
			rec.Actions[i] = fromSnapshotAction(sr.Actions[i])
		}
		gs.History = append(gs.History, rec)
	}

	for i := range snap.Players {
		sp := snap.Players[i]
		if sp.HP < 0 || sp.Energy < 0 {
			return nil, fmt.Errorf("player %d has negative vitals", i)
		}
		if len(sp.Hand) > DeckSize {
			return nil, fmt.Errorf("player %d hand has %d cards, max %d", i, len(sp.Hand), DeckSize)
		}
		p := &Player{
			Name:                  sp.Name,
			HP:                    sp.HP,
			MaxHP:                 sp.MaxHP,
			Energy:                sp.Energy,
			MaxEnergy:             sp.MaxEnergy,
			ActiveDeflection:      sp.ActiveDeflection,
			ActiveDeflectionMiner: sp.ActiveDeflectionMiner,
		}
		for _, id := range sp.Hand {
			card, err := catalog.ByID(id)
			if err != nil {
				return nil, fmt.Errorf("player %d hand: %w", i, err)
			}
			p.Hand = append(p.Hand, card)
		}
		if sp.Selected != "" {
			card, err := catalog.ByID(sp.Selected)
			if err != nil {
				return nil, fmt.Errorf("player %d selection: %w", i, err)
			}
			p.Selected = card
		}
		if sp.Wall != nil {
			card, err := catalog.ByID(sp.Wall.CardID)
			if err != nil {
				return nil, fmt.Errorf("player %d wall: %w", i, err)
			}
			if card.Subtype != SubtypeWall {
				return nil, fmt.Errorf("player %d wall card %q is a %s", i, card.ID, card.Subtype)
			}
			if sp.Wall.HP < 1 || sp.Wall.HP > card.Power {
				return nil, fmt.Errorf("player %d wall HP %d out of range 1..%d", i, sp.Wall.HP, card.Power)
			}
			p.Wall = &WallInstance{
				CardID:     card.ID,
				Element:    card.Element,
				HP:         sp.Wall.HP,
				MaxHP:      card.Power,
				TurnPlaced: sp.Wall.TurnPlaced,
			}
		}
		if sp.Miner != nil {
			card, err := catalog.ByID(sp.Miner.CardID)
			if err != nil {
				return nil, fmt.Errorf("player %d miner: %w", i, err)
			}
			if !card.Subtype.IsMiner() {
				return nil, fmt.Errorf("player %d miner card %q is a %s", i, card.ID, card.Subtype)
			}
			interval := card.Subtype.MinerInterval()
			if sp.Miner.Countdown < 1 || sp.Miner.Countdown > interval {
				return nil, fmt.Errorf("player %d miner countdown %d out of range 1..%d", i, sp.Miner.Countdown, interval)
			}
			p.Miner = &MinerInstance{
				CardID:     card.ID,
				Kind:       card.Subtype,
				Element:    card.Element,
				Countdown:  sp.Miner.Countdown,
				Interval:   interval,
				Power:      card.Power,
				TurnPlaced: sp.Miner.TurnPlaced,
			}
		}
		gs.Players[i] = p
	}

	return gs, nil
}

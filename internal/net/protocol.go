package net

import (
	"encoding/json"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_selection"
	State     *StateView `json:"state,omitempty"`
	Playable  []CardView `json:"playable,omitempty"`
	Turn      int        `json:"turn,omitempty"`       // echoed back by the reply
	TimeoutMS int        `json:"timeout_ms,omitempty"` // selection timer, 0 = untimed

	// For "choose_draft"
	Round    int        `json:"round,omitempty"` // echoed back by the reply
	Category string     `json:"category,omitempty"`
	Options  []CardView `json:"options,omitempty"`

	// For "sync": the authoritative state snapshot the client mirrors
	Snapshot json.RawMessage `json:"snapshot,omitempty"`

	// For "game_over"
	Winner   int    `json:"winner,omitempty"` // 0, 1, or -1 for a draw
	Result   string `json:"result,omitempty"`
	DoubleKO bool   `json:"double_ko,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// BuildEventView converts a game event for the wire.
func BuildEventView(ev log.GameEvent) *EventView {
	return &EventView{
		Turn:    ev.Turn,
		Phase:   ev.Phase,
		Player:  ev.Player,
		Type:    ev.Type.String(),
		Card:    ev.Card,
		Amount:  ev.Amount,
		Details: ev.Details,
	}
}

// CardView describes one card for display.
type CardView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Element string `json:"element"`
	Subtype string `json:"subtype"`
	Cost    int    `json:"cost"`
	Power   int    `json:"power,omitempty"`
	Desc    string `json:"desc,omitempty"`
}

// BuildCardView converts a card for the wire.
func BuildCardView(c *game.Card) CardView {
	return CardView{
		ID:      c.ID,
		Name:    c.Name,
		Element: c.Element.String(),
		Subtype: c.Subtype.String(),
		Cost:    c.Cost,
		Power:   c.Power,
		Desc:    c.Description,
	}
}

// BuildCardViews converts a card list for the wire.
func BuildCardViews(cards []*game.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = BuildCardView(c)
	}
	return out
}

// StateView is the board from one player's perspective. Hands, energy,
// walls, and miners are public for both sides; only the current
// selections are hidden, so the view never carries them.
type StateView struct {
	Turn     int        `json:"turn"`
	Phase    string     `json:"phase"`
	You      PlayerView `json:"you"`
	Opponent PlayerView `json:"opponent"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name      string     `json:"name"`
	HP        int        `json:"hp"`
	MaxHP     int        `json:"max_hp"`
	Energy    int        `json:"energy"`
	MaxEnergy int        `json:"max_energy"`
	Hand      []CardView `json:"hand"`
	Wall      *WallView  `json:"wall,omitempty"`
	Miner     *MinerView `json:"miner,omitempty"`
}

// WallView is a standing wall.
type WallView struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
}

// MinerView is a deployed miner.
type MinerView struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Countdown int    `json:"countdown"`
	Interval  int    `json:"interval"`
}

// BuildStateView builds the board view from the given player's
// perspective.
func BuildStateView(state *game.GameState, catalog *game.Catalog, player int) *StateView {
	return &StateView{
		Turn:     state.Turn.Number,
		Phase:    state.Turn.Phase.String(),
		You:      buildPlayerView(state.Players[player], catalog),
		Opponent: buildPlayerView(state.Players[1-player], catalog),
	}
}

func buildPlayerView(p *game.Player, catalog *game.Catalog) PlayerView {
	pv := PlayerView{
		Name:      p.Name,
		HP:        p.HP,
		MaxHP:     p.MaxHP,
		Energy:    p.Energy,
		MaxEnergy: p.MaxEnergy,
		Hand:      BuildCardViews(p.Hand),
	}
	if p.Wall != nil {
		pv.Wall = &WallView{
			Name:  catalog.MustByID(p.Wall.CardID).Name,
			HP:    p.Wall.HP,
			MaxHP: p.Wall.MaxHP,
		}
	}
	if p.Miner != nil {
		pv.Miner = &MinerView{
			Name:      catalog.MustByID(p.Miner.CardID).Name,
			Kind:      p.Miner.Kind.String(),
			Countdown: p.Miner.Countdown,
			Interval:  p.Miner.Interval,
		}
	}
	return pv
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "selection": the prompt's turn, and the chosen card ("" = pass)
	Turn   int    `json:"turn,omitempty"`
	CardID string `json:"card_id,omitempty"`

	// For "draft_pick": the prompt's round, with CardID carrying the pick
	Round int `json:"round,omitempty"`
}

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StartingHP       = 20
	InitialEnergy    = 3
	MaxEnergy        = 10
	RegenOdd         = 2 // energy gained entering an odd-numbered turn
	RegenEven        = 3 // energy gained entering an even-numbered turn
	WallDecay        = 1
	DeflectReduction = 5
	DeckSize         = 6
	MaxTurns         = 200 // safety stop for runaway games
)

// WallInstance is a wall standing in front of a player's base. At most one
// per player.
type WallInstance struct {
	CardID     string
	Element    Element
	HP         int
	MaxHP      int
	TurnPlaced int
}

// MinerInstance is a deployed miner. At most one per player. Countdown is
// the number of payout ticks remaining; it never rests at 0 (a fire resets
// it to Interval).
type MinerInstance struct {
	CardID     string
	Kind       Subtype
	Element    Element
	Countdown  int
	Interval   int
	Power      int
	TurnPlaced int
}

// LockedAction is one player's committed play for a turn. An empty CardID
// is a pass.
type LockedAction struct {
	CardID   string
	Auto     bool // locked by timer expiry rather than the player
	LockedAt time.Time
}

func (a LockedAction) IsPass() bool {
	return a.CardID == ""
}

// TurnRecord is one completed turn in the game history: both players'
// locked actions.
type TurnRecord struct {
	Turn    int
	Actions [2]LockedAction
}

// TurnState tracks the current turn's phase, locks, and timer.
type TurnState struct {
	Number        int // 1-based
	Phase         TurnPhase
	Locked        [2]bool
	Actions       [2]LockedAction
	TimerStart    time.Time
	TimerDuration time.Duration // 0 = untimed

	// ActiveSelector is the player currently holding the device in
	// hot-seat play. Unused otherwise.
	ActiveSelector int
}

// Player represents one player's entire state. Hands are public; only the
// current selection is hidden until the reveal.
type Player struct {
	Name      string
	HP        int
	MaxHP     int
	Energy    int
	MaxEnergy int

	Hand     []*Card
	Selected *Card // this turn's secret pick; nil = pass

	Wall  *WallInstance
	Miner *MinerInstance

	// One-turn flags, cleared at turn end.
	ActiveDeflection      bool // a deflection card was played this turn
	ActiveDeflectionMiner bool // the deflection-miner fired this turn
}

// HandCount returns the number of cards left in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// InHand returns the card with the given ID, or nil.
func (p *Player) InHand(cardID string) *Card {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes the card with the given ID. Returns false if it
// was not in hand.
func (p *Player) RemoveFromHand(cardID string) bool {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HasWall reports whether a wall is standing.
func (p *Player) HasWall() bool {
	return p.Wall != nil
}

// HasMiner reports whether a miner is deployed.
func (p *Player) HasMiner() bool {
	return p.Miner != nil
}

// HasDeflectionMiner reports whether the deployed miner is the
// deflection kind.
func (p *Player) HasDeflectionMiner() bool {
	return p.Miner != nil && p.Miner.Kind == SubtypeDeflectionMiner
}

// --- GameState ---

// GameState holds the complete state of a game. It is plain data: all
// transitions go through the Duel, which owns the locking.
type GameState struct {
	ID      string // uuid, assigned at creation
	Players [2]*Player
	Turn    TurnState
	Phase   GamePhase

	// Game result
	Winner   int // 0, 1, or -1 (no winner / draw)
	DoubleKO bool
	Over     bool
	Result   string

	// History is append-only: one record per completed turn.
	History []TurnRecord
}

// NewGameState creates a fresh game with named players. Empty names get
// the default P1/P2 labels.
func NewGameState(name0, name1 string) *GameState {
	if name0 == "" {
		name0 = "P1"
	}
	if name1 == "" {
		name1 = "P2"
	}
	return &GameState{
		ID: uuid.NewString(),
		Players: [2]*Player{
			{Name: name0, HP: StartingHP, MaxHP: StartingHP, Energy: InitialEnergy, MaxEnergy: MaxEnergy},
			{Name: name1, HP: StartingHP, MaxHP: StartingHP, Energy: InitialEnergy, MaxEnergy: MaxEnergy},
		},
		Phase:  GamePhaseMenu,
		Winner: -1,
	}
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CheckVictory checks both players' HP and marks the result. Both at zero
// in the same resolution is a draw with the DoubleKO flag set. Returns
// true if the game is over.
func (gs *GameState) CheckVictory() bool {
	p0Dead := gs.Players[0].HP <= 0
	p1Dead := gs.Players[1].HP <= 0

	if p0Dead && p1Dead {
		gs.Over = true
		gs.Winner = -1
		gs.DoubleKO = true
		gs.Result = "Draw — both bases fell in the same turn"
		return true
	}
	if p0Dead {
		gs.Over = true
		gs.Winner = 1
		gs.Result = fmt.Sprintf("%s wins — %s's base fell", gs.Players[1].Name, gs.Players[0].Name)
		return true
	}
	if p1Dead {
		gs.Over = true
		gs.Winner = 0
		gs.Result = fmt.Sprintf("%s wins — %s's base fell", gs.Players[0].Name, gs.Players[1].Name)
		return true
	}
	return false
}

// ResetTurnFlags clears the one-turn flags and selections on both players.
func (gs *GameState) ResetTurnFlags() {
	for i := 0; i < 2; i++ {
		gs.Players[i].ActiveDeflection = false
		gs.Players[i].ActiveDeflectionMiner = false
		gs.Players[i].Selected = nil
	}
}

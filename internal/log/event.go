package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventTurnStart EventType = iota
	EventTurnEnd
	EventPhaseChange
	EventCardSelected
	EventCardLocked
	EventCardsRevealed
	EventDamageDealt
	EventDamageBlocked
	EventWallPlaced
	EventWallDamaged
	EventWallRepaired
	EventWallDecayed
	EventWallDestroyed
	EventMinerPlaced
	EventMinerPayout
	EventMinerKilled
	EventMinerProtected
	EventEnergyGained
	EventEnergySpent
	EventVictory
	EventDoubleKO
	EventDraftRoundStart
	EventDraftPick
	EventDraftComplete
)

func (e EventType) String() string {
	switch e {
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventPhaseChange:
		return "PhaseChange"
	case EventCardSelected:
		return "CardSelected"
	case EventCardLocked:
		return "CardLocked"
	case EventCardsRevealed:
		return "CardsRevealed"
	case EventDamageDealt:
		return "DamageDealt"
	case EventDamageBlocked:
		return "DamageBlocked"
	case EventWallPlaced:
		return "WallPlaced"
	case EventWallDamaged:
		return "WallDamaged"
	case EventWallRepaired:
		return "WallRepaired"
	case EventWallDecayed:
		return "WallDecayed"
	case EventWallDestroyed:
		return "WallDestroyed"
	case EventMinerPlaced:
		return "MinerPlaced"
	case EventMinerPayout:
		return "MinerPayout"
	case EventMinerKilled:
		return "MinerKilled"
	case EventMinerProtected:
		return "MinerProtected"
	case EventEnergyGained:
		return "EnergyGained"
	case EventEnergySpent:
		return "EnergySpent"
	case EventVictory:
		return "Victory"
	case EventDoubleKO:
		return "DoubleKO"
	case EventDraftRoundStart:
		return "DraftRoundStart"
	case EventDraftPick:
		return "DraftPick"
	case EventDraftComplete:
		return "DraftComplete"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
// Amount/Before/After carry the numeric payload for damage and energy
// events; they are zero for events that have none.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // turn phase name (e.g. "Resolution")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card ID (if applicable)
	Amount  int       // damage dealt/blocked, energy delta
	Before  int       // value before the change (HP or energy)
	After   int       // value after the change
	Reason  string    // blocker or cause ("wall", "deflection", "decay", ...)
	Details string    // human-readable detail string
}

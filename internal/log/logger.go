package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnStartEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Selection",
		Type:    EventTurnStart,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewTurnEndEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Turn End",
		Type:    EventTurnEnd,
		Details: fmt.Sprintf("Turn %d ends", turn),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

// NewCardSelectedEvent deliberately omits the card: selections stay hidden
// until the simultaneous reveal.
func NewCardSelectedEvent(turn int, player int, cleared bool) GameEvent {
	details := fmt.Sprintf("%s selects a card", playerName(player))
	if cleared {
		details = fmt.Sprintf("%s clears their selection", playerName(player))
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Selection",
		Player:  player,
		Type:    EventCardSelected,
		Details: details,
	}
}

func NewCardLockedEvent(turn int, player int, auto bool) GameEvent {
	details := fmt.Sprintf("%s locks in", playerName(player))
	if auto {
		details = fmt.Sprintf("%s locked in by timer", playerName(player))
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Selection",
		Player:  player,
		Type:    EventCardLocked,
		Details: details,
	}
}

func NewCardRevealedEvent(turn int, player int, cardID, cardName string) GameEvent {
	details := fmt.Sprintf("%s reveals %s", playerName(player), cardName)
	if cardID == "" {
		details = fmt.Sprintf("%s reveals nothing (pass)", playerName(player))
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Reveal",
		Player:  player,
		Type:    EventCardsRevealed,
		Card:    cardID,
		Details: details,
	}
}

// NewDamageDealtEvent records damage to a base. Player is the defender
// whose HP changed; Card is the attacking card.
func NewDamageDealtEvent(turn int, defender int, cardID, cardName string, amount, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  defender,
		Type:    EventDamageDealt,
		Card:    cardID,
		Amount:  amount,
		Before:  oldHP,
		After:   newHP,
		Details: fmt.Sprintf("%s hits %s for %d (HP %d → %d)", cardName, playerName(defender), amount, oldHP, newHP),
	}
}

// NewDamageBlockedEvent records an attack reduced to zero before reaching
// the base. Reason identifies the blocker.
func NewDamageBlockedEvent(turn int, defender int, cardID, cardName string, amount int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  defender,
		Type:    EventDamageBlocked,
		Card:    cardID,
		Amount:  amount,
		Reason:  reason,
		Details: fmt.Sprintf("%s blocked %d from %s (%s)", playerName(defender), amount, cardName, reason),
	}
}

func NewWallPlacedEvent(turn int, player int, cardID, cardName string, hp int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  player,
		Type:    EventWallPlaced,
		Card:    cardID,
		After:   hp,
		Details: fmt.Sprintf("%s places %s (%d HP)", playerName(player), cardName, hp),
	}
}

// NewWallDamagedEvent records combat damage to a wall. Player is the wall's
// owner; Card is the attacking card.
func NewWallDamagedEvent(turn int, owner int, cardID, cardName string, amount, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventWallDamaged,
		Card:    cardID,
		Amount:  amount,
		Before:  oldHP,
		After:   newHP,
		Details: fmt.Sprintf("%s's wall takes %d from %s (%d → %d)", playerName(owner), amount, cardName, oldHP, newHP),
	}
}

func NewWallRepairedEvent(turn int, owner int, cardID string, amount, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventWallRepaired,
		Card:    cardID,
		Amount:  amount,
		Before:  oldHP,
		After:   newHP,
		Details: fmt.Sprintf("%s's wall repaired +%d (%d → %d)", playerName(owner), amount, oldHP, newHP),
	}
}

func NewWallDecayedEvent(turn int, owner int, amount, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventWallDecayed,
		Amount:  amount,
		Before:  oldHP,
		After:   newHP,
		Details: fmt.Sprintf("%s's wall decays -%d (%d → %d)", playerName(owner), amount, oldHP, newHP),
	}
}

func NewWallDestroyedEvent(turn int, owner int, cardID, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventWallDestroyed,
		Card:    cardID,
		Reason:  reason,
		Details: fmt.Sprintf("%s's %s is destroyed (%s)", playerName(owner), cardName, reason),
	}
}

func NewMinerPlacedEvent(turn int, player int, cardID, cardName string, interval int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  player,
		Type:    EventMinerPlaced,
		Card:    cardID,
		Amount:  interval,
		Details: fmt.Sprintf("%s deploys %s (fires every %d turns)", playerName(player), cardName, interval),
	}
}

func NewMinerPayoutEvent(turn int, owner int, cardID, cardName, effect string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventMinerPayout,
		Card:    cardID,
		Details: fmt.Sprintf("%s's %s fires: %s", playerName(owner), cardName, effect),
	}
}

func NewMinerKilledEvent(turn int, owner int, cardID, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventMinerKilled,
		Card:    cardID,
		Reason:  reason,
		Details: fmt.Sprintf("%s's %s is destroyed (%s)", playerName(owner), cardName, reason),
	}
}

func NewMinerProtectedEvent(turn int, owner int, cardID, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  owner,
		Type:    EventMinerProtected,
		Card:    cardID,
		Reason:  "placement grace",
		Details: fmt.Sprintf("%s's %s shrugs off the blast (just deployed)", playerName(owner), cardName),
	}
}

func NewEnergyGainedEvent(turn int, player int, amount, oldEnergy, newEnergy int, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Selection",
		Player:  player,
		Type:    EventEnergyGained,
		Amount:  amount,
		Before:  oldEnergy,
		After:   newEnergy,
		Details: fmt.Sprintf("%s gains %d energy (%d → %d, %s)", playerName(player), amount, oldEnergy, newEnergy, source),
	}
}

func NewEnergySpentEvent(turn int, player int, cardID, cardName string, amount, oldEnergy, newEnergy int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Reveal",
		Player:  player,
		Type:    EventEnergySpent,
		Card:    cardID,
		Amount:  amount,
		Before:  oldEnergy,
		After:   newEnergy,
		Details: fmt.Sprintf("%s pays %d energy for %s (%d → %d)", playerName(player), amount, cardName, oldEnergy, newEnergy),
	}
}

func NewVictoryEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Player:  winner,
		Type:    EventVictory,
		Reason:  reason,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewDoubleKOEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Resolution",
		Type:    EventDoubleKO,
		Reason:  "double KO",
		Details: "Both bases fall. Draw!",
	}
}

// Draft events happen before turn 1; Turn carries the draft round instead.
func NewDraftRoundStartEvent(round int, player int, category string) GameEvent {
	return GameEvent{
		Turn:    round,
		Phase:   "Draft",
		Player:  player,
		Type:    EventDraftRoundStart,
		Details: fmt.Sprintf("%s draft round %d: pick a %s card", playerName(player), round, category),
	}
}

func NewDraftPickEvent(round int, player int, cardID, cardName string, auto bool) GameEvent {
	details := fmt.Sprintf("%s drafts %s", playerName(player), cardName)
	if auto {
		details = fmt.Sprintf("%s drafts %s (auto-picked by timer)", playerName(player), cardName)
	}
	return GameEvent{
		Turn:    round,
		Phase:   "Draft",
		Player:  player,
		Type:    EventDraftPick,
		Card:    cardID,
		Details: details,
	}
}

func NewDraftCompleteEvent(player int) GameEvent {
	return GameEvent{
		Phase:   "Draft",
		Player:  player,
		Type:    EventDraftComplete,
		Details: fmt.Sprintf("%s's deck is complete", playerName(player)),
	}
}

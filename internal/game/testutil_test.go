package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/manaclash/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined
// script of selections. Each turn consumes one entry: a card ID to play,
// or "" to pass. An exhausted script passes forever, so a script only
// needs entries up to the last turn it cares about.
type ScriptedController struct {
	t    *testing.T
	name string

	plays []string
	pos   int

	draftPicks []string
	draftPos   int
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

// AddPlay scripts the next turn's selection by card ID.
func (sc *ScriptedController) AddPlay(cardID string) *ScriptedController {
	sc.plays = append(sc.plays, cardID)
	return sc
}

// AddPass scripts an explicit pass for the next turn.
func (sc *ScriptedController) AddPass() *ScriptedController {
	sc.plays = append(sc.plays, "")
	return sc
}

// AddDraftPick scripts the next draft round's pick by card ID.
func (sc *ScriptedController) AddDraftPick(cardID string) *ScriptedController {
	sc.draftPicks = append(sc.draftPicks, cardID)
	return sc
}

func (sc *ScriptedController) ChooseSelection(ctx context.Context, state *GameState, player int, playable []*Card) (string, error) {
	if sc.pos >= len(sc.plays) {
		return "", nil
	}
	id := sc.plays[sc.pos]
	sc.pos++
	return id, nil
}

func (sc *ScriptedController) ChooseDraftPick(ctx context.Context, player int, round int, category string, options []*Card) (string, error) {
	if sc.draftPos >= len(sc.draftPicks) {
		// Default: the first option.
		return options[0].ID, nil
	}
	id := sc.draftPicks[sc.draftPos]
	sc.draftPos++
	return id, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Fixture decks (each satisfies the draft contract) ---

func fireDeck() []*Card {
	return []*Card{MagmaRampart(), EmberVeil(), InfernoRay(), CinderBolt(), AegisTurbine(), MasonGolem()}
}

func waterDeck() []*Card {
	return []*Card{TidalBulwark(), MistScreen(), MaelstromJet(), HailDart(), MortarImp(), GeyserEngine()}
}

func earthDeck() []*Card {
	return []*Card{GranitePalisade(), Dustcloak(), SandblastStream(), BoulderSling(), MasonGolem(), MortarImp()}
}

func airDeck() []*Card {
	return []*Card{CycloneBarrier(), UpdraftWard(), ShearGale(), JavelinGust(), AegisTurbine(), GeyserEngine()}
}

// runDuelToCompletion runs a duel and returns it with the logger for
// inspection. An unset MaxTurns defaults low so pass-heavy scripts finish
// quickly.
func runDuelToCompletion(t *testing.T, cfg DuelConfig, p0, p1 PlayerController) (*Duel, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 30
	}

	duel, err := NewDuel(cfg, p0, p1)
	if err != nil {
		t.Fatalf("NewDuel: %v", err)
	}

	winner, err := duel.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Duel error: %v", err)
	}

	// Always print the event log for visibility (tests are run with -v).
	t.Logf("Duel result: winner=%d (%s)", winner, duel.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return duel, logger
}

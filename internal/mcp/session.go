package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mcnet "github.com/peterkuimelis/manaclash/internal/net"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"

	stdnet "net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionDraftPick  DecisionType = "draft_pick"
	DecisionChooseCard DecisionType = "choose_selection"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type   DecisionType     `json:"type"`
	Player int              `json:"player"`
	State  *mcnet.StateView `json:"state,omitempty"`

	// For "choose_selection"
	Turn     int              `json:"turn,omitempty"`
	Playable []mcnet.CardView `json:"playable,omitempty"`

	// For "draft_pick"
	Round    int              `json:"round,omitempty"`
	Category string           `json:"category,omitempty"`
	Options  []mcnet.CardView `json:"options,omitempty"`
}

// Response types sent back from MCP tools to the agent controller. Each
// echoes its prompt's turn or round so a stale answer, left over after
// the selection timer resolved the prompt, can be recognized and dropped.

type SelectionResponse struct {
	Turn   int
	CardID string // "" = pass
}

type DraftPickResponse struct {
	Round  int
	CardID string
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []mcnet.EventView `json:"events"`
	State    *mcnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView      `json:"pending,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner,omitempty"`
	Result   string            `json:"result,omitempty"`
	Port     string            `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType     `json:"type"`
	ForPlayer string           `json:"for_player"`
	Turn      int              `json:"turn,omitempty"`
	Playable  []mcnet.CardView `json:"playable,omitempty"`
	Round     int              `json:"round,omitempty"`
	Category  string           `json:"category,omitempty"`
	Options   []mcnet.CardView `json:"options,omitempty"`
}

// GameSession holds the state of a single MCP game session: the agent
// plays through tool calls, the human through a TCP connection.
type GameSession struct {
	duel        *game.Duel
	agentCtrl   *MCPController
	humanCtrl   *mcnet.NetworkController
	agentPlayer int
	catalog     *game.Catalog
	bus         *log.Bus

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []mcnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession starts a TCP listener, waits for the human player to
// connect via `manaclash join`, then drafts both decks and runs the duel
// in the background. Decisions for the agent arrive on the pending
// channel, starting with draft round 1.
func NewGameSession(agentPlayer int, port string, seed int64, timeout time.Duration) (*GameSession, error) {
	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	// Accept one connection (blocks until the human runs `manaclash join`)
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	catalog := game.StandardCatalog()
	sess := &GameSession{
		agentPlayer: agentPlayer,
		catalog:     catalog,
		bus:         log.NewBus(),
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
		listener:    ln,
		humanConn:   conn,
	}
	sess.agentCtrl = NewMCPController(agentPlayer, sess)
	sess.humanCtrl = mcnet.NewNetworkController(conn, 1-agentPlayer, catalog)

	humanName, err := sess.humanCtrl.AwaitJoin(context.Background())
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("join handshake: %w", err)
	}

	// Draft events never pass through controller Notify, so feed them to
	// the agent's event log off the bus instead.
	sess.bus.Subscribe(func(ev log.GameEvent) {
		sess.appendEvent(*mcnet.BuildEventView(ev))
	}, log.EventDraftRoundStart, log.EventDraftPick, log.EventDraftComplete)

	go sess.run(humanName, seed, timeout)

	return sess, nil
}

// run drives the drafts and the duel, then reports game over.
func (s *GameSession) run(humanName string, seed int64, timeout time.Duration) {
	ctx := context.Background()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if humanName == "" {
		humanName = "Human"
	}
	var names [2]string
	names[s.agentPlayer] = "Agent"
	names[1-s.agentPlayer] = humanName

	ctrls := [2]game.PlayerController{s.controllerFor(0), s.controllerFor(1)}

	// Draft both decks concurrently; the agent's picks arrive through
	// tool calls while the human picks over TCP.
	type draftResult struct {
		player int
		deck   []*game.Card
		err    error
	}
	draftCh := make(chan draftResult, 2)
	for p := 0; p < 2; p++ {
		go func(p int) {
			dr := game.NewDraft(p, s.catalog, game.NewRNG(seed+int64(p)), s.bus)
			deck, err := game.RunDraft(ctx, dr, ctrls[p])
			draftCh <- draftResult{player: p, deck: deck, err: err}
		}(p)
	}
	var decks [2][]*game.Card
	for i := 0; i < 2; i++ {
		r := <-draftCh
		if r.err != nil {
			s.finish(-1, fmt.Sprintf("draft error: %v", r.err), nil)
			return
		}
		decks[r.player] = r.deck
	}

	duel, err := game.NewDuel(game.DuelConfig{
		Deck0:            decks[0],
		Deck1:            decks[1],
		Names:            names,
		Catalog:          s.catalog,
		Logger:           s.bus,
		SelectionTimeout: timeout,
	}, ctrls[0], ctrls[1])
	if err != nil {
		s.finish(-1, fmt.Sprintf("setup error: %v", err), nil)
		return
	}
	s.mu.Lock()
	s.duel = duel
	s.mu.Unlock()

	winner, err := duel.Run(ctx)
	result := duel.State.Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
	}
	if result == "" {
		result = fmt.Sprintf("Game over. Winner: player %d", winner)
	}

	// Notify the human over TCP before tearing the connection down.
	_ = s.humanCtrl.SendGameOver(winner, result, duel.State.DoubleKO)

	s.finish(winner, result, mcnet.BuildStateView(duel.State, s.catalog, s.agentPlayer))
}

// finish closes the TCP side, records the outcome, and queues the
// game-over decision for the agent.
func (s *GameSession) finish(winner int, result string, state *mcnet.StateView) {
	s.humanConn.Close()
	s.listener.Close()

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  state,
	}
}

// controllerFor returns the controller seated at the given player index.
func (s *GameSession) controllerFor(player int) game.PlayerController {
	if player == s.agentPlayer {
		return s.agentCtrl
	}
	return s.humanCtrl
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev mcnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []mcnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events + the
// pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events: s.drainEvents(),
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		resp.State = pending.State
		return resp, nil
	}

	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
		Turn:      pending.Turn,
		Playable:  pending.Playable,
		Round:     pending.Round,
		Category:  pending.Category,
		Options:   pending.Options,
	}

	return resp, nil
}

// playerLabel returns "agent" or "human" for the given player index.
func (s *GameSession) playerLabel(player int) string {
	if player == s.agentPlayer {
		return "agent"
	}
	return "human"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

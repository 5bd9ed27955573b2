package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	mcnet "github.com/peterkuimelis/manaclash/internal/net"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// port is the TCP port for the human player connection, set by main.
var port string

// draftSeed seeds the draft option rolls, set by main (0 = time-based).
var draftSeed int64

// selectionTimeout is the per-turn selection timer, set by main.
var selectionTimeout time.Duration

// SetPort sets the TCP port for the human player connection.
func SetPort(p string) {
	port = p
}

// SetDraftSeed sets the draft option RNG seed.
func SetDraftSeed(seed int64) {
	draftSeed = seed
}

// SetSelectionTimeout sets the per-turn selection timer (0 = untimed).
func SetSelectionTimeout(d time.Duration) {
	selectionTimeout = d
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(pickDraftCardTool(), handlePickDraftCard)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new duel against the human player. Runs the six-round deck draft for both sides, then the duel itself. "+
			"The human connects via `manaclash join --addr localhost:<port>` in a separate terminal. "+
			"This call blocks until the human connects, then returns your first draft round."),
		mcp.WithNumber("agent_player", mcp.Description("Which seat to take: 0 or 1 (default 0)")),
	)
}

func pickDraftCardTool() mcp.Tool {
	return mcp.NewTool("pick_draft_card",
		mcp.WithDescription("Pick a card in the deck draft. Use this when the pending decision type is 'draft_pick'. "+
			"Returns the next pending decision, blocking until one arrives."),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("ID of the card to draft, from the pending options list")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Lock this turn's selection. Use this when the pending decision type is 'choose_selection'. "+
			"Both players select simultaneously; this call blocks until the opponent locks too and the turn resolves."),
		mcp.WithString("card_id", mcp.Description("ID of the card to play, from the pending playable list. Empty or omitted to pass the turn.")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	agentPlayer := request.GetInt("agent_player", 0)
	if agentPlayer != 0 && agentPlayer != 1 {
		return mcp.NewToolResultError("agent_player must be 0 or 1"), nil
	}

	sess, err := NewGameSession(agentPlayer, port, draftSeed, selectionTimeout)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}

	resp.Port = port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePickDraftCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type != DecisionDraftPick {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'draft_pick'. Use the correct tool.", pending.Type), nil
	}

	cardID := request.GetString("card_id", "")
	if !cardAmong(cardID, pending.Options) {
		return mcp.NewToolResultErrorf("Card %q is not among this round's options.", cardID), nil
	}

	sess.agentCtrl.responseCh <- DraftPickResponse{Round: pending.Round, CardID: cardID}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type != DecisionChooseCard {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'choose_selection'. Use the correct tool.", pending.Type), nil
	}

	cardID := request.GetString("card_id", "")
	if cardID != "" && !cardAmong(cardID, pending.Playable) {
		return mcp.NewToolResultErrorf("Card %q is not playable this turn. Pick from the playable list or pass with an empty card_id.", cardID), nil
	}

	sess.agentCtrl.responseCh <- SelectionResponse{Turn: pending.Turn, CardID: cardID}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	result := sess.result
	duel := sess.duel
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   events,
		GameOver: gameOver,
		Winner:   winner,
		Result:   result,
	}

	if gameOver {
		if sess.currentPending != nil {
			resp.State = sess.currentPending.State
		}
	} else if duel != nil {
		// Build a fresh state view from the agent's perspective
		resp.State = mcnet.BuildStateView(duel.State, sess.catalog, sess.agentPlayer)
	}
	if !gameOver && sess.currentPending != nil {
		pending := sess.currentPending
		resp.Pending = &PendingView{
			Type:      pending.Type,
			ForPlayer: sess.playerLabel(pending.Player),
			Turn:      pending.Turn,
			Playable:  pending.Playable,
			Round:     pending.Round,
			Category:  pending.Category,
			Options:   pending.Options,
		}
	}

	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []mcnet.EventView{}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// cardAmong reports whether id names one of the listed cards.
func cardAmong(id string, cards []mcnet.CardView) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

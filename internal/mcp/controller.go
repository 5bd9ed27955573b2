package mcp

import (
	"context"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
	mcnet "github.com/peterkuimelis/manaclash/internal/net"
)

// MCPController implements game.PlayerController by queueing decisions
// on the MCP session's pending channel and blocking on a response
// channel. The buffered response channel plus a turn/round echo keep a
// late tool answer from wedging a prompt the selection timer already
// resolved.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any, 1),
	}
}

// ChooseSelection implements game.PlayerController.
func (c *MCPController) ChooseSelection(ctx context.Context, state *game.GameState, player int, playable []*game.Card) (string, error) {
	turn := state.Turn.Number
	c.session.pendingCh <- &PendingDecision{
		Type:     DecisionChooseCard,
		Player:   c.player,
		State:    mcnet.BuildStateView(state, c.session.catalog, c.player),
		Turn:     turn,
		Playable: mcnet.BuildCardViews(playable),
	}

	for {
		select {
		case resp := <-c.responseCh:
			sr, ok := resp.(SelectionResponse)
			if !ok || sr.Turn != turn {
				continue // stale answer from an earlier prompt
			}
			for _, card := range playable {
				if card.ID == sr.CardID {
					return sr.CardID, nil
				}
			}
			return "", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// ChooseDraftPick implements game.PlayerController. Invalid picks are
// handed back as-is; the draft degrades them to an auto-pick.
func (c *MCPController) ChooseDraftPick(ctx context.Context, player int, round int, category string, options []*game.Card) (string, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:     DecisionDraftPick,
		Player:   c.player,
		Round:    round,
		Category: category,
		Options:  mcnet.BuildCardViews(options),
	}

	for {
		select {
		case resp := <-c.responseCh:
			dr, ok := resp.(DraftPickResponse)
			if !ok || dr.Round != round {
				continue
			}
			return dr.CardID, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Notify implements game.PlayerController.
// Only the agent's controller appends events to avoid duplicates.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == c.session.agentPlayer {
		c.session.appendEvent(*mcnet.BuildEventView(event))
	}
	return nil
}

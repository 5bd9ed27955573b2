package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

// NetworkController implements game.PlayerController over a TCP
// connection. Prompts are request-response: the controller sends a
// choose_* message and waits for the matching reply. A dedicated read
// loop keeps the connection drained so a prompt wait can give up the
// moment the selection timer's context expires, leaving any late reply
// to be discarded as stale by the next prompt's turn echo.
type NetworkController struct {
	conn    net.Conn
	player  int // which player this controller is (0 or 1)
	catalog *game.Catalog

	sendMu sync.Mutex
	enc    *json.Encoder

	inbox    chan ClientMessage
	readDone chan struct{}
	readErr  error
}

// NewNetworkController creates a controller for the given connection and
// starts its read loop.
func NewNetworkController(conn net.Conn, player int, catalog *game.Catalog) *NetworkController {
	nc := &NetworkController{
		conn:     conn,
		player:   player,
		catalog:  catalog,
		enc:      json.NewEncoder(conn),
		inbox:    make(chan ClientMessage, 8),
		readDone: make(chan struct{}),
	}
	go nc.readLoop()
	return nc
}

// readLoop decodes client messages into the inbox until the connection
// dies. The protocol is request-response, so an unsolicited flood is
// dropped rather than allowed to wedge the loop.
func (nc *NetworkController) readLoop() {
	dec := json.NewDecoder(nc.conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			nc.readErr = err
			close(nc.readDone)
			return
		}
		select {
		case nc.inbox <- msg:
		default:
		}
	}
}

// send writes a server message to the client.
func (nc *NetworkController) send(msg ServerMessage) error {
	nc.sendMu.Lock()
	defer nc.sendMu.Unlock()
	return nc.enc.Encode(msg)
}

// awaitReply waits for a client message matching want, skipping stale
// replies left over from prompts the timer already resolved.
func (nc *NetworkController) awaitReply(ctx context.Context, want func(ClientMessage) bool) (ClientMessage, error) {
	for {
		select {
		case msg := <-nc.inbox:
			if want(msg) {
				return msg, nil
			}
		case <-nc.readDone:
			return ClientMessage{}, fmt.Errorf("connection closed: %w", nc.readErr)
		case <-ctx.Done():
			return ClientMessage{}, ctx.Err()
		}
	}
}

// AwaitJoin waits for the client's join handshake and returns the
// player name it carried ("" when the client sent none).
func (nc *NetworkController) AwaitJoin(ctx context.Context) (string, error) {
	msg, err := nc.awaitReply(ctx, func(m ClientMessage) bool {
		return m.Type == "join"
	})
	if err != nil {
		return "", err
	}
	return msg.Name, nil
}

// ChooseSelection implements game.PlayerController.
func (nc *NetworkController) ChooseSelection(ctx context.Context, state *game.GameState, player int, playable []*game.Card) (string, error) {
	turn := state.Turn.Number
	msg := ServerMessage{
		Type:     "choose_selection",
		State:    BuildStateView(state, nc.catalog, nc.player),
		Playable: BuildCardViews(playable),
		Turn:     turn,
	}
	if state.Turn.TimerDuration > 0 {
		msg.TimeoutMS = int(state.Turn.TimerDuration.Milliseconds())
	}
	if err := nc.send(msg); err != nil {
		return "", fmt.Errorf("send choose_selection: %w", err)
	}

	resp, err := nc.awaitReply(ctx, func(m ClientMessage) bool {
		return m.Type == "selection" && m.Turn == turn
	})
	if err != nil {
		return "", err
	}
	for _, c := range playable {
		if c.ID == resp.CardID {
			return resp.CardID, nil
		}
	}
	// An unplayable answer locks as a pass rather than killing the duel.
	return "", nil
}

// ChooseDraftPick implements game.PlayerController. Invalid picks are
// handed back as-is; the draft degrades them to an auto-pick.
func (nc *NetworkController) ChooseDraftPick(ctx context.Context, player int, round int, category string, options []*game.Card) (string, error) {
	msg := ServerMessage{
		Type:     "choose_draft",
		Round:    round,
		Category: category,
		Options:  BuildCardViews(options),
	}
	if err := nc.send(msg); err != nil {
		return "", fmt.Errorf("send choose_draft: %w", err)
	}

	resp, err := nc.awaitReply(ctx, func(m ClientMessage) bool {
		return m.Type == "draft_pick" && m.Round == round
	})
	if err != nil {
		return "", err
	}
	return resp.CardID, nil
}

// SendSync pushes an authoritative state snapshot for the client to
// restore as its local mirror.
func (nc *NetworkController) SendSync(snapshot []byte) error {
	return nc.send(ServerMessage{Type: "sync", Snapshot: snapshot})
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string, doubleKO bool) error {
	return nc.send(ServerMessage{Type: "game_over", Winner: winner, Result: result, DoubleKO: doubleKO})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	return nc.send(ServerMessage{Type: "notify", Event: BuildEventView(event)})
}

package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/manaclash/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn    net.Conn
	catalog *game.Catalog
	in      io.Reader
	out     io.Writer

	// mirror is the latest authoritative snapshot pushed by the host.
	mirror *game.GameState
}

// Connect connects to a server, joins under the given name, and runs
// the REPL.
func Connect(ctx context.Context, addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with the player name
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for the draft to start...")

	client := &Client{conn: conn, catalog: game.StandardCatalog()}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.catalog == nil {
		c.catalog = game.StandardCatalog()
	}

	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_draft":
			c.renderDraft(msg.Round, msg.Category, msg.Options)
			idx := c.readChoice(reader, len(msg.Options))
			reply := ClientMessage{Type: "draft_pick", Round: msg.Round}
			if idx >= 0 && idx < len(msg.Options) {
				reply.CardID = msg.Options[idx].ID
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send draft_pick: %w", err)
			}

		case "choose_selection":
			c.renderState(msg.State)
			c.renderPlayable(msg.Playable, msg.TimeoutMS)
			idx := c.readChoiceOrPass(reader, len(msg.Playable))
			reply := ClientMessage{Type: "selection", Turn: msg.Turn}
			if idx >= 0 && idx < len(msg.Playable) {
				reply.CardID = msg.Playable[idx].ID
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send selection: %w", err)
			}

		case "sync":
			c.applySync(msg.Snapshot)

		case "game_over":
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	fmt.Fprintf(c.out, "T%-2d %-16s| %s\n", ev.Turn, ev.Phase, ev.Details)
}

func (c *Client) renderDraft(round int, category string, options []CardView) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Draft round %d/%d: pick a %s card\n", round, game.DraftRounds, category)
	for i, cv := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, formatCardLine(cv))
	}
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	c.renderSide("OPPONENT", sv.Opponent, true)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	c.renderSide("YOU", sv.You, false)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Turn %d | %s\n", sv.Turn, sv.Phase)
}

// renderSide prints one player's public board. Hands are public, so the
// opponent's remaining cards show with their costs.
func (c *Client) renderSide(label string, pv PlayerView, withHand bool) {
	fmt.Fprintf(c.out, "║  %s %s   HP %d/%d   Energy %d/%d\n",
		label, pv.Name, pv.HP, pv.MaxHP, pv.Energy, pv.MaxEnergy)
	if pv.Wall != nil {
		fmt.Fprintf(c.out, "║  Wall:  %s (%d/%d)\n", pv.Wall.Name, pv.Wall.HP, pv.Wall.MaxHP)
	} else {
		fmt.Fprintln(c.out, "║  Wall:  (none)")
	}
	if pv.Miner != nil {
		fmt.Fprintf(c.out, "║  Miner: %s [%s] fires in %d\n",
			pv.Miner.Name, pv.Miner.Kind, pv.Miner.Countdown)
	} else {
		fmt.Fprintln(c.out, "║  Miner: (none)")
	}
	if withHand && len(pv.Hand) > 0 {
		names := make([]string, len(pv.Hand))
		for i, cv := range pv.Hand {
			names[i] = fmt.Sprintf("%s (%d)", cv.Name, cv.Cost)
		}
		fmt.Fprintf(c.out, "║  Hand:  %s\n", strings.Join(names, ", "))
	}
}

func (c *Client) renderPlayable(playable []CardView, timeoutMS int) {
	fmt.Fprintln(c.out)
	if timeoutMS > 0 {
		fmt.Fprintf(c.out, "Playable (%ds to lock):\n", timeoutMS/1000)
	} else {
		fmt.Fprintln(c.out, "Playable:")
	}
	for i, cv := range playable {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, formatCardLine(cv))
	}
	fmt.Fprintln(c.out, "  0) Pass")
}

func formatCardLine(cv CardView) string {
	s := fmt.Sprintf("%s [%s %s] cost %d", cv.Name, cv.Element, cv.Subtype, cv.Cost)
	if cv.Power > 0 {
		s += fmt.Sprintf(", power %d", cv.Power)
	}
	return s
}

// applySync restores the host's snapshot as the local mirror and prints
// the running score.
func (c *Client) applySync(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	gs, err := game.RestoreGameState(raw, c.catalog)
	if err != nil {
		fmt.Fprintf(c.out, "state sync rejected: %v\n", err)
		return
	}
	c.mirror = gs
	p0, p1 := gs.Players[0], gs.Players[1]
	fmt.Fprintf(c.out, "    score: %s %d HP, %d energy / %s %d HP, %d energy\n",
		p0.Name, p0.HP, p0.Energy, p1.Name, p1.HP, p1.Energy)
}

// readChoice reads a 1-based pick and returns it 0-indexed. EOF falls
// back to the first option so a dead stdin cannot stall the draft.
func (c *Client) readChoice(reader *bufio.Reader, count int) int {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return 0
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			if err != nil {
				return 0
			}
			continue
		}
		return n - 1
	}
}

// readChoiceOrPass is readChoice with 0 (or a blank line, or EOF)
// meaning pass; a pass returns -1.
func (c *Client) readChoiceOrPass(reader *bufio.Reader, count int) int {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return -1
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 0 || n > count {
			fmt.Fprintf(c.out, "Enter 0 to pass or a number between 1 and %d\n", count)
			if err != nil {
				return -1
			}
			continue
		}
		return n - 1
	}
}

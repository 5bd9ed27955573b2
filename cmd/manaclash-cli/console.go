package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

// consoleController prompts a human player on the terminal. In hot-seat
// games a single instance serves both seats; the duel prompts one player
// at a time, so reads never interleave.
type consoleController struct {
	catalog *game.Catalog
	in      *bufio.Reader
	out     io.Writer
	hotSeat bool
}

func newConsoleController(catalog *game.Catalog) *consoleController {
	return &consoleController{
		catalog: catalog,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (cc *consoleController) ChooseSelection(ctx context.Context, state *game.GameState, player int, playable []*game.Card) (string, error) {
	you := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	if cc.hotSeat {
		fmt.Fprintf(cc.out, "\n[Pass the device to %s and press Enter]", you.Name)
		cc.in.ReadString('\n')
	}

	cc.renderBoard(you, opp, state.Turn.Number)

	if len(playable) == 0 {
		fmt.Fprintln(cc.out, "No playable cards. Passing.")
		return cc.lockIn(you.Name, "")
	}

	fmt.Fprintf(cc.out, "\n%s, choose a card to play:\n", you.Name)
	for i, c := range playable {
		fmt.Fprintf(cc.out, "  %d) %s\n", i+1, c.DisplayString())
	}
	fmt.Fprintln(cc.out, "  0) Pass")

	for {
		if state.Turn.TimerDuration > 0 {
			fmt.Fprintf(cc.out, "> (%ds to lock) ", int(state.Turn.TimerDuration.Seconds()))
		} else {
			fmt.Fprint(cc.out, "> ")
		}
		line, err := cc.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			// EOF locks a pass rather than hanging the duel.
			return cc.lockIn(you.Name, "")
		}
		if line == "" || line == "0" {
			return cc.lockIn(you.Name, "")
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(playable) {
			fmt.Fprintf(cc.out, "Invalid choice. Enter 0-%d.\n", len(playable))
			continue
		}
		return cc.lockIn(you.Name, playable[n-1].ID)
	}
}

// lockIn hides the pick before the device changes hands.
func (cc *consoleController) lockIn(name, cardID string) (string, error) {
	if cc.hotSeat {
		fmt.Fprint(cc.out, strings.Repeat("\n", 30))
		fmt.Fprintf(cc.out, "%s locked in.\n", name)
	}
	return cardID, nil
}

func (cc *consoleController) ChooseDraftPick(ctx context.Context, player, round int, category string, options []*game.Card) (string, error) {
	fmt.Fprintf(cc.out, "\nDraft round %d/%d: pick a %s card\n", round, game.DraftRounds, category)
	for i, c := range options {
		fmt.Fprintf(cc.out, "  %d) %s\n", i+1, c.DisplayString())
	}

	for {
		fmt.Fprint(cc.out, "> ")
		line, err := cc.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			// EOF takes the first option; the draft cannot stall.
			return options[0].ID, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(options) {
			fmt.Fprintf(cc.out, "Invalid choice. Enter 1-%d.\n", len(options))
			continue
		}
		return options[n-1].ID, nil
	}
}

// Notify is a no-op: local games print events through the shared TextLogger.
func (cc *consoleController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

func (cc *consoleController) renderBoard(you, opp *game.Player, turn int) {
	fmt.Fprintln(cc.out)
	fmt.Fprintln(cc.out, "╔══════════════════════════════════════════════════╗")
	cc.renderSide("THEM", opp)
	fmt.Fprintln(cc.out, "║──────────────────────────────────────────────────║")
	cc.renderSide("YOU", you)
	fmt.Fprintln(cc.out, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintf(cc.out, "Turn %d\n", turn)
}

func (cc *consoleController) renderSide(label string, p *game.Player) {
	fmt.Fprintf(cc.out, "║ %-4s %-14s HP %2d/%-2d  Energy %d/%d\n",
		label, p.Name, p.HP, p.MaxHP, p.Energy, p.MaxEnergy)

	wall := "(none)"
	if p.Wall != nil {
		wall = fmt.Sprintf("%s %d/%d", cc.cardName(p.Wall.CardID), p.Wall.HP, p.Wall.MaxHP)
	}
	miner := "(none)"
	if p.Miner != nil {
		miner = fmt.Sprintf("%s, fires in %d", cc.cardName(p.Miner.CardID), p.Miner.Countdown)
	}
	fmt.Fprintf(cc.out, "║      Wall: %-22s Miner: %s\n", wall, miner)

	// Hands are public; only this turn's selection is secret.
	if len(p.Hand) > 0 {
		parts := make([]string, len(p.Hand))
		for i, c := range p.Hand {
			parts[i] = fmt.Sprintf("%s(%d)", c.Name, c.Cost)
		}
		fmt.Fprintf(cc.out, "║      Hand: %s\n", strings.Join(parts, ", "))
	} else {
		fmt.Fprintln(cc.out, "║      Hand: (empty)")
	}
}

func (cc *consoleController) cardName(id string) string {
	if c, err := cc.catalog.ByID(id); err == nil {
		return c.Name
	}
	return id
}

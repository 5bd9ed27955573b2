package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/peterkuimelis/manaclash/internal/ai"
	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
	mcnet "github.com/peterkuimelis/manaclash/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "local":
		runLocal(os.Args[2:])
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	case "simulate":
		runSimulate(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  manaclash local [--vs hotseat|easy|medium|hard] [--name NAME] [--name2 NAME] [--seed N] [--timer SECONDS]")
	fmt.Println("  manaclash host [--port P] [--name NAME] [--seed N] [--timer SECONDS]")
	fmt.Println("  manaclash join [--addr ADDR] [--name NAME]")
	fmt.Println("  manaclash simulate [--games N] [--a1 DIFFICULTY] [--a2 DIFFICULTY] [--seed N] [-v]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  local     Draft and duel on this terminal, hot-seat or against the AI")
	fmt.Println("  host      Start a duel server and play as Player 1")
	fmt.Println("  join      Connect to a duel server and play as Player 2")
	fmt.Println("  simulate  Run AI-vs-AI duels and print the aggregate results")
}

func runLocal(args []string) {
	fs := flag.NewFlagSet("local", flag.ExitOnError)
	vs := fs.String("vs", "medium", "opponent: hotseat, easy, medium, or hard")
	name := fs.String("name", "P1", "player 1's name")
	name2 := fs.String("name2", "P2", "player 2's name (hot-seat only)")
	seed := fs.Int64("seed", 0, "draft RNG seed (0 = time-based)")
	timer := fs.Int("timer", 0, "selection timer in seconds (0 = untimed)")
	fs.Parse(args)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	catalog := game.StandardCatalog()
	logger := log.NewTextLogger(os.Stdout)
	ctx := context.Background()

	hotSeat := *vs == "hotseat"
	console := newConsoleController(catalog)
	console.hotSeat = hotSeat

	var ctrls [2]game.PlayerController
	names := [2]string{*name, *name2}
	ctrls[0] = console
	if hotSeat {
		ctrls[1] = console
	} else {
		diff, err := ai.ParseDifficulty(*vs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ctrls[1] = ai.New(diff, *seed+1)
		names[1] = fmt.Sprintf("AI (%s)", diff)
	}

	// Drafts run back to back: both players share the terminal.
	var decks [2][]*game.Card
	for p := 0; p < 2; p++ {
		fmt.Printf("\n=== %s drafts ===\n", names[p])
		dr := game.NewDraft(p, catalog, game.NewRNG(*seed+int64(p)), logger)
		deck, err := game.RunDraft(ctx, dr, ctrls[p])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		decks[p] = deck
	}

	duel, err := game.NewDuel(game.DuelConfig{
		Deck0:            decks[0],
		Deck1:            decks[1],
		Names:            names,
		Catalog:          catalog,
		Logger:           logger,
		SelectionTimeout: time.Duration(*timer) * time.Second,
		HotSeat:          hotSeat,
	}, ctrls[0], ctrls[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := duel.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Println(duel.State.Result)
	fmt.Println("═══════════════════════════════════")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	name := fs.String("name", "P1", "host player's name")
	seed := fs.Int64("seed", 0, "draft RNG seed (0 = time-based)")
	timer := fs.Int("timer", 30, "selection timer in seconds (0 = untimed)")
	fs.Parse(args)

	srv := &mcnet.Server{
		Port:     *port,
		HostName: *name,
		Seed:     *seed,
		Timeout:  time.Duration(*timer) * time.Second,
	}

	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	name := fs.String("name", "P2", "player name to join as")
	fs.Parse(args)

	if err := mcnet.Connect(context.Background(), *addr, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	games := fs.Int("games", 100, "number of duels to run")
	a1 := fs.String("a1", "medium", "player 1 difficulty: easy, medium, or hard")
	a2 := fs.String("a2", "medium", "player 2 difficulty: easy, medium, or hard")
	seed := fs.Int64("seed", 1, "base RNG seed; each game offsets from it")
	verbose := fs.Bool("v", false, "print the full event log of the first game")
	fs.Parse(args)

	d1, err := ai.ParseDifficulty(*a1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	d2, err := ai.ParseDifficulty(*a2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog := game.StandardCatalog()
	ctx := context.Background()

	var wins [2]int
	draws := 0
	totalTurns := 0

	for g := 0; g < *games; g++ {
		gameSeed := *seed + int64(g)*1000

		// Zero the think delay so batches run at full speed.
		mk := func(d ai.Difficulty, offset int64) *ai.Controller {
			p := ai.DefaultParams(d)
			p.DelayMinMS, p.DelayMaxMS = 0, 0
			return ai.NewWithParams(d, p, game.NewRNG(gameSeed+offset))
		}
		ctrls := [2]game.PlayerController{mk(d1, 10), mk(d2, 11)}

		var logger log.EventLogger = log.NewMemoryLogger()
		if *verbose && g == 0 {
			logger = log.NewTextLogger(os.Stdout)
		}

		var decks [2][]*game.Card
		for p := 0; p < 2; p++ {
			dr := game.NewDraft(p, catalog, game.NewRNG(gameSeed+int64(p)), logger)
			deck, err := game.RunDraft(ctx, dr, ctrls[p])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: game %d draft: %v\n", g, err)
				os.Exit(1)
			}
			decks[p] = deck
		}

		duel, err := game.NewDuel(game.DuelConfig{
			Deck0:   decks[0],
			Deck1:   decks[1],
			Names:   [2]string{fmt.Sprintf("AI (%s)", d1), fmt.Sprintf("AI (%s)", d2)},
			Catalog: catalog,
			Logger:  logger,
		}, ctrls[0], ctrls[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: game %d: %v\n", g, err)
			os.Exit(1)
		}

		winner, err := duel.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: game %d: %v\n", g, err)
			os.Exit(1)
		}

		if winner >= 0 {
			wins[winner]++
		} else {
			draws++
		}
		totalTurns += duel.State.Turn.Number
	}

	n := *games
	fmt.Printf("Simulated %d duels: %s vs %s (seed %d)\n", n, d1, d2, *seed)
	fmt.Printf("  P1 (%s) wins: %d (%.1f%%)\n", d1, wins[0], pct(wins[0], n))
	fmt.Printf("  P2 (%s) wins: %d (%.1f%%)\n", d2, wins[1], pct(wins[1], n))
	fmt.Printf("  Draws:        %d (%.1f%%)\n", draws, pct(draws, n))
	if n > 0 {
		fmt.Printf("  Average turns: %.1f\n", float64(totalTurns)/float64(n))
	}
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/peterkuimelis/manaclash/internal/game"
	"github.com/peterkuimelis/manaclash/internal/log"
)

// Server hosts a duel between the local player and one TCP joiner. The
// host plays through an in-process pipe to the same REPL the joiner
// runs, so both see the identical client surface.
type Server struct {
	Port     string
	HostName string
	Seed     int64         // draft option RNG seed (0 = time-based)
	Timeout  time.Duration // per-turn selection timer (0 = untimed)
}

// Run starts the server, waits for a client to join, drafts both decks,
// then runs the duel to its result.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Opponent connected from %s\n", conn.RemoteAddr())

	catalog := game.StandardCatalog()

	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()
	defer hostConn.Close()

	// Player 0 = host, Player 1 = joiner
	hostCtrl := NewNetworkController(hostServerConn, 0, catalog)
	joinerCtrl := NewNetworkController(conn, 1, catalog)

	// Run the host's local REPL in a goroutine
	errCh := make(chan error, 2)
	go func() {
		client := &Client{conn: hostConn, catalog: catalog, in: os.Stdin, out: os.Stdout}
		errCh <- client.RunREPL(ctx)
	}()

	joinerName, err := joinerCtrl.AwaitJoin(ctx)
	if err != nil {
		return fmt.Errorf("join handshake: %w", err)
	}
	names := [2]string{s.HostName, joinerName}
	if names[0] == "" {
		names[0] = "P1"
	}
	if names[1] == "" {
		names[1] = "P2"
	}
	fmt.Printf("%s joined\n", names[1])

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Draft both decks concurrently, each player on their own
	// connection. The offset keeps the two drafts from rolling
	// identical options.
	bus := log.NewBus()
	ctrls := [2]*NetworkController{hostCtrl, joinerCtrl}
	type draftResult struct {
		player int
		deck   []*game.Card
		err    error
	}
	draftCh := make(chan draftResult, 2)
	for p := 0; p < 2; p++ {
		go func(p int) {
			dr := game.NewDraft(p, catalog, game.NewRNG(seed+int64(p)), bus)
			deck, err := game.RunDraft(ctx, dr, ctrls[p])
			draftCh <- draftResult{player: p, deck: deck, err: err}
		}(p)
	}
	var decks [2][]*game.Card
	for i := 0; i < 2; i++ {
		r := <-draftCh
		if r.err != nil {
			return fmt.Errorf("player %d draft: %w", r.player, r.err)
		}
		decks[r.player] = r.deck
	}

	duel, err := game.NewDuel(game.DuelConfig{
		Deck0:            decks[0],
		Deck1:            decks[1],
		Names:            names,
		Catalog:          catalog,
		Logger:           bus,
		SelectionTimeout: s.Timeout,
	}, hostCtrl, joinerCtrl)
	if err != nil {
		return fmt.Errorf("create duel: %w", err)
	}

	// After every resolved turn, push the authoritative state to the
	// joiner's mirror. Subscribers run on the resolution goroutine, so
	// this reads the state directly rather than through Duel.Snapshot.
	cancelSync := bus.Subscribe(func(ev log.GameEvent) {
		snap, err := duel.State.Snapshot()
		if err != nil {
			return
		}
		_ = joinerCtrl.SendSync(snap)
	}, log.EventTurnEnd, log.EventVictory, log.EventDoubleKO)
	defer cancelSync()

	// Run the duel
	go func() {
		winner, err := duel.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("duel error: %w", err)
			return
		}

		// Send game_over to both players
		_ = joinerCtrl.SendGameOver(winner, duel.State.Result, duel.State.DoubleKO)
		_ = hostCtrl.SendGameOver(winner, duel.State.Result, duel.State.DoubleKO)
		errCh <- nil
	}()

	// Wait for the duel; a clean finish then waits for the host REPL to
	// render the result before the deferred closes cut the connections.
	if err := <-errCh; err != nil {
		return err
	}
	return <-errCh
}

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	mcmcp "github.com/peterkuimelis/manaclash/internal/mcp"
)

func main() {
	port := flag.String("port", "9999", "TCP port for the human player connection")
	seed := flag.Int64("seed", 0, "draft RNG seed (0 = time-based)")
	timer := flag.Int("timer", 0, "selection timer in seconds (0 = untimed)")
	flag.Parse()

	mcmcp.SetPort(*port)
	mcmcp.SetDraftSeed(*seed)
	mcmcp.SetSelectionTimeout(time.Duration(*timer) * time.Second)

	s := server.NewMCPServer("manaclash", "1.0.0")
	mcmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

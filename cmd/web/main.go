package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/manaclash/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	catalogFile := flag.String("catalog", "", "path to a catalog YAML file (empty = built-in catalog)")
	flag.Parse()

	srv, err := web.NewServer(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("manaclash web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"folio/internal/effect"
	"folio/internal/stage"
)

func main() {
	log.SetPrefix("[folio] ")
	log.SetFlags(log.Ltime)

	cfg := ""
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	settings, err := effect.LoadSettings(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := stage.Run(settings); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

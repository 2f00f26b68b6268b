package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	dbDir  = flag.String("db", "", "preferences database directory (default: platform data dir)")
	noDB   = flag.Bool("nodb", false, "do not load or save preferences")
	depth  = flag.Int("depth", 0, "search depth in plies (overrides saved preferences)")
	pseudo = flag.Bool("pseudo", false, "search pseudo-legal moves")
)

func main() {
	flag.Parse()

	// UCI owns stdout; diagnostics go to stderr.
	log.SetOutput(os.Stderr)

	var store *storage.Storage
	prefs := storage.DefaultPreferences()
	if !*noDB {
		var err error
		store, err = openStorage(*dbDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		} else {
			defer store.Close()
			if prefs, err = store.LoadPreferences(); err != nil {
				log.Printf("Warning: Failed to load preferences: %v", err)
			}
		}
	}

	cfg := prefs.EngineConfig()
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *pseudo {
		cfg.Legality = engine.PseudoLegal
	}
	eng := engine.NewEngine(cfg)

	// Create and run UCI protocol handler
	protocol := uci.New(eng)
	if err := protocol.Run(); err != nil {
		log.Printf("uci: %v", err)
	}

	if store != nil {
		final := eng.Config()
		prefs.Depth = final.Depth
		prefs.Legality = final.Legality
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: Failed to save preferences: %v", err)
		}
	}
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}

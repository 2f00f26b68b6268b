package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/selfplay"
	"github.com/hailam/chesscore/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := selfplay.DefaultConfig()
	var (
		dbDir      string
		difficulty string
		pseudo     bool
		list       int
	)
	flag.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "games played in parallel")
	flag.IntVar(&cfg.MaxPlies, "maxplies", cfg.MaxPlies, "half-moves before a game is adjudicated a draw")
	flag.IntVar(&cfg.Engine.Depth, "depth", cfg.Engine.Depth, "search depth in plies")
	flag.StringVar(&difficulty, "difficulty", "", "easy, medium or hard (overrides -depth)")
	flag.BoolVar(&pseudo, "pseudo", false, "search pseudo-legal moves")
	flag.StringVar(&dbDir, "db", "", "database directory (default: platform data dir)")
	flag.IntVar(&list, "list", 0, "list the most recent N stored games and exit")
	flag.Parse()

	if difficulty != "" {
		d, err := engine.ParseDifficulty(difficulty)
		if err != nil {
			return err
		}
		cfg.Engine.Depth = engine.DifficultySettings[d]
	}
	if pseudo {
		cfg.Engine.Legality = engine.PseudoLegal
	}

	store, err := openStorage(dbDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if list > 0 {
		return listGames(store, list)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("self-play started: %+v", cfg)
	summary, err := selfplay.Run(ctx, cfg, store)
	log.Printf("self-play finished: %s", summary)
	if err != nil {
		return err
	}

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	log.Printf("all recorded games: %d played, white score %.1f%%, average length %.1f plies, longest %d",
		stats.GamesPlayed, stats.WhiteScore(), stats.AveragePlies(), stats.LongestGame)
	return nil
}

func listGames(store *storage.Storage, n int) error {
	games, err := store.ListGames(n)
	if err != nil {
		return err
	}
	for _, g := range games {
		log.Printf("#%d %s %s (%d plies) %v", g.ID, g.Result, g.Termination, len(g.Moves), g.SAN)
	}
	return nil
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}

// Package selfplay plays engine-versus-engine games concurrently and hands
// the finished games to a Recorder.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

// EngineName is the player name stored for both sides.
const EngineName = "chesscore"

// Recorder receives every finished game. RecordGame may be called from
// several goroutines at once.
type Recorder interface {
	RecordGame(rec *storage.GameRecord) error
}

// Config controls a self-play run.
type Config struct {
	Games       int           // Number of games to play
	Concurrency int           // Games played at the same time
	MaxPlies    int           // Games reaching this many half-moves are drawn
	Engine      engine.Config // Used for both sides
	Openings    []string      // SAN move lines; DefaultOpenings when empty
}

// DefaultConfig returns a small run with the default engine.
func DefaultConfig() Config {
	return Config{
		Games:       10,
		Concurrency: 4,
		MaxPlies:    200,
		Engine:      engine.DefaultConfig(),
	}
}

// Summary tallies the results of a run.
type Summary struct {
	Games     int
	WhiteWins int
	BlackWins int
	Draws     int
}

func (s *Summary) add(o game.Outcome) {
	s.Games++
	switch o {
	case game.WhiteWon:
		s.WhiteWins++
	case game.BlackWon:
		s.BlackWins++
	default:
		s.Draws++
	}
}

// String returns the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("games %d: white %d, black %d, draws %d", s.Games, s.WhiteWins, s.BlackWins, s.Draws)
}

type gameInfo struct {
	gameNumber int
	opening    string
}

type gameResult struct {
	gameInfo gameInfo
	record   *storage.GameRecord
	outcome  game.Outcome
}

// Run plays cfg.Games games and records each one. It stops at the first
// error or when ctx is cancelled.
func Run(ctx context.Context, cfg Config, recorder Recorder) (Summary, error) {
	var summary Summary
	if cfg.Games <= 0 {
		return summary, nil
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = DefaultConfig().MaxPlies
	}
	openings := cfg.Openings
	if len(openings) == 0 {
		openings = DefaultOpenings
	}

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < cfg.Games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{gameNumber: i + 1, opening: openings[i%len(openings)]}:
			}
		}
		return nil
	})

	g.Go(func() error {
		for res := range gameResults {
			if err := recorder.RecordGame(res.record); err != nil {
				return fmt.Errorf("record game %d: %w", res.gameInfo.gameNumber, err)
			}
			summary.add(res.outcome)
			log.Printf("game %d finished: %s after %d plies (%s)",
				res.gameInfo.gameNumber, res.record.Result, len(res.record.Moves), summary)
		}
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	err := g.Wait()
	return summary, err
}

func playGames(
	ctx context.Context,
	cfg Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var eng = engine.NewEngine(cfg.Engine)
	for info := range gameInfos {
		var res, err = playGame(ctx, eng, cfg.MaxPlies, info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func playGame(ctx context.Context, eng *engine.Engine, maxPlies int, info gameInfo) (gameResult, error) {
	started := time.Now()
	g := game.New()

	for _, san := range ParseOpening(info.opening) {
		if err := g.PlaySAN(san); err != nil {
			return gameResult{}, fmt.Errorf("game %d opening %q: %w", info.gameNumber, info.opening, err)
		}
	}

	for !g.IsOver() && len(g.Moves()) < maxPlies {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		if err := playEngineMove(eng, g); err != nil {
			return gameResult{}, fmt.Errorf("game %d: %w", info.gameNumber, err)
		}
	}

	// Games cut off by the ply limit are adjudicated as draws.
	outcome := game.Draw
	if g.IsOver() {
		outcome = g.Outcome()
	}

	return gameResult{
		gameInfo: info,
		record:   storage.NewGameRecord(g, EngineName, EngineName, started, outcome),
		outcome:  outcome,
	}, nil
}

// playEngineMove plays the engine's choice for the side to move. A choice
// that is not legal, which the pseudo-legal search can produce, is replaced
// by the first legal move.
func playEngineMove(eng *engine.Engine, g *game.Game) error {
	res := eng.Search(g.Position())
	if res.Move == board.NoMove {
		return errors.New("engine returned no move in an ongoing game")
	}

	err := g.Play(res.Move)
	if err == nil || !errors.Is(err, board.ErrIllegalMove) {
		return err
	}

	legal := g.LegalMoves()
	if legal.Len() == 0 {
		return err
	}
	return g.Play(legal.Get(0))
}

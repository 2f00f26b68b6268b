package engine

import (
	"fmt"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultDepth is the search depth in plies used when none is configured.
const DefaultDepth = 3

// Config holds the engine settings.
type Config struct {
	Depth    int          // Plies searched from the root
	Legality LegalityMode // Move set used inside the search
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{Depth: DefaultDepth, Legality: StrictLegality}
}

// normalize clamps the depth into the supported range.
func (c Config) normalize() Config {
	if c.Depth <= 0 {
		c.Depth = DefaultDepth
	}
	if c.Depth > MaxDepth {
		c.Depth = MaxDepth
	}
	return c
}

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchResult is the outcome of a search.
type SearchResult struct {
	Move  board.Move // NoMove when the side has nothing to play
	Score int        // From the searching side's perspective
	Nodes uint64
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 1 ply
	Medium                   // 2 ply
	Hard                     // 3 ply
)

// DifficultySettings maps difficulty to search depth.
var DifficultySettings = map[Difficulty]int{
	Easy:   1,
	Medium: 2,
	Hard:   3,
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI engine. An Engine runs one search at a time;
// use one Engine per goroutine.
type Engine struct {
	cfg      Config
	searcher *Searcher

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine. A non-positive depth selects
// DefaultDepth.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.normalize()
	return &Engine{
		cfg:      cfg,
		searcher: NewSearcher(cfg.Legality),
	}
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetDepth sets the search depth in plies.
func (e *Engine) SetDepth(depth int) {
	e.cfg.Depth = depth
	e.cfg = e.cfg.normalize()
}

// SetLegality sets the legality mode used inside the search.
func (e *Engine) SetLegality(mode LegalityMode) {
	e.cfg.Legality = mode
	e.searcher = NewSearcher(mode)
}

// SetDifficulty sets the search depth from a difficulty preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	depth, ok := DifficultySettings[d]
	if !ok {
		depth = DefaultDepth
	}
	e.SetDepth(depth)
}

// BestMove returns the move the engine would play for color c.
// The boolean is false when c has no candidate move.
func (e *Engine) BestMove(pos *board.Position, c board.Color) (board.Move, bool) {
	res := e.SearchColor(pos, c)
	return res.Move, res.Move != board.NoMove
}

// Search finds the best move for the side to move.
func (e *Engine) Search(pos *board.Position) SearchResult {
	return e.SearchColor(pos, pos.SideToMove)
}

// SearchColor finds the best move for color c. pos is not modified.
func (e *Engine) SearchColor(pos *board.Position, c board.Color) SearchResult {
	e.searcher.Reset()
	startTime := time.Now()

	move, score := e.searcher.Search(pos.Copy(), c, e.cfg.Depth)
	res := SearchResult{Move: move, Score: score, Nodes: e.searcher.Nodes()}
	if move == board.NoMove {
		res.Score = 0
	}

	// Report info
	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth: e.cfg.Depth,
			Score: res.Score,
			Nodes: res.Nodes,
			Time:  time.Since(startTime),
			Move:  res.Move,
		})
	}

	return res
}

// Perft counts the leaf nodes of the legal move tree (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return Perft(pos.Copy(), depth)
}

// Perft counts the leaf nodes of the legal move tree of the given depth.
// pos is restored before returning.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString converts a score from a search of the given depth to a
// human-readable string.
func ScoreToString(score, depth int) string {
	if IsMateScore(score) {
		ply := MatePly(score, depth)
		if ply > 0 {
			return fmt.Sprintf("Mate in %d", (ply+1)/2)
		}
		return fmt.Sprintf("Mated in %d", (-ply+1)/2)
	}
	return fmt.Sprintf("%+d", score)
}

// Package game tracks a chess game: the current position, the move history
// with undo and redo, and the result once the game ends.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// ErrGameOver is returned when a move is played after the game has ended.
var ErrGameOver = errors.New("game is over")

// Outcome is the result of a game.
type Outcome int

const (
	NoOutcome Outcome = iota
	WhiteWon
	BlackWon
	Draw
)

// String returns the PGN result token.
func (o Outcome) String() string {
	switch o {
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ParseOutcome parses a PGN result token.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "1-0":
		return WhiteWon, nil
	case "0-1":
		return BlackWon, nil
	case "1/2-1/2":
		return Draw, nil
	case "*":
		return NoOutcome, nil
	}
	return NoOutcome, fmt.Errorf("invalid result %q", s)
}

// Termination tells why a game ended.
type Termination int

const (
	NotTerminated Termination = iota
	ByCheckmate
	ByStalemate
	ByFiftyMoves
	ByRepetition
)

// String returns a human-readable reason.
func (t Termination) String() string {
	switch t {
	case ByCheckmate:
		return "checkmate"
	case ByStalemate:
		return "stalemate"
	case ByFiftyMoves:
		return "50-move rule"
	case ByRepetition:
		return "threefold repetition"
	default:
		return "none"
	}
}

// ply is one played half-move with what is needed to take it back.
type ply struct {
	move board.Move
	undo board.Undo
	san  string
}

// Game holds a position and its history. It is not safe for concurrent use.
type Game struct {
	startFEN string
	position *board.Position
	played   []ply
	redo     []board.Move

	// keys[i] identifies the position after i half-moves, for repetition detection.
	keys []string
}

// New creates a game from the standard starting position.
func New() *Game {
	g, _ := FromFEN(board.StartFEN)
	return g
}

// FromFEN creates a game starting from the given FEN.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		startFEN: pos.ToFEN(),
		position: pos,
		keys:     []string{positionKey(pos)},
	}, nil
}

// positionKey identifies a position for repetition: placement, side to move,
// castling rights and en passant square.
func positionKey(pos *board.Position) string {
	fields := strings.Fields(pos.ToFEN())
	return strings.Join(fields[:4], " ")
}

// StartFEN returns the FEN the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	return g.position.Copy()
}

// FEN returns the FEN of the current position.
func (g *Game) FEN() string {
	return g.position.ToFEN()
}

// SideToMove returns the color to move.
func (g *Game) SideToMove() board.Color {
	return g.position.SideToMove
}

// LegalMoves returns the legal moves for the side to move.
func (g *Game) LegalMoves() *board.MoveList {
	return g.position.GenerateLegalMoves()
}

// LegalMovesFrom returns the legal moves of the piece on sq, which must
// belong to the side to move.
func (g *Game) LegalMovesFrom(sq board.Square) (*board.MoveList, error) {
	if sq.IsValid() {
		piece := g.position.PieceAt(sq)
		if !piece.IsNone() && piece.Color() != g.position.SideToMove {
			return nil, fmt.Errorf("%w: %s", board.ErrWrongColor, sq)
		}
	}
	return g.position.LegalMovesFrom(sq)
}

// Play validates and applies a move. A promotion without a chosen piece
// promotes to a queen. Playing a move clears the redo stack.
func (g *Game) Play(m board.Move) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if err := g.position.ValidateMove(m); err != nil {
		return err
	}
	g.push(m.Resolve(g.position))
	g.redo = g.redo[:0]
	return nil
}

// PlayUCI plays a move in long algebraic notation ("e2e4", "e7e8q").
func (g *Game) PlayUCI(s string) error {
	m, err := board.ParseMove(s, g.position)
	if err != nil {
		return err
	}
	return g.Play(m)
}

// PlaySAN plays a move in Standard Algebraic Notation.
func (g *Game) PlaySAN(s string) error {
	m, err := board.ParseSAN(s, g.position)
	if err != nil {
		return err
	}
	return g.Play(m)
}

func (g *Game) push(m board.Move) {
	san := m.ToSAN(g.position)
	undo := g.position.MakeMove(m)
	g.played = append(g.played, ply{move: m, undo: undo, san: san})
	g.keys = append(g.keys, positionKey(g.position))
}

// Undo takes back the last move. It returns false when there is none.
// Captured pieces, the castling rook, has-moved flags and the previous
// last-move record are all restored.
func (g *Game) Undo() bool {
	if len(g.played) == 0 {
		return false
	}
	last := g.played[len(g.played)-1]
	g.played = g.played[:len(g.played)-1]
	g.keys = g.keys[:len(g.keys)-1]

	g.position.UnmakeMove(last.move, last.undo)
	g.redo = append(g.redo, last.move)
	return true
}

// Redo replays the last undone move. It returns false when there is none.
func (g *Game) Redo() bool {
	if len(g.redo) == 0 {
		return false
	}
	m := g.redo[len(g.redo)-1]
	g.redo = g.redo[:len(g.redo)-1]
	g.push(m)
	return true
}

// CanUndo reports whether a move can be taken back.
func (g *Game) CanUndo() bool {
	return len(g.played) > 0
}

// CanRedo reports whether an undone move can be replayed.
func (g *Game) CanRedo() bool {
	return len(g.redo) > 0
}

// Status classifies the current position for the side to move.
func (g *Game) Status() board.Status {
	return g.position.Status()
}

// Termination returns why the game ended, or NotTerminated.
func (g *Game) Termination() Termination {
	switch g.position.Status() {
	case board.Checkmate:
		return ByCheckmate
	case board.Stalemate:
		return ByStalemate
	}
	if g.position.HalfMoveClock >= 100 {
		return ByFiftyMoves
	}
	if g.isThreefoldRepetition() {
		return ByRepetition
	}
	return NotTerminated
}

// isThreefoldRepetition checks if the current position has occurred 3 times.
func (g *Game) isThreefoldRepetition() bool {
	// Need at least 5 positions (4 half-moves) for threefold repetition
	if len(g.keys) < 5 {
		return false
	}
	current := g.keys[len(g.keys)-1]
	count := 0
	for _, k := range g.keys {
		if k == current {
			count++
		}
	}
	return count >= 3
}

// Outcome returns the result of the game, NoOutcome while it is ongoing.
func (g *Game) Outcome() Outcome {
	switch g.Termination() {
	case ByCheckmate:
		if g.position.SideToMove == board.White {
			return BlackWon
		}
		return WhiteWon
	case NotTerminated:
		return NoOutcome
	default:
		return Draw
	}
}

// IsOver returns true if the game has ended.
func (g *Game) IsOver() bool {
	return g.Termination() != NotTerminated
}

// Result returns a sentence describing the result, empty while ongoing.
func (g *Game) Result() string {
	t := g.Termination()
	switch g.Outcome() {
	case WhiteWon:
		return "White wins by " + t.String()
	case BlackWon:
		return "Black wins by " + t.String()
	case Draw:
		return "Draw by " + t.String()
	}
	return ""
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	moves := make([]board.Move, len(g.played))
	for i, p := range g.played {
		moves[i] = p.move
	}
	return moves
}

// SAN returns the moves played so far in Standard Algebraic Notation.
func (g *Game) SAN() []string {
	san := make([]string, len(g.played))
	for i, p := range g.played {
		san[i] = p.san
	}
	return san
}

// UCIMoves returns the moves played so far in long algebraic notation.
func (g *Game) UCIMoves() []string {
	out := make([]string, len(g.played))
	for i, p := range g.played {
		out[i] = p.move.String()
	}
	return out
}

// LastMove returns the most recent move, or NoMove.
func (g *Game) LastMove() board.Move {
	if len(g.played) == 0 {
		return board.NoMove
	}
	return g.played[len(g.played)-1].move
}

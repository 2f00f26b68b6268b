// Package engine implements the chess AI: a material evaluator and a
// fixed-depth minimax search with alpha-beta pruning.
package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Evaluation constants, in pawns.
const (
	PawnValue   = 1
	KnightValue = 3
	BishopValue = 3
	RookValue   = 5
	QueenValue  = 9
	KingValue   = 1000 // Sentinel; a king is never captured under legal play
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// PieceValue returns the material value of a piece type.
func PieceValue(pt board.PieceType) int {
	if pt > board.NoPieceType {
		return 0
	}
	return pieceValues[pt]
}

// Material returns the material balance from the perspective of color c:
// the value of c's pieces minus the value of the opponent's.
func Material(pos *board.Position, c board.Color) int {
	score := 0
	for sq := board.A8; sq < board.NoSquare; sq++ {
		piece := pos.Squares[sq]
		if piece.IsNone() {
			continue
		}
		if piece.Color() == c {
			score += pieceValues[piece.Type()]
		} else {
			score -= pieceValues[piece.Type()]
		}
	}
	return score
}

// Evaluate returns the static evaluation for the side to move.
func Evaluate(pos *board.Position) int {
	return Material(pos, pos.SideToMove)
}

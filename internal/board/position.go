package board

import (
	"errors"
	"fmt"
	"strings"
)

// Position represents a complete chess position.
// It is a plain value: assigning or copying a Position yields an
// independent board, which is how search branches are isolated.
type Position struct {
	// Squares holds the piece on each square, NoPiece when empty.
	Squares [64]Piece

	// Game state
	SideToMove     Color
	LastMove       Move // Most recently applied move, NoMove if none
	HalfMoveClock  int  // Moves since last pawn move or capture
	FullMoveNumber int  // Full move counter, starts at 1
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// EmptyPosition returns a board with no pieces, White to move.
func EmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq).IsNone()
}

// at returns the piece at (row, col); the caller guarantees bounds.
func (p *Position) at(row, col int) Piece {
	return p.Squares[row*8+col]
}

// SetPiece places a piece on a square, replacing whatever was there.
func (p *Position) SetPiece(piece Piece, sq Square) {
	if !sq.IsValid() {
		return
	}
	p.Squares[sq] = piece
}

// removePiece removes and returns the piece on a square.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.Squares[sq]
	p.Squares[sq] = NoPiece
	return piece
}

// KingSquare locates the king of color c, NoSquare if it is missing.
func (p *Position) KingSquare(c Color) Square {
	want := NewPiece(King, c)
	for sq := A8; sq < NoSquare; sq++ {
		if p.Squares[sq].Base() == want {
			return sq
		}
	}
	return NoSquare
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			piece := p.at(row, col)
			if piece.IsNone() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Last move: %s\n", p.LastMove)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		SideToMove:     White,
		LastMove:       NoMove,
		FullMoveNumber: 1,
	}
	for sq := range p.Squares {
		p.Squares[sq] = NoPiece
	}
}

// Validate checks if the position is valid.
func (p *Position) Validate() error {
	var kings [2]int
	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Squares[sq]
		if piece.IsNone() {
			continue
		}
		switch piece.Type() {
		case King:
			kings[piece.Color()]++
		case Pawn:
			if sq.Row() == 0 || sq.Row() == 7 {
				return errors.New("pawns cannot be on rank 1 or 8")
			}
		}
	}

	// Check that each side has exactly one king
	if kings[White] != 1 {
		return errors.New("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return errors.New("black must have exactly one king")
	}

	// The side that just moved cannot have left its king attacked
	if p.IsInCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%s king is in check with %s to move", p.SideToMove.Other(), p.SideToMove)
	}

	return nil
}

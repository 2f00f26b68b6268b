package board

import (
	"errors"
	"fmt"
)

// Move validation errors.
var (
	ErrNoPiece     = errors.New("no piece on square")
	ErrWrongColor  = errors.New("piece does not belong to the side to move")
	ErrIllegalMove = errors.New("illegal move")
)

// Status classifies a position for the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// IsInCheck returns true if the king of color c is attacked.
//
// Every enemy piece other than the king is tested through its pseudo-legal
// moves. The enemy king is tested by fixed adjacency and never through the
// move generator, since king generation itself asks for check detection
// when it considers castling.
func (p *Position) IsInCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	them := c.Other()
	ml := NewMoveList()

	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Squares[sq]
		if piece.IsNone() || piece.Color() != them {
			continue
		}

		if piece.Type() == King {
			if abs(sq.Row()-ksq.Row()) <= 1 && abs(sq.Col()-ksq.Col()) <= 1 {
				return true
			}
			continue
		}

		ml.Clear()
		p.generatePieceMoves(sq, piece, ml)
		for i := 0; i < ml.Len(); i++ {
			if ml.Get(i).To == ksq {
				return true
			}
		}
	}
	return false
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsInCheck(p.SideToMove)
}

// isLegal reports whether a pseudo-legal move of color us keeps its king safe.
// Capturing a king is never legal.
func (p *Position) isLegal(m Move, us Color) bool {
	if p.Squares[m.To].Type() == King {
		return false
	}
	child := *p
	child.MakeMove(m)
	return !child.IsInCheck(us)
}

// LegalMoves generates all legal moves for color c, in pseudo-legal order.
func (p *Position) LegalMoves(c Color) *MoveList {
	return p.filterLegalMoves(p.PseudoLegalMoves(c), c)
}

// GenerateLegalMoves generates all legal moves for the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.LegalMoves(p.SideToMove)
}

// LegalMovesFrom returns the legal moves of the piece on sq.
func (p *Position) LegalMovesFrom(sq Square) (*MoveList, error) {
	if !sq.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, sq)
	}
	piece := p.Squares[sq]
	if piece.IsNone() {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, sq)
	}
	return p.filterLegalMoves(p.PseudoLegalMovesFrom(sq), piece.Color()), nil
}

// filterLegalMoves keeps the moves that do not leave us in check.
func (p *Position) filterLegalMoves(ml *MoveList, us Color) *MoveList {
	legal := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.isLegal(m, us) {
			legal.Add(m)
		}
	}
	return legal
}

// HasAnyLegalMove returns true if color c has at least one legal move.
// It stops at the first one found.
func (p *Position) HasAnyLegalMove(c Color) bool {
	ml := NewMoveList()
	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Squares[sq]
		if piece.IsNone() || piece.Color() != c {
			continue
		}
		ml.Clear()
		p.generatePieceMoves(sq, piece, ml)
		for i := 0; i < ml.Len(); i++ {
			if p.isLegal(ml.Get(i), c) {
				return true
			}
		}
	}
	return false
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	return p.HasAnyLegalMove(p.SideToMove)
}

// StatusOf classifies the position for color c.
func (p *Position) StatusOf(c Color) Status {
	inCheck := p.IsInCheck(c)
	hasMove := p.HasAnyLegalMove(c)
	switch {
	case inCheck && !hasMove:
		return Checkmate
	case !hasMove:
		return Stalemate
	case inCheck:
		return Check
	default:
		return Ongoing
	}
}

// Status classifies the position for the side to move.
func (p *Position) Status() Status {
	return p.StatusOf(p.SideToMove)
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.Status() == Checkmate
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return p.Status() == Stalemate
}

// ValidateMove checks that m is a legal move for the side to move.
func (p *Position) ValidateMove(m Move) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidSquare, m)
	}
	piece := p.Squares[m.From]
	if piece.IsNone() {
		return fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}
	if piece.Color() != p.SideToMove {
		return fmt.Errorf("%w: %s on %s", ErrWrongColor, piece.Color(), m.From)
	}
	if m.Promotion != NoPieceType && (!m.Promotion.IsPromotionTarget() || !m.IsPromotion(p)) {
		return fmt.Errorf("%w: %s has an invalid promotion", ErrIllegalMove, m)
	}
	legal, err := p.LegalMovesFrom(m.From)
	if err != nil {
		return err
	}
	if !legal.Contains(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return nil
}

package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
//
// Castling availability is expressed through has-moved flags: a king or
// corner rook that is not covered by a castling right is marked as moved.
// An en passant square is turned into the double pawn push that allows it,
// recorded as the position's last move.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := EmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		if err := parseEnPassant(pos, sq); err != nil {
			return nil, err
		}
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error. Intended for tests
// and package-level fixtures.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0

		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				col += int(c - '0')
			} else {
				// Place a piece
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				pos.SetPiece(piece, NewSquare(row, col))
				col++
			}
		}

		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}

	return nil
}

// castlingField describes one castling right and the rook it depends on.
type castlingField struct {
	char  byte
	color Color
	col   int
}

var castlingFields = [4]castlingField{
	{'K', White, 7},
	{'Q', White, 0},
	{'k', Black, 7},
	{'q', Black, 0},
}

// parseCastlingRights parses the castling rights section of a FEN string
// and marks kings and rooks without rights as moved.
func parseCastlingRights(pos *Position, castling string) error {
	if castling != "-" {
		for i := 0; i < len(castling); i++ {
			if strings.IndexByte("KQkq", castling[i]) < 0 {
				return fmt.Errorf("invalid castling character: %c", castling[i])
			}
		}
	}

	var kingKeeps [2]bool
	for _, f := range castlingFields {
		row := homeRow(f.color)
		rookSq := NewSquare(row, f.col)
		rook := pos.Squares[rookSq]
		hasRight := strings.IndexByte(castling, f.char) >= 0
		if hasRight {
			kingKeeps[f.color] = true
		}
		if rook.Type() == Rook && rook.Color() == f.color && !hasRight {
			pos.Squares[rookSq] = rook.WithMoved(true)
		}
	}

	for sq := A8; sq < NoSquare; sq++ {
		piece := pos.Squares[sq]
		switch piece.Type() {
		case King:
			c := piece.Color()
			if !kingKeeps[c] || sq != NewSquare(homeRow(c), 4) {
				pos.Squares[sq] = piece.WithMoved(true)
			}
		case Rook:
			c := piece.Color()
			if sq.Row() != homeRow(c) || (sq.Col() != 0 && sq.Col() != 7) {
				pos.Squares[sq] = piece.WithMoved(true)
			}
		case Pawn:
			if sq.Row() != pawnStartRow(piece.Color()) {
				pos.Squares[sq] = piece.WithMoved(true)
			}
		}
	}

	return nil
}

// parseEnPassant records the double push that makes target capturable.
func parseEnPassant(pos *Position, target Square) error {
	// The pushing side is the one not to move.
	pusher := pos.SideToMove.Other()
	dir := pawnDirection(pusher)
	from := NewSquare(target.Row()-dir, target.Col())
	to := NewSquare(target.Row()+dir, target.Col())

	if target.Row() != pawnStartRow(pusher)+dir {
		return fmt.Errorf("invalid en passant square: %s", target)
	}
	if pawn := pos.Squares[to]; pawn.Type() != Pawn || pawn.Color() != pusher {
		return fmt.Errorf("invalid en passant square: %s has no pushed pawn", target)
	}

	pos.LastMove = NewMove(from, to)
	return nil
}

// enPassantSquare returns the square passed over by the last double push.
func (p *Position) enPassantSquare() Square {
	last := p.LastMove
	if !last.IsValid() || last.From.Col() != last.To.Col() || abs(last.From.Row()-last.To.Row()) != 2 {
		return NoSquare
	}
	if p.Squares[last.To].Type() != Pawn {
		return NoSquare
	}
	return NewSquare((last.From.Row()+last.To.Row())/2, last.To.Col())
}

// castlingString derives the FEN castling field from has-moved flags.
func (p *Position) castlingString() string {
	var sb strings.Builder
	for _, f := range castlingFields {
		row := homeRow(f.color)
		king := p.Squares[NewSquare(row, 4)]
		if king.Type() != King || king.Color() != f.color || king.HasMoved() {
			continue
		}
		if p.castlingRookReady(row, f.col, f.color) {
			sb.WriteByte(f.char)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := p.at(row, col)
			if piece.IsNone() {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.castlingString())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.enPassantSquare().String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

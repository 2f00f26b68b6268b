package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if !m.IsValid() {
		return "-"
	}

	from := m.From
	to := m.To
	piece := pos.PieceAt(from)

	if piece.IsNone() {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder
	pt := piece.Type()

	if m.IsCastling(pos) {
		if to.Col() > from.Col() {
			sb.WriteString("O-O") // Kingside
		} else {
			sb.WriteString("O-O-O") // Queenside
		}
	} else {
		// Piece letter (not for pawns)
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(getDisambiguation(pos, m, pt))
		}

		// Capture marker
		if m.IsCapture(pos) {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.Col()))
			}
			sb.WriteByte('x')
		}

		// Destination square
		sb.WriteString(to.String())

		// Promotion
		if m.IsPromotion(pos) {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.PromotionPiece()])
		}
	}

	// Check/checkmate marker
	next := pos.Apply(m)
	switch next.Status() {
	case Checkmate:
		sb.WriteByte('#')
	case Check:
		sb.WriteByte('+')
	}

	return sb.String()
}

// getDisambiguation returns the disambiguation string needed for a move.
func getDisambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From
	us := pos.PieceAt(from).Color()

	// Find all other pieces of the same type that can move to the same square
	var candidates []Square
	allMoves := pos.LegalMoves(us)
	for i := 0; i < allMoves.Len(); i++ {
		move := allMoves.Get(i)
		if move.To != m.To || move.From == from {
			continue
		}
		if pos.PieceAt(move.From).Type() == pt {
			candidates = append(candidates, move.From)
		}
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.Col() == from.Col() {
			sameFile = true
		}
		if sq.Row() == from.Row() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.Col()))
	}
	if !sameRank {
		return string(rune('8' - from.Row()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the corresponding legal move
// for the side to move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	orig := s
	us := pos.SideToMove
	row := homeRow(us)

	// Handle castling
	switch strings.TrimRight(s, "+#") {
	case "O-O", "0-0":
		return resolveSAN(pos, NewMove(NewSquare(row, 4), NewSquare(row, 6)), orig)
	case "O-O-O", "0-0-0":
		return resolveSAN(pos, NewMove(NewSquare(row, 4), NewSquare(row, 2)), orig)
	}

	// Remove check/checkmate markers
	s = strings.TrimRight(s, "+#")

	// Parse promotion
	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion in %q", orig)
		}
		s = s[:idx]
	}

	// Remove capture marker
	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid piece letter in %q", orig)
		}
		s = s[1:]
	}

	// Parse destination (last 2 characters)
	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	// Parse disambiguation (file, rank, or both)
	disambigCol, disambigRow := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigCol = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRow = int('8' - c)
		}
	}

	// Find the matching move
	moves := pos.LegalMoves(us)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To != dest || pos.PieceAt(m.From).Type() != pt {
			continue
		}
		if disambigCol >= 0 && m.From.Col() != disambigCol {
			continue
		}
		if disambigRow >= 0 && m.From.Row() != disambigRow {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promoPiece != NoPieceType {
			m = m.WithPromotion(promoPiece)
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, orig)
}

// resolveSAN returns m if it is legal in pos.
func resolveSAN(pos *Position, m Move, orig string) (Move, error) {
	if err := pos.ValidateMove(m); err != nil {
		return NoMove, fmt.Errorf("%q: %w", orig, err)
	}
	return m, nil
}

// MovesToSAN converts a slice of moves played from pos to SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}

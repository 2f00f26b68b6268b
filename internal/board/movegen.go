package board

// delta is a (row, col) offset.
type delta [2]int

var (
	knightDeltas = [8]delta{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingDeltas   = [8]delta{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

	rookDirections   = []delta{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirections = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = append(append([]delta{}, rookDirections...), bishopDirections...)
)

// generatePieceMoves dispatches on the piece kind to append the
// pseudo-legal moves of the piece on from.
func (p *Position) generatePieceMoves(from Square, piece Piece, ml *MoveList) {
	switch piece.Type() {
	case Pawn:
		p.generatePawnMoves(from, piece, ml)
	case Knight:
		p.generateSteps(from, piece.Color(), knightDeltas[:], ml)
	case Bishop:
		p.generateSlides(from, piece.Color(), bishopDirections, ml)
	case Rook:
		p.generateSlides(from, piece.Color(), rookDirections, ml)
	case Queen:
		p.generateSlides(from, piece.Color(), queenDirections, ml)
	case King:
		p.generateKingMoves(from, piece, ml)
	}
}

// PseudoLegalMoves generates all pseudo-legal moves (may leave king in check)
// for color c. Squares are scanned row-major from a8, and moves of one piece
// keep the order of its generator, so the result order is deterministic.
func (p *Position) PseudoLegalMoves(c Color) *MoveList {
	ml := NewMoveList()
	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Squares[sq]
		if piece.IsNone() || piece.Color() != c {
			continue
		}
		p.generatePieceMoves(sq, piece, ml)
	}
	return ml
}

// PseudoLegalMovesFrom generates the pseudo-legal moves of the piece on sq.
func (p *Position) PseudoLegalMovesFrom(sq Square) *MoveList {
	ml := NewMoveList()
	piece := p.PieceAt(sq)
	if piece.IsNone() {
		return ml
	}
	p.generatePieceMoves(sq, piece, ml)
	return ml
}

// generateSlides ray-casts along each direction until the board edge or
// the first occupied square, which is included when it holds an enemy.
func (p *Position) generateSlides(from Square, us Color, directions []delta, ml *MoveList) {
	row, col := from.Row(), from.Col()
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			target := p.at(r, c)
			if target.IsNone() {
				ml.Add(NewMove(from, NewSquare(r, c)))
			} else {
				if target.Color() != us {
					ml.Add(NewMove(from, NewSquare(r, c)))
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// generateSteps adds single-step moves onto empty or enemy squares.
func (p *Position) generateSteps(from Square, us Color, deltas []delta, ml *MoveList) {
	row, col := from.Row(), from.Col()
	for _, d := range deltas {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		target := p.at(r, c)
		if target.IsNone() || target.Color() != us {
			ml.Add(NewMove(from, NewSquare(r, c)))
		}
	}
}

// generatePawnMoves generates pushes, double pushes, captures and en passant.
// Promotions are emitted once per destination; the choice is resolved when
// the move is applied.
func (p *Position) generatePawnMoves(from Square, piece Piece, ml *MoveList) {
	us := piece.Color()
	dir := pawnDirection(us)
	row, col := from.Row(), from.Col()
	next := row + dir

	if next < 0 || next > 7 {
		return
	}

	// Move forward
	if p.at(next, col).IsNone() {
		ml.Add(NewMove(from, NewSquare(next, col)))
		// Two-square move from starting position
		if row == pawnStartRow(us) && p.at(row+2*dir, col).IsNone() {
			ml.Add(NewMove(from, NewSquare(row+2*dir, col)))
		}
	}

	// Capture diagonally
	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if c < 0 || c > 7 {
			continue
		}
		target := p.at(next, c)
		if !target.IsNone() && target.Color() != us {
			ml.Add(NewMove(from, NewSquare(next, c)))
		}
	}

	// En passant
	if to, ok := p.enPassantTarget(from, us); ok {
		ml.Add(NewMove(from, to))
	}
}

// enPassantTarget returns the capture square for an en passant capture by
// the pawn of color us on from, if the last move allows one.
func (p *Position) enPassantTarget(from Square, us Color) (Square, bool) {
	last := p.LastMove
	if !last.IsValid() {
		return NoSquare, false
	}
	if last.To.Row() != from.Row() || abs(last.From.Row()-last.To.Row()) != 2 {
		return NoSquare, false
	}
	if abs(last.To.Col()-from.Col()) != 1 || last.From.Col() != last.To.Col() {
		return NoSquare, false
	}
	pushed := p.Squares[last.To]
	if pushed.Type() != Pawn || pushed.Color() == us {
		return NoSquare, false
	}
	to := NewSquare(from.Row()+pawnDirection(us), last.To.Col())
	if !p.IsEmpty(to) {
		return NoSquare, false
	}
	return to, true
}

// generateKingMoves generates adjacent king steps followed by castling.
func (p *Position) generateKingMoves(from Square, piece Piece, ml *MoveList) {
	us := piece.Color()
	p.generateSteps(from, us, kingDeltas[:], ml)
	p.generateCastlingMoves(from, piece, ml)
}

// generateCastlingMoves offers castling when the king and the chosen rook are
// unmoved, the squares between them are empty, and the king is not in check
// on its current square, the square it passes through, or its destination.
func (p *Position) generateCastlingMoves(from Square, king Piece, ml *MoveList) {
	us := king.Color()
	row := homeRow(us)
	if king.HasMoved() || from != NewSquare(row, 4) {
		return
	}
	if p.IsInCheck(us) {
		return
	}

	// Kingside
	if p.castlingRookReady(row, 7, us) &&
		p.at(row, 5).IsNone() && p.at(row, 6).IsNone() &&
		p.kingSafeOn(from, NewSquare(row, 5), us) &&
		p.kingSafeOn(from, NewSquare(row, 6), us) {
		ml.Add(NewMove(from, NewSquare(row, 6)))
	}

	// Queenside
	if p.castlingRookReady(row, 0, us) &&
		p.at(row, 1).IsNone() && p.at(row, 2).IsNone() && p.at(row, 3).IsNone() &&
		p.kingSafeOn(from, NewSquare(row, 3), us) &&
		p.kingSafeOn(from, NewSquare(row, 2), us) {
		ml.Add(NewMove(from, NewSquare(row, 2)))
	}
}

// castlingRookReady reports whether an unmoved rook of color us sits on (row, col).
func (p *Position) castlingRookReady(row, col int, us Color) bool {
	rook := p.at(row, col)
	return rook.Type() == Rook && rook.Color() == us && !rook.HasMoved()
}

// kingSafeOn reports whether the king standing on from would be out of check
// if it stood on to instead.
func (p *Position) kingSafeOn(from, to Square, us Color) bool {
	probe := *p
	probe.Squares[to] = probe.Squares[from]
	probe.Squares[from] = NoPiece
	return !probe.IsInCheck(us)
}

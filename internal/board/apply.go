package board

// MakeMove applies a move to the position and returns undo information.
//
// The move is not checked for legality. Castling is applied when a king moves
// two columns, en passant when a pawn moves diagonally onto an empty square,
// and promotion when a pawn reaches its farthest rank (Queen unless the move
// carries another choice). If the origin square is empty the position is left
// untouched and the returned Undo has Valid == false.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		Moved:          NoPiece,
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
		RookFrom:       NoSquare,
		RookTo:         NoSquare,
		Rook:           NoPiece,
		LastMove:       p.LastMove,
		SideToMove:     p.SideToMove,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}

	// Safety check - if no piece at from square, return without modifying position
	if !m.IsValid() || p.Squares[m.From].IsNone() {
		return undo
	}

	from, to := m.From, m.To
	piece := p.Squares[from]
	us := piece.Color()
	undo.Moved = piece
	undo.Valid = true

	moved := piece.WithMoved(true)

	switch {
	case piece.Type() == King && abs(to.Col()-from.Col()) == 2:
		// Castling: relocate the rook beside the king
		rookCol, rookNewCol := 0, 3
		if to.Col() > from.Col() {
			rookCol, rookNewCol = 7, 5
		}
		undo.RookFrom = NewSquare(from.Row(), rookCol)
		undo.RookTo = NewSquare(from.Row(), rookNewCol)
		undo.Rook = p.removePiece(undo.RookFrom)
		if !undo.Rook.IsNone() {
			p.Squares[undo.RookTo] = undo.Rook.WithMoved(true)
		}

	case piece.Type() == Pawn && to.Col() != from.Col() && p.Squares[to].IsNone():
		// En passant: the captured pawn stands beside the origin
		undo.CapturedSquare = NewSquare(from.Row(), to.Col())
		undo.Captured = p.removePiece(undo.CapturedSquare)

	case piece.Type() == Pawn && (to.Row() == 0 || to.Row() == 7):
		moved = NewPiece(m.PromotionPiece(), us).WithMoved(true)
	}

	if captured := p.Squares[to]; !captured.IsNone() {
		undo.Captured = captured
		undo.CapturedSquare = to
	}

	p.Squares[to] = moved
	p.Squares[from] = NoPiece

	if piece.Type() == Pawn || !undo.Captured.IsNone() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.LastMove = m
	p.SideToMove = us.Other()

	return undo
}

// UnmakeMove undoes a move using the stored undo information, restoring
// captured pieces, the castling rook, has-moved flags and the last move.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	if !undo.Valid {
		return
	}

	p.Squares[m.To] = NoPiece
	p.Squares[m.From] = undo.Moved

	if undo.RookFrom != NoSquare {
		p.Squares[undo.RookTo] = NoPiece
		p.Squares[undo.RookFrom] = undo.Rook
	}

	if undo.CapturedSquare != NoSquare {
		p.Squares[undo.CapturedSquare] = undo.Captured
	}

	p.LastMove = undo.LastMove
	p.SideToMove = undo.SideToMove
	p.HalfMoveClock = undo.HalfMoveClock
	p.FullMoveNumber = undo.FullMoveNumber
}

// Apply returns a new position with m applied, leaving p unchanged.
func (p *Position) Apply(m Move) *Position {
	child := p.Copy()
	child.MakeMove(m)
	return child
}

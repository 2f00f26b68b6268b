package board

import "fmt"

// Move is a from/to square pair plus an optional promotion choice.
// Castling and en passant are not flagged: they are inferred from the
// moving piece and the move geometry when the move is applied.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType when the caller leaves the choice open
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Promotion: NoPieceType}

// NewMove creates a move without a promotion choice.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: NoPieceType}
}

// NewPromotion creates a pawn move with an explicit promotion choice.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// WithPromotion returns m carrying the given promotion choice.
func (m Move) WithPromotion(promo PieceType) Move {
	m.Promotion = promo
	return m
}

// PromotionPiece returns the piece type a promoting pawn becomes.
// Defaults to Queen when no valid choice was supplied.
func (m Move) PromotionPiece() PieceType {
	if m.Promotion.IsPromotionTarget() {
		return m.Promotion
	}
	return Queen
}

// Resolve returns m with its promotion choice made explicit when m promotes
// a pawn in pos, so the move prints and stores unambiguously.
func (m Move) Resolve(pos *Position) Move {
	if m.IsPromotion(pos) {
		m.Promotion = m.PromotionPiece()
	}
	return m
}

// SameSquares reports whether m and o move between the same squares,
// ignoring the promotion choice.
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// IsValid reports whether both squares are on the board.
func (m Move) IsValid() bool {
	return m.From.IsValid() && m.To.IsValid()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}

	s := m.From.String() + m.To.String()

	if m.Promotion.IsPromotionTarget() {
		s += string(m.Promotion.Char())
	}

	return s
}

// IsCastling returns true if m is a two-column king move in pos.
func (m Move) IsCastling(pos *Position) bool {
	piece := pos.PieceAt(m.From)
	return piece.Type() == King && abs(m.To.Col()-m.From.Col()) == 2
}

// IsEnPassant returns true if m is a diagonal pawn move onto an empty square in pos.
func (m Move) IsEnPassant(pos *Position) bool {
	piece := pos.PieceAt(m.From)
	return piece.Type() == Pawn && m.To.Col() != m.From.Col() && pos.IsEmpty(m.To)
}

// IsPromotion returns true if m moves a pawn onto its farthest rank in pos.
func (m Move) IsPromotion(pos *Position) bool {
	piece := pos.PieceAt(m.From)
	return piece.Type() == Pawn && (m.To.Row() == 0 || m.To.Row() == 7)
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant(pos) {
		return true
	}
	return !pos.IsEmpty(m.To)
}

// ParseMove parses a UCI format move string and resolves it against the
// legal moves of the side to move.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	candidate := NewPromotion(from, to, promo)
	if err := pos.ValidateMove(candidate); err != nil {
		return NoMove, err
	}
	return candidate, nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list has a move between the same squares.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].SameSquares(m) {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Undo stores information needed to take a move back exactly,
// including the identity of a captured piece.
type Undo struct {
	Moved          Piece  // piece on the origin square before the move
	Captured       Piece  // NoPiece when nothing was captured
	CapturedSquare Square // differs from To for en passant
	RookFrom       Square // NoSquare unless the move castled
	RookTo         Square
	Rook           Piece
	LastMove       Move
	SideToMove     Color
	HalfMoveClock  int
	FullMoveNumber int
	Valid          bool // True if move was actually applied
}

package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// IsPromotionTarget reports whether a pawn may promote to pt.
func (pt PieceType) IsPromotionTarget() bool {
	return pt >= Knight && pt <= Queen
}

// Piece combines PieceType, Color and the has-moved flag into a single value.
// Encoded as: pieceType + color*6, with bit 4 set once the piece has moved.
type Piece uint8

const movedBit Piece = 1 << 4

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates an unmoved Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Base strips the has-moved flag, so pieces can be compared by identity.
func (p Piece) Base() Piece {
	return p &^ movedBit
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	b := p.Base()
	if b >= NoPiece {
		return NoPieceType
	}
	return PieceType(b % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	b := p.Base()
	if b >= NoPiece {
		return NoColor
	}
	return Color(b / 6)
}

// IsNone reports whether p is the empty-square marker.
func (p Piece) IsNone() bool {
	return p.Base() >= NoPiece
}

// HasMoved reports whether the piece has moved. Only meaningful for kings
// and rooks, where it gates castling.
func (p Piece) HasMoved() bool {
	return p&movedBit != 0
}

// WithMoved returns the piece with its has-moved flag set to moved.
func (p Piece) WithMoved(moved bool) Piece {
	if p.IsNone() {
		return NoPiece
	}
	if moved {
		return p | movedBit
	}
	return p &^ movedBit
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsNone() {
		return " "
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p.Base()])
}

// PieceFromChar converts a FEN character to an unmoved Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

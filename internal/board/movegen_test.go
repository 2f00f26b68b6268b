package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moveStrings(ml *MoveList) []string {
	out := make([]string, 0, ml.Len())
	for _, m := range ml.Slice() {
		out = append(out, m.String())
	}
	return out
}

func TestInitialPositionMoves(t *testing.T) {
	pos := NewPosition()

	legal := pos.LegalMoves(White)
	assert.Equal(t, 20, legal.Len())
	assert.Equal(t, 20, pos.PseudoLegalMoves(White).Len())
	assert.Equal(t, 20, pos.LegalMoves(Black).Len())
}

func TestMoveOrderIsRowMajor(t *testing.T) {
	pos := NewPosition()
	got := moveStrings(pos.PseudoLegalMoves(White))

	// Pawns on row 6 come first (a-file to h-file), then the knights on row 7.
	want := []string{
		"a2a3", "a2a4", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
		"e2e3", "e2e4", "f2f3", "f2f4", "g2g3", "g2g4", "h2h3", "h2h4",
		"b1a3", "b1c3", "g1f3", "g1h3",
	}
	assert.Equal(t, want, got)
}

func TestPieceMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		want []string
	}{
		{
			name: "knight in corner",
			fen:  "4k3/8/8/8/8/8/8/N3K3 w - - 0 1",
			from: A1,
			want: []string{"a1b3", "a1c2"},
		},
		{
			name: "rook rays stop at blockers",
			fen:  "4k3/8/8/3p4/8/8/3P4/3RK3 w - - 0 1",
			from: D1,
			want: []string{"d1c1", "d1b1", "d1a1"},
		},
		{
			name: "bishop captures then stops",
			fen:  "4k3/8/8/8/8/1p6/8/K2B4 w - - 0 1",
			from: D1,
			want: []string{"d1c2", "d1b3", "d1e2", "d1f3", "d1g4", "d1h5"},
		},
		{
			name: "pawn blocked double step",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1",
			from: E2,
			want: []string{},
		},
		{
			name: "pawn captures both sides",
			fen:  "4k3/8/8/8/8/3n1b2/4P3/4K3 w - - 0 1",
			from: E2,
			want: []string{"e2e3", "e2e4", "e2d3", "e2f3"},
		},
		{
			name: "black pawn moves down the board",
			fen:  "4k3/3p4/8/8/8/8/8/4K3 b - - 0 1",
			from: D7,
			want: []string{"d7d6", "d7d5"},
		},
		{
			name: "king steps exclude own pieces",
			fen:  "4k3/8/8/8/8/8/3PP3/3QK3 w - - 0 1",
			from: E1,
			want: []string{"e1f2", "e1f1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			got := moveStrings(pos.PseudoLegalMovesFrom(tc.from))
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestLegalMovesFromErrors(t *testing.T) {
	pos := NewPosition()

	_, err := pos.LegalMovesFrom(E4)
	assert.ErrorIs(t, err, ErrNoPiece)

	_, err = pos.LegalMovesFrom(NoSquare)
	assert.ErrorIs(t, err, ErrInvalidSquare)

	moves, err := pos.LegalMovesFrom(G1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"g1f3", "g1h3"}, moveStrings(moves))
}

func TestValidateMove(t *testing.T) {
	pos := NewPosition()

	assert.NoError(t, pos.ValidateMove(NewMove(E2, E4)))
	assert.ErrorIs(t, pos.ValidateMove(NewMove(E7, E5)), ErrWrongColor)
	assert.ErrorIs(t, pos.ValidateMove(NewMove(E3, E4)), ErrNoPiece)
	assert.ErrorIs(t, pos.ValidateMove(NewMove(E2, E5)), ErrIllegalMove)
	assert.ErrorIs(t, pos.ValidateMove(NewPromotion(E2, E4, Queen)), ErrIllegalMove)
}

func TestParseMove(t *testing.T) {
	pos := MustParseFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")

	m, err := ParseMove("a7a8n", pos)
	require.NoError(t, err)
	assert.Equal(t, NewPromotion(A7, A8, Knight), m)
	assert.Equal(t, "a7a8n", m.String())

	m, err = ParseMove("a7a8", pos)
	require.NoError(t, err)
	assert.Equal(t, Queen, m.PromotionPiece())

	_, err = ParseMove("a7a8k", pos)
	assert.Error(t, err)
	_, err = ParseMove("h1h3", pos)
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = ParseMove("zz", pos)
	assert.Error(t, err)
}

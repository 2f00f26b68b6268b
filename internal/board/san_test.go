package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move Move
		want string
	}{
		{"pawn push", StartFEN, NewMove(E2, E4), "e4"},
		{"knight", StartFEN, NewMove(G1, F3), "Nf3"},
		{"castle kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(E1, G1), "O-O"},
		{"castle queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", NewMove(E1, C1), "O-O-O"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", NewMove(E4, D5), "exd5"},
		{"promotion with check", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", NewMove(A7, A8), "a8=Q+"},
		{"underpromotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", NewPromotion(A7, A8, Knight), "a8=N"},
		{"file disambiguation", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", NewMove(A1, D1), "Rad1"},
		{"rank disambiguation", "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", NewMove(A1, A4), "R1a4"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", NewMove(D8, H4), "Qh4#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			assert.Equal(t, tc.want, tc.move.ToSAN(pos))
		})
	}
}

func TestParseSAN(t *testing.T) {
	pos := NewPosition()
	san := []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "O-O"}

	var played []Move
	for _, s := range san {
		m, err := ParseSAN(s, pos)
		require.NoError(t, err, s)
		played = append(played, m)
		pos.MakeMove(m)
	}

	assert.Equal(t, WhiteKing, pos.PieceAt(G1).Base())
	assert.Equal(t, WhiteRook, pos.PieceAt(F1).Base())
	assert.Equal(t, san, MovesToSAN(NewPosition(), played))

	_, err := ParseSAN("Ke2", pos)
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = ParseSAN("Zf3", pos)
	assert.Error(t, err)
}

func TestParseSANPromotion(t *testing.T) {
	pos := MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	m, err := ParseSAN("a8=R", pos)
	require.NoError(t, err)
	assert.Equal(t, NewPromotion(A7, A8, Rook), m)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chesscore/internal/board"
)

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		require.NoError(t, g.PlayUCI(s), s)
	}
}

func TestNewGame(t *testing.T) {
	g := New()

	assert.Equal(t, board.StartFEN, g.StartFEN())
	assert.Equal(t, board.White, g.SideToMove())
	assert.Equal(t, 20, g.LegalMoves().Len())
	assert.Equal(t, board.Ongoing, g.Status())
	assert.Equal(t, NoOutcome, g.Outcome())
	assert.False(t, g.CanUndo())
	assert.False(t, g.CanRedo())
	assert.Equal(t, board.NoMove, g.LastMove())
}

func TestPositionIsACopy(t *testing.T) {
	g := New()
	pos := g.Position()
	pos.MakeMove(board.NewMove(board.E2, board.E4))

	assert.Equal(t, board.StartFEN, g.FEN())
}

func TestPlayRejectsIllegalMoves(t *testing.T) {
	g := New()

	assert.ErrorIs(t, g.Play(board.NewMove(board.E2, board.E5)), board.ErrIllegalMove)
	assert.ErrorIs(t, g.Play(board.NewMove(board.E7, board.E5)), board.ErrWrongColor)
	assert.ErrorIs(t, g.Play(board.NewMove(board.E4, board.E5)), board.ErrNoPiece)
	assert.Empty(t, g.Moves())
}

func TestLegalMovesFrom(t *testing.T) {
	g := New()

	moves, err := g.LegalMovesFrom(board.B1)
	require.NoError(t, err)
	assert.Equal(t, 2, moves.Len())

	_, err = g.LegalMovesFrom(board.B8)
	assert.ErrorIs(t, err, board.ErrWrongColor)
	_, err = g.LegalMovesFrom(board.E4)
	assert.ErrorIs(t, err, board.ErrNoPiece)
}

func TestUndoRedo(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "d7d5", "e4d5")
	afterCapture := g.FEN()

	require.True(t, g.Undo())
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", g.FEN())
	assert.Equal(t, board.BlackPawn, g.Position().PieceAt(board.D5).Base())

	require.True(t, g.Redo())
	assert.Equal(t, afterCapture, g.FEN())
	assert.Equal(t, []string{"e4", "d5", "exd5"}, g.SAN())

	for g.Undo() {
	}
	assert.Equal(t, board.StartFEN, g.FEN())
	assert.False(t, g.Undo())
	assert.True(t, g.CanRedo())

	// A new move discards the redo stack.
	playAll(t, g, "d2d4")
	assert.False(t, g.CanRedo())
	assert.False(t, g.Redo())
}

func TestUndoRestoresCastlingAndFlags(t *testing.T) {
	g, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	start := g.FEN()

	require.NoError(t, g.PlaySAN("O-O-O"))
	assert.Equal(t, board.WhiteRook, g.Position().PieceAt(board.D1).Base())

	require.True(t, g.Undo())
	assert.Equal(t, start, g.FEN())
	pos := g.Position()
	assert.False(t, pos.PieceAt(board.E1).HasMoved())
	assert.False(t, pos.PieceAt(board.A1).HasMoved())
	assert.True(t, pos.LegalMoves(board.White).Contains(board.NewMove(board.E1, board.C1)))
}

func TestUndoRestoresEnPassant(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "e5d6")
	assert.True(t, g.Position().IsEmpty(board.D5))

	require.True(t, g.Undo())
	pos := g.Position()
	assert.Equal(t, board.BlackPawn, pos.PieceAt(board.D5).Base())
	assert.Equal(t, board.NewMove(board.D7, board.D5), pos.LastMove)
	assert.True(t, pos.LegalMoves(board.White).Contains(board.NewMove(board.E5, board.D6)))
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g, err := FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	require.NoError(t, g.Play(board.NewMove(board.A7, board.A8)))
	assert.Equal(t, []string{"a7a8q"}, g.UCIMoves())
	assert.Equal(t, board.WhiteQueen, g.Position().PieceAt(board.A8).Base())

	require.True(t, g.Undo())
	require.NoError(t, g.PlayUCI("a7a8n"))
	assert.Equal(t, board.WhiteKnight, g.Position().PieceAt(board.A8).Base())
}

func TestFoolsMate(t *testing.T) {
	g := New()
	playAll(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	assert.Equal(t, board.Checkmate, g.Status())
	assert.Equal(t, ByCheckmate, g.Termination())
	assert.Equal(t, BlackWon, g.Outcome())
	assert.True(t, g.IsOver())
	assert.Equal(t, "Black wins by checkmate", g.Result())
	assert.Equal(t, "Qh4#", g.SAN()[3])

	assert.ErrorIs(t, g.PlayUCI("a2a3"), board.ErrIllegalMove)
	assert.ErrorIs(t, g.Play(board.NewMove(board.A2, board.A3)), ErrGameOver)
}

func TestStalemate(t *testing.T) {
	g, err := FromFEN("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, ByStalemate, g.Termination())
	assert.Equal(t, Draw, g.Outcome())
	assert.Equal(t, "1/2-1/2", g.Outcome().String())
}

func TestThreefoldRepetition(t *testing.T) {
	g := New()
	playAll(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	assert.False(t, g.IsOver())

	playAll(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	assert.Equal(t, ByRepetition, g.Termination())
	assert.Equal(t, Draw, g.Outcome())

	require.True(t, g.Undo())
	assert.False(t, g.IsOver())
}

func TestFiftyMoveRule(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 99 80")
	require.NoError(t, err)

	playAll(t, g, "a1a2")
	assert.Equal(t, ByFiftyMoves, g.Termination())
	assert.Equal(t, "Draw by 50-move rule", g.Result())
}

func TestFromFENRejectsInvalidPositions(t *testing.T) {
	_, err := FromFEN("not a fen")
	assert.Error(t, err)

	_, err = FromFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Error(t, err)
}

func TestParseOutcome(t *testing.T) {
	for _, o := range []Outcome{NoOutcome, WhiteWon, BlackWon, Draw} {
		got, err := ParseOutcome(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOutcome("2-0")
	assert.Error(t, err)
}

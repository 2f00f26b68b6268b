package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chesscore/internal/board"
)

func TestMaterial(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, 0, Material(pos, board.White))

	pos = board.MustParseFEN("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	assert.Equal(t, -4, Material(pos, board.White))
	assert.Equal(t, 4, Material(pos, board.Black))
	assert.Equal(t, -4, Evaluate(pos))

	assert.Equal(t, 1000, PieceValue(board.King))
	assert.Equal(t, 0, PieceValue(board.NoPieceType))
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4r1k1/8/8/8/8/8/q3R3/4K3 w - - 0 1",
	}
	modes := []LegalityMode{StrictLegality, PseudoLegal}

	for _, fen := range fens {
		for _, mode := range modes {
			for depth := 1; depth <= 3; depth++ {
				pos := board.MustParseFEN(fen)
				eng := NewEngine(Config{Depth: depth, Legality: mode})

				res := eng.Search(pos)
				require.NotEqual(t, board.NoMove, res.Move, "%s %s depth %d", fen, mode, depth)

				want := Minimax(pos, pos.SideToMove, depth, mode)
				assert.Equal(t, want, res.Score, "%s %s depth %d", fen, mode, depth)
			}
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	pos := board.NewPosition()

	pruned := NewSearcher(StrictLegality)
	pruned.Search(pos.Copy(), board.White, 3)

	full := NewSearcher(StrictLegality)
	full.us, full.them = board.White, board.Black
	full.minimax(pos.Copy(), 3, true)

	assert.Less(t, pruned.Nodes(), full.Nodes())
}

func TestCapturesHangingQueen(t *testing.T) {
	pos := board.MustParseFEN("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	eng := NewEngine(DefaultConfig())

	move, ok := eng.BestMove(pos, board.White)
	require.True(t, ok)
	assert.Equal(t, "d1d5", move.String())
}

func TestFindsMateInOne(t *testing.T) {
	pos := board.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	eng := NewEngine(DefaultConfig())

	res := eng.Search(pos)
	assert.Equal(t, "a1a8", res.Move.String())
	assert.True(t, IsMateScore(res.Score))
	assert.Equal(t, 1, MatePly(res.Score, DefaultDepth))
	assert.Equal(t, "Mate in 1", ScoreToString(res.Score, DefaultDepth))
}

func TestNoMoveWhenMated(t *testing.T) {
	pos := board.NewPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := board.ParseMove(s, pos)
		require.NoError(t, err)
		pos.MakeMove(m)
	}

	eng := NewEngine(DefaultConfig())
	move, ok := eng.BestMove(pos, board.White)
	assert.False(t, ok)
	assert.Equal(t, board.NoMove, move)

	assert.Equal(t, -(MateScore + 2), Minimax(pos, board.White, 2, StrictLegality))
}

func TestStalemateScoresZero(t *testing.T) {
	pos := board.MustParseFEN("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")

	assert.Equal(t, 0, Minimax(pos, board.Black, 2, StrictLegality))
	// Material-only leaves see Black a queen down.
	assert.Equal(t, -9, Minimax(pos, board.Black, 2, PseudoLegal))
}

func TestTieBreakKeepsFirstMove(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(Config{Depth: 1})

	// Every opening move scores 0 at one ply, so the first generated wins.
	res := eng.Search(pos)
	assert.Equal(t, "a2a3", res.Move.String())
	assert.Equal(t, 0, res.Score)
}

func TestSearchIsDeterministic(t *testing.T) {
	pos := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	first := NewEngine(Config{Depth: 2}).Search(pos)
	second := NewEngine(Config{Depth: 2}).Search(pos)
	assert.Equal(t, first, second)
}

func TestPseudoLegalModeIgnoresPins(t *testing.T) {
	// The rook on e2 is pinned; taking the queen exposes the king.
	fen := "4r1k1/8/8/8/8/8/q3R3/4K3 w - - 0 1"

	strict := NewEngine(Config{Depth: 1, Legality: StrictLegality})
	res := strict.Search(board.MustParseFEN(fen))
	assert.Equal(t, "e2e8", res.Move.String())
	assert.Equal(t, -4, res.Score)

	pseudo := NewEngine(Config{Depth: 1, Legality: PseudoLegal})
	res = pseudo.Search(board.MustParseFEN(fen))
	assert.Equal(t, "e2a2", res.Move.String())
	assert.Equal(t, 0, res.Score)
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	pos := board.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	before := *pos

	NewEngine(DefaultConfig()).Search(pos)
	assert.Equal(t, before, *pos)
}

func TestOnInfo(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(Config{Depth: 2})

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) {
		infos = append(infos, info)
	}
	res := eng.Search(pos)

	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].Depth)
	assert.Equal(t, res.Move, infos[0].Move)
	assert.Equal(t, res.Nodes, infos[0].Nodes)
	assert.Greater(t, infos[0].Nodes, uint64(20))
}

func TestConfig(t *testing.T) {
	eng := NewEngine(Config{})
	assert.Equal(t, DefaultConfig(), eng.Config())

	eng.SetDifficulty(Easy)
	assert.Equal(t, 1, eng.Config().Depth)
	eng.SetDepth(500)
	assert.Equal(t, MaxDepth, eng.Config().Depth)
	eng.SetLegality(PseudoLegal)
	assert.Equal(t, PseudoLegal, eng.Config().Legality)

	d, err := ParseDifficulty("medium")
	require.NoError(t, err)
	assert.Equal(t, Medium, d)
	_, err = ParseDifficulty("grandmaster")
	assert.Error(t, err)
}

func TestPerft(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(DefaultConfig())

	assert.Equal(t, uint64(20), eng.Perft(pos, 1))
	assert.Equal(t, uint64(400), eng.Perft(pos, 2))
	assert.Equal(t, uint64(8902), Perft(pos, 3))
	assert.Equal(t, board.StartFEN, pos.ToFEN())
}

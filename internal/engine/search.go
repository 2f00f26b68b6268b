package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 1 << 30
	MateScore = 1_000_000
	MaxDepth  = 64
)

// LegalityMode selects which moves the search enumerates.
type LegalityMode int

const (
	// StrictLegality searches legal moves at every ply and scores
	// checkmate and stalemate leaves.
	StrictLegality LegalityMode = iota

	// PseudoLegal searches pseudo-legal moves, ends a line when the
	// searching color has no legal move and scores every leaf by
	// material alone. The chosen move may leave the king in check.
	PseudoLegal
)

// String returns the mode name.
func (m LegalityMode) String() string {
	switch m {
	case StrictLegality:
		return "strict"
	case PseudoLegal:
		return "pseudo"
	default:
		return "unknown"
	}
}

// Searcher performs the alpha-beta search for one color.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	mode  LegalityMode
	us    board.Color
	them  board.Color
	nodes uint64
}

// NewSearcher creates a searcher using the given legality mode.
func NewSearcher(mode LegalityMode) *Searcher {
	return &Searcher{mode: mode}
}

// Nodes returns the number of nodes visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Search returns the best move for color us at the given depth and its score.
// Every root child is searched with a full window. Ties go to the move
// generated first. It returns NoMove when us has nothing to play.
func (s *Searcher) Search(pos *board.Position, us board.Color, depth int) (board.Move, int) {
	s.us, s.them = us, us.Other()
	if depth < 1 {
		depth = 1
	}

	moves := s.rootMoves(pos)
	bestMove := board.NoMove
	bestScore := -Infinity

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		score := s.alphaBeta(pos, depth-1, false, -Infinity, Infinity)
		pos.UnmakeMove(move, undo)

		if bestMove == board.NoMove || score > bestScore {
			bestMove = move
			bestScore = score
		}
	}

	return bestMove, bestScore
}

func (s *Searcher) rootMoves(pos *board.Position) *board.MoveList {
	if s.mode == PseudoLegal {
		return pos.PseudoLegalMoves(s.us)
	}
	return pos.LegalMoves(s.us)
}

// expand decides whether the node is a leaf. For a leaf it returns the
// score; otherwise it returns the moves of the side to move at this ply.
func (s *Searcher) expand(pos *board.Position, depth int, maximizing bool) (int, *board.MoveList, bool) {
	mover := s.them
	if maximizing {
		mover = s.us
	}

	if s.mode == PseudoLegal {
		if depth == 0 || !pos.HasAnyLegalMove(s.us) {
			return Material(pos, s.us), nil, true
		}
		moves := pos.PseudoLegalMoves(mover)
		if moves.Len() == 0 {
			return Material(pos, s.us), nil, true
		}
		return 0, moves, false
	}

	if depth == 0 {
		return Material(pos, s.us), nil, true
	}
	moves := pos.LegalMoves(mover)
	if moves.Len() > 0 {
		return 0, moves, false
	}
	if !pos.IsInCheck(mover) {
		return 0, nil, true
	}
	// Mated sooner scores further from zero.
	if maximizing {
		return -(MateScore + depth), nil, true
	}
	return MateScore + depth, nil, true
}

// alphaBeta is minimax with alpha-beta pruning, scored from s.us's side.
func (s *Searcher) alphaBeta(pos *board.Position, depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	score, moves, leaf := s.expand(pos, depth, maximizing)
	if leaf {
		return score
	}

	if maximizing {
		best := -Infinity
		for i := 0; i < moves.Len(); i++ {
			move := moves.Get(i)
			undo := pos.MakeMove(move)
			value := s.alphaBeta(pos, depth-1, false, alpha, beta)
			pos.UnmakeMove(move, undo)

			best = max(best, value)
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Infinity
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		value := s.alphaBeta(pos, depth-1, true, alpha, beta)
		pos.UnmakeMove(move, undo)

		best = min(best, value)
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return best
}

// minimax walks the full tree without pruning.
func (s *Searcher) minimax(pos *board.Position, depth int, maximizing bool) int {
	s.nodes++

	score, moves, leaf := s.expand(pos, depth, maximizing)
	if leaf {
		return score
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for i := 0; i < moves.Len(); i++ {
		child := pos.Apply(moves.Get(i))
		value := s.minimax(child, depth-1, !maximizing)
		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

// Minimax returns the unpruned minimax value of pos with color us to move,
// searched depth plies deep and scored from us's side. It visits every
// node, so it is only practical at small depths.
func Minimax(pos *board.Position, us board.Color, depth int, mode LegalityMode) int {
	s := NewSearcher(mode)
	s.us, s.them = us, us.Other()
	return s.minimax(pos.Copy(), depth, true)
}

// IsMateScore reports whether score signals a forced checkmate.
func IsMateScore(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// MatePly converts a mate score from a search of the given depth into the
// number of plies until mate. The result is positive when the searching
// side delivers mate and negative when it is mated.
func MatePly(score, depth int) int {
	if score > 0 {
		return depth - (score - MateScore)
	}
	return -(depth - (-score - MateScore))
}

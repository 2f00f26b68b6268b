// Package uci implements the Universal Chess Interface protocol on top of
// the engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	in  io.Reader
	out io.Writer
}

// New creates a UCI protocol handler on stdin and stdout.
func New(eng *engine.Engine) *UCI {
	return NewWithIO(eng, os.Stdin, os.Stdout)
}

// NewWithIO creates a UCI protocol handler reading commands from in and
// writing responses to out.
func NewWithIO(eng *engine.Engine, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		in:       in,
		out:      out,
	}
}

// Position returns a copy of the current position.
func (u *UCI) Position() *board.Position {
	return u.position.Copy()
}

// Run reads commands until "quit" or the end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		if !u.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles one command line. It returns false on "quit".
func (u *UCI) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "stop", "ponderhit":
		// The search is synchronous; there is nothing to stop.
	case "quit":
		return false
	case "setoption":
		u.handleSetOption(args)
	// Debug commands
	case "d":
		u.handleDisplay()
	case "perft":
		u.handlePerft(args)
	case "legal":
		u.handleLegal(args)
	default:
		u.infoString("Unknown command: %s", cmd)
	}
	return true
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) infoString(format string, args ...any) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	cfg := u.engine.Config()
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println("")
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 1 max %d\n", cfg.Depth, engine.MaxDepth)
	fmt.Fprintf(u.out, "option name StrictLegality type check default %t\n", cfg.Legality == engine.StrictLegality)
	u.println("option name Difficulty type combo default hard var easy var medium var hard")
	u.println("uciok")
}

// handleNewGame resets the position for a new game.
func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current position is kept when the command is malformed.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	setupEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			setupEnd, moveStart = i, i+1
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		fenStr := strings.Join(args[1:setupEnd], " ")
		var err error
		pos, err = board.ParseFEN(fenStr)
		if err != nil {
			u.infoString("Invalid FEN: %v", err)
			return
		}
	default:
		u.infoString("Invalid position command")
		return
	}

	// Apply moves
	for _, moveStr := range args[moveStart:] {
		move, err := board.ParseMove(moveStr, pos)
		if err != nil {
			u.infoString("Invalid move %s: %v", moveStr, err)
			return
		}
		pos.MakeMove(move)
	}

	u.position = pos
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int
}

// parseGoOptions parses "go" command arguments. Time controls are
// accepted and ignored: the search always runs to its fixed depth.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			i++
		}
	}

	return opts
}

// handleGo runs a search and reports the best move.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	if opts.Depth > 0 {
		saved := u.engine.Config().Depth
		u.engine.SetDepth(opts.Depth)
		defer u.engine.SetDepth(saved)
	}

	// Configure info callback
	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	res := u.engine.Search(u.position)
	u.println("bestmove " + u.checkedBestMove(res.Move))
}

// checkedBestMove returns the UCI text for the engine's move, falling back
// to the first legal move when the engine's choice is not legal (possible
// in pseudo-legal mode), and "0000" when there is no legal move.
func (u *UCI) checkedBestMove(best board.Move) string {
	legal := u.position.GenerateLegalMoves()

	if best != board.NoMove {
		if legal.Contains(best) {
			return best.Resolve(u.position).String()
		}
		u.infoString("Search returned illegal move %s", best)
	}

	if legal.Len() > 0 {
		return legal.Get(0).Resolve(u.position).String()
	}
	return "0000"
}

// formatScore renders a score as a UCI "score" field. Material units are
// reported as centipawns.
func formatScore(score, depth int) string {
	if engine.IsMateScore(score) {
		ply := engine.MatePly(score, depth)
		if ply > 0 {
			return fmt.Sprintf("mate %d", (ply+1)/2)
		}
		return fmt.Sprintf("mate -%d", (-ply+1)/2)
	}
	return fmt.Sprintf("cp %d", score*100)
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		"score " + formatScore(info.Score, info.Depth),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.Resolve(u.position).String())
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 1 {
			u.infoString("Invalid depth: %s", value)
			return
		}
		u.engine.SetDepth(depth)
	case "strictlegality":
		if strings.EqualFold(value, "true") {
			u.engine.SetLegality(engine.StrictLegality)
		} else {
			u.engine.SetLegality(engine.PseudoLegal)
		}
	case "difficulty":
		d, err := engine.ParseDifficulty(strings.ToLower(value))
		if err != nil {
			u.infoString("%v", err)
			return
		}
		u.engine.SetDifficulty(d)
	default:
		u.infoString("Unknown option: %s", name)
	}
}

// handleDisplay prints the board, its FEN and its status.
func (u *UCI) handleDisplay() {
	fmt.Fprint(u.out, u.position.String())
	fmt.Fprintf(u.out, "Fen: %s\n", u.position.ToFEN())
	fmt.Fprintf(u.out, "Status: %s\n", u.position.Status())
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			u.infoString("Invalid perft depth: %s", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}

// handleLegal lists the legal moves of the side to move, or of the piece
// on the given square.
func (u *UCI) handleLegal(args []string) {
	var moves *board.MoveList
	if len(args) == 0 {
		moves = u.position.GenerateLegalMoves()
	} else {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			u.infoString("%v", err)
			return
		}
		moves, err = u.position.LegalMovesFrom(sq)
		if err != nil {
			u.infoString("%v", err)
			return
		}
	}

	strs := make([]string, 0, moves.Len())
	for _, m := range moves.Slice() {
		strs = append(strs, m.Resolve(u.position).String())
	}
	fmt.Fprintf(u.out, "legal %s\n", strings.Join(strs, " "))
}

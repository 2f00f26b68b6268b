package selfplay

import (
	"strings"
)

// DefaultOpenings are short SAN lines that start self-play games. The search
// is deterministic, so varied openings are what make games differ.
var DefaultOpenings = []string{
	// Open games
	"1. e4 e5 2. Nf3 Nc6 3. Bb5",
	"1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5",
	"1. e4 e5 2. Nf3 Nf6 3. d4",
	"1. e4 e5 2. Nf3 Nc6 3. d4 exd4 4. Nxd4",
	// Sicilian
	"1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6",
	"1. e4 c5 2. Nc3 Nc6 3. g3",
	// French and Caro-Kann
	"1. e4 e6 2. d4 d5 3. Nc3 dxe4 4. Nxe4",
	"1. e4 c6 2. d4 d5 3. e5 Bf5",
	// Scandinavian
	"1. e4 d5 2. exd5 Qxd5 3. Nc3 Qa5",
	// Queen's pawn
	"1. d4 d5 2. c4 e6 3. Nc3 Nf6",
	"1. d4 d5 2. c4 dxc4",
	"1. d4 d5 2. c4 c6 3. Nf3 Nf6 4. Nc3 dxc4",
	"1. d4 Nf6 2. c4 e6 3. Nc3 Bb4",
	"1. d4 Nf6 2. c4 g6 3. Nc3 d5",
	// Flank openings
	"1. c4 e5 2. Nc3 Nf6 3. g3",
	"1. Nf3 d5 2. g3 Nf6 3. Bg2",
}

// ParseOpening splits a SAN line into its moves, dropping move numbers
// ("1.", "12...") and a trailing result token.
func ParseOpening(line string) []string {
	var moves []string
	for _, tok := range strings.Fields(line) {
		if i := strings.LastIndex(tok, "."); i >= 0 {
			tok = tok[i+1:]
		}
		switch tok {
		case "", "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		moves = append(moves, tok)
	}
	return moves
}

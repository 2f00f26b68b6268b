package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyGameSeq     = "seq/game"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned when no game is stored under an ID.
var ErrGameNotFound = errors.New("game not found")

// Preferences stores engine and player settings.
type Preferences struct {
	Depth       int                 `json:"depth"`
	Legality    engine.LegalityMode `json:"legality"`
	PlayerColor board.Color         `json:"player_color"`
	LastPlayed  time.Time           `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Depth:       engine.DefaultDepth,
		Legality:    engine.StrictLegality,
		PlayerColor: board.White,
		LastPlayed:  time.Now(),
	}
}

// EngineConfig returns the engine configuration the preferences describe.
func (p *Preferences) EngineConfig() engine.Config {
	return engine.Config{Depth: p.Depth, Legality: p.Legality}
}

// GameStats stores aggregate results of recorded games.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	Unfinished    int            `json:"unfinished"`
	ByTermination map[string]int `json:"by_termination"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByTermination: make(map[string]int),
	}
}

// WhiteScore returns White's score as a percentage (0-100), counting
// draws as half a point.
func (s *GameStats) WhiteScore() float64 {
	decided := s.WhiteWins + s.BlackWins + s.Draws
	if decided == 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Draws)/2) / float64(decided) * 100
}

// AveragePlies returns the mean game length in half-moves.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// add folds one game into the statistics.
func (s *GameStats) add(rec *GameRecord) {
	s.GamesPlayed++
	s.TotalPlies += len(rec.Moves)
	if len(rec.Moves) > s.LongestGame {
		s.LongestGame = len(rec.Moves)
	}
	if rec.Termination != "" {
		s.ByTermination[rec.Termination]++
	}

	switch rec.Result {
	case game.WhiteWon.String():
		s.WhiteWins++
	case game.BlackWon.String():
		s.BlackWins++
	case game.Draw.String():
		s.Draws++
	default:
		s.Unfinished++
	}
}

// GameRecord is a stored game.
type GameRecord struct {
	ID          uint64    `json:"id"`
	White       string    `json:"white"`
	Black       string    `json:"black"`
	StartFEN    string    `json:"start_fen"`
	Moves       []string  `json:"moves"` // Long algebraic notation
	SAN         []string  `json:"san"`
	Result      string    `json:"result"`
	Termination string    `json:"termination,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// NewGameRecord captures the moves and result of g. When the game has not
// ended, result overrides the outcome (for example an adjudicated draw);
// pass game.NoOutcome to record it as unfinished.
func NewGameRecord(g *game.Game, white, black string, started time.Time, result game.Outcome) *GameRecord {
	rec := &GameRecord{
		White:      white,
		Black:      black,
		StartFEN:   g.StartFEN(),
		Moves:      g.UCIMoves(),
		SAN:        g.SAN(),
		Result:     result.String(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if g.IsOver() {
		rec.Result = g.Outcome().String()
		rec.Termination = g.Termination().String()
	} else if result != game.NoOutcome {
		rec.Termination = "adjudication"
	}
	return rec
}

// Replay rebuilds the game from its start position and moves.
func (r *GameRecord) Replay() (*game.Game, error) {
	g, err := game.FromFEN(r.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", r.ID, err)
	}
	for i, m := range r.Moves {
		if err := g.PlayUCI(m); err != nil {
			return nil, fmt.Errorf("game %d ply %d: %w", r.ID, i+1, err)
		}
	}
	return g, nil
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence

	// statsMu serializes read-modify-write of the stats record.
	statsMu sync.Mutex
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open game sequence: %w", err)
	}

	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			s.db.Close()
			return err
		}
		s.seq = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put([]byte(keyPreferences), prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get([]byte(keyPreferences), prefs)
	return prefs, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.get([]byte(keyStats), stats)
	if stats.ByTermination == nil {
		stats.ByTermination = make(map[string]int)
	}
	return stats, err
}

// SaveGame stores a game record. A record without an ID is assigned the
// next one. It returns the record's ID.
func (s *Storage) SaveGame(rec *GameRecord) (uint64, error) {
	if rec.ID == 0 {
		next, err := s.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next game id: %w", err)
		}
		rec.ID = next + 1
	}
	if err := s.put(gameKey(rec.ID), rec); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// RecordGame stores a finished game and folds it into the statistics.
// It is safe for concurrent use.
func (s *Storage) RecordGame(rec *GameRecord) error {
	if _, err := s.SaveGame(rec); err != nil {
		return err
	}

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.add(rec)
	return s.put([]byte(keyStats), stats)
}

// LoadGame loads the game stored under id.
func (s *Storage) LoadGame(id uint64) (*GameRecord, error) {
	rec := &GameRecord{}
	found, err := s.get(gameKey(id), rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	return rec, nil
}

// DeleteGame removes the game stored under id.
func (s *Storage) DeleteGame(id uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %d", ErrGameNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListGames returns up to limit stored games, most recent first.
// A limit of zero or less returns every game.
func (s *Storage) ListGames(limit int) ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek lands on the largest key not above the target.
		for it.Seek(gameKey(^uint64(0))); it.Valid(); it.Next() {
			if limit > 0 && len(games) >= limit {
				break
			}
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})

	return games, err
}

// gameKey encodes id big-endian so keys sort by ID.
func gameKey(id uint64) []byte {
	key := make([]byte, len(gamePrefix)+8)
	copy(key, gamePrefix)
	binary.BigEndian.PutUint64(key[len(gamePrefix):], id)
	return key
}

// put stores v as JSON under key.
func (s *Storage) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// get decodes the JSON stored under key into v. It reports whether the
// key exists; v is left untouched when it does not.
func (s *Storage) get(key []byte, v any) (bool, error) {
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})

	return found, err
}

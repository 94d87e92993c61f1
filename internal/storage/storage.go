package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"github.com/hailam/amazons/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences stores the settings of the last session.
type Preferences struct {
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Depth      int       `json:"depth"`
	Seed       uint64    `json:"seed"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns a human playing White against the engine.
func DefaultPreferences() *Preferences {
	return &Preferences{
		White: "manual",
		Black: "auto",
	}
}

// Stats accumulates results over all recorded games.
type Stats struct {
	GamesPlayed int    `json:"games_played"`
	WhiteWins   int    `json:"white_wins"`
	BlackWins   int    `json:"black_wins"`
	TotalPlies  int    `json:"total_plies"`
	LongestGame int    `json:"longest_game"`
	LastGame    string `json:"last_game,omitempty"`
}

// WinRate returns the percentage (0-100) of games won by side.
func (s *Stats) WinRate(side board.Piece) float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	wins := s.WhiteWins
	if side == board.Black {
		wins = s.BlackWins
	}
	return float64(wins) / float64(s.GamesPlayed) * 100
}

// AveragePlies returns the mean game length in plies.
func (s *Stats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// GameResult describes a finished game.
type GameResult struct {
	ID       string
	Winner   board.Piece
	Plies    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir selects
// GetDatabaseDir.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts.WithLogger(badgerLogger{}))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences stores prefs, stamping LastPlayed.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads the stored preferences, or the defaults if none
// were saved.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	return prefs, s.get(keyPreferences, prefs)
}

// SaveStats stores stats.
func (s *Storage) SaveStats(stats *Stats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads the stored statistics, or zero statistics if none.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	return stats, s.get(keyStats, stats)
}

// RecordGame folds result into the stored statistics.
func (s *Storage) RecordGame(result GameResult) error {
	var stats Stats
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := getTxn(txn, keyStats, &stats); err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.TotalPlies += result.Plies
		stats.LongestGame = max(stats.LongestGame, result.Plies)
		stats.LastGame = result.ID
		switch result.Winner {
		case board.White:
			stats.WhiteWins++
		case board.Black:
			stats.BlackWins++
		}

		data, err := json.Marshal(&stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
	if err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	log.Debug().
		Str("game", result.ID).
		Str("winner", result.Winner.Name()).
		Int("plies", result.Plies).
		Int("games", stats.GamesPlayed).
		Msg("game recorded")
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		return getTxn(txn, key, v)
	})
}

// getTxn decodes key into v, leaving v untouched if the key is absent.
func getTxn(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// badgerLogger routes badger's internal logging into zerolog. Badger's
// info messages are demoted to debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	log.Error().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Warningf(format string, args ...any) {
	log.Warn().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Infof(format string, args ...any) {
	log.Debug().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Debugf(format string, args ...any) {
	log.Trace().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

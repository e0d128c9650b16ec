package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/scorefour/internal/board"
	"github.com/hailam/scorefour/internal/engine"
)

// Storage keys
const (
	keySettings    = "settings"
	keyStats       = "stats"
	prefixDecision = "decision/"
)

// Settings stores the search limits chosen through the protocol.
type Settings struct {
	MoveTime   time.Duration `json:"move_time"`
	MaxDepth   int           `json:"max_depth"`
	Difficulty string        `json:"difficulty,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// DefaultSettings returns the engine's default limits.
func DefaultSettings() *Settings {
	return &Settings{
		MoveTime: engine.DefaultMoveTime,
		MaxDepth: engine.DefaultMaxDepth,
	}
}

// Limits converts the settings to search limits.
func (s *Settings) Limits() engine.SearchLimits {
	return engine.SearchLimits{Depth: s.MaxDepth, MoveTime: s.MoveTime}
}

// Stats aggregates every recorded decision.
type Stats struct {
	Decisions       int           `json:"decisions"`
	TacticalWins    int           `json:"tactical_wins"`
	TacticalBlocks  int           `json:"tactical_blocks"`
	Openings        int           `json:"openings"`
	Fallbacks       int           `json:"fallbacks"`
	Searched        int           `json:"searched"`
	DepthHistogram  map[int]int   `json:"depth_histogram"`
	TotalNodes      uint64        `json:"total_nodes"`
	TotalSearchTime time.Duration `json:"total_search_time"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{DepthHistogram: make(map[int]int)}
}

// Depths returns the completed depths seen so far in ascending order.
func (s *Stats) Depths() []int {
	depths := lo.Keys(s.DepthHistogram)
	slices.Sort(depths)
	return depths
}

// AverageDepth returns the mean depth of searched decisions.
func (s *Stats) AverageDepth() float64 {
	if s.Searched == 0 {
		return 0
	}
	total := lo.SumBy(lo.Entries(s.DepthHistogram), func(e lo.Entry[int, int]) int {
		return e.Key * e.Value
	})
	return float64(total) / float64(s.Searched)
}

// AverageTime returns the mean wall time per decision.
func (s *Stats) AverageTime() time.Duration {
	if s.Decisions == 0 {
		return 0
	}
	return s.TotalSearchTime / time.Duration(s.Decisions)
}

func (s *Stats) add(d Decision) {
	s.Decisions++
	s.TotalNodes += d.Nodes
	s.TotalSearchTime += d.Elapsed

	switch {
	case d.Fallback:
		s.Fallbacks++
	case d.Tactic == engine.TacticWin.String():
		s.TacticalWins++
	case d.Tactic == engine.TacticBlock.String():
		s.TacticalBlocks++
	case d.Tactic == engine.TacticCenter.String():
		s.Openings++
	default:
		s.Searched++
		s.DepthHistogram[d.Depth]++
	}
}

// Decision is one logged engine answer.
type Decision struct {
	Board    string        `json:"board"`
	Side     string        `json:"side"`
	Move     string        `json:"move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    uint64        `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	Tactic   string        `json:"tactic"`
	Fallback bool          `json:"fallback"`
	At       time.Time     `json:"at"`
}

// NewDecision describes the engine's answer res for board b.
func NewDecision(b *board.Board, res engine.Result) Decision {
	return Decision{
		Board:    b.Notation(),
		Side:     b.SideToMove().String(),
		Move:     res.Move.String(),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
		Tactic:   res.Tactic.String(),
		Fallback: res.Fallback,
		At:       time.Now(),
	}
}

func boardPrefix(notation string) []byte {
	return []byte(fmt.Sprintf("%s%016x/", prefixDecision, xxhash.Sum64String(notation)))
}

func decisionKey(d Decision) []byte {
	return append(boardPrefix(d.Board), fmt.Sprintf("%020d", d.At.UnixNano())...)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database under dataDir, or under the platform data
// directory when dataDir is empty.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("database dir: %w", err)
	}
	return open(badger.DefaultOptions(dbDir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = newBadgerLogger(log.Logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value at key into v. A missing key leaves v untouched.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// SaveSettings saves the search settings
func (s *Storage) SaveSettings(settings *Settings) error {
	settings.UpdatedAt = time.Now()
	if err := s.putJSON(keySettings, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadSettings loads the search settings, returns defaults if not found
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keySettings, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// LoadStats loads decision statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyStats, stats)
	})
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if stats.DepthHistogram == nil {
		stats.DepthHistogram = make(map[int]int)
	}
	return stats, nil
}

// RecordDecision appends d to the decision log and updates the statistics
// in the same transaction.
func (s *Storage) RecordDecision(d Decision) error {
	if d.At.IsZero() {
		d.At = time.Now()
	}
	entry, err := json.Marshal(d)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats := NewStats()
		if err := getJSON(txn, keyStats, stats); err != nil {
			return err
		}
		if stats.DepthHistogram == nil {
			stats.DepthHistogram = make(map[int]int)
		}
		stats.add(d)

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), data); err != nil {
			return err
		}
		return txn.Set(decisionKey(d), entry)
	})
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// Decisions returns the logged decisions for a board notation, oldest first.
func (s *Storage) Decisions(notation string) ([]Decision, error) {
	prefix := boardPrefix(notation)
	var out []Decision

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var d Decision
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return err
			}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}

	// Different boards may share a hash prefix.
	return lo.Filter(out, func(d Decision, _ int) bool {
		return d.Board == notation
	}), nil
}

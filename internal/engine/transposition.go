package engine

import (
	"unsafe"

	"github.com/hailam/scorefour/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// String returns the flag name.
func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLowerBound:
		return "lower"
	default:
		return "upper"
	}
}

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key   board.Key // Full position and side to move, compared on probe
	Score int32     // Score (bounded by flag)
	Age   uint32    // Generation of the decision that stored it
	Depth int8      // Search depth
	Flag  TTFlag    // Type of bound
	Move  int8      // Best column index, -1 if none
}

// TranspositionTable caches search results for the decision in progress.
// Entries carry the generation they were stored in and only entries of the
// current generation are returned, so every decision starts from a logically
// empty table without reallocating it. Not safe for concurrent use.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64
	age     uint32

	// Statistics for the current generation
	hits   uint64
	probes uint64
	stores uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
		age:     1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64, key board.Key) (TTEntry, bool) {
	tt.probes++

	entry := tt.entries[hash&tt.mask]
	if entry.Age == tt.age && entry.Key == key {
		tt.hits++
		return entry, true
	}
	return TTEntry{}, false
}

// Store saves a search result. An entry of the current generation is only
// replaced by a result of equal or greater depth.
func (tt *TranspositionTable) Store(hash uint64, key board.Key, depth int, score int, flag TTFlag, best board.Column) {
	entry := &tt.entries[hash&tt.mask]
	if entry.Age == tt.age && depth < int(entry.Depth) {
		return
	}

	move := int8(-1)
	if best.Valid() {
		move = int8(best.Index())
	}
	*entry = TTEntry{
		Key:   key,
		Score: int32(score),
		Age:   tt.age,
		Depth: int8(depth),
		Flag:  flag,
		Move:  move,
	}
	tt.stores++
}

// NewSearch starts a new generation, hiding every stored entry.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
	if tt.age == 0 {
		// Wrapped around: old entries could match again.
		tt.Clear()
		return
	}
	tt.hits, tt.probes, tt.stores = 0, 0, 0
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.age = 1
	tt.hits, tt.probes, tt.stores = 0, 0, 0
}

// HashFull returns the permille (parts per thousand) of the table used by the
// current generation.
func (tt *TranspositionTable) HashFull() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Age == tt.age {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

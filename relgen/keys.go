package relgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// KeyStrategy selects how a primary-key column's values are produced.
type KeyStrategy string

const (
	KeyStrategyInt    KeyStrategy = "int"     // monotonic int64 counter, base 1
	KeyStrategyString KeyStrategy = "string"  // counter formatted through col.Pattern, or "pk<n>"
	KeyStrategyUUID   KeyStrategy = "uuid"    // uuid v4, drawn from the run's RNG
)

// KeyAllocator hands out primary-key values, one independent monotonic
// counter per (table, column). Safe for concurrent use.
type KeyAllocator struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewKeyAllocator() *KeyAllocator {
	return &KeyAllocator{counters: make(map[string]int64)}
}

func keyOf(table, column string) string { return table + "." + column }

// strategyFor picks the KeyStrategy implied by a column's logical type: the
// UUID type uses KeyStrategyUUID, VARCHAR/CHAR/TEXT/STRING use
// KeyStrategyString, everything else KeyStrategyInt.
func strategyFor(col *Column) KeyStrategy {
	switch col.Type {
	case TypeUUID:
		return KeyStrategyUUID
	case TypeVarchar, TypeChar, TypeText, TypeString:
		return KeyStrategyString
	default:
		return KeyStrategyInt
	}
}

// Next allocates the next PK value for (table, column) per strategyFor.
func (k *KeyAllocator) Next(table string, col *Column, rng *RNG) (any, error) {
	switch strategyFor(col) {
	case KeyStrategyUUID:
		id, err := uuid.NewRandomFromReader(rngReader{rng})
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	case KeyStrategyString:
		n := k.nextCounter(table, col.Name)
		if col.Pattern != "" {
			return ExpandPatternSequential(col.Pattern, n, rng)
		}
		return fmt.Sprintf("pk%d", n), nil
	default:
		return k.nextCounter(table, col.Name), nil
	}
}

func (k *KeyAllocator) nextCounter(table, column string) int64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	key := keyOf(table, column)
	k.counters[key]++
	return k.counters[key]
}

// Reset clears all counters, used between independent Generate calls that
// share an allocator (e.g. tests).
func (k *KeyAllocator) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.counters = make(map[string]int64)
}

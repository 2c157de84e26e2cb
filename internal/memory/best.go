package memory

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// BestTimeKey is the storage key for the best completion time.
// The version suffix keeps future formats from reading old values.
const BestTimeKey = "memory_best_time_v1"

// BestScoreStore persists the lowest completion time across sessions.
type BestScoreStore interface {
	// BestTime returns the stored best time in seconds; ok is false when
	// nothing has been recorded yet.
	BestTime() (seconds int, ok bool, err error)

	// SetBestTime replaces the stored best time.
	SetBestTime(seconds int) error

	// ImproveBestTime stores seconds only when no best exists or seconds is
	// strictly lower, as one atomic step. It reports whether the store
	// changed and the best time held after the call.
	ImproveBestTime(seconds int) (improved bool, best int, err error)
}

// ResultRecorder receives every completed game.
type ResultRecorder interface {
	RecordResult(r Result) error
}

// KeyValue is the minimal string store the best time is kept in.
type KeyValue interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// LowerSetter is implemented by KeyValue stores that can replace an integer
// value atomically when the new value is lower. Values that are missing or
// not a non-negative integer are always replaced. current is the value held
// after the call.
type LowerSetter interface {
	SetIfLower(key string, value int) (stored bool, current string, err error)
}

// improveMu serializes ImproveBestTime for stores without LowerSetter.
var improveMu sync.Mutex

// KVBestStore keeps the best time in a KeyValue under a fixed key.
type KVBestStore struct {
	kv  KeyValue
	key string
}

// NewKVBestStore stores the best time under BestTimeKey.
func NewKVBestStore(kv KeyValue) *KVBestStore {
	return &KVBestStore{kv: kv, key: BestTimeKey}
}

// BestTime implements BestScoreStore. Values that do not parse as a
// non-negative integer read as "no best".
func (s *KVBestStore) BestTime() (int, bool, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return 0, false, fmt.Errorf("memory: read best time: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	seconds, ok := parseBest(raw)
	return seconds, ok, nil
}

// parseBest reads a stored best time. Anything but a non-negative integer
// reads as "no best".
func parseBest(raw string) (int, bool) {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}

// SetBestTime implements BestScoreStore.
func (s *KVBestStore) SetBestTime(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("memory: negative best time %d", seconds)
	}
	if err := s.kv.Set(s.key, strconv.Itoa(seconds)); err != nil {
		return fmt.Errorf("memory: write best time: %w", err)
	}
	return nil
}

// ImproveBestTime implements BestScoreStore. A failed read never leads to
// a write, so an unreadable store is left as it is.
func (s *KVBestStore) ImproveBestTime(seconds int) (bool, int, error) {
	if seconds < 0 {
		return false, 0, fmt.Errorf("memory: negative best time %d", seconds)
	}

	if ls, ok := s.kv.(LowerSetter); ok {
		stored, current, err := ls.SetIfLower(s.key, seconds)
		if err != nil {
			return false, 0, fmt.Errorf("memory: improve best time: %w", err)
		}
		if stored {
			return true, seconds, nil
		}
		best, ok := parseBest(current)
		if !ok {
			return false, 0, fmt.Errorf("memory: improve best time: unreadable value %q kept", current)
		}
		return false, best, nil
	}

	improveMu.Lock()
	defer improveMu.Unlock()

	best, ok, err := s.BestTime()
	if err != nil {
		return false, 0, err
	}
	if ok && seconds >= best {
		return false, best, nil
	}
	if err := s.SetBestTime(seconds); err != nil {
		return false, 0, err
	}
	return true, seconds, nil
}

// MemoryKV is an in-process KeyValue, used when no database is available.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KeyValue.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KeyValue.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SetIfLower implements LowerSetter.
func (m *MemoryKV) SetIfLower(key string, value int) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := parseBest(m.values[key]); ok && value >= current {
		return false, m.values[key], nil
	}
	m.values[key] = strconv.Itoa(value)
	return true, m.values[key], nil
}

package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DocNumberCounterKey is the default settings key holding the last issued number.
const DocNumberCounterKey = "qb_last_no"

const docNoPrefix = "LI-"

// FormatDocNo renders n as a document number, e.g. 6 -> "LI-0006".
func FormatDocNo(n int) string {
	return fmt.Sprintf("%s%04d", docNoPrefix, n)
}

// ParseDocNo extracts the integer from a "LI-####" document number.
func ParseDocNo(docNo string) (int, bool) {
	digits, ok := strings.CutPrefix(strings.TrimSpace(docNo), docNoPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseCounter reads a persisted counter value. Missing or malformed values count as 0.
func ParseCounter(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DocNumberSource issues new document numbers.
type DocNumberSource interface {
	Next() (string, error)
}

// CounterStore persists named integer counters as text.
type CounterStore interface {
	GetCounter(key string) (value string, ok bool, err error)
	SetCounter(key, value string) error
}

// CounterIncrementer is implemented by stores that can increment a counter
// atomically. DocNumberGenerator prefers it over a separate get and set.
type CounterIncrementer interface {
	IncrementCounter(key string) (int, error)
}

// DocNumberGenerator issues sequential document numbers backed by a CounterStore.
type DocNumberGenerator struct {
	Store CounterStore
	Key   string
}

// NewDocNumberGenerator returns a generator using the default counter key.
func NewDocNumberGenerator(store CounterStore) *DocNumberGenerator {
	return &DocNumberGenerator{Store: store, Key: DocNumberCounterKey}
}

// Next increments the stored counter and returns the formatted number.
func (g *DocNumberGenerator) Next() (string, error) {
	key := g.Key
	if key == "" {
		key = DocNumberCounterKey
	}

	if inc, ok := g.Store.(CounterIncrementer); ok {
		n, err := inc.IncrementCounter(key)
		if err != nil {
			return "", fmt.Errorf("increment counter %q: %w", key, err)
		}
		return FormatDocNo(n), nil
	}

	value, _, err := g.Store.GetCounter(key)
	if err != nil {
		return "", fmt.Errorf("read counter %q: %w", key, err)
	}
	next := ParseCounter(value) + 1
	if err := g.Store.SetCounter(key, strconv.Itoa(next)); err != nil {
		return "", fmt.Errorf("write counter %q: %w", key, err)
	}
	return FormatDocNo(next), nil
}

// MemoryCounterStore is an in-process CounterStore guarded by a mutex.
type MemoryCounterStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryCounterStore returns an empty store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{values: make(map[string]string)}
}

func (m *MemoryCounterStore) GetCounter(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryCounterStore) SetCounter(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *MemoryCounterStore) IncrementCounter(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	next := ParseCounter(m.values[key]) + 1
	m.values[key] = strconv.Itoa(next)
	return next, nil
}

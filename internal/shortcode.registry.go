package internal

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Registry sentinel errors
var (
	ErrEmptyName     = errors.New(ErrMsgEmptyName)
	ErrDuplicateName = errors.New(ErrMsgDuplicateName)
)

// Entry is one named value in a Registry.
type Entry[T any] struct {
	Name  string
	Value T
}

// Registry is an insertion-ordered set of uniquely named values. Names are
// trimmed on the way in and compared case-sensitively.
// It is safe for concurrent use.
type Registry[T any] struct {
	entries []Entry[T]
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry[T any](logger *zap.Logger) *Registry[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry[T]{logger: logger}
}

// NormalizeName trims a name and rejects it when nothing is left.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == StringValueEmpty {
		return StringValueEmpty, ErrEmptyName
	}
	return trimmed, nil
}

// Add appends a value under name. It fails when the trimmed name is empty
// or already taken.
func (r *Registry[T]) Add(name string, value T) error {
	trimmed, err := NormalizeName(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(trimmed) >= 0 {
		r.logger.Warn(LogMsgShortcodeCollision, zap.String(LogFieldTagName, trimmed))
		return fmt.Errorf("%w: %s", ErrDuplicateName, trimmed)
	}

	r.entries = append(r.entries, Entry[T]{Name: trimmed, Value: value})
	r.logger.Debug(LogMsgShortcodeAdded, zap.String(LogFieldTagName, trimmed))
	return nil
}

// Remove deletes every entry named name and returns how many went.
func (r *Registry[T]) Remove(name string) (int, error) {
	trimmed, err := NormalizeName(name)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	removed := 0
	for _, e := range r.entries {
		if e.Name == trimmed {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Drop references held by the tail of the reused backing array.
	var zero Entry[T]
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = zero
	}
	r.entries = kept

	r.logger.Debug(LogMsgShortcodeRemoved,
		zap.String(LogFieldTagName, trimmed),
		zap.Int(LogFieldRemoved, removed),
	)
	return removed, nil
}

// Clear removes every entry.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.logger.Debug(LogMsgRegistryCleared)
}

// Override replaces the value of an existing entry in place. It reports
// whether the entry existed.
func (r *Registry[T]) Override(name string, value T) (bool, error) {
	trimmed, err := NormalizeName(name)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(trimmed)
	if i < 0 {
		return false, nil
	}
	r.entries[i].Value = value
	r.logger.Debug(LogMsgShortcodeOverridden, zap.String(LogFieldTagName, trimmed))
	return true, nil
}

// Get retrieves a value by its exact trimmed name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	i := r.indexLocked(strings.TrimSpace(name))
	if i < 0 {
		return zero, false
	}
	return r.entries[i].Value, true
}

// Has checks if an entry exists under name.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Count returns the number of entries.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Names returns entry names in insertion order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Snapshot returns a copy of the entries in insertion order.
func (r *Registry[T]) Snapshot() []Entry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry[T], len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry[T]) indexLocked(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

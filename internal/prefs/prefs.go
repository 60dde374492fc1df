// Package prefs is the flat key-value store every tracker persists through.
//
// Values are opaque bytes. JSON aggregates and decimal scalars are encoded by
// the helpers in codec.go so every backend stores the same text.
package prefs

import (
	"errors"
	"fmt"

	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
)

var (
	// ErrMalformed is returned when a stored value cannot be decoded.
	// Callers substitute a default and carry on.
	ErrMalformed = fmt.Errorf("malformed stored value: %w", apperrors.ErrPersistence)
	// ErrNotLoaded is returned by operations on a store that was never opened.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Store is the key-value contract handed to every component.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes keys. Missing keys are ignored.
	Remove(keys ...string) error
	// Clear deletes every entry.
	Clear() error
	// Apply writes a batch of sets and removes together.
	Apply(b *Batch) error
}

// Provider is a Store with a lifecycle.
type Provider interface {
	Store
	// Init creates the backing storage and applies migrations.
	Init() error
	// Load opens existing storage.
	Load() error
	Close() error
	// Path describes where the data lives (file path or redacted DSN).
	Path() string
	// Keys lists the stored keys in ascending order.
	Keys() ([]string, error)
}

// Batch collects writes for Store.Apply. Later operations on a key win.
type Batch struct {
	sets    map[string][]byte
	removes map[string]struct{}
	order   []string
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{
		sets:    make(map[string][]byte),
		removes: make(map[string]struct{}),
	}
}

func (b *Batch) touch(key string) {
	if _, ok := b.sets[key]; ok {
		return
	}
	if _, ok := b.removes[key]; ok {
		return
	}
	b.order = append(b.order, key)
}

// Set queues key=value.
func (b *Batch) Set(key string, value []byte) *Batch {
	b.touch(key)
	delete(b.removes, key)
	b.sets[key] = append([]byte(nil), value...)
	return b
}

// Remove queues the deletion of keys.
func (b *Batch) Remove(keys ...string) *Batch {
	for _, key := range keys {
		b.touch(key)
		delete(b.sets, key)
		b.removes[key] = struct{}{}
	}
	return b
}

// Len returns the number of keys touched.
func (b *Batch) Len() int { return len(b.order) }

// Each calls fn for every touched key in insertion order. value is nil for removals.
func (b *Batch) Each(fn func(key string, value []byte, remove bool) error) error {
	for _, key := range b.order {
		if _, ok := b.removes[key]; ok {
			if err := fn(key, nil, true); err != nil {
				return err
			}
			continue
		}
		if err := fn(key, b.sets[key], false); err != nil {
			return err
		}
	}
	return nil
}

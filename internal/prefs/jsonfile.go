package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
)

// JSONFile keeps every entry in one JSON object on disk. Values are stored as strings.
// Every write rewrites the file through a temp file and rename. Before a write the
// file is re-read if another process replaced it since this instance last saw it.
type JSONFile struct {
	path string
	mu   sync.RWMutex
	data map[string]string
	// seen is the file as of the last read or write.
	seen os.FileInfo
}

// NewJSONFile returns a store backed by the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (s *JSONFile) Path() string { return s.path }

func (s *JSONFile) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return s.readLocked()
	}
	s.data = make(map[string]string)
	return s.writeLocked(s.data)
}

func (s *JSONFile) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	return s.readLocked()
}

func (s *JSONFile) Close() error { return nil }

// readLocked loads the file, moving a corrupt file aside and starting empty.
func (s *JSONFile) readLocked() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	data := make(map[string]string)
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			corrupt := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102-150405"))
			_ = os.Rename(s.path, corrupt)
			logger.Warn("Preference file was corrupt, starting empty", "path", s.path, "moved_to", corrupt, "error", err)
			data = make(map[string]string)
			if err := s.writeLocked(data); err != nil {
				return err
			}
		}
	}
	s.data = data
	s.remember()
	return nil
}

func (s *JSONFile) remember() {
	if fi, err := os.Stat(s.path); err == nil {
		s.seen = fi
	}
}

// refreshLocked re-reads the file when it changed on disk since it was last seen.
func (s *JSONFile) refreshLocked() error {
	fi, err := os.Stat(s.path)
	if err != nil {
		return nil
	}
	if s.seen != nil && os.SameFile(fi, s.seen) && fi.ModTime().Equal(s.seen.ModTime()) && fi.Size() == s.seen.Size() {
		return nil
	}
	logger.Debug("Preference file changed on disk, re-reading", "path", s.path)
	return s.readLocked()
}

func (s *JSONFile) writeLocked(data map[string]string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return err
	}
	s.remember()
	return nil
}

func (s *JSONFile) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, false, ErrNotLoaded
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *JSONFile) Set(key string, value []byte) error {
	return s.Apply(NewBatch().Set(key, value))
}

func (s *JSONFile) Remove(keys ...string) error {
	return s.Apply(NewBatch().Remove(keys...))
}

func (s *JSONFile) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrNotLoaded
	}
	next := make(map[string]string)
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Apply commits the whole batch with a single file rewrite.
func (s *JSONFile) Apply(b *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrNotLoaded
	}
	if err := s.refreshLocked(); err != nil {
		return err
	}

	next := make(map[string]string, len(s.data)+b.Len())
	for k, v := range s.data {
		next[k] = v
	}
	_ = b.Each(func(key string, value []byte, remove bool) error {
		if remove {
			delete(next, key)
		} else {
			next[key] = string(value)
		}
		return nil
	})

	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *JSONFile) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Reload re-reads the file, picking up writes made by other processes.
func (s *JSONFile) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

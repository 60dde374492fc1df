package prefs

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
)

// GetJSON decodes the value at key into v. A missing key leaves v untouched.
func GetJSON(s Store, key string, v interface{}) error {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(key, data)
}

// GetInt64 returns the decimal scalar at key, or def when missing or unparseable.
func GetInt64(s Store, key string, def int64) (int64, error) {
	data, ok, err := s.Get(key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	n, perr := strconv.ParseInt(string(data), 10, 64)
	if perr != nil {
		logger.Warn("Ignoring malformed integer preference", "key", key, "value", string(data))
		return def, nil
	}
	return n, nil
}

// GetInt is GetInt64 narrowed to int.
func GetInt(s Store, key string, def int) (int, error) {
	n, err := GetInt64(s, key, int64(def))
	return int(n), err
}

// GetBool returns the boolean scalar at key, or def when missing or unparseable.
func GetBool(s Store, key string, def bool) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	b, perr := strconv.ParseBool(string(data))
	if perr != nil {
		logger.Warn("Ignoring malformed boolean preference", "key", key, "value", string(data))
		return def, nil
	}
	return b, nil
}

// SetInt64 stores n as decimal text.
func SetInt64(s Store, key string, n int64) error {
	return s.Set(key, EncodeInt64(n))
}

// SetInt stores n as decimal text.
func SetInt(s Store, key string, n int) error {
	return SetInt64(s, key, int64(n))
}

// SetBool stores b as "true" or "false".
func SetBool(s Store, key string, b bool) error {
	return s.Set(key, EncodeBool(b))
}

// EncodeInt64 returns the stored form of n.
func EncodeInt64(n int64) []byte { return []byte(strconv.FormatInt(n, 10)) }

// EncodeBool returns the stored form of b.
func EncodeBool(b bool) []byte { return []byte(strconv.FormatBool(b)) }

// SetJSON queues v encoded as JSON.
func (b *Batch) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	b.Set(key, data)
	return nil
}

// SetInt64 queues n as decimal text.
func (b *Batch) SetInt64(key string, n int64) *Batch { return b.Set(key, EncodeInt64(n)) }

// SetInt queues n as decimal text.
func (b *Batch) SetInt(key string, n int) *Batch { return b.SetInt64(key, int64(n)) }

// SetBool queues b as "true" or "false".
func (b *Batch) SetBool(key string, v bool) *Batch { return b.Set(key, EncodeBool(v)) }

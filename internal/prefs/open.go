package prefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/keyring"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

// KeyringDSN selects a PostgreSQL store whose connection string lives in the OS keyring.
const KeyringDSN = "keyring:"

// Open returns the provider selected by dsn without initializing it.
//
//	memory:                 in-memory store
//	keyring:                postgres, connection string read from the keyring
//	postgres://... or k=v   postgres
//	*.json                  JSON file
//	anything else           SQLite file
func Open(dsn string) (Provider, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("store location cannot be empty")
	case strings.HasPrefix(dsn, "memory:"):
		return NewMemory(), nil
	case dsn == KeyringDSN:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, err
		}
		// The keyring is encrypted, so embedded passwords are accepted here.
		if err := ValidateConnString(connStr); err != nil && !errors.Is(err, ErrEmbeddedCredentials) {
			return nil, err
		}
		return NewPostgres(connStr), nil
	case isPostgresURL(dsn) || strings.Contains(dsn, "host="):
		return openPostgres(dsn)
	}

	path, err := utils.ExpandHome(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONFile(path), nil
	}
	return NewSQLite(path), nil
}

func openPostgres(connStr string) (Provider, error) {
	if err := ValidateConnString(connStr); err != nil {
		return nil, err
	}
	return NewPostgres(connStr), nil
}

// Copy writes every entry of src into dst in one batch. It returns the number of keys copied.
func Copy(dst Store, src Provider) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	b := NewBatch()
	for _, key := range keys {
		value, ok, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %q from source: %w", key, err)
		}
		if ok {
			b.Set(key, value)
		}
	}
	if err := dst.Apply(b); err != nil {
		return 0, err
	}
	return b.Len(), nil
}

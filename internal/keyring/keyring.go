// Package keyring keeps the PostgreSQL connection string for the preference
// store in the OS keyring so it never has to appear on the command line.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry addresses one secret in the OS keyring.
type Entry struct {
	Service string
	User    string
}

// Store is the entry holding the preference store's connection string.
var Store = Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}

// State is what Status found in the keyring.
type State int

const (
	Unavailable State = iota
	Empty
	Stored
)

func (e Entry) Get() (string, error) {
	secret, err := keyring.Get(e.Service, e.User)
	if err != nil {
		return "", classify(err)
	}
	return secret, nil
}

// Set replaces the stored secret. Blank secrets are rejected.
func (e Entry) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(e.Service, e.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e Entry) Delete() error {
	if err := keyring.Delete(e.Service, e.User); err != nil {
		return classify(err)
	}
	return nil
}

// Status reports whether the keyring answers and whether the entry holds a secret.
func (e Entry) Status() State {
	_, err := e.Get()
	switch {
	case err == nil:
		return Stored
	case errors.Is(err, ErrNotFound):
		return Empty
	default:
		return Unavailable
	}
}

func classify(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

func GetConnectionString() (string, error) { return Store.Get() }

func SetConnectionString(connStr string) error { return Store.Set(connStr) }

func DeleteConnectionString() error { return Store.Delete() }

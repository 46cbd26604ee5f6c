// Package storage keeps small pieces of client state (the session token,
// the notice flag) under fixed keys that survive process restarts.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend is a durable string key/value store.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Location describes where the data lives, for status output.
	Location() string
	Close() error
}

// Supported drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// DefaultPath returns the default location of a driver's data under home.
func DefaultPath(driver, home string) string {
	switch driver {
	case DriverSQLite:
		return filepath.Join(home, "state.db")
	default:
		return filepath.Join(home, "state.json")
	}
}

// Open returns the backend for driver. An empty path uses DefaultPath.
func Open(driver, path, home string) (Backend, error) {
	if driver == "" {
		driver = DriverFile
	}
	if path == "" {
		path = DefaultPath(driver, home)
	}

	switch driver {
	case DriverFile:
		return NewFile(path), nil
	case DriverSQLite:
		return NewSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q (want file, sqlite or memory)", driver)
	}
}

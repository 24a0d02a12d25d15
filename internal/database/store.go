package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/user-registration/app/internal/models"
)

var (
	// ErrStoreUnavailable is returned when the store cannot be created or opened.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStorePermissions is returned when an existing store is not readable
	// or writable and its permissions could not be repaired.
	ErrStorePermissions = fmt.Errorf("%w: cannot repair permissions", ErrStoreUnavailable)
	// ErrStoreRead is returned when the collection cannot be read.
	ErrStoreRead = errors.New("store read failed")
	// ErrStoreWrite is returned when the collection cannot be persisted.
	ErrStoreWrite = errors.New("store write failed")
)

// Store persists the full user collection as one unit.
type Store interface {
	// Ensure makes the store exist and be accessible. It is called once at startup.
	Ensure(ctx context.Context) error
	// Load returns the users in insertion order.
	Load(ctx context.Context) ([]models.User, error)
	// Save replaces the stored collection with users.
	Save(ctx context.Context, users []models.User) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open builds the store for the given backend. path is the JSON file or the
// SQLite data source name; the memory backend ignores it.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

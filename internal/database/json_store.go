package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/user-registration/app/internal/logging"
	"github.com/user-registration/app/internal/models"
)

// storeFileMode is applied to the users file on creation and repair so the
// web server user can always read and write it.
const storeFileMode fs.FileMode = 0o666

// JSONFileStore keeps the collection as a pretty-printed JSON array in a single file.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore returns a store backed by the JSON file at path.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Ensure creates the file holding an empty array when it is missing, and
// relaxes its permissions when it exists but cannot be read or written.
func (s *JSONFileStore) Ensure(ctx context.Context) error {
	log := logging.FromContext(ctx)

	_, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o770); err != nil {
				return fmt.Errorf("%w: mkdir %s: %v", ErrStoreUnavailable, dir, err)
			}
		}
		if err := s.writeFile([]byte("[]")); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrStoreUnavailable, s.path, err)
		}
		log.Info("created users store", "path", s.path)
		return nil
	case err != nil:
		return fmt.Errorf("%w: stat %s: %v", ErrStoreUnavailable, s.path, err)
	}

	if accessible(s.path) {
		return nil
	}

	if err := os.Chmod(s.path, storeFileMode); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrStorePermissions, s.path, err)
	}
	if !accessible(s.path) {
		return fmt.Errorf("%w: %s still not accessible", ErrStorePermissions, s.path)
	}
	log.Warn("repaired users store permissions", "path", s.path)
	return nil
}

func accessible(path string) bool {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Load reads the collection. Content that is not a JSON array of users is
// treated as an empty collection.
func (s *JSONFileStore) Load(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		logging.FromContext(ctx).Warn("users store is malformed, treating as empty",
			"path", s.path, "error", err)
		return []models.User{}, nil
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Save overwrites the file with the collection. The data is written to a
// temporary file first and renamed into place.
func (s *JSONFileStore) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStoreWrite, err)
	}

	if err := s.writeFile(data); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *JSONFileStore) writeFile(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, storeFileMode); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Close is a no-op; the file is opened per operation.
func (s *JSONFileStore) Close() error {
	return nil
}

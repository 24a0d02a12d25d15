package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-registration/app/internal/models"
)

func TestJSONFileStore_EnsureCreatesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "users.json")
	s := NewJSONFileStore(path)

	require.NoError(t, s.Ensure(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, storeFileMode, info.Mode().Perm())
}

func TestJSONFileStore_EnsureKeepsExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	content := `[{"name":"Eve","email":"eve@example.com","password":"h"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewJSONFileStore(path)
	require.NoError(t, s.Ensure(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestJSONFileStore_EnsureRepairsPermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o200))

	s := NewJSONFileStore(path)
	require.NoError(t, s.Ensure(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, storeFileMode, info.Mode().Perm())
}

func TestJSONFileStore_EnsureFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewJSONFileStore(filepath.Join(blocker, "users.json"))
	err := s.Ensure(context.Background())
	assert.True(t, errors.Is(err, ErrStoreUnavailable), "got %v", err)
}

func TestJSONFileStore_LoadMalformedIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"garbage", "not json at all"},
		{"null", "null"},
		{"object", `{"name":"Eve"}`},
		{"array of scalars", `[1, 2, 3]`},
		{"truncated", `[{"name":"Eve",`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			users, err := NewJSONFileStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, users)
			assert.Empty(t, users)
		})
	}
}

func TestJSONFileStore_LoadMissingFileIsReadError(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := s.Load(context.Background())
	assert.True(t, errors.Is(err, ErrStoreRead), "got %v", err)
}

func TestJSONFileStore_SaveWritesPrettyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewJSONFileStore(path)
	require.NoError(t, s.Ensure(context.Background()))

	users := []models.User{{Name: "Eve", Email: "eve@example.com", PasswordHash: "h"}}
	require.NoError(t, s.Save(context.Background(), users))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n" +
		"    {\n" +
		"        \"name\": \"Eve\",\n" +
		"        \"email\": \"eve@example.com\",\n" +
		"        \"password\": \"h\"\n" +
		"    }\n" +
		"]"
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestJSONFileStore_SaveFailure(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "gone", "users.json"))
	err := s.Save(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrStoreWrite), "got %v", err)
}

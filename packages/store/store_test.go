package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("decoded values round trip", func(t *testing.T) {
		values := map[string]any{
			"string": "123",
			"number": float64(42),
			"bool":   true,
			"null":   nil,
			"list":   []any{"a", float64(1)},
			"object": map[string]any{"id": "x"},
		}
		for k, v := range values {
			require.NoError(t, s.Set(ctx, k, v))
		}
		for k, want := range values {
			got, ok, err := s.Get(ctx, k)
			require.NoError(t, err)
			assert.True(t, ok, k)
			assert.Equal(t, want, got, k)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "string", "456"))
		got, _, err := s.Get(ctx, "string")
		require.NoError(t, err)
		assert.Equal(t, "456", got)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "string"))
		require.NoError(t, s.Remove(ctx, "never-set"))
		_, ok, err := s.Get(ctx, "string")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("all sorted", func(t *testing.T) {
		entries, err := s.All(ctx)
		require.NoError(t, err)
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		assert.Equal(t, []string{"bool", "list", "null", "number", "object"}, keys)
		assert.Equal(t, Entry{Key: "null", Value: nil}, entries[2])
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		entries, err := s.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	runStoreSuite(t, s)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer s.Close()
	runStoreSuite(t, s)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "variable-ticket", "123"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "variable-ticket")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123", v)
}

func TestNewSQLite_EmptyPath(t *testing.T) {
	_, err := NewSQLite("")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		connStr string
		want    any
		wantErr error
	}{
		{"empty", "", &Memory{}, nil},
		{"memory", "memory:", &Memory{}, nil},
		{"sqlite url", "sqlite://" + filepath.Join(tmpDir, "a.db"), &SQLite{}, nil},
		{"sqlite colon", "sqlite:" + filepath.Join(tmpDir, "b.db"), &SQLite{}, nil},
		{"redis", "redis://:secret@localhost:6380/3", &Redis{}, nil},
		{"unknown scheme", "postgres://localhost/db", nil, ErrUnsupportedScheme},
		{"no scheme", "invalid", nil, ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.connStr)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestOpen_BadRedisDB(t *testing.T) {
	_, err := Open("redis://localhost/abc")
	assert.Error(t, err)
}

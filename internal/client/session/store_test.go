package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "noteboard", "token"))
}

func TestLoad_AbsentMeansAnonymous(t *testing.T) {
	s := newStore(t)

	tok, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSetThenLoad_RoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Set("abc.def.ghi"))

	tok, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", tok)
}

func TestSet_FilePermissions(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("secret"))

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClear_RemovesAndIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("secret"))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	tok, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSet_LastWriterWins(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Set("first"))
	require.NoError(t, s.Set("second"))

	tok, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "second", tok)
}

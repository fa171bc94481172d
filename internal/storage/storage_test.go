package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	s := NewMemory()

	_, ok := s.Load("missing")
	assert.False(t, ok)

	require.NoError(t, s.Save("k", []byte(`{"a":1}`)))

	got, ok := s.Load("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Save("k", []byte("abc")))

	got, ok := s.Load("k")
	require.True(t, ok)
	got[0] = 'z'

	again, ok := s.Load("k")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), again)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFile(dir)
	require.NoError(t, err)

	_, ok := s.Load("missing")
	assert.False(t, ok)

	require.NoError(t, s.Save("konaseema_cart_v1:sess-1", []byte(`[]`)))

	got, ok := s.Load("konaseema_cart_v1:sess-1")
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)
}

func TestFileStore_KeysWithSeparators(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save("a/b:c", []byte("x")))

	got, ok := s.Load("a/b:c")
	require.True(t, ok)
	assert.Equal(t, []byte("x"), got)
}

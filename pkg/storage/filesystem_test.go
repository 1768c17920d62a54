package storage

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save("timetable-job-1.pdf", []byte("%PDF test"))
	require.NoError(t, err)
	assert.Equal(t, "timetable-job-1.pdf", name)

	file, err := s.Open(name)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF test", string(data))
}

func TestSaveRejectsEscapingNames(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("../escape.pdf", []byte("x"))
	require.Error(t, err)

	_, err = s.Save("/tmp/absolute.pdf", []byte("x"))
	require.Error(t, err)

	_, err = s.Save("", []byte("x"))
	require.Error(t, err)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("gone.pdf", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, s.Delete("gone.pdf"))
	require.NoError(t, s.Delete("gone.pdf"))
}

func TestCleanupOlderThanRemovesStaleFiles(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("stale.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = s.Save("fresh.pdf", []byte("new"))
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path("stale.pdf"), past, past))

	deleted, err := s.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale.pdf"}, deleted)

	_, err = s.Open("fresh.pdf")
	assert.NoError(t, err)
}

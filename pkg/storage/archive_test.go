package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveSave(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewArchive(dir)
	require.NoError(t, err)

	name, err := archive.Save("transcript-20260101-120000.csv", []byte("Class,Grade\n"))
	require.NoError(t, err)
	assert.Equal(t, "transcript-20260101-120000.csv", name)

	content, err := os.ReadFile(archive.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "Class,Grade\n", string(content))
}

func TestArchiveCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewArchive(dir)
	require.NoError(t, err)

	_, err = archive.Save("old.csv", []byte("x"))
	require.NoError(t, err)
	_, err = archive.Save("fresh.csv", []byte("y"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), stale, stale))

	deleted, err := archive.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "fresh.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "old.csv"))
	assert.True(t, os.IsNotExist(err))
}

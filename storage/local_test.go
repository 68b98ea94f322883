package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	nodeID := uuid.New()
	content := "LEGAL RESEARCH BRIEF\n\nThe primary analysis."

	path, err := s.Upload(ctx, nodeID, "brief-"+nodeID.String()+".txt", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, ArchivePath(nodeID, "brief-"+nodeID.String()+".txt"), path)

	body, err := s.Download(ctx, path)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, s.Delete(ctx, path))

	_, err = s.Download(ctx, path)
	assert.Error(t, err)

	// Deleting an already-deleted archive is not an error
	assert.NoError(t, s.Delete(ctx, path))
}

func TestLocalStorageUploadOverwrites(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	nodeID := uuid.New()

	_, err = s.Upload(ctx, nodeID, "brief.txt", strings.NewReader("first"))
	require.NoError(t, err)
	path, err := s.Upload(ctx, nodeID, "brief.txt", strings.NewReader("second"))
	require.NoError(t, err)

	body, err := s.Download(ctx, path)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestArchivePath(t *testing.T) {
	nodeID := uuid.MustParse("7f1c2a9e-0f7d-4f7c-9c2b-1a2b3c4d5e6f")

	path := ArchivePath(nodeID, "my brief/v1.txt")

	assert.Equal(t, "7f/7f1c2a9e-0f7d-4f7c-9c2b-1a2b3c4d5e6f_my_brief_v1.txt", path)
	assert.NotContains(t, path[3:], "/", "sanitized name has no path separators past the prefix")

	// Deterministic: the same inputs always yield the same path
	assert.Equal(t, path, ArchivePath(nodeID, "my brief/v1.txt"))
}

func TestNewStorageSelectsBackend(t *testing.T) {
	s, err := NewStorage(StorageConfig{Type: StorageTypeLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}

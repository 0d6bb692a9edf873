package disk

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/ports/files"
)

func TestStorage_PutOpenDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "1700000000000-abc.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg"))

	rc, err := s.Open(ctx, "1700000000000-abc.jpg")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "jpeg-bytes", string(b))

	require.NoError(t, s.Delete(ctx, "1700000000000-abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "1700000000000-abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.Delete(ctx, "1700000000000-abc.jpg"), files.ErrNotFound)
	_, err = s.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, files.ErrNotFound)
}

func TestStorage_RejectsTraversalAndOverwrite(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "../escape.txt", strings.NewReader("x"), 1, ""), files.ErrInvalidName)
	_, err = s.Open(ctx, "a/b.txt")
	assert.ErrorIs(t, err, files.ErrInvalidName)

	require.NoError(t, s.Put(ctx, "same.txt", strings.NewReader("1"), 1, ""))
	assert.Error(t, s.Put(ctx, "same.txt", strings.NewReader("2"), 1, ""))
}

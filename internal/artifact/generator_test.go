package artifact

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGenerator(filepath.Join(t.TempDir(), "qrcodes"), logger)
}

func TestGenerateWritesImage(t *testing.T) {
	g := newTestGenerator(t)

	path, err := g.Generate("ID: 3, Name: Bob, Contact: 555", "Bob")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateKeepsExistingExtension(t *testing.T) {
	g := newTestGenerator(t)

	path, err := g.Generate("payload", "Bob.png")
	require.NoError(t, err)
	assert.Equal(t, "Bob.png", filepath.Base(path))
}

func TestGenerateRegeneratesOnRepeat(t *testing.T) {
	g := newTestGenerator(t)

	first, err := g.Generate("payload", "Bob")
	require.NoError(t, err)
	second, err := g.Generate("payload", "Bob")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	_, err = os.Stat(second)
	assert.NoError(t, err)
}

func TestGenerateSanitizesName(t *testing.T) {
	g := newTestGenerator(t)

	path, err := g.Generate("payload", "../escape/Bob")
	require.NoError(t, err)
	assert.Equal(t, ".._escape_Bob.png", filepath.Base(path))
}

func TestGenerateUnwritableDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A regular file where the directory should go makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	g := NewGenerator(filepath.Join(blocker, "qrcodes"), logger)
	_, err := g.Generate("payload", "Bob")

	var werr *ArtifactWriteError
	assert.ErrorAs(t, err, &werr)
}

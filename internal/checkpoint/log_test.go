package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDoneAndIsDone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.log")

	log, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer log.Close()

	assert.False(t, log.IsDone("archive-a"))
	require.NoError(t, log.MarkDone("archive-a"))
	assert.True(t, log.IsDone("archive-a"))
	assert.False(t, log.IsDone("archive-b"))
}

func TestReopenPreservesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.log")

	log, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, log.MarkDone("archive-a"))
	require.NoError(t, log.MarkDone("archive-b"))
	require.NoError(t, log.Close())

	// A later run with the same log must skip everything processed before.
	reopened, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.IsDone("archive-a"))
	assert.True(t, reopened.IsDone("archive-b"))
	assert.False(t, reopened.IsDone("archive-c"))
	assert.Equal(t, 2, reopened.Count())
}

func TestMarkDoneIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "done.log")

	log, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, log.MarkDone("archive-a"))
	require.NoError(t, log.MarkDone("archive-a"))
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "archive-a\n", string(content))
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "done.log")

	log, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.MarkDone("archive-a"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

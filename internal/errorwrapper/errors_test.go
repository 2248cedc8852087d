package errorwrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := WrapError(base, "failed to fetch listing")

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "failed to fetch listing")
}

func TestTypedErrorsUnwrap(t *testing.T) {
	base := errors.New("disk full")

	tests := []struct {
		name string
		err  error
	}{
		{"upstream", NewUpstreamUnavailableError("cc-news", base)},
		{"download", NewDownloadError("https://example.com/a.warc.gz", "write failed", base)},
		{"archive", NewArchiveParseError("/tmp/a.warc.gz", base)},
		{"checkpoint", NewCheckpointWriteError("/tmp/done.log", base)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, base)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorsAsTargets(t *testing.T) {
	var downloadErr *DownloadError
	err := WrapError(NewDownloadError("https://example.com", "timeout", nil), "fetch")
	assert.True(t, errors.As(err, &downloadErr))
	assert.Equal(t, "https://example.com", downloadErr.URL)

	var checkpointErr *CheckpointWriteError
	err = WrapError(NewCheckpointWriteError("done.log", errors.New("sync failed")), "mark done")
	assert.True(t, errors.As(err, &checkpointErr))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("worker_pool_size", -1, "must be non-negative")
	assert.Contains(t, err.Error(), "worker_pool_size")
	assert.Contains(t, err.Error(), "must be non-negative")
}

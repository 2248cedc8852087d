package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Default(t *testing.T) {
	logger, err := New(NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.LogLevel = "verbose"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_FileLogging(t *testing.T) {
	logDir := t.TempDir()
	logFile := filepath.Join(logDir, "newspipe.log")

	cfg := NewDefaultConfig()
	cfg.LogFile = logFile
	cfg.LogLevel = "debug"

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Debug().Msg("this is a test")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"level":"debug"`)
	assert.Contains(t, string(content), "this is a test")
}

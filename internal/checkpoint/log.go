package checkpoint

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"newspipe/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// Log is the append-only record of fully processed archive names. Once a
// name appears it is never reprocessed by later runs of the same crawl
// configuration. The controller is the single writer; workers never touch it.
type Log struct {
	path   string
	file   *os.File
	done   map[string]struct{}
	mu     sync.Mutex
	logger zerolog.Logger
}

// Open loads the existing log (if any) with a full scan and opens it for
// appending. The parent directory is created when missing.
func Open(path string, logger zerolog.Logger) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errorwrapper.NewCheckpointWriteError(path, err)
		}
	}

	done, err := loadEntries(path)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errorwrapper.NewCheckpointWriteError(path, err)
	}

	componentLogger := logger.With().Str("component", "CheckpointLog").Logger()
	componentLogger.Info().Str("path", path).Int("entries", len(done)).Msg("Checkpoint log opened")

	return &Log{
		path:   path,
		file:   file,
		done:   done,
		logger: componentLogger,
	}, nil
}

// IsDone reports whether the archive name was fully processed before
func (l *Log) IsDone(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.done[name]
	return ok
}

// MarkDone appends the archive name and syncs it to stable storage before
// returning, so the caller may safely delete the local archive afterwards.
func (l *Log) MarkDone(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.done[name]; ok {
		return nil
	}

	if _, err := l.file.WriteString(name + "\n"); err != nil {
		return errorwrapper.NewCheckpointWriteError(l.path, err)
	}
	if err := l.file.Sync(); err != nil {
		return errorwrapper.NewCheckpointWriteError(l.path, err)
	}

	l.done[name] = struct{}{}
	l.logger.Debug().Str("archive", name).Msg("Archive marked done")
	return nil
}

// Count returns the number of completed archives
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.done)
}

// Close closes the underlying file handle
func (l *Log) Close() error {
	return l.file.Close()
}

// loadEntries scans the log file into a membership set
func loadEntries(path string) (map[string]struct{}, error) {
	done := make(map[string]struct{})

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return done, nil
	}
	if err != nil {
		return nil, errorwrapper.NewCheckpointWriteError(path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			done[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errorwrapper.NewCheckpointWriteError(path, err)
	}
	return done, nil
}

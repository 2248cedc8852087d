package sink

import (
	"time"

	"github.com/rs/zerolog"
)

// RunStats holds the counters for one archive file's processing. A new value
// is created per file; nothing carries over between archives.
type RunStats struct {
	TotalRecords int
	Passed       int
	Discarded    int
	Failed       int

	start time.Time
}

// NewRunStats creates started counters for one archive file
func NewRunStats() *RunStats {
	return &RunStats{start: time.Now()}
}

// Elapsed returns the wall-clock time since the stats were created
func (s *RunStats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// LogSummary emits the per-archive processing summary
func (s *RunStats) LogSummary(logger zerolog.Logger, archiveName string) {
	logger.Info().
		Str("archive", archiveName).
		Int("records", s.TotalRecords).
		Int("passed", s.Passed).
		Int("discarded", s.Discarded).
		Int("failed", s.Failed).
		Dur("elapsed", s.Elapsed()).
		Msg("Archive processing summary")
}

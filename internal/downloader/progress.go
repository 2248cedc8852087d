package downloader

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ProgressFunc observes download progress. totalBytes is -1 when the server
// did not report a Content-Length. Calls are synchronous with the download
// loop and must not block for long; they never affect completion semantics.
type ProgressFunc func(bytesRead, totalBytes int64)

// progressLogInterval is how many bytes pass between progress log lines.
const progressLogInterval = 16 * 1024 * 1024

// newLoggingProgress returns a ProgressFunc that logs byte counts at a
// bounded rate.
func newLoggingProgress(logger zerolog.Logger) ProgressFunc {
	var lastLogged int64
	return func(bytesRead, totalBytes int64) {
		if bytesRead-lastLogged < progressLogInterval && (totalBytes < 0 || bytesRead < totalBytes) {
			return
		}
		lastLogged = bytesRead

		event := logger.Info().Str("read", formatBytes(bytesRead))
		if totalBytes > 0 {
			event = event.Str("total", formatBytes(totalBytes))
		}
		event.Msg("Download progress")
	}
}

// formatBytes renders a byte count in a compact human unit
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for next := n / unit; next >= unit; next /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

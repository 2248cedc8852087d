package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newspipe/internal/config"
	"newspipe/internal/errorwrapper"
	"newspipe/internal/extractor"

	"github.com/rs/zerolog"
)

// Sink writes extracted articles for one archive file. WriteAll never
// mutates article content; nil extraction results must be filtered out
// before reaching the sink. Close finalizes the output and writes the
// sibling completion marker; it is safe to call after a partial write, in
// which case the marker reflects partial progress.
type Sink interface {
	WriteAll(articles []*extractor.Article) error
	Close() error
	Path() string
}

// markerSuffix is appended to the output path for the completion marker.
const markerSuffix = ".done"

// New creates the configured sink for one archive file. The output file is
// named after the archive and lives in the configured output directory.
func New(cfg config.SinkConfig, archiveName string, logger zerolog.Logger) (Sink, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "could not create output directory")
	}

	base := outputBaseName(archiveName)
	switch strings.ToLower(cfg.Format) {
	case "", config.SinkFormatJSONL:
		return newGzipJSONLSink(filepath.Join(cfg.OutputDir, base+".jsonl.gz"), logger)
	case config.SinkFormatParquet:
		return newParquetSink(filepath.Join(cfg.OutputDir, base+".parquet"), cfg.Compression, logger)
	default:
		return nil, errorwrapper.NewValidationError("format", cfg.Format, "unknown sink format")
	}
}

// outputBaseName derives the output file base from an archive name,
// dropping the path and the container extensions.
func outputBaseName(archiveName string) string {
	base := filepath.Base(archiveName)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".warc")
	return base
}

// writeMarker records the elapsed wall-clock time next to the output file
func writeMarker(outputPath string, elapsedSeconds float64) error {
	content := fmt.Sprintf("done in %.1f seconds\n", elapsedSeconds)
	return os.WriteFile(outputPath+markerSuffix, []byte(content), 0644)
}

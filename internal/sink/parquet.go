package sink

import (
	"os"
	"strings"
	"time"

	"newspipe/internal/errorwrapper"
	"newspipe/internal/extractor"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetSink writes articles into a parquet file, mirroring the JSONL sink
// behavior including the completion marker.
type ParquetSink struct {
	path    string
	file    *os.File
	writer  *parquet.GenericWriter[extractor.Article]
	start   time.Time
	written int
	closed  bool
	logger  zerolog.Logger
}

// newParquetSink opens the parquet output file for one archive's processing
func newParquetSink(path, compression string, logger zerolog.Logger) (*ParquetSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not create sink file")
	}

	writer := parquet.NewGenericWriter[extractor.Article](file, compressionOption(compression))

	return &ParquetSink{
		path:   path,
		file:   file,
		writer: writer,
		start:  time.Now(),
		logger: logger.With().Str("component", "ParquetSink").Logger(),
	}, nil
}

// compressionOption maps the configured codec name to a writer option
func compressionOption(compression string) parquet.WriterOption {
	switch strings.ToLower(compression) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// WriteAll appends the articles as parquet rows
func (s *ParquetSink) WriteAll(articles []*extractor.Article) error {
	if len(articles) == 0 {
		return nil
	}

	rows := make([]extractor.Article, len(articles))
	for i, article := range articles {
		rows[i] = *article
	}

	if _, err := s.writer.Write(rows); err != nil {
		return errorwrapper.WrapError(err, "could not write parquet rows")
	}
	s.written += len(rows)
	return nil
}

// Close flushes the parquet footer and writes the completion marker
func (s *ParquetSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.writer.Close(); err != nil {
		s.file.Close()
		return errorwrapper.WrapError(err, "could not finalize parquet file")
	}
	if err := s.file.Close(); err != nil {
		return errorwrapper.WrapError(err, "could not close sink file")
	}

	elapsed := time.Since(s.start).Seconds()
	if err := writeMarker(s.path, elapsed); err != nil {
		return errorwrapper.WrapError(err, "could not write completion marker")
	}

	s.logger.Info().
		Str("path", s.path).
		Int("articles", s.written).
		Float64("seconds", elapsed).
		Msg("Sink closed")
	return nil
}

// Path returns the output file path
func (s *ParquetSink) Path() string {
	return s.path
}

package sink

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"time"

	"newspipe/internal/errorwrapper"
	"newspipe/internal/extractor"

	"github.com/rs/zerolog"
)

// GzipJSONLSink writes one compact JSON object per line into a gzip file.
type GzipJSONLSink struct {
	path    string
	file    *os.File
	gz      *gzip.Writer
	start   time.Time
	written int
	closed  bool
	logger  zerolog.Logger
}

// newGzipJSONLSink opens the output file for one archive's processing
func newGzipJSONLSink(path string, logger zerolog.Logger) (*GzipJSONLSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not create sink file")
	}

	return &GzipJSONLSink{
		path:   path,
		file:   file,
		gz:     gzip.NewWriter(file),
		start:  time.Now(),
		logger: logger.With().Str("component", "GzipJSONLSink").Logger(),
	}, nil
}

// WriteAll serializes each article as one line
func (s *GzipJSONLSink) WriteAll(articles []*extractor.Article) error {
	for _, article := range articles {
		data, err := json.Marshal(article)
		if err != nil {
			return errorwrapper.WrapError(err, "could not serialize article "+article.URL)
		}
		if _, err := s.gz.Write(append(data, '\n')); err != nil {
			return errorwrapper.WrapError(err, "could not write article "+article.URL)
		}
		s.written++
	}
	return nil
}

// Close flushes the stream and writes the completion marker
func (s *GzipJSONLSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.gz.Close(); err != nil {
		s.file.Close()
		return errorwrapper.WrapError(err, "could not finalize compressed stream")
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
func (s *GzipJSONLSink) Path() string {
	return s.path
}

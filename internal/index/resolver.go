package index

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newspipe/internal/config"
	"newspipe/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// ccNewsStart is the first month CC-NEWS listings exist for.
var ccNewsStart = time.Date(2016, time.August, 1, 0, 0, 0, 0, time.UTC)

// listingFileName is the transient local listing file. It is removed before
// every listing attempt, but a failed call may leave it behind; callers must
// tolerate an occasional pre-existing stale file.
const listingFileName = "warc.paths.gz"

// Resolver lists candidate archive names from the CC-NEWS monthly listings.
// No filtering happens here: archive names alone do not reveal per-article
// dates reliably, so host/date filtering is applied per article later.
type Resolver struct {
	baseURL string
	months  []time.Time
	tempDir string
	client  *http.Client
	logger  zerolog.Logger
}

// NewResolver creates a Resolver for the months bounded by cfg.IndexFrom and
// cfg.IndexTo (inclusive). Empty bounds default to the start of CC-NEWS and
// the current month.
func NewResolver(cfg config.CrawlConfig, tempDir string, client *http.Client, logger zerolog.Logger) (*Resolver, error) {
	months, err := monthRange(cfg.IndexFrom, cfg.IndexTo)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		baseURL: strings.TrimSuffix(cfg.ArchiveBaseURL, "/"),
		months:  months,
		tempDir: tempDir,
		client:  client,
		logger:  logger.With().Str("component", "IndexResolver").Logger(),
	}, nil
}

// ListCandidates returns the ordered archive names for all configured
// months. Any listing failure surfaces as UpstreamUnavailableError; a month
// that is not published yet (HTTP 404) is skipped.
func (r *Resolver) ListCandidates(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(r.tempDir, 0755); err != nil {
		return nil, errorwrapper.NewUpstreamUnavailableError(r.baseURL, err)
	}

	listingPath := filepath.Join(r.tempDir, listingFileName)
	// Delete-then-recreate: a stale listing from a previous failed call would
	// silently yield wrong results instead of an error.
	_ = os.Remove(listingPath)

	var names []string
	for _, month := range r.months {
		listingURL := fmt.Sprintf("%s/crawl-data/CC-NEWS/%d/%02d/warc.paths.gz", r.baseURL, month.Year(), month.Month())

		monthNames, found, err := r.fetchListing(ctx, listingURL, listingPath)
		if err != nil {
			return nil, errorwrapper.NewUpstreamUnavailableError(listingURL, err)
		}
		if !found {
			r.logger.Debug().Str("url", listingURL).Msg("No listing published for month, skipping")
			continue
		}

		r.logger.Info().Str("url", listingURL).Int("archives", len(monthNames)).Msg("Resolved monthly listing")
		names = append(names, monthNames...)
	}

	_ = os.Remove(listingPath)

	return names, nil
}

// fetchListing downloads one monthly warc.paths.gz to the transient listing
// file and parses it into archive names. found is false on HTTP 404.
func (r *Resolver) fetchListing(ctx context.Context, listingURL, listingPath string) (names []string, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, errorwrapper.NewError("unexpected status %s for listing", resp.Status)
	}

	outFile, err := os.Create(listingPath)
	if err != nil {
		return nil, false, err
	}
	if _, err := io.Copy(outFile, resp.Body); err != nil {
		outFile.Close()
		return nil, false, err
	}
	if err := outFile.Close(); err != nil {
		return nil, false, err
	}

	names, err = parseListing(listingPath)
	if err != nil {
		return nil, false, err
	}
	return names, true, nil
}

// parseListing reads the gzipped listing file into archive names, one per line.
func parseListing(listingPath string) ([]string, error) {
	file, err := os.Open(listingPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer gzReader.Close()

	data, err := io.ReadAll(gzReader)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// monthRange expands [from, to] (yyyy-mm, inclusive) into consecutive months.
func monthRange(from, to string) ([]time.Time, error) {
	start := ccNewsStart
	if from != "" {
		parsed, err := time.Parse(config.MonthLayout, from)
		if err != nil {
			return nil, errorwrapper.NewValidationError("index_from", from, "expected yyyy-mm")
		}
		start = parsed
	}

	end := time.Now().UTC()
	if to != "" {
		parsed, err := time.Parse(config.MonthLayout, to)
		if err != nil {
			return nil, errorwrapper.NewValidationError("index_to", to, "expected yyyy-mm")
		}
		end = parsed
	}
	end = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	if end.Before(start) {
		return nil, errorwrapper.NewValidationError("index_to", to, "index_to is before index_from")
	}

	var months []time.Time
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		months = append(months, month)
	}
	return months, nil
}

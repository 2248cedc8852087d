package index

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"newspipe/internal/config"
	"newspipe/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipListing(t *testing.T, lines string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(lines))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newTestResolver(t *testing.T, serverURL, from, to string) (*Resolver, string) {
	t.Helper()
	tempDir := t.TempDir()
	cfg := config.NewDefaultCrawlConfig()
	cfg.ArchiveBaseURL = serverURL
	cfg.IndexFrom = from
	cfg.IndexTo = to

	resolver, err := NewResolver(cfg, tempDir, http.DefaultClient, zerolog.Nop())
	require.NoError(t, err)
	return resolver, tempDir
}

func TestListCandidates(t *testing.T) {
	listings := map[string]string{
		"/crawl-data/CC-NEWS/2016/08/warc.paths.gz": "crawl-data/CC-NEWS/2016/08/CC-NEWS-20160826124520-00000.warc.gz\ncrawl-data/CC-NEWS/2016/08/CC-NEWS-20160827124520-00001.warc.gz\n",
		"/crawl-data/CC-NEWS/2016/09/warc.paths.gz": "crawl-data/CC-NEWS/2016/09/CC-NEWS-20160901124520-00000.warc.gz\n",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := listings[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(gzipListing(t, body))
	}))
	defer server.Close()

	resolver, tempDir := newTestResolver(t, server.URL, "2016-08", "2016-10")

	names, err := resolver.ListCandidates(context.Background())
	require.NoError(t, err)

	// 2016-10 is 404 and therefore skipped; order follows the listings.
	assert.Equal(t, []string{
		"crawl-data/CC-NEWS/2016/08/CC-NEWS-20160826124520-00000.warc.gz",
		"crawl-data/CC-NEWS/2016/08/CC-NEWS-20160827124520-00001.warc.gz",
		"crawl-data/CC-NEWS/2016/09/CC-NEWS-20160901124520-00000.warc.gz",
	}, names)

	// The transient listing file must not leak after a successful call.
	_, err = os.Stat(filepath.Join(tempDir, listingFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestListCandidates_RemovesStaleListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gzipListing(t, "crawl-data/CC-NEWS/2016/08/CC-NEWS-20160826124520-00000.warc.gz\n"))
	}))
	defer server.Close()

	resolver, tempDir := newTestResolver(t, server.URL, "2016-08", "2016-08")

	// Simulate a stale listing left behind by an earlier failed call.
	stale := filepath.Join(tempDir, listingFileName)
	require.NoError(t, os.WriteFile(stale, []byte("not gzip"), 0644))

	names, err := resolver.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestListCandidates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver, _ := newTestResolver(t, server.URL, "2016-08", "2016-08")

	_, err := resolver.ListCandidates(context.Background())
	var upstreamErr *errorwrapper.UpstreamUnavailableError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestListCandidates_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	resolver, _ := newTestResolver(t, server.URL, "2016-08", "2016-08")

	_, err := resolver.ListCandidates(context.Background())
	var upstreamErr *errorwrapper.UpstreamUnavailableError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestMonthRange(t *testing.T) {
	months, err := monthRange("2016-11", "2017-02")
	require.NoError(t, err)
	require.Len(t, months, 4)
	assert.Equal(t, 2016, months[0].Year())
	assert.Equal(t, 2017, months[3].Year())

	_, err = monthRange("2017-02", "2016-11")
	assert.Error(t, err)

	_, err = monthRange("bogus", "")
	assert.Error(t, err)
}

package downloader

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"newspipe/internal/config"
	"newspipe/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// copyBufferSize is the chunk size for streaming archive bytes to disk.
const copyBufferSize = 128 * 1024

// Downloader fetches remote archive files into a local cache directory.
type Downloader struct {
	cfg      config.DownloaderConfig
	client   *http.Client
	logger   zerolog.Logger
	progress ProgressFunc
}

// NewDownloader creates a Downloader. When cfg.ShowProgress is set a logging
// progress reporter is installed; WithProgressFunc replaces it.
func NewDownloader(cfg config.DownloaderConfig, client *http.Client, logger zerolog.Logger) *Downloader {
	componentLogger := logger.With().Str("component", "Downloader").Logger()

	d := &Downloader{
		cfg:    cfg,
		client: client,
		logger: componentLogger,
	}
	if cfg.ShowProgress {
		d.progress = newLoggingProgress(componentLogger)
	}
	return d
}

// WithProgressFunc sets a custom progress observer
func (d *Downloader) WithProgressFunc(fn ProgressFunc) *Downloader {
	d.progress = fn
	return d
}

// LocalPath returns the deterministic cache path for a download URL:
// the URL-escaped name under the download directory.
func (d *Downloader) LocalPath(rawURL string) string {
	return filepath.Join(d.cfg.DownloadDir, url.QueryEscape(rawURL))
}

// Fetch downloads rawURL into the cache directory and returns the local
// path. When reuse is enabled and the file already exists it is returned
// immediately without validating completeness or integrity: a partially
// downloaded or corrupted cached file will be silently reused.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := os.MkdirAll(d.cfg.DownloadDir, 0755); err != nil {
		return "", errorwrapper.NewDownloadError(rawURL, "could not create download directory", err)
	}

	localPath := d.LocalPath(rawURL)

	if d.cfg.ReuseExisting {
		if info, err := os.Stat(localPath); err == nil && !info.IsDir() {
			d.logger.Info().Str("local", localPath).Msg("Found local file, not downloading again due to configuration")
			return localPath, nil
		}
	}

	// Remove any stale file at the target path; not-exist is fine.
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		return "", errorwrapper.NewDownloadError(rawURL, "could not remove stale file", err)
	}

	d.logger.Info().Str("url", rawURL).Str("local", localPath).Msg("Downloading archive")

	if err := d.download(ctx, rawURL, localPath); err != nil {
		return "", err
	}

	d.logger.Info().Str("local", localPath).Msg("Download completed")
	return localPath, nil
}

// download streams the response body to localPath, reporting progress after
// every chunk.
func (d *Downloader) download(ctx context.Context, rawURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errorwrapper.NewDownloadError(rawURL, "could not build request", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return errorwrapper.NewDownloadError(rawURL, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorwrapper.NewDownloadError(rawURL, "unexpected status "+resp.Status, nil)
	}

	outFile, err := os.Create(localPath)
	if err != nil {
		return errorwrapper.NewDownloadError(rawURL, "could not create local file", err)
	}

	totalBytes := resp.ContentLength
	var bytesRead int64
	buf := make([]byte, copyBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := outFile.Write(buf[:n]); writeErr != nil {
				outFile.Close()
				return errorwrapper.NewDownloadError(rawURL, "write failed", writeErr)
			}
			bytesRead += int64(n)
			if d.progress != nil {
				d.progress(bytesRead, totalBytes)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			outFile.Close()
			return errorwrapper.NewDownloadError(rawURL, "read failed", readErr)
		}
	}

	if err := outFile.Close(); err != nil {
		return errorwrapper.NewDownloadError(rawURL, "close failed", err)
	}
	return nil
}

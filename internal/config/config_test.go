package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, "https://data.commoncrawl.org/", cfg.CrawlConfig.ArchiveBaseURL)
	assert.True(t, cfg.CrawlConfig.ContinueAfterError)
	assert.False(t, cfg.CrawlConfig.DeleteAfterExtraction)
	assert.True(t, cfg.DownloaderConfig.ReuseExisting)
	assert.True(t, cfg.FilterConfig.StrictDate)
	assert.Equal(t, SinkFormatJSONL, cfg.SinkConfig.Format)
	assert.Equal(t, 100, cfg.ExtractorConfig.LogEvery)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
crawl_config:
  archive_base_url: "https://mirror.example.com/"
  index_from: "2016-01"
  index_to: "2016-03"
  continue_after_error: false
filter_config:
  valid_hosts:
    - elrancaguino.cl
  start_date: "2016-01-01"
  end_date: "2016-12-31"
  strict_date: true
extractor_config:
  worker_pool_size: 4
sink_config:
  output_dir: "/tmp/articles"
  format: parquet
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.com/", cfg.CrawlConfig.ArchiveBaseURL)
	assert.Equal(t, "2016-01", cfg.CrawlConfig.IndexFrom)
	assert.False(t, cfg.CrawlConfig.ContinueAfterError)
	assert.Equal(t, []string{"elrancaguino.cl"}, cfg.FilterConfig.ValidHosts)
	assert.Equal(t, 4, cfg.ExtractorConfig.WorkerPoolSize)
	assert.Equal(t, SinkFormatParquet, cfg.SinkConfig.Format)

	// Unspecified sections keep their defaults.
	assert.Equal(t, "cc_download_warc", cfg.DownloaderConfig.DownloadDir)
}

func TestLoadGlobalConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalConfig)
		wantErr bool
	}{
		{"defaults are valid", func(cfg *GlobalConfig) {}, false},
		{"bad date format", func(cfg *GlobalConfig) { cfg.FilterConfig.StartDate = "01/01/2016" }, true},
		{"bad month format", func(cfg *GlobalConfig) { cfg.CrawlConfig.IndexFrom = "2016" }, true},
		{"bad sink format", func(cfg *GlobalConfig) { cfg.SinkConfig.Format = "csv" }, true},
		{"bad log level", func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" }, true},
		{"negative workers", func(cfg *GlobalConfig) { cfg.ExtractorConfig.WorkerPoolSize = -1 }, true},
		{"inverted date window", func(cfg *GlobalConfig) {
			cfg.FilterConfig.StartDate = "2016-12-31"
			cfg.FilterConfig.EndDate = "2016-01-01"
		}, true},
		{"valid date window", func(cfg *GlobalConfig) {
			cfg.FilterConfig.StartDate = "2016-01-01"
			cfg.FilterConfig.EndDate = "2016-12-31"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

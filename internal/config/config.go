package config

import (
	"newspipe/internal/logger"
)

// DateLayout is the format for start/end date filter values in config files.
const DateLayout = "2006-01-02"

// MonthLayout is the format for index month bounds in config files.
const MonthLayout = "2006-01"

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	CrawlConfig      CrawlConfig      `json:"crawl_config,omitempty" yaml:"crawl_config,omitempty"`
	DownloaderConfig DownloaderConfig `json:"downloader_config,omitempty" yaml:"downloader_config,omitempty"`
	FilterConfig     FilterConfig     `json:"filter_config,omitempty" yaml:"filter_config,omitempty"`
	ExtractorConfig  ExtractorConfig  `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	SinkConfig       SinkConfig       `json:"sink_config,omitempty" yaml:"sink_config,omitempty"`
	LogConfig        logger.Config    `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CrawlConfig:      NewDefaultCrawlConfig(),
		DownloaderConfig: NewDefaultDownloaderConfig(),
		FilterConfig:     NewDefaultFilterConfig(),
		ExtractorConfig:  NewDefaultExtractorConfig(),
		SinkConfig:       NewDefaultSinkConfig(),
		LogConfig:        logger.NewDefaultConfig(),
	}
}

// CrawlConfig controls the crawl run: which archives to consider and how the
// controller reacts to per-file failures.
type CrawlConfig struct {
	// ArchiveBaseURL is the HTTP(S) base all archive names are resolved against.
	ArchiveBaseURL string `json:"archive_base_url,omitempty" yaml:"archive_base_url,omitempty" validate:"omitempty,url"`
	// IndexFrom/IndexTo bound the CC-NEWS listing months (inclusive), yyyy-mm.
	IndexFrom string `json:"index_from,omitempty" yaml:"index_from,omitempty" validate:"omitempty,monthformat"`
	IndexTo   string `json:"index_to,omitempty" yaml:"index_to,omitempty" validate:"omitempty,monthformat"`
	// ContinueAfterError: skip to the next archive on a file-level failure
	// instead of aborting the run.
	ContinueAfterError bool `json:"continue_after_error,omitempty" yaml:"continue_after_error,omitempty"`
	// DeleteAfterExtraction removes the local archive copy once its name is
	// durable in the checkpoint log.
	DeleteAfterExtraction bool   `json:"delete_after_extraction,omitempty" yaml:"delete_after_extraction,omitempty"`
	CheckpointLogPath     string `json:"checkpoint_log_path,omitempty" yaml:"checkpoint_log_path,omitempty" validate:"required"`
}

// NewDefaultCrawlConfig creates default crawl configuration
func NewDefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		ArchiveBaseURL:        "https://data.commoncrawl.org/",
		ContinueAfterError:    true,
		DeleteAfterExtraction: false,
		CheckpointLogPath:     "newspipe_done.log",
	}
}

// DownloaderConfig controls archive downloading and local caching.
type DownloaderConfig struct {
	DownloadDir string `json:"download_dir,omitempty" yaml:"download_dir,omitempty" validate:"required"`
	// ReuseExisting returns a cached file without validating completeness or
	// integrity. A partial previous download will be silently reused.
	ReuseExisting  bool `json:"reuse_existing,omitempty" yaml:"reuse_existing,omitempty"`
	ShowProgress   bool `json:"show_progress,omitempty" yaml:"show_progress,omitempty"`
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=0"`
}

// NewDefaultDownloaderConfig creates default downloader configuration
func NewDefaultDownloaderConfig() DownloaderConfig {
	return DownloaderConfig{
		DownloadDir:    "cc_download_warc",
		ReuseExisting:  true,
		ShowProgress:   false,
		TimeoutSeconds: 0,
	}
}

// FilterConfig holds the article filter criteria for one crawl run.
type FilterConfig struct {
	// ValidHosts: empty means any host passes.
	ValidHosts []string `json:"valid_hosts,omitempty" yaml:"valid_hosts,omitempty"`
	StartDate  string   `json:"start_date,omitempty" yaml:"start_date,omitempty" validate:"omitempty,dateformat"`
	EndDate    string   `json:"end_date,omitempty" yaml:"end_date,omitempty" validate:"omitempty,dateformat"`
	// StrictDate discards articles whose publish date cannot be determined.
	StrictDate bool `json:"strict_date,omitempty" yaml:"strict_date,omitempty"`
}

// NewDefaultFilterConfig creates default filter configuration
func NewDefaultFilterConfig() FilterConfig {
	return FilterConfig{
		StrictDate: true,
	}
}

// ExtractorConfig controls the parallel extraction stage.
type ExtractorConfig struct {
	// WorkerPoolSize: 0 means use the machine's physical CPU count.
	WorkerPoolSize int `json:"worker_pool_size,omitempty" yaml:"worker_pool_size,omitempty" validate:"min=0"`
	// LogEvery: log throughput after every Nth completed record.
	LogEvery int `json:"log_every,omitempty" yaml:"log_every,omitempty" validate:"min=0"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		WorkerPoolSize: 0,
		LogEvery:       100,
	}
}

// Sink output formats
const (
	SinkFormatJSONL   = "jsonl"
	SinkFormatParquet = "parquet"
)

// SinkConfig controls where and how extracted articles are written.
type SinkConfig struct {
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,sinkformat"`
	// Compression applies to the parquet format only: zstd, snappy or gzip.
	Compression string `json:"compression,omitempty" yaml:"compression,omitempty"`
}

// NewDefaultSinkConfig creates default sink configuration
func NewDefaultSinkConfig() SinkConfig {
	return SinkConfig{
		OutputDir:   "cc_articles",
		Format:      SinkFormatJSONL,
		Compression: "zstd",
	}
}

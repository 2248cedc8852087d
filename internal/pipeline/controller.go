package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"newspipe/internal/checkpoint"
	"newspipe/internal/config"
	"newspipe/internal/downloader"
	"newspipe/internal/errorwrapper"
	"newspipe/internal/extractor"
	"newspipe/internal/filter"
	"newspipe/internal/index"
	"newspipe/internal/sink"
	"newspipe/internal/warc"

	"github.com/rs/zerolog"
)

// State labels the controller's current phase for logging and introspection.
type State string

const (
	StateIdle          State = "idle"
	StateResolving     State = "resolving"
	StateDownloading   State = "downloading"
	StateParsing       State = "parsing"
	StateExtracting    State = "extracting"
	StateFiltering     State = "filtering"
	StateWriting       State = "writing"
	StateCheckpointing State = "checkpointing"
	StateDone          State = "done"
)

// Summary aggregates the counters of one Run call across all archives.
type Summary struct {
	Candidates      int
	Skipped         int
	Processed       int
	Failed          int
	ArticlesWritten int
}

// Controller drives the crawl sequentially: resolve candidates, then per
// archive download, parse, extract, filter, write and checkpoint. It is the
// single writer of the sink and the checkpoint log; only the extraction
// stage fans out to workers.
type Controller struct {
	cfg        *config.GlobalConfig
	resolver   *index.Resolver
	downloader *downloader.Downloader
	dispatcher *extractor.Dispatcher
	criteria   filter.Criteria
	logger     zerolog.Logger
	state      State
}

// NewController wires the pipeline components from the global configuration.
// The extraction capability defaults to readability extraction and can be
// replaced with WithExtractor before Run.
func NewController(cfg *config.GlobalConfig, logger zerolog.Logger) (*Controller, error) {
	componentLogger := logger.With().Str("component", "PipelineController").Logger()

	clientConfig := downloader.DefaultHTTPClientConfig()
	if cfg.DownloaderConfig.TimeoutSeconds > 0 {
		clientConfig.Timeout = time.Duration(cfg.DownloaderConfig.TimeoutSeconds) * time.Second
	}
	client := downloader.NewHTTPClient(clientConfig)

	resolver, err := index.NewResolver(cfg.CrawlConfig, cfg.DownloaderConfig.DownloadDir, client, logger)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not create index resolver")
	}

	criteria, err := filter.NewCriteria(cfg.FilterConfig)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not build filter criteria")
	}

	ext := extractor.NewReadabilityExtractor(logger)

	return &Controller{
		cfg:        cfg,
		resolver:   resolver,
		downloader: downloader.NewDownloader(cfg.DownloaderConfig, client, logger),
		dispatcher: extractor.NewDispatcher(cfg.ExtractorConfig, ext, logger),
		criteria:   criteria,
		logger:     componentLogger,
		state:      StateIdle,
	}, nil
}

// WithExtractor replaces the extraction capability
func (c *Controller) WithExtractor(ext extractor.Extractor) *Controller {
	c.dispatcher = extractor.NewDispatcher(c.cfg.ExtractorConfig, ext, c.logger)
	return c
}

// State returns the controller's current phase
func (c *Controller) State() State {
	return c.state
}

// Run executes the crawl until all candidate archives are processed, the
// context is cancelled, or a fatal error occurs. Archives already present in
// the checkpoint log are skipped. File-level failures abort the run unless
// continue-after-error is configured; checkpoint write failures and upstream
// listing failures are always fatal.
func (c *Controller) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	ckpt, err := checkpoint.Open(c.cfg.CrawlConfig.CheckpointLogPath, c.logger)
	if err != nil {
		return summary, err
	}
	defer ckpt.Close()

	c.setState(StateResolving)
	candidates, err := c.resolver.ListCandidates(ctx)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)
	c.logger.Info().
		Int("candidates", len(candidates)).
		Int("already_done", ckpt.Count()).
		Msg("Candidate archives resolved")

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if ckpt.IsDone(name) {
			summary.Skipped++
			c.logger.Debug().Str("archive", name).Msg("Archive already processed, skipping")
			continue
		}

		written, err := c.processArchive(ctx, name, ckpt)
		if err != nil {
			summary.Failed++
			if isFatal(err) {
				return summary, err
			}
			if !c.cfg.CrawlConfig.ContinueAfterError {
				return summary, err
			}
			c.logger.Warn().Str("archive", name).Err(err).Msg("Archive failed, continuing with next")
			continue
		}

		summary.Processed++
		summary.ArticlesWritten += written
	}

	c.setState(StateDone)
	c.logger.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("articles", summary.ArticlesWritten).
		Msg("Crawl run finished")
	return summary, nil
}

// processArchive runs the full per-archive sequence and returns the number
// of articles written. The local copy is deleted only after the checkpoint
// entry is durable.
func (c *Controller) processArchive(ctx context.Context, name string, ckpt *checkpoint.Log) (int, error) {
	c.setState(StateDownloading)
	localPath, err := c.downloader.Fetch(ctx, c.archiveURL(name))
	if err != nil {
		return 0, err
	}

	written, err := c.processFile(ctx, name, localPath)
	if err != nil {
		return 0, err
	}

	c.setState(StateCheckpointing)
	if err := ckpt.MarkDone(name); err != nil {
		return 0, err
	}

	if c.cfg.CrawlConfig.DeleteAfterExtraction {
		if err := os.Remove(localPath); err != nil {
			c.logger.Warn().Str("local", localPath).Err(err).Msg("Could not delete local archive copy")
		}
	}

	return written, nil
}

// ProcessLocalFile runs the per-archive stages on an archive that is already
// on disk, bypassing index resolution, downloading and checkpointing.
func (c *Controller) ProcessLocalFile(ctx context.Context, path string) (int, error) {
	written, err := c.processFile(ctx, path, path)
	if err != nil {
		return 0, err
	}
	c.setState(StateDone)
	return written, nil
}

// processFile parses, extracts, filters and writes one local archive.
func (c *Controller) processFile(ctx context.Context, name, localPath string) (int, error) {
	stats := sink.NewRunStats()

	c.setState(StateParsing)
	records, err := warc.ReadAll(localPath)
	if err != nil {
		return 0, err
	}
	stats.TotalRecords = len(records)

	responses := 0
	for _, record := range records {
		if record.IsResponse() {
			responses++
		}
	}

	c.setState(StateExtracting)
	articles := c.dispatcher.ExtractAll(ctx, records)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	stats.Failed = responses - len(articles)

	c.setState(StateFiltering)
	var kept []*extractor.Article
	for _, article := range articles {
		ok, reason := c.criteria.Accept(article)
		if !ok {
			stats.Discarded++
			c.logger.Debug().Str("url", article.URL).Str("reason", reason).Msg("Article discarded")
			continue
		}
		stats.Passed++
		kept = append(kept, article)
	}

	c.setState(StateWriting)
	out, err := sink.New(c.cfg.SinkConfig, name, c.logger)
	if err != nil {
		return 0, err
	}
	if err := out.WriteAll(kept); err != nil {
		out.Close()
		return 0, errorwrapper.WrapError(err, "could not write articles for "+name)
	}
	if err := out.Close(); err != nil {
		return 0, errorwrapper.WrapError(err, "could not finalize sink for "+name)
	}

	stats.LogSummary(c.logger, name)
	return len(kept), nil
}

// archiveURL resolves a listed archive name against the configured base URL
func (c *Controller) archiveURL(name string) string {
	base := strings.TrimSuffix(c.cfg.CrawlConfig.ArchiveBaseURL, "/")
	return base + "/" + strings.TrimPrefix(name, "/")
}

// setState records and logs a phase transition
func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	c.logger.Debug().Str("from", string(c.state)).Str("to", string(next)).Msg("State transition")
	c.state = next
}

// isFatal reports whether the error must abort the run regardless of the
// continue-after-error setting.
func isFatal(err error) bool {
	var checkpointErr *errorwrapper.CheckpointWriteError
	if errors.As(err, &checkpointErr) {
		return true
	}
	var upstreamErr *errorwrapper.UpstreamUnavailableError
	return errors.As(err, &upstreamErr)
}

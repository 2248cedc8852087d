package extractor

import (
	"context"
	"runtime"
	"sync"

	"newspipe/internal/config"
	"newspipe/internal/warc"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Dispatcher maps raw records to articles over a bounded worker pool.
// Workers are stateless; the only shared mutable state is the completion
// counter inside the rate meter.
type Dispatcher struct {
	extractor Extractor
	workers   int
	logEvery  int
	logger    zerolog.Logger
}

// NewDispatcher creates a Dispatcher. A zero worker pool size resolves to
// the machine's physical CPU count.
func NewDispatcher(cfg config.ExtractorConfig, ext Extractor, logger zerolog.Logger) *Dispatcher {
	logEvery := cfg.LogEvery
	if logEvery <= 0 {
		logEvery = 100
	}

	return &Dispatcher{
		extractor: ext,
		workers:   resolveWorkerCount(cfg.WorkerPoolSize),
		logEvery:  logEvery,
		logger:    logger.With().Str("component", "Dispatcher").Logger(),
	}
}

// Workers returns the resolved pool size
func (d *Dispatcher) Workers() int {
	return d.workers
}

// ExtractAll runs the extraction capability on every record and returns the
// articles that were produced. Completion order is unspecified. A failing
// record is logged, counted and excluded; it never aborts the batch.
func (d *Dispatcher) ExtractAll(ctx context.Context, records []warc.RawRecord) []*Article {
	total := len(records)
	if total == 0 {
		return nil
	}

	jobs := make(chan warc.RawRecord)
	results := make(chan *Article)
	meter := NewRateMeter()

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				article := d.extractOne(record)

				completed := meter.Add(1)
				if completed%int64(d.logEvery) == 0 {
					d.logger.Info().
						Int64("completed", completed).
						Int("total", total).
						Float64("per_second", meter.Avg()).
						Msg("Extraction progress")
				}

				if article != nil {
					results <- article
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case <-ctx.Done():
				return
			case jobs <- record:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var articles []*Article
	for article := range results {
		articles = append(articles, article)
	}

	d.logger.Info().
		Int("records", total).
		Int("articles", len(articles)).
		Float64("per_second", meter.Avg()).
		Msg("Extraction finished")

	return articles
}

// extractOne invokes the extraction capability on a single record, absorbing
// both errors and panics so one bad record cannot take down the batch.
func (d *Dispatcher) extractOne(record warc.RawRecord) (article *Article) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn().
				Str("uri", record.TargetURI).
				Interface("panic", r).
				Msg("Skipping record due to panic during extraction")
			article = nil
		}
	}()

	article, err := d.extractor.Extract(record)
	if err != nil {
		d.logger.Warn().
			Str("uri", record.TargetURI).
			Err(err).
			Msg("Skipping record due to extraction error")
		return nil
	}
	return article
}

// resolveWorkerCount turns the configured pool size into an effective one
func resolveWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		return physical
	}
	return runtime.NumCPU()
}

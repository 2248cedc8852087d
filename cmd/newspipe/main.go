package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"newspipe/internal/config"
	"newspipe/internal/logger"
	"newspipe/internal/pipeline"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	// Flag overrides take precedence over the config file.
	if flags.OutputDir != "" {
		gCfg.SinkConfig.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		gCfg.ExtractorConfig.WorkerPoolSize = flags.Workers
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Msg("Configuration validated successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller, err := pipeline.NewController(gCfg, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not initialize pipeline")
	}

	if flags.WarcFile != "" {
		written, err := controller.ProcessLocalFile(ctx, flags.WarcFile)
		if err != nil {
			zLogger.Fatal().Err(err).Str("file", flags.WarcFile).Msg("Local archive processing failed")
		}
		zLogger.Info().Str("file", flags.WarcFile).Int("articles", written).Msg("Local archive processed")
		return
	}

	summary, err := controller.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			zLogger.Warn().
				Int("processed", summary.Processed).
				Msg("Run interrupted, progress is checkpointed and the next run resumes where this one stopped")
			return
		}
		zLogger.Fatal().Err(err).Msg("Crawl run failed")
	}

	zLogger.Info().
		Int("candidates", summary.Candidates).
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("articles", summary.ArticlesWritten).
		Msg("Crawl run completed")
}

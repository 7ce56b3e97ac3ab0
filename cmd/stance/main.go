package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/stance-classifier/internal/app"
	"github.com/lueurxax/stance-classifier/internal/core/domain"
	"github.com/lueurxax/stance-classifier/internal/ingest"
	"github.com/lueurxax/stance-classifier/internal/platform/config"
	"github.com/lueurxax/stance-classifier/internal/platform/observability"
)

type runConfig struct {
	trainPath           string
	evalPath            string
	trainAnnotationsPath string
	evalAnnotationsPath  string
	outPath             string
}

type predictionRecord struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func main() {
	flags := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsPort > 0 {
		health := observability.NewServer(cfg.MetricsPort, &logger)

		go func() {
			if err := health.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("health check server error")
			}
		}()
	}

	if err := run(ctx, cfg, flags, &logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("classification run canceled")
			return
		}

		logger.Fatal().Err(err).Msg("classification run failed")
	}
}

func parseFlags() runConfig {
	flags := runConfig{}

	flag.StringVar(&flags.trainPath, "train", "", "Path to training threads JSONL")
	flag.StringVar(&flags.evalPath, "eval", "", "Path to evaluation threads JSONL")
	flag.StringVar(&flags.trainAnnotationsPath, "train-annotations", "", "Path to training annotations JSON")
	flag.StringVar(&flags.evalAnnotationsPath, "eval-annotations", "", "Path to evaluation annotations JSON")
	flag.StringVar(&flags.outPath, "out", "predictions.jsonl", "Output predictions JSONL path")

	flag.Parse()

	return flags
}

func run(ctx context.Context, cfg *config.Config, flags runConfig, logger *zerolog.Logger) error {
	trainThreads, err := ingest.LoadThreads(flags.trainPath)
	if err != nil {
		return err
	}

	evalThreads, err := ingest.LoadThreads(flags.evalPath)
	if err != nil {
		return err
	}

	trainAnnotations, err := ingest.LoadAnnotations(flags.trainAnnotationsPath)
	if err != nil {
		return err
	}

	evalAnnotations, err := ingest.LoadAnnotations(flags.evalAnnotationsPath)
	if err != nil {
		return err
	}

	if err := ingest.ValidateCoverage(trainThreads, trainAnnotations); err != nil {
		return fmt.Errorf("training annotations: %w", err)
	}

	if err := ingest.ValidateCoverage(evalThreads, evalAnnotations); err != nil {
		return fmt.Errorf("evaluation annotations: %w", err)
	}

	application := app.New(cfg, logger)

	predictions, err := application.Classify(ctx, trainThreads, evalThreads, trainAnnotations, evalAnnotations)
	if err != nil {
		return err
	}

	if err := writePredictions(flags.outPath, evalThreads.Messages(), predictions); err != nil {
		return err
	}

	logger.Info().Str("out", flags.outPath).Int("predictions", len(predictions)).Msg("predictions written")

	return nil
}

func writePredictions(path string, messages []*domain.Message, predictions domain.PredictionSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating predictions file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	for _, m := range messages {
		rec := predictionRecord{ID: m.ID, Label: predictions[m.ID]}
		if err := enc.Encode(rec); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing prediction for %s: %w", m.ID, err)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing predictions file: %w", err)
	}

	return f.Close()
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Archiver assembles a payload into an archived report.
type Archiver interface {
	Assemble(ctx context.Context, payload api.ReportPayload) (store.ReportRecord, error)
}

// Runner drains a drop directory of payload files written by the upstream
// pipeline. Successfully archived payloads are removed; failures are moved
// to the failed directory and do not abort the batch.
type Runner struct {
	archiver  Archiver
	dropDir   string
	failedDir string
	config    RunnerConfig
}

type RunnerConfig struct {
	Concurrency int
}

type Summary struct {
	Processed int
	Failed    int
}

func NewRunner(archiver Archiver, dropDir, failedDir string, config RunnerConfig) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = 4
	}
	return &Runner{
		archiver:  archiver,
		dropDir:   dropDir,
		failedDir: failedDir,
		config:    config,
	}
}

func (r *Runner) Run(ctx context.Context) (Summary, error) {
	logger := zerolog.Ctx(ctx)

	files, err := filepath.Glob(filepath.Join(r.dropDir, "*.json"))
	if err != nil {
		return Summary{}, fmt.Errorf("scan drop directory: %w", err)
	}
	sort.Strings(files)

	var processed, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for _, file := range files {
		g.Go(func() error {
			if err := r.processFile(ctx, file); err != nil {
				logger.Error().Err(err).Str("file", file).Msg("failed to ingest payload")
				failed.Add(1)
				if moveErr := r.moveAside(file); moveErr != nil {
					logger.Warn().Err(moveErr).Str("file", file).Msg("failed to move payload aside")
				}
				return nil
			}
			processed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
	}
	logger.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Msg("ingest run finished")

	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var payload api.ReportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if _, err := r.archiver.Assemble(ctx, payload); err != nil {
		return err
	}

	if err := os.Remove(file); err != nil {
		return fmt.Errorf("remove consumed payload: %w", err)
	}
	return nil
}

func (r *Runner) moveAside(file string) error {
	if err := os.MkdirAll(r.failedDir, 0o755); err != nil {
		return err
	}
	return os.Rename(file, filepath.Join(r.failedDir, filepath.Base(file)))
}

// Package bootstrap assembles the credibility service from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/khabarcheck/khabarcheck/internal/api"
	"github.com/khabarcheck/khabarcheck/internal/config"
	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/extractor"
	"github.com/khabarcheck/khabarcheck/internal/heuristics"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/mlclient"
	"github.com/khabarcheck/khabarcheck/internal/processor"
	"github.com/khabarcheck/khabarcheck/internal/registry"
	"github.com/khabarcheck/khabarcheck/internal/scoring"
	"github.com/khabarcheck/khabarcheck/internal/telemetry"
)

// Components holds everything needed to run the HTTP server.
type Components struct {
	Logger    logging.Logger
	Registry  *registry.Registry
	MLClient  *mlclient.Client
	Scorer    *scoring.HybridScorer
	Analysis  *scoring.AnalysisService
	Telemetry *telemetry.Provider
	Server    *api.Server
}

// instrumentedFetcher reports article fetch durations to the metrics
// provider. Failed fetches are not observed so the histogram tracks the cost
// of pages actually parsed.
type instrumentedFetcher struct {
	inner    scoring.ArticleFetcher
	provider *telemetry.Provider
}

func newInstrumentedFetcher(inner scoring.ArticleFetcher, provider *telemetry.Provider) scoring.ArticleFetcher {
	return &instrumentedFetcher{inner: inner, provider: provider}
}

func (f *instrumentedFetcher) Extract(ctx context.Context, rawURL string) (domain.Article, error) {
	start := time.Now()
	article, err := f.inner.Extract(ctx, rawURL)
	if err != nil {
		return domain.Article{}, err
	}
	f.provider.RecordExtraction(ctx, time.Since(start))
	return article, nil
}

// NewComponents wires the full service from configuration.
func NewComponents(cfg *config.Config) (*Components, error) {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	provider := telemetry.NewProvider()
	reg := registry.New(logger)

	mlClient := mlclient.NewClient(cfg.ML.URL, cfg.ML.Timeout)
	logger.Info("ml sidecar client initialized", logging.String("url", cfg.ML.URL))

	scorer := scoring.NewHybridScorerWithConfig(mlClient, reg, logger, scoring.Config{
		DefaultTextWeight: cfg.Scoring.TextWeight,
	})

	analyzer := heuristics.NewAnalyzerWithConfig(cfg.Scoring.Heuristics)
	fetcher := newInstrumentedFetcher(extractor.NewWithConfig(logger, cfg.Extractor), provider)
	analysis := scoring.NewAnalysisServiceWithWeights(fetcher, scorer, analyzer, logger, cfg.Scoring.Blend)
	batch := processor.NewBatchProcessor(scorer, cfg.Service.Concurrency, logger)

	handler := api.NewHandler(scorer, analysis, batch, reg, mlClient, provider, logger,
		cfg.Service.Name, cfg.Service.Version)

	server := api.NewServer(handler, provider, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, logger)

	logger.Info("service components initialized",
		logging.String("service", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("sources", reg.Len()),
		logging.Int("port", cfg.Service.Port))

	return &Components{
		Logger:    logger,
		Registry:  reg,
		MLClient:  mlClient,
		Scorer:    scorer,
		Analysis:  analysis,
		Telemetry: provider,
		Server:    server,
	}, nil
}

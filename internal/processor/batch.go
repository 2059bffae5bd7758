// Package processor runs hybrid scoring over batches of texts with a worker
// pool, bounding concurrent calls into the ML sidecar.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/scoring"
)

const defaultConcurrency = 10

// BatchItem is one text to score.
type BatchItem struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

// BatchResult holds the outcome for a single item. Exactly one of Result and
// Error is set.
type BatchResult struct {
	Item   BatchItem            `json:"item"`
	Result *domain.HybridResult `json:"result,omitempty"`
	Error  error                `json:"-"`
}

// BatchProcessor scores batches of texts in parallel using a worker pool.
type BatchProcessor struct {
	scorer      *scoring.HybridScorer
	concurrency int
	logger      logging.Logger
}

// NewBatchProcessor creates a batch processor. Non-positive concurrency falls
// back to the default.
func NewBatchProcessor(scorer *scoring.HybridScorer, concurrency int, logger logging.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process scores every item and returns results in input order. Per-item
// failures land in the corresponding BatchResult; the batch itself only fails
// on context cancellation, reported through the items it never reached.
func (b *BatchProcessor) Process(ctx context.Context, items []BatchItem, textWeight float64) []*BatchResult {
	if len(items) == 0 {
		return []*BatchResult{}
	}

	b.logger.Info("starting batch scoring",
		logging.Int("batch_size", len(items)),
		logging.Int("concurrency", b.concurrency))

	start := time.Now()

	type job struct {
		index int
		item  BatchItem
	}

	jobs := make(chan job, len(items))
	results := make([]*BatchResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					results[j.index] = &BatchResult{Item: j.item, Error: ctx.Err()}
					continue
				default:
				}

				result, err := b.scorer.Score(ctx, j.item.Text, j.item.Source, textWeight)
				results[j.index] = &BatchResult{Item: j.item, Result: result, Error: err}
			}
		}()
	}

	for i, item := range items {
		jobs <- job{index: i, item: item}
	}
	close(jobs)
	wg.Wait()

	success := 0
	for _, r := range results {
		if r.Error == nil {
			success++
		}
	}

	duration := time.Since(start)
	b.logger.Info("batch scoring complete",
		logging.Int("total", len(items)),
		logging.Int("success", success),
		logging.Int("errors", len(items)-success),
		logging.Int64("duration_ms", duration.Milliseconds()))

	return results
}

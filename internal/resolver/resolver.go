package resolver

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// Resolver classifies a batch of series aggregates with bounded
// concurrency. Lookups are independent, so they fan out over a small
// worker pool; results land at their input index, keeping the output
// order independent of completion order.
type Resolver struct {
	classifier  Classifier
	concurrency int
	logger      *slog.Logger
}

// New creates a resolver running at most concurrency lookups in parallel.
func New(classifier Classifier, concurrency int, logger *slog.Logger) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Resolver{
		classifier:  classifier,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ResolveAll classifies every aggregate and returns them in input order
// with SeriesID and Category filled in. Failed lookups carry the policy's
// fallback category, so the result always covers the full input.
func (r *Resolver) ResolveAll(ctx context.Context, series []domain.SeriesAggregate) []domain.SeriesAggregate {
	if len(series) == 0 {
		return nil
	}

	out := make([]domain.SeriesAggregate, len(series))

	workers := r.concurrency
	if workers > len(series) {
		workers = len(series)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				agg := series[i]
				oc := r.classifier.Classify(ctx, agg.Name)
				agg.SeriesID = oc.SeriesID
				agg.Category = oc.Category
				out[i] = agg
			}
		}()
	}

	for i := range series {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

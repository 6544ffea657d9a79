package earnings

import (
	"context"
	"sort"
	"time"

	"github.com/seenimoa/earncal/pkg/models"
)

// defaultDelay is the pause between successive provider queries. The
// tracker is deliberately polite to the free endpoints.
const defaultDelay = 1 * time.Second

// Aggregator resolves an ordered ticker list, strictly sequentially, and
// orders the results for presentation.
type Aggregator struct {
	resolver *Resolver
	delay    time.Duration
	progress func(i, n int, ticker string)
}

// AggregatorOption customizes an Aggregator.
type AggregatorOption func(*Aggregator)

// WithDelay sets the pause between successive ticker resolutions.
// Zero disables it.
func WithDelay(d time.Duration) AggregatorOption {
	return func(a *Aggregator) { a.delay = d }
}

// WithProgress sets a callback invoked before each resolution with the
// 1-based position, the list length, and the ticker about to be resolved.
func WithProgress(fn func(i, n int, ticker string)) AggregatorOption {
	return func(a *Aggregator) { a.progress = fn }
}

// NewAggregator creates an Aggregator around the given Resolver.
func NewAggregator(r *Resolver, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{resolver: r, delay: defaultDelay}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate resolves each ticker in order, pausing between successive calls
// but not after the last, then sorts: resolved entries ascending by
// timestamp, unresolved entries after them in input order. The sort is
// stable, so equal timestamps also keep input order. An empty ticker list
// yields an empty, non-nil result set.
func (a *Aggregator) Aggregate(ctx context.Context, tickers []string) []models.ResolvedEarnings {
	results := make([]models.ResolvedEarnings, 0, len(tickers))

	for i, ticker := range tickers {
		if a.progress != nil {
			a.progress(i+1, len(tickers), ticker)
		}
		results = append(results, a.resolver.Resolve(ctx, ticker))

		if a.delay > 0 && i < len(tickers)-1 {
			select {
			case <-time.After(a.delay):
			case <-ctx.Done():
				// Cancellation stops the pause; the remaining resolutions
				// fail fast through their context-aware requests.
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i], results[j]
		switch {
		case ri.Resolved() && rj.Resolved():
			return ri.Timestamp.Time.Before(rj.Timestamp.Time)
		case ri.Resolved():
			return true
		default:
			return false
		}
	})

	return results
}

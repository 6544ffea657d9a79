package fmp

import (
	"context"
	"fmt"
	"time"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// --- EarningsSummary fetcher ---

type earningsSummaryFetcher struct {
	provider.BaseFetcher
}

func newEarningsSummaryFetcher() *earningsSummaryFetcher {
	return &earningsSummaryFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsSummary,
			"Company name and next announcement timestamp from the FMP quote endpoint",
			[]string{provider.ParamSymbol},
			nil,
			15*time.Minute, 4, time.Second,
		),
	}
}

func (f *earningsSummaryFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]
	apiKey := params["_fmp_api_key"]

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/quote/%s", symbol)
	var quotes []fmpQuote
	if err := fetchFMPJSON(ctx, path, apiKey, &quotes); err != nil {
		return nil, fmt.Errorf("fmp quote %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, provider.ErrTickerNotFound)
	}

	summary := buildSummary(symbol, quotes[0])

	f.CacheSetTTL(cacheKey, summary, 15*time.Minute)
	return newResult(summary), nil
}

// buildSummary maps an FMP quote onto the earnings summary. FMP exposes a
// single announcement timestamp, so only that field is populated.
func buildSummary(symbol string, q fmpQuote) *models.EarningsSummary {
	s := &models.EarningsSummary{
		Symbol:  symbol,
		Company: q.Name,
		Fields:  make(map[string]int64),
	}
	if ts, ok := parseAnnouncement(q.EarningsAnnounce); ok {
		s.Fields[models.FieldEarningsTimestamp] = ts
	}
	return s
}

// parseAnnouncement parses FMP's earningsAnnouncement value, e.g.
// "2024-10-31T10:59:00.000+0000", into a Unix timestamp.
func parseAnnouncement(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02T15:04:05.000-0700", s)
	if err != nil {
		return 0, false
	}
	ts := t.Unix()
	if ts == 0 {
		return 0, false
	}
	return ts, true
}

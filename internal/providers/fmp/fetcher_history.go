package fmp

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/guregu/null/v6"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
)

// --- EarningsHistory fetcher ---

const defaultHistoryLimit = 12

type earningsHistoryFetcher struct {
	provider.BaseFetcher
}

func newEarningsHistoryFetcher() *earningsHistoryFetcher {
	return &earningsHistoryFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsHistory,
			"Past earnings announcements with reported EPS from the FMP earning calendar",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamLimit},
			1*time.Hour, 4, time.Second,
		),
	}
}

func (f *earningsHistoryFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]
	apiKey := params["_fmp_api_key"]

	limit := defaultHistoryLimit
	if s := params[provider.ParamLimit]; s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/historical/earning_calendar/%s?limit=100", symbol)
	var rows []fmpEarningsRow
	if err := fetchFMPJSON(ctx, path, apiKey, &rows); err != nil {
		return nil, fmt.Errorf("fmp earning calendar %s: %w", symbol, err)
	}

	events := buildHistory(symbol, rows, time.Now(), limit)
	if len(events) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, provider.ErrNoData)
	}

	f.CacheSetTTL(cacheKey, events, 1*time.Hour)
	return newResult(events), nil
}

// buildHistory collects past announcements, most recent first. The surprise
// percentage is derived from reported vs. estimated EPS since FMP does not
// return it directly.
func buildHistory(symbol string, rows []fmpEarningsRow, now time.Time, limit int) []models.EarningsEvent {
	var events []models.EarningsEvent
	for _, r := range rows {
		d, err := utils.ParseDateEastern(r.Date)
		if err != nil {
			continue
		}
		if !d.Before(now) {
			continue
		}
		events = append(events, models.EarningsEvent{
			Symbol:      symbol,
			Date:        d,
			EPSEstimate: null.FloatFromPtr(r.EPSEstimated),
			EPSActual:   null.FloatFromPtr(r.EPS),
			Surprise:    surprisePct(r.EPS, r.EPSEstimated),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

// surprisePct computes the EPS surprise as a percentage of the estimate.
func surprisePct(actual, estimate *float64) null.Float {
	if actual == nil || estimate == nil || *estimate == 0 {
		return null.Float{}
	}
	pct := (*actual - *estimate) / math.Abs(*estimate) * 100
	return null.FloatFrom(pct)
}

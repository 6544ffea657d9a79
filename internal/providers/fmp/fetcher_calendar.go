package fmp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/guregu/null/v6"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
)

// --- EarningsCalendar fetcher ---

type earningsCalendarFetcher struct {
	provider.BaseFetcher
}

func newEarningsCalendarFetcher() *earningsCalendarFetcher {
	return &earningsCalendarFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsCalendar,
			"Scheduled earnings announcements from the FMP earning calendar",
			[]string{provider.ParamSymbol},
			nil,
			1*time.Hour, 4, time.Second,
		),
	}
}

func (f *earningsCalendarFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]
	apiKey := params["_fmp_api_key"]

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
	if len(rows) == 0 {
		return nil, fmt.Errorf("earning calendar %s: %w", symbol, provider.ErrNoData)
	}

	cal := buildCalendar(symbol, rows, time.Now())

	f.CacheSetTTL(cacheKey, cal, 1*time.Hour)
	return newResult(cal), nil
}

// buildCalendar collects the scheduled (future) announcements, soonest first.
// Estimates come from the nearest upcoming row. FMP dates carry no clock, so
// they are anchored at Eastern midnight.
func buildCalendar(symbol string, rows []fmpEarningsRow, now time.Time) *models.EarningsCalendar {
	cal := &models.EarningsCalendar{Symbol: symbol}

	type upcoming struct {
		date time.Time
		row  fmpEarningsRow
	}
	var future []upcoming
	for _, r := range rows {
		d, err := utils.ParseDateEastern(r.Date)
		if err != nil {
			continue
		}
		if d.Before(now) {
			continue
		}
		future = append(future, upcoming{date: d, row: r})
	}
	sort.SliceStable(future, func(i, j int) bool {
		return future[i].date.Before(future[j].date)
	})

	for _, u := range future {
		cal.EarningsDates = append(cal.EarningsDates, u.date)
	}
	if len(future) > 0 {
		next := future[0].row
		cal.EarningsAvg = null.FloatFromPtr(next.EPSEstimated)
		if next.RevenueEstimated != nil {
			cal.RevenueAvg = null.IntFrom(*next.RevenueEstimated)
		}
	}
	return cal
}

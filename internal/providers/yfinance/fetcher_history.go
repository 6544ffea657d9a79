package yfinance

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/guregu/null/v6"

	"github.com/seenimoa/earncal/internal/infra"
	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
)

// --- EarningsHistory fetcher ---
//
// Yahoo has no JSON endpoint for per-symbol earnings history, so this fetcher
// scrapes the calendar page table. Columns: Symbol, Company, Earnings Date,
// EPS Estimate, Reported EPS, Surprise (%).

const defaultHistoryLimit = 12

type earningsHistoryFetcher struct {
	provider.BaseFetcher
}

func newEarningsHistoryFetcher() *earningsHistoryFetcher {
	return &earningsHistoryFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelEarningsHistory,
			"Past and scheduled earnings announcements scraped from the Yahoo Finance earnings calendar",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamLimit},
			30*time.Minute, 3, time.Second,
		),
	}
}

func (f *earningsHistoryFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]

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

	url := fmt.Sprintf(calendarPageURL, symbol)
	body, status, err := infra.DoGet(ctx, url, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, fmt.Errorf("yfinance earnings page %s: %w", symbol, err)
	}
	defer body.Close()

	if status >= 400 {
		return nil, &infra.ErrHTTP{StatusCode: status, URL: url}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse earnings page %s: %w", symbol, err)
	}

	events := parseEarningsTable(symbol, doc)
	if len(events) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, provider.ErrNoData)
	}
	if len(events) > limit {
		events = events[:limit]
	}

	f.CacheSetTTL(cacheKey, events, 30*time.Minute)
	return newResult(events), nil
}

// parseEarningsTable extracts earnings events from the calendar page table,
// most recent first. Rows with unparseable dates are skipped.
func parseEarningsTable(symbol string, doc *goquery.Document) []models.EarningsEvent {
	var events []models.EarningsEvent

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		date, ok := parseEarningsDate(cells.Eq(2).Text())
		if !ok {
			return
		}

		ev := models.EarningsEvent{
			Symbol: symbol,
			Date:   date,
		}
		if cells.Length() > 3 {
			ev.EPSEstimate = parseNullFloat(cells.Eq(3).Text())
		}
		if cells.Length() > 4 {
			ev.EPSActual = parseNullFloat(cells.Eq(4).Text())
		}
		if cells.Length() > 5 {
			ev.Surprise = parseNullFloat(cells.Eq(5).Text())
		}
		events = append(events, ev)
	})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events
}

// earningsDateLayouts covers the formats Yahoo renders in the date column.
var earningsDateLayouts = []string{
	"Jan 2, 2006, 3 PM",
	"Jan 2, 2006, 3:04 PM",
	"Jan 2, 2006 at 3 PM",
	"Jan 2, 2006 at 3:04 PM",
	"Jan 2, 2006",
}

// parseEarningsDate parses a calendar-page date cell. The page prints
// Eastern wall-clock times, so the zone suffix is dropped and the remainder
// is interpreted in Eastern Time.
func parseEarningsDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, zone := range []string{"EDT", "EST", "GMT", "UTC"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, zone))
	}
	for _, layout := range earningsDateLayouts {
		if t, err := time.ParseInLocation(layout, s, utils.Eastern); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNullFloat parses a table cell into an optional float. Dashes and
// empty cells mean the value was not reported.
func parseNullFloat(s string) null.Float {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" || s == "-" || s == "--" {
		return null.Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

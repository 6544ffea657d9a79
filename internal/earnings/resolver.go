// Package earnings implements the resolution pipeline that turns ticker
// symbols into earnings-announcement dates. The Resolver reconciles the
// provider's candidate timestamp fields into a single best guess; the
// Aggregator runs it over a ticker list and orders the results.
package earnings

import (
	"context"
	"time"

	"github.com/guregu/null/v6"
	"go.uber.org/zap"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
)

// fieldPriority is the order the candidate summary fields are consulted.
// Earlier fields are better predictors of the next announcement; the last
// two are fiscal-period markers used as a last resort.
var fieldPriority = []string{
	models.FieldEarningsTimestamp,
	models.FieldNextEarningsDate,
	models.FieldMostRecentQuarter,
	models.FieldLastFiscalYearEnd,
}

// Resolver determines a single best-guess announcement timestamp per ticker.
type Resolver struct {
	registry *provider.Registry
	log      *zap.Logger
	now      func() time.Time
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the time source used for staleness checks.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver backed by the given provider registry.
// A nil logger disables diagnostics.
func NewResolver(reg *provider.Registry, log *zap.Logger, opts ...ResolverOption) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{registry: reg, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve determines the earnings-announcement timestamp for one ticker.
// It never fails: when every source comes up empty the returned record
// carries the normalized ticker, the company name falling back to it, and
// no date fields. Sources are consulted in a fixed order - summary fields,
// then the calendar window, then history - and the first hit wins.
func (r *Resolver) Resolve(ctx context.Context, ticker string) models.ResolvedEarnings {
	symbol := utils.NormalizeTicker(ticker)
	log := r.log.With(zap.String("ticker", symbol))

	rec := models.ResolvedEarnings{Ticker: symbol, Company: symbol}

	summary := r.fetchSummary(ctx, symbol, log)
	if summary != nil && summary.Company != "" {
		rec.Company = summary.Company
	}

	if ts, source, ok := r.fromSummary(summary); ok {
		return r.finish(rec, ts, source, log)
	}
	if ts, ok := r.fromCalendar(ctx, symbol, log); ok {
		return r.finish(rec, ts, "calendar", log)
	}
	if ts, ok := r.fromHistory(ctx, symbol, log); ok {
		return r.finish(rec, ts, "history", log)
	}

	log.Warn("no earnings date found from any source")
	return rec
}

func (r *Resolver) fetchSummary(ctx context.Context, symbol string, log *zap.Logger) *models.EarningsSummary {
	result, err := r.registry.FetchWithFallback(ctx, provider.ModelEarningsSummary,
		provider.QueryParams{provider.ParamSymbol: symbol})
	if err != nil {
		log.Debug("summary fetch failed", zap.Error(err))
		return nil
	}
	summary, ok := result.Data.(*models.EarningsSummary)
	if !ok {
		log.Debug("summary fetch returned unexpected data",
			zap.String("provider", result.Provider))
		return nil
	}
	return summary
}

// fromSummary walks the candidate fields in priority order and applies the
// staleness rule to the first one present: a past value is replaced by
// earningsTimestampStart when that window opener is still ahead, kept when
// the window has also passed, and abandoned entirely (falling through to
// the calendar source) when no window exists.
func (r *Resolver) fromSummary(s *models.EarningsSummary) (int64, string, bool) {
	if s == nil {
		return 0, "", false
	}
	for _, field := range fieldPriority {
		ts, ok := s.Fields[field]
		if !ok || ts == 0 {
			continue
		}

		now := r.now().Unix()
		if ts >= now {
			return ts, "summary:" + field, true
		}

		start, hasStart := s.Fields[models.FieldEarningsTimestampStart]
		switch {
		case hasStart && start > now:
			return start, "summary:" + models.FieldEarningsTimestampStart, true
		case hasStart:
			return ts, "summary:" + field, true
		default:
			return 0, "", false
		}
	}
	return 0, "", false
}

func (r *Resolver) fromCalendar(ctx context.Context, symbol string, log *zap.Logger) (int64, bool) {
	result, err := r.registry.FetchWithFallback(ctx, provider.ModelEarningsCalendar,
		provider.QueryParams{provider.ParamSymbol: symbol})
	if err != nil {
		log.Debug("calendar fetch failed", zap.Error(err))
		return 0, false
	}
	cal, ok := result.Data.(*models.EarningsCalendar)
	if !ok || len(cal.EarningsDates) == 0 {
		return 0, false
	}
	return cal.EarningsDates[0].Unix(), true
}

func (r *Resolver) fromHistory(ctx context.Context, symbol string, log *zap.Logger) (int64, bool) {
	result, err := r.registry.FetchWithFallback(ctx, provider.ModelEarningsHistory,
		provider.QueryParams{provider.ParamSymbol: symbol})
	if err != nil {
		log.Debug("history fetch failed", zap.Error(err))
		return 0, false
	}
	events, ok := result.Data.([]models.EarningsEvent)
	if !ok || len(events) == 0 {
		return 0, false
	}
	// Events arrive most recent first.
	return events[0].Date.Unix(), true
}

// finish stamps the record with the Eastern-derived display fields.
func (r *Resolver) finish(rec models.ResolvedEarnings, ts int64, source string, log *zap.Logger) models.ResolvedEarnings {
	eastern := utils.ToEastern(utils.FromEpoch(ts))
	rec.Timestamp = null.TimeFrom(eastern)
	rec.DateISO = utils.FormatDateEastern(eastern)
	rec.DateWords = utils.DateInWords(eastern)
	rec.TimeStr = utils.FormatClockEastern(eastern)

	log.Info("earnings date resolved",
		zap.String("source", source),
		zap.String("date", rec.DateISO),
		zap.String("time", rec.TimeStr),
	)
	return rec
}

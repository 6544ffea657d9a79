package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// Fixed resolution moment for staleness checks: 2024-06-01T12:00:00Z.
const testNowEpoch = 1717243200

// Announcement instants used across the tests.
const (
	futureEpoch  = 1718202600 // 2024-06-12 10:30 EDT
	future2Epoch = 1719412200 // 2024-06-26 10:30 EDT
	pastEpoch    = 1706823000 // 2024-02-01 16:30 EST
)

func testClock() time.Time {
	return time.Unix(testNowEpoch, 0)
}

// fakeProvider serves canned per-symbol data through the standard
// provider interface. A missing symbol means ErrNoData from that source.
type fakeProvider struct {
	name       string
	summaries  map[string]*models.EarningsSummary
	calendars  map[string]*models.EarningsCalendar
	histories  map[string][]models.EarningsEvent
	fetchCalls int
}

var _ provider.Provider = (*fakeProvider)(nil)

func (p *fakeProvider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{Name: p.name, Description: "in-memory fake"}
}

func (p *fakeProvider) Init(map[string]string) error { return nil }
func (p *fakeProvider) Ping(context.Context) error   { return nil }

func (p *fakeProvider) SupportedModels() []provider.ModelType {
	return []provider.ModelType{
		provider.ModelEarningsSummary,
		provider.ModelEarningsCalendar,
		provider.ModelEarningsHistory,
	}
}

func (p *fakeProvider) Fetcher(m provider.ModelType) provider.Fetcher {
	for _, supported := range p.SupportedModels() {
		if m == supported {
			return &fakeFetcher{provider: p, model: m}
		}
	}
	return nil
}

type fakeFetcher struct {
	provider *fakeProvider
	model    provider.ModelType
}

func (f *fakeFetcher) ModelType() provider.ModelType { return f.model }
func (f *fakeFetcher) Description() string           { return "fake " + string(f.model) }
func (f *fakeFetcher) RequiredParams() []string      { return []string{provider.ParamSymbol} }
func (f *fakeFetcher) OptionalParams() []string      { return nil }

func (f *fakeFetcher) Fetch(_ context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	f.provider.fetchCalls++
	symbol := params[provider.ParamSymbol]
	switch f.model {
	case provider.ModelEarningsSummary:
		if s, ok := f.provider.summaries[symbol]; ok {
			return &provider.FetchResult{Data: s}, nil
		}
	case provider.ModelEarningsCalendar:
		if c, ok := f.provider.calendars[symbol]; ok {
			return &provider.FetchResult{Data: c}, nil
		}
	case provider.ModelEarningsHistory:
		if h, ok := f.provider.histories[symbol]; ok {
			return &provider.FetchResult{Data: h}, nil
		}
	}
	return nil, provider.ErrNoData
}

func testResolver(t *testing.T, p *fakeProvider) *Resolver {
	t.Helper()
	reg := provider.NewRegistry()
	if err := reg.Register(p); err != nil {
		t.Fatalf("register fake provider: %v", err)
	}
	return NewResolver(reg, nil, WithClock(testClock))
}

func summaryWith(company string, fields map[string]int64) *models.EarningsSummary {
	return &models.EarningsSummary{Symbol: "AAPL", Company: company, Fields: fields}
}

func TestResolveFromEarningsTimestamp(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
			}),
		},
	}
	r := testResolver(t, p)

	rec := r.Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if rec.Company != "Apple Inc." {
		t.Errorf("Company = %q, want Apple Inc.", rec.Company)
	}
	if got := rec.Timestamp.Time.Unix(); got != futureEpoch {
		t.Errorf("Timestamp = %d, want %d", got, futureEpoch)
	}
	if rec.DateISO != "2024-06-12" {
		t.Errorf("DateISO = %q, want 2024-06-12", rec.DateISO)
	}
	if rec.DateWords != "12th June, 2024" {
		t.Errorf("DateWords = %q, want 12th June, 2024", rec.DateWords)
	}
	if rec.TimeStr != "10:30:00 EDT" {
		t.Errorf("TimeStr = %q, want 10:30:00 EDT", rec.TimeStr)
	}
}

func TestResolveFieldPriority(t *testing.T) {
	// Both fields present: earningsTimestamp wins.
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
				models.FieldNextEarningsDate:  future2Epoch,
			}),
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if got := rec.Timestamp.Time.Unix(); got != futureEpoch {
		t.Errorf("Timestamp = %d, want earningsTimestamp %d", got, futureEpoch)
	}

	// Only the lower-priority field present: it wins.
	p.summaries["AAPL"] = summaryWith("Apple Inc.", map[string]int64{
		models.FieldNextEarningsDate: future2Epoch,
	})
	rec = testResolver(t, p).Resolve(context.Background(), "AAPL")
	if got := rec.Timestamp.Time.Unix(); got != future2Epoch {
		t.Errorf("Timestamp = %d, want nextEarningsDate %d", got, future2Epoch)
	}
}

func TestResolveStaleWithFutureStart(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp:      pastEpoch,
				models.FieldEarningsTimestampStart: futureEpoch,
			}),
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if got := rec.Timestamp.Time.Unix(); got != futureEpoch {
		t.Errorf("Timestamp = %d, want window start %d", got, futureEpoch)
	}
}

func TestResolveStaleWithPastStart(t *testing.T) {
	// Window start also in the past: the stale primary value is kept.
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp:      pastEpoch,
				models.FieldEarningsTimestampStart: pastEpoch - 86400,
			}),
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if got := rec.Timestamp.Time.Unix(); got != pastEpoch {
		t.Errorf("Timestamp = %d, want stale primary %d", got, pastEpoch)
	}
	if rec.DateISO != "2024-02-01" {
		t.Errorf("DateISO = %q, want 2024-02-01", rec.DateISO)
	}
	if rec.TimeStr != "16:30:00 EST" {
		t.Errorf("TimeStr = %q, want 16:30:00 EST", rec.TimeStr)
	}
}

func TestResolveStaleNoStartFallsThrough(t *testing.T) {
	// Stale primary with no window start abandons the summary source; the
	// calendar supplies the date instead.
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: pastEpoch,
			}),
		},
		calendars: map[string]*models.EarningsCalendar{
			"AAPL": {Symbol: "AAPL", EarningsDates: []time.Time{
				time.Unix(futureEpoch, 0).UTC(),
				time.Unix(future2Epoch, 0).UTC(),
			}},
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if got := rec.Timestamp.Time.Unix(); got != futureEpoch {
		t.Errorf("Timestamp = %d, want first calendar entry %d", got, futureEpoch)
	}
}

func TestResolveCalendarFallback(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{}),
		},
		calendars: map[string]*models.EarningsCalendar{
			"AAPL": {Symbol: "AAPL", EarningsDates: []time.Time{
				time.Unix(futureEpoch, 0).UTC(),
			}},
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if got := rec.Timestamp.Time.Unix(); got != futureEpoch {
		t.Errorf("Timestamp = %d, want %d", got, futureEpoch)
	}
	if rec.Company != "Apple Inc." {
		t.Errorf("Company = %q, want Apple Inc.", rec.Company)
	}
}

func TestResolveHistoryFallback(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		histories: map[string][]models.EarningsEvent{
			"AAPL": {
				{Symbol: "AAPL", Date: time.Unix(pastEpoch, 0).UTC()},
				{Symbol: "AAPL", Date: time.Unix(pastEpoch-7776000, 0).UTC()},
			},
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if !rec.Resolved() {
		t.Fatal("expected resolved record")
	}
	if got := rec.Timestamp.Time.Unix(); got != pastEpoch {
		t.Errorf("Timestamp = %d, want most recent event %d", got, pastEpoch)
	}
	// Summary failed entirely, so the company name falls back to the ticker.
	if rec.Company != "AAPL" {
		t.Errorf("Company = %q, want AAPL", rec.Company)
	}
}

func TestResolveUnresolved(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	rec := testResolver(t, p).Resolve(context.Background(), "ZZZZINVALID")

	if rec.Resolved() {
		t.Fatal("expected unresolved record")
	}
	if rec.Ticker != "ZZZZINVALID" {
		t.Errorf("Ticker = %q", rec.Ticker)
	}
	if rec.Company != "ZZZZINVALID" {
		t.Errorf("Company = %q, want ticker fallback", rec.Company)
	}
	if rec.DateISO != "" || rec.DateWords != "" || rec.TimeStr != "" {
		t.Errorf("date fields should be empty, got %q %q %q",
			rec.DateISO, rec.DateWords, rec.TimeStr)
	}
	if rec.Timestamp.Valid {
		t.Error("Timestamp should be invalid")
	}
}

func TestResolveNormalizesTicker(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
			}),
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "  aapl ")
	if rec.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", rec.Ticker)
	}
	if !rec.Resolved() {
		t.Error("normalized ticker should hit the provider data")
	}
}

func TestResolveEmptyCompanyFallsBack(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("", map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
			}),
		},
	}
	rec := testResolver(t, p).Resolve(context.Background(), "AAPL")
	if rec.Company != "AAPL" {
		t.Errorf("Company = %q, want ticker fallback for blank name", rec.Company)
	}
}

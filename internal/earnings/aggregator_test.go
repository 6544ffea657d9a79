package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/seenimoa/earncal/pkg/models"
)

func TestAggregateOrdersResults(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: future2Epoch,
			}),
			"MSFT": {Symbol: "MSFT", Company: "Microsoft Corporation", Fields: map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
			}},
		},
	}
	a := NewAggregator(testResolver(t, p), WithDelay(0))

	results := a.Aggregate(context.Background(), []string{"ZZZZINVALID", "AAPL", "MSFT"})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Resolved ascending by timestamp, unresolved last.
	if results[0].Ticker != "MSFT" {
		t.Errorf("results[0] = %s, want MSFT (earlier date)", results[0].Ticker)
	}
	if results[1].Ticker != "AAPL" {
		t.Errorf("results[1] = %s, want AAPL", results[1].Ticker)
	}
	if results[2].Ticker != "ZZZZINVALID" {
		t.Errorf("results[2] = %s, want ZZZZINVALID", results[2].Ticker)
	}
	if results[2].Resolved() {
		t.Error("ZZZZINVALID should be unresolved")
	}
}

func TestAggregateStableForEqualTimestamps(t *testing.T) {
	fields := map[string]int64{models.FieldEarningsTimestamp: futureEpoch}
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAA": {Symbol: "AAA", Company: "First", Fields: fields},
			"BBB": {Symbol: "BBB", Company: "Second", Fields: fields},
		},
	}
	a := NewAggregator(testResolver(t, p), WithDelay(0))

	results := a.Aggregate(context.Background(), []string{"BBB", "AAA"})
	if results[0].Ticker != "BBB" || results[1].Ticker != "AAA" {
		t.Errorf("equal timestamps must keep input order, got [%s %s]",
			results[0].Ticker, results[1].Ticker)
	}
}

func TestAggregateUnresolvedKeepInputOrder(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	a := NewAggregator(testResolver(t, p), WithDelay(0))

	results := a.Aggregate(context.Background(), []string{"XXX", "YYY", "ZZZ"})
	want := []string{"XXX", "YYY", "ZZZ"}
	for i, w := range want {
		if results[i].Ticker != w {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Ticker, w)
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	a := NewAggregator(testResolver(t, p), WithDelay(0))

	results := a.Aggregate(context.Background(), nil)
	if results == nil {
		t.Fatal("expected empty non-nil result set")
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
	if p.fetchCalls != 0 {
		t.Errorf("resolver should not be called for empty input, got %d fetches", p.fetchCalls)
	}
}

func TestAggregateDelayBetweenCalls(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	a := NewAggregator(testResolver(t, p), WithDelay(30*time.Millisecond))

	start := time.Now()
	a.Aggregate(context.Background(), []string{"AAA", "BBB", "CCC"})
	elapsed := time.Since(start)

	// Two pauses between three tickers.
	if elapsed < 60*time.Millisecond {
		t.Errorf("expected at least 60ms of inter-call delay, got %v", elapsed)
	}
}

func TestAggregateNoDelayAfterLast(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	a := NewAggregator(testResolver(t, p), WithDelay(300*time.Millisecond))

	start := time.Now()
	a.Aggregate(context.Background(), []string{"AAA"})
	elapsed := time.Since(start)

	if elapsed >= 300*time.Millisecond {
		t.Errorf("single ticker must not pause, took %v", elapsed)
	}
}

func TestAggregateProgressCallback(t *testing.T) {
	p := &fakeProvider{name: "fake"}

	type call struct {
		i, n   int
		ticker string
	}
	var calls []call
	a := NewAggregator(testResolver(t, p), WithDelay(0),
		WithProgress(func(i, n int, ticker string) {
			calls = append(calls, call{i, n, ticker})
		}))

	a.Aggregate(context.Background(), []string{"AAA", "BBB"})

	want := []call{{1, 2, "AAA"}, {2, 2, "BBB"}}
	if len(calls) != len(want) {
		t.Fatalf("expected %d progress calls, got %d", len(want), len(calls))
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("calls[%d] = %+v, want %+v", i, calls[i], w)
		}
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	p := &fakeProvider{
		name: "fake",
		summaries: map[string]*models.EarningsSummary{
			"AAPL": summaryWith("Apple Inc.", map[string]int64{
				models.FieldEarningsTimestamp: futureEpoch,
			}),
		},
	}
	a := NewAggregator(testResolver(t, p), WithDelay(0))

	results := a.Aggregate(context.Background(), []string{"AAPL", "ZZZZINVALID"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	aapl, invalid := results[0], results[1]
	if aapl.Ticker != "AAPL" || !aapl.Resolved() {
		t.Errorf("AAPL should resolve first: %+v", aapl)
	}
	if aapl.DateISO != "2024-06-12" || aapl.TimeStr != "10:30:00 EDT" {
		t.Errorf("AAPL fields = %q %q", aapl.DateISO, aapl.TimeStr)
	}
	if invalid.Ticker != "ZZZZINVALID" || invalid.Resolved() {
		t.Errorf("ZZZZINVALID should stay unresolved: %+v", invalid)
	}
	if invalid.Company != "ZZZZINVALID" {
		t.Errorf("unresolved company = %q, want ticker", invalid.Company)
	}
}

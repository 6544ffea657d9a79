package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"
)

// ── ResolvedEarnings Tests ──

func TestResolvedEarningsResolved(t *testing.T) {
	blank := ResolvedEarnings{Ticker: "ZZZZ", Company: "ZZZZ"}
	if blank.Resolved() {
		t.Error("record without a timestamp should not be Resolved")
	}

	ts := time.Date(2024, 6, 5, 16, 30, 0, 0, time.UTC)
	rec := ResolvedEarnings{
		Ticker:    "AAPL",
		Company:   "Apple Inc.",
		Timestamp: null.TimeFrom(ts),
		DateISO:   "2024-06-05",
		DateWords: "5th June, 2024",
		TimeStr:   "12:30:00 EDT",
	}
	if !rec.Resolved() {
		t.Error("record with a timestamp should be Resolved")
	}
}

func TestResolvedEarningsJSONNullTimestamp(t *testing.T) {
	blank := ResolvedEarnings{Ticker: "ZZZZ", Company: "ZZZZ"}
	data, err := json.Marshal(blank)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	if !strings.Contains(string(data), `"timestamp":null`) {
		t.Errorf("unresolved record should marshal a null timestamp, got %s", data)
	}
}

// ── EarningsSummary Tests ──

func TestEarningsSummaryAbsentField(t *testing.T) {
	s := EarningsSummary{
		Symbol:  "MSFT",
		Company: "Microsoft Corporation",
		Fields: map[string]int64{
			FieldEarningsTimestamp: 1718202600,
		},
	}
	if _, ok := s.Fields[FieldEarningsTimestamp]; !ok {
		t.Error("stored field should be present")
	}
	if _, ok := s.Fields[FieldNextEarningsDate]; ok {
		t.Error("absent field should be an absent map key")
	}
}

// ── EarningsEvent Tests ──

func TestEarningsEventOptionalEPS(t *testing.T) {
	ev := EarningsEvent{
		Symbol:      "AAPL",
		Date:        time.Date(2024, 5, 2, 20, 30, 0, 0, time.UTC),
		EPSEstimate: null.FloatFrom(1.50),
	}
	if !ev.EPSEstimate.Valid {
		t.Error("EPSEstimate should be valid")
	}
	if ev.EPSActual.Valid {
		t.Error("unset EPSActual should be invalid")
	}
}

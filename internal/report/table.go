// Package report renders resolved earnings for people and files: the
// grouped Eastern Time terminal listing and the flat five-column row
// projection used for CSV persistence.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/seenimoa/earncal/pkg/models"
)

// Placeholders shown in display tables for unresolved entries.
const (
	PlaceholderDate = "No date available"
	PlaceholderTime = "--"
)

// Row is the flat projection of one resolved entry. The internal timestamp
// is deliberately absent; these five columns are the persisted contract.
type Row struct {
	Ticker  string `csv:"ticker"   json:"ticker"`
	Company string `csv:"company"  json:"company"`
	DateISO string `csv:"date_iso" json:"date_iso"`
	Date    string `csv:"date"     json:"date"`
	Time    string `csv:"time"     json:"time"`
}

// Rows projects results, in order, for persistence. Missing date and time
// cells stay empty.
func Rows(results []models.ResolvedEarnings) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{
			Ticker:  r.Ticker,
			Company: r.Company,
			DateISO: r.DateISO,
			Date:    r.DateWords,
			Time:    r.TimeStr,
		})
	}
	return rows
}

// DisplayRows projects results with placeholders substituted for missing
// date and time cells.
func DisplayRows(results []models.ResolvedEarnings) []Row {
	rows := Rows(results)
	for i := range rows {
		if rows[i].Date == "" {
			rows[i].Date = PlaceholderDate
		}
		if rows[i].Time == "" {
			rows[i].Time = PlaceholderTime
		}
	}
	return rows
}

// WriteCSV writes the persisted projection as CSV. An empty result set
// still produces the header row.
func WriteCSV(w io.Writer, results []models.ResolvedEarnings) error {
	return gocsv.Marshal(Rows(results), w)
}

// SaveCSV writes the persisted projection to a file.
func SaveCSV(path string, results []models.ResolvedEarnings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, results); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seenimoa/earncal/pkg/models"
)

// NoDataMessage is the listing shown when nothing resolved at all.
const NoDataMessage = "No earnings data found for the requested companies."

const (
	boldOn  = "\033[1m"
	boldOff = "\033[0m"
)

// RenderDisplay renders the grouped listing: a header line, one bold
// "{date in words} ({ISO date})" group per distinct day with its entries
// indented beneath, and a final "No Date Available" group for unresolved
// entries. Aggregation orders by full timestamp; the display re-sorts by
// calendar day since that is the grouping key.
func RenderDisplay(results []models.ResolvedEarnings) string {
	rows := DisplayRows(results)

	dated := make([]Row, 0, len(rows))
	var undated []Row
	for _, row := range rows {
		if row.Date == PlaceholderDate {
			undated = append(undated, row)
		} else {
			dated = append(dated, row)
		}
	}
	if len(dated) == 0 {
		return NoDataMessage
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].DateISO < dated[j].DateISO
	})

	var b strings.Builder
	b.WriteString("Earnings Dates (Eastern Time):")

	currentISO := ""
	for _, row := range dated {
		if row.DateISO != currentISO {
			currentISO = row.DateISO
			fmt.Fprintf(&b, "\n\n%s%s (%s)%s", boldOn, row.Date, row.DateISO, boldOff)
		}
		fmt.Fprintf(&b, "\n  %s (%s)", row.Ticker, row.Company)
		if row.Time != PlaceholderTime {
			b.WriteString(" - " + row.Time)
		}
	}

	if len(undated) > 0 {
		fmt.Fprintf(&b, "\n\n%sNo Date Available%s", boldOn, boldOff)
		for _, row := range undated {
			fmt.Fprintf(&b, "\n  %s (%s)", row.Ticker, row.Company)
		}
	}

	return b.String()
}

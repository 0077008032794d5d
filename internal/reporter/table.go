package reporter

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"go-turnip-automation/internal/models"
)

// TableReporter prints ranked listings as a table.
type TableReporter struct {
	out   io.Writer
	limit int
}

// NewTableReporter shows at most limit rows; limit <= 0 shows all.
func NewTableReporter(out io.Writer, limit int) *TableReporter {
	return &TableReporter{out: out, limit: limit}
}

func (r *TableReporter) ReportListings(total int, ranked []models.Listing) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintf(r.out, "No island matches the filters (%d scraped).\n", total)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"#", "Code", "Name", "Fruit", "Price", "Hemisphere", "Queue", "Ratio", "Mode"})
	for i, l := range ranked {
		if r.limit > 0 && i >= r.limit {
			break
		}
		t.AppendRow(table.Row{i + 1, l.Code, l.Name, l.Fruit, l.Price, l.Hemisphere,
			fmt.Sprintf("%d/%d", l.QueueLength, l.QueueCapacity), formatRatio(l.Ratio()), l.Mode})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Shown", fmt.Sprintf("%d/%d", r.rows(len(ranked)), total)})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func (r *TableReporter) ReportJoin(listing models.Listing, joinErr error) error {
	if joinErr != nil {
		_, err := fmt.Fprintf(r.out, "❌ Could not join %s (%s): %v\n", listing.Code, listing.Name, joinErr)
		return err
	}
	_, err := fmt.Fprintf(r.out, "✅ Joined the queue for %s (%s) at %d bells. The browser is yours.\n",
		listing.Code, listing.Name, listing.Price)
	return err
}

func (r *TableReporter) rows(n int) int {
	if r.limit > 0 && r.limit < n {
		return r.limit
	}
	return n
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.1f", v)
}

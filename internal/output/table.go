// Package output renders the rate refresh state for plain-text consumers.
package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"ratewatch/internal/rates"
)

// RenderState renders the state snapshot as an ASCII table. Loading and error
// states render as a single descriptive line.
func RenderState(st rates.State, now time.Time) string {
	switch st.Kind {
	case rates.KindLoading:
		return "rates are loading...\n"
	case rates.KindError:
		return fmt.Sprintf("rates unavailable: %s\n", st.Err)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Pair", "Rate"})

	for _, r := range st.Rates {
		t.AppendRow(table.Row{r.PairLabel(), r.RateDescription()})
	}

	rendered := t.Render() + "\n"
	if desc := rates.LastUpdateDescription(now, st.FetchedAt); desc != "" {
		rendered += desc + "\n"
	}
	return rendered
}

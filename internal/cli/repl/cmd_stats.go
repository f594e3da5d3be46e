package repl

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sqwrap/sqwrap/internal/cli/styled"
)

// cmdStats shows the connection traffic counters of the current session.
func cmdStats(r *Repl) {
	stats := r.db.GetStats()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Counter", "Value"})
	tw.AppendRow(table.Row{"Execs", stats.Execs})
	tw.AppendRow(table.Row{"Prepares", stats.Prepares})
	tw.AppendRow(table.Row{"Prepare failures", stats.PrepareFailures})
	tw.AppendRow(table.Row{"Queries", stats.Queries})
	tw.AppendRow(table.Row{"Step failures", stats.StepFailures})

	fmt.Println(tw.Render())
}

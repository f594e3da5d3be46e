package repl

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sqwrap/sqwrap"
	"github.com/sqwrap/sqwrap/internal/cli/styled"
)

// cmdQuery compiles and runs one SQL statement, rendering either the
// result rows or the write counters.
func cmdQuery(r *Repl, input string) {
	tw := styled.NewTableWriter()

	stmt := r.db.Prepare(input)
	if !stmt.Valid() {
		tw.AppendHeader(table.Row{"Error"})
		tw.AppendRow(table.Row{r.diags.Take("invalid statement")})
		fmt.Println(tw.Render())
		return
	}
	defer func() {
		_ = stmt.Close()
	}()

	// Statements that produce no columns are writes or DDL.
	if stmt.ColCount() == 0 {
		if !stmt.Execute() {
			tw.AppendHeader(table.Row{"Error"})
			tw.AppendRow(table.Row{r.diags.Take("statement failed")})
			fmt.Println(tw.Render())
			return
		}

		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", r.db.RowsAffected(), r.db.LastInsertID()})
		fmt.Println(tw.Render())
		return
	}

	header := table.Row{}
	for i := 0; i < stmt.ColCount(); i++ {
		header = append(header, stmt.ColName(i))
	}
	tw.AppendHeader(header)

	count := 0
	row := sqwrap.Row{}
	for stmt.Fetch(&row) {
		// Column order comes from statement introspection; the Row map
		// carries no ordering.
		cells := table.Row{}
		for i := 0; i < stmt.ColCount(); i++ {
			cells = append(cells, renderValue(stmt.ColValue(i)))
		}
		tw.AppendRow(cells)
		count++
	}

	if err := stmt.Err(); err != nil {
		tw.AppendHeader(table.Row{"Error"})
		tw.AppendRow(table.Row{r.diags.Take(err.Error())})
		fmt.Println(tw.Render())
		return
	}

	tw.AppendFooter(table.Row{fmt.Sprintf("%d rows", count)})
	fmt.Println(tw.Render())
}

// renderValue renders one cell, keeping NULLs and binary data readable.
func renderValue(v sqwrap.Value) string {
	switch v.Kind() {
	case sqwrap.KindNull:
		return styled.DimmedColor().Sprint("NULL")
	case sqwrap.KindBlob:
		return styled.DimmedColor().Sprintf("<blob %d bytes>", v.Size())
	default:
		return v.Text()
	}
}

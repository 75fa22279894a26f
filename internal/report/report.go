// Package report renders core-level records as text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rmera/corelevels/corelevel"
	"github.com/rmera/corelevels/gradient"
)

// Formats understood by Render.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Options for Render.
type Options struct {
	Format    string
	Columns   []corelevel.Column
	Precision int
	//If not nil, a color column is added, with the RGB triple for each mean.
	Bounds *gradient.Bounds
}

// Render writes records to w as a table in the requested format, with the
// columns given by corelevel.Header.
func Render(w io.Writer, records []corelevel.Record, o Options) error {
	header := corelevel.Header(o.Columns)
	if o.Bounds != nil {
		header = append(header, "color")
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, r := range records {
		row := table.Row{r.Index, r.Symbol, formatFloat(r.Mean, o.Precision), formatFloat(r.StdDev, o.Precision)}
		for _, c := range o.Columns {
			v, ok := r.Value(c)
			switch {
			case !ok:
				row = append(row, "")
			case c == corelevel.Coordination:
				row = append(row, int(v))
			default:
				row = append(row, formatFloat(v, o.Precision))
			}
		}
		if o.Bounds != nil {
			c, err := gradient.Map(r.Mean, *o.Bounds)
			if err != nil {
				return fmt.Errorf("report: atom %d: %w", r.Index, err)
			}
			row = append(row, c.String())
		}
		t.AppendRow(row)
	}

	switch o.Format {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatTable, "":
		if len(records) == 0 {
			_, _ = fmt.Fprintln(w, "(0 atoms)")
			return nil
		}
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d atoms)\n", len(records))
	default:
		return fmt.Errorf("report: unknown format %q", o.Format)
	}
	return nil
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// RenderIndices writes a table with the atoms in indices and their elements. If
// neighbours is not nil, a column with the atoms it returns for each index is added.
func RenderIndices(w io.Writer, indices []int, symbol func(int) string, neighbours func(int) []int, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if neighbours == nil {
		t.AppendHeader(table.Row{"atom", "element"})
	} else {
		t.AppendHeader(table.Row{"atom", "element", "neighbours"})
	}
	for _, i := range indices {
		row := table.Row{i, symbol(i)}
		if neighbours != nil {
			n := neighbours(i)
			s := make([]string, len(n))
			for j, v := range n {
				s[j] = symbol(v) + strconv.Itoa(v)
			}
			row = append(row, strings.Join(s, " "))
		}
		t.AppendRow(row)
	}
	switch format {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatTable, "":
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d atoms)\n", len(indices))
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
	return nil
}

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one stats column. widthMax of zero leaves it unbounded.
type column struct {
	header   string
	align    text.Align
	widthMax int
}

// statsTable is one block of `threadr stats` output.
type statsTable struct {
	title   string
	columns []column
	rows    [][]string
	footer  string
}

func (st statsTable) render() string {
	if len(st.columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.Style().Options.SeparateFooter = true
	if st.title != "" {
		tw.SetTitle(st.title)
	}

	header := make(table.Row, len(st.columns))
	configs := make([]table.ColumnConfig, len(st.columns))
	for i, c := range st.columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		}
		if c.widthMax > 0 {
			configs[i].WidthMax = c.widthMax
			configs[i].WidthMaxEnforcer = text.Trim
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range st.rows {
		r := make(table.Row, len(st.columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if st.footer != "" {
		f := make(table.Row, len(st.columns))
		for i := range f {
			f[i] = st.footer
		}
		tw.AppendFooter(f, table.RowConfig{AutoMerge: true})
	}

	return tw.Render()
}

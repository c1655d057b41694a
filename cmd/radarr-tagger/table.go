package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableColumn describes one rendered column. Color applies to body cells only
// and is ignored unless the table is rendered with colour enabled.
type tableColumn struct {
	Header string
	Align  text.Align
	Color  text.Colors
}

func col(header string) tableColumn {
	return tableColumn{Header: header, Align: text.AlignLeft}
}

func numericCol(header string) tableColumn {
	return tableColumn{Header: header, Align: text.AlignRight}
}

func (c tableColumn) colored(colors ...text.Color) tableColumn {
	c.Color = colors
	return c
}

// renderTable draws rows under columns in the rounded style. Short rows are
// padded with empty cells and extra cells are dropped.
func renderTable(columns []tableColumn, rows [][]string, colorize bool) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, column := range columns {
		header[i] = column.Header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       column.Align,
			AlignHeader: text.AlignLeft,
		}
		if colorize && len(column.Color) > 0 {
			configs[i].Colors = column.Color
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

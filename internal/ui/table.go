package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aidanlsb/dotadr/internal/record"
)

// WriteRecordTable writes summaries as an aligned table. Titles are
// truncated so rows fit in width columns.
func WriteRecordTable(w io.Writer, summaries []record.Summary, width int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Format.Header = text.FormatUpper

	tw.AppendHeader(table.Row{"ID", "Title", "Status", "Date", "File"})
	for _, s := range summaries {
		tw.AppendRow(table.Row{s.ID, s.Title, s.Status, s.Date, s.FileName})
	}

	if width > 0 {
		titleWidth := width / 3
		if titleWidth < 20 {
			titleWidth = 20
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: titleWidth, WidthMaxEnforcer: text.Trim},
			{Number: 3, WidthMax: titleWidth, WidthMaxEnforcer: text.Trim},
		})
	}
	tw.Render()
}

package main

import (
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/fwojciec/typeahead"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// renderRecords formats records as a table in display order. Records whose
// ID is in selected are marked.
func renderRecords(records []typeahead.Record, selected []string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "", "Name", "Group", "Source", "ID"})
	for i, r := range records {
		mark := ""
		if slices.Contains(selected, r.ID) {
			mark = "*"
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), mark, r.DisplayName, r.GroupKey, string(r.Origin), r.ID})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

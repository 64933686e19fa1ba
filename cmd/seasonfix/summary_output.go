package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"seasonfix/internal/repair"
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeSummary prints the run totals: a table when stdout is interactive,
// plain lines when piped.
func writeSummary(out io.Writer, summary *repair.Summary, dryRun, styled bool) {
	patchedLabel := "Seasons renamed"
	if dryRun {
		patchedLabel = "Seasons to rename (dry run)"
	}

	rows := [][]string{
		{"Shows processed", strconv.Itoa(summary.Shows)},
		{"Seasons inspected", strconv.Itoa(summary.Seasons)},
		{patchedLabel, strconv.Itoa(summary.Patched)},
		{"Already canonical", strconv.Itoa(summary.Unchanged)},
	}

	skips := summary.SkipsByReason()
	reasons := make([]string, 0, len(skips))
	for reason := range skips {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		rows = append(rows, []string{"Skipped (" + reason + ")", strconv.Itoa(skips[reason])})
	}

	if styled {
		fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
	}
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

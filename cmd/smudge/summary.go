package main

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"smudge/internal/runner"
)

var countPrinter = message.NewPrinter(language.English)

// renderSummary formats the post-run report: aggregate counts first, then a
// per-failure table when anything went wrong.
func renderSummary(report *runner.Report) string {
	rows := [][]string{
		{"Run ID", report.RunID},
		{"Input", report.InputDir},
		{"Output", report.OutputDir},
		{"Workers", countPrinter.Sprintf("%d", report.Workers)},
		{"Discovered", countPrinter.Sprintf("%d", report.Discovered)},
		{"Succeeded", countPrinter.Sprintf("%d", report.Succeeded)},
		{"Failed", countPrinter.Sprintf("%d", report.Failed)},
		{"Bytes written", humanize.Bytes(uint64(report.BytesWritten))},
		{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
	}

	var b strings.Builder
	b.WriteString(renderTable(
		[]string{"Run summary", ""},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(report.Failures) > 0 {
		failureRows := make([][]string, 0, len(report.Failures))
		for _, failure := range report.Failures {
			failureRows = append(failureRows, []string{failure.Input, failure.Reason})
		}
		b.WriteString("\n")
		b.WriteString(renderTable(
			[]string{"Failed file", "Reason"},
			failureRows,
			[]columnAlignment{alignLeft, alignLeft},
		))
	}
	return b.String()
}

// renderPlan formats a dry run: the would-be task list, nothing executed.
func renderPlan(report *runner.Report) string {
	rows := make([][]string, 0, len(report.Planned))
	for _, task := range report.Planned {
		rows = append(rows, []string{task.Input, task.Output})
	}

	var b strings.Builder
	b.WriteString(countPrinter.Sprintf("Dry run: %d files would be processed\n", report.Discovered))
	if len(rows) > 0 {
		b.WriteString(renderTable(
			[]string{"Input", "Planned output"},
			rows,
			[]columnAlignment{alignLeft, alignLeft},
		))
	}
	return b.String()
}

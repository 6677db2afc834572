package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/juancuellarsol/ogilvy/internal/batch"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// preview normalizes path without writing and prints the first rows.
func preview(ctx context.Context, runner *batch.Runner, path string, rows int, stdout, stderr io.Writer) int {
	out, report, err := runner.ProcessFile(ctx, path)
	if err != nil {
		fmt.Fprintf(stdout, "[WARN] failed %s: %v\n", path, err)
		return ExitFailure
	}

	fmt.Fprintf(stdout, "Preview of %s (%d rows, %d without timestamp)\n", path, report.Rows, report.MissingTimestamps)
	for _, w := range report.Warnings {
		fmt.Fprintf(stderr, "[WARN] %s\n", w)
	}
	renderTable(stdout, out.Head(rows))
	return ExitOK
}

// renderTable prints t through a gota dataframe, falling back to a plain
// pipe separated listing when the frame cannot be built.
func renderTable(w io.Writer, t *table.Table) {
	header, records := t.Records()
	if len(records) == 0 {
		fmt.Fprintln(w, strings.Join(header, " | "))
		return
	}

	df := dataframe.LoadRecords(
		append([][]string{header}, records...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		fmt.Fprintln(w, strings.Join(header, " | "))
		for _, rec := range records {
			fmt.Fprintln(w, strings.Join(rec, " | "))
		}
		return
	}
	fmt.Fprintln(w, df)
}

// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"

	"github.com/grovetools/mongrove/internal/sync"
)

// Writer renders the human-readable progress stream and the final summary.
// It implements sync.Observer; calls arrive sequentially, so lines never
// interleave.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) RunStarted(id string, databases []string) {
	fmt.Fprintf(w.out, "Syncing %d database(s)  [run %s]\n", len(databases), id)
}

func (w *Writer) DatabaseStarted(database string) {
	fmt.Fprintf(w.out, "\n%s:\n", database)
}

func (w *Writer) CollectionReconciled(_ string, report sync.CollectionReport) {
	fmt.Fprintf(w.out, "  %s  %s\n", report.Name, FormatStats(report.Stats))
}

func (w *Writer) DatabaseFinished(report sync.DatabaseReport) {
	if len(report.Collections) == 0 {
		fmt.Fprintln(w.out, "  (no collections)")
	}
}

// Summary prints the per-database breakdown, the grand total and, when any
// orphans exist, an advisory explaining that they were deliberately left
// untouched.
func (w *Writer) Summary(report *sync.RunReport) {
	fmt.Fprintf(w.out, "\n%s\n", rule)
	fmt.Fprintln(w.out, "Summary")

	for _, database := range report.Databases {
		fmt.Fprintf(w.out, "  %s\n", database.Name)
		if len(database.Collections) == 0 {
			fmt.Fprintln(w.out, "    (no collections)")
			continue
		}
		for _, collection := range database.Collections {
			fmt.Fprintf(w.out, "    %s  %s\n", collection.Name, FormatStats(collection.Stats))
		}
	}

	fmt.Fprintf(w.out, "  total  %s\n", FormatStats(report.Totals))

	if report.HasOrphans() {
		fmt.Fprintf(w.out, "\nNote: %d document(s) exist only in the target and were left untouched;\nthis tool never deletes.\n", report.Totals.Orphaned)
	}

	fmt.Fprintln(w.out, rule)
}

// Fatal prints a clearly prefixed error line beneath whatever progress was
// already written.
func (w *Writer) Fatal(err error) {
	fmt.Fprintf(w.out, "\nFATAL: %s\n", err)
}

// FormatStats renders one stats segment. The orphan segment is omitted when
// zero.
func FormatStats(stats sync.CollectionStats) string {
	var line = fmt.Sprintf("+%d new   ~%d updated   =%d unchanged",
		stats.Inserted, stats.Replaced, stats.Unchanged)
	if stats.Orphaned > 0 {
		line += fmt.Sprintf("   ! %d orphaned", stats.Orphaned)
	}
	return line
}

const rule = "============================================================"

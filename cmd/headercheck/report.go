package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"go.jacobcolvin.com/headercheck/header"
)

var (
	missingColor  = color.New(color.FgYellow)
	outdatedColor = color.New(color.FgCyan)
	fixedColor    = color.New(color.FgGreen)
	errorColor    = color.New(color.FgRed, color.Bold)
)

// reporter prints one line per file that needs attention, and the diff of
// the fix when asked.
type reporter struct {
	out  io.Writer
	root string
	fix  bool
	diff bool
	list bool
}

func (r *reporter) rel(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}

	return filepath.ToSlash(rel)
}

func (r *reporter) result(path string, res *header.Result, err error) {
	name := r.rel(path)

	switch {
	case res == nil:
		fmt.Fprintf(r.out, "%s %s: %v\n", errorColor.Sprintf("%-10s", "unreadable"), name, err)
		return

	case res.Status == header.StatusValid:
		return

	case r.list:
		fmt.Fprintln(r.out, name)
		return

	case err != nil:
		fmt.Fprintf(r.out, "%s %s: %v\n", errorColor.Sprintf("%-10s", "failed"), name, err)
		return
	}

	label := missingColor.Sprintf("%-10s", "missing")
	if res.Status == header.StatusOutdated {
		label = outdatedColor.Sprintf("%-10s", "outdated")
	}

	if r.fix {
		label = fixedColor.Sprintf("%-10s", "fixed")
	}

	fmt.Fprintf(r.out, "%s %s\n", label, name)

	for _, v := range res.Dropped {
		fmt.Fprintf(r.out, "%-10s %s: dropped copyright %q\n", "", name, v)
	}

	if r.diff {
		werr := writeDiff(r.out, name, res.Segments.Lines(), header.SplitLines(res.Content))
		if werr != nil {
			fmt.Fprintf(r.out, "%s %s: %v\n", errorColor.Sprintf("%-10s", "failed"), name, werr)
		}
	}
}

// summary prints the closing line for report.
func (r *reporter) summary(report header.Report) {
	if r.list {
		return
	}

	switch {
	case report.MissingFound == 0 && report.OutdatedFound == 0:
		fmt.Fprintf(r.out, "%s (%d files)\n", fixedColor.Sprint("File headers are valid."), report.Files-report.Unreadable)

	case !r.fix:
		msg := fmt.Sprintf("Found %d file(s) without header and %d file(s) with outdated header.",
			report.MissingFound, report.OutdatedFound)
		fmt.Fprintln(r.out, errorColor.Sprint(msg)+" Use --fix to fix these files.")

	default:
		fmt.Fprintln(r.out, fixedColor.Sprintf("Fixed %d file(s) without header and %d file(s) with outdated header.",
			report.MissingFound-report.MissingErrors, report.OutdatedFound-report.OutdatedErrors))

		if n := report.Failed(); n > 0 {
			fmt.Fprintln(r.out, errorColor.Sprintf("%d file(s) could not be updated.", n))
		}
	}

	if report.Unreadable > 0 {
		fmt.Fprintln(r.out, errorColor.Sprintf("%d file(s) could not be read.", report.Unreadable))
	}
}

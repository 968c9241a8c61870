package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContext = 3

type diffOp struct {
	line string
	kind byte // ' ', '-' or '+'
}

// diffLines returns the edit script turning a into b.
func diffLines(a, b []string) []diffOp {
	var ops []diffOp

	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, oc := range m.GetOpCodes() {
		if oc.Tag == 'e' {
			for _, line := range a[oc.I1:oc.I2] {
				ops = append(ops, diffOp{kind: ' ', line: line})
			}

			continue
		}

		// Replacements print removals before additions.
		for _, line := range a[oc.I1:oc.I2] {
			ops = append(ops, diffOp{kind: '-', line: line})
		}

		for _, line := range b[oc.J1:oc.J2] {
			ops = append(ops, diffOp{kind: '+', line: line})
		}
	}

	return ops
}

// writeDiff writes a unified-style diff between the lines of the current and
// regenerated file to w. Unchanged runs are collapsed to a few context lines.
func writeDiff(w io.Writer, path string, current, fixed []string) error {
	ops := diffLines(current, fixed)

	// keep[i] is set for changes and the context lines around them.
	keep := make([]bool, len(ops))
	for i, op := range ops {
		if op.kind == ' ' {
			continue
		}

		for j := max(0, i-diffContext); j <= min(len(ops)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- %s\n+++ %s (fixed)\n", path, path)

	gap := true
	for i, op := range ops {
		if !keep[i] {
			gap = true
			continue
		}

		if gap {
			sb.WriteString("@@\n")

			gap = false
		}

		line := strings.TrimRight(op.line, "\r\n")
		if !strings.HasSuffix(op.line, "\n") {
			line += "\n\\ No newline at end of file"
		}

		sb.WriteByte(op.kind)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("writing diff: %w", err)
	}

	return nil
}

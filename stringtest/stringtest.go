// Package stringtest provides helpers for building multi-line test fixtures.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Lines terminates each string with LF, matching the lines produced when a
// file is split after each newline.
//
// Example:
//
//	got := stringtest.Lines("<?php", "") // -> []string{"<?php\n", "\n"}
func Lines(ss ...string) []string {
	if len(ss) == 0 {
		return nil
	}

	lines := make([]string, len(ss))
	for i, s := range ss {
		lines[i] = s + "\n"
	}

	return lines
}

// File joins ss into file content where every line, including the last,
// ends with LF.
func File(ss ...string) string {
	return strings.Join(Lines(ss...), "")
}

// Input removes the indentation common to all non-blank lines of s, along
// with one leading and one trailing newline. Blank lines become empty.
// Use this to write fixtures as indented raw strings.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = line[indent:]
	}

	return strings.Join(lines, "\n")
}

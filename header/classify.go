package header

import "strings"

// Segments partitions the lines of a file around its licence header.
//
// Each line keeps its terminator, so concatenating Pre, Header and Post in
// order reconstructs the scanned content exactly.
type Segments struct {
	Pre    []string
	Header []string
	Post   []string

	// Missing is set when a line that may not precede a header was found
	// before any header start line. Header is empty in that case.
	Missing bool
}

// Lines returns Pre, Header and Post concatenated.
func (s Segments) Lines() []string {
	lines := make([]string, 0, len(s.Pre)+len(s.Header)+len(s.Post))
	lines = append(lines, s.Pre...)
	lines = append(lines, s.Header...)
	lines = append(lines, s.Post...)

	return lines
}

type scanState int

const (
	statePre scanState = iota
	stateHeader
	stateLastHeaderLine
	statePost
	stateMissing
)

// next returns the state of line given the state of the previous line.
func (s scanState) next(p *Profile, line string) scanState {
	text := trimEOL(line)

	switch s {
	case statePre:
		if p.Start.MatchString(text) {
			return stateHeader
		}

		if !AllowedBeforeHeader(line) {
			return stateMissing
		}

	case stateLastHeaderLine:
		return statePost

	case stateHeader:
		if p.End != nil && p.End.MatchString(text) {
			return stateLastHeaderLine
		}

		if p.Content != nil && !p.Content.MatchString(text) {
			return statePost
		}

	case statePost, stateMissing:
	}

	return s
}

// Classify splits lines into [Segments] using the header patterns of p.
//
// A header whose closing line is never found extends to the end of the
// file.
func Classify(lines []string, p *Profile) Segments {
	var (
		seg   Segments
		state = statePre
	)

	for _, line := range lines {
		state = state.next(p, line)

		switch state {
		case statePre:
			seg.Pre = append(seg.Pre, line)
		case stateHeader, stateLastHeaderLine:
			seg.Header = append(seg.Header, line)
		case statePost, stateMissing:
			seg.Post = append(seg.Post, line)
		}
	}

	seg.Missing = state == stateMissing

	return seg
}

// AllowedBeforeHeader reports whether line may precede a licence header:
// a PHP opening tag, a shebang, a bundler bootstrap marker or a blank line.
func AllowedBeforeHeader(line string) bool {
	trimmed := strings.TrimRight(line, " \t\r\n")

	switch {
	case trimmed == "<?php":
		return true
	case strings.HasPrefix(line, "#!"):
		return true
	case strings.Contains(line, "// webpackBootstrap"),
		trimmed == "var __webpack_exports__ = {};":
		return true
	case strings.TrimSpace(line) == "":
		return true
	}

	return false
}

// SplitLines splits s after each "\n". The last line has no terminator when
// s does not end with one. Empty input yields no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

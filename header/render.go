package header

import (
	"slices"
	"strings"
)

// Render returns the canonical header lines for p, with the tags of extra
// merged into the template tags (see [MergeTags]).
//
// The second return value holds copyright values dropped while merging.
func Render(t *Template, p *Profile, extra TagTable) ([]string, []string) {
	body := make([]string, 0, len(t.lines))
	trimmedPrefix := strings.TrimRight(p.LinePrefix, " \t")

	for _, line := range t.lines {
		if strings.TrimSpace(line) == "" {
			body = append(body, trimmedPrefix+"\n")
			continue
		}

		body = append(body, p.LinePrefix+line)
	}

	body, dropped := mergeTags(body, extra, p.LinePrefix, p.tagRegexp())

	lines := make([]string, 0, len(body)+2)
	lines = append(lines, p.PrependLine)
	lines = append(lines, body...)
	lines = append(lines, p.AppendLine)

	return StripEmptyLines(lines, true, true), dropped
}

// StripEmptyLines removes blank lines from the top and/or the bottom of
// lines, stopping at the first non-blank line.
func StripEmptyLines(lines []string, top, bottom bool) []string {
	start, end := 0, len(lines)

	if top {
		for start < end && strings.TrimSpace(lines[start]) == "" {
			start++
		}
	}

	if bottom {
		for end > start && strings.TrimSpace(lines[end-1]) == "" {
			end--
		}
	}

	return lines[start:end]
}

// Assemble joins the pre-header lines, the header and the post-header lines
// of a file, separated by single blank lines. Blank lines at the end of pre
// and at the start of post are dropped.
func Assemble(pre, header, post []string) string {
	pre = StripEmptyLines(pre, false, true)
	post = StripEmptyLines(post, true, false)

	var sb strings.Builder

	if len(pre) > 0 {
		for _, line := range pre {
			sb.WriteString(line)
		}

		if !strings.HasSuffix(pre[len(pre)-1], "\n") {
			sb.WriteByte('\n')
		}

		sb.WriteByte('\n')
	}

	for _, line := range header {
		sb.WriteString(line)
	}

	if len(post) > 0 {
		sb.WriteByte('\n')

		for _, line := range post {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// inner drops the first and last line, which hold the comment delimiters.
func inner(lines []string) []string {
	if len(lines) < 2 {
		return nil
	}

	return lines[1 : len(lines)-1]
}

// Outdated reports whether current differs from canonical, ignoring the
// delimiter lines of both.
func Outdated(canonical, current []string) bool {
	return !slices.Equal(inner(canonical), inner(current))
}

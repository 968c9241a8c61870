package header

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrMissingTemplate indicates the canonical header template could not be
// loaded. No file can be checked without it.
var ErrMissingTemplate = errors.New("missing header template")

// Template is the canonical header body, without comment delimiters.
//
// Every line ends with "\n". A Template is read-only once created and may be
// shared by concurrent checks.
type Template struct {
	lines []string
}

// NewTemplate creates a [Template] from raw text.
func NewTemplate(text string) *Template {
	lines := SplitLines(text)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}

	return &Template{lines: lines}
}

// LoadTemplate reads a [Template] from path. Unreadable and empty files
// return an error wrapping [ErrMissingTemplate].
func LoadTemplate(path string) (*Template, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Template path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingTemplate, err)
	}

	if strings.TrimSpace(string(b)) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingTemplate, path)
	}

	return NewTemplate(string(b)), nil
}

// Lines returns a copy of the template lines.
func (t *Template) Lines() []string {
	return append([]string(nil), t.lines...)
}

// String returns the template text.
func (t *Template) String() string {
	return strings.Join(t.lines, "")
}

var (
	copyrightNotice = regexp.MustCompile(`(?i)Copyright (\(c\)|©) (\d{4}-)?(\d{4}) `)
	copyrightTag    = regexp.MustCompile(`(?i)^(\s*@copy(?:right|left)\s+)(\d{4})(?:-(\d{4}))?(\s)`)
)

// BumpYear returns a copy of t with its copyright years extended to year.
//
// "Copyright (c) 2015-2020 " and "Copyright © 2020 " notices become
// "Copyright © 2015-<year> " and "Copyright © <year> ". Copyright tag values
// keep their start year: "@copyright 2015 Foo" becomes
// "@copyright 2015-<year> Foo".
func (t *Template) BumpYear(year int) *Template {
	y := strconv.Itoa(year)

	lines := make([]string, len(t.lines))
	for i, line := range t.lines {
		line = copyrightNotice.ReplaceAllString(line, "Copyright © ${2}"+y+" ")
		line = copyrightTag.ReplaceAllStringFunc(line, func(s string) string {
			m := copyrightTag.FindStringSubmatch(s)

			start := m[2]
			if start >= y {
				return m[1] + y + m[4]
			}

			return m[1] + start + "-" + y + m[4]
		})
		lines[i] = line
	}

	return &Template{lines: lines}
}

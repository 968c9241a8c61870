package header

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// TagTable maps tag names to their values in the order they were found.
type TagTable map[string][]string

// Add appends value under name.
func (t TagTable) Add(name, value string) {
	t[name] = append(t[name], value)
}

// Names returns the tag names in byte order.
func (t TagTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// TagPattern returns the pattern matching a "@name value" line, optionally
// preceded by prefix and whitespace. Matching is case-insensitive.
func TagPattern(prefix string) *regexp.Regexp {
	var sb strings.Builder

	sb.WriteString(`(?i)^`)

	if prefix != "" {
		sb.WriteString(`(?:` + regexp.QuoteMeta(prefix) + `)?`)
	}

	sb.WriteString(`\s*@(?P<name>[a-z]+)\s+(?P<value>.+)$`)

	return regexp.MustCompile(sb.String())
}

// ExtractTags collects the tags found in lines.
func ExtractTags(lines []string, prefix string) TagTable {
	return extractTags(lines, TagPattern(prefix))
}

func extractTags(lines []string, re *regexp.Regexp) TagTable {
	tags := make(TagTable)

	for _, line := range lines {
		m := re.FindStringSubmatch(trimEOL(line))
		if m == nil {
			continue
		}

		tags.Add(m[1], m[2])
	}

	return tags
}

// MergeTags merges extra into the tags of body and re-renders them.
//
// When body holds no tag, the tags of extra are rendered at its end.
// Otherwise values are merged per name (body values first, exact duplicates
// removed), names are sorted, and the rendered block replaces every tag line
// of body at the position of the first one. Copyright values are
// deduplicated with [DedupeCopyright] in both cases.
//
// The returned slice holds copyright values dropped during deduplication.
func MergeTags(body []string, extra TagTable, prefix string) ([]string, []string) {
	return mergeTags(body, extra, prefix, TagPattern(prefix))
}

func mergeTags(body []string, extra TagTable, prefix string, re *regexp.Regexp) ([]string, []string) {
	existing := extractTags(body, re)

	if len(existing) == 0 {
		if len(extra) == 0 {
			return body, nil
		}

		tags := maps.Clone(extra)
		dropped := dedupeCopyTags(tags)

		return append(slices.Clone(body), renderTags(tags, prefix)...), dropped
	}

	merged := make(TagTable, len(existing)+len(extra))
	for _, t := range []TagTable{existing, extra} {
		for name, values := range t {
			for _, v := range values {
				if !slices.Contains(merged[name], v) {
					merged.Add(name, v)
				}
			}
		}
	}

	dropped := dedupeCopyTags(merged)

	first := -1
	out := make([]string, 0, len(body))

	for i, line := range body {
		if !re.MatchString(trimEOL(line)) {
			out = append(out, line)
			continue
		}

		if first < 0 {
			first = i
			out = append(out, renderTags(merged, prefix)...)
		}
	}

	return out, dropped
}

// dedupeCopyTags applies [DedupeCopyright] to the copyright tags of t in
// place and returns the dropped values.
func dedupeCopyTags(t TagTable) []string {
	var dropped []string

	for name, values := range t {
		if !isCopyTag(name) {
			continue
		}

		kept, bad := DedupeCopyright(values)
		t[name] = kept
		dropped = append(dropped, bad...)
	}

	return dropped
}

// renderTags renders one line per value with names padded to a common width.
func renderTags(tags TagTable, prefix string) []string {
	names := tags.Names()

	pad := 0
	for _, name := range names {
		pad = max(pad, len(name))
	}

	var lines []string

	for _, name := range names {
		for _, value := range tags[name] {
			lines = append(lines, fmt.Sprintf("%s@%-*s %s\n", prefix, pad, name, value))
		}
	}

	return lines
}

func isCopyTag(name string) bool {
	switch strings.ToLower(name) {
	case "copyright", "copyleft":
		return true
	}

	return false
}

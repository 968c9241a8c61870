package header

import (
	"regexp"
	"strings"
)

var copyDates = regexp.MustCompile(`^(?P<before>.+\s+)?(?P<start>\d{4})(?:-(?P<end>\d{4}))?(?P<after>\s+.+)?$`)

// CopyrightValue is a parsed "@copyright" or "@copyleft" tag value.
type CopyrightValue struct {
	Before string
	After  string
	Start  string
	End    string
}

// ParseCopyright parses a value holding a year or a year range, optionally
// surrounded by free text. It reports false when value has no such years.
func ParseCopyright(value string) (CopyrightValue, bool) {
	m := copyDates.FindStringSubmatch(value)
	if m == nil {
		return CopyrightValue{}, false
	}

	cv := CopyrightValue{
		Before: m[copyDates.SubexpIndex("before")],
		Start:  m[copyDates.SubexpIndex("start")],
		End:    m[copyDates.SubexpIndex("end")],
		After:  m[copyDates.SubexpIndex("after")],
	}
	if cv.End == "" {
		cv.End = cv.Start
	}

	return cv, true
}

// String renders the value, omitting the end year when it equals the start
// year.
func (cv CopyrightValue) String() string {
	years := cv.Start
	if cv.End != cv.Start {
		years += "-" + cv.End
	}

	return cv.Before + years + cv.After
}

func (cv CopyrightValue) key() [2]string {
	return [2]string{strings.TrimSpace(cv.Before), strings.TrimSpace(cv.After)}
}

// DedupeCopyright merges copyright values that only differ by their years.
//
// Values are grouped by their surrounding text. A group with a single value
// is kept verbatim; larger groups collapse into one value spanning from the
// earliest start year to the latest end year. Groups keep the order of their
// first value. Values without a year are returned in dropped.
func DedupeCopyright(values []string) ([]string, []string) {
	var (
		order   [][2]string
		groups  = make(map[[2]string][]CopyrightValue)
		raw     = make(map[[2]string]string)
		dropped []string
	)

	for _, v := range values {
		cv, ok := ParseCopyright(v)
		if !ok {
			dropped = append(dropped, v)
			continue
		}

		k := cv.key()
		if _, seen := groups[k]; !seen {
			order = append(order, k)
			raw[k] = v
		}

		groups[k] = append(groups[k], cv)
	}

	kept := make([]string, 0, len(order))

	for _, k := range order {
		group := groups[k]
		if len(group) == 1 {
			kept = append(kept, raw[k])
			continue
		}

		merged := group[0]
		for _, cv := range group[1:] {
			// Years are fixed-width, so string order is numeric order.
			merged.Start = min(merged.Start, cv.Start)
			merged.End = max(merged.End, cv.End)
		}

		merged.End = max(merged.End, merged.Start)

		kept = append(kept, merged.String())
	}

	return kept, dropped
}

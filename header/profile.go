package header

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidProfile indicates a [Profile] that cannot locate a header.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile describes the comment syntax of a file type family.
//
// Patterns are matched against lines with their line terminator removed.
// A header starts on the first line matching Start. It ends on the line
// matching End, or, when End is nil, just before the first line that does
// not match Content.
//
// Create instances with [NewProfile]. Profiles are immutable once created
// and safe for concurrent use.
type Profile struct {
	Start   *regexp.Regexp
	End     *regexp.Regexp
	Content *regexp.Regexp

	Name        string
	LinePrefix  string
	PrependLine string
	AppendLine  string

	tagPattern *regexp.Regexp
}

// NewProfile creates a [Profile]. At least one of start and content must be
// non-nil; when start is nil it defaults to content.
func NewProfile(name, prefix, prependLine, appendLine string, start, end, content *regexp.Regexp) (*Profile, error) {
	if start == nil && content == nil {
		return nil, fmt.Errorf("%w: %s: start or content pattern required", ErrInvalidProfile, name)
	}

	if start == nil {
		start = content
	}

	return &Profile{
		Name:        name,
		LinePrefix:  prefix,
		PrependLine: prependLine,
		AppendLine:  appendLine,
		Start:       start,
		End:         end,
		Content:     content,
		tagPattern:  TagPattern(prefix),
	}, nil
}

func mustProfile(name, prefix, prependLine, appendLine string, start, end, content *regexp.Regexp) *Profile {
	p, err := NewProfile(name, prefix, prependLine, appendLine, start, end, content)
	if err != nil {
		panic(err)
	}

	return p
}

// Built-in profiles.
var (
	// HashProfile covers "#" comments (shell, perl, YAML). The shebang is
	// never part of the header.
	HashProfile = mustProfile("hash", "# ", "#\n", "#\n",
		regexp.MustCompile(`^#([^!]|$)`), nil, regexp.MustCompile(`^#`))

	// SQLProfile covers "--" comments. Older headers used "#".
	SQLProfile = mustProfile("sql", "-- ", "--\n", "--\n",
		nil, nil, regexp.MustCompile(`^(--|#)`))

	// CSSProfile covers "/*! ... */" comments, also accepting "/*" and "/**"
	// openings from older headers.
	CSSProfile = mustProfile("css", " * ", "/*!\n", " */\n",
		regexp.MustCompile(`^/\*(!|\*)?$`), regexp.MustCompile(`\*/`), nil)

	// TwigProfile covers "{# ... #}" comments.
	TwigProfile = mustProfile("twig", " # ", "{#\n", " #}\n",
		regexp.MustCompile(`^\{#$`), regexp.MustCompile(`#}`), nil)

	// DefaultProfile covers C-style "/** ... */" doc comments and is used for
	// every extension without a dedicated profile.
	DefaultProfile = mustProfile("default", " * ", "/**\n", " */\n",
		regexp.MustCompile(`^/\*\*?$`), regexp.MustCompile(`\*/`), nil)
)

// Profiles maps file extensions to [Profile] values.
//
// Create instances with [NewProfiles] or [DefaultProfiles].
type Profiles struct {
	byExt    map[string]*Profile
	fallback *Profile
}

// NewProfiles creates an empty [Profiles] table that resolves every
// extension to fallback.
func NewProfiles(fallback *Profile) *Profiles {
	return &Profiles{
		byExt:    make(map[string]*Profile),
		fallback: fallback,
	}
}

// DefaultProfiles returns the built-in extension table.
func DefaultProfiles() *Profiles {
	ps := NewProfiles(DefaultProfile)
	for _, ext := range []string{"pl", "sh", "yaml", "yml"} {
		ps.Register(ext, HashProfile)
	}

	ps.Register("sql", SQLProfile)
	ps.Register("css", CSSProfile)
	ps.Register("scss", CSSProfile)
	ps.Register("twig", TwigProfile)

	return ps
}

// Register maps ext (without the leading dot) to p.
func (ps *Profiles) Register(ext string, p *Profile) {
	ps.byExt[strings.ToLower(ext)] = p
}

// Lookup returns the profile registered for ext, or the fallback profile.
func (ps *Profiles) Lookup(ext string) *Profile {
	if p, ok := ps.byExt[strings.ToLower(ext)]; ok {
		return p
	}

	return ps.fallback
}

// Resolve returns the profile for a file. The extension is taken from
// filename; files without one are resolved through the shebang found in
// firstLine, see [ShebangExtension].
func (ps *Profiles) Resolve(filename, firstLine string) *Profile {
	return ps.Lookup(Extension(filename, firstLine))
}

// Extension returns the extension used to pick a profile for a file: the
// substring after the last "." of the base name, or the shebang-derived
// extension when there is none.
func Extension(filename, firstLine string) string {
	base := filepath.Base(filename)

	i := strings.LastIndexByte(base, '.')
	if i >= 0 && i < len(base)-1 {
		return base[i+1:]
	}

	if ext, ok := ShebangExtension(firstLine); ok {
		return ext
	}

	return ""
}

var (
	envShebang  = regexp.MustCompile(`^#!/usr/bin/env\s+(?P<binary>\S+)(\s+.*)?$`)
	pathShebang = regexp.MustCompile(`^#!(|/([^/]+/)*(?P<binary>[^/\s]+))(\s+.*)?$`)
)

// ShebangExtension derives an extension from a shebang line. It reports
// false when line is not a shebang.
//
// "bash" maps to "sh" and "perl" to "pl"; any other interpreter maps to its
// binary name, and a shebang without an interpreter maps to "php".
func ShebangExtension(line string) (string, bool) {
	line = trimEOL(line)
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}

	binary := ""

	for _, re := range []*regexp.Regexp{envShebang, pathShebang} {
		m := re.FindStringSubmatch(line)
		if m != nil {
			binary = m[re.SubexpIndex("binary")]
			break
		}
	}

	switch binary {
	case "bash":
		return "sh", true
	case "perl":
		return "pl", true
	case "":
		return "php", true
	}

	return binary, true
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func (p *Profile) tagRegexp() *regexp.Regexp {
	if p.tagPattern != nil {
		return p.tagPattern
	}

	return TagPattern(p.LinePrefix)
}

package header

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Sentinel errors returned by the [Checker].
var (
	ErrUnreadableFile = errors.New("unreadable file")
	ErrWriteFailure   = errors.New("write failure")
)

// Status classifies the header of a file.
type Status int

const (
	// StatusValid means the header matches the canonical header.
	StatusValid Status = iota
	// StatusMissing means the file has no header.
	StatusMissing
	// StatusOutdated means the file has a header that differs from the
	// canonical header.
	StatusOutdated
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusMissing:
		return "missing"
	case StatusOutdated:
		return "outdated"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of checking one file.
type Result struct {
	Profile *Profile
	Path    string

	// Content is the regenerated file. It is empty for valid files.
	Content string

	// Header holds the canonical header lines for the file.
	Header []string

	// Dropped holds copyright values that could not be parsed and were left
	// out of the canonical header.
	Dropped []string

	Segments Segments
	Status   Status
}

// WriteFunc writes data to path and returns the number of bytes written.
type WriteFunc func(path string, data []byte) (int, error)

// Checker classifies and fixes licence headers against a [Template].
//
// A Checker holds no per-file state and may be used concurrently.
//
// Create instances with [NewChecker].
type Checker struct {
	template         *Template
	profiles         *Profiles
	write            WriteFunc
	discardExtraTags bool
}

// Option configures a [Checker].
type Option func(*Checker)

// NewChecker creates a [Checker] for the given template.
func NewChecker(t *Template, opts ...Option) *Checker {
	c := &Checker{
		template: t,
		profiles: DefaultProfiles(),
		write:    writeFile,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithDiscardExtraTags ignores the tags found in current headers, so only
// the template tags are rendered.
func WithDiscardExtraTags(discard bool) Option {
	return func(c *Checker) {
		c.discardExtraTags = discard
	}
}

// WithProfiles sets the extension table used to pick comment profiles.
func WithProfiles(ps *Profiles) Option {
	return func(c *Checker) {
		c.profiles = ps
	}
}

// WithWriteFunc sets the function used by [Checker.Fix] to write files.
func WithWriteFunc(fn WriteFunc) Option {
	return func(c *Checker) {
		c.write = fn
	}
}

// Check classifies content, the body of the file called name.
func (c *Checker) Check(name, content string) *Result {
	lines := SplitLines(content)

	firstLine := ""
	if len(lines) > 0 {
		firstLine = lines[0]
	}

	p := c.profiles.Resolve(name, firstLine)
	seg := Classify(lines, p)

	var extra TagTable
	if !c.discardExtraTags {
		extra = extractTags(seg.Header, p.tagRegexp())
	}

	hdr, dropped := Render(c.template, p, extra)

	r := &Result{
		Path:     name,
		Profile:  p,
		Segments: seg,
		Header:   hdr,
		Dropped:  dropped,
	}

	switch {
	case seg.Missing:
		r.Status = StatusMissing
	case Outdated(hdr, seg.Header):
		r.Status = StatusOutdated
	default:
		r.Status = StatusValid
	}

	if r.Status != StatusValid {
		r.Content = Assemble(seg.Pre, hdr, seg.Post)
	}

	slog.Debug("checked file",
		slog.String("path", name),
		slog.String("profile", p.Name),
		slog.String("status", r.Status.String()),
	)

	for _, v := range dropped {
		slog.Warn("unparseable copyright value dropped",
			slog.String("path", name),
			slog.String("value", v),
		)
	}

	return r
}

// CheckFile reads and classifies the file at path.
func (c *Checker) CheckFile(path string) (*Result, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Paths come from directory discovery.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}

	return c.Check(path, string(b)), nil
}

// Fix writes the regenerated content of r to r.Path. It does nothing for
// valid files.
func (c *Checker) Fix(r *Result) error {
	if r.Status == StatusValid {
		return nil
	}

	n, err := c.write(r.Path, []byte(r.Content))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, r.Path, err)
	}

	if n != len(r.Content) {
		return fmt.Errorf("%w: %s: wrote %d of %d bytes", ErrWriteFailure, r.Path, n, len(r.Content))
	}

	return nil
}

func writeFile(path string, data []byte) (int, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0) //nolint:gosec // Paths come from directory discovery.
	if err != nil {
		return 0, err
	}

	n, err := f.Write(data)

	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	return n, err
}

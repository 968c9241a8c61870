package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidDirectory indicates a walk root that is missing, unreadable or
// not a directory.
var ErrInvalidDirectory = errors.New("invalid directory")

// HandledExtensions lists the extensions of the files checked by default.
var HandledExtensions = []string{"css", "js", "php", "pl", "scss", "sh", "sql", "twig", "yaml", "yml"}

// Walker finds the files to check below a root directory.
//
// A file is selected when its extension is handled or when its parent
// directory is named "bin", unless an exclusion [Rule] matches it or one of
// its parent directories.
//
// Create instances with [NewWalker].
type Walker struct {
	exts     map[string]bool
	root     string
	rules    []Rule
	matchers []matcher
}

// Option configures a [Walker].
type Option func(*Walker)

// WithExclusions adds exclusion rules.
func WithExclusions(rules ...Rule) Option {
	return func(w *Walker) {
		w.rules = append(w.rules, rules...)
	}
}

// WithExtensions adds handled extensions, given without the leading dot.
func WithExtensions(exts ...string) Option {
	return func(w *Walker) {
		for _, ext := range exts {
			w.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
		}
	}
}

// NewWalker creates a [Walker] for root. It returns an error wrapping
// [ErrInvalidDirectory] when root is not a readable directory, or
// [ErrInvalidRule] when an exclusion rule does not compile.
func NewWalker(root string, opts ...Option) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, abs)
	}

	w := &Walker{
		root: abs,
		exts: make(map[string]bool, len(HandledExtensions)),
	}
	for _, ext := range HandledExtensions {
		w.exts[ext] = true
	}

	for _, opt := range opts {
		opt(w)
	}

	for _, r := range w.rules {
		m, err := r.compile()
		if err != nil {
			return nil, err
		}

		w.matchers = append(w.matchers, m)
	}

	return w, nil
}

// Root returns the absolute walk root.
func (w *Walker) Root() string {
	return w.root
}

// Excluded reports whether the slash-separated path rel, relative to the
// root, matches an exclusion rule.
func (w *Walker) Excluded(rel string) bool {
	for _, m := range w.matchers {
		if m.match(rel) {
			return true
		}
	}

	return false
}

// Files returns the absolute paths of the selected files, sorted.
//
// Unreadable subdirectories are logged and skipped. Files only returns an
// error when the root cannot be read or ctx is done.
func (w *Walker) Files(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == w.root {
				return fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
			}

			slog.Warn("skipping unreadable path",
				slog.String("path", path),
				slog.Any("error", err),
			)

			if d != nil && d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if path == w.root {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if w.Excluded(rel) {
			slog.Debug("excluded path", slog.String("path", rel))

			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.IsDir() || !w.selected(path, d) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)

	return files, nil
}

func (w *Walker) selected(path string, d fs.DirEntry) bool {
	if !isFile(path, d) {
		return false
	}

	if ext := filepath.Ext(path); ext != "" && w.exts[strings.ToLower(ext[1:])] {
		return true
	}

	return filepath.Base(filepath.Dir(path)) == "bin"
}

// isFile reports whether d is a regular file, or a symlink to one.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}

	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	fi, err := os.Stat(path)

	return err == nil && fi.Mode().IsRegular()
}

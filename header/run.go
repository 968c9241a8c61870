package header

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RunOptions configures [Checker.Run].
type RunOptions struct {
	// OnResult is called once per file, never concurrently. The result is nil
	// when the file could not be read. err is non-nil when the file could not
	// be read or fixed.
	OnResult func(path string, r *Result, err error)

	// Jobs is the number of files processed concurrently. Values below 2
	// process files one at a time, in order.
	Jobs int

	// Fix rewrites missing and outdated headers.
	Fix bool

	// DryRun computes fixes without writing them. It only matters when Fix
	// is set.
	DryRun bool
}

// Report tallies the outcome of [Checker.Run].
type Report struct {
	Files          int
	MissingFound   int
	MissingErrors  int
	OutdatedFound  int
	OutdatedErrors int
	Unreadable     int
}

// Valid reports whether every file had a valid header.
func (r Report) Valid() bool {
	return r.MissingFound == 0 && r.OutdatedFound == 0 && r.Unreadable == 0
}

// Failed returns the number of files that could not be fixed.
func (r Report) Failed() int {
	return r.MissingErrors + r.OutdatedErrors
}

// ExitCode returns the process exit code for the report: 0 when every header
// is valid or was fixed, 1 when headers are missing or outdated and were not
// fixed or a file was unreadable, 2 when some fixes failed.
func (r Report) ExitCode(fix bool) int {
	switch {
	case fix && r.Failed() > 0:
		return 2
	case r.Unreadable > 0:
		return 1
	case !fix && !r.Valid():
		return 1
	}

	return 0
}

func (r *Report) add(res *Result, err error) {
	r.Files++

	if res == nil {
		r.Unreadable++
		return
	}

	failed := errors.Is(err, ErrWriteFailure)

	switch res.Status {
	case StatusMissing:
		r.MissingFound++
		if failed {
			r.MissingErrors++
		}

	case StatusOutdated:
		r.OutdatedFound++
		if failed {
			r.OutdatedErrors++
		}

	case StatusValid:
	}
}

// Run checks, and optionally fixes, every file in paths.
//
// Each file is an independent unit: read, classify, then rewrite when asked.
// Per-file errors are tallied in the [Report] and never stop the run. Run
// only returns an error when ctx is done.
func (c *Checker) Run(ctx context.Context, paths []string, opts RunOptions) (Report, error) {
	var (
		mu     sync.Mutex
		report Report
	)

	process := func(path string) {
		r, err := c.CheckFile(path)
		if err == nil && opts.Fix && !opts.DryRun {
			err = c.Fix(r)
		}

		mu.Lock()
		defer mu.Unlock()

		report.add(r, err)

		if opts.OnResult != nil {
			opts.OnResult(path, r, err)
		}
	}

	if opts.Jobs < 2 {
		for _, path := range paths {
			err := ctx.Err()
			if err != nil {
				return report, err
			}

			process(path)
		}

		return report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for _, path := range paths {
		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			process(path)

			return nil
		})
	}

	err := g.Wait()

	return report, err
}

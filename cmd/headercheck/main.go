// Command headercheck checks and fixes the licence headers of source files.
//
// Every handled file below a directory is compared with the canonical header
// rendered from a template file. Missing and outdated headers are reported,
// and rewritten with --fix. Tags found in existing headers (e.g. "@author")
// are merged into the canonical header unless --discard-extra-tags is set.
//
// # Usage
//
//	headercheck [flags]
//	headercheck schema
//
// # Exit codes
//
//	0  every header is valid, or was fixed
//	1  headers are missing or outdated, or files could not be read
//	2  some headers could not be fixed
//
// # Settings
//
// Defaults for most flags can be kept in ".headercheck.yaml" or
// ".headercheck.toml" in the checked directory. Run "headercheck schema" for
// the JSON Schema of that file.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/headercheck/discover"
	"go.jacobcolvin.com/headercheck/header"
	"go.jacobcolvin.com/headercheck/log"
	"go.jacobcolvin.com/headercheck/project"
	"go.jacobcolvin.com/headercheck/version"
)

var (
	errHeadersInvalid = errors.New("file headers are missing or outdated")
	errFixFailed      = errors.New("some file headers could not be fixed")
	errInvalidFlag    = errors.New("invalid flag")
)

// Progress modes.
const (
	progressAuto   = "auto"
	progressAlways = "always"
	progressNever  = "never"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	cmd := newRootCmd(os.Stdout, os.Stderr)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil && !errors.Is(err, errHeadersInvalid) && !errors.Is(err, errFixFailed) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFixFailed):
		return 2
	}

	return 1
}

type app struct {
	stdout     io.Writer
	stderr     io.Writer
	header     *header.Config
	discover   *discover.Config
	log        *log.Config
	isTerminal func() bool
	configPath string
	progress   string
	diff       bool
	list       bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		header:   header.NewConfig(),
		discover: discover.NewConfig(),
		log:      log.NewConfig(),
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // File descriptors fit in an int.
		},
	}

	rootCmd := &cobra.Command{
		Use:   "headercheck [flags]",
		Short: "Check and fix licence headers",
		Long: `headercheck compares the licence header of every source file below a
directory with the canonical header rendered from a template file, and
reports or fixes missing and outdated headers.`,
		Args:          cobra.NoArgs,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	a.header.RegisterFlags(flags)
	a.discover.RegisterFlags(flags)
	a.log.RegisterFlags(rootCmd.PersistentFlags())

	flags.StringVar(&a.configPath, "config", "",
		"settings file (default: .headercheck.yaml, .headercheck.yml or .headercheck.toml in the directory)")
	flags.BoolVar(&a.diff, "diff", false, "print the changes fixing would make, without writing")
	flags.BoolVarP(&a.list, "list", "l", false, "only list files with a missing or outdated header")
	flags.StringVar(&a.progress, "progress", progressAuto, "show a progress view: auto, always or never")

	rootCmd.MarkFlagsMutuallyExclusive("diff", "list")

	for _, register := range []func(*cobra.Command) error{
		a.header.RegisterCompletions,
		a.discover.RegisterCompletions,
		a.log.RegisterCompletions,
		registerCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

func registerCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc("progress",
		cobra.FixedCompletions([]string{progressAuto, progressAlways, progressNever}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering progress completion: %w", err)
	}

	err = cmd.RegisterFlagCompletionFunc("config",
		cobra.FixedCompletions(nil, cobra.ShellCompDirectiveDefault))
	if err != nil {
		return fmt.Errorf("registering config completion: %w", err)
	}

	return nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := project.SchemaJSON()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(b)
			if err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}

			return nil
		},
	}
}

func (a *app) run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	err := a.log.Install(a.stderr)
	if err != nil {
		return err
	}

	useProgress, err := a.useProgress()
	if err != nil {
		return err
	}

	err = a.loadSettings(cmd)
	if err != nil {
		return err
	}

	if a.header.HeaderFile == "" {
		a.header.HeaderFile, err = project.FindHeaderFile(a.discover.Directory)
		if err != nil {
			return fmt.Errorf("%w: %w", header.ErrMissingTemplate, err)
		}
	}

	checker, err := a.header.NewChecker()
	if err != nil {
		return err
	}

	walker, err := a.discover.NewWalker()
	if err != nil {
		return err
	}

	files, err := walker.Files(ctx)
	if err != nil {
		return err
	}

	slog.Info("checking files",
		slog.Int("files", len(files)),
		slog.String("directory", walker.Root()),
		slog.String("template", a.header.HeaderFile),
	)

	opts := a.header.RunOptions()
	opts.DryRun = a.diff || a.list
	fix := opts.Fix && !opts.DryRun

	rep := &reporter{
		out:  a.stdout,
		root: walker.Root(),
		fix:  fix,
		diff: a.diff,
		list: a.list,
	}
	opts.OnResult = rep.result

	var (
		view    *progress
		pending bytes.Buffer
	)

	if useProgress {
		pub := log.NewPublisher()
		defer pub.Close() //nolint:errcheck // Close never fails.

		err = a.log.Install(pub)
		if err != nil {
			return err
		}

		// Report lines are held back until the view has finished rendering.
		rep.out = &pending

		view = startProgress(ctx, a.stdout, len(files), pub)
		opts.OnResult = func(path string, r *header.Result, err error) {
			rep.result(path, r, err)
			view.result(r, err)
		}
	}

	report, err := checker.Run(ctx, files, opts)

	if view != nil {
		stopErr := view.stop()

		logErr := a.log.Install(a.stderr)
		if logErr != nil {
			return logErr
		}

		if stopErr != nil {
			slog.Warn("progress view failed", slog.Any("error", stopErr))
		}

		_, werr := pending.WriteTo(a.stdout)
		if werr != nil {
			return fmt.Errorf("writing report: %w", werr)
		}

		rep.out = a.stdout
	}

	if err != nil {
		return err
	}

	rep.summary(report)

	switch report.ExitCode(fix) {
	case 2:
		return errFixFailed
	case 1:
		return errHeadersInvalid
	}

	return nil
}

// useProgress reports whether the progress view is shown.
func (a *app) useProgress() (bool, error) {
	switch a.progress {
	case progressAlways:
		return true, nil
	case progressNever:
		return false, nil
	case progressAuto:
		return !a.diff && !a.list && a.isTerminal(), nil
	}

	return false, fmt.Errorf("%w: --progress must be one of %v, got %q", errInvalidFlag,
		[]string{progressAuto, progressAlways, progressNever}, a.progress)
}

// loadSettings applies the project settings file to every option whose flag
// was not set on the command line.
func (a *app) loadSettings(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		found, ok := project.Find(a.discover.Directory)
		if !ok {
			return nil
		}

		path = found
	}

	s, err := project.Load(path)
	if err != nil {
		return err
	}

	slog.Debug("loaded settings", slog.String("path", path))

	flags := cmd.Flags()
	if s.HeaderFile != "" && !flags.Changed(a.header.Flags.HeaderFile) {
		a.header.HeaderFile = s.HeaderFile
	}

	if s.Jobs > 0 && !flags.Changed(a.header.Flags.Jobs) {
		a.header.Jobs = s.Jobs
	}

	if !flags.Changed(a.header.Flags.DiscardExtraTags) {
		a.header.DiscardExtraTags = s.DiscardExtraTags
	}

	if !flags.Changed(a.header.Flags.BumpYear) {
		a.header.BumpYear = s.BumpYear
	}

	a.discover.Rules = append(a.discover.Rules, s.Exclude...)

	for _, ext := range s.Extensions {
		if !slices.Contains(a.discover.Extensions, ext) {
			a.discover.Extensions = append(a.discover.Extensions, ext)
		}
	}

	return nil
}

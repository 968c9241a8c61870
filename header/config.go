package header

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for header checking, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	HeaderFile       string
	Fix              string
	DiscardExtraTags string
	BumpYear         string
	Jobs             string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for header checking.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewChecker] to create a [Checker].
type Config struct {
	// Now returns the current time. It defaults to [time.Now].
	Now func() time.Time

	Flags            Flags
	HeaderFile       string
	Jobs             int
	Fix              bool
	DiscardExtraTags bool
	BumpYear         bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		HeaderFile:       "header-file",
		Fix:              "fix",
		DiscardExtraTags: "discard-extra-tags",
		BumpYear:         "bump-year",
		Jobs:             "jobs",
	}

	return f.NewConfig()
}

// RegisterFlags adds header checking flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.HeaderFile, c.Flags.HeaderFile, "",
		"header template file (default: .licence-header or tools/HEADER in the directory)")
	flags.BoolVarP(&c.Fix, c.Flags.Fix, "f", false,
		"fix missing and outdated headers")
	flags.BoolVar(&c.DiscardExtraTags, c.Flags.DiscardExtraTags, false,
		"discard extra tags found in headers")
	flags.BoolVar(&c.BumpYear, c.Flags.BumpYear, false,
		"extend template copyright years to the current year")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", 1,
		"number of files processed concurrently (results are reported out of order above 1)")
}

// RegisterCompletions registers shell completions for header checking flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Jobs, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Jobs, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.HeaderFile,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.HeaderFile, err)
	}

	return nil
}

// LoadTemplate loads the template named by [Config.HeaderFile], extending
// its copyright years when [Config.BumpYear] is set.
func (c *Config) LoadTemplate() (*Template, error) {
	if c.HeaderFile == "" {
		return nil, fmt.Errorf("%w: no header file configured", ErrMissingTemplate)
	}

	t, err := LoadTemplate(c.HeaderFile)
	if err != nil {
		return nil, err
	}

	if c.BumpYear {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}

		t = t.BumpYear(now().Year())
	}

	return t, nil
}

// NewChecker loads the template and creates a [Checker] using this [Config].
func (c *Config) NewChecker(opts ...Option) (*Checker, error) {
	t, err := c.LoadTemplate()
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithDiscardExtraTags(c.DiscardExtraTags)}, opts...)

	return NewChecker(t, opts...), nil
}

// RunOptions returns the [RunOptions] matching this [Config].
func (c *Config) RunOptions() RunOptions {
	return RunOptions{
		Fix:  c.Fix,
		Jobs: c.Jobs,
	}
}

package discover

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for file discovery, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Directory  string
	Exclude    string
	Extensions string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for file discovery.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewWalker] to create a [Walker].
type Config struct {
	Flags      Flags
	Directory  string
	Exclude    []string
	Extensions []string

	// Rules are added to the exclusions given on the command line, e.g. by a
	// project settings file.
	Rules []Rule
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Directory:  "directory",
		Exclude:    "exclude",
		Extensions: "extension",
	}

	return f.NewConfig()
}

// RegisterFlags adds discovery flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Directory, c.Flags.Directory, "d", ".",
		"directory to check")
	flags.StringArrayVar(&c.Exclude, c.Flags.Exclude, nil,
		"exclude paths matching a regular expression, optionally followed by \" !exception\" (repeatable)")
	flags.StringSliceVar(&c.Extensions, c.Flags.Extensions, nil,
		"additional file extensions to check")
}

// RegisterCompletions registers shell completions for discovery flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Directory,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Directory, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Exclude, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Exclude, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Extensions,
		cobra.FixedCompletions(HandledExtensions, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Extensions, err)
	}

	return nil
}

// NewWalker creates a [Walker] for [Config.Directory] using the default
// exclusions of that directory plus the configured ones.
func (c *Config) NewWalker() (*Walker, error) {
	rules := DefaultExclusions(c.Directory)
	rules = append(rules, c.Rules...)

	for _, s := range c.Exclude {
		rules = append(rules, ParseRule(s))
	}

	return NewWalker(c.Directory,
		WithExclusions(rules...),
		WithExtensions(c.Extensions...),
	)
}

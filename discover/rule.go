package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidRule indicates an exclusion rule whose patterns do not compile.
var ErrInvalidRule = errors.New("invalid exclusion rule")

// Rule excludes paths from discovery.
//
// Pattern is a regular expression matched against the whole slash-separated
// path relative to the walk root. A path matching Pattern is still kept when
// it starts with a match of Except.
type Rule struct {
	Pattern string `json:"pattern" jsonschema:"regular expression matched against the whole path relative to the directory" toml:"pattern" yaml:"pattern"`
	Except  string `json:"except,omitempty" jsonschema:"regular expression; paths starting with a match are kept" toml:"except,omitempty" yaml:"except,omitempty"`
}

// ParseRule parses the flag form of a [Rule]: the pattern, optionally
// followed by " !" and the exception, e.g. `lib/.+ !lib/bundles`.
func ParseRule(s string) Rule {
	pattern, except, _ := strings.Cut(s, " !")

	return Rule{
		Pattern: strings.TrimSpace(pattern),
		Except:  strings.TrimSpace(except),
	}
}

// String returns the flag form of r.
func (r Rule) String() string {
	if r.Except == "" {
		return r.Pattern
	}

	return r.Pattern + " !" + r.Except
}

// Validate returns an error wrapping [ErrInvalidRule] when r does not
// compile.
func (r Rule) Validate() error {
	_, err := r.compile()

	return err
}

type matcher struct {
	pattern *regexp.Regexp
	except  *regexp.Regexp
}

func (r Rule) compile() (matcher, error) {
	if strings.TrimSpace(r.Pattern) == "" {
		return matcher{}, fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}

	var (
		m   matcher
		err error
	)

	m.pattern, err = regexp.Compile(`^(?:` + r.Pattern + `)$`)
	if err != nil {
		return matcher{}, fmt.Errorf("%w: %q: %w", ErrInvalidRule, r.Pattern, err)
	}

	if r.Except != "" {
		m.except, err = regexp.Compile(`^(?:` + r.Except + `)`)
		if err != nil {
			return matcher{}, fmt.Errorf("%w: %q: %w", ErrInvalidRule, r.Except, err)
		}
	}

	return m, nil
}

func (m matcher) match(rel string) bool {
	if !m.pattern.MatchString(rel) {
		return false
	}

	return m.except == nil || !m.except.MatchString(rel)
}

var (
	baseExclusions = []Rule{
		{Pattern: `\.dependabot`},
		{Pattern: `\.git`},
		{Pattern: `\.github`},
		{Pattern: `\.gitlab-ci\.yml`},
		{Pattern: `\.travis\.yml`},
		{Pattern: `\.tx`},
		{Pattern: `node_modules`},
		{Pattern: `vendor`},
		{Pattern: `public/lib`},
	}

	pluginExclusions = []Rule{
		{Pattern: `lib`},
		{Pattern: `dist`},
	}

	glpiExclusions = []Rule{
		{Pattern: `config`},
		{Pattern: `css/lib`},
		{Pattern: `lib/.+`, Except: `lib/(bundles|index\.php)`},
		{Pattern: `files`},
		{Pattern: `marketplace`},
		{Pattern: `plugins`},
		{Pattern: `tests/config`},
		{Pattern: `tests/config_db\.php`},
		{Pattern: `tests/files`},
	}

	glpiPackageName = regexp.MustCompile(`"name"\s*:\s*"glpi/glpi"`)
)

// DefaultExclusions returns the exclusion rules for the project at root.
//
// VCS metadata, CI configuration and dependency directories are always
// excluded. A plugin root (holding both setup.php and hook.php) also excludes
// its bundled libraries and archives; the GLPI root (composer.json named
// "glpi/glpi") excludes configuration, user files, plugins and third-party
// libraries.
func DefaultExclusions(root string) []Rule {
	rules := append([]Rule(nil), baseExclusions...)

	switch {
	case exists(filepath.Join(root, "setup.php")) && exists(filepath.Join(root, "hook.php")):
		rules = append(rules, pluginExclusions...)

	case isGLPIRoot(root):
		rules = append(rules, glpiExclusions...)
	}

	return rules
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func isGLPIRoot(root string) bool {
	b, err := os.ReadFile(filepath.Join(root, "composer.json")) //nolint:gosec // Fixed name under the walk root.
	if err != nil {
		return false
	}

	return glpiPackageName.Match(b)
}

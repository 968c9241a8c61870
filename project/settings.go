package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/headercheck/discover"
)

// Sentinel errors returned by this package.
var (
	ErrReadSettings    = errors.New("read settings")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrNoHeaderFile    = errors.New("no header file found")
)

// SettingsFiles lists the settings file names looked up by [Find], in order.
var SettingsFiles = []string{".headercheck.yaml", ".headercheck.yml", ".headercheck.toml"}

// HeaderFiles lists the header template paths looked up by [FindHeaderFile],
// relative to the project directory, in order.
var HeaderFiles = []string{".licence-header", filepath.Join("tools", "HEADER")}

// Settings is the content of a project settings file. Command-line flags
// take precedence over every field.
type Settings struct {
	// HeaderFile is resolved against the directory of the settings file.
	HeaderFile       string          `json:"headerFile,omitempty"       jsonschema:"path of the header template, relative to the settings file" toml:"headerFile,omitempty"       yaml:"headerFile,omitempty"`
	Exclude          []discover.Rule `json:"exclude,omitempty"          jsonschema:"additional exclusion rules"                                 toml:"exclude,omitempty"          yaml:"exclude,omitempty"`
	Extensions       []string        `json:"extensions,omitempty"       jsonschema:"additional file extensions to check"                        toml:"extensions,omitempty"       yaml:"extensions,omitempty"`
	Jobs             int             `json:"jobs,omitempty"             jsonschema:"number of files processed concurrently"                     toml:"jobs,omitempty"             yaml:"jobs,omitempty"`
	DiscardExtraTags bool            `json:"discardExtraTags,omitempty" jsonschema:"discard tags that are not part of the template"             toml:"discardExtraTags,omitempty" yaml:"discardExtraTags,omitempty"`
	BumpYear         bool            `json:"bumpYear,omitempty"         jsonschema:"extend template copyright years to the current year"        toml:"bumpYear,omitempty"         yaml:"bumpYear,omitempty"`
}

// Find returns the path of the first settings file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range SettingsFiles {
		path := filepath.Join(dir, name)

		fi, err := os.Stat(path)
		if err == nil && fi.Mode().IsRegular() {
			return path, true
		}
	}

	return "", false
}

// Load reads the settings file at path. The format is chosen by extension:
// YAML for ".yaml" and ".yml", TOML for ".toml". Unknown keys are rejected.
func Load(path string) (*Settings, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Settings path from CLI flag or project lookup.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSettings, err)
	}

	var s Settings

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.UnmarshalWithOptions(b, &s, yaml.DisallowUnknownField())
		if err != nil {
			return nil, fmt.Errorf("%w: %s:\n%s", ErrInvalidSettings, path, yaml.FormatError(err, false, true))
		}

	case ".toml":
		md, err := toml.Decode(string(b), &s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}

			return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
		}

	default:
		return nil, fmt.Errorf("%w: %s: unsupported format %q", ErrInvalidSettings, path, ext)
	}

	err = s.validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
	}

	if s.HeaderFile != "" && !filepath.IsAbs(s.HeaderFile) {
		s.HeaderFile = filepath.Join(filepath.Dir(path), filepath.FromSlash(s.HeaderFile))
	}

	return &s, nil
}

func (s *Settings) validate() error {
	if s.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", s.Jobs)
	}

	var errs []error
	for _, r := range s.Exclude {
		errs = append(errs, r.Validate())
	}

	return errors.Join(errs...)
}

// FindHeaderFile returns the header template of the project in dir:
// ".licence-header", or the legacy "tools/HEADER".
func FindHeaderFile(dir string) (string, error) {
	for _, name := range HeaderFiles {
		path := filepath.Join(dir, name)

		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoHeaderFile, dir)
}

// Schema returns the JSON Schema describing [Settings].
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("generating settings schema: %w", err)
	}

	s.Title = "headercheck settings"
	s.Description = "Settings read from " + strings.Join(SettingsFiles, ", ") + "."

	return s, nil
}

// SchemaJSON returns the indented JSON encoding of [Schema].
func SchemaJSON() ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings schema: %w", err)
	}

	return append(b, '\n'), nil
}

package discover_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/headercheck/discover"
)

var commonTree = []string{
	".git/hooks/pre-commit.sh",
	".github/workflows/ci.yml",
	".gitlab-ci.yml",
	"bin/console",
	"config/config.php",
	"lib/bundles/app.js",
	"lib/index.php",
	"lib/other/vendor.js",
	"node_modules/pkg/index.js",
	"public/app.js",
	"public/lib/bundle.js",
	"README.md",
	"src/Foo.php",
	"src/style.SCSS",
	"templates/page.html.twig",
	"tools/gen.pl",
	"vendor/pkg/src/Bar.php",
}

func writeFiles(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o600))
	}
}

func TestWalkerFiles(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		extra []string
		opts  []discover.Option
		want  []string
	}{
		"plain project": {
			want: []string{
				"bin/console",
				"config/config.php",
				"lib/bundles/app.js",
				"lib/index.php",
				"lib/other/vendor.js",
				"public/app.js",
				"src/Foo.php",
				"src/style.SCSS",
				"templates/page.html.twig",
				"tools/gen.pl",
			},
		},
		"glpi root": {
			extra: []string{"composer.json"},
			want: []string{
				"bin/console",
				"lib/bundles/app.js",
				"lib/index.php",
				"public/app.js",
				"src/Foo.php",
				"src/style.SCSS",
				"templates/page.html.twig",
				"tools/gen.pl",
			},
		},
		"plugin root": {
			extra: []string{"setup.php", "hook.php"},
			want: []string{
				"bin/console",
				"config/config.php",
				"hook.php",
				"public/app.js",
				"setup.php",
				"src/Foo.php",
				"src/style.SCSS",
				"templates/page.html.twig",
				"tools/gen.pl",
			},
		},
		"extra rules and extensions": {
			opts: []discover.Option{
				discover.WithExclusions(discover.ParseRule(`lib/.+ !lib/index\.php`), discover.Rule{Pattern: `tools`}),
				discover.WithExtensions(".md"),
			},
			want: []string{
				"README.md",
				"bin/console",
				"config/config.php",
				"lib/index.php",
				"public/app.js",
				"src/Foo.php",
				"src/style.SCSS",
				"templates/page.html.twig",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, commonTree...)
			writeFiles(t, dir, tc.extra...)

			if len(tc.extra) > 0 && tc.extra[0] == "composer.json" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"),
					[]byte(`{"name": "glpi/glpi", "type": "project"}`), 0o600))
			}

			opts := append([]discover.Option{
				discover.WithExclusions(discover.DefaultExclusions(dir)...),
			}, tc.opts...)

			w, err := discover.NewWalker(dir, opts...)
			require.NoError(t, err)

			got, err := w.Files(t.Context())
			require.NoError(t, err)

			want := make([]string, len(tc.want))
			for i, f := range tc.want {
				want[i] = filepath.Join(dir, filepath.FromSlash(f))
			}

			assert.Equal(t, want, got)
		})
	}
}

func TestNewWalkerErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "file.php")

	tcs := map[string]struct {
		err  error
		root string
		opts []discover.Option
	}{
		"missing directory": {
			root: filepath.Join(dir, "missing"),
			err:  discover.ErrInvalidDirectory,
		},
		"file as root": {
			root: filepath.Join(dir, "file.php"),
			err:  discover.ErrInvalidDirectory,
		},
		"bad pattern": {
			root: dir,
			opts: []discover.Option{discover.WithExclusions(discover.Rule{Pattern: `lib/(`})},
			err:  discover.ErrInvalidRule,
		},
		"bad exception": {
			root: dir,
			opts: []discover.Option{discover.WithExclusions(discover.Rule{Pattern: `lib`, Except: `[`})},
			err:  discover.ErrInvalidRule,
		},
		"empty pattern": {
			root: dir,
			opts: []discover.Option{discover.WithExclusions(discover.Rule{Pattern: " "})},
			err:  discover.ErrInvalidRule,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := discover.NewWalker(tc.root, tc.opts...)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestWalkerFilesCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.php")

	w, err := discover.NewWalker(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = w.Files(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWalkerRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	w, err := discover.NewWalker(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Root()))
	assert.Equal(t, dir, w.Root())
}

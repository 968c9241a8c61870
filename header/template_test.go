package header_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/headercheck/header"
	"go.jacobcolvin.com/headercheck/stringtest"
)

func TestNewTemplate(t *testing.T) {
	t.Parallel()

	tmpl := header.NewTemplate("Example\n\n@license MIT")

	assert.Equal(t, stringtest.Lines("Example", "", "@license MIT"), tmpl.Lines())
	assert.Equal(t, "Example\n\n@license MIT\n", tmpl.String())

	// Lines returns a copy.
	lines := tmpl.Lines()
	lines[0] = "changed\n"
	assert.Equal(t, "Example\n", tmpl.Lines()[0])
}

func TestTemplateBumpYear(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"notice range": {
			input: "Copyright (c) 2015-2020 Foo\n",
			want:  "Copyright © 2015-2026 Foo\n",
		},
		"notice single year": {
			input: "Copyright © 2020 Foo\n",
			want:  "Copyright © 2026 Foo\n",
		},
		"notice case insensitive": {
			input: "copyright (C) 2020 Foo\n",
			want:  "Copyright © 2026 Foo\n",
		},
		"tag single year": {
			input: "@copyright 2015 Foo\n",
			want:  "@copyright 2015-2026 Foo\n",
		},
		"tag range": {
			input: "@copyright 2015-2020 Foo\n",
			want:  "@copyright 2015-2026 Foo\n",
		},
		"tag current year": {
			input: "@copyright 2026 Foo\n",
			want:  "@copyright 2026 Foo\n",
		},
		"copyleft tag": {
			input: "  @copyleft 2020 Foo\n",
			want:  "  @copyleft 2020-2026 Foo\n",
		},
		"unrelated lines": {
			input: "@license MIT\nBuilt in 2020 by Foo\n",
			want:  "@license MIT\nBuilt in 2020 by Foo\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tmpl := header.NewTemplate(tc.input)
			got := tmpl.BumpYear(2026)

			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, tc.input, tmpl.String(), "source template must not change")
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	good := filepath.Join(dir, "HEADER")
	require.NoError(t, os.WriteFile(good, []byte("Example\n"), 0o600))

	empty := filepath.Join(dir, "EMPTY")
	require.NoError(t, os.WriteFile(empty, []byte(" \n\n"), 0o600))

	tmpl, err := header.LoadTemplate(good)
	require.NoError(t, err)
	assert.Equal(t, "Example\n", tmpl.String())

	_, err = header.LoadTemplate(empty)
	require.ErrorIs(t, err, header.ErrMissingTemplate)

	_, err = header.LoadTemplate(filepath.Join(dir, "nope"))
	require.ErrorIs(t, err, header.ErrMissingTemplate)
	require.ErrorIs(t, err, os.ErrNotExist)
}

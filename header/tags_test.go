package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/headercheck/header"
	"go.jacobcolvin.com/headercheck/stringtest"
)

func TestExtractTags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want   header.TagTable
		prefix string
		lines  []string
	}{
		"prefixed tags": {
			prefix: " * ",
			lines: stringtest.Lines(
				"/**",
				" * Project",
				" *",
				" * @copyright 2015 Foo",
				" * @author    Jane",
				" * @author    John",
				" */",
			),
			want: header.TagTable{
				"copyright": {"2015 Foo"},
				"author":    {"Jane", "John"},
			},
		},
		"unprefixed and indented tags": {
			prefix: "# ",
			lines:  stringtest.Lines("@link https://example.com", "   @Since 1.0"),
			want: header.TagTable{
				"link":  {"https://example.com"},
				"Since": {"1.0"},
			},
		},
		"value keeps inner spaces": {
			prefix: "-- ",
			lines:  stringtest.Lines("-- @license GNU GPL v3"),
			want: header.TagTable{
				"license": {"GNU GPL v3"},
			},
		},
		"not tags": {
			prefix: " * ",
			lines:  stringtest.Lines(" * mail me at foo@example.com", " * @", " * @author", " * @v2 x"),
			want:   header.TagTable{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := header.ExtractTags(tc.lines, tc.prefix)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMergeTags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		extra       header.TagTable
		body        []string
		want        []string
		wantDropped []string
	}{
		"no tags anywhere": {
			body: stringtest.Lines("Project"),
			want: stringtest.Lines("Project"),
		},
		"extra tags appended to body without tags": {
			body:  stringtest.Lines("Project"),
			extra: header.TagTable{"author": {"Jane"}},
			want:  stringtest.Lines("Project", "@author Jane"),
		},
		"copyright merged when appended to body without tags": {
			body:  stringtest.Lines("Project"),
			extra: header.TagTable{"copyright": {"2015 Foo", "2020 Foo", "Foo and contributors"}},
			want: stringtest.Lines(
				"Project",
				"@copyright 2015-2020 Foo",
			),
			wantDropped: []string{"Foo and contributors"},
		},
		"tags replaced at first tag position": {
			body:  stringtest.Lines("A", "@b 1", "mid", "@a 2", "end"),
			extra: header.TagTable{"a": {"3", "2"}},
			want:  stringtest.Lines("A", "@a 2", "@a 3", "@b 1", "mid", "end"),
		},
		"names padded to longest": {
			body:  stringtest.Lines("@copyright 2024 Foo", "@license MIT"),
			extra: header.TagTable{"author": {"Jane"}},
			want: stringtest.Lines(
				"@author    Jane",
				"@copyright 2024 Foo",
				"@license   MIT",
			),
		},
		"copyright ranges merged": {
			body:  stringtest.Lines("@copyright 2024 Foo"),
			extra: header.TagTable{"copyright": {"2015 Foo", "2020 Bar"}},
			want: stringtest.Lines(
				"@copyright 2015-2024 Foo",
				"@copyright 2020 Bar",
			),
		},
		"unparseable copyright dropped": {
			body:        stringtest.Lines("@copyright 2024 Foo"),
			extra:       header.TagTable{"copyright": {"Foo and contributors"}},
			want:        stringtest.Lines("@copyright 2024 Foo"),
			wantDropped: []string{"Foo and contributors"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, dropped := header.MergeTags(tc.body, tc.extra, "")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantDropped, dropped)
		})
	}
}

func TestMergeTagsPrefixed(t *testing.T) {
	t.Parallel()

	body := stringtest.Lines(" * Project", " *", " * @copyright 2024 Foo", " * @license   MIT")

	got, dropped := header.MergeTags(body, header.TagTable{"license": {"MIT"}}, " * ")
	assert.Empty(t, dropped)
	assert.Equal(t, stringtest.Lines(
		" * Project",
		" *",
		" * @copyright 2024 Foo",
		" * @license   MIT",
	), got)
}

func TestTagTableNames(t *testing.T) {
	t.Parallel()

	tags := header.TagTable{}
	tags.Add("link", "x")
	tags.Add("author", "a")
	tags.Add("link", "y")

	assert.Equal(t, []string{"author", "link"}, tags.Names())
	assert.Equal(t, []string{"x", "y"}, tags["link"])
}

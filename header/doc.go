// Package header detects and normalizes licence headers in source files.
//
// A licence header is the comment block at the top of a file holding the
// project's copyright and licence notice. Given a canonical [Template], a
// [Checker] classifies each file as valid, missing or outdated, and can
// regenerate the file with its header synchronized to the template while
// keeping the "@tag value" metadata already present in the header.
//
// # Pipeline
//
// Checking a file runs through the following steps:
//
//  1. Resolve a [Profile]: the comment syntax for the file type, looked up
//     by extension in a [Profiles] table. Files without an extension are
//     resolved from their shebang line, see [ShebangExtension]. Unknown
//     extensions use [DefaultProfile].
//
//  2. Classify lines: [Classify] splits the file into [Segments], the lines
//     before the header, the header itself and the lines after it. PHP
//     opening tags, shebangs, bundler markers and blank lines may precede a
//     header; any other line found before a header start marks the header
//     as missing.
//
//  3. Extract tags: [ExtractTags] reads "@name value" lines from the current
//     header into a [TagTable], unless extra tags are discarded.
//
//  4. Render: [Render] prefixes each template line with the profile's line
//     prefix, merges the extracted tags into the template tags with
//     [MergeTags] and wraps the result in the profile's delimiters.
//     Copyright values are collapsed into year ranges by [DedupeCopyright].
//
//  5. Compare and reassemble: a header is outdated when its lines differ
//     from the canonical lines, delimiter lines excluded, see [Outdated].
//     [Assemble] rebuilds the file around the canonical header.
//
// Regeneration is idempotent: checking a fixed file reports it as valid.
//
// # Comment profiles
//
// The built-in profiles are:
//
//   - [HashProfile]: pl, sh, yaml and yml files, "# " prefixed lines between
//     "#" lines. The header ends at the first line not starting with "#".
//   - [SQLProfile]: sql files, "-- " prefixed lines between "--" lines.
//   - [CSSProfile]: css and scss files, "/*! ... */" blocks.
//   - [TwigProfile]: twig files, "{# ... #}" blocks.
//   - [DefaultProfile]: everything else, "/** ... */" blocks.
//
// # Copyright ranges
//
// Copyright and copyleft tag values holding a year or a year range are
// grouped by their surrounding text. A header holding "@copyright 2015 Foo"
// checked against a template holding "@copyright 2024 Foo" renders
// "@copyright 2015-2024 Foo". Values without a year cannot be grouped; they
// are left out of the rendered header and reported in [Result.Dropped].
//
// # Usage
//
//	tmpl, err := header.LoadTemplate(".licence-header")
//	if err != nil {
//	    return err
//	}
//
//	checker := header.NewChecker(tmpl)
//	report, err := checker.Run(ctx, paths, header.RunOptions{Fix: true})
package header

// Package project loads per-project headercheck settings.
//
// Settings live in ".headercheck.yaml", ".headercheck.yml" or
// ".headercheck.toml" at the project root:
//
//	headerFile: tools/HEADER
//	discardExtraTags: true
//	exclude:
//	  - pattern: lib/.+
//	    except: lib/bundles
//	extensions: [vue]
//
// Use [Find] and [Load] to read them, and [Schema] to describe them for
// editors.
package project

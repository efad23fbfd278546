// Package textutil provides text processing utilities for slug derivation and
// display titles.
//
// Quiz names supplied by the operator become filesystem slugs: lowercased,
// trimmed, with every run of whitespace collapsed to a single hyphen. The slug
// names both the asset directory and the video directory for a run, so the
// derivation must be stable for the lifetime of the tool.
package textutil

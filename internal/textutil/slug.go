package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Slugify converts an operator-supplied quiz name into a directory slug.
// The name is trimmed, lowercased, and every whitespace run collapses to a
// single hyphen. Applying Slugify to its own output is a no-op.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-'
	})
	return strings.Join(fields, "-")
}

// TitleFromSlug turns a slug back into a human-readable title, e.g.
// "geography-quiz" becomes "Geography Quiz". Used for default publish titles.
func TitleFromSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	return titleCaser.String(strings.Join(strings.Split(slug, "-"), " "))
}

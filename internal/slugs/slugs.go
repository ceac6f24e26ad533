// Package slugs turns decision titles into the file name component of a
// record, e.g. "New Decision Record" -> "new-decision-record".
//
// Two styles exist:
//   - conservative (default): keeps the title's characters, only removing
//     those that are invalid in a file name on any supported platform.
//   - ascii: transliterates to a plain ASCII slug using gosimple/slug.
package slugs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// Style selects a slugging strategy.
type Style string

const (
	StyleConservative Style = "conservative"
	StyleASCII        Style = "ascii"
)

// invalidFileNameChars is fixed rather than queried from the host OS so the
// same title yields the same file name everywhere.
const invalidFileNameChars = `\/:*?"<>|`

var dashRuns = regexp.MustCompile(`-+`)

// ParseStyle validates a style name. Empty selects the default style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleConservative:
		return StyleConservative, nil
	case StyleASCII:
		return StyleASCII, nil
	default:
		return "", fmt.Errorf("unknown slug style %q (want %q or %q)", s, StyleConservative, StyleASCII)
	}
}

// Slug applies the conservative rule: trim, drop invalid file name and
// control characters, spaces to dashes, lowercase, collapse dash runs.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case strings.ContainsRune(invalidFileNameChars, r), unicode.IsControl(r):
			continue
		case r == ' ':
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return dashRuns.ReplaceAllString(strings.ToLower(b.String()), "-")
}

// Make slugs title with the given style. An ascii slug that comes out empty
// (e.g. a title written entirely in punctuation) falls back to Slug.
func Make(title string, style Style) string {
	if style == StyleASCII {
		if s := goslug.Make(title); s != "" {
			return s
		}
	}
	return Slug(title)
}

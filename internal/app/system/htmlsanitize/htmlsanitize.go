// Package htmlsanitize strips markup from free-text fields typed into duty
// sheets (bed, duty, team) before they are stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds the unescape/sanitize loop for deeply nested entities.
const maxPasses = 8

// PlainText removes all tags and returns trimmed, unescaped text.
// Entities are decoded before sanitizing and the pass repeats until the
// value stops changing, so PlainText(PlainText(s)) == PlainText(s).
func PlainText(s string) string {
	for i := 0; i < maxPasses && s != ""; i++ {
		next := strings.TrimSpace(html.UnescapeString(strict.Sanitize(html.UnescapeString(s))))
		if next == s {
			break
		}
		s = next
	}
	return s
}

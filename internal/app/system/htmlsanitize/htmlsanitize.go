// Package htmlsanitize strips unsafe markup from crew-supplied text before
// it is persisted or rendered.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc allows the basic formatting tags bluemonday considers safe for
	// user-generated content (used for obstacle descriptions).
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup, leaving plain text (used for names, mast
	// types, categories — fields that are never rendered as HTML).
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans user-generated HTML, keeping safe formatting tags and
// removing scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// PlainText strips all markup from s.
func PlainText(s string) string {
	return strict.Sanitize(s)
}

// Package sanitize strips dangerous markup from rich-text bodies.
// Article and forum content arrives as untrusted HTML produced by a
// WYSIWYG editor; it must pass through here before any rendering.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// HTML returns the input with scripts, event handlers, and other
// unsafe constructs removed. Formatting tags survive.
func HTML(input string) string {
	return policy.Sanitize(input)
}

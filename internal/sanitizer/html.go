// Package sanitizer cleans user-submitted text before it is stored.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	richPolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// rich-editor output: headings, lists, tables, links, images
		richPolicy = bluemonday.UGCPolicy()
		richPolicy.RequireNoFollowOnLinks(true)
		richPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// RichText keeps safe formatting from a rich-text editor and drops
// scripts, event handlers and javascript: URLs. Used for post bodies and
// comments, which are rendered unescaped.
func RichText(s string) string {
	initPolicies()
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// PlainText strips every tag and returns unescaped text; templates do the
// escaping on output. Used for titles, subtitles and names.
func PlainText(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

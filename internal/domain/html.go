package domain

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy strips every tag; providers embed markup in event descriptions.
var htmlPolicy = bluemonday.StrictPolicy()

// CleanHTML strips tags and unescapes entities, returning plain trimmed text.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(htmlPolicy.Sanitize(s)))
}

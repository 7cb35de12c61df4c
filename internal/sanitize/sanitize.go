// Package sanitize strips markup from card field text before it is sent
// to the translation service.
package sanitize

import "regexp"

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes HTML tags from s. Entities are left as they are and
// whitespace is not touched.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	return htmlTagRe.ReplaceAllString(s, "")
}

package agent

import (
	"regexp"
	"strings"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reSlugStrip  = regexp.MustCompile(`[^a-z0-9-]`)
	reDashes     = regexp.MustCompile(`-{2,}`)
)

const fallbackSlug = "agent"

// NormalizeSlug lowercases, turns whitespace runs into '-', and strips
// anything outside [a-z0-9-].
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reWhitespace.ReplaceAllString(s, "-")
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugFor picks the requested slug when usable, else derives one from the
// agent's name.
func SlugFor(requested, name string) string {
	if s := NormalizeSlug(requested); s != "" {
		return s
	}
	if s := NormalizeSlug(name); s != "" {
		return s
	}
	return fallbackSlug
}

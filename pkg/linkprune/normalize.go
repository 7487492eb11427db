package linkprune

import (
	"net/url"
	"strings"
)

// normalizeBase is a private base used to resolve relative hrefs so that
// "/a", "a/" and "https://site.com/a/" all reduce to the same path key.
// The host never appears in a key; only the resolved path matters.
var normalizeBase = &url.URL{Scheme: "https", Host: "linkprune.invalid", Path: "/"}

// nonNavigationalSchemes are href schemes that never represent a
// navigable destination and are excluded from the link inventory.
var nonNavigationalSchemes = []string{"javascript", "mailto", "tel"}

// NormalizeHref canonicalizes a raw href into a grouping key.
// The second return value is false when the href is not a real
// navigational link (empty, bare fragment, or an excluded scheme) and the
// anchor should be skipped entirely.
//
// Two hrefs that differ only by scheme, absolute vs relative form,
// trailing slash, query, or fragment normalize identically.
func NormalizeHref(href string) (string, bool) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" || trimmed == "#" {
		return "", false
	}
	if hasNonNavigationalScheme(trimmed) {
		return "", false
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		// Never propagate a parse failure: degrade to a literal key that
		// is less canonical but still comparable.
		return literalKey(trimmed), true
	}

	path := strings.ToLower(normalizeBase.ResolveReference(u).Path)
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path, true
}

func hasNonNavigationalScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range nonNavigationalSchemes {
		if strings.HasPrefix(lower, scheme+":") {
			return true
		}
	}
	return false
}

// literalKey strips the query string and fragment by literal splitting and
// lower-cases the remainder.
func literalKey(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	return strings.ToLower(href)
}

// warnableBroken reports whether a skipped href deserves a broken-link
// warning. The bare fragment and deliberately non-navigational schemes are
// exempt; they are authoring choices, not mistakes.
func warnableBroken(href string) bool {
	trimmed := strings.TrimSpace(href)
	if trimmed == "#" || hasNonNavigationalScheme(trimmed) {
		return false
	}
	return href != ""
}

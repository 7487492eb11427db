package linkprune

import "testing"

func TestNormalizeHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		key  string
		ok   bool
	}{
		{name: "empty", href: "", ok: false},
		{name: "whitespace only", href: "   ", ok: false},
		{name: "bare fragment", href: "#", ok: false},
		{name: "javascript scheme", href: "javascript:void(0)", ok: false},
		{name: "mailto scheme", href: "mailto:hi@example.com", ok: false},
		{name: "tel scheme", href: "tel:+123456", ok: false},
		{name: "absolute url", href: "https://x.com/a", key: "/a", ok: true},
		{name: "absolute with trailing slash", href: "https://x.com/a/", key: "/a", ok: true},
		{name: "scheme relative", href: "//x.com/a/", key: "/a", ok: true},
		{name: "root relative", href: "/a", key: "/a", ok: true},
		{name: "query and fragment discarded", href: "/a?x=1#y", key: "/a", ok: true},
		{name: "bare relative with slash", href: "a/", key: "/a", ok: true},
		{name: "case folded", href: "/Articles/Widgets", key: "/articles/widgets", ok: true},
		{name: "root path survives", href: "https://x.com/", key: "/", ok: true},
		{name: "host only", href: "https://x.com", key: "/", ok: true},
		{name: "fragment on path", href: "/guide#top", key: "/guide", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := NormalizeHref(tt.href)
			if ok != tt.ok {
				t.Fatalf("NormalizeHref(%q) ok = %v, expected %v", tt.href, ok, tt.ok)
			}
			if ok && key != tt.key {
				t.Errorf("NormalizeHref(%q) = %q, expected %q", tt.href, key, tt.key)
			}
		})
	}
}

func TestNormalizeHrefEquivalence(t *testing.T) {
	// Differently authored hrefs for the same logical path must collapse
	// to one key.
	hrefs := []string{"https://x.com/a/", "/a", "/a?x=1#y", "a/", "http://other.com/a"}

	first, ok := NormalizeHref(hrefs[0])
	if !ok {
		t.Fatalf("expected %q to normalize", hrefs[0])
	}
	for _, href := range hrefs[1:] {
		key, ok := NormalizeHref(href)
		if !ok {
			t.Fatalf("expected %q to normalize", href)
		}
		if key != first {
			t.Errorf("NormalizeHref(%q) = %q, expected %q", href, key, first)
		}
	}
}

func TestWarnableBroken(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"#", false},
		{" # ", false},
		{"javascript:void(0)", false},
		{"mailto:x@y.com", false},
		{"tel:+12345", false},
		{"   ", true},
	}

	for _, tt := range tests {
		if got := warnableBroken(tt.href); got != tt.want {
			t.Errorf("warnableBroken(%q) = %v, expected %v", tt.href, got, tt.want)
		}
	}
}

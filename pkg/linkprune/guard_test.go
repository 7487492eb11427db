package linkprune

import (
	"strings"
	"testing"
)

func TestProtectTemplates(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		placeholders []string
	}{
		{
			name:         "no expressions",
			html:         `<p>Hello</p>`,
			placeholders: nil,
		},
		{
			name:         "single expression",
			html:         `<p>{{ title }}</p>`,
			placeholders: []string{"{{ title }}"},
		},
		{
			name:         "expression inside attribute",
			html:         `<a href="{{ product.url }}">link</a>`,
			placeholders: []string{"{{ product.url }}"},
		},
		{
			name:         "multiple expressions",
			html:         `{{ a }} text {{ b }}`,
			placeholders: []string{"{{ a }}", "{{ b }}"},
		},
		{
			name:         "adjacent expressions",
			html:         `{{ a }}{{ b }}`,
			placeholders: []string{"{{ a }}", "{{ b }}"},
		},
		{
			name:         "single closing brace inside body",
			html:         `{{ a } b }}`,
			placeholders: []string{"{{ a } b }}"},
		},
		{
			name:         "stops at first double close",
			html:         `{{ a }} trailing }}`,
			placeholders: []string{"{{ a }}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guarded, placeholders := ProtectTemplates(tt.html)

			if len(placeholders) != len(tt.placeholders) {
				t.Fatalf("expected %d placeholders, got %d: %v",
					len(tt.placeholders), len(placeholders), placeholders)
			}
			for i, want := range tt.placeholders {
				if placeholders[i] != want {
					t.Errorf("placeholder %d: expected %q, got %q", i, want, placeholders[i])
				}
			}
			if len(placeholders) > 0 && strings.Contains(guarded, "{{") {
				t.Errorf("guarded html still contains template syntax: %s", guarded)
			}
		})
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"<p>plain</p>",
		"{{ one }}",
		"{{ a }}{{ b }}{{ c }}",
		`<a href="{{ url }}" title="{{ title }}">{{ label }}</a>`,
		"{{ a } b }} and {{ c }}",
		"prefix {{ x }} middle {{ y }} suffix",
	}

	for _, input := range inputs {
		guarded, placeholders := ProtectTemplates(input)
		restored := RestoreTemplates(guarded, placeholders)
		if restored != input {
			t.Errorf("round trip mismatch:\n input: %q\noutput: %q", input, restored)
		}
	}
}

func TestRestoreTemplatesIdentity(t *testing.T) {
	html := "<p>__LP_TPL_0__ stays as-is without placeholders</p>"
	if got := RestoreTemplates(html, nil); got != html {
		t.Errorf("expected identity with empty placeholder list, got %q", got)
	}
}

func TestRestoreTemplatesOutOfRange(t *testing.T) {
	html := "__LP_TPL_5__"
	if got := RestoreTemplates(html, []string{"{{ a }}"}); got != html {
		t.Errorf("expected out-of-range token untouched, got %q", got)
	}
}

package fetcher

import "testing"

func TestNeedsJavaScript(t *testing.T) {
	tests := []struct {
		name    string
		content PageContent
		want    bool
	}{
		{
			name: "react root marker",
			content: PageContent{
				HTML: `<html><body><div id="root"></div></body></html>`,
				Text: "",
			},
			want: true,
		},
		{
			name: "short text with loading indicator",
			content: PageContent{
				HTML: `<html><body><p>Loading...</p></body></html>`,
				Text: "Loading...",
			},
			want: true,
		},
		{
			name: "noscript javascript warning",
			content: PageContent{
				HTML: `<html><body><noscript>Please enable JavaScript</noscript><article>` + longText() + `</article></body></html>`,
				Text: longText(),
			},
			want: true,
		},
		{
			name: "plain static article",
			content: PageContent{
				HTML: `<html><body><article>` + longText() + `</article></body></html>`,
				Text: longText(),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsJavaScript(tt.content); got != tt.want {
				t.Errorf("needsJavaScript() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBetween(t *testing.T) {
	got := extractBetween("a<x>inner</x>b", "<x>", "</x>")
	if got != "inner" {
		t.Errorf("extractBetween() = %q, want %q", got, "inner")
	}

	if got := extractBetween("no markers here", "<x>", "</x>"); got != "" {
		t.Errorf("extractBetween() with missing markers = %q, want empty", got)
	}
}

func longText() string {
	s := "This is a reasonably long article paragraph with plenty of readable content. "
	return s + s
}

package linkprune

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// fallbackParentTag is reported when no allow-listed block ancestor exists.
const fallbackParentTag = "div"

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseText trims and collapses runs of whitespace to single spaces.
func collapseText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// classifier evaluates the per-anchor heuristics. All predicates are
// stateless; the struct only caches derived config (compiled keyword
// regexp, joined selectors).
type classifier struct {
	config        *Config
	ctaClassRe    *regexp.Regexp
	blockSelector string
}

func newClassifier(cfg *Config) *classifier {
	escaped := make([]string, len(cfg.CTAClassKeywords))
	for i, kw := range cfg.CTAClassKeywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return &classifier{
		config:        cfg,
		ctaClassRe:    regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`),
		blockSelector: strings.Join(cfg.ParentBlockTags, ", "),
	}
}

// isImageLink reports whether the anchor wraps an image and nothing else
// that carries visible text. Direct text nodes count against it, as does
// any child element that itself contains no image; a child that does
// contain an image contributes nothing even if it also holds text.
func (c *classifier) isImageLink(a *goquery.Selection) bool {
	if a.Find("img").Length() == 0 {
		return false
	}
	if len(a.Nodes) == 0 {
		return false
	}

	var text strings.Builder
	for n := a.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "img" || containsImage(n) {
				continue
			}
			collectText(n, &text)
		}
	}
	return strings.TrimSpace(text.String()) == ""
}

func containsImage(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "img" {
			return true
		}
		if containsImage(c) {
			return true
		}
	}
	return false
}

func collectText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else {
			collectText(c, b)
		}
	}
}

// isCtaLink reports whether the anchor looks like a call-to-action button:
// a CTA keyword in its own class list, an action phrase leading its text,
// or a CTA keyword in the immediate parent's class list.
func (c *classifier) isCtaLink(a *goquery.Selection, text string) bool {
	if class, ok := a.Attr("class"); ok && c.ctaClassRe.MatchString(class) {
		return true
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range c.config.CTATextPhrases {
		if !strings.HasPrefix(lower, phrase) {
			continue
		}
		rest := lower[len(phrase):]
		if rest != "" && isWordRune(rune(rest[0])) {
			// "shopping" is not "shop".
			continue
		}
		// Button text is short. A leading phrase followed by more than one
		// extra word ("Buy the Widget") is prose, not a call to action.
		if len(strings.Fields(lower)) <= len(strings.Fields(phrase))+1 {
			return true
		}
	}

	if parent := a.Parent(); parent.Length() > 0 {
		if class, ok := parent.Attr("class"); ok && c.ctaClassRe.MatchString(class) {
			return true
		}
	}
	return false
}

// isInHeading reports whether any ancestor of the anchor is a heading.
func (c *classifier) isInHeading(a *goquery.Selection) bool {
	return a.Closest(headingSelector).Length() > 0
}

// parentTag returns the tag name of the nearest allow-listed block
// container ancestor.
func (c *classifier) parentTag(a *goquery.Selection) string {
	block := a.Closest(c.blockSelector)
	if block.Length() == 0 {
		return fallbackParentTag
	}
	return goquery.NodeName(block)
}

// isExternal reports whether the href points off-site. It requires a
// configured domain and an absolute (or scheme-relative) href; everything
// else, including parse failures, is treated as internal.
func (c *classifier) isExternal(href string) bool {
	if c.config.Domain == "" {
		return false
	}
	trimmed := strings.TrimSpace(href)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		return false
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return false
	}
	return !strings.Contains(strings.ToLower(u.Host), strings.ToLower(c.config.Domain))
}

// contextExcerpt returns the text of the anchor's enclosing block with a
// window of ContextRadius characters around the anchor's own text. When
// the anchor text cannot be located verbatim (nested markup, empty text),
// the leading ContextFallbackLen characters of the block are used instead.
func (c *classifier) contextExcerpt(a *goquery.Selection, anchorText string) string {
	block := a.Closest(c.blockSelector)
	if block.Length() == 0 {
		block = a.Parent()
	}
	blockText := collapseText(block.Text())

	if anchorText == "" {
		return leadingExcerpt(blockText, c.config.ContextFallbackLen)
	}
	byteIdx := strings.Index(blockText, anchorText)
	if byteIdx < 0 {
		return leadingExcerpt(blockText, c.config.ContextFallbackLen)
	}

	runes := []rune(blockText)
	start := utf8.RuneCountInString(blockText[:byteIdx])
	end := start + utf8.RuneCountInString(anchorText)

	radius := c.config.ContextRadius
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(runes) {
		to = len(runes)
	}

	excerpt := string(runes[from:to])
	if from > 0 {
		excerpt = "..." + excerpt
	}
	if to < len(runes) {
		excerpt += "..."
	}
	return excerpt
}

func leadingExcerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

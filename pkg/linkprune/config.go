// Package linkprune analyzes the hyperlinks of an HTML article, groups them
// by normalized destination, and decides which redundant occurrences to
// unwrap. It is a heuristic SEO-cleanup pass: anchors that repeat a
// destination already linked earlier in the article are removed while their
// inner content is preserved.
package linkprune

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config defines all configuration options for the link analyzer.
// The heuristic keyword and phrase tables are plain data so they can be
// tuned and tested independently of the classification logic.
type Config struct {
	// Domain is the site's own domain. Links whose host does not contain
	// it are classified external. Empty disables externality checks.
	Domain string `json:"domain"`

	// CTAClassKeywords are class-attribute keywords (matched as whole
	// words, case-insensitive) that mark an anchor or its parent as a
	// call-to-action element.
	CTAClassKeywords []string `json:"cta_class_keywords" validate:"min=1,dive,required"`

	// CTATextPhrases are action phrases matched case-insensitively at the
	// start of an anchor's text.
	CTATextPhrases []string `json:"cta_text_phrases" validate:"min=1,dive,required"`

	// ParentBlockTags is the allow-list of block-level container tags used
	// to find an anchor's semantically meaningful ancestor.
	ParentBlockTags []string `json:"parent_block_tags" validate:"min=1,dive,required"`

	// DensityThreshold is the number of valid anchors within a single
	// paragraph that triggers a density warning.
	DensityThreshold int `json:"density_threshold" validate:"min=1"`

	// ContextRadius is the number of characters kept on each side of the
	// anchor text in a context excerpt.
	ContextRadius int `json:"context_radius" validate:"min=0"`

	// ContextFallbackLen is the excerpt length used when the anchor text
	// cannot be located verbatim inside its block.
	ContextFallbackLen int `json:"context_fallback_len" validate:"min=1"`
}

// DefaultConfig returns the configuration used throughout unless overridden.
func DefaultConfig() *Config {
	return &Config{
		CTAClassKeywords: []string{
			"button",
			"cta",
			"shop-now",
			"buy-now",
			"add-to-cart",
		},
		CTATextPhrases: []string{
			"shop",
			"buy",
			"order",
			"add to cart",
			"get it",
			"check price",
			"see price",
			"view deal",
			"view product",
			"learn more",
		},
		ParentBlockTags: []string{
			"p", "li", "td", "th",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"blockquote", "figcaption", "dt", "dd",
		},
		DensityThreshold:   5,
		ContextRadius:      30,
		ContextFallbackLen: 80,
	}
}

// Validate checks structural validity of the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Merge merges another config into this one and returns the result.
// Scalar fields from other win when set; keyword tables are appended
// with duplicates removed.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c

	if other.Domain != "" {
		merged.Domain = other.Domain
	}
	if other.DensityThreshold > 0 {
		merged.DensityThreshold = other.DensityThreshold
	}
	if other.ContextRadius > 0 {
		merged.ContextRadius = other.ContextRadius
	}
	if other.ContextFallbackLen > 0 {
		merged.ContextFallbackLen = other.ContextFallbackLen
	}

	merged.CTAClassKeywords = appendUnique(merged.CTAClassKeywords, other.CTAClassKeywords)
	merged.CTATextPhrases = appendUnique(merged.CTATextPhrases, other.CTATextPhrases)
	merged.ParentBlockTags = appendUnique(merged.ParentBlockTags, other.ParentBlockTags)

	return &merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[strings.ToLower(s)] = true
	}
	out := base
	for _, s := range extra {
		key := strings.ToLower(s)
		if !seen[key] {
			out = append(out, s)
			seen[key] = true
		}
	}
	return out
}

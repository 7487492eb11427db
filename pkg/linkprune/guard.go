package linkprune

import (
	"fmt"
	"regexp"
	"strconv"
)

// Templating expressions like {{ product.name }} would be mangled by HTML
// parsing and re-serialization (quote corruption, entity escaping), so they
// are swapped for inert positional tokens before any tree operation and
// swapped back after the final serialization.

// templateExprRe matches a non-nesting {{...}} expression. The body accepts
// any character except '}', or a '}' that is not followed by another '}',
// so a match never runs past its own closing braces.
var templateExprRe = regexp.MustCompile(`\{\{(?:[^}]|\}[^}])*\}\}`)

// guardTokenRe matches the tokens emitted by ProtectTemplates.
var guardTokenRe = regexp.MustCompile(`__LP_TPL_(\d+)__`)

// ProtectTemplates replaces every template expression with a positional
// token and returns the guarded HTML together with the ordered list of
// original expressions.
func ProtectTemplates(html string) (string, []string) {
	var placeholders []string
	guarded := templateExprRe.ReplaceAllStringFunc(html, func(match string) string {
		token := fmt.Sprintf("__LP_TPL_%d__", len(placeholders))
		placeholders = append(placeholders, match)
		return token
	})
	return guarded, placeholders
}

// RestoreTemplates replaces each guard token with the expression at its
// embedded index. With an empty placeholder list it is the identity.
func RestoreTemplates(html string, placeholders []string) string {
	if len(placeholders) == 0 {
		return html
	}
	return guardTokenRe.ReplaceAllStringFunc(html, func(token string) string {
		idx, err := strconv.Atoi(guardTokenRe.FindStringSubmatch(token)[1])
		if err != nil || idx < 0 || idx >= len(placeholders) {
			return token
		}
		return placeholders[idx]
	})
}

package linkprune

import "strings"

// AutoStrip applies the default removal policy to every group, mutating
// keep flags in place. Image and CTA occurrences are always kept. Among
// plain text occurrences of one destination, the first in document order
// survives and the rest are marked for removal — except when a group holds
// exactly two text occurrences with differing texts, which is left for
// human judgment.
//
// Re-running without intervening changes yields the same assignments.
func (s *Session) AutoStrip() {
	for _, key := range s.groupOrder {
		stripGroup(s.Groups[key])
	}
}

func stripGroup(g *Group) {
	texts := g.textLinks()

	for _, l := range g.Links {
		if !l.IsText() {
			l.Keep = true
		}
	}

	if len(texts) == 2 && normalizedText(texts[0]) != normalizedText(texts[1]) {
		// Ambiguous pair: the two anchors may serve different purposes.
		texts[0].Keep = true
		texts[1].Keep = true
		return
	}

	for i, l := range texts {
		l.Keep = i == 0
	}
}

func normalizedText(l *Link) string {
	return strings.ToLower(strings.TrimSpace(l.AnchorText))
}

// KeepAll marks every link kept, overriding any prior decision run or
// manual toggles.
func (s *Session) KeepAll() {
	for _, l := range s.Links {
		l.Keep = true
	}
}

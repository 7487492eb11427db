package linkprune

import (
	"errors"
	"fmt"
)

// Sentinel anchor texts used when an anchor has no visible text of its own.
const (
	ImageTextSentinel = "[image]"
	EmptyTextSentinel = "[empty]"
)

var (
	// ErrEmptyInput is returned when analysis is requested on empty or
	// whitespace-only input.
	ErrEmptyInput = errors.New("linkprune: empty input")

	// ErrNoAnalysis is returned by session operations that arrive before
	// an analysis pass has populated the session.
	ErrNoAnalysis = errors.New("linkprune: session has no analysis")
)

// Link is one anchor occurrence in the analyzed document. All fields except
// Keep are fixed at analysis time and never recomputed.
type Link struct {
	// ID is the link's position in the session's link sequence. It is the
	// stable identifier used for toggles and preview annotation.
	ID int `json:"id"`

	// RawIndex is the link's position among all href-carrying anchors in
	// document order. Diagnostic only.
	RawIndex int `json:"raw_index"`

	// Href is the original attribute value, verbatim.
	Href string `json:"href"`

	// NormalizedHref is the canonical grouping key.
	NormalizedHref string `json:"normalized_href"`

	// AnchorText is the display text, or a sentinel when none exists.
	AnchorText string `json:"anchor_text"`

	IsImageLink bool `json:"is_image_link"`
	IsCtaLink   bool `json:"is_cta_link"`
	IsInHeading bool `json:"is_in_heading"`
	IsExternal  bool `json:"is_external"`

	// ParentTag is the nearest block-level container ancestor's tag.
	ParentTag string `json:"parent_tag"`

	// Context is a short surrounding-text excerpt for human review.
	Context string `json:"context"`

	// Keep marks whether the anchor survives regeneration. It is the only
	// mutable field; the decision engine and user toggles change it.
	Keep bool `json:"keep"`

	// Rel is the original rel attribute, carried through unmodified.
	Rel string `json:"rel,omitempty"`
}

// IsText reports whether the link is a plain text occurrence, the only
// kind the decision engine will consider removing.
func (l *Link) IsText() bool {
	return !l.IsImageLink && !l.IsCtaLink
}

// Group aggregates all links sharing a normalized destination, in
// document order.
type Group struct {
	// NormalizedHref is the shared grouping key.
	NormalizedHref string `json:"normalized_href"`

	// DisplayHref is the first-seen original href, kept for display.
	DisplayHref string `json:"display_href"`

	Links []*Link `json:"links"`

	ImageCount   int `json:"image_count"`
	TextCount    int `json:"text_count"`
	CtaCount     int `json:"cta_count"`
	HeadingCount int `json:"heading_count"`
}

// textLinks returns the group's plain text occurrences in document order.
func (g *Group) textLinks() []*Link {
	var out []*Link
	for _, l := range g.Links {
		if l.IsText() {
			out = append(out, l)
		}
	}
	return out
}

// Session owns the link inventory for one article's editing pass. It is
// created empty, populated wholesale by one Analyze call, mutated
// incrementally through decision runs and toggles, and discarded between
// articles. There is no concurrent writer; the caller owns it outright.
type Session struct {
	config *Config

	// Links holds every analyzed anchor; a link's ID equals its index.
	Links []*Link `json:"links"`

	// Groups maps normalized href to its group.
	Groups map[string]*Group `json:"groups"`

	// Warnings derived by the last analysis pass.
	Warnings []Warning `json:"warnings"`

	// groupOrder preserves first-seen order for deterministic output.
	groupOrder []string

	// originalHTML is the pristine input the session was built from.
	originalHTML string

	// templateCount records how many template expressions were guarded
	// during analysis. Diagnostic only; regeneration re-guards on its own.
	templateCount int
}

// NewSession returns an empty session bound to a configuration.
// Config may be nil, in which case defaults apply.
func NewSession(cfg *Config) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Session{config: cfg}
}

// Analyzed reports whether the session holds a populated inventory.
func (s *Session) Analyzed() bool {
	return s.originalHTML != ""
}

// Link returns the link with the given id in O(1).
func (s *Session) Link(id int) (*Link, bool) {
	if id < 0 || id >= len(s.Links) {
		return nil, false
	}
	return s.Links[id], true
}

// OriginalHTML returns the input the current inventory was built from.
func (s *Session) OriginalHTML() string {
	return s.originalHTML
}

// OrderedGroups returns the groups in first-seen document order.
func (s *Session) OrderedGroups() []*Group {
	out := make([]*Group, 0, len(s.groupOrder))
	for _, key := range s.groupOrder {
		out = append(out, s.Groups[key])
	}
	return out
}

// Toggle sets the keep flag of a single link. A toggle arriving before any
// analysis, or naming an unknown id, is rejected explicitly rather than
// silently dropped.
func (s *Session) Toggle(id int, keep bool) error {
	if !s.Analyzed() {
		return ErrNoAnalysis
	}
	link, ok := s.Link(id)
	if !ok {
		return fmt.Errorf("linkprune: no link with id %d", id)
	}
	link.Keep = keep
	return nil
}

// KeepState is one id/keep pair for bulk resynchronization.
type KeepState struct {
	ID   int  `json:"id"`
	Keep bool `json:"keep"`
}

// SyncKeep applies a full list of id/keep pairs, as reported back by an
// external rendering surface. Unknown ids are reported, known ones are
// still applied.
func (s *Session) SyncKeep(states []KeepState) error {
	if !s.Analyzed() {
		return ErrNoAnalysis
	}
	var unknown []int
	for _, st := range states {
		link, ok := s.Link(st.ID)
		if !ok {
			unknown = append(unknown, st.ID)
			continue
		}
		link.Keep = st.Keep
	}
	if len(unknown) > 0 {
		return fmt.Errorf("linkprune: unknown link ids %v", unknown)
	}
	return nil
}

// Reset discards the inventory, returning the session to its initial
// empty state.
func (s *Session) Reset() {
	s.Links = nil
	s.Groups = nil
	s.Warnings = nil
	s.groupOrder = nil
	s.originalHTML = ""
	s.templateCount = 0
}

// Stats computes aggregate counters over the current inventory. It is a
// pure projection, recomputed on demand.
func (s *Session) Stats() Stats {
	st := Stats{
		TotalLinks:         len(s.Links),
		UniqueDestinations: len(s.Groups),
	}
	for _, l := range s.Links {
		switch {
		case l.IsImageLink:
			st.ImageLinks++
		case l.IsCtaLink:
			st.CtaLinks++
		default:
			st.TextLinks++
		}
		if l.IsExternal {
			st.ExternalLinks++
		}
		if l.IsInHeading {
			st.HeadingLinks++
		}
	}
	return st
}

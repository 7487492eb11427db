package linkprune

import (
	"fmt"
	"strings"
)

// Stats holds aggregate counters over an analyzed link inventory.
type Stats struct {
	TotalLinks         int `json:"total_links"`
	UniqueDestinations int `json:"unique_destinations"`
	ImageLinks         int `json:"image_links"`
	CtaLinks           int `json:"cta_links"`
	TextLinks          int `json:"text_links"`
	ExternalLinks      int `json:"external_links"`
	HeadingLinks       int `json:"heading_links"`
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d links to %d destinations (%d text, %d image, %d cta, %d external)",
		s.TotalLinks, s.UniqueDestinations, s.TextLinks, s.ImageLinks, s.CtaLinks, s.ExternalLinks)
}

// WarningType classifies analysis warnings.
type WarningType string

const (
	WarningBroken    WarningType = "broken"
	WarningImageOnly WarningType = "image-only"
	WarningHeading   WarningType = "heading"
	WarningDensity   WarningType = "density"
)

// Warning is a non-fatal finding derived during analysis. Warnings are
// recomputed fresh on every pass and never written back to links or groups.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Type, w.Message)
}

// ReportEntry is one unwrapped occurrence in the changes report.
type ReportEntry struct {
	AnchorText string `json:"anchor_text"`
	Context    string `json:"context,omitempty"`
}

// ReportGroup collects the unwrapped occurrences of one destination.
type ReportGroup struct {
	DisplayHref string        `json:"href"`
	Removed     []ReportEntry `json:"removed"`
}

// Report describes what regeneration changed, grouped by destination for
// audit.
type Report struct {
	// Unwrapped is the number of anchors removed with their content
	// spliced back in place.
	Unwrapped int `json:"unwrapped"`

	// TargetSelfRemoved counts stripped target="_self" attributes. These
	// are removed from every anchor regardless of keep state.
	TargetSelfRemoved int `json:"target_self_removed"`

	Groups []ReportGroup `json:"groups,omitempty"`
}

// HasChanges reports whether regeneration altered anything.
func (r Report) HasChanges() bool {
	return r.Unwrapped > 0 || r.TargetSelfRemoved > 0
}

// String returns a human-readable changes report.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d link(s) unwrapped, %d target=\"_self\" attribute(s) removed\n",
		r.Unwrapped, r.TargetSelfRemoved)
	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "  %s:\n", g.DisplayHref)
		for _, e := range g.Removed {
			if e.Context != "" {
				fmt.Fprintf(&sb, "    - %q (%s)\n", e.AnchorText, e.Context)
			} else {
				fmt.Fprintf(&sb, "    - %q\n", e.AnchorText)
			}
		}
	}
	return sb.String()
}

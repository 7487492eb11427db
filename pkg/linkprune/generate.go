package linkprune

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Bookkeeping markup used by an external preview surface. Everything
// carrying the data-lp- prefix is scaffolding and is stripped on output.
const (
	previewIDAttr       = "data-lp-id"
	previewAttrPrefix   = "data-lp-"
	previewHelperAttr   = "data-lp-helper"
	previewInjectedAttr = "data-lp-injected"
)

// AttrSnapshot preserves an anchor's pre-preview style and title
// attributes so preview highlighting can be undone on output.
type AttrSnapshot struct {
	Style    string `json:"style,omitempty"`
	HasStyle bool   `json:"has_style"`
	Title    string `json:"title,omitempty"`
	HasTitle bool   `json:"has_title"`
}

// CleanResult is the output of a regeneration pass.
type CleanResult struct {
	// HTML is the cleaned markup with template expressions restored.
	HTML string `json:"html"`

	// Report describes what changed.
	Report Report `json:"report"`
}

// GenerateClean re-walks the original markup, unwraps every anchor whose
// link is marked for removal, strips the no-op target="_self" attribute
// from all anchors, and restores guarded template expressions last.
//
// The anchor walk applies exactly the same enumeration and filtering rules
// as analysis, so the Nth surviving anchor pairs with the Nth link.
func GenerateClean(originalHTML string, links []*Link) (*CleanResult, error) {
	if strings.TrimSpace(originalHTML) == "" {
		return nil, ErrEmptyInput
	}

	guarded, placeholders := ProtectTemplates(originalHTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(guarded))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	result := &CleanResult{}
	result.Report.TargetSelfRemoved = stripTargetSelf(doc)

	var removed []*Link
	idx := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		if _, ok := NormalizeHref(href); !ok {
			return
		}
		if idx >= len(links) {
			return
		}
		link := links[idx]
		idx++
		if !link.Keep {
			unwrapSelection(sel)
			removed = append(removed, link)
		}
	})

	result.Report.Unwrapped = len(removed)
	result.Report.Groups = groupRemovals(removed)

	out, err := serialize(doc)
	if err != nil {
		return nil, err
	}
	result.HTML = RestoreTemplates(out, placeholders)
	return result, nil
}

// GenerateClean regenerates cleaned HTML from the session's original
// input and current keep flags.
func (s *Session) GenerateClean() (*CleanResult, error) {
	if !s.Analyzed() {
		return nil, ErrNoAnalysis
	}
	return GenerateClean(s.originalHTML, s.Links)
}

// AnnotatePreview produces markup for an external editable surface: every
// paired anchor is tagged with its link id, and the anchors' style/title
// attributes are snapshotted so GenerateFromPreview can restore them.
func (s *Session) AnnotatePreview() (string, map[int]AttrSnapshot, error) {
	if !s.Analyzed() {
		return "", nil, ErrNoAnalysis
	}

	guarded, placeholders := ProtectTemplates(s.originalHTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(guarded))
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}

	snapshots := make(map[int]AttrSnapshot, len(s.Links))
	idx := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		if _, ok := NormalizeHref(href); !ok {
			return
		}
		if idx >= len(s.Links) {
			return
		}
		link := s.Links[idx]
		idx++

		var snap AttrSnapshot
		snap.Style, snap.HasStyle = sel.Attr("style")
		snap.Title, snap.HasTitle = sel.Attr("title")
		snapshots[link.ID] = snap

		sel.SetAttr(previewIDAttr, strconv.Itoa(link.ID))
	})

	out, err := serialize(doc)
	if err != nil {
		return "", nil, err
	}
	return RestoreTemplates(out, placeholders), snapshots, nil
}

// GenerateFromPreview regenerates cleaned HTML from a live-edited preview
// surface. It strips injected scripts, helper elements, and all
// bookkeeping attributes, restores each anchor's snapshotted style/title,
// then applies the same unwrap and attribute rules as GenerateClean.
// Anchors are paired by the id attribute the preview carries, not by
// position.
func GenerateFromPreview(previewHTML string, snapshots map[int]AttrSnapshot, links []*Link) (*CleanResult, error) {
	if strings.TrimSpace(previewHTML) == "" {
		return nil, ErrEmptyInput
	}

	guarded, placeholders := ProtectTemplates(previewHTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(guarded))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	byID := make(map[int]*Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	// Interaction-only scaffolding goes first, before any anchor work.
	doc.Find("script[" + previewInjectedAttr + "]").Remove()
	doc.Find("[" + previewHelperAttr + "]").Remove()

	result := &CleanResult{}
	result.Report.TargetSelfRemoved = stripTargetSelf(doc)

	var removed []*Link
	doc.Find("a[" + previewIDAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		id, err := strconv.Atoi(sel.AttrOr(previewIDAttr, ""))
		if err != nil {
			return
		}
		link, ok := byID[id]
		if !ok {
			return
		}

		restoreSnapshot(sel, snapshots[id])

		if !link.Keep {
			unwrapSelection(sel)
			removed = append(removed, link)
		}
	})

	result.Report.Unwrapped = len(removed)
	result.Report.Groups = groupRemovals(removed)

	stripPreviewAttrs(doc)

	out, err := serialize(doc)
	if err != nil {
		return nil, err
	}
	result.HTML = RestoreTemplates(out, placeholders)
	return result, nil
}

// GenerateFromPreview regenerates from an edited preview surface, falling
// back to the pristine original when the surface has not been rendered yet.
func (s *Session) GenerateFromPreview(previewHTML string, snapshots map[int]AttrSnapshot) (*CleanResult, error) {
	if !s.Analyzed() {
		return nil, ErrNoAnalysis
	}
	if strings.TrimSpace(previewHTML) == "" {
		return s.GenerateClean()
	}
	return GenerateFromPreview(previewHTML, snapshots, s.Links)
}

func restoreSnapshot(sel *goquery.Selection, snap AttrSnapshot) {
	if snap.HasStyle {
		sel.SetAttr("style", snap.Style)
	} else {
		sel.RemoveAttr("style")
	}
	if snap.HasTitle {
		sel.SetAttr("title", snap.Title)
	} else {
		sel.RemoveAttr("title")
	}
}

// stripTargetSelf removes target="_self" from every anchor, kept or not.
// The attribute is always a no-op.
func stripTargetSelf(doc *goquery.Document) int {
	count := 0
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		if sel.AttrOr("target", "") == "_self" {
			sel.RemoveAttr("target")
			count++
		}
	})
	return count
}

// stripPreviewAttrs drops every data-lp-* attribute in the document.
func stripPreviewAttrs(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				if !strings.HasPrefix(attr.Key, previewAttrPrefix) {
					kept = append(kept, attr)
				}
			}
			node.Attr = kept
		}
	})
}

// unwrapSelection splices an anchor's children into its parent at the
// anchor's position, then removes the empty wrapper. Sibling order is
// preserved.
func unwrapSelection(sel *goquery.Selection) {
	for _, n := range sel.Nodes {
		unwrapNode(n)
	}
}

func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}

// groupRemovals builds the per-destination audit of unwrapped links,
// preserving first-seen order.
func groupRemovals(removed []*Link) []ReportGroup {
	var groups []ReportGroup
	index := make(map[string]int)
	for _, l := range removed {
		i, ok := index[l.NormalizedHref]
		if !ok {
			i = len(groups)
			index[l.NormalizedHref] = i
			groups = append(groups, ReportGroup{DisplayHref: l.Href})
		}
		groups[i].Removed = append(groups[i].Removed, ReportEntry{
			AnchorText: l.AnchorText,
			Context:    l.Context,
		})
	}
	return groups
}

// serialize renders the document body, falling back to the full document
// when no body wrapper exists.
func serialize(doc *goquery.Document) (string, error) {
	out, err := doc.Find("body").Html()
	if err != nil || out == "" {
		full, ferr := doc.Html()
		if ferr != nil {
			return "", fmt.Errorf("serialize html: %w", ferr)
		}
		return full, nil
	}
	return out, nil
}

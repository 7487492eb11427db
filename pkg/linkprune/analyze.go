package linkprune

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Analyzer builds a link inventory from article HTML. It is safe to reuse
// across documents; each Analyze call produces a fresh Session.
type Analyzer struct {
	config     *Config
	classifier *classifier
}

// NewAnalyzer creates an analyzer. If cfg is nil, DefaultConfig() is used.
func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{
		config:     cfg,
		classifier: newClassifier(cfg),
	}
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// Analyze walks the document, builds the full link inventory grouped by
// normalized destination, and derives warnings. Anchors whose href does
// not normalize to a navigational key never become links.
func (a *Analyzer) Analyze(rawHTML string) (*Session, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ErrEmptyInput
	}

	guarded, placeholders := ProtectTemplates(rawHTML)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(guarded))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	session := NewSession(a.config)
	session.originalHTML = rawHTML
	session.templateCount = len(placeholders)
	session.Groups = make(map[string]*Group)

	rawIndex := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		idx := rawIndex
		rawIndex++

		key, ok := NormalizeHref(href)
		if !ok {
			if warnableBroken(href) {
				session.Warnings = append(session.Warnings, Warning{
					Type:    WarningBroken,
					Message: fmt.Sprintf("link %d has a broken or empty href %q", idx+1, href),
				})
			}
			return
		}

		link := a.buildLink(sel, href, key, len(session.Links), idx)
		session.Links = append(session.Links, link)

		group, exists := session.Groups[key]
		if !exists {
			group = &Group{NormalizedHref: key, DisplayHref: href}
			session.Groups[key] = group
			session.groupOrder = append(session.groupOrder, key)
		}
		group.Links = append(group.Links, link)
		switch {
		case link.IsImageLink:
			group.ImageCount++
		case link.IsCtaLink:
			group.CtaCount++
		default:
			group.TextCount++
		}
		if link.IsInHeading {
			group.HeadingCount++
		}
	})

	a.deriveGroupWarnings(session)
	a.deriveDensityWarnings(doc, session)

	return session, nil
}

// buildLink classifies one anchor and assembles its Link record.
func (a *Analyzer) buildLink(sel *goquery.Selection, href, key string, id, rawIndex int) *Link {
	text := collapseText(sel.Text())

	isImage := a.classifier.isImageLink(sel)
	isCta := false
	if !isImage {
		// Image-only anchors are never CTAs; the image check wins.
		isCta = a.classifier.isCtaLink(sel, text)
	}

	display := text
	if display == "" {
		if isImage {
			display = ImageTextSentinel
		} else {
			display = EmptyTextSentinel
		}
	}

	return &Link{
		ID:             id,
		RawIndex:       rawIndex,
		Href:           href,
		NormalizedHref: key,
		AnchorText:     display,
		IsImageLink:    isImage,
		IsCtaLink:      isCta,
		IsInHeading:    a.classifier.isInHeading(sel),
		IsExternal:     a.classifier.isExternal(href),
		ParentTag:      a.classifier.parentTag(sel),
		Context:        a.classifier.contextExcerpt(sel, text),
		Keep:           true,
		Rel:            sel.AttrOr("rel", ""),
	}
}

// deriveGroupWarnings emits per-group findings: destinations reached only
// through images, and destinations linked from inside headings.
func (a *Analyzer) deriveGroupWarnings(session *Session) {
	for _, key := range session.groupOrder {
		g := session.Groups[key]
		if g.ImageCount > 0 && g.TextCount == 0 && g.CtaCount == 0 {
			session.Warnings = append(session.Warnings, Warning{
				Type:    WarningImageOnly,
				Message: fmt.Sprintf("all %d link(s) to %s are image-only; none carries visible anchor text", g.ImageCount, g.DisplayHref),
			})
		}
		if g.HeadingCount > 0 {
			session.Warnings = append(session.Warnings, Warning{
				Type:    WarningHeading,
				Message: fmt.Sprintf("link to %s appears inside a heading", g.DisplayHref),
			})
		}
	}
}

// deriveDensityWarnings flags paragraphs crowded with links, independent
// of grouping.
func (a *Analyzer) deriveDensityWarnings(doc *goquery.Document, session *Session) {
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		count := 0
		p.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if _, ok := NormalizeHref(href); ok {
				count++
			}
		})
		if count >= a.config.DensityThreshold {
			lead := leadingExcerpt(collapseText(p.Text()), 40)
			session.Warnings = append(session.Warnings, Warning{
				Type:    WarningDensity,
				Message: fmt.Sprintf("paragraph starting %q contains %d links", lead, count),
			})
		}
	})
}

package linkprune

import (
	"strings"
	"testing"
)

func TestGenerateCleanUnwrapsRemoved(t *testing.T) {
	html := `<p>Check out <a href="/product">Buy the Widget</a> today.</p>` +
		`<p><a href="/product"><img src="w.jpg" alt="widget"/></a></p>` +
		`<p>Later on, <a href="/product">Buy the Widget</a> again.</p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	if got := strings.Count(result.HTML, "<a "); got != 2 {
		t.Errorf("expected 2 surviving anchors, got %d in:\n%s", got, result.HTML)
	}
	if !strings.Contains(result.HTML, `<img src="w.jpg"`) {
		t.Error("image anchor content missing from output")
	}
	if !strings.Contains(result.HTML, "Later on, Buy the Widget again.") {
		t.Errorf("second occurrence must survive unwrapped as plain text:\n%s", result.HTML)
	}
	if result.Report.Unwrapped != 1 {
		t.Errorf("expected 1 unwrapped link in report, got %d", result.Report.Unwrapped)
	}
}

func TestGenerateCleanStripsTargetSelf(t *testing.T) {
	html := `<p><a href="/a" target="_self">one</a> and ` +
		`<a href="/b" target="_blank">two</a></p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	if strings.Contains(result.HTML, "_self") {
		t.Errorf("target=\"_self\" must be stripped:\n%s", result.HTML)
	}
	if !strings.Contains(result.HTML, `target="_blank"`) {
		t.Error("target=\"_blank\" must be preserved")
	}
	if result.Report.TargetSelfRemoved != 1 {
		t.Errorf("expected 1 target self removal, got %d", result.Report.TargetSelfRemoved)
	}
	if result.Report.Unwrapped != 0 {
		t.Errorf("expected no unwrapped links, got %d", result.Report.Unwrapped)
	}
	if !result.Report.HasChanges() {
		t.Error("attribute removal alone must still count as a change")
	}
}

func TestGenerateCleanTemplateExpressions(t *testing.T) {
	html := `<p><a href="/p">{{ product.name }}</a> and ` +
		`<a href="/p">{{ product.name }}</a> cost {{ product.price | money }}.</p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	if got := strings.Count(result.HTML, "{{ product.name }}"); got != 2 {
		t.Errorf("expected both name expressions restored, got %d in:\n%s", got, result.HTML)
	}
	if !strings.Contains(result.HTML, "{{ product.price | money }}") {
		t.Errorf("price expression mangled:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, "__LP_TPL_") {
		t.Errorf("guard token leaked into output:\n%s", result.HTML)
	}
}

func TestGenerateCleanSkipsSameAnchorsAsAnalysis(t *testing.T) {
	// Anchors whose href normalizes to null are skipped identically at
	// analysis and generation time, so positional pairing stays aligned.
	html := `<p><a href="/first">first</a>` +
		`<a href="javascript:void(0)">noise</a>` +
		`<a href="#">top</a>` +
		`<a href="/first">first again</a>` +
		`<a href="/first">once more</a></p>`

	session := analyzeFixture(t, html, nil)
	if len(session.Links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(session.Links))
	}
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	// The duplicate "/first" anchors go; the skipped noise anchors stay.
	if !strings.Contains(result.HTML, `href="javascript:void(0)"`) {
		t.Errorf("skipped anchor must be left untouched:\n%s", result.HTML)
	}
	if !strings.Contains(result.HTML, `href="#"`) {
		t.Errorf("bare fragment anchor must be left untouched:\n%s", result.HTML)
	}
	if got := strings.Count(result.HTML, `href="/first"`); got != 1 {
		t.Errorf("expected exactly 1 surviving /first anchor, got %d:\n%s", got, result.HTML)
	}
	if !strings.Contains(result.HTML, "first again") || !strings.Contains(result.HTML, "once more") {
		t.Error("unwrapped anchor text must survive as plain text")
	}
}

func TestGenerateCleanSiblingOrderPreserved(t *testing.T) {
	html := `<p>before <a href="/x">alpha <b>beta</b> gamma</a> after</p>` +
		`<p><a href="/x">alpha <b>beta</b> gamma</a></p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	if !strings.Contains(result.HTML, "<p>alpha <b>beta</b> gamma</p>") {
		t.Errorf("unwrapped children must keep their order:\n%s", result.HTML)
	}
}

func TestGenerateCleanReportGrouping(t *testing.T) {
	html := `<p><a href="/a">a one</a> <a href="/a">a one</a> ` +
		`<a href="/b">b one</a> <a href="/b">b one</a></p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	result, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}

	if result.Report.Unwrapped != 2 {
		t.Fatalf("expected 2 unwrapped, got %d", result.Report.Unwrapped)
	}
	if len(result.Report.Groups) != 2 {
		t.Fatalf("expected 2 report groups, got %d", len(result.Report.Groups))
	}
	if result.Report.Groups[0].DisplayHref != "/a" || result.Report.Groups[1].DisplayHref != "/b" {
		t.Errorf("report groups out of order: %+v", result.Report.Groups)
	}
	for _, g := range result.Report.Groups {
		if len(g.Removed) != 1 {
			t.Errorf("group %s: expected 1 removal entry, got %d", g.DisplayHref, len(g.Removed))
		}
	}
}

func TestGenerateCleanWithoutAnalysis(t *testing.T) {
	session := NewSession(nil)
	if _, err := session.GenerateClean(); err != ErrNoAnalysis {
		t.Errorf("expected ErrNoAnalysis, got %v", err)
	}
}

func TestAnnotatePreview(t *testing.T) {
	html := `<p><a href="/a" style="color:red" title="A">one</a> ` +
		`<a href="#">skip</a> <a href="/b">two</a></p>`

	session := analyzeFixture(t, html, nil)

	preview, snapshots, err := session.AnnotatePreview()
	if err != nil {
		t.Fatalf("AnnotatePreview: %v", err)
	}

	if !strings.Contains(preview, `data-lp-id="0"`) || !strings.Contains(preview, `data-lp-id="1"`) {
		t.Errorf("expected both paired anchors annotated:\n%s", preview)
	}
	if strings.Contains(preview, `href="#" data-lp-id`) {
		t.Errorf("skipped anchor must not be annotated:\n%s", preview)
	}

	snap, ok := snapshots[0]
	if !ok {
		t.Fatal("expected snapshot for link 0")
	}
	if !snap.HasStyle || snap.Style != "color:red" {
		t.Errorf("style snapshot = %+v", snap)
	}
	if !snap.HasTitle || snap.Title != "A" {
		t.Errorf("title snapshot = %+v", snap)
	}
	if snap1 := snapshots[1]; snap1.HasStyle || snap1.HasTitle {
		t.Errorf("link 1 had no style/title, snapshot = %+v", snap1)
	}
}

func TestGenerateFromPreview(t *testing.T) {
	html := `<p><a href="/a" title="A">one</a> <a href="/a">one</a></p>`

	session := analyzeFixture(t, html, nil)
	preview, snapshots, err := session.AnnotatePreview()
	if err != nil {
		t.Fatalf("AnnotatePreview: %v", err)
	}

	// Simulate what the editing surface does: highlight anchors, inject a
	// helper banner and a script.
	edited := strings.Replace(preview, `title="A"`, `title="click to toggle" style="outline:2px solid red" data-lp-keep="1"`, 1)
	edited = `<div data-lp-helper="1">Click links to toggle them.</div>` +
		edited +
		`<script data-lp-injected="1">console.log("preview")</script>`

	session.AutoStrip()

	result, err := session.GenerateFromPreview(edited, snapshots)
	if err != nil {
		t.Fatalf("GenerateFromPreview: %v", err)
	}

	if strings.Contains(result.HTML, "data-lp-") {
		t.Errorf("bookkeeping attributes leaked:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, "<script") || strings.Contains(result.HTML, "console.log") {
		t.Errorf("injected script leaked:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, "Click links to toggle") {
		t.Errorf("helper banner leaked:\n%s", result.HTML)
	}
	if !strings.Contains(result.HTML, `title="A"`) {
		t.Errorf("original title not restored:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, "outline:2px") {
		t.Errorf("preview styling not removed:\n%s", result.HTML)
	}
	if got := strings.Count(result.HTML, "<a "); got != 1 {
		t.Errorf("expected 1 surviving anchor after strip, got %d:\n%s", got, result.HTML)
	}
	if result.Report.Unwrapped != 1 {
		t.Errorf("expected 1 unwrapped, got %d", result.Report.Unwrapped)
	}
}

func TestGenerateFromPreviewFallsBack(t *testing.T) {
	session := analyzeFixture(t, `<p><a href="/a">one</a> <a href="/a">one</a></p>`, nil)
	session.AutoStrip()

	direct, err := session.GenerateClean()
	if err != nil {
		t.Fatalf("GenerateClean: %v", err)
	}
	viaPreview, err := session.GenerateFromPreview("", nil)
	if err != nil {
		t.Fatalf("GenerateFromPreview: %v", err)
	}
	if direct.HTML != viaPreview.HTML {
		t.Errorf("empty preview must fall back to the original:\n%q\nvs\n%q", direct.HTML, viaPreview.HTML)
	}
}

package linkprune

import "testing"

func keepFlags(s *Session) []bool {
	out := make([]bool, len(s.Links))
	for i, l := range s.Links {
		out[i] = l.Keep
	}
	return out
}

func TestAutoStripDuplicateText(t *testing.T) {
	// Three anchors to one destination: two identical text occurrences
	// and one image. The image survives, the first text survives, the
	// second text goes.
	html := `
<p>Check out the <a href="/product">Buy the Widget</a> page.</p>
<p><a href="/product"><img src="w.jpg" alt="widget"></a></p>
<p>Still undecided? <a href="/product">Buy the Widget</a> now.</p>`

	session := analyzeFixture(t, html, nil)
	if len(session.Links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(session.Links))
	}

	session.AutoStrip()

	if !session.Links[0].Keep {
		t.Error("first text occurrence must be kept")
	}
	if !session.Links[1].Keep {
		t.Error("image occurrence must be kept")
	}
	if session.Links[2].Keep {
		t.Error("second identical text occurrence must be removed")
	}
}

func TestAutoStripAmbiguousPair(t *testing.T) {
	// Exactly two text occurrences with differing texts: ambiguous, both
	// kept for human judgment.
	html := `
<p>Start with <a href="/guide">Read the guide</a>.</p>
<p>Or jump to the <a href="/guide">Full guide here</a>.</p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	for i, l := range session.Links {
		if !l.Keep {
			t.Errorf("link %d (%q) must be kept in an ambiguous pair", i, l.AnchorText)
		}
	}
}

func TestAutoStripThreeDistinctTexts(t *testing.T) {
	// Three or more text occurrences: only the first survives, whatever
	// the texts say.
	html := `
<p><a href="/guide">Read the guide</a></p>
<p><a href="/guide">Full guide here</a></p>
<p><a href="/guide">Guide, again</a></p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	want := []bool{true, false, false}
	for i, l := range session.Links {
		if l.Keep != want[i] {
			t.Errorf("link %d keep = %v, expected %v", i, l.Keep, want[i])
		}
	}
}

func TestAutoStripProtectedKinds(t *testing.T) {
	html := `
<p><a href="/p"><img src="a.jpg"></a></p>
<p><a href="/p"><img src="b.jpg"></a></p>
<p><a href="/p" class="buy-now">Shop now</a></p>
<p><a href="/p" class="buy-now">Shop now</a></p>`

	session := analyzeFixture(t, html, nil)
	session.AutoStrip()

	for i, l := range session.Links {
		if !l.IsImageLink && !l.IsCtaLink {
			t.Fatalf("fixture link %d should be image or cta", i)
		}
		if !l.Keep {
			t.Errorf("protected link %d must keep == true after auto-strip", i)
		}
	}
}

func TestAutoStripIdempotent(t *testing.T) {
	session := analyzeFixture(t, articleFixture, nil)

	session.AutoStrip()
	first := keepFlags(session)

	session.AutoStrip()
	second := keepFlags(session)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("link %d keep changed between runs: %v then %v", i, first[i], second[i])
		}
	}
}

func TestKeepAll(t *testing.T) {
	session := analyzeFixture(t, articleFixture, nil)
	session.AutoStrip()
	session.KeepAll()

	for i, l := range session.Links {
		if !l.Keep {
			t.Errorf("link %d not kept after KeepAll", i)
		}
	}
}

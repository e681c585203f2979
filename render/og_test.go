package render

import (
	"strings"
	"testing"
)

func TestLoadOGTemplate(t *testing.T) {
	tpl, err := LoadOGTemplate()
	if err != nil {
		t.Fatalf("LoadOGTemplate: %v", err)
	}
	if tpl == nil {
		t.Fatal("expected template")
	}
}

func TestOGTemplateRender(t *testing.T) {
	tpl, err := LoadOGTemplate()
	if err != nil {
		t.Fatalf("LoadOGTemplate: %v", err)
	}

	html, err := tpl.Render(7, "Your summary reads like a LinkedIn fever dream")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, ">7<") {
		t.Fatalf("expected score in output: %s", html)
	}
	if !strings.Contains(html, "Your summary reads like a LinkedIn fever dream") {
		t.Fatal("expected highlight in output")
	}
}

func TestOGTemplateRenderEscapesHTML(t *testing.T) {
	tpl, err := LoadOGTemplate()
	if err != nil {
		t.Fatalf("LoadOGTemplate: %v", err)
	}

	html, err := tpl.Render(3, `<script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("highlight must be HTML-escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup in output: %s", html)
	}
}

func TestTruncateHighlight(t *testing.T) {
	short := strings.Repeat("a", ogHighlightDisplayMax)
	if got := truncateHighlight(short); got != short {
		t.Fatal("short highlight must pass through unchanged")
	}

	long := strings.Repeat("b", ogHighlightDisplayMax+50)
	got := truncateHighlight(long)
	if len([]rune(got)) != ogHighlightDisplayMax {
		t.Fatalf("expected %d runes, got %d", ogHighlightDisplayMax, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-8:])
	}

	// Multi-byte runes must not be split.
	wide := strings.Repeat("日", ogHighlightDisplayMax+10)
	truncated := truncateHighlight(wide)
	if !strings.HasSuffix(truncated, "...") {
		t.Fatal("expected ellipsis suffix on multi-byte input")
	}
	for _, r := range truncated {
		if r != '日' && r != '.' {
			t.Fatalf("unexpected rune %q after truncation", r)
		}
	}
}

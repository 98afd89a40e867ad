package render

import (
	"strings"
	"testing"
)

func TestHTML_Basic(t *testing.T) {
	r := New()
	out, err := r.HTML([]byte("# Title\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("html = %q", html)
	}
}

func TestHTML_GFMTable(t *testing.T) {
	r := New()
	out, err := r.HTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("expected GFM table, got %q", out)
	}
}

func TestHTML_HorizontalRule(t *testing.T) {
	// Bodies legitimately contain --- as a rule; it must render, not vanish.
	r := New()
	out, err := r.HTML([]byte("before\n\n---\n\nafter\n"))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(out), "<hr>") {
		t.Errorf("expected <hr>, got %q", out)
	}
}

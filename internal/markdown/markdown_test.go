package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestToHTMLPassesRawHTML(t *testing.T) {
	out, err := ToHTML(`<div class="legacy">imported</div>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, `<div class="legacy">`) {
		t.Errorf("raw HTML not passed through: %s", out)
	}
}

func TestExcerptShortText(t *testing.T) {
	got, err := Excerpt("Just a short sentence.", 200)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if got != "Just a short sentence." {
		t.Errorf("got %q", got)
	}
}

func TestExcerptStripsMarkupAndTruncates(t *testing.T) {
	src := "## Título\n\nUma **notícia** com [link](https://example.com) e bastante texto que segue por mais algumas palavras do que o limite permite."
	got, err := Excerpt(src, 40)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if strings.ContainsAny(got, "<>#*[") {
		t.Errorf("markup leaked into excerpt: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if len([]rune(got)) > 41 {
		t.Errorf("excerpt too long: %d runes", len([]rune(got)))
	}
}

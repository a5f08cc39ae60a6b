package treebuilder_test

import (
	"testing"

	"github.com/kenjisato/tinybrowser/dom"
	"github.com/kenjisato/tinybrowser/treebuilder"
)

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, errs := treebuilder.Parse(alloc, "")
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if doc.Kind != dom.KindDocument {
		t.Fatalf("Kind = %v, want KindDocument", doc.Kind)
	}
	if doc.FirstChild() != nil {
		t.Error("empty source should produce a document with no children")
	}
}

func TestParseMinimalSkeleton(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "<html><head></head><body></body></html>")

	html := doc.FirstChild()
	if html == nil || html.Tag != "html" {
		t.Fatalf("doc.FirstChild() = %v, want <html>", html)
	}
	if doc.LastChild() != html {
		t.Error("doc.LastChild() should be html")
	}

	head := html.FirstChild()
	if head == nil || head.Tag != "head" {
		t.Fatalf("html.FirstChild() = %v, want <head>", head)
	}

	body := head.NextSibling()
	if body == nil || body.Tag != "body" {
		t.Fatalf("head.NextSibling() = %v, want <body>", body)
	}
	if html.LastChild() != body {
		t.Error("html.LastChild() should be body")
	}
	if body.NextSibling() != nil {
		t.Error("body should be the last child of html")
	}
}

func TestParseBodyText(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "<html><head></head><body>text</body></html>")

	body := doc.FirstChild().FirstChild().NextSibling()
	if body == nil || body.Tag != "body" {
		t.Fatalf("body = %v, want <body>", body)
	}
	text := body.FirstChild()
	if text == nil || text.Kind != dom.KindText || text.Data != "text" {
		t.Fatalf("body.FirstChild() = %v, want Text(text)", text)
	}
}

func TestParseNestedElementsWithAttribute(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, `<html><head></head><body><p><a foo=bar>text</a></p></body></html>`)

	body := doc.FirstChild().FirstChild().NextSibling()
	p := body.FirstChild()
	if p == nil || p.Tag != "p" {
		t.Fatalf("body.FirstChild() = %v, want <p>", p)
	}
	a := p.FirstChild()
	if a == nil || a.Tag != "a" {
		t.Fatalf("p.FirstChild() = %v, want <a>", a)
	}
	if v, ok := a.AttrVal("foo"); !ok || v != "bar" {
		t.Errorf("a's foo attribute = (%q, %v), want (bar, true)", v, ok)
	}
	text := a.FirstChild()
	if text == nil || text.Kind != dom.KindText || text.Data != "text" {
		t.Fatalf("a.FirstChild() = %v, want Text(text)", text)
	}
}

func TestStyleAndScriptAreCollectedAsRawText(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "<html><head><style>p{color:red}</style></head>"+
		"<body><script>var x=1;</script></body></html>")

	html := doc.FirstChild()
	head := html.FirstChild()
	style := head.FirstChild()
	if style == nil || style.Tag != "style" {
		t.Fatalf("head.FirstChild() = %v, want <style>", style)
	}
	styleText := style.FirstChild()
	if styleText == nil || styleText.Data != "p{color:red}" {
		t.Fatalf("style content = %v, want %q", styleText, "p{color:red}")
	}

	body := head.NextSibling()
	script := body.FirstChild()
	if script == nil || script.Tag != "script" {
		t.Fatalf("body.FirstChild() = %v, want <script>", script)
	}
	scriptText := script.FirstChild()
	if scriptText == nil || scriptText.Data != "var x=1;" {
		t.Fatalf("script content = %v, want %q", scriptText, "var x=1;")
	}
}

// TestPreviousSiblingQuirk checks that a third child's previous_sibling is
// the parent's first child, not its immediate predecessor — the recognized
// quirk this tree builder preserves rather than corrects.
func TestPreviousSiblingQuirk(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "<html><head></head><body><p></p><a></a><h1></h1></body></html>")

	body := doc.FirstChild().FirstChild().NextSibling()
	p := body.FirstChild()
	a := p.NextSibling()
	if a == nil || a.Tag != "a" {
		t.Fatalf("p.NextSibling() = %v, want <a>", a)
	}
	h1 := a.NextSibling()
	if h1 == nil || h1.Tag != "h1" {
		t.Fatalf("a.NextSibling() = %v, want <h1>", h1)
	}
	if h1.PreviousSibling() != body.FirstChild() {
		t.Errorf("h1.PreviousSibling() = %v, want body's first child (%v)", h1.PreviousSibling(), body.FirstChild())
	}
	if h1.PreviousSibling() == a {
		t.Errorf("h1.PreviousSibling() = <a>, want the first child rather than the immediate predecessor")
	}
}

// TestInitialModeAbsorbsLeadingCharacters checks that a source with no
// start tag at all never leaves the Initial insertion mode: every Char
// token is absorbed there, so Eof reaches BeforeHTML's terminal rule
// without ever implicit-inserting <html>.
func TestInitialModeAbsorbsLeadingCharacters(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "just text")

	if doc.FirstChild() != nil {
		t.Errorf("doc.FirstChild() = %v, want nil (tag-less source produces an empty document)", doc.FirstChild())
	}
}

// TestImplicitBodyInsertionAfterHead checks that once <head> has been
// closed, stray content after it drives an implicit <body> insertion (InHead
// has no such fallback: content directly inside an unclosed <head> is
// dropped).
func TestImplicitBodyInsertionAfterHead(t *testing.T) {
	t.Parallel()

	alloc := dom.NewAllocator()
	doc, _ := treebuilder.Parse(alloc, "<html><head></head>just text</html>")

	html := doc.FirstChild()
	if html == nil || html.Tag != "html" {
		t.Fatalf("doc.FirstChild() = %v, want <html>", html)
	}
	head := html.FirstChild()
	if head == nil || head.Tag != "head" {
		t.Fatalf("html.FirstChild() = %v, want <head>", head)
	}
	body := head.NextSibling()
	if body == nil || body.Tag != "body" {
		t.Fatalf("head.NextSibling() = %v, want implicit <body>", body)
	}
	text := body.FirstChild()
	if text == nil || text.Data != "just text" {
		t.Fatalf("body.FirstChild() = %v, want Text(just text)", text)
	}
}

// Package navigator drives the document pipeline end to end: resolve a URL,
// fetch it, parse the response into a DOM, pull out embedded CSS and JS,
// execute the script against the DOM, and expose a page of display items to
// a UI front end. It also turns the keyboard commands spec.md §6 names into
// actions, adapting the navigation loop in the retrieved original
// (browser/src/handler.rs, browser/ui/cui/src/app.rs) to this engine.
package navigator

import (
	"strings"

	"github.com/kenjisato/tinybrowser/css"
	"github.com/kenjisato/tinybrowser/display"
	"github.com/kenjisato/tinybrowser/dom"
	browsererrors "github.com/kenjisato/tinybrowser/errors"
	"github.com/kenjisato/tinybrowser/fetchclient"
	"github.com/kenjisato/tinybrowser/input"
	"github.com/kenjisato/tinybrowser/js"
	"github.com/kenjisato/tinybrowser/treebuilder"
	"github.com/kenjisato/tinybrowser/urlparse"
)

// Page is one successfully navigated document: its DOM, the stylesheet and
// runtime pulled out of it, the flattened display items a front end reads,
// and the anchors a front end can cycle focus through.
type Page struct {
	Window     *dom.Window
	Alloc      *dom.Allocator
	Stylesheet css.Stylesheet
	Runtime    *js.Runtime
	Items      []display.Item
	Anchors    []*dom.Node
}

// editState names whether the navigator is reading normal keyboard commands
// or accumulating characters typed into the URL bar. It mirrors the
// original's InputMode, which this package's Command set has no slot for
// (spec.md §6 names six whole-commands, not individual keystrokes) — see
// DESIGN.md.
type editState int

const (
	modeNormal editState = iota
	modeEditing
)

// Navigator holds the one page currently loaded, plus front-end-facing
// cursor state (focused anchor, URL-bar edit buffer).
type Navigator struct {
	fetch *fetchclient.Client

	page  *Page
	focus int // index into page.Anchors; -1 = no focus

	mode    editState
	editBuf strings.Builder
}

// New creates a Navigator with no page loaded yet.
func New() *Navigator {
	return &Navigator{fetch: fetchclient.New(), focus: -1}
}

// Page returns the currently loaded page, or nil before the first
// navigation.
func (n *Navigator) Page() *Page { return n.page }

// Navigate resolves rawurl, fetches it, and replaces the current page with
// the result. The previous page is left intact until the new one is fully
// built, so a failed navigation never corrupts what's on screen (spec.md §7).
func (n *Navigator) Navigate(rawurl string) error {
	loc, err := urlparse.Parse(rawurl)
	if err != nil {
		return err
	}

	resp, err := n.fetch.Fetch(loc.Host, loc.Port, loc.Path)
	if err != nil {
		return err
	}

	if ct, ok := resp.HeaderValue("Content-Type"); ok && !strings.Contains(ct, "html") {
		return browsererrors.New(browsererrors.UnexpectedInput, "response body is not HTML: "+ct)
	}

	page, err := buildPage(resp.Body)
	if err != nil {
		return err
	}

	n.page = page
	n.focus = -1
	n.mode = modeNormal
	n.editBuf.Reset()
	return nil
}

// buildPage runs the full pipeline (HTML parse -> CSS parse -> JS execute
// -> display items) over one fetched document body.
func buildPage(htmlSource string) (*Page, error) {
	alloc := dom.NewAllocator()
	doc, parseErrs := treebuilder.Parse(alloc, htmlSource)
	for _, e := range parseErrs {
		if e.Code == browsererrors.StackUnderflow {
			return nil, browsererrors.Wrap(browsererrors.Internal, "tree builder invariant violated", parseErrs)
		}
	}

	window := dom.NewWindow(alloc)
	window.SetDocument(doc)

	stylesheet := css.Parse(dom.GetStyleContent(doc))

	runtime := js.NewRuntime(alloc, doc)
	if src := dom.GetJSContent(doc); src != "" {
		if _, err := runtime.Run(js.Parse(src)); err != nil {
			return nil, err
		}
	}

	return &Page{
		Window:     window,
		Alloc:      alloc,
		Stylesheet: stylesheet,
		Runtime:    runtime,
		Items:      flatten(doc),
		Anchors:    collectAnchors(doc),
	}, nil
}

// flatten walks the DOM in document order and produces one display.Item per
// text node, styled by the nearest containing element kind. It is a stand-in
// for the layout stage spec.md §1 scopes out: line position is just a
// monotonically increasing row, not a computed geometry.
func flatten(root *dom.Node) []display.Item {
	var items []display.Item
	row := 0
	var walk func(n *dom.Node, style display.Style)
	walk = func(n *dom.Node, style display.Style) {
		if n == nil {
			return
		}
		if n.IsElement() {
			style = styleFor(n.ElementKind)
		}
		if n.IsText() && strings.TrimSpace(n.Data) != "" {
			items = append(items, display.NewText(n.Data, style, display.Point{X: 0, Y: row}))
			row++
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c, style)
		}
	}
	walk(root, display.Style{})
	return items
}

func styleFor(kind dom.ElementKind) display.Style {
	switch kind {
	case dom.ElementA:
		return display.Style{TextDecoration: display.DecorationUnderline}
	case dom.ElementH1:
		return display.Style{FontSize: display.FontXLarge}
	case dom.ElementH2:
		return display.Style{FontSize: display.FontLarge}
	default:
		return display.Style{}
	}
}

// collectAnchors walks the DOM in document order and returns every <a>
// element, the set the focus-movement commands cycle through.
func collectAnchors(root *dom.Node) []*dom.Node {
	var anchors []*dom.Node
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == nil {
			return
		}
		if n.IsElement() && n.ElementKind == dom.ElementA {
			anchors = append(anchors, n)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(root)
	return anchors
}

// Dispatch turns one keyboard command into an action against the current
// page. It returns (exit, err): exit is true once the front end should stop
// its render loop.
func (n *Navigator) Dispatch(cmd input.Command) (bool, error) {
	switch cmd {
	case input.FocusPrevLink:
		n.moveFocus(-1)
	case input.FocusNextLink:
		n.moveFocus(1)
	case input.ActivateFocus:
		return false, n.activateFocus()
	case input.EnterEditMode:
		n.mode = modeEditing
		n.editBuf.Reset()
	case input.SubmitURL:
		if n.mode != modeEditing || n.editBuf.Len() == 0 {
			return false, nil
		}
		url := n.editBuf.String()
		n.mode = modeNormal
		n.editBuf.Reset()
		return false, n.Navigate(url)
	case input.Exit:
		return true, nil
	}
	return false, nil
}

// TypeRune appends a character to the URL edit buffer. Only meaningful
// after EnterEditMode; a no-op otherwise. Individual keystrokes have no
// slot in spec.md §6's six commands, so this (and Backspace) are navigator
// extensions a front end calls directly while in edit mode.
func (n *Navigator) TypeRune(r rune) {
	if n.mode == modeEditing {
		n.editBuf.WriteRune(r)
	}
}

// Backspace removes the last character from the URL edit buffer.
func (n *Navigator) Backspace() {
	if n.mode != modeEditing {
		return
	}
	s := []rune(n.editBuf.String())
	if len(s) == 0 {
		return
	}
	n.editBuf.Reset()
	n.editBuf.WriteString(string(s[:len(s)-1]))
}

// EditBuffer returns the URL currently being typed, for a front end to echo.
func (n *Navigator) EditBuffer() string { return n.editBuf.String() }

// Focused returns the currently focused anchor, or nil if none.
func (n *Navigator) Focused() *dom.Node {
	if n.page == nil || n.focus < 0 || n.focus >= len(n.page.Anchors) {
		return nil
	}
	return n.page.Anchors[n.focus]
}

func (n *Navigator) moveFocus(delta int) {
	if n.page == nil || len(n.page.Anchors) == 0 {
		return
	}
	if n.focus < 0 {
		n.focus = 0
		return
	}
	n.focus = (n.focus + delta + len(n.page.Anchors)) % len(n.page.Anchors)
}

func (n *Navigator) activateFocus() error {
	a := n.Focused()
	if a == nil {
		return nil
	}
	href, ok := a.AttrVal("href")
	if !ok {
		return nil
	}
	return n.Navigate(href)
}

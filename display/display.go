// Package display defines the display-item interface spec.md §6 names: the
// ordered list of renderable primitives the post-layout page exposes to a
// UI front end. Pixel layout is out of scope (spec.md §1); this package
// only carries the variant shapes the original's layout consumers produced
// (browser/ui/gui/src/app.rs, browser/ui/cui/src/app.rs), not the geometry
// computation itself.
package display

// Kind tags which DisplayItem variant an Item represents.
type Kind int

const (
	KindText Kind = iota
	KindRect
)

// FontSize is a coarse font-size classification a Text item carries,
// mirroring the original renderer's computed_style::FontSize.
type FontSize int

const (
	FontMedium FontSize = iota
	FontLarge
	FontXLarge
)

// TextDecoration names the decoration a Text item carries. Only underline
// (used for anchors) is modeled; the original carries more variants that
// this engine's selector/property subset has no way to produce.
type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
)

// Style is the subset of computed style a Text item carries.
type Style struct {
	FontSize       FontSize
	TextDecoration TextDecoration
}

// Point is the on-page position a display item is placed at. Real layout
// (box geometry, line breaking) is out of scope per spec.md §1; a Point
// here is whatever the caller chose to stamp, not a computed result.
type Point struct {
	X, Y int
}

// Item is a single renderable primitive: Text or Rect, tagged by Kind.
type Item struct {
	Kind Kind

	// Text, Style are valid when Kind == KindText.
	Text  string
	Style Style

	// Point is valid for both variants: a Text item's baseline origin, or a
	// Rect's top-left corner.
	Point Point

	// Width, Height are valid when Kind == KindRect.
	Width, Height int
}

// NewText builds a Text display item.
func NewText(text string, style Style, point Point) Item {
	return Item{Kind: KindText, Text: text, Style: style, Point: point}
}

// NewRect builds a Rect display item.
func NewRect(point Point, width, height int) Item {
	return Item{Kind: KindRect, Point: point, Width: width, Height: height}
}

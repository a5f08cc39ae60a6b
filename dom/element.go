package dom

import "golang.org/x/net/html/atom"

// ElementKind classifies an element's Tag into a closed enum: Html, Head,
// Body, Style, Script, P, A, H1, H2, and so on. Any tag this engine does not
// otherwise understand is ElementOther — it is still a perfectly valid
// element, just not one the tree builder or runtime treats specially.
type ElementKind int

// Element kinds. The tags the tree builder, the runtime's document API and
// the navigator branch on get a dedicated kind, as do Meta and Title, which
// nothing branches on; everything else collapses to ElementOther.
const (
	ElementOther ElementKind = iota
	ElementHTML
	ElementHead
	ElementBody
	ElementStyle
	ElementScript
	ElementP
	ElementA
	ElementH1
	ElementH2
	ElementMeta
	ElementTitle
)

// String returns the name of the element kind.
func (k ElementKind) String() string {
	names := [...]string{
		"Other", "Html", "Head", "Body", "Style", "Script",
		"P", "A", "H1", "H2", "Meta", "Title",
	}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Other"
}

// elementKindByAtom maps the golang.org/x/net/html/atom table entry for a
// tag name to our closed ElementKind enum. Using the atom package here
// (rather than a hand-rolled string switch) follows the rest of the
// retrieved corpus — dpotapov/go-pages and withastro/compiler both already
// depend on golang.org/x/net — and gives tag lookup a single well-tested
// table instead of a second one maintained by hand.
var elementKindByAtom = map[atom.Atom]ElementKind{
	atom.Html:   ElementHTML,
	atom.Head:   ElementHead,
	atom.Body:   ElementBody,
	atom.Style:  ElementStyle,
	atom.Script: ElementScript,
	atom.P:      ElementP,
	atom.A:      ElementA,
	atom.H1:     ElementH1,
	atom.H2:     ElementH2,
	atom.Meta:   ElementMeta,
	atom.Title:  ElementTitle,
}

// ElementKindOf classifies a lowercase tag name.
func ElementKindOf(tag string) ElementKind {
	if k, ok := elementKindByAtom[atom.Lookup([]byte(tag))]; ok {
		return k
	}
	return ElementOther
}

// Attribute is a single (name, value) pair on an element. The HTML
// tokenizer builds it from its own name and value buffers; AttributeBuilder
// offers the same accumulation as a standalone type.
type Attribute struct {
	Name  string
	Value string
}

// AttributeSide selects which half of an in-progress attribute a tokenizer
// is currently accumulating characters into.
type AttributeSide int

const (
	// AttributeSideName accumulates into Name, until '=' is seen.
	AttributeSideName AttributeSide = iota
	// AttributeSideValue accumulates into Value.
	AttributeSideValue
)

// AttributeBuilder accumulates an attribute's name and value one character
// at a time, switching sides on '='. It mirrors the accumulation strategy
// the HTML tokenizer's attribute states use.
type AttributeBuilder struct {
	side  AttributeSide
	name  []byte
	value []byte
}

// PushChar appends c to whichever side is currently active.
func (b *AttributeBuilder) PushChar(c byte) {
	if b.side == AttributeSideName {
		b.name = append(b.name, c)
	} else {
		b.value = append(b.value, c)
	}
}

// SwitchToValue moves the builder to the value side. Called on '='.
func (b *AttributeBuilder) SwitchToValue() {
	b.side = AttributeSideValue
}

// Build finalizes the accumulated characters into an Attribute.
func (b *AttributeBuilder) Build() Attribute {
	return Attribute{Name: string(b.name), Value: string(b.value)}
}

package tokenizer

import "github.com/kenjisato/tinybrowser/dom"

// TokenKind is the tag for the Token sum type: Char, StartTag, EndTag, Eof.
type TokenKind int

const (
	// Char carries a single character of data.
	Char TokenKind = iota
	// StartTag carries a start tag, its attributes, and whether it was
	// self-closing.
	StartTag
	// EndTag carries an end tag's name.
	EndTag
	// Eof signals end of input. Once it has been returned, every further
	// call to Next returns Eof again.
	Eof
)

// String returns the name of the token kind.
func (t TokenKind) String() string {
	switch t {
	case Char:
		return "Char"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Eof:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Token is a tagged union keyed by Type, matching the four token kinds
// above.
type Token struct {
	Type TokenKind

	// Tag is the tag name for StartTag/EndTag, lowercased.
	Tag string

	// Attrs holds the attributes for StartTag.
	Attrs []dom.Attribute

	// SelfClosing is true for a StartTag written with a trailing "/>".
	SelfClosing bool

	// Data is the character for Char.
	Data rune
}

// NewCharToken builds a Char token.
func NewCharToken(c rune) Token {
	return Token{Type: Char, Data: c}
}

// NewStartTagToken builds a StartTag token.
func NewStartTagToken(tag string, attrs []dom.Attribute, selfClosing bool) Token {
	return Token{Type: StartTag, Tag: tag, Attrs: attrs, SelfClosing: selfClosing}
}

// NewEndTagToken builds an EndTag token.
func NewEndTagToken(tag string) Token {
	return Token{Type: EndTag, Tag: tag}
}

// NewEofToken builds an Eof token.
func NewEofToken() Token {
	return Token{Type: Eof}
}

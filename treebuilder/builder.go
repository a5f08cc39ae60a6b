// Package treebuilder implements the HTML tree-construction state machine:
// a small subset of the WHATWG insertion-mode table, consuming tokens from
// tokenizer.Tokenizer and building a dom.Node tree.
//
// Grounded in the teacher's treebuilder/builder.go (stack-of-open-elements
// shape, New() wiring a tokenizer) and treebuilder/modes.go (InsertionMode
// enum with a String() method), trimmed from 23 modes and the adoption
// agency algorithm down to the 9 modes this engine models — see DESIGN.md.
package treebuilder

import (
	"github.com/kenjisato/tinybrowser/dom"
	htmlerrors "github.com/kenjisato/tinybrowser/errors"
	"github.com/kenjisato/tinybrowser/tokenizer"
)

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// TreeBuilder drives a tokenizer and assembles its token stream into a DOM
// tree, tracking a stack of open elements and a current insertion mode.
type TreeBuilder struct {
	alloc    *dom.Allocator
	tok      *tokenizer.Tokenizer
	document *dom.Node

	openElements []*dom.Node

	mode         InsertionMode
	originalMode InsertionMode

	errs htmlerrors.ParseErrors
}

// New creates a tree builder that will read from tok and build into a fresh
// document owned by alloc.
func New(alloc *dom.Allocator, tok *tokenizer.Tokenizer) *TreeBuilder {
	return &TreeBuilder{
		alloc:    alloc,
		tok:      tok,
		document: alloc.NewDocument(),
		mode:     Initial,
	}
}

// Errors returns the parse errors collected while building the tree, as the
// ParseErrors aggregate (itself an error, via Error()/Unwrap() []error).
func (tb *TreeBuilder) Errors() htmlerrors.ParseErrors {
	return tb.errs
}

func (tb *TreeBuilder) recordError(code string) {
	tb.errs = append(tb.errs, &htmlerrors.ParseError{Code: code, Message: htmlerrors.Message(code)})
}

// Run drives the tokenizer to Eof and returns the built document.
func (tb *TreeBuilder) Run() *dom.Node {
	for {
		tok := tb.tok.Next()
		tb.step(tok)
		if tok.Type == tokenizer.Eof {
			return tb.document
		}
	}
}

// step dispatches tok against the current mode, following "do not consume"
// transitions until a mode accepts (or drops) the token.
func (tb *TreeBuilder) step(tok tokenizer.Token) {
	for tb.dispatch(tok) {
	}
}

func (tb *TreeBuilder) current() *dom.Node {
	if len(tb.openElements) == 0 {
		return tb.document
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) currentKind() dom.ElementKind {
	cur := tb.current()
	if cur == nil || cur.Kind != dom.KindElement {
		return dom.ElementOther
	}
	return cur.ElementKind
}

func (tb *TreeBuilder) push(n *dom.Node) {
	tb.openElements = append(tb.openElements, n)
}

func (tb *TreeBuilder) pop() *dom.Node {
	if len(tb.openElements) == 0 {
		tb.recordError(htmlerrors.StackUnderflow)
		return nil
	}
	n := tb.openElements[len(tb.openElements)-1]
	tb.openElements = tb.openElements[:len(tb.openElements)-1]
	return n
}

// popUntilKind pops the stack until (and including) the first element of
// the given kind, or until the stack is empty.
func (tb *TreeBuilder) popUntilKind(kind dom.ElementKind) {
	for len(tb.openElements) > 0 {
		n := tb.pop()
		if n != nil && n.Kind == dom.KindElement && n.ElementKind == kind {
			return
		}
	}
}

// popAssert pops the top of the stack, recording an error if it is not of
// the expected kind. The pop still happens either way.
func (tb *TreeBuilder) popAssert(kind dom.ElementKind) {
	if len(tb.openElements) == 0 {
		tb.recordError(htmlerrors.StackUnderflow)
		return
	}
	top := tb.openElements[len(tb.openElements)-1]
	if top.Kind != dom.KindElement || top.ElementKind != kind {
		tb.recordError(htmlerrors.StackUnderflow)
	}
	tb.pop()
}

// spliceChild wires n as the last child of parent using the insertion
// algorithm's linking steps (everything but the stack push).
//
// The third step is the recognized previous_sibling quirk: a newly
// inserted sibling's previous_sibling is set to the parent's first child,
// not its immediate predecessor. Preserved verbatim; see DESIGN.md.
func spliceChild(parent, n *dom.Node) {
	if first := parent.FirstChild(); first != nil {
		last := first
		for last.NextSibling() != nil {
			last = last.NextSibling()
		}
		last.SetNextSibling(n)
		n.SetPreviousSibling(first)
	} else {
		parent.SetFirstChild(n)
	}
	parent.SetLastChild(n)
	n.SetParent(parent)
}

// insertElement implements insert_element(tag, attrs): create the element,
// splice it under the current insertion point, and push it onto the stack
// of open elements.
func (tb *TreeBuilder) insertElement(tag string, attrs []dom.Attribute) *dom.Node {
	n := tb.alloc.NewElementWithAttrs(tag, attrs)
	spliceChild(tb.current(), n)
	tb.push(n)
	return n
}

// insertChar implements character insertion: append to a Text node already
// at the top of the stack, drop bare newline/space runs, or start a new
// Text node (also pushed, so subsequent characters append to it).
func (tb *TreeBuilder) insertChar(c rune) {
	top := tb.current()
	if top.IsText() {
		top.Data += string(c)
		return
	}
	if c == '\n' || c == ' ' {
		return
	}
	n := tb.alloc.NewText(string(c))
	spliceChild(top, n)
	tb.push(n)
}

// dispatch processes tok in the current mode and returns true if tok must
// be reprocessed against a newly entered mode ("do not consume").
func (tb *TreeBuilder) dispatch(tok tokenizer.Token) bool {
	switch tb.mode {
	case Initial:
		if tok.Type == tokenizer.Char {
			return false
		}
		tb.mode = BeforeHTML
		return true

	case BeforeHTML:
		switch {
		case tok.Type == tokenizer.Char && isWhitespace(tok.Data):
			return false
		case tok.Type == tokenizer.StartTag && tok.Tag == "html":
			tb.insertElement(tok.Tag, tok.Attrs)
			tb.mode = BeforeHead
			return false
		case tok.Type == tokenizer.Eof:
			return false
		default:
			tb.insertElement("html", nil)
			tb.mode = BeforeHead
			return true
		}

	case BeforeHead:
		switch {
		case tok.Type == tokenizer.Char && isWhitespace(tok.Data):
			return false
		case tok.Type == tokenizer.StartTag && tok.Tag == "head":
			tb.insertElement(tok.Tag, tok.Attrs)
			tb.mode = InHead
			return false
		default:
			tb.insertElement("head", nil)
			tb.mode = InHead
			return true
		}

	case InHead:
		switch {
		case tok.Type == tokenizer.Char && isWhitespace(tok.Data):
			return false
		case tok.Type == tokenizer.StartTag && (tok.Tag == "style" || tok.Tag == "script"):
			tb.insertElement(tok.Tag, tok.Attrs)
			tb.originalMode = InHead
			tb.mode = Text
			tb.tok.EnterRawText(tok.Tag)
			return false
		case tok.Type == tokenizer.StartTag && tok.Tag == "body":
			tb.popUntilKind(dom.ElementHead)
			tb.mode = AfterHead
			return true
		case tok.Type == tokenizer.EndTag && tok.Tag == "head":
			tb.popUntilKind(dom.ElementHead)
			tb.mode = AfterHead
			return false
		case tok.Type == tokenizer.Eof:
			return false
		default:
			// Recognized start tags not handled above (and any other
			// token, e.g. <meta>/<title>) are silently consumed: this
			// engine does not model them.
			return false
		}

	case AfterHead:
		switch {
		case tok.Type == tokenizer.Char && isWhitespace(tok.Data):
			tb.insertChar(tok.Data)
			return false
		case tok.Type == tokenizer.StartTag && tok.Tag == "body":
			tb.insertElement(tok.Tag, tok.Attrs)
			tb.mode = InBody
			return false
		case tok.Type == tokenizer.Eof:
			return false
		default:
			tb.insertElement("body", nil)
			tb.mode = InBody
			return true
		}

	case InBody:
		switch tok.Type {
		case tokenizer.StartTag:
			switch tok.Tag {
			case "h1", "h2", "p", "a":
				tb.insertElement(tok.Tag, tok.Attrs)
			case "style", "script":
				// Not in the literal insertion-mode table (which only
				// wires rawtext through InHead), but <script> commonly
				// sits at the end of <body> and get_js_content must be
				// able to find it; reuse the same Text-mode handoff.
				tb.insertElement(tok.Tag, tok.Attrs)
				tb.originalMode = InBody
				tb.mode = Text
				tb.tok.EnterRawText(tok.Tag)
			}
			return false
		case tokenizer.Char:
			tb.insertChar(tok.Data)
			return false
		case tokenizer.EndTag:
			switch tok.Tag {
			case "body":
				tb.mode = AfterBody
				tb.popUntilKind(dom.ElementBody)
			case "html":
				if tb.currentKind() == dom.ElementBody {
					tb.pop()
				}
				tb.mode = AfterBody
				tb.popAssert(dom.ElementHTML)
			case "h1", "h2", "p", "a":
				tb.popUntilKind(dom.ElementKindOf(tok.Tag))
			}
			return false
		default: // Eof
			return false
		}

	case Text:
		switch {
		case tok.Type == tokenizer.EndTag && (tok.Tag == "style" || tok.Tag == "script"):
			tb.popUntilKind(dom.ElementKindOf(tok.Tag))
			tb.tok.ExitRawText()
			tb.mode = tb.originalMode
			return false
		case tok.Type == tokenizer.Char:
			tb.insertChar(tok.Data)
			return false
		default: // Eof
			return false
		}

	case AfterBody:
		switch {
		case tok.Type == tokenizer.EndTag && tok.Tag == "html":
			tb.mode = AfterAfterBody
			return false
		case tok.Type == tokenizer.Eof:
			return false
		default:
			tb.mode = InBody
			return true
		}

	case AfterAfterBody:
		if tok.Type == tokenizer.Eof {
			return false
		}
		tb.mode = InBody
		return true
	}
	return false
}

// Parse tokenizes and builds a complete document tree from an HTML source
// string, the entry point the rest of the pipeline calls.
func Parse(alloc *dom.Allocator, source string) (*dom.Node, htmlerrors.ParseErrors) {
	tb := New(alloc, tokenizer.New(source))
	doc := tb.Run()
	return doc, tb.Errors()
}

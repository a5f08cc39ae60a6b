// Package tokenizer implements an HTML tokenizer: a byte stream turned into
// a lazy sequence of Char, StartTag, EndTag, and Eof tokens, covering a
// small WHATWG state subset.
//
// Adapted from the teacher's tokenizer (github.com/MeKo-Christian/JustGoHTML
// tokenizer/tokenizer.go): same pull-based Next() shape and lowercase/attr
// handling, trimmed to a handful of states (no comments, no DOCTYPE, no
// character references — see DESIGN.md).
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/kenjisato/tinybrowser/dom"
	htmlerrors "github.com/kenjisato/tinybrowser/errors"
)

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isASCIIAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c rune) bool {
	return isASCIIAlpha(c) || (c >= '0' && c <= '9') || c == '-' || c == ':'
}

// Tokenizer turns an HTML source string into a stream of tokens, pulled one
// at a time with Next(). It never fails: malformed input is recovered from
// locally and tokenization continues.
type Tokenizer struct {
	input []rune
	pos   int
	state State

	// in-progress tag
	tagName        strings.Builder
	tagIsEnd       bool
	tagSelfClosing bool
	attrs          []dom.Attribute
	curAttrName    strings.Builder
	curAttrValue   strings.Builder
	attrQuote      rune

	// rawtext support for <style>/<script>: the tree builder switches this
	// tokenizer's context in and out of rawtext mode around those elements.
	rawTextTag string
	inRawText  bool
	endTagName strings.Builder

	pending []Token
	errs    htmlerrors.ParseErrors
}

// New creates a tokenizer over the given HTML source.
func New(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input), state: Data}
}

// EnterRawText switches the tokenizer into ScriptData (rawtext) mode, to be
// called once the tree builder has inserted a <style> or <script> element
// and transitioned to the Text insertion mode. tag is the element's name,
// used to recognize the matching end tag.
func (t *Tokenizer) EnterRawText(tag string) {
	t.inRawText = true
	t.rawTextTag = tag
	t.state = ScriptData
}

// ExitRawText switches the tokenizer back to Data, to be called once the
// matching end tag has been consumed and the tree builder leaves Text mode.
func (t *Tokenizer) ExitRawText() {
	t.inRawText = false
	t.rawTextTag = ""
	t.state = Data
}

// Errors returns the parse errors collected so far, as the ParseErrors
// aggregate (itself an error, via Error()/Unwrap() []error).
func (t *Tokenizer) Errors() htmlerrors.ParseErrors {
	return t.errs
}

func (t *Tokenizer) recordError(code string) {
	t.errs = append(t.errs, &htmlerrors.ParseError{Code: code, Message: htmlerrors.Message(code)})
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.pos >= len(t.input) {
		return 0, false
	}
	return t.input[t.pos], true
}

func (t *Tokenizer) advance() {
	t.pos++
}

func (t *Tokenizer) startTag(isEnd bool) {
	t.tagIsEnd = isEnd
	t.tagSelfClosing = false
	t.tagName.Reset()
	t.attrs = nil
}

func (t *Tokenizer) finishCurrentAttr(hasValue bool) {
	if t.curAttrName.Len() == 0 {
		t.curAttrName.Reset()
		t.curAttrValue.Reset()
		return
	}
	value := ""
	if hasValue {
		value = t.curAttrValue.String()
	}
	t.attrs = append(t.attrs, dom.Attribute{Name: t.curAttrName.String(), Value: value})
	t.curAttrName.Reset()
	t.curAttrValue.Reset()
}

func (t *Tokenizer) finishTag() Token {
	name := t.tagName.String()
	if t.tagIsEnd {
		return NewEndTagToken(name)
	}
	return NewStartTagToken(name, t.attrs, t.tagSelfClosing)
}

func (t *Tokenizer) push(tok Token) {
	t.pending = append(t.pending, tok)
}

// Next returns the next token. The final token returned for any input is
// always Eof; calling Next again after Eof keeps returning Eof.
func (t *Tokenizer) Next() Token {
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok
		}

		c, ok := t.peek()
		if !ok {
			if t.state >= TagName && t.state <= SelfClosingStartTag {
				t.recordError(htmlerrors.EOFInTag)
				t.state = Data
			}
			return NewEofToken()
		}

		switch t.state {
		case Data:
			if c == '<' {
				t.advance()
				t.state = TagOpen
				continue
			}
			t.advance()
			if c == 0 {
				t.recordError(htmlerrors.UnexpectedNullCharacter)
				return NewCharToken('�')
			}
			return NewCharToken(c)

		case TagOpen:
			switch {
			case c == '/':
				t.advance()
				t.state = EndTagOpen
			case isASCIIAlpha(c):
				t.startTag(false)
				t.state = TagName
			default:
				t.recordError(htmlerrors.InvalidFirstCharacterOfTagName)
				t.state = Data
				return NewCharToken('<')
			}

		case EndTagOpen:
			switch {
			case isASCIIAlpha(c):
				t.startTag(true)
				t.state = TagName
			case c == '>':
				t.advance()
				t.state = Data
			default:
				t.state = TemporaryBuffer
			}

		case TemporaryBuffer:
			if c == '>' {
				t.advance()
				t.state = Data
			} else {
				t.advance()
			}

		case TagName:
			switch {
			case isWhitespace(c):
				t.advance()
				t.state = BeforeAttributeName
			case c == '/':
				t.advance()
				t.state = SelfClosingStartTag
			case c == '>':
				t.advance()
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.advance()
				t.tagName.WriteRune(unicode.ToLower(c))
			}

		case BeforeAttributeName:
			switch {
			case isWhitespace(c):
				t.advance()
			case c == '/':
				t.advance()
				t.state = SelfClosingStartTag
			case c == '>':
				t.advance()
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.state = AttributeName
			}

		case AttributeName:
			switch {
			case isWhitespace(c):
				t.advance()
				t.finishCurrentAttr(false)
				t.state = AfterAttributeName
			case c == '/':
				t.advance()
				t.finishCurrentAttr(false)
				t.state = SelfClosingStartTag
			case c == '=':
				t.advance()
				t.state = BeforeAttributeValue
			case c == '>':
				t.advance()
				t.finishCurrentAttr(false)
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.advance()
				t.curAttrName.WriteRune(unicode.ToLower(c))
			}

		case AfterAttributeName:
			switch {
			case isWhitespace(c):
				t.advance()
			case c == '/':
				t.advance()
				t.state = SelfClosingStartTag
			case c == '=':
				t.advance()
				t.state = BeforeAttributeValue
			case c == '>':
				t.advance()
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.state = AttributeName
			}

		case BeforeAttributeValue:
			switch {
			case isWhitespace(c):
				t.advance()
			case c == '"' || c == '\'':
				t.attrQuote = c
				t.advance()
				t.state = AttributeValue
			case c == '>':
				t.recordError(htmlerrors.MissingAttributeValue)
				t.advance()
				t.finishCurrentAttr(false)
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.attrQuote = 0
				t.state = AttributeValue
			}

		case AttributeValue:
			if t.attrQuote != 0 {
				switch {
				case c == t.attrQuote:
					t.advance()
					t.finishCurrentAttr(true)
					t.state = AfterAttributeValue
				default:
					t.advance()
					t.curAttrValue.WriteRune(c)
				}
			} else {
				switch {
				case isWhitespace(c):
					t.advance()
					t.finishCurrentAttr(true)
					t.state = BeforeAttributeName
				case c == '>':
					t.advance()
					t.finishCurrentAttr(true)
					tok := t.finishTag()
					t.state = Data
					return tok
				default:
					t.advance()
					t.curAttrValue.WriteRune(c)
				}
			}

		case AfterAttributeValue:
			switch {
			case isWhitespace(c):
				t.advance()
				t.state = BeforeAttributeName
			case c == '/':
				t.advance()
				t.state = SelfClosingStartTag
			case c == '>':
				t.advance()
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.state = BeforeAttributeName
			}

		case SelfClosingStartTag:
			switch c {
			case '>':
				t.advance()
				t.tagSelfClosing = true
				tok := t.finishTag()
				t.state = Data
				return tok
			default:
				t.state = BeforeAttributeName
			}

		case ScriptData:
			if c == '<' {
				t.advance()
				t.state = ScriptDataEndTagOpen
				continue
			}
			t.advance()
			return NewCharToken(c)

		case ScriptDataEndTagOpen:
			if c == '/' {
				t.advance()
				t.endTagName.Reset()
				t.state = ScriptDataEndTagName
				continue
			}
			t.state = ScriptData
			return NewCharToken('<')

		case ScriptDataEndTagName:
			switch {
			case isASCIIAlpha(c):
				t.advance()
				t.endTagName.WriteRune(unicode.ToLower(c))
			case (isWhitespace(c) || c == '/' || c == '>') && strings.EqualFold(t.endTagName.String(), t.rawTextTag):
				name := t.endTagName.String()
				for {
					cc, okc := t.peek()
					if !okc {
						break
					}
					t.advance()
					if cc == '>' {
						break
					}
				}
				t.state = Data
				return NewEndTagToken(name)
			default:
				// Not the matching end tag: the "</" + accumulated letters
				// were just literal rawtext content. Flush them back out
				// as characters and resume scanning rawtext from here.
				t.push(NewCharToken('<'))
				t.push(NewCharToken('/'))
				for _, r := range t.endTagName.String() {
					t.push(NewCharToken(r))
				}
				t.endTagName.Reset()
				t.state = ScriptData
			}
		}
	}
}

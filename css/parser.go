package css

import (
	"strconv"
	"strings"

	cssErrors "github.com/kenjisato/tinybrowser/errors"
)

// SelectorKind tags which variant a Selector represents.
type SelectorKind int

const (
	SelectorType SelectorKind = iota
	SelectorClass
	SelectorId
	// SelectorUnknown is a placeholder for a selector prelude that could
	// not be parsed; the rule is retained as inert rather than dropped.
	SelectorUnknown
)

// String returns the name of the selector kind.
func (k SelectorKind) String() string {
	switch k {
	case SelectorType:
		return "Type"
	case SelectorClass:
		return "Class"
	case SelectorId:
		return "Id"
	case SelectorUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Selector is one of Type(name), Class(name), Id(name), or Unknown.
type Selector struct {
	Kind SelectorKind
	Name string
}

// Declaration is a single property/value pair inside a rule's block.
type Declaration struct {
	Property string
	Value    ComponentValue
}

// QualifiedRule is a selector plus its declaration block.
type QualifiedRule struct {
	Selector     Selector
	Declarations []Declaration
}

// Stylesheet is an ordered list of qualified rules, plus any selector
// preludes that could not be parsed (the rules themselves are still kept,
// with Selector::Unknown — see recoverUnknownSelector).
type Stylesheet struct {
	Rules  []QualifiedRule
	Errors []*cssErrors.SelectorError
}

// Parser consumes a pre-tokenized, whitespace-filtered CSS token stream and
// builds a Stylesheet.
type Parser struct {
	toks []Token
	pos  int
	errs []*cssErrors.SelectorError
}

// Parse tokenizes and parses a complete CSS source string.
func Parse(source string) Stylesheet {
	tok := New(source)
	var toks []Token
	for {
		t := tok.Next()
		if t.Kind == Whitespace {
			continue
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			break
		}
	}
	p := &Parser{toks: toks}
	sheet := p.parseStylesheet()
	sheet.Errors = p.errs
	return sheet
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func isDelim(t Token, ch rune) bool {
	return t.Kind == Delim && t.Ch == ch
}

func (p *Parser) parseStylesheet() Stylesheet {
	var rules []QualifiedRule
	for p.peek().Kind != EOF {
		rules = append(rules, p.parseRule())
	}
	return Stylesheet{Rules: rules}
}

func (p *Parser) parseRule() QualifiedRule {
	sel := p.parseSelector()

	if isDelim(p.peek(), '{') {
		p.advance()
	}

	var decls []Declaration
	for {
		switch {
		case p.peek().Kind == EOF:
			return QualifiedRule{Selector: sel, Declarations: decls}
		case isDelim(p.peek(), '}'):
			p.advance()
			return QualifiedRule{Selector: sel, Declarations: decls}
		case isDelim(p.peek(), ';'):
			p.advance()
		default:
			if d, ok := p.parseDeclaration(); ok {
				decls = append(decls, d)
			}
		}
	}
}

// parseSelector consumes one selector prelude. An unparsable prelude is
// resynchronized by skipping tokens up to (not including) the opening "{",
// and surfaces as Selector::Unknown; the rule is retained as inert rather
// than dropped.
func (p *Parser) parseSelector() Selector {
	tok := p.peek()
	switch {
	case isDelim(tok, '.'):
		p.advance()
		if p.peek().Kind == Ident {
			name := p.advance().Text
			return Selector{Kind: SelectorClass, Name: name}
		}
		return p.recoverUnknownSelector()
	case tok.Kind == Hash:
		p.advance()
		return Selector{Kind: SelectorId, Name: tok.Text}
	case tok.Kind == Ident:
		p.advance()
		return Selector{Kind: SelectorType, Name: tok.Text}
	default:
		return p.recoverUnknownSelector()
	}
}

// recoverUnknownSelector skips the unparsable prelude up to (not including)
// "{", recording the reason (errors.UnknownCSSSelector) as a SelectorError
// a caller can inspect via Stylesheet.Errors.
//
// Position is a token index, not a byte offset: this tokenizer doesn't track
// source positions (see css/tokens.go), so that's the most precise location
// available.
func (p *Parser) recoverUnknownSelector() Selector {
	start := p.pos
	var sb strings.Builder
	for p.peek().Kind != EOF && !isDelim(p.peek(), '{') {
		t := p.advance()
		switch t.Kind {
		case Ident, Hash, AtKeyword, StringToken:
			sb.WriteString(t.Text)
		case Number:
			sb.WriteString(strconv.FormatUint(t.Num, 10))
		case Delim:
			sb.WriteRune(t.Ch)
		}
	}
	p.errs = append(p.errs, &cssErrors.SelectorError{
		Selector: sb.String(),
		Position: start,
		Message:  cssErrors.Message(cssErrors.UnknownCSSSelector),
	})
	return Selector{Kind: SelectorUnknown}
}

// parseDeclaration consumes one "property: value" pair. A malformed
// declaration, or one with no value, is resynchronized up to the next ";"
// or "}" and dropped (per the recovery policy, a valueless declaration is
// simply not retained).
func (p *Parser) parseDeclaration() (Declaration, bool) {
	if p.peek().Kind != Ident {
		p.resyncToSemiOrClose()
		return Declaration{}, false
	}
	prop := p.advance().Text

	if !isDelim(p.peek(), ':') {
		p.resyncToSemiOrClose()
		return Declaration{}, false
	}
	p.advance()

	if p.peek().Kind == EOF || isDelim(p.peek(), ';') || isDelim(p.peek(), '}') {
		return Declaration{}, false
	}
	value := p.advance()
	return Declaration{Property: prop, Value: value}, true
}

func (p *Parser) resyncToSemiOrClose() {
	for p.peek().Kind != EOF && !isDelim(p.peek(), ';') && !isDelim(p.peek(), '}') {
		p.advance()
	}
}

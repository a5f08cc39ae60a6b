package js

import "strings"

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

var keywords = map[string]TokenKind{
	"var":      KwVar,
	"function": KwFunction,
	"return":   KwReturn,
}

// Lexer turns JS source into a stream of Tokens, pulled one at a time with
// Next().
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a lexer over the given JS source.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	i := l.pos + offset
	if i >= len(l.input) {
		return 0, false
	}
	return l.input[i], true
}

// Next returns the next token, ending with a single TEOF token that repeats
// on further calls.
func (l *Lexer) Next() Token {
	for {
		c, ok := l.peek()
		if !ok {
			return Token{Kind: TEOF}
		}
		if isSpace(c) {
			l.pos++
			continue
		}
		break
	}

	c, _ := l.peek()

	switch {
	case isDigit(c):
		return l.consumeNumber()
	case isIdentStart(c):
		return l.consumeIdentOrKeyword()
	case c == '"' || c == '\'':
		return l.consumeString(c)
	default:
		l.pos++
		return Token{Kind: TPunct, Text: string(c)}
	}
}

func (l *Lexer) consumeNumber() Token {
	var n uint64
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		n = n*10 + uint64(c-'0')
		l.pos++
	}
	return Token{Kind: TNumber, Num: n}
}

func (l *Lexer) consumeIdentOrKeyword() Token {
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok || !isIdentChar(c) {
			break
		}
		sb.WriteRune(c)
		l.pos++
	}
	name := sb.String()
	if kw, ok := keywords[name]; ok {
		return Token{Kind: kw, Text: name}
	}
	return Token{Kind: TIdent, Text: name}
}

func (l *Lexer) consumeString(quote rune) Token {
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok || c == quote {
			if ok {
				l.pos++
			}
			break
		}
		if c == '\\' {
			if n, ok := l.peekAt(1); ok {
				sb.WriteRune(n)
				l.pos += 2
				continue
			}
		}
		sb.WriteRune(c)
		l.pos++
	}
	return Token{Kind: TString, Str: sb.String()}
}

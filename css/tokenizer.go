package css

import "strings"

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c rune) bool {
	return isLetter(c) || c == '_' || c == '-'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// Tokenizer turns a CSS source string into a stream of Tokens, pulled one
// at a time with Next().
type Tokenizer struct {
	input []rune
	pos   int
}

// New creates a tokenizer over the given CSS source.
func New(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input)}
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.pos >= len(t.input) {
		return 0, false
	}
	return t.input[t.pos], true
}

func (t *Tokenizer) peekAt(offset int) (rune, bool) {
	i := t.pos + offset
	if i >= len(t.input) {
		return 0, false
	}
	return t.input[i], true
}

// Next returns the next token, ending with a single EOF token that repeats
// on further calls.
func (t *Tokenizer) Next() Token {
	c, ok := t.peek()
	if !ok {
		return Token{Kind: EOF}
	}

	if isWhitespace(c) {
		for {
			c, ok := t.peek()
			if !ok || !isWhitespace(c) {
				break
			}
			t.pos++
		}
		return Token{Kind: Whitespace}
	}

	switch {
	case c == '#':
		t.pos++
		if n, ok := t.peek(); ok && isIdentChar(n) {
			return Token{Kind: Hash, Text: t.consumeIdent()}
		}
		return Token{Kind: Delim, Ch: '#'}

	case c == '@':
		t.pos++
		if n, ok := t.peek(); ok && isIdentStart(n) {
			return Token{Kind: AtKeyword, Text: t.consumeIdent()}
		}
		return Token{Kind: Delim, Ch: '@'}

	case c == '"' || c == '\'':
		return t.consumeString(c)

	case c == '(':
		t.pos++
		return Token{Kind: OpenParen}

	case c == ')':
		t.pos++
		return Token{Kind: CloseParen}

	case isDigit(c):
		return t.consumeNumber()

	case isIdentStart(c):
		return Token{Kind: Ident, Text: t.consumeIdent()}

	default:
		t.pos++
		return Token{Kind: Delim, Ch: c}
	}
}

func (t *Tokenizer) consumeIdent() string {
	var sb strings.Builder
	for {
		c, ok := t.peek()
		if !ok || !isIdentChar(c) {
			break
		}
		sb.WriteRune(c)
		t.pos++
	}
	return sb.String()
}

func (t *Tokenizer) consumeNumber() Token {
	var n uint64
	for {
		c, ok := t.peek()
		if !ok || !isDigit(c) {
			break
		}
		n = n*10 + uint64(c-'0')
		t.pos++
	}
	return Token{Kind: Number, Num: n}
}

func (t *Tokenizer) consumeString(quote rune) Token {
	t.pos++ // opening quote
	var sb strings.Builder
	for {
		c, ok := t.peek()
		if !ok || c == quote {
			if ok {
				t.pos++
			}
			break
		}
		if c == '\\' {
			if n, ok := t.peekAt(1); ok {
				sb.WriteRune(n)
				t.pos += 2
				continue
			}
		}
		sb.WriteRune(c)
		t.pos++
	}
	return Token{Kind: StringToken, Text: sb.String()}
}

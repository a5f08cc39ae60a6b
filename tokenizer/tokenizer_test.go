package tokenizer_test

import (
	"testing"

	"github.com/kenjisato/tinybrowser/tokenizer"
)

func collect(t *testing.T, tok *tokenizer.Tokenizer) []tokenizer.Token {
	t.Helper()
	var toks []tokenizer.Token
	for {
		tk := tok.Next()
		toks = append(toks, tk)
		if tk.Type == tokenizer.Eof {
			return toks
		}
	}
}

func TestDataCharacters(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New("abc"))
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4 (3 chars + eof)", len(toks))
	}
	want := []rune{'a', 'b', 'c'}
	for i, w := range want {
		if toks[i].Type != tokenizer.Char || toks[i].Data != w {
			t.Errorf("token %d = %+v, want Char(%q)", i, toks[i], w)
		}
	}
	if toks[3].Type != tokenizer.Eof {
		t.Errorf("last token = %+v, want Eof", toks[3])
	}
}

func TestSimpleStartAndEndTag(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New("<p>hi</p>"))

	if toks[0].Type != tokenizer.StartTag || toks[0].Tag != "p" {
		t.Fatalf("token 0 = %+v, want StartTag(p)", toks[0])
	}
	if toks[1].Data != 'h' || toks[2].Data != 'i' {
		t.Fatalf("tokens 1-2 = %+v %+v, want Char(h) Char(i)", toks[1], toks[2])
	}
	if toks[3].Type != tokenizer.EndTag || toks[3].Tag != "p" {
		t.Fatalf("token 3 = %+v, want EndTag(p)", toks[3])
	}
	if toks[4].Type != tokenizer.Eof {
		t.Fatalf("token 4 = %+v, want Eof", toks[4])
	}
}

func TestTagNameLowercased(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New("<DIV></DIV>"))
	if toks[0].Tag != "div" {
		t.Errorf("Tag = %q, want lowercased %q", toks[0].Tag, "div")
	}
	if toks[1].Tag != "div" {
		t.Errorf("end Tag = %q, want lowercased %q", toks[1].Tag, "div")
	}
}

func TestAttributesQuotedAndUnquoted(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New(`<a href="x" target=_blank>`))
	tag := toks[0]
	if tag.Type != tokenizer.StartTag || tag.Tag != "a" {
		t.Fatalf("token 0 = %+v, want StartTag(a)", tag)
	}
	if len(tag.Attrs) != 2 {
		t.Fatalf("Attrs = %v, want 2 entries", tag.Attrs)
	}
	if tag.Attrs[0].Name != "href" || tag.Attrs[0].Value != "x" {
		t.Errorf("Attrs[0] = %+v, want {href x}", tag.Attrs[0])
	}
	if tag.Attrs[1].Name != "target" || tag.Attrs[1].Value != "_blank" {
		t.Errorf("Attrs[1] = %+v, want {target _blank}", tag.Attrs[1])
	}
}

func TestAttributeNameLowercased(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New(`<a ID="x">`))
	if toks[0].Attrs[0].Name != "id" {
		t.Errorf("attribute name = %q, want lowercased %q", toks[0].Attrs[0].Name, "id")
	}
}

func TestSelfClosingTag(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New(`<br/>`))
	if !toks[0].SelfClosing {
		t.Errorf("SelfClosing = false, want true for %+v", toks[0])
	}
}

func TestBooleanAttributeNoValue(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New(`<input disabled>`))
	if len(toks[0].Attrs) != 1 {
		t.Fatalf("Attrs = %v, want 1 entry", toks[0].Attrs)
	}
	if toks[0].Attrs[0].Name != "disabled" || toks[0].Attrs[0].Value != "" {
		t.Errorf("Attrs[0] = %+v, want {disabled \"\"}", toks[0].Attrs[0])
	}
}

func TestRawTextModeEmitsCharactersUntilMatchingEndTag(t *testing.T) {
	t.Parallel()

	tok := tokenizer.New(`p { color: red; }</style>after`)
	tok.EnterRawText("style")

	var text []rune
	var tk tokenizer.Token
	for {
		tk = tok.Next()
		if tk.Type != tokenizer.Char {
			break
		}
		text = append(text, tk.Data)
	}

	if string(text) != "p { color: red; }" {
		t.Fatalf("rawtext content = %q, want %q", string(text), "p { color: red; }")
	}
	if tk.Type != tokenizer.EndTag || tk.Tag != "style" {
		t.Fatalf("terminator token = %+v, want EndTag(style)", tk)
	}

	tok.ExitRawText()
	rest := collect(t, tok)
	if len(rest) != 6 {
		t.Fatalf("got %d tokens after rawtext, want 6 (5 chars + eof)", len(rest))
	}
}

func TestRawTextModeMismatchedEndTagIsLiteral(t *testing.T) {
	t.Parallel()

	tok := tokenizer.New(`x</scrip>y</script>`)
	tok.EnterRawText("script")

	var text []rune
	var tk tokenizer.Token
	for {
		tk = tok.Next()
		if tk.Type != tokenizer.Char {
			break
		}
		text = append(text, tk.Data)
	}

	if string(text) != "x</scrip>y" {
		t.Fatalf("rawtext content = %q, want %q", string(text), "x</scrip>y")
	}
	if tk.Type != tokenizer.EndTag || tk.Tag != "script" {
		t.Fatalf("terminator token = %+v, want EndTag(script)", tk)
	}
}

func TestBogusEndTagIsDiscarded(t *testing.T) {
	t.Parallel()

	toks := collect(t, tokenizer.New(`before</3>after`))
	var chars []rune
	for _, tk := range toks {
		if tk.Type == tokenizer.Char {
			chars = append(chars, tk.Data)
		}
	}
	if string(chars) != "beforeafter" {
		t.Errorf("chars = %q, want %q", string(chars), "beforeafter")
	}
}

func TestEofMidTagEmitsEof(t *testing.T) {
	t.Parallel()

	tok := tokenizer.New(`<div`)
	toks := collect(t, tok)
	if toks[len(toks)-1].Type != tokenizer.Eof {
		t.Fatalf("last token = %+v, want Eof", toks[len(toks)-1])
	}
}

// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derivation

import "testing"

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	lx := newLexer(src)
	var toks []token
	for {
		tok, err := lx.next()
		if err != nil {
			t.Fatalf("lexer.next() on %q: error: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		desc string
		src  string
		want []tokenKind
	}{
		{desc: "identifiers and keywords", src: "foo_bar i32", want: []tokenKind{tokIdent, tokIdent, tokEOF}},
		{desc: "integer literal", src: "12345", want: []tokenKind{tokInt, tokEOF}},
		{desc: "string literal", src: `"hi"`, want: []tokenKind{tokString, tokEOF}},
		{desc: "two-char operators", src: "&& || == != <= >=", want: []tokenKind{
			tokAnd, tokOr, tokEq, tokNeq, tokLe, tokGe, tokEOF,
		}},
		{desc: "single-char operators and punctuation", src: "+-*/()[]:,;?<>", want: []tokenKind{
			tokPlus, tokMinus, tokStar, tokSlash, tokLParen, tokRParen,
			tokLBracket, tokRBracket, tokColon, tokComma, tokSemi, tokQuestion,
			tokLAngle, tokRAngle, tokEOF,
		}},
		{desc: "bang is not", src: "!x", want: []tokenKind{tokNot, tokIdent, tokEOF}},
		{desc: "whitespace is skipped", src: "  a \t\n  b  ", want: []tokenKind{tokIdent, tokIdent, tokEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(tt.want))
			}
			for i, tok := range toks {
				if tok.kind != tt.want[i] {
					t.Errorf("token %d kind = %v, want %v", i, tok.kind, tt.want[i])
				}
			}
		})
	}
}

func TestLexerIntegerValue(t *testing.T) {
	toks := lexAll(t, "42")
	if toks[0].ival != 42 {
		t.Errorf("ival = %d, want 42", toks[0].ival)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\tc\"d"`)
	want := "a\nb\tc\"d"
	if toks[0].text != want {
		t.Errorf("string literal decoded to %q, want %q", toks[0].text, want)
	}
}

func TestLexerUnterminatedStringFails(t *testing.T) {
	lx := newLexer(`"abc`)
	if _, err := lx.next(); err == nil {
		t.Errorf("lexing an unterminated string literal succeeded, want an error")
	}
}

func TestLexerIntegerOutOfRangeFails(t *testing.T) {
	lx := newLexer("99999999999999999999999999999")
	if _, err := lx.next(); err == nil {
		t.Errorf("lexing an out-of-range integer literal succeeded, want an error")
	}
}

func TestLexerUnexpectedCharacterFails(t *testing.T) {
	lx := newLexer("@")
	if _, err := lx.next(); err == nil {
		t.Errorf("lexing %q succeeded, want an error", "@")
	}
}

func TestLexerFatArrowAndAssign(t *testing.T) {
	toks := lexAll(t, "= =>")
	if toks[0].kind != tokAssign {
		t.Errorf("first token = %v, want tokAssign", toks[0].kind)
	}
	if toks[1].kind != tokFatArrow {
		t.Errorf("second token = %v, want tokFatArrow", toks[1].kind)
	}
}

func TestParseErrorReportsOffset(t *testing.T) {
	_, err := Compile("1 + @", nil)
	if err == nil {
		t.Fatalf("Compile() succeeded, want an error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Offset == 0 {
		t.Errorf("ParseError.Offset = 0, want the byte offset of the bad character")
	}
}

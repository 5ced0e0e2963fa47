// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package scan

import (
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// sourceLexer splits host source into the few token classes the matcher cares
// about. The trailing Other rule accepts any single rune so lexing never fails,
// even on fragments with unterminated strings. A '#' directly followed by '['
// opens an attribute, not a comment, so only the '#' itself is dropped.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|#(?:[^\[\n][^\n]*)?|/\*[\s\S]*?\*/`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `[a-zA-Z_\\][\w\\]*`},
	{Name: "Open", Pattern: `[(\[{]`},
	{Name: "Close", Pattern: `[)\]}]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Semi", Pattern: `;`},
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `[\s\S]`},
})

var symbols = sourceLexer.Symbols()

var (
	tokComment = symbols["Comment"]
	tokString  = symbols["String"]
	tokIdent   = symbols["Ident"]
	tokOpen    = symbols["Open"]
	tokClose   = symbols["Close"]
	tokComma   = symbols["Comma"]
	tokSemi    = symbols["Semi"]
	tokSpace   = symbols["whitespace"]
)

// Token is a lexed token with its byte offset in the scanned text.
type Token struct {
	Type   lexer.TokenType
	Value  string
	Offset int
}

// End returns the offset just past the token.
func (t Token) End() int { return t.Offset + len(t.Value) }

// IsString reports whether the token is a quoted string literal.
func (t Token) IsString() bool { return t.Type == tokString }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Type == tokIdent }

// IsOpen reports whether the token opens a bracket.
func (t Token) IsOpen() bool { return t.Type == tokOpen }

// IsClose reports whether the token closes a bracket.
func (t Token) IsClose() bool { return t.Type == tokClose }

// IsComma reports whether the token is a comma.
func (t Token) IsComma() bool { return t.Type == tokComma }

// Tokens is the token stream of one piece of text. Whitespace is elided.
type Tokens []Token

// Tokenize lexes text. Comments are dropped along with whitespace.
func Tokenize(text string) Tokens {
	lex, err := sourceLexer.LexString("", text)
	if err != nil {
		return nil
	}
	var out Tokens
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return out
		}
		if tok.Type == tokComment || tok.Type == tokSpace {
			continue
		}
		out = append(out, Token{Type: tok.Type, Value: tok.Value, Offset: tok.Pos.Offset})
	}
}

// indexAt returns the index of the first token starting at or after offset.
func (ts Tokens) indexAt(offset int) int {
	return sort.Search(len(ts), func(i int) bool { return ts[i].Offset >= offset })
}

// Close walks from tokens[start], which must be an opening bracket, and returns
// the index of its balancing close bracket. ok is false when the text ends, or a
// statement terminator appears at the outer level, before the bracket closes.
func (ts Tokens) Close(start int) (int, bool) {
	if start >= len(ts) || !ts[start].IsOpen() {
		return 0, false
	}
	depth := 0
	for i := start; i < len(ts); i++ {
		switch ts[i].Type {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return i, true
			}
		case tokSemi:
			if depth == 1 {
				return 0, false
			}
		}
	}
	return 0, false
}

// SplitTopLevel splits text at commas that are not nested inside brackets,
// strings or comments. Parts are returned trimmed of surrounding whitespace.
// Empty text yields no parts.
func SplitTopLevel(text string) []string {
	ts := Tokenize(text)
	if len(ts) == 0 {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for _, t := range ts {
		switch t.Type {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokComma:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(text[start:t.Offset]))
				start = t.End()
			}
		}
	}
	return append(parts, strings.TrimSpace(text[start:]))
}

// ArrayLiteral reports whether text is exactly one array literal, either
// array(...) or [...], and returns the text between its brackets.
func ArrayLiteral(text string) (string, bool) {
	ts := Tokenize(text)
	open := 0
	switch {
	case len(ts) >= 3 && ts[0].IsIdent() && strings.EqualFold(ts[0].Value, "array") && ts[1].Value == "(":
		open = 1
	case len(ts) >= 2 && ts[0].Value == "[":
		open = 0
	default:
		return "", false
	}
	end, ok := ts.Close(open)
	if !ok || end != len(ts)-1 {
		return "", false
	}
	return text[ts[open].End():ts[end].Offset], true
}

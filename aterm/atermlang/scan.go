package atermlang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/scanner"

	"github.com/npillmayer/strat"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types. Single character tokens have their character code as token
// type. Types for other tokens are replicated from text/scanner where
// there is an equivalent.
const (
	EOF        = scanner.EOF
	Ident      = scanner.Ident
	Int        = scanner.Int
	Float      = scanner.Float
	String     = scanner.String
	Arrow      = -10 // ->
	LeftChoice = -11 // <+
)

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "[", "]", "{", "}", "<", ">", ",", ":", "=", ";", "@", "+"}

var tokenNames = map[strat.TokType]string{
	EOF:        "end of input",
	Ident:      "name",
	Int:        "integer",
	Float:      "real",
	String:     "string",
	Arrow:      "'->'",
	LeftChoice: "'<+'",
}

// TokenName returns a readable name for a token type.
func TokenName(t strat.TokType) string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if t > 0 {
		return fmt.Sprintf("'%c'", rune(t))
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var lexer *lexmachine.Lexer // the DFA is shared between scanners
var lexerErr error
var initOnce sync.Once // monitors one-time initialization

func initLexer() error {
	initOnce.Do(func() {
		lexer, lexerErr = newLexer()
	})
	return lexerErr
}

func newLexer() (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`\#[^\n]*`), skip) // skip comments
	lexer.Add([]byte(`//[^\n]*`), skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	lexer.Add([]byte(`"([^"\\\n]|\\.)*"`), makeToken(String))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(Ident))
	lexer.Add([]byte(`\-?[0-9]+\.[0-9]*`), makeToken(Float))
	lexer.Add([]byte(`\-?[0-9]+`), makeToken(Int))
	lexer.Add([]byte(`\->`), makeToken(Arrow))
	lexer.Add([]byte(`<\+`), makeToken(LeftChoice))
	for _, lit := range literals {
		lexer.Add([]byte(`\`+lit), makeToken(int(lit[0])))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lexer, nil
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action which wraps a scanned match into a token, converting
// the lexeme of literals to a Go value.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		var value interface{} = lexeme
		var err error
		switch id {
		case Int:
			value, err = strconv.ParseInt(lexeme, 10, 64)
		case Float:
			value, err = strconv.ParseFloat(lexeme, 64)
		case String:
			value, err = strconv.Unquote(lexeme)
		}
		if err != nil {
			return nil, fmt.Errorf("malformed literal %s: %w", lexeme, err)
		}
		return s.Token(id, value, m), nil
	}
}

// --- Tokens ----------------------------------------------------------------

// Token is a token of the ATerm language. It implements strat.Token.
type Token struct {
	toktype strat.TokType
	lexeme  string
	value   interface{}
	span    strat.Span
	pos     strat.Position
}

var _ strat.Token = Token{}

// TokType is part of the strat.Token interface.
func (t Token) TokType() strat.TokType {
	return t.toktype
}

// Lexeme is part of the strat.Token interface.
func (t Token) Lexeme() string {
	return t.lexeme
}

// Value is part of the strat.Token interface. Integers are int64, reals are
// float64 and strings are unquoted.
func (t Token) Value() interface{} {
	return t.value
}

// Span is part of the strat.Token interface.
func (t Token) Span() strat.Span {
	return t.span
}

// Pos returns the line and column of the token.
func (t Token) Pos() strat.Position {
	return t.pos
}

func (t Token) String() string {
	if t.toktype == EOF {
		return TokenName(EOF)
	}
	return fmt.Sprintf("'%s'", t.lexeme)
}

// --- Scanning --------------------------------------------------------------

// source is an input text with an index of line starts.
type source struct {
	name  string
	text  string
	lines []int // byte offsets of line starts
}

func newSource(name, text string) *source {
	src := &source{name: name, text: text, lines: []int{0}}
	for i, c := range text {
		if c == '\n' {
			src.lines = append(src.lines, i+1)
		}
	}
	return src
}

// position converts a byte offset into a line/column position.
func (src *source) position(offset int) strat.Position {
	line := sort.Search(len(src.lines), func(i int) bool { return src.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return strat.Position{Line: line + 1, Column: offset - src.lines[line] + 1}
}

// line returns the text of a source line, starting with line 1.
func (src *source) line(n int) string {
	if n < 1 || n > len(src.lines) {
		return ""
	}
	start := src.lines[n-1]
	end := len(src.text)
	if n < len(src.lines) {
		end = src.lines[n] - 1
	}
	return strings.TrimRight(src.text[start:end], "\r")
}

func (src *source) errorAt(span strat.Span, format string, args ...interface{}) *SyntaxError {
	pos := src.position(int(span.From()))
	return &SyntaxError{
		Source: src.name,
		Pos:    pos,
		Span:   span,
		Line:   src.line(pos.Line),
		Msg:    fmt.Sprintf(format, args...),
	}
}

// Tokenize splits an input text into tokens. The last token is always of
// type EOF. Tokenize stops at the first illegal input.
func Tokenize(input string) ([]Token, error) {
	return tokenize(newSource("<input>", input))
}

func tokenize(src *source) ([]Token, error) {
	if err := initLexer(); err != nil {
		return nil, err
	}
	s, err := lexer.Scanner([]byte(src.text))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok, err, eof := s.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, src.errorAt(strat.Span{uint64(ui.FailTC), uint64(ui.FailTC + 1)}, "illegal character")
			}
			return nil, src.errorAt(strat.Span{uint64(s.TC), uint64(s.TC)}, "%v", err)
		}
		if eof {
			end := len(src.text)
			tokens = append(tokens, Token{
				toktype: EOF,
				span:    strat.Span{uint64(end), uint64(end)},
				pos:     src.position(end),
			})
			return tokens, nil
		}
		lt := tok.(*lexmachine.Token)
		tokens = append(tokens, Token{
			toktype: strat.TokType(lt.Type),
			lexeme:  string(lt.Lexeme),
			value:   lt.Value,
			span:    strat.Span{uint64(lt.TC), uint64(lt.TC + len(lt.Lexeme))},
			pos:     src.position(lt.TC),
		})
	}
}

package atermlang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/strat"
	"github.com/npillmayer/strat/aterm"
	"github.com/npillmayer/strat/aterm/match"
	"github.com/npillmayer/strat/aterm/rewrite"
)

// SyntaxError is returned for malformed input. It carries the position and
// input span of the offending input and the text of its source line.
type SyntaxError struct {
	Source string
	Pos    strat.Position
	Span   strat.Span
	Line   string
	Msg    string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s: syntax error: %s\n", e.Source, e.Pos, e.Msg)
	fmt.Fprintf(&b, "    %s\n", e.Line)
	col := max(e.Pos.Column-1, 0)
	fmt.Fprintf(&b, "    %s%s", strings.Repeat(" ", col), strings.Repeat("^", e.marks(col)))
	return b.String()
}

// marks is the number of carets underlining the span, cut at the end of
// the source line.
func (e *SyntaxError) marks(col int) int {
	n := 1
	if !e.Span.IsNull() && e.Span.Len() > 1 {
		n = int(e.Span.Len())
	}
	if rest := len(e.Line) - col; n > rest {
		n = max(rest, 1)
	}
	return n
}

// ParseTerm parses a single term. As-patterns are not allowed in terms.
func ParseTerm(input string) (aterm.Term, error) {
	p, err := newParser("<term>", input, false)
	if err != nil {
		return nil, err
	}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if err = p.expect(EOF); err != nil {
		return nil, err
	}
	return t, nil
}

// ParsePattern parses a single pattern. Patterns may contain placeholders
// and as-patterns @F(…).
func ParsePattern(input string) (aterm.Term, error) {
	p, err := newParser("<pattern>", input, true)
	if err != nil {
		return nil, err
	}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if err = p.expect(EOF); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseDefinitions parses a sequence of rule and strategy definitions:
//
//     foo : A() -> B()
//     bar = foo ; try(bar)
//
// name is used for error messages only.
func ParseDefinitions(name, input string) ([]rewrite.Definition, error) {
	p, err := newParser(name, input, true)
	if err != nil {
		return nil, err
	}
	var defs []rewrite.Definition
	for p.peek().toktype != EOF {
		d, err := p.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	tracer().Debugf("parsed %d definitions from %s", len(defs), name)
	return defs, nil
}

// Module parses and builds a module of definitions. If prior is not nil,
// the new environment extends it.
func Module(input string, prior *rewrite.Env) (*rewrite.Env, error) {
	defs, err := ParseDefinitions("<module>", input)
	if err != nil {
		return nil, err
	}
	return rewrite.Build(defs, prior)
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	src      *source
	tokens   []Token
	pos      int
	patterns bool // as-patterns allowed
}

func newParser(name, input string, patterns bool) (*parser, error) {
	src := newSource(name, input)
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &parser{src: src, tokens: tokens, patterns: patterns}, nil
}

func (p *parser) peek() Token {
	return p.peekN(0)
}

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}

func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) is(t strat.TokType) bool {
	return p.peek().toktype == t
}

func (p *parser) errorf(tok Token, format string, args ...interface{}) error {
	return p.src.errorAt(tok.span, format, args...)
}

func (p *parser) expect(t strat.TokType) error {
	tok := p.next()
	if tok.toktype != t {
		return p.errorf(tok, "expected %s, found %s", TokenName(t), tok)
	}
	return nil
}

// --- Definitions -----------------------------------------------------------

// definition ::= NAME ':' term '->' term | NAME '=' strategy
func (p *parser) definition() (rewrite.Definition, error) {
	tok := p.next()
	if tok.toktype != Ident {
		return nil, p.errorf(tok, "expected label of a definition, found %s", tok)
	}
	label := tok.lexeme
	switch sep := p.next(); sep.toktype {
	case ':':
		left, err := p.term()
		if err != nil {
			return nil, err
		}
		if err = p.expect(Arrow); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return rewrite.RuleDef{Label: label, Left: left, Right: right}, nil
	case '=':
		x, err := p.strategy()
		if err != nil {
			return nil, err
		}
		return rewrite.StrategyDef{Label: label, StrategyExpr: x}, nil
	default:
		return nil, p.src.errorAt(tok.span.Extend(sep.span), "expected ':' or '=' after %s, found %s", label, sep)
	}
}

// strategy ::= guarded ('<+' guarded)*
func (p *parser) strategy() (rewrite.StrategyExpr, error) {
	first, err := p.guarded()
	if err != nil {
		return first, err
	}
	alts := []rewrite.StrategyExpr{first}
	for p.is(LeftChoice) {
		p.next()
		alt, err := p.guarded()
		if err != nil {
			return alt, err
		}
		alts = append(alts, alt)
	}
	if len(alts) == 1 {
		return first, nil
	}
	return rewrite.Comb("choice", alts...), nil
}

// guarded ::= seq ('<' seq '+' seq)?
func (p *parser) guarded() (rewrite.StrategyExpr, error) {
	cond, err := p.sequence()
	if err != nil || !p.is('<') {
		return cond, err
	}
	p.next()
	then, err := p.sequence()
	if err != nil {
		return then, err
	}
	if err = p.expect('+'); err != nil {
		return then, err
	}
	els, err := p.sequence()
	if err != nil {
		return els, err
	}
	return rewrite.Comb("guarded", cond, then, els), nil
}

// seq ::= prim (';' prim)*
func (p *parser) sequence() (rewrite.StrategyExpr, error) {
	first, err := p.primary()
	if err != nil {
		return first, err
	}
	steps := []rewrite.StrategyExpr{first}
	for p.is(';') {
		p.next()
		step, err := p.primary()
		if err != nil {
			return step, err
		}
		steps = append(steps, step)
	}
	if len(steps) == 1 {
		return first, nil
	}
	return rewrite.Comb("seq", steps...), nil
}

// prim ::= NAME | NAME '(' strategy (',' strategy)* ')' | '(' strategy ')'
func (p *parser) primary() (rewrite.StrategyExpr, error) {
	tok := p.next()
	switch tok.toktype {
	case '(':
		x, err := p.strategy()
		if err != nil {
			return x, err
		}
		return x, p.expect(')')
	case Ident:
		name := tok.lexeme
		if !p.is('(') {
			if name == "id" || name == "fail" {
				return rewrite.Comb(name), nil
			}
			return rewrite.Ref(name), nil
		}
		if !rewrite.IsCombinator(name) {
			return rewrite.StrategyExpr{}, p.errorf(tok, "unknown combinator %s", name)
		}
		p.next()
		var args []rewrite.StrategyExpr
		for {
			arg, err := p.strategy()
			if err != nil {
				return arg, err
			}
			args = append(args, arg)
			if !p.is(',') {
				break
			}
			p.next()
		}
		return rewrite.Comb(name, args...), p.expect(')')
	}
	return rewrite.StrategyExpr{}, p.errorf(tok, "expected strategy, found %s", tok)
}

// --- Terms -----------------------------------------------------------------

// term ::= primary annotation?
func (p *parser) term() (aterm.Term, error) {
	t, err := p.primaryTerm()
	if err != nil {
		return nil, err
	}
	if !p.is('{') {
		return t, nil
	}
	annot, err := p.annotation()
	if err != nil {
		return nil, err
	}
	return aterm.WithAnnotation(t, annot), nil
}

func (p *parser) primaryTerm() (aterm.Term, error) {
	tok := p.next()
	switch tok.toktype {
	case Int:
		return aterm.I(tok.value.(int64)), nil
	case Float:
		return aterm.R(tok.value.(float64)), nil
	case String:
		return aterm.S(tok.value.(string)), nil
	case Ident:
		if !p.is('(') {
			return aterm.L(tok.lexeme), nil
		}
		p.next()
		args, err := p.terms(')')
		if err != nil {
			return nil, err
		}
		return aterm.A(tok.lexeme, args...), nil
	case '(':
		args, err := p.terms(')')
		if err != nil {
			return nil, err
		}
		return aterm.T(args...), nil
	case '[':
		elts, err := p.terms(']')
		if err != nil {
			return nil, err
		}
		return aterm.Lst(elts...), nil
	case '<':
		return p.placeholder()
	case '@':
		if !p.patterns {
			return nil, p.errorf(tok, "as-pattern not allowed in a term")
		}
		head := p.next()
		if head.toktype != Ident {
			return nil, p.errorf(head, "expected name after '@', found %s", head)
		}
		if err := p.expect('('); err != nil {
			return nil, err
		}
		args, err := p.terms(')')
		if err != nil {
			return nil, err
		}
		return aterm.A(match.AsPrefix+head.lexeme, args...), nil
	}
	return nil, p.errorf(tok, "expected term, found %s", tok)
}

// placeholder ::= '<' KIND ('(' terms? ')')? '>', with '<' already consumed
func (p *parser) placeholder() (aterm.Term, error) {
	tok := p.next()
	kind, ok := aterm.HoleKindFrom(tok.lexeme)
	if tok.toktype != Ident || !ok {
		return nil, p.errorf(tok, "expected placeholder kind, found %s", tok)
	}
	var subpatterns []aterm.Term
	if p.is('(') {
		p.next()
		var err error
		if subpatterns, err = p.terms(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return aterm.P(kind, subpatterns...), nil
}

// annotation ::= '{' (NAME ':')? terms? '}'
func (p *parser) annotation() (*aterm.Annotation, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	typ := ""
	if p.is(Ident) && p.peekN(1).toktype == ':' {
		typ = p.next().lexeme
		p.next()
	}
	terms, err := p.terms('}')
	if err != nil {
		return nil, err
	}
	return aterm.Annotate(typ, terms...), nil
}

// terms parses a possibly empty, comma separated list of terms, including
// the closing token.
func (p *parser) terms(closing strat.TokType) ([]aterm.Term, error) {
	var terms []aterm.Term
	if p.is(closing) {
		p.next()
		return terms, nil
	}
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		tok := p.next()
		if tok.toktype == closing {
			return terms, nil
		}
		if tok.toktype != ',' {
			return nil, p.errorf(tok, "expected ',' or %s, found %s", TokenName(closing), tok)
		}
	}
}

package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/strat/aterm"
)

// Definition is a parsed rule or strategy definition, input to Build.
// Implementations are RuleDef and StrategyDef.
type Definition interface {
	DefLabel() string
	isDefinition()
}

// RuleDef defines a rule Label: Left -> Right.
type RuleDef struct {
	Label string
	Left  aterm.Term
	Right aterm.Term
}

// StrategyExpr is the syntax tree of a strategy. It is either a reference to
// a label (Ref is set) or the application of a combinator to arguments.
type StrategyExpr struct {
	Ref        string
	Combinator string
	Args       []StrategyExpr
}

// StrategyDef defines a strategy Label = StrategyExpr.
type StrategyDef struct {
	Label string
	StrategyExpr
}

// DefLabel returns the label defined by a rule.
func (d RuleDef) DefLabel() string { return d.Label }

// DefLabel returns the label defined by a strategy.
func (d StrategyDef) DefLabel() string { return d.Label }

func (RuleDef) isDefinition()     {}
func (StrategyDef) isDefinition() {}

func (d RuleDef) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Label, d.Left, d.Right)
}

func (d StrategyDef) String() string {
	return fmt.Sprintf("%s = %s", d.Label, d.StrategyExpr)
}

// Ref creates a reference to a label.
func Ref(label string) StrategyExpr {
	return StrategyExpr{Ref: label}
}

// Comb creates a combinator expression.
func Comb(name string, args ...StrategyExpr) StrategyExpr {
	return StrategyExpr{Combinator: name, Args: args}
}

// String renders an expression in prefix form, e.g. "try(seq(foo, bar))".
func (x StrategyExpr) String() string {
	if x.Ref != "" {
		return x.Ref
	}
	if len(x.Args) == 0 {
		return x.Combinator
	}
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", x.Combinator, strings.Join(args, ", "))
}

// --- Combinator table ------------------------------------------------------

type combinator struct {
	arity  int // -1 for n-ary combinators with at least 2 arguments
	create func(args []Rewriter) Rewriter
}

var combinators = map[string]combinator{
	"id":        {0, func([]Rewriter) Rewriter { return Id() }},
	"fail":      {0, func([]Rewriter) Rewriter { return Fail() }},
	"try":       {1, func(a []Rewriter) Rewriter { return Try(a[0]) }},
	"repeat":    {1, func(a []Rewriter) Rewriter { return Repeat(a[0]) }},
	"all":       {1, func(a []Rewriter) Rewriter { return All(a[0]) }},
	"some":      {1, func(a []Rewriter) Rewriter { return Some(a[0]) }},
	"topdown":   {1, func(a []Rewriter) Rewriter { return Topdown(a[0]) }},
	"bottomup":  {1, func(a []Rewriter) Rewriter { return Bottomup(a[0]) }},
	"innermost": {1, func(a []Rewriter) Rewriter { return Innermost(a[0]) }},
	"seq":       {-1, func(a []Rewriter) Rewriter { return SeqL(a...) }},
	"choice":    {-1, func(a []Rewriter) Rewriter { return ChoiceL(a...) }},
	"guarded":   {3, func(a []Rewriter) Rewriter { return Guarded(a[0], a[1], a[2]) }},
}

// IsCombinator is true if name is the name of a strategy combinator.
func IsCombinator(name string) bool {
	_, ok := combinators[name]
	return ok
}

// --- Module construction ---------------------------------------------------

// Build compiles definitions into a new environment. If prior is given, the
// new environment extends it: labels of prior remain visible, and rules for
// a label which prior defines as a rule block are appended to a copy of
// that block. prior itself is never modified.
//
// Build returns the first construction error it encounters, in which case
// none of the definitions become available.
func Build(defs []Definition, prior *Env) (*Env, error) {
	env := NewEnv(moduleName(prior), prior)
	var labels []string // rule labels in order of first appearance
	rules := make(map[string][]*Rule)
	strategies := make(map[string]StrategyDef)
	var order []string // strategy labels in order
	for _, d := range defs {
		switch def := d.(type) {
		case RuleDef:
			if _, isStrategy := strategies[def.Label]; isStrategy {
				return nil, constructionError(def.Label, "", ErrRedefined)
			}
			r, err := NewRule(def.Label, def.Left, def.Right)
			if err != nil {
				return nil, err
			}
			if _, seen := rules[def.Label]; !seen {
				labels = append(labels, def.Label)
			}
			rules[def.Label] = append(rules[def.Label], r)
		case StrategyDef:
			if _, dup := strategies[def.Label]; dup {
				return nil, constructionError(def.Label, "", ErrRedefined)
			}
			if _, isRule := rules[def.Label]; isRule {
				return nil, constructionError(def.Label, "", ErrRedefined)
			}
			strategies[def.Label] = def
			order = append(order, def.Label)
		default:
			panic(fmt.Sprintf("unknown definition type %T", d))
		}
	}
	// rule blocks
	for _, label := range labels {
		block := NewRuleBlock(label, rules[label]...)
		if outer, _ := prior.resolve(label); outer != nil {
			if outer.Kind != RuleEntry {
				return nil, constructionError(label, "", ErrRedefined)
			}
			block = outer.Block.Extend(rules[label]...)
			tracer().Debugf("extending rule block %s of %s", label, prior)
		}
		env.define(&Entry{Label: label, Kind: RuleEntry, Block: block})
	}
	// strategies, pass 1: declare
	for _, label := range order {
		if outer, _ := prior.resolve(label); outer != nil {
			return nil, constructionError(label, "", ErrRedefined)
		}
		expr := strategies[label].StrategyExpr
		env.define(&Entry{Label: label, Kind: StrategyEntry, Cell: NewFwd(label), Expr: &expr})
	}
	// strategies, pass 2: build bodies
	for _, label := range order {
		entry := env.local(label)
		body, err := compile(label, *entry.Expr, env)
		if err != nil {
			return nil, err
		}
		if err = entry.Cell.Define(body); err != nil {
			return nil, constructionError(label, "", ErrRedefined)
		}
	}
	for _, label := range order {
		if !env.local(label).Cell.Defined() {
			return nil, constructionError(label, "", ErrUndeclared)
		}
	}
	tracer().Infof("%s: %d rule blocks, %d strategies", env.Name, len(labels), len(order))
	return env, nil
}

// resolve is Resolve for a possibly nil environment.
func (env *Env) resolve(label string) (*Entry, *Env) {
	if env == nil {
		return nil, nil
	}
	return env.Resolve(label)
}

func moduleName(prior *Env) string {
	n := 0
	for e := prior; e != nil; e = e.Parent {
		n++
	}
	return fmt.Sprintf("module#%d", n)
}

// compile builds a strategy expression, resolving labels in env.
func compile(label string, x StrategyExpr, env *Env) (Rewriter, error) {
	if x.Ref != "" {
		if comb, ok := combinators[x.Ref]; ok && comb.arity == 0 {
			return comb.create(nil), nil
		}
		entry, _ := env.Resolve(x.Ref)
		if entry == nil {
			return nil, constructionError(label, x.Ref, ErrUndeclared)
		}
		return entry.Rewriter(), nil
	}
	comb, ok := combinators[x.Combinator]
	if !ok {
		return nil, constructionError(label, x.Combinator, ErrCombinator)
	}
	if (comb.arity >= 0 && len(x.Args) != comb.arity) || (comb.arity < 0 && len(x.Args) < 2) {
		return nil, constructionError(label, x.String(), ErrCombinator)
	}
	args := make([]Rewriter, len(x.Args))
	for i, a := range x.Args {
		r, err := compile(label, a, env)
		if err != nil {
			return nil, err
		}
		args[i] = r
	}
	return comb.create(args), nil
}

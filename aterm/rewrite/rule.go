package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/strat/aterm"
	"github.com/npillmayer/strat/aterm/match"
)

// Reasons for construction errors. Use errors.Is to test a
// *ConstructionError for one of them.
var (
	ErrUnbound     = errors.New("unbound variable")
	ErrUndeclared  = errors.New("undeclared label")
	ErrRedefined   = errors.New("label already defined")
	ErrCombinator  = errors.New("malformed strategy")
	ErrPlaceholder = errors.New("placeholder in rule pattern")
)

// ConstructionError is returned for definitions which cannot be compiled.
// Label is the label of the offending definition, Name the item within it
// (a variable, a referenced label or a combinator).
type ConstructionError struct {
	Label  string
	Name   string
	Reason error
}

func (e *ConstructionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Label, e.Reason)
	}
	return fmt.Sprintf("%s: %v '%s'", e.Label, e.Reason, e.Name)
}

func (e *ConstructionError) Unwrap() error {
	return e.Reason
}

func constructionError(label, name string, reason error) error {
	err := &ConstructionError{Label: label, Name: name, Reason: reason}
	tracer().Debugf("construction error: %v", err)
	return err
}

// --- Rules -----------------------------------------------------------------

// Rule is a labelled rewrite rule Left -> Right.
//
// Every leaf of the left pattern which is not an application head is a
// variable. A variable occurring more than once on the left side makes the
// rule non-linear: all its occurrences must match equal terms. Variables of
// the right side must be bound on the left side.
type Rule struct {
	Label string
	Left  aterm.Term
	Right aterm.Term
	//
	pattern  aterm.Term // left side with variables erased
	skeleton aterm.Term // right side with variables erased
	captures []int      // binding index for each capture of pattern
	bindings int        // number of distinct variables of the left side
	values   []int      // binding index for each hole of skeleton
}

// NewRule compiles a rule. It returns a *ConstructionError if the rule
// contains placeholders, if the right side uses variables which the left
// side does not bind, or if the right side applies a variable bound by a
// nullary as-pattern @F() to arguments.
func NewRule(label string, left, right aterm.Term) (*Rule, error) {
	if match.ContainsPlaceholder(left) {
		return nil, constructionError(label, left.String(), ErrPlaceholder)
	}
	if match.ContainsPlaceholder(right) {
		return nil, constructionError(label, right.String(), ErrPlaceholder)
	}
	r := &Rule{Label: label, Left: left, Right: right}
	symtab := make(map[string]int)
	for _, v := range match.FreeVariables(left) {
		inx, found := symtab[v]
		if !found {
			inx = r.bindings
			symtab[v] = inx
			r.bindings++
		}
		r.captures = append(r.captures, inx)
	}
	heads := match.HeadVariables(left)
	if v, ok := applHeadUse(right, match.ApplVariables(left)); ok {
		return nil, constructionError(label, v, match.ErrHead)
	}
	for _, v := range match.Variables(right, heads) {
		inx, found := symtab[v]
		if !found {
			return nil, constructionError(label, v, ErrUnbound)
		}
		r.values = append(r.values, inx)
	}
	r.pattern = match.Skeleton(left, nil)
	r.skeleton = match.Skeleton(right, heads)
	return r, nil
}

// applHeadUse finds an application in right with arguments whose head is
// one of vars, with or without the as-prefix.
func applHeadUse(right aterm.Term, vars map[string]bool) (string, bool) {
	if len(vars) == 0 {
		return "", false
	}
	for _, node := range aterm.Preorder(right).Nodes(aterm.OfKind(aterm.ApplKind)) {
		a := node.Term.(aterm.Appl)
		v := strings.TrimPrefix(a.Head.Label, match.AsPrefix)
		if vars[v] && len(a.Args) > 0 {
			return v, true
		}
	}
	return "", false
}

// Rewrite applies the rule to t. It fails if the left side does not match t
// or if a repeated variable would be bound to different terms. The binding
// check applies to constant right sides as well.
func (r *Rule) Rewrite(t aterm.Term) Result {
	ok, caps := match.Terms(r.pattern, t)
	if !ok {
		return Failure()
	}
	bound, ok := r.bind(caps)
	if !ok {
		return Failure()
	}
	var values []aterm.Term
	if len(r.values) > 0 {
		values = make([]aterm.Term, len(r.values))
		for i, inx := range r.values {
			values[i] = bound[inx]
		}
	}
	result, err := match.Build(r.skeleton, match.NewValueStack(values...))
	if err != nil {
		panic(fmt.Errorf("rule %s: %w", r.Label, err))
	}
	tracer().Debugf("%s: %s => %s", r.Label, t, result)
	return Success(result)
}

// bind walks the captures in order of the left side's variables. A repeated
// variable must capture a term equal to its first capture.
func (r *Rule) bind(caps []aterm.Term) ([]aterm.Term, bool) {
	if len(caps) != len(r.captures) {
		panic(fmt.Sprintf("rule %s: %d captures for %d variables", r.Label, len(caps), len(r.captures)))
	}
	bound := make([]aterm.Term, r.bindings)
	for i, c := range caps {
		inx := r.captures[i]
		if bound[inx] == nil {
			bound[inx] = c
		} else if !aterm.Equal(bound[inx], c) {
			return nil, false
		}
	}
	return bound, true
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.Label, r.Left, r.Right)
}

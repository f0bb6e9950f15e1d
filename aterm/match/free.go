package match

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

// AsPrefix marks the head of an as-pattern. The parser produces an
// application with head label "@F" for the pattern @F(x, y), which binds F to
// the head of any application of arity 2.
const AsPrefix = "@"

// FreeVariables lists the variables of a rule pattern in pre-order,
// including repetitions. Every leaf which is not the head of an application
// is a variable; constants are written as nullary applications, e.g. A().
// The head of an as-pattern @F(…) is a variable as well and is listed
// before the variables of its arguments.
func FreeVariables(pattern aterm.Term) []string {
	return Variables(pattern, nil)
}

// Variables is FreeVariables with an additional set of head variables.
// Applications with a head label in heads are treated like as-patterns.
// This is used for the right side of a rule, where F(x) re-uses a head
// bound by @F(…) on the left side.
func Variables(pattern aterm.Term, heads map[string]bool) []string {
	var vars []string
	for node, seq := aterm.Preorder(pattern).First(); !seq.Done(); node = seq.Next() {
		switch t := node.Term.(type) {
		case aterm.Leaf:
			vars = append(vars, t.Label)
		case aterm.Appl:
			if v, ok := headVariable(t, heads); ok {
				vars = append(vars, v)
			}
		}
	}
	return vars
}

// HeadVariables returns the set of variables bound by as-patterns in
// pattern.
func HeadVariables(pattern aterm.Term) map[string]bool {
	heads := make(map[string]bool)
	for _, node := range aterm.Preorder(pattern).Nodes(aterm.OfKind(aterm.ApplKind)) {
		if v, ok := headVariable(node.Term.(aterm.Appl), nil); ok {
			heads[v] = true
		}
	}
	return heads
}

// ApplVariables returns the set of variables bound by nullary as-patterns
// @F() in pattern. These capture the whole application, not its head, and
// cannot serve as the head of an application built from them.
func ApplVariables(pattern aterm.Term) map[string]bool {
	vars := make(map[string]bool)
	for _, node := range aterm.Preorder(pattern).Nodes(aterm.OfKind(aterm.ApplKind)) {
		a := node.Term.(aterm.Appl)
		if v, ok := headVariable(a, nil); ok && len(a.Args) == 0 {
			vars[v] = true
		}
	}
	return vars
}

// ContainsPlaceholder is true if pattern contains an explicit placeholder.
func ContainsPlaceholder(pattern aterm.Term) bool {
	return len(aterm.Preorder(pattern).Nodes(aterm.OfKind(aterm.PlaceholderKind))) > 0
}

// Skeleton erases the variables of a rule pattern: every variable leaf
// becomes <term> and every as-pattern (or application with a head in heads)
// becomes <appl(…)> over the skeletons of its arguments. The result serves
// both as a pattern for Terms and as a skeleton for Build, and its holes
// are in the order of Variables(pattern, heads).
func Skeleton(pattern aterm.Term, heads map[string]bool) aterm.Term {
	switch p := pattern.(type) {
	case aterm.Leaf:
		return aterm.P(aterm.AnyTerm)
	case aterm.Int, aterm.Real, aterm.String, aterm.Placeholder:
		return pattern
	case aterm.Appl:
		args := skeletons(p.Args, heads)
		if _, ok := headVariable(p, heads); ok {
			return aterm.Placeholder{Hole: aterm.AnyAppl, Subpatterns: args, Annot: p.Annot}
		}
		return aterm.Appl{Head: p.Head, Args: args, Annot: p.Annot}
	case aterm.Tuple:
		return aterm.Tuple{Args: skeletons(p.Args, heads), Annot: p.Annot}
	case aterm.List:
		return aterm.List{Elts: skeletons(p.Elts, heads), Annot: p.Annot}
	}
	panic(fmt.Sprintf("unknown term type %T", pattern))
}

func skeletons(patterns []aterm.Term, heads map[string]bool) []aterm.Term {
	if len(patterns) == 0 {
		return nil
	}
	s := make([]aterm.Term, len(patterns))
	for i, p := range patterns {
		s[i] = Skeleton(p, heads)
	}
	return s
}

func headVariable(a aterm.Appl, heads map[string]bool) (string, bool) {
	label := a.Head.Label
	if strings.HasPrefix(label, AsPrefix) && len(label) > len(AsPrefix) {
		return label[len(AsPrefix):], true
	}
	if heads[label] {
		return label, true
	}
	return "", false
}

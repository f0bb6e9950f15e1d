package match

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/strat/aterm"
)

// Terms matches pattern against subject. On success it returns the captured
// sub-terms of subject, in pre-order of pattern. A failing match returns
// false and no captures.
//
// Pairing rules:
//
//     literal  vs literal        same kind and equal value
//     leaf     vs leaf           equal label and annotation
//     appl     vs appl           equal arity, equal heads, pairwise arguments
//     tuple    vs tuple          equal arity, pairwise arguments
//     <k(p…)>  vs appl           captures the head, pairwise subpatterns
//     <k>      vs t              captures t if k accepts the kind of t
//
// Everything else fails. In particular, lists never match lists
// structurally; only a <list> placeholder will match a list.
func Terms(pattern, subject aterm.Term) (bool, []aterm.Term) {
	m := matcher{}
	if !m.match(pattern, subject) {
		return false, nil
	}
	return true, m.captures
}

// Matches is a predicate version of Terms which does not collect captures.
func Matches(pattern, subject aterm.Term) bool {
	m := matcher{discard: true}
	return m.match(pattern, subject)
}

type matcher struct {
	captures []aterm.Term
	discard  bool
}

func (m *matcher) capture(t aterm.Term) {
	if !m.discard {
		m.captures = append(m.captures, t)
	}
}

func (m *matcher) match(pattern, subject aterm.Term) bool {
	if pattern == nil || subject == nil {
		return false
	}
	switch p := pattern.(type) {
	case aterm.Int:
		s, ok := subject.(aterm.Int)
		return ok && s.Value == p.Value
	case aterm.Real:
		s, ok := subject.(aterm.Real)
		return ok && s.Value == p.Value
	case aterm.String:
		s, ok := subject.(aterm.String)
		return ok && s.Value == p.Value
	case aterm.Leaf:
		s, ok := subject.(aterm.Leaf)
		return ok && aterm.EqualLeaves(p, s)
	case aterm.Appl:
		s, ok := subject.(aterm.Appl)
		if !ok || len(p.Args) != len(s.Args) { // arity first
			return false
		}
		return aterm.EqualLeaves(p.Head, s.Head) && m.matchAll(p.Args, s.Args)
	case aterm.Tuple:
		s, ok := subject.(aterm.Tuple)
		if !ok || len(p.Args) != len(s.Args) {
			return false
		}
		return m.matchAll(p.Args, s.Args)
	case aterm.List:
		return false
	case aterm.Placeholder:
		if len(p.Subpatterns) > 0 {
			s, ok := subject.(aterm.Appl)
			if !ok || len(p.Subpatterns) != len(s.Args) {
				return false
			}
			m.capture(s.Head)
			return m.matchAll(p.Subpatterns, s.Args)
		}
		if p.Hole.Accepts(subject.Kind()) {
			m.capture(subject)
			return true
		}
		return false
	}
	panic(fmt.Sprintf("unknown term type %T", pattern))
}

func (m *matcher) matchAll(patterns, subjects []aterm.Term) bool {
	for i := range patterns {
		if !m.match(patterns[i], subjects[i]) {
			return false
		}
	}
	return true
}

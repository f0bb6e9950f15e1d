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

// strategy is a named combinator over rewriters.
type strategy struct {
	name string
	args []Rewriter
	fn   func(aterm.Term) Result
}

func (s *strategy) Rewrite(t aterm.Term) Result {
	return s.fn(t)
}

func (s *strategy) String() string {
	if len(s.args) == 0 {
		return s.name
	}
	names := make([]string, len(s.args))
	for i, a := range s.args {
		names[i] = nameOf(a)
	}
	return fmt.Sprintf("%s(%s)", s.name, strings.Join(names, ", "))
}

var (
	id   = &strategy{name: "Id", fn: Success}
	fail = &strategy{name: "Fail", fn: func(aterm.Term) Result { return Failure() }}
)

// Id succeeds, leaving its input unchanged.
func Id() Rewriter {
	return id
}

// Fail always fails.
func Fail() Rewriter {
	return fail
}

// Seq applies s1 and then s2 to the result of s1. If s1 fails, s2 is not
// applied.
func Seq(s1, s2 Rewriter) Rewriter {
	return &strategy{name: "Seq", args: []Rewriter{s1, s2}, fn: func(t aterm.Term) Result {
		r := s1.Rewrite(t)
		if !r.OK() {
			return r
		}
		return s2.Rewrite(r.Term())
	}}
}

// Choice applies s1 and, if s1 fails, s2 to the original input.
func Choice(s1, s2 Rewriter) Rewriter {
	return &strategy{name: "Choice", args: []Rewriter{s1, s2}, fn: func(t aterm.Term) Result {
		if r := s1.Rewrite(t); r.OK() {
			return r
		}
		return s2.Rewrite(t)
	}}
}

// Guarded is a conditional: if s1 succeeds, s2 is applied to its result.
// Otherwise s3 is applied to the original input. Unlike Choice(Seq(s1, s2), s3),
// a failure of s2 does not fall back to s3.
func Guarded(s1, s2, s3 Rewriter) Rewriter {
	return &strategy{name: "Guarded", args: []Rewriter{s1, s2, s3}, fn: func(t aterm.Term) Result {
		if r := s1.Rewrite(t); r.OK() {
			return s2.Rewrite(r.Term())
		}
		return s3.Rewrite(t)
	}}
}

// Try applies s. If s fails, the input is returned unchanged. Try never
// fails.
func Try(s Rewriter) Rewriter {
	return &strategy{name: "Try", args: []Rewriter{s}, fn: func(t aterm.Term) Result {
		if r := s.Rewrite(t); r.OK() {
			return r
		}
		return Success(t)
	}}
}

// Repeat applies s until it fails and returns the last successful result.
// Repeat never fails, but may not terminate.
func Repeat(s Rewriter) Rewriter {
	return &strategy{name: "Repeat", args: []Rewriter{s}, fn: func(t aterm.Term) Result {
		for {
			r := s.Rewrite(t)
			if !r.OK() {
				return Success(t)
			}
			t = r.Term()
		}
	}}
}

// SeqL composes strategies in sequence, SeqL(a, b, c) = Seq(a, Seq(b, c)).
// Without arguments it is Id.
func SeqL(s ...Rewriter) Rewriter {
	if len(s) == 0 {
		return Id()
	}
	r := s[len(s)-1]
	for i := len(s) - 2; i >= 0; i-- {
		r = Seq(s[i], r)
	}
	return r
}

// ChoiceL composes alternatives, ChoiceL(a, b, c) = Choice(a, Choice(b, c)).
// Without arguments it is Fail.
func ChoiceL(s ...Rewriter) Rewriter {
	if len(s) == 0 {
		return Fail()
	}
	r := s[len(s)-1]
	for i := len(s) - 2; i >= 0; i-- {
		r = Choice(s[i], r)
	}
	return r
}

// --- Generic traversal -----------------------------------------------------

// All applies s to every child of a composite term (application, tuple or
// list) and rebuilds the term from the results. It fails if s fails for any
// child. For atoms All succeeds with the input unchanged.
func All(s Rewriter) Rewriter {
	return &strategy{name: "All", args: []Rewriter{s}, fn: func(t aterm.Term) Result {
		switch x := t.(type) {
		case aterm.Appl:
			args, ok := all(s, x.Args)
			if !ok {
				return Failure()
			}
			return Success(aterm.Appl{Head: x.Head, Args: args, Annot: x.Annot})
		case aterm.Tuple:
			args, ok := all(s, x.Args)
			if !ok {
				return Failure()
			}
			return Success(aterm.Tuple{Args: args, Annot: x.Annot})
		case aterm.List:
			elts, ok := all(s, x.Elts)
			if !ok {
				return Failure()
			}
			return Success(aterm.List{Elts: elts, Annot: x.Annot})
		case aterm.Leaf, aterm.Int, aterm.Real, aterm.String, aterm.Placeholder:
			return Success(t)
		}
		panic(fmt.Sprintf("unknown term type %T", t))
	}}
}

func all(s Rewriter, children []aterm.Term) ([]aterm.Term, bool) {
	if len(children) == 0 {
		return nil, true
	}
	results := make([]aterm.Term, len(children))
	for i, c := range children {
		r := s.Rewrite(c)
		if !r.OK() {
			return nil, false
		}
		results[i] = r.Term()
	}
	return results, true
}

// Some applies s to every child of a composite term, keeping the original
// child wherever s fails. It fails for atoms only.
func Some(s Rewriter) Rewriter {
	return &strategy{name: "Some", args: []Rewriter{s}, fn: func(t aterm.Term) Result {
		switch x := t.(type) {
		case aterm.Appl:
			return Success(aterm.Appl{Head: x.Head, Args: some(s, x.Args), Annot: x.Annot})
		case aterm.Tuple:
			return Success(aterm.Tuple{Args: some(s, x.Args), Annot: x.Annot})
		case aterm.List:
			return Success(aterm.List{Elts: some(s, x.Elts), Annot: x.Annot})
		case aterm.Leaf, aterm.Int, aterm.Real, aterm.String, aterm.Placeholder:
			return Failure()
		}
		panic(fmt.Sprintf("unknown term type %T", t))
	}}
}

func some(s Rewriter, children []aterm.Term) []aterm.Term {
	if len(children) == 0 {
		return nil
	}
	results := make([]aterm.Term, len(children))
	for i, c := range children {
		if r := s.Rewrite(c); r.OK() {
			results[i] = r.Term()
		} else {
			results[i] = c
		}
	}
	return results
}

// Topdown applies s to a term and then, recursively, to all of its
// children: Topdown(s) = Seq(s, All(Topdown(s))).
func Topdown(s Rewriter) Rewriter {
	td := &strategy{name: "Topdown", args: []Rewriter{s}}
	td.fn = Seq(s, All(td)).Rewrite
	return td
}

// Bottomup applies s to the children of a term first and then to the
// term itself: Bottomup(s) = Seq(All(Bottomup(s)), s).
func Bottomup(s Rewriter) Rewriter {
	bu := &strategy{name: "Bottomup", args: []Rewriter{s}}
	bu.fn = Seq(All(bu), s).Rewrite
	return bu
}

// Innermost rewrites a term to normal form with respect to s, reducing
// innermost redexes first: Innermost(s) = Bottomup(Try(Seq(s, Innermost(s)))).
// Innermost never fails, but terminates only if s does.
func Innermost(s Rewriter) Rewriter {
	im := &strategy{name: "Innermost", args: []Rewriter{s}}
	im.fn = Bottomup(Try(Seq(s, im))).Rewrite
	return im
}

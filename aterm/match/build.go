package match

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/strat/aterm"
)

// ErrUnderflow is returned by Build if a skeleton has more holes than there
// are values on the stack. It always indicates a malformed rule.
var ErrUnderflow = errors.New("value stack underflow")

// ErrHead is returned by Build if the value for the head of an
// application placeholder is not a leaf.
var ErrHead = errors.New("application head must be a leaf")

// ValueStack holds the values to substitute for the holes of a skeleton.
// Values are popped in substitution order, i.e. in pre-order of the skeleton.
type ValueStack struct {
	stack *arraystack.Stack
}

// NewValueStack creates a stack from values, such that values[0] is the
// first value popped. Captures of Terms are in this order already.
func NewValueStack(values ...aterm.Term) *ValueStack {
	vs := &ValueStack{stack: arraystack.New()}
	for i := len(values) - 1; i >= 0; i-- {
		vs.stack.Push(values[i])
	}
	return vs
}

// Push puts a value on top of the stack.
func (vs *ValueStack) Push(t aterm.Term) {
	vs.stack.Push(t)
}

// Pop removes the top value. It returns false if the stack is empty.
func (vs *ValueStack) Pop() (aterm.Term, bool) {
	v, ok := vs.stack.Pop()
	if !ok {
		return nil, false
	}
	return v.(aterm.Term), true
}

// Len returns the number of values on the stack.
func (vs *ValueStack) Len() int {
	if vs == nil || vs.stack == nil {
		return 0
	}
	return vs.stack.Size()
}

// Build substitutes the holes of skeleton with values, left to right.
//
// Leaves and literals are copied unchanged. Applications, tuples and lists
// are rebuilt with the same shape and annotation. A placeholder with
// subpatterns pops the head of a new application, then builds its
// arguments from the subpatterns. A placeholder without subpatterns pops
// a single value.
//
// Values left on the stack after building are not an error.
func Build(skeleton aterm.Term, values *ValueStack) (aterm.Term, error) {
	if values == nil {
		values = NewValueStack()
	}
	t, err := build(skeleton, values)
	if err != nil {
		tracer().Errorf("cannot build %s: %v", skeleton, err)
		return nil, err
	}
	return t, nil
}

func build(skel aterm.Term, values *ValueStack) (aterm.Term, error) {
	switch p := skel.(type) {
	case aterm.Leaf, aterm.Int, aterm.Real, aterm.String:
		return skel, nil
	case aterm.Appl:
		args, err := buildAll(p.Args, values)
		if err != nil {
			return nil, err
		}
		return aterm.Appl{Head: p.Head, Args: args, Annot: p.Annot}, nil
	case aterm.Tuple:
		args, err := buildAll(p.Args, values)
		if err != nil {
			return nil, err
		}
		return aterm.Tuple{Args: args, Annot: p.Annot}, nil
	case aterm.List:
		elts, err := buildAll(p.Elts, values)
		if err != nil {
			return nil, err
		}
		return aterm.List{Elts: elts, Annot: p.Annot}, nil
	case aterm.Placeholder:
		v, ok := values.Pop()
		if !ok {
			return nil, fmt.Errorf("hole %s: %w", p, ErrUnderflow)
		}
		if len(p.Subpatterns) == 0 {
			return v, nil
		}
		head, ok := v.(aterm.Leaf)
		if !ok {
			return nil, fmt.Errorf("hole %s got %s: %w", p, v, ErrHead)
		}
		args, err := buildAll(p.Subpatterns, values)
		if err != nil {
			return nil, err
		}
		return aterm.Appl{Head: head, Args: args, Annot: p.Annot}, nil
	}
	panic(fmt.Sprintf("unknown term type %T", skel))
}

func buildAll(skels []aterm.Term, values *ValueStack) ([]aterm.Term, error) {
	if len(skels) == 0 {
		return nil, nil
	}
	terms := make([]aterm.Term, len(skels))
	for i, s := range skels {
		t, err := build(s, values)
		if err != nil {
			return nil, err
		}
		terms[i] = t
	}
	return terms, nil
}

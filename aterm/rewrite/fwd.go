package rewrite

import (
	"fmt"

	"github.com/npillmayer/strat/aterm"
)

// Fwd is a forward declaration of a strategy. It allows recursive
// strategies like
//
//     x := rewrite.NewFwd("x")
//     x.Define(rewrite.Try(rewrite.Seq(foo, x)))
//
// A Fwd must be defined exactly once, before it is first invoked.
type Fwd struct {
	name   string
	target Rewriter
}

// NewFwd creates an undefined forward declaration.
func NewFwd(name string) *Fwd {
	return &Fwd{name: name}
}

// Define sets the strategy a forward declaration refers to. Re-defining a
// Fwd is an error.
func (f *Fwd) Define(r Rewriter) error {
	if f.target != nil {
		return fmt.Errorf("forward declaration %s: %w", f.name, ErrRedefined)
	}
	if r == nil {
		return fmt.Errorf("forward declaration %s: cannot define as nil", f.name)
	}
	f.target = r
	return nil
}

// Defined is true if the forward declaration has been defined.
func (f *Fwd) Defined() bool {
	return f.target != nil
}

// Target returns the strategy the forward declaration refers to, or nil.
func (f *Fwd) Target() Rewriter {
	return f.target
}

// Rewrite delegates to the defined strategy. Invoking an undefined Fwd is
// a programmer error and will panic.
func (f *Fwd) Rewrite(t aterm.Term) Result {
	if f.target == nil {
		panic(fmt.Sprintf("forward declaration %s invoked before it has been defined", f.name))
	}
	return f.target.Rewrite(t)
}

func (f *Fwd) String() string {
	return f.name
}

package rewrite

import (
	"fmt"

	"github.com/npillmayer/strat/aterm"
)

// Result is the outcome of a rewrite: either success with a term or failure.
// The zero value is a failure.
type Result struct {
	term aterm.Term
	ok   bool
}

// Success creates a successful result.
func Success(t aterm.Term) Result {
	return Result{term: t, ok: true}
}

// Failure creates a failed result.
func Failure() Result {
	return Result{}
}

// OK is true for a successful result.
func (r Result) OK() bool {
	return r.ok
}

// Term returns the term of a successful result, nil otherwise.
func (r Result) Term() aterm.Term {
	return r.term
}

func (r Result) String() string {
	if !r.ok {
		return "<fail>"
	}
	return r.term.String()
}

// Rewriter is implemented by everything which may rewrite a term: rules,
// rule blocks and strategies.
type Rewriter interface {
	Rewrite(aterm.Term) Result
}

// RewriterFunc adapts a function to the Rewriter interface.
type RewriterFunc func(aterm.Term) Result

// Rewrite calls f(t).
func (f RewriterFunc) Rewrite(t aterm.Term) Result {
	return f(t)
}

// nameOf renders a rewriter for display purposes.
func nameOf(r Rewriter) string {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("<%T>", r)
}

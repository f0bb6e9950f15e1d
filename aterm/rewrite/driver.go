package rewrite

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/strat/aterm"
)

// Errors returned by the driver functions.
var (
	ErrNoMatch   = errors.New("no match")
	ErrCycle     = errors.New("rewriting cycles")
	ErrStepLimit = errors.New("step limit reached")
)

// Apply applies r to t once. If r fails, Apply returns ErrNoMatch together
// with the unchanged input.
func Apply(r Rewriter, t aterm.Term) (aterm.Term, error) {
	res := r.Rewrite(t)
	if !res.OK() {
		return t, fmt.Errorf("%s: %w", nameOf(r), ErrNoMatch)
	}
	return res.Term(), nil
}

// Normalize applies r to the evolving term until r fails or does not change
// the term any more. It returns the last term and the number of steps which
// changed the term.
//
// Normalize stops with ErrCycle if a term re-appears, and with ErrStepLimit
// after maxSteps steps. A maxSteps of 0 means no limit. In both cases the
// last term reached is returned.
func Normalize(r Rewriter, t aterm.Term, maxSteps int) (aterm.Term, int, error) {
	seen := hashset.New()
	seen.Add(aterm.Fingerprint(t))
	steps := 0
	for {
		if maxSteps > 0 && steps >= maxSteps {
			return t, steps, fmt.Errorf("%s after %d steps: %w", nameOf(r), steps, ErrStepLimit)
		}
		res := r.Rewrite(t)
		if !res.OK() || aterm.Equal(res.Term(), t) {
			tracer().Debugf("%s: normal form after %d steps", nameOf(r), steps)
			return t, steps, nil
		}
		t = res.Term()
		steps++
		fp := aterm.Fingerprint(t)
		if seen.Contains(fp) {
			return t, steps, fmt.Errorf("%s at %s: %w", nameOf(r), t, ErrCycle)
		}
		seen.Add(fp)
	}
}

/*
Package rewrite implements rewrite rules and strategic rewriting over ATerms.

A Rule consists of a label, a left pattern and a right pattern:

    Eval: Add(Zero(), y) -> y

Rules with the same label form a RuleBlock, which tries them in order.
Rules and rule blocks are Rewriters: they take a term and either succeed with
a new term or fail. Failure is an ordinary Result, not an error.

Strategy combinators compose rewriters without knowing anything about the
terms they operate on:

    s := rewrite.Innermost(rewrite.Choice(eval, simplify))
    result := s.Rewrite(t)

Definitions of rules and strategies are compiled by Build into an
environment, which maps labels to rewriters. Environments are chained: a
module may extend a prior environment without modifying it.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'strat.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("strat.rewrite")
}

/*
Package match implements first-order matching of ATerm patterns against
subject terms, the inverse operation of building terms from a skeleton and
a stack of values, and the analysis of pattern variables.

A pattern is an ordinary term, possibly containing placeholders. Matching
a pattern against a subject yields the list of captured sub-terms in
pre-order of the pattern:

    matched, captures := match.Terms(pattern, subject)

Building reverses a successful match. Given the pattern as a skeleton and
the captures as values, Build re-creates the subject:

    t, err := match.Build(pattern, match.NewValueStack(captures...))

Rule patterns use named variables instead of placeholders. FreeVariables
lists them and Skeleton erases them into placeholders, yielding a pattern
for Terms and a skeleton for Build.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'strat.match'.
func tracer() tracing.Trace {
	return tracing.Select("strat.match")
}

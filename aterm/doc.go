/*
Package aterm implements the term model for strategic rewriting.

ATerms are immutable symbolic trees. The model is a closed union of eight
kinds:

    Leaf          a named atom: a constructor head or a pattern variable
    Int           integer literal
    Real          floating point literal
    String        string literal
    Appl          an application f(t1, …, tn) with a Leaf as its head
    Tuple         (t1, …, tn), an application without a head
    List          [t1, …, tn]
    Placeholder   a typed hole <kind> or <appl(p1, …, pn)> used in patterns

Every term may carry an Annotation, which is metadata passed through by
matching and building.

Terms are values. Equality is structural (see Equal), never by identity.
Constructors copy their argument slices; no operation of this package
mutates a term after construction.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package aterm

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'strat.aterm'.
func tracer() tracing.Trace {
	return tracing.Select("strat.aterm")
}

/*
Package atermlang implements the concrete syntax of ATerms and of rewrite
modules.

Terms are written in a functional notation:

    f(x, g(1, 2.5), "str")      application
    (a, b)                      tuple
    [1, 2, 3]                   list
    <int>  <appl(x, <term>)>    placeholders
    f(x){ty: a, b}              annotation, with optional type tag

A module is a sequence of rule and strategy definitions. Rules sharing a
label are tried in order. In rule patterns every name which is not
followed by an argument list is a variable; constants must be written as
nullary applications, e.g. True(). An as-pattern @F(x) binds the
head of an application to F.

    # simplification of conditionals
    EvalIf : If(True(), e1, e2) -> e1
    EvalIf : If(False(), e1, e2) -> e2
    PropIf : If(B, @F(X), @F(Y)) -> F(If(B, X, Y))

    eval = innermost(EvalIf <+ PropIf)

Strategy expressions are built from labels, the combinators id, fail,
try, repeat, all, some, topdown, bottomup, innermost, seq, choice and
guarded, and the infix operators ';' (sequence), '<+' (left choice) and
'c < s1 + s2' (guarded choice).

Comments start with '#' or '//' and extend to the end of the line.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atermlang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'strat.lang'.
func tracer() tracing.Trace {
	return tracing.Select("strat.lang")
}

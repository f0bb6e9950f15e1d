/*
Command arepl is a command line tool for rewriting ATerms with rules and
strategies. It serves as a sandbox for experiments with rewrite modules
and offers batch modes for scripting.

Usage:

    arepl [module]                        interactive shell
    arepl rewrite -m module -s label t…   rewrite terms with a strategy
    arepl check module…                   build modules and list their labels
    arepl version

Within the shell, a line holding a term makes it the current term. Other
lines are commands:

    ?pattern        match the current term, push captures to the bindings
    !label          rewrite the current term once
    !!label         rewrite the current term to a normal form
    :s label        show a rule block or strategy
    :t term         show the kind of a term
    :tree [term]    draw a term as a tree
    :bindings       list the bindings
    :let defs       add definitions to the environment
    :load file      load a module file
    :browse         list the environment
    :help
    :quit

Configuration is read from strat.yaml (or the file given with --config),
from environment variables with prefix STRAT_ and from command line flags,
in increasing order of precedence.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'strat.repl'
func tracer() tracing.Trace {
	return tracing.Select("strat.repl")
}

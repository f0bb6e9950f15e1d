/*
Package strat is a toolbox for strategic term rewriting.

Strat represents symbolic trees as ATerms, matches them against patterns,
rebuilds new terms from captured sub-terms and composes rewrite rules into
program transformations with a small algebra of strategy combinators.
Package structure is as follows:

■ aterm: Package aterm implements the term model, an immutable closed
union of leaves, literals, applications, tuples, lists and placeholders.

■ aterm/match: Package match implements structural matching of patterns
against terms, the builder splicing captured values into skeletons, and
free-variable analysis of patterns.

■ aterm/rewrite: Package rewrite implements rules, rule blocks, strategy
combinators and the construction of rewriting environments from module
definitions.

■ aterm/atermlang: Package atermlang implements the textual syntax for terms
and for rule/strategy modules.

■ aterm/atermlang/arepl: Command arepl is an interactive shell and batch
driver for rewrite modules.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package strat

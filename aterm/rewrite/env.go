package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// EntryKind tells rule blocks from strategies.
type EntryKind int8

// Kinds of environment entries.
const (
	RuleEntry EntryKind = iota + 1
	StrategyEntry
)

func (k EntryKind) String() string {
	switch k {
	case RuleEntry:
		return "rule"
	case StrategyEntry:
		return "strategy"
	}
	return "undefined"
}

// Entry is a labelled rewriter stored in an environment.
type Entry struct {
	Label string
	Kind  EntryKind
	Block *RuleBlock    // for rule entries
	Cell  *Fwd          // for strategy entries
	Expr  *StrategyExpr // source of a strategy, if known
}

// Rewriter returns the rewriter for an entry.
func (e *Entry) Rewriter() Rewriter {
	if e.Kind == RuleEntry {
		return e.Block
	}
	return e.Cell
}

// String is a debug Stringer for entries.
func (e *Entry) String() string {
	return fmt.Sprintf("<%s %s>", e.Kind, e.Label)
}

// === Environments ==========================================================

// Env is a named environment of labelled rewriters. Environments link back
// to a parent environment, forming a chain. Lookups search the chain from
// the innermost environment outwards.
//
// Environments are created by Build and are not modified afterwards.
type Env struct {
	Name   string
	Parent *Env
	table  *treemap.Map // label -> *Entry
}

// NewEnv creates a new, empty environment.
func NewEnv(name string, parent *Env) *Env {
	return &Env{
		Name:   name,
		Parent: parent,
		table:  treemap.NewWithStringComparator(),
	}
}

// Prettyfied Stringer.
func (env *Env) String() string {
	return fmt.Sprintf("<env %s>", env.Name)
}

// define stores an entry. It returns the previously stored entry of this
// environment, if any.
func (env *Env) define(e *Entry) *Entry {
	var old *Entry
	if v, found := env.table.Get(e.Label); found {
		old = v.(*Entry)
	}
	env.table.Put(e.Label, e)
	return old
}

// local finds an entry in this environment only.
func (env *Env) local(label string) *Entry {
	if v, found := env.table.Get(label); found {
		return v.(*Entry)
	}
	return nil
}

// Resolve finds an entry. Returns the entry (or nil) and the environment of
// the chain the entry was found in.
func (env *Env) Resolve(label string) (*Entry, *Env) {
	for e := env; e != nil; e = e.Parent {
		if entry := e.local(label); entry != nil {
			return entry, e
		}
	}
	return nil, nil
}

// Lookup returns the rewriter for a label.
func (env *Env) Lookup(label string) (Rewriter, bool) {
	if env == nil {
		return nil, false
	}
	entry, _ := env.Resolve(label)
	if entry == nil {
		return nil, false
	}
	return entry.Rewriter(), true
}

// Size counts the entries defined in this environment, excluding parents.
func (env *Env) Size() int {
	return env.table.Size()
}

// visible collects the entries visible from env, where inner entries shadow
// outer ones.
func (env *Env) visible() *treemap.Map {
	vis := treemap.NewWithStringComparator()
	for e := env; e != nil; e = e.Parent {
		it := e.table.Iterator()
		for it.Next() {
			if _, found := vis.Get(it.Key()); !found {
				vis.Put(it.Key(), it.Value())
			}
		}
	}
	return vis
}

// Labels returns all labels visible from env, sorted.
func (env *Env) Labels() []string {
	if env == nil {
		return nil
	}
	keys := env.visible().Keys()
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = k.(string)
	}
	return labels
}

// Each iterates over all entries visible from env, in order of their labels.
func (env *Env) Each(mapper func(*Entry)) {
	if env == nil {
		return
	}
	for _, v := range env.visible().Values() {
		mapper(v.(*Entry))
	}
}

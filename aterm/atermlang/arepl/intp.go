package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/strat/aterm"
	"github.com/npillmayer/strat/aterm/atermlang"
	"github.com/npillmayer/strat/aterm/match"
	"github.com/npillmayer/strat/aterm/rewrite"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object. It holds the state of a session: the
// environment of definitions, the current term and a stack of bindings
// produced by matching.
type Intp struct {
	env      *rewrite.Env
	current  aterm.Term
	bindings []aterm.Term
	maxSteps int
	out      printer
}

// NewIntp creates an interpreter over an environment. env may be nil.
func NewIntp(env *rewrite.Env, maxSteps int, out printer) *Intp {
	return &Intp{env: env, maxSteps: maxSteps, out: out}
}

// Env returns the current environment.
func (intp *Intp) Env() *rewrite.Env {
	return intp.env
}

// Current returns the current term, which may be nil.
func (intp *Intp) Current() aterm.Term {
	return intp.current
}

// errNoTerm is reported for commands which need a current term.
var errNoTerm = errors.New("no current term")

// Eval executes a single line of input. It returns true if the session
// should end. Errors are printed and returned.
func (intp *Intp) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	quit, err := intp.eval(line)
	if err != nil {
		tracer().Debugf("error for %q: %v", line, err)
		intp.out.Error(err.Error())
	}
	return quit, err
}

func (intp *Intp) eval(line string) (bool, error) {
	switch {
	case strings.HasPrefix(line, "?"):
		return false, intp.match(line[1:])
	case strings.HasPrefix(line, "!!"):
		return false, intp.normalize(strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "!"):
		return false, intp.apply(strings.TrimSpace(line[1:]))
	case strings.HasPrefix(line, ":"):
		cmd, arg := line, ""
		if i := strings.IndexAny(line, " \t"); i > 0 {
			cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
		}
		return intp.command(cmd, arg)
	}
	t, err := atermlang.ParseTerm(line)
	if err != nil {
		return false, err
	}
	intp.current = t
	intp.bindings = intp.bindings[:0]
	intp.out.Info(t.String())
	return false, nil
}

func (intp *Intp) command(cmd, arg string) (bool, error) {
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help", ":h":
		intp.out.Info(helpText)
	case ":s":
		return false, intp.show(arg)
	case ":t":
		t, err := atermlang.ParseTerm(arg)
		if err != nil {
			return false, err
		}
		intp.out.Info(t.Kind().String())
	case ":tree":
		t := intp.current
		if arg != "" {
			var err error
			if t, err = atermlang.ParseTerm(arg); err != nil {
				return false, err
			}
		}
		if t == nil {
			return false, errNoTerm
		}
		intp.out.Tree(leveledTerm(t))
	case ":bindings":
		for i, b := range intp.bindings {
			intp.out.Info(fmt.Sprintf("%d: %s", i, b))
		}
	case ":let":
		return false, intp.Let(arg)
	case ":load":
		return false, intp.Load(arg)
	case ":browse":
		intp.browse()
	default:
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}
	return false, nil
}

const helpText = `term           set the current term
?pattern       match the current term, push captures to the bindings
!label         rewrite the current term once
!!label        rewrite the current term to a normal form
:s label       show a rule block or strategy
:t term        show the kind of a term
:tree [term]   draw a term as a tree
:bindings      list the bindings
:let defs      add definitions to the environment
:load file     load a module file
:browse        list the environment
:quit          end the session`

// match matches the current term against a pattern. Variables of the
// pattern match any term.
func (intp *Intp) match(src string) error {
	if intp.current == nil {
		return errNoTerm
	}
	p, err := atermlang.ParsePattern(src)
	if err != nil {
		return err
	}
	ok, caps := match.Terms(match.Skeleton(p, nil), intp.current)
	if !ok {
		intp.out.Info("failed")
		return nil
	}
	intp.bindings = append(intp.bindings, caps...)
	b := make([]string, len(intp.bindings))
	for i, t := range intp.bindings {
		b[i] = t.String()
	}
	intp.out.Info("[" + strings.Join(b, ", ") + "]")
	return nil
}

func (intp *Intp) lookup(label string) (rewrite.Rewriter, error) {
	if r, ok := intp.env.Lookup(label); ok {
		return r, nil
	}
	return nil, fmt.Errorf("no such rule or strategy '%s'", label)
}

func (intp *Intp) apply(label string) error {
	if intp.current == nil {
		return errNoTerm
	}
	r, err := intp.lookup(label)
	if err != nil {
		return err
	}
	t, err := rewrite.Apply(r, intp.current)
	if errors.Is(err, rewrite.ErrNoMatch) {
		intp.out.Info("failed")
		return nil
	}
	intp.current = t
	intp.out.Info(t.String())
	return nil
}

func (intp *Intp) normalize(label string) error {
	if intp.current == nil {
		return errNoTerm
	}
	r, err := intp.lookup(label)
	if err != nil {
		return err
	}
	t, steps, err := rewrite.Normalize(r, intp.current, intp.maxSteps)
	intp.current = t
	if err != nil {
		return err
	}
	intp.out.Info(fmt.Sprintf("%s   (%d steps)", t, steps))
	return nil
}

func (intp *Intp) show(label string) error {
	entry, _ := intp.env.Resolve(label)
	if entry == nil {
		return fmt.Errorf("no such rule or strategy '%s'", label)
	}
	for _, line := range describe(entry) {
		intp.out.Info(line)
	}
	return nil
}

// describe returns the source lines of an entry.
func describe(entry *rewrite.Entry) []string {
	if entry.Kind == rewrite.RuleEntry {
		rules := entry.Block.Rules()
		lines := make([]string, len(rules))
		for i, r := range rules {
			lines[i] = r.String()
		}
		return lines
	}
	if entry.Expr != nil {
		return []string{fmt.Sprintf("%s = %s", entry.Label, entry.Expr)}
	}
	return []string{entry.Label}
}

func (intp *Intp) browse() {
	intp.env.Each(func(entry *rewrite.Entry) {
		intp.out.Info(fmt.Sprintf("%-12s %s", entry.Label, entry.Kind))
	})
}

// Let adds definitions to the environment.
func (intp *Intp) Let(src string) error {
	env, err := atermlang.Module(src, intp.env)
	if err != nil {
		return err
	}
	intp.env = env
	return nil
}

// Load reads a module file and adds its definitions to the environment.
func (intp *Intp) Load(filename string) error {
	if filename == "" {
		return errors.New("missing file name")
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("no such module %s: %w", filename, err)
	}
	if err = intp.Let(string(src)); err != nil {
		return err
	}
	tracer().Infof("loaded module %s", filename)
	return nil
}

// leveledTerm flattens a term into a leveled list, one item per node.
func leveledTerm(t aterm.Term) pterm.LeveledList {
	var ll pterm.LeveledList
	for node, seq := aterm.Preorder(t).First(); !seq.Done(); node = seq.Next() {
		ll = append(ll, pterm.LeveledListItem{
			Level: node.Depth,
			Text:  nodeText(node.Term),
		})
	}
	return ll
}

// nodeText is the label of a node in a tree display. Composite terms show
// their head or kind, atoms show themselves.
func nodeText(t aterm.Term) string {
	var text string
	switch n := t.(type) {
	case aterm.Appl:
		text = n.Head.Label
	case aterm.Tuple:
		text = "()"
	case aterm.List:
		text = "[]"
	case aterm.Placeholder:
		text = "<" + string(n.Hole) + ">"
	default:
		return t.String()
	}
	if a := t.Annotation(); !a.IsEmpty() {
		text += a.String()
	}
	return text
}

// --- Output ----------------------------------------------------------------

// printer abstracts the output of the interpreter.
type printer interface {
	Info(string)
	Error(string)
	Tree(pterm.LeveledList)
}

// ptermPrinter is used in interactive mode. We use pterm for moderately
// fancy output.
type ptermPrinter struct{}

func (ptermPrinter) Info(s string) {
	pterm.Info.Println(s)
}

func (ptermPrinter) Error(s string) {
	pterm.Error.Println(s)
}

func (ptermPrinter) Tree(ll pterm.LeveledList) {
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// plainPrinter writes unadorned text, for batch mode and tests.
type plainPrinter struct {
	w io.Writer
}

func (p plainPrinter) Info(s string) {
	fmt.Fprintln(p.w, s)
}

func (p plainPrinter) Error(s string) {
	fmt.Fprintln(p.w, "error: "+s)
}

func (p plainPrinter) Tree(ll pterm.LeveledList) {
	for _, item := range ll {
		fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", item.Level), item.Text)
	}
}

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
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/strat/aterm/rewrite"
	"github.com/pterm/pterm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const banner = "Welcome to AREPL, type :help for more information"

// REPL starts interactive mode. It returns when the user quits or on end of
// input.
func (intp *Intp) REPL(cfg *Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.REPL.Prompt,
		HistoryFile:     cfg.REPL.History,
		AutoComplete:    intp.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()
	pterm.Info.Println(banner)
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit, _ := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
	return nil
}

var commandNames = []string{":s", ":t", ":tree", ":bindings", ":let", ":load", ":browse", ":help", ":quit"}

// completer completes commands and the labels of the current environment.
// Labels are looked up at completion time, as :let and :load change the
// environment.
func (intp *Intp) completer() *readline.PrefixCompleter {
	labels := func(prefix string) func(string) []string {
		return func(string) []string {
			names := intp.env.Labels()
			for i, l := range names {
				names[i] = prefix + l
			}
			return names
		}
	}
	items := []readline.PrefixCompleterInterface{
		readline.PcItemDynamic(labels("!!")),
		readline.PcItemDynamic(labels("!")),
		readline.PcItem(":s", readline.PcItemDynamic(labels(""))),
	}
	for _, cmd := range commandNames[1:] {
		items = append(items, readline.PcItem(cmd))
	}
	return readline.NewPrefixCompleter(items...)
}

// kinds counts the entries of an environment per kind, for the welcome
// message.
func kinds(env *rewrite.Env) string {
	count := map[string]int{}
	env.Each(func(e *rewrite.Entry) {
		count[e.Kind.String()]++
	})
	keys := maps.Keys(count)
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d %s", count[k], k)
	}
	if len(parts) == 0 {
		return "empty environment"
	}
	return strings.Join(parts, ", ")
}

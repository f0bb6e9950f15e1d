package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/strat/aterm/atermlang"
	"github.com/npillmayer/strat/aterm/rewrite"
	"github.com/spf13/cobra"
)

// Version information, set at build time.
var Version = "0.1.0"

// configKey is used to store the configuration in a command's context.
type configKey struct{}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command. Without a subcommand it starts the
// interactive shell.
func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "arepl [module]",
		Short: "Rewrite ATerms with rules and strategies",
		Long: `arepl is a sandbox for term rewriting. Modules define rewrite rules
and strategies; terms are rewritten interactively or in batch mode.`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err = cfg.setupTracing(); err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		RunE:          runREPL,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./strat.yaml)")
	flags.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flags.String("prelude", "", "module loaded before all others")
	flags.Bool("noprelude", false, "do not load the prelude")
	flags.Int("maxsteps", 10000, "step limit for normalization, 0 for no limit")
	root.AddCommand(newREPLCmd(), newRewriteCmd(), newCheckCmd(), newVersionCmd())
	return root
}

func configFrom(cmd *cobra.Command) *Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*Config); ok {
		return cfg
	}
	panic("configuration not loaded")
}

// loadModules builds an environment from the prelude (unless switched off)
// and a sequence of module files, each extending the former ones.
func loadModules(cfg *Config, modules []string) (*rewrite.Env, error) {
	if !cfg.REPL.NoPrelude && cfg.REPL.Prelude != "" {
		modules = append([]string{cfg.REPL.Prelude}, modules...)
	}
	var env *rewrite.Env
	for _, m := range modules {
		src, err := os.ReadFile(m)
		if err != nil {
			return nil, err
		}
		defs, err := atermlang.ParseDefinitions(m, string(src))
		if err != nil {
			return nil, err
		}
		if env, err = rewrite.Build(defs, env); err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		tracer().Debugf("loaded %s", m)
	}
	return env, nil
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	env, err := loadModules(cfg, args)
	if err != nil {
		return err
	}
	initDisplay()
	intp := NewIntp(env, cfg.Rewrite.MaxSteps, ptermPrinter{})
	if env != nil {
		intp.out.Info(kinds(env))
	}
	return intp.REPL(cfg)
}

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl [module]",
		Short: "Start the interactive shell",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runREPL,
	}
}

// --- Batch mode ------------------------------------------------------------

type rewriteOptions struct {
	modules   []string
	strategy  string
	normalize bool
}

func newRewriteCmd() *cobra.Command {
	opts := &rewriteOptions{}
	cmd := &cobra.Command{
		Use:   "rewrite -m module -s label term…",
		Short: "Rewrite terms with a rule or strategy",
		Long: `Rewrite applies a rule block or strategy to each of the terms given as
arguments and prints one result per line. A failing rewrite prints <fail>.`,
		Example: `  arepl rewrite -m simplify.str -s eval 'If(True(), a, b)'
  arepl rewrite -m peano.str -s norm --normalize 'Succ(Succ(0))'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, opts, args)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.modules, "module", "m", nil, "module file(s) to load")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "label of the rule or strategy to apply")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "rewrite until a normal form is reached")
	_ = cmd.MarkFlagRequired("strategy")
	return cmd
}

func runRewrite(cmd *cobra.Command, opts *rewriteOptions, args []string) error {
	cfg := configFrom(cmd)
	env, err := loadModules(cfg, opts.modules)
	if err != nil {
		return err
	}
	r, ok := env.Lookup(opts.strategy)
	if !ok {
		return fmt.Errorf("no such rule or strategy '%s'", opts.strategy)
	}
	out := cmd.OutOrStdout()
	for _, arg := range args {
		t, err := atermlang.ParseTerm(arg)
		if err != nil {
			return err
		}
		if opts.normalize {
			t, _, err = rewrite.Normalize(r, t, cfg.Rewrite.MaxSteps)
			if err != nil {
				return err
			}
		} else if t, err = rewrite.Apply(r, t); errors.Is(err, rewrite.ErrNoMatch) {
			_, _ = fmt.Fprintln(out, rewrite.Failure())
			continue
		}
		_, _ = fmt.Fprintln(out, t)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check module…",
		Short: "Build modules and list their labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			for _, m := range args {
				env, err := loadModules(cfg, []string{m})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m, strings.Join(env.Labels(), " "))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "arepl v%s\n", Version)
		},
	}
}

package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
)

// Config holds the settings of arepl.
type Config struct {
	Trace   string        `koanf:"trace"` // default trace level
	REPL    REPLConfig    `koanf:"repl"`
	Rewrite RewriteConfig `koanf:"rewrite"`

	file string     // config file used, if any
	conf *koanfConf // all settings, including tracing
}

// REPLConfig holds settings of the interactive shell.
type REPLConfig struct {
	Prompt    string `koanf:"prompt"`
	History   string `koanf:"history"`
	Prelude   string `koanf:"prelude"`
	NoPrelude bool   `koanf:"noprelude"`
}

// RewriteConfig holds settings of the rewrite driver.
type RewriteConfig struct {
	MaxSteps int `koanf:"maxsteps"`
}

// traceKeys are the tracer keys of the packages of this module.
var traceKeys = []string{"strat.aterm", "strat.match", "strat.rewrite", "strat.lang", "strat.repl"}

var defaults = map[string]interface{}{
	"tracing.adapter":  "go",
	"trace":            "Error",
	"repl.prompt":      ">> ",
	"repl.history":     "",
	"repl.prelude":     "",
	"repl.noprelude":   false,
	"rewrite.maxsteps": 10000,
}

// flagKeys maps command line flags to configuration keys. Flags not listed
// here are not part of the configuration.
var flagKeys = map[string]string{
	"trace":     "trace",
	"prelude":   "repl.prelude",
	"noprelude": "repl.noprelude",
	"maxsteps":  "rewrite.maxsteps",
}

// findConfigFile returns the config file to use.
// Priority: explicit path > ./strat.yaml > ./strat.yml > user config
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"strat.yaml", "strat.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if found := schuko.LocateConfig("strat", "", []string{"yaml", "yml"}); len(found) > 0 {
		return found[0]
	}
	return ""
}

// envKey transforms STRAT_REWRITE_MAXSTEPS into rewrite.maxsteps.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "STRAT_"))
	return strings.ReplaceAll(s, "_", ".")
}

// loadConfig loads the configuration from defaults, a config file,
// environment variables and flags. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
// Only flags which have been set explicitly override other settings.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}
	if err := k.Load(env.Provider("STRAT_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	// tracers without a level of their own get the default level
	for _, key := range append([]string{"root"}, traceKeys...) {
		if !k.Exists("tracelevel." + key) {
			if err := k.Set("tracelevel."+key, cfg.Trace); err != nil {
				return nil, err
			}
		}
	}
	cfg.file = used
	cfg.conf = &koanfConf{k: k}
	return &cfg, nil
}

// traceLevel returns the configured trace level for a tracer key.
func (cfg *Config) traceLevel(key string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(cfg.conf.GetString("tracelevel." + key))
}

// setupTracing installs trace2go as the tracer selector, configured from
// keys tracing.adapter, tracing.destination and tracelevel.*.
func (cfg *Config) setupTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(cfg.conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if cfg.file != "" {
		tracer().Infof("using config file %s", cfg.file)
	}
	return nil
}

// --- schuko.Configuration ---------------------------------------------------

// koanfConf adapts a koanf instance to schuko.Configuration, which is what
// the tracing packages read their settings from.
type koanfConf struct {
	k *koanf.Koanf
}

var _ schuko.Configuration = &koanfConf{}

// InitDefaults is part of interface schuko.Configuration. Defaults are
// loaded by loadConfig.
func (c *koanfConf) InitDefaults() {}

// IsSet is part of interface schuko.Configuration.
func (c *koanfConf) IsSet(key string) bool {
	return c.k.Exists(key)
}

// GetString is part of interface schuko.Configuration.
func (c *koanfConf) GetString(key string) string {
	return c.k.String(key)
}

// GetInt is part of interface schuko.Configuration.
func (c *koanfConf) GetInt(key string) int {
	return c.k.Int(key)
}

// GetBool is part of interface schuko.Configuration.
func (c *koanfConf) GetBool(key string) bool {
	return c.k.Bool(key)
}

// IsInteractive is part of interface schuko.Configuration.
func (c *koanfConf) IsInteractive() bool {
	return false
}

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/npillmayer/derive"
	"github.com/npillmayer/derive/search"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of gramcheck. It may be read from a YAML file;
// flags given on the command line take precedence.
type Config struct {
	Mode          string        `yaml:"mode"`           // fifo or best
	Advisory      bool          `yaml:"advisory"`       // use advisory pruners
	MaxExpansions int           `yaml:"max_expansions"` // 0 = unlimited
	MaxDepth      int           `yaml:"max_depth"`      // 0 = unlimited
	Verify        bool          `yaml:"verify"`         // cross-check with the Earley oracle
	Stats         bool          `yaml:"stats"`          // print search statistics
	Workers       int           `yaml:"workers"`        // concurrent checks
	Timeout       time.Duration `yaml:"timeout"`        // 0 = none
	Trace         string        `yaml:"trace"`          // error, info or debug
}

func defaultConfig() Config {
	return Config{
		Mode:    derive.FIFO.String(),
		Workers: 4,
		Trace:   "error",
	}
}

// loadConfig reads a configuration file on top of the defaults.
func loadConfig(path string) (Config, error) {
	conf := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return conf, nil
}

// mergeFlags copies flags set on the command line into conf.
func mergeFlags(cmd *cobra.Command, conf *Config, flags *Config) {
	changed := cmd.Flags().Changed
	if changed("mode") {
		conf.Mode = flags.Mode
	}
	if changed("advisory") {
		conf.Advisory = flags.Advisory
	}
	if changed("max-expansions") {
		conf.MaxExpansions = flags.MaxExpansions
	}
	if changed("max-depth") {
		conf.MaxDepth = flags.MaxDepth
	}
	if changed("verify") {
		conf.Verify = flags.Verify
	}
	if changed("stats") {
		conf.Stats = flags.Stats
	}
	if changed("workers") {
		conf.Workers = flags.Workers
	}
	if changed("timeout") {
		conf.Timeout = flags.Timeout
	}
	if changed("trace") {
		conf.Trace = flags.Trace
	}
}

// searchOptions translates the configuration into options for search.Check.
func (conf Config) searchOptions() ([]search.Option, error) {
	mode, err := derive.ParseSearchMode(conf.Mode)
	if err != nil {
		return nil, err
	}
	return []search.Option{
		search.WithMode(mode),
		search.WithAdvisoryPruners(conf.Advisory),
		search.WithMaxExpansions(conf.MaxExpansions),
		search.WithMaxDepth(conf.MaxDepth),
	}, nil
}

// setupTracing installs log-based tracers, unless tracers are already
// present, and sets their level.
func setupTracing(level string) error {
	level = strings.ToLower(level)
	switch level {
	case "", "error", "info", "debug":
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	if gtrace.CoreTracer == nil {
		gtrace.CoreTracer = gologadapter.New()
	}
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = gologadapter.New()
	}
	for _, t := range []tracing.Trace{gtrace.CoreTracer, gtrace.SyntaxTracer} {
		switch level {
		case "info":
			t.SetTraceLevel(tracing.LevelInfo)
		case "debug":
			t.SetTraceLevel(tracing.LevelDebug)
		default:
			t.SetTraceLevel(tracing.LevelError)
		}
	}
	return nil
}

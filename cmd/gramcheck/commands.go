package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/derive/gramfile"
	"github.com/npillmayer/derive/grammar"
	"github.com/npillmayer/derive/oracle"
	"github.com/npillmayer/derive/search"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
)

// app carries the state shared by the commands of a single invocation.
type app struct {
	configFile string
	flags      Config // values of command line flags
	conf       Config // effective configuration
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultConfig()}
	root := &cobra.Command{
		Use:               "gramcheck",
		Short:             "Decide membership of words in context-free languages",
		SilenceUsage:      true,
		PersistentPreRunE: a.configure,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.flags.Trace, "trace", a.flags.Trace, "trace level: error, info or debug")
	root.AddCommand(a.checkCmd(), a.listCmd(), a.showCmd())
	return root
}

func (a *app) configure(cmd *cobra.Command, args []string) error {
	conf := defaultConfig()
	if a.configFile != "" {
		var err error
		if conf, err = loadConfig(a.configFile); err != nil {
			return err
		}
	}
	mergeFlags(cmd, &conf, &a.flags)
	if conf.Workers < 1 {
		conf.Workers = 1
	}
	a.conf = conf
	return setupTracing(conf.Trace)
}

// --- check ------------------------------------------------------------------

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <grammar-file> [word...]",
		Short: "Check whether words can be generated by a grammar",
		Long: `Check whether words can be generated by a grammar. For every word
which can be generated, a derivation is printed. If no words are given,
words are read from standard input, one per line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCheck,
	}
	f := cmd.Flags()
	f.StringVar(&a.flags.Mode, "mode", a.flags.Mode, "search mode: fifo or best")
	f.BoolVar(&a.flags.Advisory, "advisory", false, "use advisory pruners as well")
	f.IntVar(&a.flags.MaxExpansions, "max-expansions", 0, "maximum number of expansions per word, 0 for no limit")
	f.IntVar(&a.flags.MaxDepth, "max-depth", 0, "maximum derivation depth, 0 for no limit")
	f.BoolVar(&a.flags.Verify, "verify", false, "cross-check results with an Earley parser")
	f.BoolVar(&a.flags.Stats, "stats", false, "print search statistics")
	f.IntVar(&a.flags.Workers, "workers", a.flags.Workers, "number of words checked concurrently")
	f.DurationVar(&a.flags.Timeout, "timeout", 0, "give up after this duration, 0 for no limit")
	return cmd
}

// verdict is the outcome of checking a single word.
type verdict struct {
	word   string
	result search.Result
	oracle bool  // Earley parser accepts the word
	err    error // Earley parser failed
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	g, err := gramfile.LoadFile(args[0])
	if err != nil {
		return err
	}
	opts, err := a.conf.searchOptions()
	if err != nil {
		return err
	}
	ctx, cancel := a.deadline(cmd.Context())
	defer cancel()
	out, p := cmd.OutOrStdout(), newPrinter()
	var disagreements int
	if len(args) == 1 {
		disagreements, err = a.checkLines(ctx, cmd.InOrStdin(), out, p, g, opts)
	} else {
		disagreements, err = a.checkWords(ctx, out, p, g, args[1:], opts)
	}
	if err != nil {
		return err
	}
	if disagreements > 0 {
		return fmt.Errorf("%d result(s) disagree with the Earley parser", disagreements)
	}
	return nil
}

// checkWords checks words concurrently and reports them in the order given.
func (a *app) checkWords(ctx context.Context, out io.Writer, p *message.Printer,
	g *grammar.Grammar, words []string, opts []search.Option) (int, error) {
	//
	verdicts := make([]verdict, len(words))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.conf.Workers)
	err := await(ctx, func() error {
		for i, word := range words {
			i, word := i, word
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				verdicts[i] = a.checkWord(g, word, opts)
				return nil
			})
		}
		return eg.Wait()
	})
	if err != nil {
		return 0, err
	}
	disagreements := 0
	for _, v := range verdicts {
		if a.report(out, p, v) {
			disagreements++
		}
	}
	return disagreements, nil
}

// checkLines checks one word per line of input. Empty lines and lines
// starting with '#' are skipped.
func (a *app) checkLines(ctx context.Context, in io.Reader, out io.Writer, p *message.Printer,
	g *grammar.Grammar, opts []search.Option) (int, error) {
	//
	disagreements := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		var v verdict
		if err := await(ctx, func() error {
			v = a.checkWord(g, word, opts)
			return nil
		}); err != nil {
			return disagreements, err
		}
		if a.report(out, p, v) {
			disagreements++
		}
	}
	return disagreements, scanner.Err()
}

func (a *app) checkWord(g *grammar.Grammar, word string, opts []search.Option) verdict {
	word = gramfile.NormalizeWord(word)
	v := verdict{word: word, result: search.Check(g, word, opts...)}
	if a.conf.Verify {
		v.oracle, v.err = oracle.Recognize(g, word)
	}
	return v
}

// report prints a verdict. It returns true if the Earley parser contradicts
// a conclusive search result.
func (a *app) report(w io.Writer, p *message.Printer, v verdict) bool {
	r := v.result
	switch {
	case r.Accepted:
		fmt.Fprintf(w, "%s: can be generated\n", v.word)
		r.Derivation.WriteTo(w)
	case r.Truncated:
		fmt.Fprintf(w, "%s: cannot be generated within the search limits\n", v.word)
	default:
		fmt.Fprintf(w, "%s: cannot be generated\n", v.word)
	}
	if a.conf.Stats {
		printStats(w, p, r.Stats)
	}
	if !a.conf.Verify {
		return false
	}
	switch {
	case v.err != nil:
		fmt.Fprintf(w, "  Earley parser failed: %v\n", v.err)
	case v.oracle == r.Accepted:
		fmt.Fprintln(w, "  Earley parser agrees")
	case r.Truncated:
		fmt.Fprintln(w, "  Earley parser accepts")
	default:
		fmt.Fprintln(w, "  Earley parser disagrees")
		return true
	}
	return false
}

func printStats(w io.Writer, p *message.Printer, s search.Stats) {
	names := make([]string, 0, len(s.Pruned))
	pruned := 0
	for name, n := range s.Pruned {
		names = append(names, name)
		pruned += n
	}
	sort.Strings(names)
	p.Fprintf(w, "  expanded %d, generated %d, admitted %d, pruned %d, frontier %d\n",
		s.Expanded, s.Generated, s.Admitted, pruned, s.MaxFrontier)
	for _, name := range names {
		p.Fprintf(w, "    %-16s %d\n", name, s.Pruned[name])
	}
}

func (a *app) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.conf.Timeout > 0 {
		return context.WithTimeout(ctx, a.conf.Timeout)
	}
	return context.WithCancel(ctx)
}

// await runs f and waits until it returns or ctx is done. In the latter
// case f is abandoned.
func await(ctx context.Context, f func() error) error {
	done := make(chan error, 1)
	go func() { done <- f() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("giving up: %w", ctx.Err())
	}
}

// --- list -------------------------------------------------------------------

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <directory>",
		Short: "Load all grammars in a directory and list them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := gramfile.NewRegistry()
			n, err := reg.LoadDir(args[0])
			out := cmd.OutOrStdout()
			for i, e := range reg.List() {
				if name := e.Grammar.Name(); name != e.File {
					fmt.Fprintf(out, "%d: %s (%s)\n", i+1, e.File, name)
				} else {
					fmt.Fprintf(out, "%d: %s\n", i+1, e.File)
				}
			}
			if err == nil {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			if n == 0 {
				return errors.New("no grammar loaded")
			}
			return nil
		},
	}
}

// --- show -------------------------------------------------------------------

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <grammar-file>",
		Short: "Print a grammar, with empty rules eliminated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gramfile.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
}

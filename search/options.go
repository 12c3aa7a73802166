package search

import "github.com/npillmayer/derive"

// --- Search options ---------------------------------------------------------

// Option configures a single query.
type Option func(c *config)

type config struct {
	mode          derive.SearchMode
	pruners       Chain
	advisory      bool
	maxExpansions int // 0 = unlimited
	maxDepth      int // 0 = unlimited
}

func newConfig(opts []Option) *config {
	c := &config{
		mode:    derive.FIFO,
		pruners: DefaultPruners(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.advisory {
		chain := make(Chain, 0, len(c.pruners)+2)
		chain = append(chain, c.pruners...)
		c.pruners = append(chain, AdvisoryPruners()...)
	}
	return c
}

// WithMode sets the order in which forms are expanded. The default is
// derive.FIFO.
func WithMode(mode derive.SearchMode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithPruners replaces the default chain of pruners. Clients removing
// LengthBound or Duplicate should bound the search with WithMaxExpansions or
// WithMaxDepth, as it may not terminate otherwise.
func WithPruners(pruners ...Pruner) Option {
	return func(c *config) {
		c.pruners = append(Chain(nil), pruners...)
	}
}

// WithAdvisoryPruners appends the advisory pruners to the chain.
func WithAdvisoryPruners(b bool) Option {
	return func(c *config) {
		c.advisory = b
	}
}

// WithMaxExpansions stops the search after n nodes have been expanded.
// n ≤ 0 means no limit.
func WithMaxExpansions(n int) Option {
	return func(c *config) {
		c.maxExpansions = max(n, 0)
	}
}

// WithMaxDepth keeps the search from expanding nodes at depth n or deeper.
// n ≤ 0 means no limit.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = max(n, 0)
	}
}

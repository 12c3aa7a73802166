package search

import (
	"github.com/npillmayer/derive"
	"github.com/npillmayer/derive/grammar"
)

// Query holds what pruners need to know about a running search: the word to
// derive, the grammar and the forms admitted so far.
type Query struct {
	Target  grammar.Sentence
	Grammar *grammar.Grammar
	Seen    *SeenSet
	counts  map[grammar.Symbol]int // occurrences of terminals in Target
}

// NewQuery creates a query for target with an empty seen set.
func NewQuery(g *grammar.Grammar, target grammar.Sentence) *Query {
	q := &Query{
		Target:  target,
		Grammar: g,
		Seen:    NewSeenSet(),
		counts:  make(map[grammar.Symbol]int),
	}
	for _, s := range target {
		q.counts[s]++
	}
	return q
}

// Pruner decides whether a freshly generated child may be discarded.
//
// Implementations must be sound: Prune must return false for every child
// from which q.Target is derivable (or which is q.Target). Pruners must not
// modify the query; the driver records survivors in q.Seen.
type Pruner interface {
	Name() string
	Prune(q *Query, child *derive.Node) bool
}

// Chain is a sequence of pruners, consulted in order.
type Chain []Pruner

// ShouldPrune runs the pruners of c on child, stopping at the first one which
// fires. It returns the name of that pruner.
func (c Chain) ShouldPrune(q *Query, child *derive.Node) (bool, string) {
	for _, p := range c {
		if p.Prune(q, child) {
			return true, p.Name()
		}
	}
	return false, ""
}

// DefaultPruners returns the chain of sound pruners every search uses unless
// told otherwise: LengthBound, Duplicate and TerminalOrder.
func DefaultPruners() Chain {
	return Chain{LengthBound{}, Duplicate{}, TerminalOrder{}}
}

// AdvisoryPruners returns the opt-in pruners NonTerminalRuns and
// Overexpansion. They are meant to be appended to the default chain.
func AdvisoryPruners() Chain {
	return Chain{NonTerminalRuns{}, Overexpansion{}}
}

// --- Length -----------------------------------------------------------------

// LengthBound prunes forms longer than the target. Grammars are free of
// ε-rules, so forms never shrink.
type LengthBound struct{}

// Name is part of interface Pruner.
func (LengthBound) Name() string { return "length" }

// Prune is part of interface Pruner.
func (LengthBound) Prune(q *Query, child *derive.Node) bool {
	return len(child.Text) > len(q.Target)
}

// --- Duplicates -------------------------------------------------------------

// Duplicate prunes forms which have been admitted to the tree before.
// Everything derivable from them is reachable from the earlier node.
type Duplicate struct{}

// Name is part of interface Pruner.
func (Duplicate) Name() string { return "duplicate" }

// Prune is part of interface Pruner.
func (Duplicate) Prune(q *Query, child *derive.Node) bool {
	return q.Seen.Contains(child.Text)
}

// --- Terminal order ---------------------------------------------------------

// TerminalOrder prunes forms whose terminals cannot be part of the target.
// Terminals are never rewritten, so each terminal of a form has to re-appear
// in the target, in the same order.
//
// The leading run of terminals must be a prefix of the target, the trailing
// run a suffix. A form consisting of terminals only must equal the target.
// In between, the form starts and ends with a non-terminal. Here every
// block of adjacent terminals must occur in the corresponding middle of the
// target, blocks in order, with at least one target symbol for every
// non-terminal before, between and after them (grammars are free of
// ε-rules). Blocks are placed leftmost-first, which finds a placement
// whenever there is one.
type TerminalOrder struct{}

// Name is part of interface Pruner.
func (TerminalOrder) Name() string { return "terminal-order" }

// Prune is part of interface Pruner.
func (TerminalOrder) Prune(q *Query, child *derive.Node) bool {
	c, t, g := child.Text, q.Target, q.Grammar
	p := 0
	for p < len(c) && g.IsTerminal(c[p]) {
		if p >= len(t) || c[p] != t[p] {
			return true
		}
		p++
	}
	if p == len(c) {
		return len(c) != len(t)
	}
	s := 0
	for s < len(c)-p && g.IsTerminal(c[len(c)-1-s]) {
		ti := len(t) - 1 - s
		if ti < p || c[len(c)-1-s] != t[ti] {
			return true
		}
		s++
	}
	return !embeds(g, c[p:len(c)-s], t[p:len(t)-s])
}

// embeds checks if the middle part of a form can derive the middle part of
// the target, as far as its terminal blocks and its number of non-terminals
// are concerned.
func embeds(g *grammar.Grammar, form, target grammar.Sentence) bool {
	pos := 0
	for i := 0; i < len(form); {
		j := i
		if g.IsNonTerminal(form[i]) {
			for j < len(form) && g.IsNonTerminal(form[j]) {
				j++
			}
			pos += j - i // each non-terminal covers at least one symbol
		} else {
			for j < len(form) && !g.IsNonTerminal(form[j]) {
				j++
			}
			at := indexFrom(target, form[i:j], pos)
			if at < 0 {
				return false
			}
			pos = at + j - i
		}
		i = j
	}
	return pos <= len(target)
}

// indexFrom returns the first position ≥ from where block occurs in s, or -1.
func indexFrom(s, block grammar.Sentence, from int) int {
	for i := from; i+len(block) <= len(s); i++ {
		if s[i : i+len(block)].Equals(block) {
			return i
		}
	}
	return -1
}

// --- Non-terminal runs ------------------------------------------------------

// NonTerminalRuns is an advisory pruner. It checks every maximal run of
// adjacent non-terminals against the room the target leaves for it.
//
// If the run is preceded by the k-th occurrence of terminal a in the form,
// its yield starts after the k-th occurrence of a in the target at the
// earliest. Likewise, if it is followed by the m-th-from-last occurrence of
// terminal b, its yield ends before the m-th-from-last occurrence of b in the
// target at the latest. The run is pruned if the room in between is smaller
// than the shortest yield of the run, or if a bounding occurrence does not
// exist. Forms with more occurrences of some terminal than the target are
// pruned as well.
type NonTerminalRuns struct{}

// Name is part of interface Pruner.
func (NonTerminalRuns) Name() string { return "nonterminal-runs" }

// Prune is part of interface Pruner.
func (NonTerminalRuns) Prune(q *Query, child *derive.Node) bool {
	c, t, g := child.Text, q.Target, q.Grammar
	seen := make(map[grammar.Symbol]int)
	for _, s := range c {
		if g.IsTerminal(s) {
			seen[s]++
			if seen[s] > q.counts[s] {
				return true
			}
		}
	}
	for i := 0; i < len(c); {
		if !g.IsNonTerminal(c[i]) {
			i++
			continue
		}
		j, need := i, 0
		for j < len(c) && g.IsNonTerminal(c[j]) {
			need = addYield(need, g.MinYield(c[j]))
			j++
		}
		lo, hi := -1, len(t)
		if i > 0 {
			if lo = nthOccurrence(t, c[i-1], count(c[:i], c[i-1])); lo < 0 {
				return true
			}
		}
		if j < len(c) {
			if hi = nthLastOccurrence(t, c[j], count(c[j:], c[j])); hi < 0 {
				return true
			}
		}
		if hi-lo-1 < need {
			return true
		}
		i = j
	}
	return false
}

func count(s grammar.Sentence, sym grammar.Symbol) int {
	n := 0
	for _, x := range s {
		if x == sym {
			n++
		}
	}
	return n
}

// nthOccurrence returns the position of the n-th occurrence (n ≥ 1) of sym in
// s, counting from the left, or -1.
func nthOccurrence(s grammar.Sentence, sym grammar.Symbol, n int) int {
	for i, x := range s {
		if x == sym {
			if n--; n == 0 {
				return i
			}
		}
	}
	return -1
}

// nthLastOccurrence returns the position of the n-th occurrence (n ≥ 1) of
// sym in s, counting from the right, or -1.
func nthLastOccurrence(s grammar.Sentence, sym grammar.Symbol, n int) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == sym {
			if n--; n == 0 {
				return i
			}
		}
	}
	return -1
}

// --- Overexpansion ----------------------------------------------------------

// Overexpansion is an advisory pruner. It prunes forms which have expanded
// beyond what the target can hold: the shortest terminal string derivable
// from the form is longer than the target. This covers forms containing
// non-terminals which derive no terminal string at all.
type Overexpansion struct{}

// Name is part of interface Pruner.
func (Overexpansion) Name() string { return "overexpansion" }

// Prune is part of interface Pruner.
func (Overexpansion) Prune(q *Query, child *derive.Node) bool {
	total := 0
	for _, s := range child.Text {
		if total = addYield(total, q.Grammar.MinYield(s)); total > len(q.Target) {
			return true
		}
	}
	return false
}

func addYield(a, b int) int {
	if a >= grammar.Unproductive-b {
		return grammar.Unproductive
	}
	return a + b
}

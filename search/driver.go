package search

import (
	"fmt"

	"github.com/npillmayer/derive"
	"github.com/npillmayer/derive/grammar"
)

// Result is the outcome of a membership query.
type Result struct {
	Accepted   bool       // the word is in the language of the grammar
	Derivation Derivation // root-to-word forms if accepted, nil otherwise
	Truncated  bool       // a limit stopped the search; a rejection is inconclusive
	Stats      Stats
}

// Stats counts what a query did.
type Stats struct {
	Expanded    int            // nodes taken from the frontier and expanded
	Generated   int            // children produced by expansion
	Admitted    int            // nodes added to the tree, root included
	Pruned      map[string]int // pruned children, by pruner name
	MaxFrontier int            // high-water mark of the frontier
}

func (s Stats) String() string {
	pruned := 0
	for _, n := range s.Pruned {
		pruned += n
	}
	return fmt.Sprintf("expanded=%d generated=%d admitted=%d pruned=%d max-frontier=%d",
		s.Expanded, s.Generated, s.Admitted, pruned, s.MaxFrontier)
}

// Check decides if g derives word, one symbol per rune. It returns a
// derivation if it does.
//
// Check panics if g is nil.
func Check(g *grammar.Grammar, word string, opts ...Option) Result {
	return CheckSentence(g, grammar.SentenceOf(word), opts...)
}

// CheckSentence decides if g derives target. See Check.
func CheckSentence(g *grammar.Grammar, target grammar.Sentence, opts ...Option) Result {
	if g == nil {
		panic("search: grammar is nil")
	}
	if !g.IsNonTerminal(g.Start()) {
		panic(fmt.Sprintf("search: start symbol %q is not a non-terminal", rune(g.Start())))
	}
	conf := newConfig(opts)
	result := Result{Stats: Stats{Pruned: make(map[string]int)}}
	if len(target) == 0 || !g.IsTerminalSentence(target) {
		// The empty word is not derivable, as grammars are free of ε-rules.
		T().Debugf("search: %q is not a non-empty terminal word, rejected", target.String())
		return result
	}
	arena := derive.BorrowArena()
	defer arena.Release()
	q := NewQuery(g, target)
	root := derive.Node{
		Text:      grammar.Sentence{g.Start()},
		Parent:    derive.NoParent,
		Heuristic: 1,
	}
	rootID := arena.Add(root)
	q.Seen.Add(root.Text)
	frontier := derive.NewFrontier(conf.mode)
	frontier.Push(derive.EntryFor(rootID, root))
	result.Stats.MaxFrontier = 1
	for {
		e, ok := frontier.Pop()
		if !ok {
			break
		}
		node := arena.Node(e.ID)
		if node.Text.Equals(target) {
			result.Accepted = true
			result.Derivation = Trace(arena, e.ID)
			break
		}
		if conf.maxDepth > 0 && node.Depth >= conf.maxDepth {
			result.Truncated = true
			continue
		}
		if conf.maxExpansions > 0 && result.Stats.Expanded >= conf.maxExpansions {
			result.Truncated = true
			break
		}
		result.Stats.Expanded++
		T().Debugf("search: expanding %v", node)
		exp := NewExpansion(g, node.Text)
		for form, ok := exp.Next(); ok; form, ok = exp.Next() {
			result.Stats.Generated++
			child := childOf(g, e.ID, node, form)
			if prune, by := conf.pruners.ShouldPrune(q, &child); prune {
				T().Debugf("search:   pruned %s (%s)", form, by)
				result.Stats.Pruned[by]++
				continue
			}
			id := arena.Add(child)
			q.Seen.Add(child.Text)
			frontier.Push(derive.EntryFor(id, child))
			T().Debugf("search:   admitted %s", form)
		}
		if n := frontier.Len(); n > result.Stats.MaxFrontier {
			result.Stats.MaxFrontier = n
		}
	}
	result.Stats.Admitted = arena.Len()
	T().P("mode", conf.mode).P("word", target.String()).Infof("search: accepted=%v, %v",
		result.Accepted, result.Stats)
	return result
}

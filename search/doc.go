/*
Package search decides membership of words in context-free languages by
searching for a derivation.

Typical Usage

	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	result := search.Check(g, "aabb")
	if result.Accepted {
		fmt.Println(result.Derivation)
	}

prints

	S ->
	aSb ->
	aabb

How it works

The driver starts with a tree holding only the start symbol. It repeatedly
takes the next node from the frontier, compares its form with the word and
otherwise expands it: every non-terminal of the form is rewritten at once,
one alternative each, producing one child per combination of alternatives.
Partial rewrites are never generated; every non-terminal has to be rewritten
eventually, so they would only duplicate work.

Each child passes through a chain of pruners (see Pruner). The default chain
discards children which are longer than the word, which have been admitted
before, or whose terminals disagree with the word. Survivors are recorded in
the set of seen forms and pushed onto the frontier. The search ends when the
word is found or the frontier is empty.

Pruners must be sound: a pruner never discards a form from which the word
is derivable. Pruners NonTerminalRuns and Overexpansion are opt-in.

Concurrency

A single query runs on the caller's goroutine and owns its tree, frontier
and seen set. Grammars are read-only, so any number of queries on the same
grammar may run concurrently.
*/
package search

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

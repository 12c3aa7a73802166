/*
Package oracle decides membership of words with an Earley parser.

The search in package search is exponential in the worst case, but easy to
follow. The oracle is polynomial, and answers yes or no only. It serves to
cross-check search results, in tests as well as from the command line.

Tracing goes to the syntax tracer.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package oracle

import (
	"errors"
	"fmt"

	"github.com/npillmayer/derive/grammar"
	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/gorgo/lr/earley"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the syntax-tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Oracle is a recognizer for the language of a grammar.
// An Oracle may be used for any number of words, but not concurrently.
type Oracle struct {
	g        *grammar.Grammar
	analysis *lr.LRAnalysis // nil if the language is empty
}

// New creates an oracle for g.
//
// Only rules which may take part in the derivation of a word are handed to
// the parser: rules of non-terminals reachable from the start symbol, using
// productive symbols only. This does not change the language.
func New(g *grammar.Grammar) (*Oracle, error) {
	if g == nil {
		return nil, errors.New("oracle: grammar is nil")
	}
	o := &Oracle{g: g}
	if g.MinYield(g.Start()) == grammar.Unproductive {
		T().Infof("oracle: language of %q is empty", g.Name())
		return o, nil
	}
	b := lr.NewGrammarBuilder(g.Name())
	for _, nt := range reachable(g) { // start symbol first
		for _, alt := range g.Alternatives(nt) {
			if !productive(g, alt) {
				continue
			}
			r := b.LHS(ntName(nt))
			for _, sym := range alt {
				if g.IsTerminal(sym) {
					r = r.T(tName(sym), int(sym))
				} else {
					r = r.N(ntName(sym))
				}
			}
			r.End()
		}
	}
	lrg, err := b.Grammar()
	if err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}
	o.analysis = lr.Analysis(lrg)
	return o, nil
}

// Recognize is true if word is in the language of the grammar.
func (o *Oracle) Recognize(word string) (bool, error) {
	target := grammar.SentenceOf(word)
	if o.analysis == nil || len(target) == 0 || !o.g.IsTerminalSentence(target) {
		return false, nil
	}
	parser := earley.NewParser(o.analysis)
	if parser == nil {
		return false, errors.New("oracle: cannot create parser")
	}
	accept, err := parser.Parse(newScanner(target), nil)
	T().Debugf("oracle: %q accepted=%v", word, accept)
	return accept, err
}

// Recognize is a shortcut for creating an oracle for g and asking it about
// word.
func Recognize(g *grammar.Grammar, word string) (bool, error) {
	o, err := New(g)
	if err != nil {
		return false, err
	}
	return o.Recognize(word)
}

func ntName(s grammar.Symbol) string {
	return "<" + s.String() + ">"
}

func tName(s grammar.Symbol) string {
	return ":" + s.String()
}

func productive(g *grammar.Grammar, s grammar.Sentence) bool {
	for _, sym := range s {
		if g.MinYield(sym) == grammar.Unproductive {
			return false
		}
	}
	return true
}

// reachable lists the productive non-terminals reachable from the start
// symbol through productive alternatives, start symbol first.
func reachable(g *grammar.Grammar) []grammar.Symbol {
	visited := map[grammar.Symbol]bool{g.Start(): true}
	queue := []grammar.Symbol{g.Start()}
	for i := 0; i < len(queue); i++ {
		for _, alt := range g.Alternatives(queue[i]) {
			if !productive(g, alt) {
				continue
			}
			for _, sym := range alt {
				if g.IsNonTerminal(sym) && !visited[sym] {
					visited[sym] = true
					queue = append(queue, sym)
				}
			}
		}
	}
	return queue
}

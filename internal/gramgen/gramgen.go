/*
Package gramgen creates small random grammars and words for property tests.

Grammars produced by gramgen are free of ε-rules. Terminals are lowercase
letters starting at 'a', non-terminals are 'S', followed by uppercase
letters starting at 'A'. A unit rule X → Y is only created if Y has been
declared after X, so grammars never contain cycles of unit rules.
*/
package gramgen

import (
	"math/rand"

	"github.com/npillmayer/derive/grammar"
)

// Config controls the shape of random grammars.
type Config struct {
	Terminals       int // size of the terminal alphabet, 1…26
	NonTerminals    int // size of the non-terminal alphabet, 1…26
	MaxAlternatives int // maximum number of alternatives per non-terminal
	MaxRHS          int // maximum length of a right-hand side
}

// Small is a configuration for grammars which the unguided search handles
// quickly for words of up to 6 symbols.
var Small = Config{Terminals: 2, NonTerminals: 3, MaxAlternatives: 3, MaxRHS: 3}

// Grammar creates a random grammar. Every non-terminal gets at least one
// alternative.
func Grammar(rnd *rand.Rand, c Config) *grammar.Grammar {
	terms := symbols('a', clamp(c.Terminals, 1, 26))
	nonterms := append([]grammar.Symbol{'S'}, symbols('A', clamp(c.NonTerminals, 1, 26)-1)...)
	var rules []grammar.Rule
	for i, nt := range nonterms {
		n := 1 + rnd.Intn(max(c.MaxAlternatives, 1))
		for k := 0; k < n; k++ {
			rhs := randomRHS(rnd, c, terms, nonterms, i)
			if !contains(rules, nt, rhs) {
				rules = append(rules, grammar.Rule{LHS: nt, RHS: rhs})
			}
		}
	}
	g, err := grammar.New(terms, nonterms, 'S', rules)
	if err != nil { // generated grammars are valid by construction
		panic(err)
	}
	return g
}

func randomRHS(rnd *rand.Rand, c Config, terms, nonterms []grammar.Symbol, lhs int) grammar.Sentence {
	l := 1 + rnd.Intn(max(c.MaxRHS, 1))
	rhs := make(grammar.Sentence, l)
	for i := range rhs {
		if rnd.Intn(2) == 0 {
			rhs[i] = terms[rnd.Intn(len(terms))]
		} else {
			rhs[i] = nonterms[rnd.Intn(len(nonterms))]
		}
	}
	if l == 1 {
		if k := indexOf(nonterms, rhs[0]); k >= 0 && k <= lhs {
			if lhs+1 < len(nonterms) {
				rhs[0] = nonterms[lhs+1+rnd.Intn(len(nonterms)-lhs-1)]
			} else {
				rhs[0] = terms[rnd.Intn(len(terms))]
			}
		}
	}
	return rhs
}

// Word creates a random word over the terminals of g, of length 1…maxLen.
func Word(rnd *rand.Rand, g *grammar.Grammar, maxLen int) string {
	terms := g.Terminals()
	w := make(grammar.Sentence, 1+rnd.Intn(max(maxLen, 1)))
	for i := range w {
		w[i] = terms[rnd.Intn(len(terms))]
	}
	return w.String()
}

// Sample derives a random word from the start symbol of g, by leftmost
// derivation. After depth steps it switches to alternatives of minimal
// yield. It returns false if the start symbol is unproductive.
// g must not contain cycles of unit rules.
func Sample(rnd *rand.Rand, g *grammar.Grammar, depth int) (string, bool) {
	if g.MinYield(g.Start()) == grammar.Unproductive {
		return "", false
	}
	form := grammar.Sentence{g.Start()}
	for step := 0; ; step++ {
		i := firstNonTerminal(g, form)
		if i < 0 {
			return form.String(), true
		}
		alts := productive(g, g.Alternatives(form[i]))
		var alt grammar.Sentence
		if step < depth {
			alt = alts[rnd.Intn(len(alts))]
		} else {
			alt = shortest(g, alts)
		}
		next := make(grammar.Sentence, 0, len(form)+len(alt)-1)
		next = append(next, form[:i]...)
		next = append(next, alt...)
		form = append(next, form[i+1:]...)
	}
}

func productive(g *grammar.Grammar, alts []grammar.Sentence) []grammar.Sentence {
	var p []grammar.Sentence
	for _, alt := range alts {
		if yield(g, alt) < grammar.Unproductive {
			p = append(p, alt)
		}
	}
	return p
}

func shortest(g *grammar.Grammar, alts []grammar.Sentence) grammar.Sentence {
	best := alts[0]
	for _, alt := range alts[1:] {
		if yield(g, alt) < yield(g, best) {
			best = alt
		}
	}
	return best
}

func yield(g *grammar.Grammar, s grammar.Sentence) int {
	y := 0
	for _, sym := range s {
		m := g.MinYield(sym)
		if m == grammar.Unproductive {
			return grammar.Unproductive
		}
		y += m
	}
	return y
}

func firstNonTerminal(g *grammar.Grammar, s grammar.Sentence) int {
	for i, sym := range s {
		if g.IsNonTerminal(sym) {
			return i
		}
	}
	return -1
}

func symbols(from rune, n int) []grammar.Symbol {
	syms := make([]grammar.Symbol, 0, n)
	for r := from; len(syms) < n; r++ {
		if r == 'S' {
			continue
		}
		syms = append(syms, grammar.Symbol(r))
	}
	return syms
}

func indexOf(syms []grammar.Symbol, s grammar.Symbol) int {
	for i, x := range syms {
		if x == s {
			return i
		}
	}
	return -1
}

func contains(rules []grammar.Rule, lhs grammar.Symbol, rhs grammar.Sentence) bool {
	for _, r := range rules {
		if r.LHS == lhs && r.RHS.Equals(rhs) {
			return true
		}
	}
	return false
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

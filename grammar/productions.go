package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseProduction parses a compact production of the form
//
//	S -> aSb | ab | @
//
// into one rule per alternative. Blanks inside alternatives are ignored,
// '@' stands for the empty right-hand side. "→" is accepted in place of "->".
func ParseProduction(p string) ([]Rule, error) {
	lhs, rhs, found := strings.Cut(p, "->")
	if !found {
		lhs, rhs, found = strings.Cut(p, "→")
	}
	if !found {
		return nil, fmt.Errorf("%w: missing arrow in %q", ErrSyntax, p)
	}
	lhs = strings.TrimSpace(lhs)
	if utf8.RuneCountInString(lhs) != 1 {
		return nil, fmt.Errorf("%w: left-hand side %q is not a single symbol", ErrSyntax, lhs)
	}
	l, _ := utf8.DecodeRuneInString(lhs)
	var rules []Rule
	for _, alt := range strings.Split(rhs, "|") {
		alt = strings.Join(strings.Fields(alt), "")
		if alt == "" {
			return nil, fmt.Errorf("%w: empty alternative in %q (use %s)", ErrSyntax, p, EpsilonMark)
		}
		if alt == EpsilonMark.String() {
			rules = append(rules, Rule{LHS: Symbol(l)})
			continue
		}
		rules = append(rules, Rule{LHS: Symbol(l), RHS: SentenceOf(alt)})
	}
	return rules, nil
}

// Define creates a grammar from compact notation. terminals and nonTerminals
// list one symbol per rune. Productions follow the syntax of ParseProduction;
// ε-alternatives are eliminated before the grammar is built.
func Define(terminals, nonTerminals string, start rune, productions ...string) (*Grammar, error) {
	var rules []Rule
	for _, p := range productions {
		rs, err := ParseProduction(p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rs...)
	}
	rules, _ = EliminateEpsilon(rules)
	return New(SentenceOf(terminals), SentenceOf(nonTerminals), Symbol(start), rules)
}

// MustDefine is like Define, but panics on error. It simplifies
// initialization of grammars in tests and examples.
func MustDefine(terminals, nonTerminals string, start rune, productions ...string) *Grammar {
	g, err := Define(terminals, nonTerminals, start, productions...)
	if err != nil {
		panic(err)
	}
	return g
}

// EliminateEpsilon rewrites a rule set without empty right-hand sides.
//
// A non-terminal is nullable if it derives the empty string. Every rule is
// replaced by all its variants with any subset of nullable occurrences
// omitted, the unmodified variant first. Empty variants, rules X → X and
// duplicates are dropped; rule order is kept otherwise.
//
// The resulting rules derive the same language minus the empty string.
// nullable reports the set of nullable non-terminals; if it contains the
// start symbol, the empty word has been lost.
func EliminateEpsilon(rules []Rule) (out []Rule, nullable map[Symbol]bool) {
	nullable = nullables(rules)
	seen := make(map[string]bool)
	for _, r := range rules {
		for _, rhs := range omissions(r.RHS, nullable) {
			if len(rhs) == 0 || (len(rhs) == 1 && rhs[0] == r.LHS) {
				continue
			}
			key := r.LHS.String() + "\x00" + rhs.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Rule{LHS: r.LHS, RHS: rhs})
		}
	}
	if len(nullable) > 0 {
		T().Debugf("grammar: eliminated ε-rules, nullable = %v", nullable)
	}
	return out, nullable
}

func nullables(rules []Rule) map[Symbol]bool {
	nullable := make(map[Symbol]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullable[r.LHS] {
				continue
			}
			all := true
			for _, s := range r.RHS {
				if !nullable[s] {
					all = false
					break
				}
			}
			if all {
				nullable[r.LHS] = true
				changed = true
			}
		}
	}
	return nullable
}

// omissions enumerates rhs with every subset of its nullable occurrences left
// out. Keeping an occurrence is tried before omitting it.
func omissions(rhs Sentence, nullable map[Symbol]bool) []Sentence {
	variants := []Sentence{{}}
	for _, s := range rhs {
		next := make([]Sentence, 0, 2*len(variants))
		for _, v := range variants {
			next = append(next, append(append(Sentence{}, v...), s))
		}
		if nullable[s] {
			next = append(next, variants...)
		}
		variants = next
	}
	return variants
}

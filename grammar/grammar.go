package grammar

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Symbol is a terminal or non-terminal symbol of a grammar.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// EpsilonMark denotes an empty right-hand side in textual productions.
const EpsilonMark Symbol = '@'

// Unproductive is the minimal yield of a non-terminal which does not derive
// any terminal string.
const Unproductive = math.MaxInt32

// Sentence is a string over terminals and non-terminals.
type Sentence []Symbol

// SentenceOf converts a string into a sentence, one symbol per rune.
func SentenceOf(s string) Sentence {
	sentence := make(Sentence, 0, len(s))
	for _, r := range s {
		sentence = append(sentence, Symbol(r))
	}
	return sentence
}

func (s Sentence) String() string {
	var b strings.Builder
	for _, sym := range s {
		b.WriteRune(rune(sym))
	}
	return b.String()
}

// Equals is true if s and other consist of the same symbols.
func (s Sentence) Equals(other Sentence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Rule is a single production LHS → RHS.
type Rule struct {
	LHS Symbol
	RHS Sentence
}

func (r Rule) String() string {
	if len(r.RHS) == 0 {
		return fmt.Sprintf("%s -> %s", r.LHS, EpsilonMark)
	}
	return fmt.Sprintf("%s -> %s", r.LHS, r.RHS)
}

// Errors returned by New and Define. They are wrapped with details about
// the offending symbol or rule.
var (
	ErrEmptyAlphabet   = errors.New("grammar: alphabet must not be empty")
	ErrInvalidSymbol   = errors.New("grammar: invalid symbol")
	ErrDuplicateSymbol = errors.New("grammar: duplicate symbol")
	ErrNotDisjoint     = errors.New("grammar: symbol is terminal and non-terminal")
	ErrStartSymbol     = errors.New("grammar: start symbol is not a non-terminal")
	ErrRuleLHS         = errors.New("grammar: left-hand side of rule is not a non-terminal")
	ErrUnknownSymbol   = errors.New("grammar: rule uses a symbol outside the alphabet")
	ErrEmptyRule       = errors.New("grammar: rule has an empty right-hand side")
	ErrDuplicateRule   = errors.New("grammar: duplicate rule")
	ErrSyntax          = errors.New("grammar: malformed production")
)

// Grammar is an immutable context-free grammar without ε-productions.
// It is safe for concurrent use.
type Grammar struct {
	name         string
	terminals    map[Symbol]struct{}
	nonTerminals map[Symbol]struct{}
	tlist        []Symbol // terminals in declaration order
	ntlist       []Symbol // non-terminals in declaration order
	start        Symbol
	rules        map[Symbol][]Sentence
	order        []Rule // rules in declaration order
	minYield     map[Symbol]int
}

// New creates a grammar from its alphabets, start symbol and rules.
// It checks every precondition the search relies on: alphabets are
// non-empty and disjoint, the start symbol is a non-terminal, rules are
// built from the alphabets only, have non-empty right-hand sides and are not
// duplicated. Rules X → X are dropped, as they never change a sentence.
func New(terminals, nonTerminals []Symbol, start Symbol, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		terminals:    make(map[Symbol]struct{}, len(terminals)),
		nonTerminals: make(map[Symbol]struct{}, len(nonTerminals)),
		rules:        make(map[Symbol][]Sentence),
		start:        start,
	}
	if len(terminals) == 0 {
		return nil, fmt.Errorf("%w: no terminals", ErrEmptyAlphabet)
	}
	if len(nonTerminals) == 0 {
		return nil, fmt.Errorf("%w: no non-terminals", ErrEmptyAlphabet)
	}
	for _, t := range terminals {
		if !validSymbol(t) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, rune(t))
		}
		if _, dup := g.terminals[t]; dup {
			return nil, fmt.Errorf("%w: terminal %q", ErrDuplicateSymbol, rune(t))
		}
		g.terminals[t] = struct{}{}
		g.tlist = append(g.tlist, t)
	}
	for _, n := range nonTerminals {
		if !validSymbol(n) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, rune(n))
		}
		if _, dup := g.nonTerminals[n]; dup {
			return nil, fmt.Errorf("%w: non-terminal %q", ErrDuplicateSymbol, rune(n))
		}
		if _, both := g.terminals[n]; both {
			return nil, fmt.Errorf("%w: %q", ErrNotDisjoint, rune(n))
		}
		g.nonTerminals[n] = struct{}{}
		g.ntlist = append(g.ntlist, n)
	}
	if !g.IsNonTerminal(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartSymbol, rune(start))
	}
	for _, r := range rules {
		if err := g.addRule(r); err != nil {
			return nil, err
		}
	}
	g.minYield = computeMinYield(g)
	return g, nil
}

func validSymbol(s Symbol) bool {
	r := rune(s)
	return r != rune(EpsilonMark) && !unicode.IsSpace(r) && unicode.IsPrint(r) && r != '|'
}

func (g *Grammar) addRule(r Rule) error {
	if !g.IsNonTerminal(r.LHS) {
		return fmt.Errorf("%w: %v", ErrRuleLHS, r)
	}
	if len(r.RHS) == 0 {
		return fmt.Errorf("%w: %v", ErrEmptyRule, r)
	}
	for _, s := range r.RHS {
		if !g.IsTerminal(s) && !g.IsNonTerminal(s) {
			return fmt.Errorf("%w: %q in %v", ErrUnknownSymbol, rune(s), r)
		}
	}
	if len(r.RHS) == 1 && r.RHS[0] == r.LHS {
		T().Debugf("grammar: dropping rule %v", r)
		return nil
	}
	for _, alt := range g.rules[r.LHS] {
		if alt.Equals(r.RHS) {
			return fmt.Errorf("%w: %v", ErrDuplicateRule, r)
		}
	}
	rhs := make(Sentence, len(r.RHS))
	copy(rhs, r.RHS)
	g.rules[r.LHS] = append(g.rules[r.LHS], rhs)
	g.order = append(g.order, Rule{LHS: r.LHS, RHS: rhs})
	return nil
}

// Name returns the name of the grammar, which may be empty.
func (g *Grammar) Name() string {
	return g.name
}

// WithName returns a copy of g carrying a name. Rule tables are shared.
func (g *Grammar) WithName(name string) *Grammar {
	c := *g
	c.name = name
	return &c
}

// IsTerminal is true for members of the terminal alphabet.
func (g *Grammar) IsTerminal(s Symbol) bool {
	_, ok := g.terminals[s]
	return ok
}

// IsNonTerminal is true for members of the non-terminal alphabet.
func (g *Grammar) IsNonTerminal(s Symbol) bool {
	_, ok := g.nonTerminals[s]
	return ok
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Alternatives returns the right-hand sides for non-terminal nt, in
// declaration order. The result is shared and must not be modified.
// It is empty if nt has no rules.
func (g *Grammar) Alternatives(nt Symbol) []Sentence {
	return g.rules[nt]
}

// Terminals returns the terminal alphabet in declaration order.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.tlist...)
}

// NonTerminals returns the non-terminal alphabet in declaration order.
func (g *Grammar) NonTerminals() []Symbol {
	return append([]Symbol(nil), g.ntlist...)
}

// Rules returns all rules in declaration order.
func (g *Grammar) Rules() []Rule {
	return append([]Rule(nil), g.order...)
}

// CountNonTerminals returns the number of non-terminal symbols in s.
func (g *Grammar) CountNonTerminals(s Sentence) int {
	n := 0
	for _, sym := range s {
		if g.IsNonTerminal(sym) {
			n++
		}
	}
	return n
}

// IsTerminalSentence is true if every symbol of s is a terminal.
func (g *Grammar) IsTerminalSentence(s Sentence) bool {
	for _, sym := range s {
		if !g.IsTerminal(sym) {
			return false
		}
	}
	return true
}

// MinYield returns the length of the shortest terminal string derivable
// from s. For terminals this is 1. Non-terminals without any derivable
// terminal string and symbols outside the alphabets yield Unproductive.
func (g *Grammar) MinYield(s Symbol) int {
	if g.IsTerminal(s) {
		return 1
	}
	if y, ok := g.minYield[s]; ok {
		return y
	}
	return Unproductive
}

func computeMinYield(g *Grammar) map[Symbol]int {
	y := make(map[Symbol]int, len(g.ntlist))
	for _, nt := range g.ntlist {
		y[nt] = Unproductive
	}
	for changed := true; changed; {
		changed = false
		for _, r := range g.order {
			sum := 0
			for _, s := range r.RHS {
				if g.IsTerminal(s) {
					sum++
				} else {
					sum += y[s]
				}
				if sum >= Unproductive {
					sum = Unproductive
					break
				}
			}
			if sum < y[r.LHS] {
				y[r.LHS] = sum
				changed = true
			}
		}
	}
	return y
}

func (g *Grammar) String() string {
	var b strings.Builder
	if g.name != "" {
		fmt.Fprintf(&b, "grammar %q\n", g.name)
	}
	fmt.Fprintf(&b, "terminals:     %s\n", joinSymbols(g.tlist))
	fmt.Fprintf(&b, "non-terminals: %s\n", joinSymbols(g.ntlist))
	fmt.Fprintf(&b, "start:         %s\n", g.start)
	for _, nt := range g.ntlist {
		alts := g.rules[nt]
		if len(alts) == 0 {
			continue
		}
		rhs := make([]string, len(alts))
		for i, alt := range alts {
			rhs[i] = alt.String()
		}
		fmt.Fprintf(&b, "%s -> %s\n", nt, strings.Join(rhs, " | "))
	}
	return b.String()
}

func joinSymbols(syms []Symbol) string {
	s := make([]string, len(syms))
	for i, sym := range syms {
		s[i] = sym.String()
	}
	return strings.Join(s, " ")
}

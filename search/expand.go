package search

import (
	"math"

	"github.com/npillmayer/derive"
	"github.com/npillmayer/derive/grammar"
)

// Expansion enumerates the children of a sentential form: every
// non-terminal occurrence is replaced by one of its alternatives, all
// occurrences at once. For occurrences with c₁ … cₙ alternatives this
// yields c₁·…·cₙ children.
//
// Children are produced lazily, one per call to Next. Choices are counted
// like an odometer, with the rightmost occurrence changing fastest. An
// Expansion keeps no state shared with other expansions and may be
// restarted with Reset.
type Expansion struct {
	g      *grammar.Grammar
	form   grammar.Sentence
	slots  []int                // positions of non-terminals in form
	alts   [][]grammar.Sentence // alternatives for each slot
	digits []int                // current choice for each slot
	done   bool
}

// NewExpansion prepares the enumeration of the children of form.
func NewExpansion(g *grammar.Grammar, form grammar.Sentence) *Expansion {
	e := &Expansion{g: g, form: form}
	e.Reset()
	return e
}

// Reset restarts the enumeration with the first combination.
func (e *Expansion) Reset() {
	e.slots, e.alts = e.slots[:0], e.alts[:0]
	for i, sym := range e.form {
		if e.g.IsNonTerminal(sym) {
			e.slots = append(e.slots, i)
			e.alts = append(e.alts, e.g.Alternatives(sym))
		}
	}
	e.digits = make([]int, len(e.slots))
	e.done = len(e.slots) == 0
	for _, a := range e.alts {
		if len(a) == 0 { // a non-terminal without rules blocks every child
			e.done = true
		}
	}
}

// Count returns the number of children of the form, saturating at
// math.MaxInt. It is 0 for terminal forms.
func (e *Expansion) Count() int {
	if len(e.slots) == 0 {
		return 0
	}
	n := 1
	for _, a := range e.alts {
		if len(a) == 0 {
			return 0
		}
		if n > math.MaxInt/len(a) {
			return math.MaxInt
		}
		n *= len(a)
	}
	return n
}

// Next returns the next child form. The second return value is false if the
// enumeration is exhausted.
func (e *Expansion) Next() (grammar.Sentence, bool) {
	if e.done {
		return nil, false
	}
	size := len(e.form) - len(e.slots)
	for k, d := range e.digits {
		size += len(e.alts[k][d])
	}
	child := make(grammar.Sentence, 0, size)
	k := 0
	for i, sym := range e.form {
		if k < len(e.slots) && e.slots[k] == i {
			child = append(child, e.alts[k][e.digits[k]]...)
			k++
			continue
		}
		child = append(child, sym)
	}
	e.advance()
	return child, true
}

func (e *Expansion) advance() {
	for k := len(e.digits) - 1; k >= 0; k-- {
		e.digits[k]++
		if e.digits[k] < len(e.alts[k]) {
			return
		}
		e.digits[k] = 0
	}
	e.done = true
}

// Expand creates all children of a node with ID id. Children are not added
// to any arena; they link to id as their parent, are one level deeper than
// node and are scored by their number of non-terminals.
//
// A node with a terminal-only form has no children.
func Expand(g *grammar.Grammar, id derive.NodeID, node derive.Node) []derive.Node {
	exp := NewExpansion(g, node.Text)
	children := make([]derive.Node, 0, min(exp.Count(), 1024))
	for form, ok := exp.Next(); ok; form, ok = exp.Next() {
		children = append(children, childOf(g, id, node, form))
	}
	return children
}

func childOf(g *grammar.Grammar, id derive.NodeID, parent derive.Node, form grammar.Sentence) derive.Node {
	return derive.Node{
		Text:      form,
		Parent:    id,
		Depth:     parent.Depth + 1,
		Heuristic: g.CountNonTerminals(form),
	}
}

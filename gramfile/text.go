package gramfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/derive/grammar"
)

// --- Text format ------------------------------------------------------------

// ParseText reads a grammar in text format. name is used for error
// messages and becomes the name of the grammar.
//
// The text format lists, separated by whitespace: the number of terminals,
// the terminals, the number of non-terminals, the non-terminals, the start
// symbol, the number of rules and the rules. Symbols may be written
// adjacent to each other. A rule is a non-terminal, whitespace and the
// output of the rule; an output of '@' denotes the empty string. '#' starts a
// comment which extends to the end of the line.
//
//	# a^n b^n
//	2  a b
//	1  S
//	S
//	2
//	S aSb
//	S ab
func ParseText(r io.Reader, name string, opts ...Option) (*grammar.Grammar, error) {
	p, err := newTextParser(r, name)
	if err != nil {
		return nil, err
	}
	for p.step != nil {
		if p.step, err = p.step(p); err != nil {
			return nil, err
		}
	}
	if f, ok := p.peek(); ok {
		T().Infof("gramfile: %s: ignoring trailing input %q in line %d", name, f.text, f.line)
	}
	return compile(&p.def, newOptions(opts))
}

// field is a whitespace separated word of the input.
type field struct {
	text string
	line int
}

// textParser is a parser built from a chain of step functions. Each step
// consumes input and returns the step to continue with, nil to accept, or
// an error.
type textParser struct {
	def    definition
	fields []field
	pos    int // index of current field
	offset int // bytes of the current field already consumed
	step   parserStep
	n      int // count announced for the current section
	tset   map[grammar.Symbol]bool
	ntset  map[grammar.Symbol]bool
}

type parserStep func(p *textParser) (parserStep, error)

func newTextParser(r io.Reader, name string) (*textParser, error) {
	p := &textParser{
		def:   definition{name: name},
		tset:  make(map[grammar.Symbol]bool),
		ntset: make(map[grammar.Symbol]bool),
	}
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, f := range strings.Fields(line) {
			p.fields = append(p.fields, field{text: normalize(f), line: lineno})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, newError(name, 0, Invalid, err)
	}
	p.step = scanTermCount
	return p, nil
}

// peek returns the unconsumed rest of the current field.
func (p *textParser) peek() (field, bool) {
	if p.pos >= len(p.fields) {
		return field{}, false
	}
	f := p.fields[p.pos]
	f.text = f.text[p.offset:]
	return f, true
}

// nextField consumes the rest of the current field.
func (p *textParser) nextField() (field, bool) {
	f, ok := p.peek()
	if ok {
		p.pos++
		p.offset = 0
	}
	return f, ok
}

// nextSymbol consumes a single rune of the current field.
func (p *textParser) nextSymbol() (grammar.Symbol, int, bool) {
	f, ok := p.peek()
	if !ok {
		return 0, p.lastLine(), false
	}
	r, size := utf8.DecodeRuneInString(f.text)
	p.offset += size
	if p.offset >= len(p.fields[p.pos].text) {
		p.pos++
		p.offset = 0
	}
	return grammar.Symbol(r), f.line, true
}

func (p *textParser) lastLine() int {
	if len(p.fields) == 0 {
		return 1
	}
	return p.fields[len(p.fields)-1].line
}

// count reads a positive integer.
func (p *textParser) count(t ErrorType) (int, error) {
	f, ok := p.nextField()
	if !ok {
		return 0, newError(p.def.name, p.lastLine(), t, io.ErrUnexpectedEOF)
	}
	n, err := strconv.Atoi(f.text)
	if err != nil || n < 1 {
		return 0, newError(p.def.name, f.line, t, fmt.Errorf("%q", f.text))
	}
	return n, nil
}

func scanTermCount(p *textParser) (parserStep, error) {
	var err error
	p.n, err = p.count(TermCount)
	return scanTerminals, err
}

func scanTerminals(p *textParser) (parserStep, error) {
	for i := 0; i < p.n; i++ {
		t, line, ok := p.nextSymbol()
		if !ok {
			return nil, newError(p.def.name, line, DuplicateTerminal, io.ErrUnexpectedEOF)
		}
		if p.tset[t] || t == grammar.EpsilonMark {
			return nil, newError(p.def.name, line, DuplicateTerminal, fmt.Errorf("%q", rune(t)))
		}
		p.tset[t] = true
		p.def.terminals = append(p.def.terminals, t)
	}
	return scanNonTermCount, nil
}

func scanNonTermCount(p *textParser) (parserStep, error) {
	var err error
	p.n, err = p.count(NonTermCount)
	return scanNonTerminals, err
}

func scanNonTerminals(p *textParser) (parserStep, error) {
	for i := 0; i < p.n; i++ {
		nt, line, ok := p.nextSymbol()
		if !ok {
			return nil, newError(p.def.name, line, DuplicateNonTerminal, io.ErrUnexpectedEOF)
		}
		if p.ntset[nt] || p.tset[nt] || nt == grammar.EpsilonMark {
			return nil, newError(p.def.name, line, DuplicateNonTerminal, fmt.Errorf("%q", rune(nt)))
		}
		p.ntset[nt] = true
		p.def.nonTerminals = append(p.def.nonTerminals, nt)
	}
	return scanStartSymbol, nil
}

func scanStartSymbol(p *textParser) (parserStep, error) {
	f, ok := p.nextField()
	if !ok {
		return nil, newError(p.def.name, p.lastLine(), StartSymbol, io.ErrUnexpectedEOF)
	}
	s, ok := single(f.text)
	if !ok || !p.ntset[s] {
		return nil, newError(p.def.name, f.line, StartSymbol, fmt.Errorf("%q", f.text))
	}
	p.def.start = s
	return scanRuleCount, nil
}

func scanRuleCount(p *textParser) (parserStep, error) {
	var err error
	p.n, err = p.count(RuleCount)
	return scanRules, err
}

func scanRules(p *textParser) (parserStep, error) {
	for i := 0; i < p.n; i++ {
		lhs, ok := p.nextField()
		if !ok {
			return nil, newError(p.def.name, p.lastLine(), RuleSyntax,
				fmt.Errorf("expected %d rules, found %d", p.n, i))
		}
		nt, ok := single(lhs.text)
		if !ok || !p.ntset[nt] {
			return nil, newError(p.def.name, lhs.line, RuleSyntax,
				fmt.Errorf("%q is not a non-terminal", lhs.text))
		}
		out, ok := p.nextField()
		if !ok {
			return nil, newError(p.def.name, lhs.line, RuleSyntax, io.ErrUnexpectedEOF)
		}
		rule := grammar.Rule{LHS: nt}
		if out.text != grammar.EpsilonMark.String() {
			rule.RHS = grammar.SentenceOf(out.text)
		}
		for _, s := range rule.RHS {
			if !p.tset[s] && !p.ntset[s] {
				return nil, newError(p.def.name, out.line, RuleSyntax,
					fmt.Errorf("unknown symbol %q", rune(s)))
			}
		}
		p.def.rules = append(p.def.rules, lineRule{Rule: rule, line: lhs.line})
	}
	return nil, nil
}

func single(s string) (grammar.Symbol, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return grammar.Symbol(r), size > 0 && size == len(s) && r != utf8.RuneError
}

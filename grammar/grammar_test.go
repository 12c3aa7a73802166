package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefineAnBn(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	g := MustDefine("ab", "S", 'S', "S -> aSb | ab")
	if g.Start() != 'S' {
		t.Errorf("expected start symbol S, is %v", g.Start())
	}
	alts := g.Alternatives('S')
	if len(alts) != 2 || alts[0].String() != "aSb" || alts[1].String() != "ab" {
		t.Errorf("expected alternatives [aSb ab], have %v", alts)
	}
	if !g.IsTerminal('a') || g.IsTerminal('S') || !g.IsNonTerminal('S') || g.IsNonTerminal('x') {
		t.Errorf("terminal/non-terminal classification is wrong")
	}
	if n := g.CountNonTerminals(SentenceOf("aSbSS")); n != 3 {
		t.Errorf("expected 3 non-terminals in aSbSS, counted %d", n)
	}
	if len(g.Alternatives('a')) != 0 {
		t.Errorf("terminals must not have alternatives")
	}
	t.Logf("\n%s", g)
}

func TestNewRejectsBrokenGrammars(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	S := Symbol('S')
	ab := SentenceOf("ab")
	tests := []struct {
		name  string
		terms []Symbol
		nts   []Symbol
		start Symbol
		rules []Rule
		err   error
	}{
		{"no terminals", nil, []Symbol{S}, S, nil, ErrEmptyAlphabet},
		{"no non-terminals", ab, nil, S, nil, ErrEmptyAlphabet},
		{"duplicate terminal", SentenceOf("aba"), []Symbol{S}, S, nil, ErrDuplicateSymbol},
		{"duplicate non-terminal", ab, SentenceOf("SAS"), S, nil, ErrDuplicateSymbol},
		{"not disjoint", ab, SentenceOf("Sa"), S, nil, ErrNotDisjoint},
		{"bad start", ab, []Symbol{S}, 'a', nil, ErrStartSymbol},
		{"epsilon as symbol", SentenceOf("a@"), []Symbol{S}, S, nil, ErrInvalidSymbol},
		{"rule lhs", ab, []Symbol{S}, S, []Rule{{LHS: 'a', RHS: ab}}, ErrRuleLHS},
		{"unknown symbol", ab, []Symbol{S}, S, []Rule{{LHS: S, RHS: SentenceOf("aXb")}}, ErrUnknownSymbol},
		{"empty rule", ab, []Symbol{S}, S, []Rule{{LHS: S}}, ErrEmptyRule},
		{"duplicate rule", ab, []Symbol{S}, S, []Rule{{LHS: S, RHS: ab}, {LHS: S, RHS: ab}}, ErrDuplicateRule},
	}
	for _, test := range tests {
		_, err := New(test.terms, test.nts, test.start, test.rules)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: expected error %v, have %v", test.name, test.err, err)
		}
	}
}

func TestSelfRulesAreDropped(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	g, err := New(SentenceOf("x"), SentenceOf("SA"), 'S', []Rule{
		{LHS: 'S', RHS: SentenceOf("S")},
		{LHS: 'S', RHS: SentenceOf("A")},
		{LHS: 'A', RHS: SentenceOf("x")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if alts := g.Alternatives('S'); len(alts) != 1 || alts[0].String() != "A" {
		t.Errorf("expected S -> A only, have %v", alts)
	}
	if len(g.Rules()) != 2 {
		t.Errorf("expected 2 rules, have %d", len(g.Rules()))
	}
}

func TestParseProduction(t *testing.T) {
	rules, err := ParseProduction("E → E + T | T |@")
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, have %d", len(rules))
	}
	if rules[0].RHS.String() != "E+T" || rules[1].RHS.String() != "T" || len(rules[2].RHS) != 0 {
		t.Errorf("unexpected rules %v", rules)
	}
	for _, bad := range []string{"S aSb", "SA -> a", "S -> a || b"} {
		if _, err := ParseProduction(bad); !errors.Is(err, ErrSyntax) {
			t.Errorf("expected syntax error for %q, have %v", bad, err)
		}
	}
}

func TestEliminateEpsilon(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var rules []Rule
	for _, p := range []string{"S -> aSb | @", "A -> B | x", "B -> @"} {
		rs, err := ParseProduction(p)
		if err != nil {
			t.Fatal(err)
		}
		rules = append(rules, rs...)
	}
	out, nullable := EliminateEpsilon(rules)
	if !nullable['S'] || !nullable['A'] || !nullable['B'] {
		t.Errorf("expected S, A, B to be nullable, have %v", nullable)
	}
	expected := []string{"S -> aSb", "S -> ab", "A -> B", "A -> x"}
	if len(out) != len(expected) {
		t.Fatalf("expected %v, have %v", expected, out)
	}
	for i, r := range out {
		if r.String() != expected[i] {
			t.Errorf("rule #%d: expected %s, have %s", i, expected[i], r)
		}
	}
}

func TestMinYield(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	g := MustDefine("abx", "SABU", 'S',
		"S -> AB | aSb",
		"A -> xx | aA",
		"B -> b",
		"U -> aU",
	)
	for sym, y := range map[Symbol]int{'a': 1, 'S': 3, 'A': 2, 'B': 1, 'U': Unproductive, 'Z': Unproductive} {
		if g.MinYield(sym) != y {
			t.Errorf("expected min yield of %v to be %d, is %d", sym, y, g.MinYield(sym))
		}
	}
}

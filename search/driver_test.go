package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/derive"
	"github.com/npillmayer/derive/grammar"
	"github.com/npillmayer/derive/internal/gramgen"
	"github.com/npillmayer/derive/oracle"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestCheckAnBn(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	result := Check(g, "aabb")
	if !result.Accepted {
		t.Fatalf("expected aabb to be accepted")
	}
	if d := strings.Join(result.Derivation, ","); d != "S,aSb,aabb" {
		t.Errorf("expected derivation S,aSb,aabb, have %s", d)
	}
	for _, word := range []string{"aab", "", "ba", "abab"} {
		if Check(g, word).Accepted {
			t.Errorf("expected %q to be rejected", word)
		}
	}
}

func TestCheckUnitChain(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	g := grammar.MustDefine("x", "SA", 'S', "S -> A", "A -> x")
	result := Check(g, "x")
	if !result.Accepted {
		t.Fatalf("expected x to be accepted")
	}
	if d := strings.Join(result.Derivation, ","); d != "S,A,x" {
		t.Errorf("expected derivation S,A,x, have %s", d)
	}
}

func TestCheckRejectsNonTerminalWords(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	for _, word := range []string{"aSb", "S", "abc"} {
		result := Check(g, word)
		if result.Accepted || result.Stats.Expanded != 0 || result.Stats.Admitted != 0 {
			t.Errorf("expected %q to be rejected without search, have %+v", word, result)
		}
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "SAB", 'S', "S -> AB | BA | SS", "A -> a | aB", "B -> b | bA")
	for _, mode := range []derive.SearchMode{derive.FIFO, derive.BestFirst} {
		r1 := Check(g, "abbaab", WithMode(mode))
		r2 := Check(g, "abbaab", WithMode(mode))
		if r1.Accepted != r2.Accepted || r1.Derivation.String() != r2.Derivation.String() {
			t.Errorf("%v: results differ: %v / %v", mode, r1.Derivation, r2.Derivation)
		}
		if r1.Stats.Expanded != r2.Stats.Expanded || r1.Stats.Admitted != r2.Stats.Admitted {
			t.Errorf("%v: stats differ: %v / %v", mode, r1.Stats, r2.Stats)
		}
	}
}

// recorder is a pruner which never fires and remembers every child it sees.
// Placed at the end of a chain, it sees exactly the admitted children.
type recorder struct {
	forms []string
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Prune(q *Query, child *derive.Node) bool {
	r.forms = append(r.forms, child.Text.String())
	return false
}

func TestSeenSetIsDuplicateFree(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "SAB", 'S', "S -> AB | BA | SS", "A -> a | aB", "B -> b | bA")
	rec := &recorder{}
	chain := append(DefaultPruners(), rec)
	result := Check(g, "ababab", WithPruners(chain...))
	seen := map[string]bool{"S": true}
	for _, f := range rec.forms {
		if seen[f] {
			t.Errorf("form %s admitted twice", f)
		}
		seen[f] = true
	}
	if result.Stats.Admitted != len(rec.forms)+1 {
		t.Errorf("expected %d admitted nodes, have %d", len(rec.forms)+1, result.Stats.Admitted)
	}
}

func TestArenasAreReleased(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	before := derive.ActiveArenas()
	for _, word := range []string{"aabb", "aab", "aaabbb", "x"} {
		Check(g, word)
		Check(g, word, WithMode(derive.BestFirst), WithMaxExpansions(1))
		if n := derive.ActiveArenas(); n != before {
			t.Errorf("%q: expected %d active arenas, have %d", word, before, n)
		}
	}
}

func TestCheckLimits(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	result := Check(g, "aaabbb", WithMaxExpansions(1))
	if result.Accepted || !result.Truncated || result.Stats.Expanded != 1 {
		t.Errorf("expected search to stop after one expansion, have %+v", result)
	}
	result = Check(g, "aaabbb", WithMaxDepth(2))
	if result.Accepted || !result.Truncated {
		t.Errorf("expected depth limit to stop the search, have %+v", result)
	}
	result = Check(g, "aabb", WithMaxDepth(2))
	if !result.Accepted || result.Truncated {
		t.Errorf("expected aabb to be found at depth 2, have %+v", result)
	}
	result = Check(g, "aab", WithMaxDepth(10))
	if result.Accepted || result.Truncated {
		t.Errorf("expected conclusive rejection of aab, have %+v", result)
	}
}

func TestCheckBestFirst(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	result := Check(g, "aaabbb", WithMode(derive.BestFirst), WithAdvisoryPruners(true))
	if !result.Accepted {
		t.Fatalf("expected aaabbb to be accepted")
	}
	if d := strings.Join(result.Derivation, ","); d != "S,aSb,aaSbb,aaabbb" {
		t.Errorf("unexpected derivation %s", d)
	}
}

func TestCheckCountsPrunedChildren(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	g := grammar.MustDefine("ab", "S", 'S', "S -> aSb | ab")
	result := Check(g, "aabb")
	// S yields aSb and ab; ab is pruned (terminal-order). aSb yields aaSbb
	// (pruned by length) and aabb.
	if result.Stats.Generated != 4 || result.Stats.Pruned["terminal-order"] != 1 ||
		result.Stats.Pruned["length"] != 1 || result.Stats.Admitted != 3 {
		t.Errorf("unexpected stats %v (%v)", result.Stats, result.Stats.Pruned)
	}
}

// isParallelStep is true if next is a child of form.
func isParallelStep(g *grammar.Grammar, form, next string) bool {
	exp := NewExpansion(g, grammar.SentenceOf(form))
	for child, ok := exp.Next(); ok; child, ok = exp.Next() {
		if child.String() == next {
			return true
		}
	}
	return false
}

func TestPruningIsSound(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelError)
	//
	const maxLen = 5
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 40; i++ {
		g := gramgen.Grammar(rnd, gramgen.Small)
		o, err := oracle.New(g)
		if err != nil {
			t.Fatalf("cannot create oracle: %v", err)
		}
		words := make([]string, 0, 8)
		for k := 0; k < 4; k++ {
			if w, ok := gramgen.Sample(rnd, g, 3); ok && len(w) <= maxLen {
				words = append(words, w)
			}
			words = append(words, gramgen.Word(rnd, g, maxLen))
		}
		for _, w := range words {
			expected, err := o.Recognize(w)
			if err != nil {
				t.Fatalf("oracle failed on %q: %v", w, err)
			}
			plain := Check(g, w, WithPruners(LengthBound{}, Duplicate{}))
			full := Check(g, w, WithAdvisoryPruners(true))
			best := Check(g, w, WithMode(derive.BestFirst), WithAdvisoryPruners(true))
			for name, r := range map[string]Result{"plain": plain, "full": full, "best": best} {
				if r.Accepted != expected {
					t.Errorf("grammar #%d, %q: %s search says %v, oracle %v\n%s",
						i, w, name, r.Accepted, expected, g)
					continue
				}
				if !r.Accepted {
					continue
				}
				d := r.Derivation
				if d[0] != "S" || d[len(d)-1] != w {
					t.Errorf("grammar #%d: derivation %v does not lead from S to %q", i, d, w)
				}
				for k := 1; k < len(d); k++ {
					if !isParallelStep(g, d[k-1], d[k]) {
						t.Errorf("grammar #%d: %s does not derive %s", i, d[k-1], d[k])
					}
				}
			}
			if len(full.Derivation) != len(plain.Derivation) {
				t.Errorf("grammar #%d, %q: FIFO derivations differ in length", i, w)
			}
		}
	}
}

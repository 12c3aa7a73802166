package gramfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/derive/grammar"
	"github.com/npillmayer/derive/search"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternatives(g *grammar.Grammar, nt grammar.Symbol) []string {
	var alts []string
	for _, alt := range g.Alternatives(nt) {
		alts = append(alts, alt.String())
	}
	return alts
}

func TestLoadText(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	g, err := LoadFile("testdata/anbn.txt")
	require.NoError(t, err)
	assert.Equal(t, "testdata/anbn.txt", g.Name())
	assert.Equal(t, 'S', rune(g.Start()))
	assert.Equal(t, []string{"aSb", "ab"}, alternatives(g, 'S'))
	assert.True(t, search.Check(g, "aabb").Accepted)
}

func TestLoadYAML(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	g, err := LoadFile("testdata/anbn.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a^n b^n", g.Name())
	assert.Equal(t, []string{"aSb", "ab"}, alternatives(g, 'S'))
	g, err = LoadFile("testdata/unit.yml")
	require.NoError(t, err)
	assert.Equal(t, "S,A,x", strings.Join(search.Check(g, "x").Derivation, ","))
}

func TestEpsilonRules(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	g, err := LoadFile("testdata/parens.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"(S)", "()", "SS"}, alternatives(g, 'S'))
	assert.True(t, search.Check(g, "(()())").Accepted)
	//
	_, err = LoadFile("testdata/parens.txt", StrictEpsilon(true))
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, RuleSyntax, gerr.Type)
	assert.Equal(t, 8, gerr.Line)
	assert.True(t, errors.Is(err, grammar.ErrEmptyRule))
}

func TestTextErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	for i, c := range []struct {
		input string
		typ   ErrorType
		line  int
	}{
		{"", TermCount, 1},
		{"0 a", TermCount, 1},
		{"x", TermCount, 1},
		{"2 aa\n1 S", DuplicateTerminal, 1},
		{"2 ab\n0", NonTermCount, 2},
		{"1 a\n1 a", DuplicateNonTerminal, 2},
		{"1 a\n2 SS", DuplicateNonTerminal, 2},
		{"1 a\n1 S\nA", StartSymbol, 3},
		{"1 a\n1 S\nS\n-1", RuleCount, 4},
		{"1 a\n1 S\nS\n1\nS ab", RuleSyntax, 5},
		{"1 a\n1 S\nS\n1\na a", RuleSyntax, 5},
		{"1 a\n1 S\nS\n2\nS a", RuleSyntax, 5},
		{"1 a\n1 S\nS\n2\nS a\nS a", DuplicateRule, 6},
		{"2 a|\n1 S\nS\n1\nS a", Invalid, 0},
	} {
		_, err := ParseText(strings.NewReader(c.input), "test.txt")
		var gerr *Error
		if !assert.True(t, errors.As(err, &gerr), "case %d: expected *Error, have %v", i, err) {
			continue
		}
		assert.Equal(t, c.typ, gerr.Type, "case %d: %v", i, err)
		assert.Equal(t, c.line, gerr.Line, "case %d: %v", i, err)
		assert.Equal(t, "test.txt", gerr.File)
	}
}

func TestYAMLErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	for i, c := range []struct {
		input string
		typ   ErrorType
		line  int
	}{
		{"terminals: [a, a]\nnonterminals: [S]\nstart: S\nrules: [S -> a]", DuplicateTerminal, 1},
		{"terminals: [ab]\nnonterminals: [S]\nstart: S\nrules: [S -> a]", DuplicateTerminal, 1},
		{"nonterminals: [S]\nstart: S\nrules: [S -> a]", TermCount, 0},
		{"terminals: [a]\nnonterminals: [S, a]\nstart: S\nrules: [S -> a]", DuplicateNonTerminal, 2},
		{"terminals: [a]\nnonterminals: [S]\nstart: A\nrules: [S -> a]", StartSymbol, 3},
		{"terminals: [a]\nnonterminals: [S]\nstart: S", RuleCount, 0},
		{"terminals: [a]\nnonterminals: [S]\nstart: S\nrules:\n  - S -> a\n  - S => a", RuleSyntax, 6},
		{"terminals: [a]\nnonterminals: [S]\nstart: S\nrules:\n  - S -> ab", RuleSyntax, 5},
		{"terminals: [a]\nnonterminals: [S]\nstart: S\nrules:\n  - S -> a\n  - S -> a", DuplicateRule, 6},
	} {
		_, err := ParseYAML(strings.NewReader(c.input), "test.yaml")
		var gerr *Error
		if !assert.True(t, errors.As(err, &gerr), "case %d: expected *Error, have %v", i, err) {
			continue
		}
		assert.Equal(t, c.typ, gerr.Type, "case %d: %v", i, err)
		assert.Equal(t, c.line, gerr.Line, "case %d: %v", i, err)
	}
}

func TestFileNotFound(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := LoadFile("testdata/missing.txt")
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, FileNotFound, gerr.Type)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNormalization(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	decomposed := "e\u0301"
	g, err := ParseText(strings.NewReader("1 "+decomposed+"\n1 S\nS\n1\nS "+decomposed+decomposed), "nfc")
	require.NoError(t, err)
	assert.True(t, g.IsTerminal('é'))
	assert.Equal(t, "éé", NormalizeWord(decomposed+decomposed))
	assert.True(t, search.Check(g, NormalizeWord(decomposed+decomposed)).Accepted)
}

func TestRegistry(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":  "1 x\n1 S\nS\n1\nS x\n",
		"b.yaml": "terminals: [x]\nnonterminals: [S]\nstart: S\nrules: [S -> xS | x]\n",
		"c.txt":  "1 x\n1 S\nA\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	reg := NewRegistry()
	n, err := reg.LoadDir(dir)
	assert.Equal(t, 2, n)
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, StartSymbol, gerr.Type)
	assert.Equal(t, filepath.Join(dir, "c.txt"), gerr.File)
	//
	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), list[0].File)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), list[1].File)
	//
	g, err := reg.Load(strings.ReplaceAll(filepath.Join(dir, "a.txt"), "/", `\`))
	require.NoError(t, err)
	assert.Same(t, list[0].Grammar, g)
	assert.Equal(t, 2, reg.Len())
	_, ok := reg.Lookup(filepath.Join(dir, "c.txt"))
	assert.False(t, ok)
}

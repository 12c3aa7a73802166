package gramfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/derive/grammar"
	"golang.org/x/text/unicode/norm"
)

// --- Options ----------------------------------------------------------------

// Option configures how grammar files are loaded.
type Option func(o *options)

type options struct {
	strictEpsilon bool
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StrictEpsilon makes loaders reject rules with empty outputs, instead of
// rewriting them away. The error is of type RuleSyntax and wraps
// grammar.ErrEmptyRule.
func StrictEpsilon(b bool) Option {
	return func(o *options) {
		o.strictEpsilon = b
	}
}

// --- Loading ----------------------------------------------------------------

// LoadFile reads a grammar file. Files with extension .yaml or .yml are read
// as YAML, any other file in text format (see ParseText and ParseYAML).
// The grammar is named after the file.
//
// Errors are of type *Error.
func LoadFile(path string, opts ...Option) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(path, 0, FileNotFound, err)
	}
	defer f.Close()
	return Parse(f, path, opts...)
}

// Parse reads a grammar from r, choosing the format by the extension of name.
func Parse(r io.Reader, name string, opts ...Option) (*grammar.Grammar, error) {
	if isYAML(name) {
		return ParseYAML(r, name, opts...)
	}
	return ParseText(r, name, opts...)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// NormalizeWord brings a word into the normalization form used for grammar
// symbols (NFC). Clients should normalize words before checking them.
func NormalizeWord(w string) string {
	return normalize(w)
}

func normalize(s string) string {
	return norm.NFC.String(s)
}

// definition is a grammar as read from a file, not yet validated.
type definition struct {
	name         string
	terminals    []grammar.Symbol
	nonTerminals []grammar.Symbol
	start        grammar.Symbol
	rules        []lineRule
}

// lineRule is a rule together with the line it has been defined in.
type lineRule struct {
	grammar.Rule
	line int
}

// compile checks rules for duplicates, rewrites ε-rules and creates the
// grammar. Loaders have checked the alphabets and the start symbol.
func compile(def *definition, o *options) (*grammar.Grammar, error) {
	rules := make([]grammar.Rule, 0, len(def.rules))
	for i, r := range def.rules {
		for _, prev := range def.rules[:i] {
			if prev.LHS == r.LHS && prev.RHS.Equals(r.RHS) {
				return nil, newError(def.name, r.line, DuplicateRule, errors.New(r.Rule.String()))
			}
		}
		if len(r.RHS) == 0 && o.strictEpsilon {
			return nil, newError(def.name, r.line, RuleSyntax, grammar.ErrEmptyRule)
		}
		rules = append(rules, r.Rule)
	}
	rules, nullable := grammar.EliminateEpsilon(rules)
	if nullable[def.start] {
		T().Infof("gramfile: %s: start symbol %s derives the empty word, which is dropped",
			def.name, def.start)
	}
	g, err := grammar.New(def.terminals, def.nonTerminals, def.start, rules)
	if err != nil {
		T().Errorf("gramfile: %s: %v", def.name, err)
		return nil, newError(def.name, 0, Invalid, err)
	}
	T().Debugf("gramfile: loaded %s with %d rules", def.name, len(g.Rules()))
	return g.WithName(def.name), nil
}

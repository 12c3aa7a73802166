package gramfile

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/derive/grammar"
	"gopkg.in/yaml.v3"
)

// --- YAML format ------------------------------------------------------------

// yamlGrammar is the layout of grammar files in YAML format.
type yamlGrammar struct {
	Name         string   `yaml:"name"`
	Terminals    []string `yaml:"terminals" validate:"required,min=1,unique,dive,symbol"`
	NonTerminals []string `yaml:"nonterminals" validate:"required,min=1,unique,dive,symbol"`
	Start        string   `yaml:"start" validate:"required,symbol"`
	Rules        []string `yaml:"rules" validate:"required,min=1,dive,required"`
}

var yamlValidate *validator.Validate

func init() {
	yamlValidate = validator.New()
	_ = yamlValidate.RegisterValidation("symbol", validateSymbol)
}

// validateSymbol accepts strings consisting of a single printable rune,
// excluding whitespace, '|' and the ε-mark '@'.
func validateSymbol(fl validator.FieldLevel) bool {
	s := normalize(fl.Field().String())
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return false
	}
	return unicode.IsPrint(r) && !unicode.IsSpace(r) && r != '|' && r != rune(grammar.EpsilonMark)
}

// ParseYAML reads a grammar in YAML format. name is used for error messages
// and becomes the name of the grammar, unless the file sets one.
//
//	name: a^n b^n
//	terminals: [a, b]
//	nonterminals: [S]
//	start: S
//	rules:
//	  - S -> aSb | ab
//
// Rules are written as productions (see grammar.ParseProduction); '@'
// denotes the empty output.
func ParseYAML(r io.Reader, name string, opts ...Option) (*grammar.Grammar, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newError(name, 0, TermCount, errors.New("empty document"))
		}
		return nil, newError(name, 0, Invalid, err)
	}
	var yg yamlGrammar
	if err := doc.Decode(&yg); err != nil {
		return nil, newError(name, 0, Invalid, err)
	}
	if err := yamlValidate.Struct(&yg); err != nil {
		return nil, validationError(name, &doc, err)
	}
	def := definition{name: name}
	if yg.Name != "" {
		def.name = yg.Name
	}
	tset := make(map[grammar.Symbol]bool)
	for _, t := range yg.Terminals {
		s, _ := single(normalize(t))
		tset[s] = true
		def.terminals = append(def.terminals, s)
	}
	ntset := make(map[grammar.Symbol]bool)
	ntlines := valueLines(&doc, "nonterminals")
	for i, nt := range yg.NonTerminals {
		s, _ := single(normalize(nt))
		if tset[s] {
			return nil, newError(name, lineAt(ntlines, i), DuplicateNonTerminal,
				fmt.Errorf("%q is a terminal", nt))
		}
		ntset[s] = true
		def.nonTerminals = append(def.nonTerminals, s)
	}
	def.start, _ = single(normalize(yg.Start))
	if !ntset[def.start] {
		return nil, newError(name, lineAt(valueLines(&doc, "start"), 0), StartSymbol,
			fmt.Errorf("%q", yg.Start))
	}
	rlines := valueLines(&doc, "rules")
	for i, production := range yg.Rules {
		line := lineAt(rlines, i)
		rules, err := grammar.ParseProduction(normalize(production))
		if err != nil {
			return nil, newError(name, line, RuleSyntax, err)
		}
		for _, r := range rules {
			if !ntset[r.LHS] {
				return nil, newError(name, line, RuleSyntax, fmt.Errorf("%q is not a non-terminal", rune(r.LHS)))
			}
			for _, s := range r.RHS {
				if !tset[s] && !ntset[s] {
					return nil, newError(name, line, RuleSyntax, fmt.Errorf("unknown symbol %q", rune(s)))
				}
			}
			def.rules = append(def.rules, lineRule{Rule: r, line: line})
		}
	}
	return compile(&def, newOptions(opts))
}

// validationError converts the first validation error into an *Error.
func validationError(name string, doc *yaml.Node, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newError(name, 0, Invalid, err)
	}
	fe := verrs[0]
	field, index := splitIndex(fe.StructField())
	T().Debugf("gramfile: %s: validation of %s failed on %q", name, fe.StructField(), fe.Tag())
	var t ErrorType
	var key string
	switch field {
	case "Terminals":
		t, key = DuplicateTerminal, "terminals"
		if fe.Tag() != "unique" && fe.Tag() != "symbol" {
			t = TermCount
		}
	case "NonTerminals":
		t, key = DuplicateNonTerminal, "nonterminals"
		if fe.Tag() != "unique" && fe.Tag() != "symbol" {
			t = NonTermCount
		}
	case "Start":
		t, key = StartSymbol, "start"
	case "Rules":
		t, key = RuleSyntax, "rules"
		if index < 0 {
			t = RuleCount
		}
	default:
		return newError(name, 0, Invalid, err)
	}
	return newError(name, lineAt(valueLines(doc, key), max(index, 0)), t, fe)
}

// splitIndex splits a field name like "Rules[3]" into "Rules" and 3.
// The index is -1 for plain field names.
func splitIndex(f string) (string, int) {
	i := strings.IndexByte(f, '[')
	if i < 0 || !strings.HasSuffix(f, "]") {
		return f, -1
	}
	n, err := strconv.Atoi(f[i+1 : len(f)-1])
	if err != nil {
		return f[:i], -1
	}
	return f[:i], n
}

// valueLines returns the lines of the value for a top-level key. For
// sequences, it returns the line of each item.
func valueLines(doc *yaml.Node, key string) []int {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.SequenceNode {
			return []int{v.Line}
		}
		lines := make([]int, len(v.Content))
		for k, item := range v.Content {
			lines[k] = item.Line
		}
		return lines
	}
	return nil
}

func lineAt(lines []int, i int) int {
	if i >= 0 && i < len(lines) {
		return lines[i]
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return 0
}

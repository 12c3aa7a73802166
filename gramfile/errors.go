package gramfile

import "fmt"

// ErrorType classifies errors in grammar files.
type ErrorType int8

// Types of errors in grammar files.
const (
	Invalid              ErrorType = iota // grammar is rejected for other reasons
	FileNotFound                          // file cannot be opened
	TermCount                             // count of terminals is not a positive integer
	DuplicateTerminal                     // terminal symbol is malformed or not unique
	NonTermCount                          // count of non-terminals is not a positive integer
	DuplicateNonTerminal                  // non-terminal is malformed, not unique or a terminal
	StartSymbol                           // start symbol is not a non-terminal
	RuleCount                             // count of rules is not a positive integer
	RuleSyntax                            // rule is malformed or uses unknown symbols
	DuplicateRule                         // rule is defined twice
)

var errorTypeMessages = map[ErrorType]string{
	Invalid:              "invalid grammar",
	FileNotFound:         "file not found",
	TermCount:            "number of terminals must be a positive integer",
	DuplicateTerminal:    "terminals must be single, unique symbols",
	NonTermCount:         "number of non-terminals must be a positive integer",
	DuplicateNonTerminal: "non-terminals must be single, unique symbols, different from the terminals",
	StartSymbol:          "start symbol must be one of the non-terminals",
	RuleCount:            "number of rules must be a positive integer",
	RuleSyntax:           "rules must look like 'S aSb', with a non-terminal on the left and known symbols on the right",
	DuplicateRule:        "rules must be unique",
}

func (t ErrorType) String() string {
	if msg, ok := errorTypeMessages[t]; ok {
		return msg
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Error is an error in a grammar file. Line is 1-based, or 0 if the error
// does not refer to a specific line.
type Error struct {
	File string
	Line int
	Type ErrorType
	Err  error // underlying error, may be nil
}

func (e *Error) Error() string {
	var at string
	switch {
	case e.File != "" && e.Line > 0:
		at = fmt.Sprintf("%s:%d: ", e.File, e.Line)
	case e.File != "":
		at = e.File + ": "
	case e.Line > 0:
		at = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("gramfile: %s%s: %v", at, e.Type, e.Err)
	}
	return fmt.Sprintf("gramfile: %s%s", at, e.Type)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(file string, line int, t ErrorType, err error) *Error {
	return &Error{File: file, Line: line, Type: t, Err: err}
}

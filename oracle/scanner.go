package oracle

import (
	"github.com/npillmayer/derive/grammar"
	"github.com/npillmayer/gorgo/lr/scanner"
)

// symbolScanner implements the scanner.Tokenizer interface. Every symbol of
// a word is a token of its own, with the symbol's rune as token value.
type symbolScanner struct {
	word grammar.Sentence
	pos  uint64
}

func newScanner(word grammar.Sentence) *symbolScanner {
	return &symbolScanner{word: word}
}

// NextToken is part of interface scanner.Tokenizer.
// Expected tokens are not considered.
func (sc *symbolScanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if sc.pos >= uint64(len(sc.word)) {
		return scanner.EOF, "", sc.pos, 0
	}
	sym := sc.word[sc.pos]
	sc.pos++
	return int(sym), sym.String(), sc.pos - 1, 1
}

// SetErrorHandler is part of interface scanner.Tokenizer.
// Words are scanned without errors, thus h is never called.
func (sc *symbolScanner) SetErrorHandler(h func(error)) {}

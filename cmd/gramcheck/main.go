/*
Gramcheck decides whether words can be generated by a context-free grammar.

Usage:

	gramcheck check anbn.txt aabb aab
	gramcheck check --mode best --stats anbn.yaml < words.txt
	gramcheck list grammars/
	gramcheck show parens.txt

Grammar files are read in text or YAML format, see package gramfile.
Settings may be kept in a YAML file given with --config:

	mode: best
	advisory: true
	max_expansions: 100000
	workers: 8
	timeout: 30s
	trace: info

Flags on the command line override the settings in the file.
*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

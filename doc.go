/*
Package derive is about deciding membership of words in context-free languages
by searching for a derivation.

Description

Given a context-free grammar G and a word w over its terminals, we want to know
whether G derives w and, if it does, see one derivation
S ⇒ … ⇒ w. Chart parsers (CYK, Earley) answer the first question in
polynomial time. Package derive and its sub-packages take a different route:
they search the space of sentential forms directly, starting from the start
symbol and rewriting non-terminals until the word appears.

The space of sentential forms is unbounded and explodes combinatorially.
Every form is expanded by rewriting all of its non-terminals at once, one
alternative each, which yields the full cross product of choices as children.
Children are pruned as soon as they provably cannot lead to w: they are
longer than w, they have been seen before, or their terminals contradict the
terminals of w. Pruning must be sound: it never discards a form lying on a
derivation of w. Some heuristics are advisory and opt-in; they carry the
same contract.

Contents

Base package derive provides the search tree infrastructure, shared between
searches:

  - Node and Arena: nodes of the derivation tree, owned by a per-query arena.
    Parent links are indices into the arena, and teardown of a tree is a single
    call to Arena.Release, which resets the arena and returns it to a pool.

  - Frontier: the worklist of nodes awaiting expansion, either first-in
    first-out (plain breadth-first search) or ordered by the number of
    remaining non-terminals (best-first search, see SearchMode).

Sub-package grammar holds immutable grammar values, sub-package search the
expansion and pruning engines together with the search driver (search.Check).
Sub-package gramfile loads grammars from files, sub-package oracle provides an
Earley recognizer for cross-checking results, and cmd/gramcheck is a command
line front end.

Termination

With the default pruners every query terminates, as forms longer than the
word are discarded and forms are never expanded twice. Clients removing these
pruners may create searches which never end; for those, and for impatient
callers in general, search options impose limits on depth or expansions.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package derive

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

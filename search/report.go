package search

import (
	"io"
	"strings"

	"github.com/npillmayer/derive"
)

// Derivation is the sequence of sentential forms from the start symbol down
// to a word, each form derived from its predecessor by rewriting all of its
// non-terminals.
type Derivation []string

// separator follows every form of a derivation but the last one.
const separator = " ->\n"

func (d Derivation) String() string {
	return strings.Join(d, separator)
}

// WriteTo writes d to w, followed by a newline. It implements io.WriterTo.
func (d Derivation) WriteTo(w io.Writer) (int64, error) {
	if len(d) == 0 {
		return 0, nil
	}
	n, err := io.WriteString(w, d.String()+"\n")
	return int64(n), err
}

// Trace walks the parent links from node id up to the root of arena and
// returns the forms in root-to-node order. The forms are copied, so the
// derivation stays valid after the arena is released.
func Trace(arena *derive.Arena, id derive.NodeID) Derivation {
	path := arena.Path(id)
	d := make(Derivation, len(path))
	for i, nid := range path {
		d[i] = arena.Node(nid).Text.String()
	}
	return d
}

package derive

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/emirpasic/gods/trees/binaryheap"
)

// SearchMode selects the order in which a frontier hands out nodes.
type SearchMode int8

// Search modes. FIFO is plain breadth-first search and is the default.
// BestFirst expands the node with the fewest remaining non-terminals first,
// preferring shallower nodes on ties, then older ones.
const (
	FIFO SearchMode = iota
	BestFirst
)

func (m SearchMode) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case BestFirst:
		return "best-first"
	}
	return fmt.Sprintf("SearchMode(%d)", int(m))
}

// ParseSearchMode converts a mode name into a SearchMode. It accepts the
// names produced by String() plus "bfs" and "best".
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "bfs", "":
		return FIFO, nil
	case "best-first", "best", "bestfirst", "heuristic":
		return BestFirst, nil
	}
	return FIFO, fmt.Errorf("unknown search mode %q", s)
}

// Entry is an element of a frontier. It references a node by ID and carries
// the node's ordering keys, so frontiers never have to consult the arena.
type Entry struct {
	ID        NodeID
	Heuristic int
	Depth     int
	seq       uint64 // insertion order, set by the frontier
}

// EntryFor creates a frontier entry for a node.
func EntryFor(id NodeID, n Node) Entry {
	return Entry{ID: id, Heuristic: n.Heuristic, Depth: n.Depth}
}

// Frontier is the worklist of nodes awaiting expansion.
type Frontier interface {
	Push(Entry)         // add a node
	Pop() (Entry, bool) // remove the next node to expand; false if empty
	Len() int           // number of waiting nodes
	Mode() SearchMode   // ordering discipline
}

// NewFrontier creates an empty frontier for a search mode.
func NewFrontier(mode SearchMode) Frontier {
	if mode == BestFirst {
		return newHeapFrontier()
	}
	return &fifoFrontier{list: singlylinkedlist.New()}
}

// --- FIFO -------------------------------------------------------------------

// fifoFrontier appends at the tail and pops from the head.
type fifoFrontier struct {
	list *singlylinkedlist.List
}

func (f *fifoFrontier) Push(e Entry) {
	f.list.Add(e)
}

func (f *fifoFrontier) Pop() (Entry, bool) {
	v, ok := f.list.Get(0)
	if !ok {
		return Entry{}, false
	}
	f.list.Remove(0)
	return v.(Entry), true
}

func (f *fifoFrontier) Len() int {
	return f.list.Size()
}

func (f *fifoFrontier) Mode() SearchMode {
	return FIFO
}

// --- Best first -------------------------------------------------------------

// heapFrontier is a priority queue ordered by (heuristic, depth, insertion).
// Including the insertion sequence makes the order total, so searches are
// reproducible.
type heapFrontier struct {
	heap *binaryheap.Heap
	seq  uint64
}

func newHeapFrontier() *heapFrontier {
	return &heapFrontier{heap: binaryheap.NewWith(compareEntries)}
}

func compareEntries(a, b interface{}) int {
	e1, e2 := a.(Entry), b.(Entry)
	switch {
	case e1.Heuristic != e2.Heuristic:
		return e1.Heuristic - e2.Heuristic
	case e1.Depth != e2.Depth:
		return e1.Depth - e2.Depth
	case e1.seq < e2.seq:
		return -1
	case e1.seq > e2.seq:
		return 1
	}
	return 0
}

func (f *heapFrontier) Push(e Entry) {
	f.seq++
	e.seq = f.seq
	f.heap.Push(e)
}

func (f *heapFrontier) Pop() (Entry, bool) {
	v, ok := f.heap.Pop()
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

func (f *heapFrontier) Len() int {
	return f.heap.Size()
}

func (f *heapFrontier) Mode() SearchMode {
	return BestFirst
}

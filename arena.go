package derive

import (
	"context"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/derive/grammar"
)

// NodeID references a node within its arena.
type NodeID int32

// NoParent is the parent of a root node.
const NoParent NodeID = -1

// Node is a node in a derivation tree. It holds a sentential form, a link to
// the form it has been derived from, its depth (the root has depth 0) and a
// heuristic score: the number of non-terminals remaining in Text.
// Lower scores are closer to an all-terminal sentence.
type Node struct {
	Text      grammar.Sentence
	Parent    NodeID
	Depth     int
	Heuristic int
}

func (n Node) String() string {
	return fmt.Sprintf("[%s d=%d h=%d]", n.Text, n.Depth, n.Heuristic)
}

// An Arena owns every node of a single derivation tree. Nodes are
// addressed by NodeID and never move to another ID, so parent links stay
// valid for the lifetime of the arena.
//
// Arenas are not safe for concurrent use. A search borrows one arena per
// query (see BorrowArena) and releases it when the query is done,
// independent of its outcome.
type Arena struct {
	nodes []Node
}

// NewArena creates a new Arena.
// This is rarely used, as clients rather should call BorrowArena().
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 0, 64)}
}

// Add stores n in the arena and returns its ID.
func (a *Arena) Add(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Node returns a copy of the node with the given ID.
// It panics if id is not a valid node of this arena.
func (a *Arena) Node(id NodeID) Node {
	return a.nodes[id]
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Path returns the IDs of the nodes from the root down to id.
func (a *Arena) Path(id NodeID) []NodeID {
	var path []NodeID
	for ; id != NoParent; id = a.nodes[id].Parent {
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// maxRetainedNodes limits the capacity an arena keeps when it is reset.
const maxRetainedNodes = 1 << 16

// Reset drops all nodes.
func (a *Arena) Reset() {
	if cap(a.nodes) > maxRetainedNodes {
		a.nodes = make([]Node, 0, 64)
		return
	}
	for i := range a.nodes {
		a.nodes[i] = Node{}
	}
	a.nodes = a.nodes[:0]
}

// --- Pooling ----------------------------------------------------------------

// Every query needs an arena, and queries may run in quick succession (or
// concurrently, for different words). We pool arenas to re-use their node
// storage.
type arenaPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalArenaPool *arenaPool

func init() {
	globalArenaPool = &arenaPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return NewArena(), nil
		})
	globalArenaPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalArenaPool.opool = pool.NewObjectPool(globalArenaPool.ctx, factory, config)
}

// BorrowArena returns an empty arena from the pool. Clients must call
// Release on it when they are done with the tree.
func BorrowArena() *Arena {
	o, err := globalArenaPool.opool.BorrowObject(globalArenaPool.ctx)
	if err != nil {
		CT().Errorf("arena pool: %v", err)
		return NewArena()
	}
	return o.(*Arena)
}

// Release resets the arena and puts it back into the pool.
// The arena must not be used afterwards.
func (a *Arena) Release() {
	a.Reset()
	if err := globalArenaPool.opool.ReturnObject(globalArenaPool.ctx, a); err != nil {
		CT().Debugf("arena pool: %v", err)
	}
}

// ActiveArenas returns the number of arenas currently borrowed from the pool.
func ActiveArenas() int {
	return globalArenaPool.opool.GetNumActive()
}

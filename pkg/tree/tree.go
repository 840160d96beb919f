package tree

import (
	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/prime"
)

// DefaultMaxNodes caps the size of a generated tree.
const DefaultMaxNodes = 100_000

// NodeID indexes [Tree.Nodes].
type NodeID int

// NoParent is the parent id of the root.
const NoParent NodeID = -1

// Node is one value of the range placed in the tree.
//
// X and Y are model-space coordinates; they stay zero until a layout is
// applied.
type Node struct {
	ID       NodeID         `json:"id"`
	Value    int            `json:"value"`
	Prime    bool           `json:"prime"`
	Factors  []prime.Factor `json:"factors"`
	Parent   NodeID         `json:"parent"`
	Children []NodeID       `json:"children,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoParent }

// Edge links a parent to one of its children.
type Edge struct {
	From NodeID `json:"from"`
	To   NodeID `json:"to"`
}

// Tree is the arena produced by [Build].
//
// Tree is not safe for concurrent mutation; layouts write X and Y in place.
type Tree struct {
	Nodes  []Node     `json:"nodes"`
	Edges  []Edge     `json:"edges"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Policy RootPolicy `json:"policy"`
}

// Options tunes [Build].
type Options struct {
	// MaxNodes caps the node count. Zero means DefaultMaxNodes.
	MaxNodes int
	// Oracle memoizes primality. Nil means IsPrime is called directly.
	Oracle *prime.Oracle
}

// Build creates the tree for [start, end] under policy.
//
// Inputs are fully validated before any node is allocated, so a failed
// call never yields a partial tree.
func Build(start, end int, policy RootPolicy, opts Options) (*Tree, error) {
	if !policy.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown root policy %d", int(policy))
	}
	if start > end {
		return nil, errors.New(errors.ErrCodeInvalidRange, "start %d is greater than end %d", start, end)
	}
	root, err := ComputeRoot(start, policy)
	if err != nil {
		return nil, err
	}
	if root > end {
		return nil, errors.New(errors.ErrCodeInvalidRange,
			"%s root %d is outside the range [%d, %d]", policy, root, start, end)
	}

	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	// uint64 difference is exact for root <= end even when end-root overflows int.
	if span := uint64(end) - uint64(root); span >= uint64(maxNodes) {
		return nil, errors.New(errors.ErrCodeRangeTooLarge,
			"range [%d, %d] would create more than %d nodes", root, end, maxNodes)
	}
	count := end - root + 1

	isPrime := prime.IsPrime
	if opts.Oracle != nil {
		opts.Oracle.Precompute(root, end)
		isPrime = opts.Oracle.IsPrime
	}

	t := &Tree{
		Nodes:  make([]Node, 0, count),
		Edges:  make([]Edge, 0, count-1),
		Start:  start,
		End:    end,
		Policy: policy,
	}

	// open is the first node with a free child slot. Slots only ever fill,
	// so the scan in creation order never has to move backwards.
	open := 0
	for i := 0; i < count; i++ {
		v := root + i
		id := NodeID(i)
		t.Nodes = append(t.Nodes, Node{
			ID:      id,
			Value:   v,
			Prime:   isPrime(v),
			Factors: prime.Factorize(v),
			Parent:  NoParent,
		})
		if i == 0 {
			continue
		}

		for open < i && len(t.Nodes[open].Children) >= 2 {
			open++
		}
		if open >= i {
			return nil, errors.New(errors.ErrCodeInternal, "no open slot for node %d", v)
		}

		parent := &t.Nodes[open]
		parent.Children = append(parent.Children, id)
		t.Nodes[i].Parent = parent.ID
		t.Edges = append(t.Edges, Edge{From: parent.ID, To: id})
	}

	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if len(t.Nodes) == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Node returns the node with the given id, or nil if out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

// Find returns the node holding value.
func (t *Tree) Find(value int) (*Node, bool) {
	if len(t.Nodes) == 0 {
		return nil, false
	}
	i := value - t.Nodes[0].Value
	if i < 0 || i >= len(t.Nodes) {
		return nil, false
	}
	return &t.Nodes[i], true
}

// Depth returns the height of the subtree rooted at id: 1 for a leaf,
// otherwise one more than the deepest child.
func (t *Tree) Depth(id NodeID) int {
	n := t.Node(id)
	if n == nil {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		d = max(d, t.Depth(c))
	}
	return d + 1
}

// MaxDepth returns the height of the whole tree.
func (t *Tree) MaxDepth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	return t.Depth(0)
}

// Levels returns the root-relative level of every node (root = 0),
// indexed by NodeID.
func (t *Tree) Levels() []int {
	levels := make([]int, len(t.Nodes))
	// Parents always precede their children in the arena.
	for i := 1; i < len(t.Nodes); i++ {
		levels[i] = levels[t.Nodes[i].Parent] + 1
	}
	return levels
}

// Leaves returns the ids of nodes without children, in arena order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			out = append(out, t.Nodes[i].ID)
		}
	}
	return out
}

// Parents returns the ids of nodes with at least one child, in arena order.
func (t *Tree) Parents() []NodeID {
	var out []NodeID
	for i := range t.Nodes {
		if !t.Nodes[i].IsLeaf() {
			out = append(out, t.Nodes[i].ID)
		}
	}
	return out
}

// Validate checks the structural invariants: one root, at most two
// children per node, parent and child links agree, one edge per non-root
// node, and values unique within [root, End].
func (t *Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return errors.New(errors.ErrCodeInternal, "tree has no nodes")
	}
	if len(t.Edges) != len(t.Nodes)-1 {
		return errors.New(errors.ErrCodeInternal, "%d edges for %d nodes", len(t.Edges), len(t.Nodes))
	}

	rootValue := t.Nodes[0].Value
	roots := 0
	seen := make(map[int]bool, len(t.Nodes))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.ID != NodeID(i) {
			return errors.New(errors.ErrCodeInternal, "node at %d has id %d", i, n.ID)
		}
		if seen[n.Value] {
			return errors.New(errors.ErrCodeInternal, "duplicate value %d", n.Value)
		}
		seen[n.Value] = true
		if n.Value < rootValue || n.Value > t.End {
			return errors.New(errors.ErrCodeInternal, "value %d outside [%d, %d]", n.Value, rootValue, t.End)
		}
		if len(n.Children) > 2 {
			return errors.New(errors.ErrCodeInternal, "node %d has %d children", n.Value, len(n.Children))
		}
		if n.IsRoot() {
			roots++
			continue
		}
		p := t.Node(n.Parent)
		if p == nil || !containsID(p.Children, n.ID) {
			return errors.New(errors.ErrCodeInternal, "node %d is not listed by its parent", n.Value)
		}
	}
	if roots != 1 {
		return errors.New(errors.ErrCodeInternal, "tree has %d roots", roots)
	}
	for _, e := range t.Edges {
		if c := t.Node(e.To); c == nil || c.Parent != e.From {
			return errors.New(errors.ErrCodeInternal, "edge %d→%d does not match parent link", e.From, e.To)
		}
	}
	return nil
}

func containsID(ids []NodeID, id NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

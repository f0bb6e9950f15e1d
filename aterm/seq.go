package aterm

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// --- Tree walks ------------------------------------------------------------

// TermNode is a node produced by a tree walk. Parent is nil for the root.
// Index is the position of the node within its parent's children.
type TermNode struct {
	Term   Term
	Parent Term
	Depth  int
	Index  int
}

// TermSeq is a type which represents a pre-order tree walk over a term as a
// sequence. Heads of applications and annotations are not visited; they are
// properties of their nodes.
//
// Usage:
//
//     for node, seq := aterm.Preorder(t).First(); !seq.Done(); node = seq.Next() {
//         …
//     }
//
type TermSeq struct {
	node  TermNode
	stack []TermNode
	done  bool
}

// Preorder creates a sequence walking a term in left-to-right pre-order.
func Preorder(t Term) TermSeq {
	if t == nil {
		return TermSeq{done: true}
	}
	seq := TermSeq{stack: []TermNode{{Term: t}}}
	seq.advance()
	return seq
}

func (seq *TermSeq) advance() {
	if len(seq.stack) == 0 {
		seq.done = true
		seq.node = TermNode{}
		return
	}
	tos := seq.stack[len(seq.stack)-1]
	seq.stack = seq.stack[:len(seq.stack)-1]
	children := Children(tos.Term)
	for i := len(children) - 1; i >= 0; i-- { // push right to left
		seq.stack = append(seq.stack, TermNode{
			Term:   children[i],
			Parent: tos.Term,
			Depth:  tos.Depth + 1,
			Index:  i,
		})
	}
	seq.node = tos
}

// Break stops a traversing sequence.
func (seq *TermSeq) Break() {
	seq.done = true
	seq.stack = nil
}

// Done returns true if a traversing sequence is stopped or exhausted.
func (seq *TermSeq) Done() bool {
	return seq.done
}

// First returns the first node of a tree walk, together with the sequence.
func (seq TermSeq) First() (TermNode, *TermSeq) {
	return seq.node, &seq
}

// Next returns the next node of a tree walk.
func (seq *TermSeq) Next() TermNode {
	if seq.done {
		return TermNode{}
	}
	seq.advance()
	return seq.node
}

// NodeFilter filters nodes from a tree walk.
type NodeFilter func(node TermNode) bool

// IsLeafNode accepts nodes without children.
func IsLeafNode() NodeFilter {
	return func(node TermNode) bool {
		return len(Children(node.Term)) == 0
	}
}

// OfKind accepts nodes of a given kind.
func OfKind(k Kind) NodeFilter {
	return func(node TermNode) bool {
		return node.Term.Kind() == k
	}
}

// Nodes collects all nodes of a tree walk which pass filter.
// A nil filter accepts every node.
func (seq TermSeq) Nodes(filter NodeFilter) []TermNode {
	var nodes []TermNode
	for node, s := seq.First(); !s.Done(); node = s.Next() {
		if filter == nil || filter(node) {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Size counts the nodes of a term.
func Size(t Term) int {
	n := 0
	for _, s := Preorder(t).First(); !s.Done(); s.Next() {
		n++
	}
	return n
}

// Depth returns the height of a term; atoms have depth 0.
func Depth(t Term) int {
	d := 0
	for node, s := Preorder(t).First(); !s.Done(); node = s.Next() {
		if node.Depth > d {
			d = node.Depth
		}
	}
	return d
}

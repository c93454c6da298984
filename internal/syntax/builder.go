package syntax

import "fmt"

// Builder assembles a Tree node by node. The first node added is the root;
// every later node must name an existing parent. Children keep insertion order.
type Builder struct {
	tree *Tree
}

// NewBuilder starts a tree over src.
func NewBuilder(src []byte) *Builder {
	return &Builder{tree: &Tree{source: src}}
}

// Grow reserves room for n more nodes.
func (b *Builder) Grow(n int) {
	if cap(b.tree.nodes)-len(b.tree.nodes) < n {
		nodes := make([]node, len(b.tree.nodes), len(b.tree.nodes)+n)
		copy(nodes, b.tree.nodes)
		b.tree.nodes = nodes
	}
}

// Add appends a node and returns its id. Pass NoNode as parent for the root.
func (b *Builder) Add(parent NodeID, field, kind string, named bool, rng Range) (NodeID, error) {
	id := NodeID(len(b.tree.nodes))
	n := node{
		kind:   kind,
		named:  named,
		field:  field,
		rng:    rng,
		parent: parent,
	}
	switch {
	case parent == NoNode && id != 0:
		return NoNode, fmt.Errorf("syntax: node %q has no parent but root already exists", kind)
	case parent != NoNode && (parent < 0 || parent >= id):
		return NoNode, fmt.Errorf("syntax: node %q refers to unknown parent %d", kind, parent)
	}
	if rng.Start < 0 || rng.End < rng.Start || rng.End > len(b.tree.source) {
		return NoNode, fmt.Errorf("syntax: node %q has invalid range [%d,%d) for %d bytes",
			kind, rng.Start, rng.End, len(b.tree.source))
	}
	if parent != NoNode {
		p := &b.tree.nodes[parent]
		n.index = int32(len(p.children))
		p.children = append(p.children, id)
	}
	b.tree.nodes = append(b.tree.nodes, n)
	return id, nil
}

// Tree returns the finished tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := b.tree
	b.tree = nil
	return t
}

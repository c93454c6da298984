// Package syntax holds the concrete syntax trees produced by a grammar.
//
// Trees are flat arenas: every node lives in one slice and refers to its
// parent and children by index, so a whole tree is dropped in one piece once
// a highlight pass is done with it.
package syntax

import (
	"context"
	"errors"
)

// ErrNoTree is returned by a Grammar that could not produce a tree.
var ErrNoTree = errors.New("syntax: no tree produced")

// Grammar turns source text into a syntax tree.
type Grammar interface {
	Parse(ctx context.Context, src []byte) (*Tree, error)
}

// GrammarFunc adapts a plain function to the Grammar interface.
type GrammarFunc func(ctx context.Context, src []byte) (*Tree, error)

// Parse calls f.
func (f GrammarFunc) Parse(ctx context.Context, src []byte) (*Tree, error) {
	return f(ctx, src)
}

// NodeID addresses a node inside its tree's arena.
type NodeID int32

// NoNode marks a missing parent, child or sibling.
const NoNode NodeID = -1

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

type node struct {
	kind     string
	named    bool
	field    string // field name relative to parent, "" when none
	rng      Range
	parent   NodeID
	index    int32 // position among the parent's children
	children []NodeID
}

// Tree is an immutable syntax tree over a source snapshot.
type Tree struct {
	source []byte
	nodes  []node
}

// Source returns the text the tree was built from.
func (t *Tree) Source() []byte { return t.source }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node. The zero Node is returned for an empty tree.
func (t *Tree) Root() Node {
	if t == nil || len(t.nodes) == 0 {
		return Node{}
	}
	return Node{tree: t, id: 0}
}

// Node returns the handle for id.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// Walk returns a cursor positioned on the root.
func (t *Tree) Walk() *Cursor {
	return NewCursor(t.Root())
}

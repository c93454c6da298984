package syntax

// Node is a lightweight handle on a node of a Tree.
// The zero Node is invalid; check IsValid before using a Node that may be absent.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) data() *node { return &n.tree.nodes[n.id] }

// IsValid reports whether n refers to a node.
func (n Node) IsValid() bool { return n.tree != nil && n.id >= 0 }

// ID returns the arena index of n.
func (n Node) ID() NodeID {
	if !n.IsValid() {
		return NoNode
	}
	return n.id
}

// Tree returns the tree owning n.
func (n Node) Tree() *Tree { return n.tree }

// Kind returns the grammar symbol name, e.g. "function_call" or ";".
func (n Node) Kind() string { return n.data().kind }

// IsNamed reports whether n is a named (structural) node rather than a raw token.
func (n Node) IsNamed() bool { return n.data().named }

// FieldName returns the field under which n hangs off its parent, or "".
func (n Node) FieldName() string { return n.data().field }

// Range returns the byte range of n.
func (n Node) Range() Range { return n.data().rng }

// StartByte returns the first byte of n.
func (n Node) StartByte() int { return n.data().rng.Start }

// EndByte returns the byte after the last byte of n.
func (n Node) EndByte() int { return n.data().rng.End }

// Text returns the source bytes covered by n.
func (n Node) Text() []byte {
	r := n.data().rng
	src := n.tree.source
	if r.Start < 0 || r.End > len(src) || r.Start > r.End {
		return nil
	}
	return src[r.Start:r.End]
}

// Content returns the source text covered by n as a string.
func (n Node) Content() string { return string(n.Text()) }

// Parent returns the parent of n. ok is false for the root.
func (n Node) Parent() (Node, bool) {
	p := n.data().parent
	if p == NoNode {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

// HasParent reports whether n is not the root.
func (n Node) HasParent() bool { return n.data().parent != NoNode }

// ChildCount returns the number of children, named or not.
func (n Node) ChildCount() int { return len(n.data().children) }

// Child returns the i-th child. ok is false when i is out of range.
func (n Node) Child(i int) (Node, bool) {
	children := n.data().children
	if i < 0 || i >= len(children) {
		return Node{}, false
	}
	return Node{tree: n.tree, id: children[i]}, true
}

// LastChild returns the final child of n.
func (n Node) LastChild() (Node, bool) {
	return n.Child(n.ChildCount() - 1)
}

// Children returns all children of n in order.
func (n Node) Children() []Node {
	children := n.data().children
	out := make([]Node, len(children))
	for i, id := range children {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// ChildByFieldName returns the first child stored under field name.
func (n Node) ChildByFieldName(name string) (Node, bool) {
	for _, id := range n.data().children {
		if n.tree.nodes[id].field == name {
			return Node{tree: n.tree, id: id}, true
		}
	}
	return Node{}, false
}

// ChildrenByFieldName returns every child stored under field name.
func (n Node) ChildrenByFieldName(name string) []Node {
	var out []Node
	for _, id := range n.data().children {
		if n.tree.nodes[id].field == name {
			out = append(out, Node{tree: n.tree, id: id})
		}
	}
	return out
}

// IsFirstChild reports whether n has no previous sibling.
// The root counts as a first child.
func (n Node) IsFirstChild() bool { return n.data().index == 0 }

// PrevSibling returns the sibling before n.
func (n Node) PrevSibling() (Node, bool) {
	p, ok := n.Parent()
	if !ok {
		return Node{}, false
	}
	return p.Child(int(n.data().index) - 1)
}

// NextSibling returns the sibling after n.
func (n Node) NextSibling() (Node, bool) {
	p, ok := n.Parent()
	if !ok {
		return Node{}, false
	}
	return p.Child(int(n.data().index) + 1)
}

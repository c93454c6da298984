package syntax

// Cursor walks a tree one step at a time, never leaving the subtree it was
// started (or reset) on.
type Cursor struct {
	root Node
	cur  Node
}

// NewCursor returns a cursor positioned on n.
func NewCursor(n Node) *Cursor {
	return &Cursor{root: n, cur: n}
}

// Reset repositions the cursor on n, which becomes the new walk root.
func (c *Cursor) Reset(n Node) {
	c.root = n
	c.cur = n
}

// Node returns the current node.
func (c *Cursor) Node() Node { return c.cur }

// GotoFirstChild moves to the first child of the current node.
func (c *Cursor) GotoFirstChild() bool {
	if !c.cur.IsValid() {
		return false
	}
	child, ok := c.cur.Child(0)
	if !ok {
		return false
	}
	c.cur = child
	return true
}

// GotoNextSibling moves to the next sibling of the current node.
func (c *Cursor) GotoNextSibling() bool {
	if !c.cur.IsValid() || c.cur.id == c.root.id {
		return false
	}
	next, ok := c.cur.NextSibling()
	if !ok {
		return false
	}
	c.cur = next
	return true
}

// GotoParent moves to the parent of the current node.
func (c *Cursor) GotoParent() bool {
	if !c.cur.IsValid() || c.cur.id == c.root.id {
		return false
	}
	parent, ok := c.cur.Parent()
	if !ok {
		return false
	}
	c.cur = parent
	return true
}

// Next advances the cursor in pre-order: first child, else next sibling,
// else the next sibling of the nearest ancestor that has one.
// It returns false once the walk is exhausted.
func (c *Cursor) Next() bool {
	if c.GotoFirstChild() {
		return true
	}
	if c.GotoNextSibling() {
		return true
	}
	for c.GotoParent() {
		if c.GotoNextSibling() {
			return true
		}
	}
	return false
}

// Package syntaxtest builds syntax trees by hand for tests.
//
// A tree is described as nested Specs. Leaves carry the literal text they
// cover and are located in the source in order, so offsets never have to be
// written out. An inner node spans from its first to its last descendant
// leaf; the root always spans the whole source.
package syntaxtest

import (
	"bytes"
	"fmt"

	"github.com/bethropolis/qat-editor/internal/syntax"
)

// Spec describes one node.
type Spec struct {
	Kind     string
	Named    bool
	Field    string
	Text     string // leaf text; ignored for nodes with children
	Children []Spec
}

// N describes a named inner node.
func N(kind string, children ...Spec) Spec {
	return Spec{Kind: kind, Named: true, Children: children}
}

// L describes a named leaf covering text.
func L(kind, text string) Spec {
	return Spec{Kind: kind, Named: true, Text: text}
}

// T describes an anonymous token whose kind is its own text, e.g. "let" or ";".
func T(text string) Spec {
	return Spec{Kind: text, Text: text}
}

// F attaches spec under field name.
func F(name string, spec Spec) Spec {
	spec.Field = name
	return spec
}

// Build lays root out over src.
func Build(src string, root Spec) (*syntax.Tree, error) {
	l := &layout{src: []byte(src)}
	if err := l.measure(&root); err != nil {
		return nil, err
	}
	b := syntax.NewBuilder(l.src)
	if err := l.emit(b, syntax.NoNode, root, syntax.Range{Start: 0, End: len(l.src)}); err != nil {
		return nil, err
	}
	return b.Tree(), nil
}

// MustBuild is Build that panics on a malformed description.
func MustBuild(src string, root Spec) *syntax.Tree {
	t, err := Build(src, root)
	if err != nil {
		panic(err)
	}
	return t
}

type layout struct {
	src    []byte
	pos    int
	ranges []syntax.Range // pre-order, filled by measure
}

// measure assigns ranges in pre-order by scanning leaves left to right.
func (l *layout) measure(s *Spec) error {
	slot := len(l.ranges)
	l.ranges = append(l.ranges, syntax.Range{})
	if len(s.Children) == 0 {
		at := bytes.Index(l.src[l.pos:], []byte(s.Text))
		if at < 0 {
			return fmt.Errorf("syntaxtest: leaf %q (%s) not found after offset %d", s.Text, s.Kind, l.pos)
		}
		start := l.pos + at
		l.pos = start + len(s.Text)
		l.ranges[slot] = syntax.Range{Start: start, End: l.pos}
		return nil
	}
	first := len(l.ranges)
	for i := range s.Children {
		if err := l.measure(&s.Children[i]); err != nil {
			return err
		}
	}
	l.ranges[slot] = syntax.Range{Start: l.ranges[first].Start, End: l.pos}
	return nil
}

func (l *layout) emit(b *syntax.Builder, parent syntax.NodeID, s Spec, rng syntax.Range) error {
	l.ranges = l.ranges[1:]
	id, err := b.Add(parent, s.Field, s.Kind, s.Named, rng)
	if err != nil {
		return err
	}
	for _, c := range s.Children {
		if err := l.emit(b, id, c, l.ranges[0]); err != nil {
			return err
		}
	}
	return nil
}

package syntax

import (
	"context"
	"fmt"
	"sync"

	"github.com/bethropolis/qat-editor/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// SitterGrammar parses with a tree-sitter language and copies the result into
// an arena Tree, so callers never hold native tree memory.
// Every call is a full parse; no previous tree is reused.
type SitterGrammar struct {
	mu     sync.Mutex // sitter.Parser is not safe for concurrent use
	parser *sitter.Parser
	lang   *sitter.Language
}

// NewSitterGrammar creates a grammar backed by lang.
func NewSitterGrammar(lang *sitter.Language) *SitterGrammar {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &SitterGrammar{parser: parser, lang: lang}
}

// Language returns the underlying tree-sitter language.
func (g *SitterGrammar) Language() *sitter.Language { return g.lang }

// Parse implements Grammar.
func (g *SitterGrammar) Parse(ctx context.Context, src []byte) (*Tree, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tree, err := g.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	if tree == nil {
		return nil, ErrNoTree
	}
	defer tree.Close() // native memory, the arena copy outlives it

	root := tree.RootNode()
	if root == nil {
		return nil, ErrNoTree
	}
	if root.HasError() {
		logger.DebugTagf("syntax", "tree-sitter reported syntax errors in %d bytes of input", len(src))
	}
	return Convert(root, src)
}

// Close releases the native parser.
func (g *SitterGrammar) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.parser != nil {
		g.parser.Close()
		g.parser = nil
	}
}

// Convert copies the subtree under root into a new arena Tree over src,
// recording each node's field name.
func Convert(root *sitter.Node, src []byte) (*Tree, error) {
	b := NewBuilder(src)
	c := sitter.NewTreeCursor(root)
	defer c.Close()

	// parents[len-1] is the parent of the node under the cursor
	parents := []NodeID{NoNode}
	for {
		n := c.CurrentNode()
		rng := Range{Start: int(n.StartByte()), End: int(n.EndByte())}
		id, err := b.Add(parents[len(parents)-1], c.CurrentFieldName(), n.Type(), n.IsNamed(), rng)
		if err != nil {
			return nil, err
		}

		if c.GoToFirstChild() {
			parents = append(parents, id)
			continue
		}
		if c.GoToNextSibling() {
			continue
		}
		for {
			if !c.GoToParent() {
				return b.Tree(), nil
			}
			parents = parents[:len(parents)-1]
			if c.GoToNextSibling() {
				break
			}
		}
	}
}

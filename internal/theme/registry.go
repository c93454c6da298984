// Package theme maps highlight categories to terminal styles.
package theme

import (
	"github.com/bethropolis/qat-editor/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Registry holds one style per highlight category. It is built once per
// document and read-only afterwards.
type Registry struct {
	base   tcell.Style
	gutter tcell.Style
	styles [types.NumCategories]tcell.Style
	set    [types.NumCategories]bool
}

// NewRegistry builds the qat palette on top of the terminal's default colours.
func NewRegistry() *Registry {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	r := &Registry{base: base, gutter: base.Foreground(tcell.NewHexColor(0x535353))}

	fg := func(hex int32) tcell.Style { return base.Foreground(tcell.NewHexColor(hex)) }

	r.define(types.CategoryKeyword, fg(0xff88cd))
	r.define(types.CategoryFunction, fg(0x69a5ff).Bold(true))
	r.define(types.CategoryType, fg(0xfbd37d).Bold(true))
	r.define(types.CategoryTypeBuiltin, fg(0xb29bff).Bold(true))
	r.define(types.CategoryConstant, fg(0xffb293))
	r.define(types.CategoryString, fg(0xa5ff8e))
	r.define(types.CategoryEscapeString, fg(0xc5ffff).Bold(true))
	r.define(types.CategoryDead, fg(0x535353))
	r.define(types.CategoryField, fg(0xff7272))
	r.define(types.CategoryImportant, fg(0xffffff).Bold(true))
	r.define(types.CategorySymbols, fg(0xc3c3c3))
	return r
}

func (r *Registry) define(cat types.Category, style tcell.Style) {
	r.styles[cat] = style
	r.set[cat] = true
}

// Default returns the style of unclassified text.
func (r *Registry) Default() tcell.Style { return r.base }

// Gutter returns the style of line numbers.
func (r *Registry) Gutter() tcell.Style { return r.gutter }

// Style returns the style registered for cat. CategoryNone has no style.
func (r *Registry) Style(cat types.Category) (tcell.Style, bool) {
	if cat <= types.CategoryNone || int(cat) >= types.NumCategories || !r.set[cat] {
		return r.base, false
	}
	return r.styles[cat], true
}

// StyleOrDefault returns the style for cat, or Default when cat is unstyled.
func (r *Registry) StyleOrDefault(cat types.Category) tcell.Style {
	style, _ := r.Style(cat)
	return style
}

// Len returns the number of styled categories.
func (r *Registry) Len() int {
	n := 0
	for _, ok := range r.set {
		if ok {
			n++
		}
	}
	return n
}

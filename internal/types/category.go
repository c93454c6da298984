package types

// Category is the highlight class assigned to a span of source text.
//
// The order doubles as priority: where two styled spans overlap, the one with
// the higher Category is the one displayed.
type Category int

const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryFunction
	CategoryType
	CategoryTypeBuiltin
	CategoryConstant
	CategoryString
	CategoryEscapeString
	CategoryDead
	CategoryField
	CategoryImportant
	CategorySymbols
)

// NumCategories counts every Category including CategoryNone.
const NumCategories = int(CategorySymbols) + 1

var categoryNames = [NumCategories]string{
	CategoryNone:         "none",
	CategoryKeyword:      "keyword",
	CategoryFunction:     "function",
	CategoryType:         "type",
	CategoryTypeBuiltin:  "type_builtin",
	CategoryConstant:     "constant",
	CategoryString:       "string",
	CategoryEscapeString: "escape_string",
	CategoryDead:         "dead",
	CategoryField:        "field",
	CategoryImportant:    "important",
	CategorySymbols:      "symbols",
}

// String returns the tag name, e.g. "type_builtin".
func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory is the inverse of String.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return CategoryNone, false
}

// Categories returns every styled category, in priority order.
func Categories() []Category {
	out := make([]Category, 0, NumCategories-1)
	for c := CategoryKeyword; c <= CategorySymbols; c++ {
		out = append(out, c)
	}
	return out
}

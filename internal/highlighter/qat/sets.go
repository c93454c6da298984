package qat

type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s set) has(item string) bool {
	_, ok := s[item]
	return ok
}

var keywords = newSet(
	"pub", "give", "loop", "struct", "mix", "toggle", "choice", "region", "heap", "is", "in",
	"own", "let", "meta", "define", "if", "where", "use", "copy", "move", "swap", "pre", "say",
	"not", "or", "and", "do", "skill", "type", "for", "else", "match", "var", "variadic",
	"assembly", "from", "to", "flag", "opaque", "end", "operator", "spawn", "ignore", "_",
	"default", "as", "volatile", "ok", "try",
)

var builtinTypes = newSet(
	"atomic", "i8", "i16", "i32", "i64", "i128",
	"u1", "u8", "u16", "u32", "u64", "u128",
	"f32", "f64", "f80", "f128", "f128ppc", "fbrain",
	"int", "uint", "byteptr", "float", "double", "longdouble",
	"usize", "isize", "self", "bool", "byte", "char", "uchar",
	"poly", "maybe", "result", "error", "ref", "ptr", "multi",
	"text", "slice", "future", "integer", "vec",
)

var constants = newSet("none", "null")

var importantSymbols = newSet("'", "''", "{", "}", ":=", ".", "->", "<-")

var passiveSymbols = newSet("[", "]", ":[", "::", ";", ",", ":")

// IsKeyword reports whether s is a qat keyword.
func IsKeyword(s string) bool { return keywords.has(s) }

// IsBuiltinType reports whether s names a builtin qat type.
func IsBuiltinType(s string) bool { return builtinTypes.has(s) }

// IsConstant reports whether s is a builtin constant such as none.
func IsConstant(s string) bool { return constants.has(s) }

package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"let":    KwLet,
	"var":    KwVar,
	"const":  KwConst,
	"struct": KwStruct,
	"import": KwImport,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"in":     KwIn,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
	"null":   KwNull,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Returns (Ident, false) for non-keywords.
func LookupKeyword(s string) (Kind, bool) {
	if k, ok := keywords[s]; ok {
		return k, true
	}
	return Ident, false
}

// Keywords returns the keyword spellings valid in the given position class.
// Used by completion to offer context keywords.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for s := range keywords {
		out = append(out, s)
	}
	return out
}

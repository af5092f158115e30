package types

import (
	"strings"

	"burn/internal/source"
)

// Format renders a type the way it is written in source. Struct names are
// resolved through the string interner; unknown IDs render as "invalid".
func (in *Interner) Format(id TypeID, names *source.Interner) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch tt.Kind {
	case KindUnit:
		return "Unit"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindNull:
		return "Null"
	case KindArray:
		return in.formatElem(tt.Elem, names) + "[]"
	case KindOptional:
		return in.formatElem(tt.Elem, names) + "?"
	case KindFn:
		info, ok := in.FnInfo(id)
		if !ok {
			return "fn"
		}
		var sb strings.Builder
		sb.WriteString("fn(")
		for i, p := range info.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(in.Format(p, names))
		}
		sb.WriteString(") -> ")
		if info.Result == NoTypeID {
			sb.WriteString("Unit")
		} else {
			sb.WriteString(in.Format(info.Result, names))
		}
		return sb.String()
	case KindStruct:
		info, ok := in.StructInfo(id)
		if !ok {
			return "struct"
		}
		if name, ok := names.Lookup(info.Name); ok {
			return name
		}
		return "struct"
	case KindUnion:
		info, ok := in.UnionInfo(id)
		if !ok {
			return "union"
		}
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = in.Format(m, names)
		}
		return strings.Join(parts, " | ")
	default:
		return "invalid"
	}
}

// formatElem wraps the element in parentheses when the suffix would bind
// into it, as with (A | B)[].
func (in *Interner) formatElem(elem TypeID, names *source.Interner) string {
	s := in.Format(elem, names)
	if tt, ok := in.Lookup(elem); ok && (tt.Kind == KindUnion || tt.Kind == KindFn) {
		return "(" + s + ")"
	}
	return s
}

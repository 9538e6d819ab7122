package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Label returns a user-friendly label for a TypeID, the form used inside
// backticks in diagnostics.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	if typesIn == nil {
		return "?"
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindError:
		return "<error>"
	case KindInfer:
		return "_"
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return formatIntType(tt.Width, true)
	case KindUint:
		return formatIntType(tt.Width, false)
	case KindFloat:
		return formatFloatType(tt.Width)
	case KindReference:
		var b strings.Builder
		b.WriteByte('&')
		if tt.Region != NoRegion {
			fmt.Fprintf(&b, "'r%d ", tt.Region)
		}
		if tt.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(labelDepth(typesIn, tt.Elem, depth+1))
		return b.String()
	case KindArray:
		elem := labelDepth(typesIn, tt.Elem, depth+1)
		if tt.Count == ArrayDynamicLength {
			return elem + "[]"
		}
		return elem + "[" + strconv.FormatUint(uint64(tt.Count), 10) + "]"
	case KindNamed:
		name := typesIn.NameStr(tt.Sym)
		args := typesIn.ArgList(tt.Args)
		if len(args) == 0 {
			return name
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = labelDepth(typesIn, a, depth+1)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	default:
		return "?"
	}
}

func formatIntType(w Width, signed bool) string {
	base := "int"
	if !signed {
		base = "uint"
	}
	if w == WidthAny {
		return base
	}
	return base + strconv.Itoa(int(w))
}

func formatFloatType(w Width) string {
	if w == WidthAny {
		return "float"
	}
	return "float" + strconv.Itoa(int(w))
}

// RegionLabel renders a region parameter for diagnostics.
func RegionLabel(r RegionID) string {
	if r == NoRegion {
		return "'_"
	}
	return fmt.Sprintf("'r%d", r)
}

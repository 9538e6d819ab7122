package types

import "fmt"

// TypeID uniquely identifies a type term inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// VarID identifies a solver inference variable.
type VarID uint32

// RegionID identifies a region (lifetime) parameter. NoRegion stands for
// the erased region.
type RegionID uint32

// NoRegion is the erased region: dedup keys and region-independent
// comparisons use it in place of concrete regions.
const NoRegion RegionID = 0

// NameID identifies an interned name (nominal types, assoc items).
type NameID uint32

// NoNameID marks the absence of a name.
const NoNameID NameID = 0

// ArgsID identifies an interned argument list for applied nominal types.
// Zero means "no arguments".
type ArgsID uint32

// Kind enumerates all supported kinds of type terms.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the sentinel standing for "type could not be
	// determined because of an earlier error". It unifies with anything
	// and is used to suppress diagnostic cascades.
	KindError
	// KindInfer is an unresolved inference variable.
	KindInfer
	KindUnit
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindReference
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindError:
		return "error"
	case KindInfer:
		return "infer"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindReference:
		return "reference"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// ArrayDynamicLength marks slices with unknown compile-time length.
const ArrayDynamicLength = ^uint32(0)

// Type is a compact descriptor for any supported type term. The solver
// owns these; the reporter consumes them read-only.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32   // for arrays (ArrayDynamicLength means slice)
	Width   Width    // for numeric primitives
	Mutable bool     // for references
	Region  RegionID // for references; NoRegion when erased
	Var     VarID    // for inference variables
	Sym     NameID   // for nominal types
	Args    ArgsID   // for applied nominal types
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeArray describes an array/slice of element type. Use
// ArrayDynamicLength for open-ended slices (T[]).
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeReference describes &T or &mut T in the given region.
func MakeReference(elem TypeID, region RegionID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Region: region, Mutable: mutable}
}

// MakeInfer describes an unresolved inference variable.
func MakeInfer(v VarID) Type {
	return Type{Kind: KindInfer, Var: v}
}

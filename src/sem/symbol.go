// Package sem implements the symbol model and scope stack of spec.md §4.2–§4.3:
// the typed-value lattice with size semantics and conversion rules, the two
// symbol flavors (definitions and calls), and the stack of lexical scope frames
// each definition/call lives in.
package sem

import (
	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sourcemap"
)

// TypeKind names one of the five primitive types of spec.md §3.
type TypeKind int

const (
	KindInt TypeKind = iota
	KindFloat
	KindBool
	KindChar
	KindString
)

func (k TypeKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	default:
		return "?"
	}
}

// IntVariant discriminates the storage location of an Int value.
type IntVariant int

const (
	IntUndefined IntVariant = iota
	IntLiteral
	IntMemory
	IntTemp
)

// IntValue is the compile-time-known-or-not payload of a KindInt SymbolType: a
// folded literal, a memory location (frame-pointer/static-segment relative), a
// register holding a temporary, or simply undefined.
type IntValue struct {
	Variant IntVariant
	Lit     int32
	Reg     iloc.Register
	Offset  int32
}

// Literal returns a folded int value.
func Literal(v int32) IntValue { return IntValue{Variant: IntLiteral, Lit: v} }

// Memory returns an int value addressed by reg+offset.
func Memory(reg iloc.Register, offset int32) IntValue {
	return IntValue{Variant: IntMemory, Reg: reg, Offset: offset}
}

// Temp returns an int value held live in reg.
func Temp(reg iloc.Register) IntValue { return IntValue{Variant: IntTemp, Reg: reg} }

// Undefined is the "not known at compile time, no fixed location yet" int value.
var Undefined = IntValue{Variant: IntUndefined}

// SymbolType is a tagged value carrying an optional compile-time constant,
// spec.md §4.2. Type equality (Equal) ignores the payload.
type SymbolType struct {
	Kind  TypeKind
	Int   IntValue // valid when Kind == KindInt
	Float *float64 // valid when Kind == KindFloat; nil means unknown
	Bool  *bool    // valid when Kind == KindBool; nil means unknown
	Char  *byte    // valid when Kind == KindChar; nil means unknown
	Str   *string  // valid when Kind == KindString; nil means unknown
}

func Int(v IntValue) SymbolType        { return SymbolType{Kind: KindInt, Int: v} }
func Float(v *float64) SymbolType      { return SymbolType{Kind: KindFloat, Float: v} }
func Bool(v *bool) SymbolType          { return SymbolType{Kind: KindBool, Bool: v} }
func Char(v *byte) SymbolType          { return SymbolType{Kind: KindChar, Char: v} }
func String(v *string) SymbolType      { return SymbolType{Kind: KindString, Str: v} }

// FromStr maps a type-name token to its SymbolType, spec.md §4.2. The
// open-question swap present in the Rust original ("bool" -> Char, "char" ->
// Bool) is deliberately not reproduced: each name maps to its obvious type.
func FromStr(name string) (SymbolType, error) {
	switch name {
	case "int":
		return Int(Undefined), nil
	case "float":
		return Float(nil), nil
	case "bool":
		return Bool(nil), nil
	case "char":
		return Char(nil), nil
	case "string":
		return String(nil), nil
	default:
		return SymbolType{}, diag.Lexical("invalid type declaration: " + name)
	}
}

// Equal reports whether two SymbolTypes have the same Kind, ignoring payload.
func (t SymbolType) Equal(o SymbolType) bool {
	return t.Kind == o.Kind
}

// Size returns the storage size in bytes, spec.md §3: char=1, bool=1, int=4,
// float=8, string=len(content) (0 if the content is not yet folded).
func (t SymbolType) Size() uint32 {
	switch t.Kind {
	case KindChar, KindBool:
		return 1
	case KindInt:
		return 4
	case KindFloat:
		return 8
	case KindString:
		if t.Str != nil {
			return uint32(len(*t.Str))
		}
		return 0
	default:
		return 0
	}
}

// ToBool implicitly casts t to bool, spec.md §3: int != 0 and float != 0 are
// true; char and string cannot cast to bool.
func (t SymbolType) ToBool(src *sourcemap.Source, span sourcemap.Span) (*bool, error) {
	switch t.Kind {
	case KindBool:
		return t.Bool, nil
	case KindInt:
		if t.Int.Variant == IntLiteral {
			b := t.Int.Lit != 0
			return &b, nil
		}
		return nil, nil
	case KindFloat:
		if t.Float != nil {
			b := *t.Float != 0
			return &b, nil
		}
		return nil, nil
	case KindChar:
		return nil, diag.CharToX(src, "boolean", span)
	case KindString:
		return nil, diag.StringToX(src, "boolean", span)
	default:
		return nil, nil
	}
}

// ToInt implicitly casts t to int.
func (t SymbolType) ToInt(src *sourcemap.Source, span sourcemap.Span) (IntValue, error) {
	switch t.Kind {
	case KindInt:
		return t.Int, nil
	case KindBool:
		if t.Bool != nil {
			if *t.Bool {
				return Literal(1), nil
			}
			return Literal(0), nil
		}
		return Undefined, nil
	case KindFloat:
		if t.Float != nil {
			return Literal(int32(*t.Float)), nil
		}
		return Undefined, nil
	case KindChar:
		return IntValue{}, diag.CharToX(src, "int", span)
	case KindString:
		return IntValue{}, diag.StringToX(src, "int", span)
	default:
		return Undefined, nil
	}
}

// ToFloat implicitly casts t to float.
func (t SymbolType) ToFloat(src *sourcemap.Source, span sourcemap.Span) (*float64, error) {
	switch t.Kind {
	case KindFloat:
		return t.Float, nil
	case KindInt:
		if t.Int.Variant == IntLiteral {
			f := float64(t.Int.Lit)
			return &f, nil
		}
		return nil, nil
	case KindBool:
		if t.Bool != nil {
			var f float64
			if *t.Bool {
				f = 1
			}
			return &f, nil
		}
		return nil, nil
	case KindChar:
		return nil, diag.CharToX(src, "float", span)
	case KindString:
		return nil, diag.StringToX(src, "float", span)
	default:
		return nil, nil
	}
}

// AssociateWith joins t and friend per the associate/cast table of spec.md §3.
// The result never carries a folded value. Folding is left to the
// binary-operator evaluation in package ast, which converts both operands into
// the joined type's domain and folds whenever both are known, mixed-type
// literal operands included.
func (t SymbolType) AssociateWith(friend SymbolType, src *sourcemap.Source, span sourcemap.Span) (SymbolType, error) {
	switch {
	case t.Kind == KindInt && friend.Kind == KindInt:
		return Int(Undefined), nil
	case t.Kind == KindFloat && friend.Kind == KindFloat:
		return Float(nil), nil
	case t.Kind == KindBool && friend.Kind == KindBool:
		return Bool(nil), nil
	case (t.Kind == KindBool && friend.Kind == KindInt) || (t.Kind == KindInt && friend.Kind == KindBool):
		return Int(Undefined), nil
	case (t.Kind == KindFloat && friend.Kind == KindInt) || (t.Kind == KindInt && friend.Kind == KindFloat),
		(t.Kind == KindBool && friend.Kind == KindFloat) || (t.Kind == KindFloat && friend.Kind == KindBool):
		return Float(nil), nil
	case t.Kind == KindString && friend.Kind == KindString:
		return String(nil), nil
	case t.Kind == KindChar && friend.Kind == KindChar:
		return Char(nil), nil
	case t.Kind == KindString:
		return SymbolType{}, diag.StringToX(src, "int or float", span)
	case t.Kind == KindChar:
		return SymbolType{}, diag.CharToX(src, "int or float", span)
	case friend.Kind == KindString:
		return SymbolType{}, diag.StringToX(src, "int or float", span)
	case friend.Kind == KindChar:
		return SymbolType{}, diag.CharToX(src, "int or float", span)
	default:
		return SymbolType{}, diag.Sanity("associate_with: unreachable type pair (%s, %s)", t.Kind, friend.Kind)
	}
}

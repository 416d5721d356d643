package sem

import (
	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sourcemap"
)

// DefSymbol is a declaration record installed in a scope frame, spec.md §3/§4.2.
type DefSymbol struct {
	Id           string
	Span         sourcemap.Span
	Pos          sourcemap.Position
	Type         SymbolType
	Class        SymbolClass
	Size         uint32
	OffsetSource iloc.Register
	Offset       uint32
}

// NewDefSymbol constructs a DefSymbol, deriving Pos from span via src.
func NewDefSymbol(id string, span sourcemap.Span, src *sourcemap.Source, typ SymbolType, class SymbolClass, size uint32, offsetSource iloc.Register, offset uint32) DefSymbol {
	pos, _ := src.LineCol(span)
	return DefSymbol{
		Id: id, Span: span, Pos: pos, Type: typ, Class: class,
		Size: size, OffsetSource: offsetSource, Offset: offset,
	}
}

// CastOrScream computes the DefSymbol that results from assigning/initializing d
// with a value of type friend, spec.md §4.2. It never mutates d; it returns a new
// DefSymbol with the (possibly folded) payload friend contributes. span is the
// source location of the right-hand side, used for diagnostics.
//
// checkStringSize distinguishes plain assignment (true: the slot's declared
// capacity is fixed, kind 33 if friend's content overflows it) from
// initialization (false: the slot adopts friend's incoming length, SPEC_FULL.md
// [SUPPLEMENT] 2).
func (d DefSymbol) CastOrScream(friend SymbolType, span sourcemap.Span, src *sourcemap.Source, checkStringSize bool) (DefSymbol, error) {
	switch {
	case d.Type.Kind == KindString && friend.Kind == KindString:
		if friend.Str == nil {
			out := d
			out.Type = friend
			return out, nil
		}
		incomingSize := friend.Size()
		ourSize := d.Size
		if checkStringSize && ourSize < incomingSize {
			return DefSymbol{}, diag.StringTooLarge(src, ourSize, incomingSize, span)
		}
		out := d
		out.Type = friend
		if checkStringSize {
			out.Size = ourSize
		} else {
			out.Size = incomingSize
		}
		return out, nil

	case d.Type.Kind == KindString:
		return DefSymbol{}, diag.WrongType(src, "string", friend.Kind.String(), span)

	case d.Type.Kind == KindChar && friend.Kind == KindChar:
		out := d
		out.Type = friend
		return out, nil

	case d.Type.Kind == KindChar:
		return DefSymbol{}, diag.WrongType(src, "char", friend.Kind.String(), span)

	case d.Type.Kind == KindFloat && isNumeric(friend.Kind):
		v, err := friend.ToFloat(src, span)
		if err != nil {
			return DefSymbol{}, err
		}
		out := d
		out.Type = Float(v)
		return out, nil

	case d.Type.Kind == KindInt && isNumeric(friend.Kind):
		v, err := friend.ToInt(src, span)
		if err != nil {
			return DefSymbol{}, err
		}
		out := d
		out.Type = Int(v)
		return out, nil

	case d.Type.Kind == KindBool && isNumeric(friend.Kind):
		v, err := friend.ToBool(src, span)
		if err != nil {
			return DefSymbol{}, err
		}
		out := d
		out.Type = Bool(v)
		return out, nil

	case isNumeric(d.Type.Kind) && friend.Kind == KindChar:
		return DefSymbol{}, diag.CharToX(src, d.Type.Kind.String(), span)

	case isNumeric(d.Type.Kind) && friend.Kind == KindString:
		return DefSymbol{}, diag.StringToX(src, d.Type.Kind.String(), span)

	default:
		return DefSymbol{}, diag.Sanity("cast_or_scream: unreachable type pair (%s, %s)", d.Type.Kind, friend.Kind)
	}
}

func isNumeric(k TypeKind) bool {
	return k == KindInt || k == KindFloat || k == KindBool
}

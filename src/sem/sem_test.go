package sem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vslc/src/iloc"
	"vslc/src/sourcemap"
)

var src = sourcemap.New("x")
var span = sourcemap.Span{Start: 0, End: 1}

func TestFromStrMapsEachTypeName(t *testing.T) {
	tbl := map[string]TypeKind{
		"int": KindInt, "float": KindFloat, "bool": KindBool,
		"char": KindChar, "string": KindString,
	}
	for name, kind := range tbl {
		typ, err := FromStr(name)
		require.NoError(t, err)
		assert.Equal(t, kind, typ.Kind)
	}
}

func TestFromStrDoesNotSwapBoolAndChar(t *testing.T) {
	b, err := FromStr("bool")
	require.NoError(t, err)
	assert.Equal(t, KindBool, b.Kind)

	c, err := FromStr("char")
	require.NoError(t, err)
	assert.Equal(t, KindChar, c.Kind)
}

func TestFromStrUnknownName(t *testing.T) {
	_, err := FromStr("vector3")
	assert.Error(t, err)
}

func TestAssociateWithIsSymmetric(t *testing.T) {
	pairs := []struct{ a, b SymbolType }{
		{Int(Undefined), Float(nil)},
		{Float(nil), Int(Undefined)},
		{Bool(nil), Int(Undefined)},
		{Int(Undefined), Bool(nil)},
	}
	for _, p := range pairs {
		ab, errAB := p.a.AssociateWith(p.b, src, span)
		ba, errBA := p.b.AssociateWith(p.a, src, span)
		require.NoError(t, errAB)
		require.NoError(t, errBA)
		assert.Equal(t, ab.Kind, ba.Kind)
	}
}

func TestAssociateWithStringRejected(t *testing.T) {
	s := "hi"
	_, err := String(&s).AssociateWith(Int(Undefined), src, span)
	assert.Error(t, err)
}

func TestAssociateWithCharRejected(t *testing.T) {
	c := byte('c')
	_, err := Char(&c).AssociateWith(Float(nil), src, span)
	assert.Error(t, err)
}

func TestSizeByKind(t *testing.T) {
	assert.Equal(t, uint32(4), Int(Undefined).Size())
	assert.Equal(t, uint32(8), Float(nil).Size())
	assert.Equal(t, uint32(1), Bool(nil).Size())
	assert.Equal(t, uint32(1), Char(nil).Size())
	s := "abcd"
	assert.Equal(t, uint32(4), String(&s).Size())
	assert.Equal(t, uint32(0), String(nil).Size())
}

func TestCastOrScreamSameKindIsIdempotent(t *testing.T) {
	def := NewDefSymbol("x", span, src, Int(Undefined), Variable(), 4, iloc.Register{}, 0)
	cast, err := def.CastOrScream(Int(Literal(5)), span, src, false)
	require.NoError(t, err)
	assert.Equal(t, KindInt, cast.Type.Kind)
	assert.Equal(t, int32(5), cast.Type.Int.Lit)

	again, err := cast.CastOrScream(Int(Literal(5)), span, src, false)
	require.NoError(t, err)
	assert.Equal(t, cast, again)
}

func TestCastOrScreamStringTooLargeOnAssignment(t *testing.T) {
	small := "hi"
	def := NewDefSymbol("s", span, src, String(&small), Variable(), 2, iloc.Register{}, 0)
	big := "hello"
	_, err := def.CastOrScream(String(&big), span, src, true)
	assert.Error(t, err)
}

func TestCastOrScreamStringGrowsOnInit(t *testing.T) {
	small := "hi"
	def := NewDefSymbol("s", span, src, String(&small), Variable(), 2, iloc.Register{}, 0)
	big := "hello"
	cast, err := def.CastOrScream(String(&big), span, src, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), cast.Size)
}

func TestCastOrScreamCharToIntRejected(t *testing.T) {
	def := NewDefSymbol("i", span, src, Int(Undefined), Variable(), 4, iloc.Register{}, 0)
	c := byte('x')
	_, err := def.CastOrScream(Char(&c), span, src, false)
	assert.Error(t, err)
}

func TestCastOrScreamFoldsBoolIntoInt(t *testing.T) {
	def := NewDefSymbol("i", span, src, Int(Undefined), Variable(), 4, iloc.Register{}, 0)
	b := true
	cast, err := def.CastOrScream(Bool(&b), span, src, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), cast.Type.Int.Lit)
}

func TestScopeStackDuplicateDeclaration(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	def := NewDefSymbol("x", span, src, Int(Undefined), Variable(), 4, iloc.Register{}, 0)
	require.NoError(t, s.CheckDuplicate(src, "x", span))
	require.NoError(t, s.AddDef(&def))
	assert.Error(t, s.CheckDuplicate(src, "x", span))
}

func TestScopeStackUndeclaredLookup(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	_, err := s.GetPreviousDef(src, "missing", span, ClassVariable)
	assert.Error(t, err)
}

func TestScopeStackClassMisuseOnLookup(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	def := NewDefSymbol("f", span, src, Int(Undefined), Fn(nil), 0, iloc.Register{}, 0)
	require.NoError(t, s.AddDef(&def))
	_, err := s.GetPreviousDef(src, "f", span, ClassVariable)
	assert.Error(t, err)
}

func TestScopeStackLooksOutward(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	outer := NewDefSymbol("g", span, src, Int(Undefined), Variable(), 4, iloc.Register{}, 0)
	require.NoError(t, s.AddDef(&outer))
	s.Push(nil, nil, "")
	found, err := s.GetPreviousDef(src, "g", span, ClassVariable)
	require.NoError(t, err)
	assert.Equal(t, "g", found.Id)
}

func TestScopeStackPopEmptyFails(t *testing.T) {
	s := NewScopeStack()
	assert.Error(t, s.Pop())
}

func TestScopeStackOffsetsAccumulate(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	o1, err := s.AddOffset(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), o1)
	o2, err := s.AddOffset(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), o2)
	cur, err := s.GetOffset()
	require.NoError(t, err)
	assert.Equal(t, uint32(12), cur)
}

func TestScopeStackEpilogueAndFnNameInherited(t *testing.T) {
	s := NewScopeStack()
	epilogue := iloc.NewCode().NewLabel()
	s.Push(&SymbolType{Kind: KindInt}, &epilogue, "compute")
	s.Push(nil, nil, "") // nested block scope, e.g. an if-body

	got, err := s.GetEpilogueLabel()
	require.NoError(t, err)
	assert.Equal(t, epilogue, got)

	name, err := s.GetCurrentScopeFnName()
	require.NoError(t, err)
	assert.Equal(t, "compute", name)
}

func TestScopeStackPushPopCallRoundTrips(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	call := NewCallSymbol("a", span, src, Int(Literal(1)))
	require.NoError(t, s.PushCall(call))
	got, err := s.PopCall()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Id)
	assert.Equal(t, int32(1), got.Type.Int.Lit)
}

func TestScopeStackPopCallEmptyFails(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	_, err := s.PopCall()
	assert.Error(t, err)
}

func TestScopeStackPushCallNoScopeFails(t *testing.T) {
	s := NewScopeStack()
	err := s.PushCall(NewCallSymbol("a", span, src, Int(Undefined)))
	assert.Error(t, err)
}

func TestScopeStackNoEnclosingFunctionFails(t *testing.T) {
	s := NewScopeStack()
	s.Push(nil, nil, "")
	_, err := s.GetEpilogueLabel()
	assert.Error(t, err)
	_, err = s.GetCurrentScopeFnName()
	assert.Error(t, err)
}

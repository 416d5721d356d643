package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sem"
	"vslc/src/sourcemap"
)

var src = sourcemap.New(strings.Repeat("x", 200))

func span(start, end int) sourcemap.Span { return sourcemap.Span{Start: start, End: end} }

func TestGlobalIntegerDeclaration(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	n := GlobalVarDef(span(0, 5), "x", "int")
	_, err := n.Evaluate(code, scope, src)
	require.NoError(t, err)

	def, err := scope.GetPreviousDef(src, "x", span(0, 1), sem.ClassVariable)
	require.NoError(t, err)
	assert.Equal(t, sem.KindInt, def.Type.Kind)
	assert.Equal(t, sem.IntUndefined, def.Type.Int.Variant)
	assert.Equal(t, uint32(4), def.Size)
	assert.Equal(t, iloc.BSS, def.OffsetSource)
	assert.Equal(t, uint32(0), def.Offset)
}

func TestRedeclarationFails(t *testing.T) {
	code := iloc.NewCode()
	root := Program(span(0, 20),
		GlobalVarDef(span(0, 5), "x", "int"),
		GlobalVarDef(span(6, 11), "x", "int"),
	)
	_, err := root.Evaluate(code, sem.NewScopeStack(), src)
	require.Error(t, err)
	assert.Equal(t, 11, diag.ExitCode(err))
}

func TestStringAssignmentTooLarge(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDefInitLit(span(0, 5), "s", "string", LiteralString(span(6, 9), "hi"))
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	set := VarSet(span(10, 20), "s", LiteralString(span(15, 22), "hello"))
	_, err = set.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 33, diag.ExitCode(err))
}

func TestStringAssignmentExactSizeSucceeds(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDefInitLit(span(0, 5), "s", "string", LiteralString(span(6, 9), "abc"))
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	set := VarSet(span(10, 20), "s", LiteralString(span(15, 20), "xyz"))
	_, err = set.Evaluate(code, scope, src)
	require.NoError(t, err)
}

func TestShiftOverflowFails(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDef(span(0, 5), "x", "int")
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	shift := VarLeftShift(span(6, 15), "x", LiteralInt(span(12, 14), 17))
	_, err = shift.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 53, diag.ExitCode(err))
}

func TestShiftExactlySixteenSucceeds(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDef(span(0, 5), "x", "int")
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	shift := VarLeftShift(span(6, 15), "x", LiteralInt(span(12, 14), 16))
	_, err = shift.Evaluate(code, scope, src)
	require.NoError(t, err)
}

func TestCallArityMissingArgsFails(t *testing.T) {
	code := iloc.NewCode()
	root := Program(span(0, 60),
		FnDef(span(0, 30), "f", "int",
			[]Param{{Name: "a", TypeName: "int"}, {Name: "b", TypeName: "int"}},
			CommandBlock(span(10, 28), Return(span(20, 27), LiteralInt(span(24, 26), 0)))),
		FnDef(span(31, 60), "main", "int",
			nil,
			CommandBlock(span(40, 58),
				FnCall(span(45, 50), "f", LiteralInt(span(47, 48), 1)),
				Return(span(51, 57), LiteralInt(span(55, 56), 0)))),
	)
	_, err := root.Evaluate(code, sem.NewScopeStack(), src)
	require.Error(t, err)
	assert.Equal(t, 40, diag.ExitCode(err))
}

func TestCallArityExcessArgsFails(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	fn := FnDef(span(0, 30), "f", "int", []Param{{Name: "a", TypeName: "int"}},
		CommandBlock(span(10, 28), Return(span(20, 27), LiteralInt(span(24, 26), 0))))
	_, err := fn.Evaluate(code, scope, src)
	require.NoError(t, err)

	call := FnCall(span(31, 40), "f", LiteralInt(span(33, 34), 1), LiteralInt(span(36, 37), 2))
	_, err = call.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 41, diag.ExitCode(err))
}

func TestMainEntryInstructionSequence(t *testing.T) {
	code := iloc.NewCode()
	root := Program(span(0, 40),
		FnDef(span(0, 40), "main", "int", nil,
			CommandBlock(span(20, 38), Return(span(22, 30), LiteralInt(span(29, 30), 0)))),
	)
	_, err := root.Evaluate(code, sem.NewScopeStack(), src)
	require.NoError(t, err)
	require.NoError(t, code.PayPromises())
	out, err := code.String()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 10)

	// boot preamble: 9 instructions, ending in jumpI -> L0 and halt.
	assert.Equal(t, "jumpI -> L0", lines[7])
	assert.Equal(t, "halt", lines[8])

	// main's prologue, spec.md §8 scenario 6: L0: nop, i2i rsp => rfp,
	// addI rsp, 16 => rsp (no parameters, so the frame is just the header).
	assert.Equal(t, "L0: nop", lines[9])
	assert.Equal(t, "i2i rsp => rfp", lines[10])
	assert.Equal(t, "addI rsp, 16 => rsp", lines[11])
}

func TestConstantFoldingArithmetic(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDef(span(0, 5), "x", "int")
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	rhs := Binary(span(10, 20), BinAdd,
		LiteralInt(span(10, 11), 2),
		Binary(span(14, 19), BinMul, LiteralInt(span(14, 15), 3), LiteralInt(span(18, 19), 4)))
	set := VarSet(span(5, 20), "x", rhs)
	res, err := set.Evaluate(code, scope, src)
	require.NoError(t, err)
	assert.Equal(t, int32(14), res.Type.Int.Lit)
}

func TestVectorIndexBoundary(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	vec := GlobalVecDef(span(0, 10), "v", "int", LiteralInt(span(6, 7), 3))
	_, err := vec.Evaluate(code, scope, src)
	require.NoError(t, err)

	lastIndex := VecAccess(span(11, 15), "v", LiteralInt(span(13, 14), 2))
	_, err = lastIndex.Evaluate(code, scope, src)
	require.NoError(t, err)

	outOfRange := VecAccess(span(16, 20), "v", LiteralInt(span(18, 19), 3))
	_, err = outOfRange.Evaluate(code, scope, src)
	require.Error(t, err)
}

func TestFloatModuloFoldsAsTrueRemainder(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	expr := Binary(span(0, 10), BinMod, LiteralFloat(span(0, 3), 5.5), LiteralFloat(span(6, 9), 2.0))
	res, err := expr.Evaluate(code, scope, src)
	require.NoError(t, err)
	assert.Equal(t, 1.5, *res.Type.Float)
}

func TestDivisionByLiteralZeroFoldsToZero(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	expr := Binary(span(0, 10), BinDiv, LiteralInt(span(0, 1), 7), LiteralInt(span(4, 5), 0))
	res, err := expr.Evaluate(code, scope, src)
	require.NoError(t, err)
	assert.Equal(t, int32(0), res.Type.Int.Lit)
}

func TestUndeclaredVariableUse(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	n := VarInvoke(span(0, 3), "nope")
	_, err := n.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 10, diag.ExitCode(err))
}

func TestClassMisuseCallingVariable(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	decl := LocalVarDef(span(0, 5), "x", "int")
	_, err := decl.Evaluate(code, scope, src)
	require.NoError(t, err)

	call := FnCall(span(6, 10), "x")
	_, err = call.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 20, diag.ExitCode(err))
}

func TestFunctionStringParameterRejected(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	fn := FnDef(span(0, 30), "greet", "int", []Param{{Name: "name", TypeName: "string"}},
		CommandBlock(span(10, 28)))
	_, err := fn.Evaluate(code, scope, src)
	require.Error(t, err)
	assert.Equal(t, 43, diag.ExitCode(err))
}

func TestTernaryFoldsOnKnownCondition(t *testing.T) {
	code := iloc.NewCode()
	scope := sem.NewScopeStack()
	scope.Push(nil, nil, "")

	n := Ternary(span(0, 20),
		LiteralBool(span(0, 4), true),
		LiteralInt(span(7, 8), 1),
		LiteralInt(span(11, 12), 2))
	res, err := n.Evaluate(code, scope, src)
	require.NoError(t, err)
	assert.Equal(t, int32(1), res.Type.Int.Lit)
}

func TestPrintIndentsChildren(t *testing.T) {
	n := Program(span(0, 10), GlobalVarDef(span(0, 5), "x", "int"))
	out := n.Print(0)
	assert.Contains(t, out, "Program")
	assert.Contains(t, out, "  GlobalVarDef x: int")
}

func TestDotRendersLabelsAndEdges(t *testing.T) {
	n := Program(span(0, 10), GlobalVarDef(span(0, 5), "x", "int"))
	out := n.Dot()
	assert.Contains(t, out, "digraph ast {")
	assert.Contains(t, out, "n0 -> n1;")
	assert.Contains(t, out, `label="Program"`)
}

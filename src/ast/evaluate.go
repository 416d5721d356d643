package ast

import (
	"fmt"

	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sem"
	"vslc/src/sourcemap"
)

// EvalResult is what Evaluate returns: the folded/inferred type plus the span
// it came from. This replaces the original's operand-stack side channel
// (spec.md §9's redesign note for "operand stack on the scope frame") — a
// caller that needs the value a child produced reads it straight off the
// returned EvalResult instead of popping a parallel CallSymbol stack.
type EvalResult struct {
	Type sem.SymbolType
	Span sourcemap.Span
}

// Evaluate walks n: evaluates children left-to-right, performs n's own
// semantic checks and folding, appends any ILOC it owns, and returns the
// resulting type (spec.md §4.5). Errors short-circuit the walk.
func (n *Node) Evaluate(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	switch n.Type {
	case NodeProgram:
		return n.evalProgram(code, scope, src)
	case NodeGlobalVarDef:
		return n.evalGlobalVarDef(code, scope, src)
	case NodeGlobalVecDef:
		return n.evalGlobalVecDef(code, scope, src)
	case NodeFnDef:
		return n.evalFnDef(code, scope, src)
	case NodeLocalVarDef:
		return n.evalLocalVarDef(code, scope, src)
	case NodeLocalVarDefInitId, NodeLocalVarDefInitLit:
		return n.evalLocalVarDefInit(code, scope, src)
	case NodeVarSet:
		return n.evalVarSet(code, scope, src)
	case NodeVecSet:
		return n.evalVecSet(code, scope, src)
	case NodeVarLeftShift, NodeVarRightShift:
		return n.evalVarShift(code, scope, src)
	case NodeVecLeftShift, NodeVecRightShift:
		return n.evalVecShift(code, scope, src)
	case NodeInput:
		return n.evalInput(code, scope, src)
	case NodeOutputId:
		return n.evalOutputId(code, scope, src)
	case NodeOutputLit:
		return n.evalOutputLit(code, scope, src)
	case NodeContinue, NodeBreak:
		return EvalResult{Span: n.Span}, nil
	case NodeReturn:
		return n.evalReturn(code, scope, src)
	case NodeFnCall:
		return n.evalFnCall(code, scope, src)
	case NodeIf:
		return n.evalIf(code, scope, src)
	case NodeIfElse:
		return n.evalIfElse(code, scope, src)
	case NodeFor:
		return n.evalFor(code, scope, src)
	case NodeWhile:
		return n.evalWhile(code, scope, src)
	case NodeCommandBlock:
		return n.evalCommandBlock(code, scope, src)
	case NodeTernary:
		return n.evalTernary(code, scope, src)
	case NodeBinary:
		return n.evalBinary(code, scope, src)
	case NodeUnary:
		return n.evalUnary(code, scope, src)
	case NodeVarInvoke:
		return n.evalVarInvoke(code, scope, src)
	case NodeVecInvoke:
		return n.evalVecInvoke(code, scope, src)
	case NodeVecAccess:
		return n.evalVecAccess(code, scope, src)
	case NodeLiteralInt:
		return EvalResult{Type: sem.Int(sem.Literal(n.Data.(int32))), Span: n.Span}, nil
	case NodeLiteralFloat:
		v := n.Data.(float64)
		return EvalResult{Type: sem.Float(&v), Span: n.Span}, nil
	case NodeLiteralBool:
		v := n.Data.(bool)
		return EvalResult{Type: sem.Bool(&v), Span: n.Span}, nil
	case NodeLiteralChar:
		v := n.Data.(byte)
		return EvalResult{Type: sem.Char(&v), Span: n.Span}, nil
	case NodeLiteralString:
		v := n.Data.(string)
		return EvalResult{Type: sem.String(&v), Span: n.Span}, nil
	default:
		return EvalResult{}, diag.Sanity("Evaluate: unhandled node type %s", n.Type)
	}
}

func evalSequence(nodes []*Node, code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) error {
	for _, stmt := range nodes {
		if stmt == nil {
			continue
		}
		if _, err := stmt.Evaluate(code, scope, src); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) evalProgram(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	scope.Push(nil, nil, "")
	if err := evalSequence(n.Children, code, scope, src); err != nil {
		return EvalResult{}, err
	}
	if err := scope.Pop(); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalGlobalVarDef(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(declData)
	if err := scope.CheckDuplicate(src, d.Name, n.Span); err != nil {
		return EvalResult{}, err
	}
	typ, err := sem.FromStr(d.TypeName)
	if err != nil {
		return EvalResult{}, err
	}
	size := typ.Size()
	offset, err := scope.AddOffset(size)
	if err != nil {
		return EvalResult{}, err
	}
	def := sem.NewDefSymbol(d.Name, n.Span, src, typ, sem.Variable(), size, iloc.BSS, offset)
	if err := scope.AddDef(&def); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: typ, Span: n.Span}, nil
}

func (n *Node) evalGlobalVecDef(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(declData)
	if err := scope.CheckDuplicate(src, d.Name, n.Span); err != nil {
		return EvalResult{}, err
	}
	if d.TypeName == "string" {
		return EvalResult{}, diag.StringVector(src, n.Span)
	}
	eltType, err := sem.FromStr(d.TypeName)
	if err != nil {
		return EvalResult{}, err
	}
	lenRes, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if lenRes.Type.Kind != sem.KindInt || lenRes.Type.Int.Variant != sem.IntLiteral {
		return EvalResult{}, diag.Sanity("GlobalVecDef: vector length must be a compile-time integer literal")
	}
	length := int(lenRes.Type.Int.Lit)
	eltSize := eltType.Size()
	totalSize := uint32(length) * eltSize
	offset, err := scope.AddOffset(totalSize)
	if err != nil {
		return EvalResult{}, err
	}
	def := sem.NewDefSymbol(d.Name, n.Span, src, eltType, sem.Vector(), totalSize, iloc.BSS, offset)
	if err := scope.AddDef(&def); err != nil {
		return EvalResult{}, err
	}
	// Install a per-index pseudo-symbol for every element, spec.md §3(iv) /
	// SPEC_FULL.md [SUPPLEMENT] 5, so a literal-indexed VecAccess can bounds
	// check without re-deriving the vector's length.
	for i := 0; i < length; i++ {
		elemOffset := offset + uint32(i)*eltSize
		elemDef := sem.NewDefSymbol(fmt.Sprintf("%s[%d]", d.Name, i), n.Span, src, eltType, sem.Variable(), eltSize, iloc.BSS, elemOffset)
		if err := scope.AddDef(&elemDef); err != nil {
			return EvalResult{}, err
		}
	}
	return EvalResult{Type: eltType, Span: n.Span}, nil
}

func (n *Node) evalFnDef(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(fnDefData)
	if err := scope.CheckDuplicate(src, d.Name, n.Span); err != nil {
		return EvalResult{}, err
	}
	retType, err := sem.FromStr(d.TypeName)
	if err != nil {
		return EvalResult{}, err
	}

	semParams := make([]sem.Parameter, 0, len(d.Params))
	paramTypes := make([]sem.SymbolType, 0, len(d.Params))
	for _, p := range d.Params {
		pt, err := sem.FromStr(p.TypeName)
		if err != nil {
			return EvalResult{}, err
		}
		if pt.Kind == sem.KindString {
			return EvalResult{}, diag.FunctionString(d.Name)
		}
		semParams = append(semParams, sem.Parameter{Name: p.Name, Type: pt})
		paramTypes = append(paramTypes, pt)
	}

	// The function's own entry label is allocated before its epilogue label,
	// so that for the first function defined in a program (main, by spec.md
	// §8 scenario 6) the entry carries the lowest label number.
	fnLabel := code.AddFnLabel(d.Name)
	epilogue := code.NewLabel()
	scope.Push(&retType, &epilogue, d.Name)

	offset := uint32(16) // activation-record header: return addr, saved rsp, saved rfp
	for i, p := range d.Params {
		size := paramTypes[i].Size()
		def := sem.NewDefSymbol(p.Name, n.Span, src, paramTypes[i], sem.Variable(), size, iloc.FP, offset)
		if err := scope.AddDef(&def); err != nil {
			return EvalResult{}, err
		}
		offset += size
	}
	frameSize := offset

	code.Push(iloc.Labeled(fnLabel, iloc.NopOp()))
	code.Push(iloc.Unlabeled(iloc.I2iOp(iloc.SP, iloc.FP)))
	code.Push(iloc.Unlabeled(iloc.AddIOp(iloc.SP, int32(frameSize), iloc.SP)))

	if err := evalSequence(n.Children[0].Children, code, scope, src); err != nil {
		return EvalResult{}, err
	}

	retReg := code.NewRegister()
	code.Push(iloc.Labeled(epilogue, iloc.LoadAIOp(iloc.FP, 0, retReg)))
	spReg := code.NewRegister()
	code.Push(iloc.Unlabeled(iloc.LoadAIOp(iloc.FP, 4, spReg)))
	fpReg := code.NewRegister()
	code.Push(iloc.Unlabeled(iloc.LoadAIOp(iloc.FP, 8, fpReg)))
	code.Push(iloc.Unlabeled(iloc.I2iOp(spReg, iloc.SP)))
	code.Push(iloc.Unlabeled(iloc.I2iOp(fpReg, iloc.FP)))
	code.Push(iloc.Unlabeled(iloc.JumpOp(retReg)))

	if err := scope.Pop(); err != nil {
		return EvalResult{}, err
	}

	def := sem.NewDefSymbol(d.Name, n.Span, src, retType, sem.Fn(semParams), 0, iloc.Register{}, 0)
	if err := scope.AddDef(&def); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: retType, Span: n.Span}, nil
}

func (n *Node) evalLocalVarDef(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(declData)
	if err := scope.CheckDuplicate(src, d.Name, n.Span); err != nil {
		return EvalResult{}, err
	}
	typ, err := sem.FromStr(d.TypeName)
	if err != nil {
		return EvalResult{}, err
	}
	size := typ.Size()
	offset, err := scope.AddOffset(size)
	if err != nil {
		return EvalResult{}, err
	}
	def := sem.NewDefSymbol(d.Name, n.Span, src, typ, sem.Variable(), size, iloc.FP, offset)
	if err := scope.AddDef(&def); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: typ, Span: n.Span}, nil
}

// evalLocalVarDefInit handles both NodeLocalVarDefInitId and
// NodeLocalVarDefInitLit: spec.md treats them identically once the
// initializer expression (an identifier read or a literal) is evaluated.
func (n *Node) evalLocalVarDefInit(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(declData)
	if err := scope.CheckDuplicate(src, d.Name, n.Span); err != nil {
		return EvalResult{}, err
	}
	typ, err := sem.FromStr(d.TypeName)
	if err != nil {
		return EvalResult{}, err
	}
	initRes, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	size := typ.Size()
	offset, err := scope.AddOffset(size)
	if err != nil {
		return EvalResult{}, err
	}
	def := sem.NewDefSymbol(d.Name, n.Span, src, typ, sem.Variable(), size, iloc.FP, offset)
	cast, err := def.CastOrScream(initRes.Type, initRes.Span, src, false)
	if err != nil {
		return EvalResult{}, err
	}
	if err := scope.AddDef(&cast); err != nil {
		return EvalResult{}, err
	}
	if cast.Type.Kind == sem.KindInt {
		if err := storeInt(code, initRes.Type.Int, iloc.FP, int32(offset)); err != nil {
			return EvalResult{}, err
		}
	}
	return EvalResult{Type: cast.Type, Span: n.Span}, nil
}

func (n *Node) evalVarSet(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	rhs, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVariable)
	if err != nil {
		return EvalResult{}, err
	}
	cast, err := def.CastOrScream(rhs.Type, rhs.Span, src, true)
	if err != nil {
		return EvalResult{}, err
	}
	if cast.Type.Kind == sem.KindInt {
		if err := storeInt(code, rhs.Type.Int, def.OffsetSource, int32(def.Offset)); err != nil {
			return EvalResult{}, err
		}
	}
	*def = cast
	return EvalResult{Type: cast.Type, Span: n.Span}, nil
}

func (n *Node) evalVecSet(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	idxRes, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	rhs, err := n.Children[1].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	vec, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVector)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := idxRes.Type.ToInt(src, idxRes.Span); err != nil {
		return EvalResult{}, err
	}
	elemDef := vec
	if idxRes.Type.Kind == sem.KindInt && idxRes.Type.Int.Variant == sem.IntLiteral {
		elemDef = scope.GetPreviousDefStringNoError(fmt.Sprintf("%s[%d]", d.Name, idxRes.Type.Int.Lit))
		if elemDef == nil {
			return EvalResult{}, diag.WrongType(src, "in-range vector index", fmt.Sprintf("%s[%d]", d.Name, idxRes.Type.Int.Lit), idxRes.Span)
		}
	}
	cast, err := elemDef.CastOrScream(rhs.Type, rhs.Span, src, true)
	if err != nil {
		return EvalResult{}, err
	}
	if cast.Type.Kind == sem.KindInt && elemDef != vec {
		// Only a literal index resolves to a concrete element offset we can
		// store into directly; a dynamic index is checked but its store is
		// left to a real address-computation backend (no StoreAO in the
		// operation subset spec.md §4.4 names).
		if err := storeInt(code, rhs.Type.Int, elemDef.OffsetSource, int32(elemDef.Offset)); err != nil {
			return EvalResult{}, err
		}
		*elemDef = cast
	}
	return EvalResult{Type: cast.Type, Span: n.Span}, nil
}

func (n *Node) evalVarShift(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVariable)
	if err != nil {
		return EvalResult{}, err
	}
	if err := n.checkShiftAmount(code, scope, src, n.Children[0]); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: def.Type, Span: n.Span}, nil
}

func (n *Node) evalVecShift(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	idxRes, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := idxRes.Type.ToInt(src, idxRes.Span); err != nil {
		return EvalResult{}, err
	}
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVector)
	if err != nil {
		return EvalResult{}, err
	}
	if err := n.checkShiftAmount(code, scope, src, n.Children[1]); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: def.Type, Span: n.Span}, nil
}

// checkShiftAmount evaluates the shift-amount operand and enforces spec.md
// §8's boundary: a literal int amount of at most 16 is accepted, 17 fails
// (kind 53). No shift Op exists in the operation subset of spec.md §4.4, so
// this is semantic-only.
func (n *Node) checkShiftAmount(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source, amount *Node) error {
	res, err := amount.Evaluate(code, scope, src)
	if err != nil {
		return err
	}
	if res.Type.Kind == sem.KindInt && res.Type.Int.Variant == sem.IntLiteral {
		if res.Type.Int.Lit > 16 {
			return diag.ShiftAmount(int(res.Type.Int.Lit))
		}
	}
	return nil
}

func (n *Node) evalInput(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVariable)
	if err != nil {
		return EvalResult{}, err
	}
	if def.Type.Kind != sem.KindInt && def.Type.Kind != sem.KindFloat {
		return EvalResult{}, diag.InputType()
	}
	return EvalResult{Type: def.Type, Span: n.Span}, nil
}

func (n *Node) evalOutputId(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVariable)
	if err != nil {
		return EvalResult{}, err
	}
	if def.Type.Kind != sem.KindInt && def.Type.Kind != sem.KindFloat {
		return EvalResult{}, diag.OutputType()
	}
	return EvalResult{Type: def.Type, Span: n.Span}, nil
}

func (n *Node) evalOutputLit(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	res, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if res.Type.Kind != sem.KindInt && res.Type.Kind != sem.KindFloat {
		return EvalResult{}, diag.OutputType()
	}
	return res, nil
}

func (n *Node) evalReturn(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	fnType, err := scope.GetCurrentScopeType()
	if err != nil {
		return EvalResult{}, err
	}
	if len(n.Children) > 0 {
		res, err := n.Children[0].Evaluate(code, scope, src)
		if err != nil {
			return EvalResult{}, err
		}
		if res.Type.Kind == sem.KindString {
			fnName, _ := scope.GetCurrentScopeFnName()
			return EvalResult{}, diag.FunctionString(fnName)
		}
		if _, err := res.Type.AssociateWith(fnType, src, res.Span); err != nil {
			return EvalResult{}, diag.ReturnType()
		}
	}
	epilogue, err := scope.GetEpilogueLabel()
	if err != nil {
		return EvalResult{}, err
	}
	code.Push(iloc.Unlabeled(iloc.JumpIOp(iloc.LabelAddr(epilogue))))
	return EvalResult{Type: fnType, Span: n.Span}, nil
}

func (n *Node) evalFnCall(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	fn, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassFunction)
	if err != nil {
		return EvalResult{}, err
	}
	params := fn.Class.Params
	if len(n.Children) < len(params) {
		return EvalResult{}, diag.MissingArgs(d.Name)
	}
	if len(n.Children) > len(params) {
		return EvalResult{}, diag.ExcessArgs(d.Name)
	}
	for i, arg := range n.Children {
		res, err := arg.Evaluate(code, scope, src)
		if err != nil {
			return EvalResult{}, err
		}
		want := params[i].Type
		if res.Type.Kind == sem.KindString || want.Kind == sem.KindString {
			return EvalResult{}, diag.FunctionString(d.Name)
		}
		if (res.Type.Kind == sem.KindChar) != (want.Kind == sem.KindChar) {
			return EvalResult{}, diag.WrongTypeArgs(d.Name, i+1)
		}
	}
	return EvalResult{Type: fn.Type, Span: n.Span}, nil
}

func (n *Node) evalIf(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	cond, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := cond.Type.ToBool(src, cond.Span); err != nil {
		return EvalResult{}, err
	}
	if _, err := n.Children[1].Evaluate(code, scope, src); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalIfElse(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	cond, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := cond.Type.ToBool(src, cond.Span); err != nil {
		return EvalResult{}, err
	}
	if _, err := n.Children[1].Evaluate(code, scope, src); err != nil {
		return EvalResult{}, err
	}
	if _, err := n.Children[2].Evaluate(code, scope, src); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalFor(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	scope.Push(nil, nil, "")
	defer scope.Pop()
	init, cond, iter, body := n.Children[0], n.Children[1], n.Children[2], n.Children[3]
	if init != nil {
		if _, err := init.Evaluate(code, scope, src); err != nil {
			return EvalResult{}, err
		}
	}
	if cond != nil {
		condRes, err := cond.Evaluate(code, scope, src)
		if err != nil {
			return EvalResult{}, err
		}
		if _, err := condRes.Type.ToBool(src, condRes.Span); err != nil {
			return EvalResult{}, err
		}
	}
	if iter != nil {
		if _, err := iter.Evaluate(code, scope, src); err != nil {
			return EvalResult{}, err
		}
	}
	if _, err := body.Evaluate(code, scope, src); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalWhile(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	cond, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := cond.Type.ToBool(src, cond.Span); err != nil {
		return EvalResult{}, err
	}
	if _, err := n.Children[1].Evaluate(code, scope, src); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalCommandBlock(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	scope.Push(nil, nil, "")
	if err := evalSequence(n.Children, code, scope, src); err != nil {
		scope.Pop()
		return EvalResult{}, err
	}
	if err := scope.Pop(); err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Span: n.Span}, nil
}

func (n *Node) evalTernary(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	cond, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	folded, err := cond.Type.ToBool(src, cond.Span)
	if err != nil {
		return EvalResult{}, err
	}
	t, err := n.Children[1].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	f, err := n.Children[2].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if folded != nil {
		if *folded {
			return t, nil
		}
		return f, nil
	}
	joined, err := t.Type.AssociateWith(f.Type, src, n.Span)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: joined, Span: n.Span}, nil
}

func (n *Node) evalVarInvoke(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVariable)
	if err != nil {
		return EvalResult{}, err
	}
	typ := def.Type
	if typ.Kind == sem.KindInt {
		typ = sem.Int(sem.Memory(def.OffsetSource, int32(def.Offset)))
	}
	return EvalResult{Type: typ, Span: n.Span}, nil
}

func (n *Node) evalVecInvoke(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	def, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVector)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: def.Type, Span: n.Span}, nil
}

func (n *Node) evalVecAccess(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(nameData)
	vec, err := scope.GetPreviousDef(src, d.Name, n.Span, sem.ClassVector)
	if err != nil {
		return EvalResult{}, err
	}
	idxRes, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	if _, err := idxRes.Type.ToInt(src, idxRes.Span); err != nil {
		return EvalResult{}, err
	}
	if idxRes.Type.Kind == sem.KindInt && idxRes.Type.Int.Variant == sem.IntLiteral {
		elem := scope.GetPreviousDefStringNoError(fmt.Sprintf("%s[%d]", d.Name, idxRes.Type.Int.Lit))
		if elem == nil {
			return EvalResult{}, diag.WrongType(src, "in-range vector index", fmt.Sprintf("%s[%d]", d.Name, idxRes.Type.Int.Lit), idxRes.Span)
		}
		typ := elem.Type
		if typ.Kind == sem.KindInt {
			typ = sem.Int(sem.Memory(elem.OffsetSource, int32(elem.Offset)))
		}
		return EvalResult{Type: typ, Span: n.Span}, nil
	}
	return EvalResult{Type: vec.Type, Span: n.Span}, nil
}

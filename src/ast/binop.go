package ast

import (
	"math"

	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sem"
	"vslc/src/sourcemap"
)

func (n *Node) evalBinary(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(binData)
	left, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	right, err := n.Children[1].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}

	switch d.Op {
	case BinOr, BinAnd:
		return evalBoolBinary(d.Op, left, right, src)
	case BinBitOr, BinBitXor, BinBitAnd:
		return evalIntOnlyBinary(code, d.Op, left, right, src, n.Span)
	case BinAdd, BinSub, BinMul, BinDiv, BinMod:
		return evalArithBinary(code, d.Op, left, right, src, n.Span)
	case BinEq, BinNe, BinLt, BinLe, BinGt, BinGe:
		return evalComparisonBinary(d.Op, left, right, src, n.Span)
	default:
		return EvalResult{}, diag.Sanity("evalBinary: unknown operator %v", d.Op)
	}
}

func evalBoolBinary(op BinOp, left, right EvalResult, src *sourcemap.Source) (EvalResult, error) {
	lb, err := left.Type.ToBool(src, left.Span)
	if err != nil {
		return EvalResult{}, err
	}
	rb, err := right.Type.ToBool(src, right.Span)
	if err != nil {
		return EvalResult{}, err
	}
	if lb == nil || rb == nil {
		return EvalResult{Type: sem.Bool(nil)}, nil
	}
	var v bool
	if op == BinOr {
		v = *lb || *rb
	} else {
		v = *lb && *rb
	}
	return EvalResult{Type: sem.Bool(&v)}, nil
}

func evalIntOnlyBinary(code *iloc.Code, op BinOp, left, right EvalResult, src *sourcemap.Source, span sourcemap.Span) (EvalResult, error) {
	li, err := left.Type.ToInt(src, left.Span)
	if err != nil {
		return EvalResult{}, err
	}
	ri, err := right.Type.ToInt(src, right.Span)
	if err != nil {
		return EvalResult{}, err
	}
	result, err := foldIntBinary(code, op, li, ri)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: sem.Int(result)}, nil
}

// evalArithBinary implements +, -, *, /, %, spec.md §4.5: string only valid
// for + (concatenation); char invalid for every arithmetic operator; the
// int/bool domain folds (and, for +/-/*, emits) in int; the float domain only
// ever folds (no FP ILOC exists, spec.md §1's non-goals).
func evalArithBinary(code *iloc.Code, op BinOp, left, right EvalResult, src *sourcemap.Source, span sourcemap.Span) (EvalResult, error) {
	if left.Type.Kind == sem.KindChar || right.Type.Kind == sem.KindChar {
		return EvalResult{}, diag.CharToX(src, "an arithmetic operand", span)
	}
	if left.Type.Kind == sem.KindString || right.Type.Kind == sem.KindString {
		if op != BinAdd || left.Type.Kind != sem.KindString || right.Type.Kind != sem.KindString {
			return EvalResult{}, diag.StringToX(src, "an arithmetic operand", span)
		}
		if left.Type.Str != nil && right.Type.Str != nil {
			v := *left.Type.Str + *right.Type.Str
			return EvalResult{Type: sem.String(&v)}, nil
		}
		return EvalResult{Type: sem.String(nil)}, nil
	}

	joined, err := left.Type.AssociateWith(right.Type, src, span)
	if err != nil {
		return EvalResult{}, err
	}
	if joined.Kind == sem.KindFloat {
		lf, _ := left.Type.ToFloat(src, left.Span)
		rf, _ := right.Type.ToFloat(src, right.Span)
		if lf == nil || rf == nil {
			return EvalResult{Type: sem.Float(nil)}, nil
		}
		v := constFloatOp(op, *lf, *rf)
		return EvalResult{Type: sem.Float(&v)}, nil
	}
	li, err := left.Type.ToInt(src, left.Span)
	if err != nil {
		return EvalResult{}, err
	}
	ri, err := right.Type.ToInt(src, right.Span)
	if err != nil {
		return EvalResult{}, err
	}
	result, err := foldIntBinary(code, op, li, ri)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Type: sem.Int(result)}, nil
}

func constFloatOp(op BinOp, a, b float64) float64 {
	switch op {
	case BinAdd:
		return a + b
	case BinSub:
		return a - b
	case BinMul:
		return a * b
	case BinDiv:
		if b == 0 {
			return 0
		}
		return a / b
	case BinMod:
		if b == 0 {
			return 0
		}
		return math.Mod(a, b)
	default:
		return 0
	}
}

// evalComparisonBinary implements ==, !=, <, <=, >, >=: string and char are
// always invalid (31/32); numeric/bool fold to Bool. No comparison ILOC op
// exists in spec.md §4.4's subset, so this never emits.
func evalComparisonBinary(op BinOp, left, right EvalResult, src *sourcemap.Source, span sourcemap.Span) (EvalResult, error) {
	if left.Type.Kind == sem.KindChar || right.Type.Kind == sem.KindChar {
		return EvalResult{}, diag.CharToX(src, "a comparison operand", span)
	}
	if left.Type.Kind == sem.KindString || right.Type.Kind == sem.KindString {
		return EvalResult{}, diag.StringToX(src, "a comparison operand", span)
	}
	if _, err := left.Type.AssociateWith(right.Type, src, span); err != nil {
		return EvalResult{}, err
	}
	lf, _ := left.Type.ToFloat(src, left.Span)
	rf, _ := right.Type.ToFloat(src, right.Span)
	if lf == nil || rf == nil {
		return EvalResult{Type: sem.Bool(nil)}, nil
	}
	v := compareFloat(op, *lf, *rf)
	return EvalResult{Type: sem.Bool(&v)}, nil
}

func compareFloat(op BinOp, a, b float64) bool {
	switch op {
	case BinEq:
		return a == b
	case BinNe:
		return a != b
	case BinLt:
		return a < b
	case BinLe:
		return a <= b
	case BinGt:
		return a > b
	case BinGe:
		return a >= b
	default:
		return false
	}
}

func (n *Node) evalUnary(code *iloc.Code, scope *sem.ScopeStack, src *sourcemap.Source) (EvalResult, error) {
	d := n.Data.(unData)
	operand, err := n.Children[0].Evaluate(code, scope, src)
	if err != nil {
		return EvalResult{}, err
	}
	switch d.Op {
	case UnPlus, UnMinus:
		if operand.Type.Kind == sem.KindChar {
			return EvalResult{}, diag.CharToX(src, "int, float, or bool", n.Span)
		}
		if operand.Type.Kind == sem.KindString {
			return EvalResult{}, diag.StringToX(src, "int, float, or bool", n.Span)
		}
		if d.Op == UnPlus {
			return operand, nil
		}
		return negateOperand(code, operand, src)
	case UnNot:
		b, err := operand.Type.ToBool(src, operand.Span)
		if err != nil {
			return EvalResult{}, err
		}
		if b == nil {
			return EvalResult{Type: sem.Bool(nil)}, nil
		}
		v := !*b
		return EvalResult{Type: sem.Bool(&v)}, nil
	case UnBoolCast:
		b, err := operand.Type.ToBool(src, operand.Span)
		if err != nil {
			return EvalResult{}, err
		}
		return EvalResult{Type: sem.Bool(b)}, nil
	case UnHash:
		return EvalResult{Type: sem.Int(sem.Undefined)}, nil
	case UnAddr, UnDeref:
		return operand, nil
	default:
		return EvalResult{}, diag.Sanity("evalUnary: unknown operator %v", d.Op)
	}
}

func negateOperand(code *iloc.Code, operand EvalResult, src *sourcemap.Source) (EvalResult, error) {
	switch operand.Type.Kind {
	case sem.KindInt:
		iv, err := negateInt(code, operand.Type.Int)
		if err != nil {
			return EvalResult{}, err
		}
		return EvalResult{Type: sem.Int(iv)}, nil
	case sem.KindFloat:
		if operand.Type.Float == nil {
			return EvalResult{Type: sem.Float(nil)}, nil
		}
		v := -*operand.Type.Float
		return EvalResult{Type: sem.Float(&v)}, nil
	case sem.KindBool:
		if operand.Type.Bool == nil {
			return EvalResult{Type: sem.Int(sem.Undefined)}, nil
		}
		var v int32
		if *operand.Type.Bool {
			v = -1
		}
		return EvalResult{Type: sem.Int(sem.Literal(v))}, nil
	default:
		return EvalResult{}, diag.Sanity("negateOperand: unexpected type %v", operand.Type.Kind)
	}
}

package ast

import (
	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sem"
)

// loadIntValue materializes iv into a register, emitting whatever ILOC that
// requires. A Temp value is already in a register and costs nothing further.
func loadIntValue(code *iloc.Code, iv sem.IntValue) (iloc.Register, error) {
	switch iv.Variant {
	case sem.IntLiteral:
		r := code.NewRegister()
		code.Push(iloc.Unlabeled(iloc.LoadIOp(iloc.Number(iv.Lit), r)))
		return r, nil
	case sem.IntMemory:
		r := code.NewRegister()
		code.Push(iloc.Unlabeled(iloc.LoadAIOp(iv.Reg, iv.Offset, r)))
		return r, nil
	case sem.IntTemp:
		return iv.Reg, nil
	default:
		return iloc.Register{}, diag.Sanity("loadIntValue: value has no known location")
	}
}

// storeInt materializes iv and stores it at base+offset, spec.md §4.5's
// assignment/initialization codegen. Only Int-typed values carry a location at
// all (spec.md §4.2's IntValue variants); Float/Bool/Char/String assignment is
// semantic-only since no FP/bool/char/string ILOC exists in the operation
// subset spec.md §4.4 names.
func storeInt(code *iloc.Code, iv sem.IntValue, base iloc.Register, offset int32) error {
	r, err := loadIntValue(code, iv)
	if err != nil {
		return err
	}
	code.Push(iloc.Unlabeled(iloc.StoreAIOp(r, base, iloc.Number(offset))))
	return nil
}

// foldIntBinary computes the IntValue result of applying op to two int-domain
// operands, spec.md §4.5's arithmetic/bitwise rules. Folds when both operands
// are known; otherwise materializes registers and emits the corresponding
// ILOC op for Add/Sub/Mult (the only arithmetic ops the operation subset of
// spec.md §4.4 provides — Div/Mod/bitwise have no ILOC equivalent here and so
// only ever fold or go Undefined, never emit).
func foldIntBinary(code *iloc.Code, op BinOp, liv, riv sem.IntValue) (sem.IntValue, error) {
	if liv.Variant == sem.IntLiteral && riv.Variant == sem.IntLiteral {
		return sem.Literal(constIntOp(op, liv.Lit, riv.Lit)), nil
	}
	switch op {
	case BinDiv, BinMod, BinBitOr, BinBitXor, BinBitAnd:
		// Division/modulo by a literal zero folds to zero, spec.md §8; any
		// other non-literal case for these ops has no emittable ILOC form.
		if (op == BinDiv || op == BinMod) && riv.Variant == sem.IntLiteral && riv.Lit == 0 {
			return sem.Literal(0), nil
		}
		return sem.Undefined, nil
	case BinAdd, BinSub, BinMul:
		if liv.Variant == sem.IntUndefined || riv.Variant == sem.IntUndefined {
			return sem.Undefined, nil
		}
		lr, err := loadIntValue(code, liv)
		if err != nil {
			return sem.IntValue{}, err
		}
		rr, err := loadIntValue(code, riv)
		if err != nil {
			return sem.IntValue{}, err
		}
		dst := codeNewRegisterFor(code)
		switch op {
		case BinAdd:
			code.Push(iloc.Unlabeled(iloc.AddOp(lr, rr, dst)))
		case BinSub:
			code.Push(iloc.Unlabeled(iloc.SubOp(lr, rr, dst)))
		case BinMul:
			code.Push(iloc.Unlabeled(iloc.MultOp(lr, rr, dst)))
		}
		return sem.Temp(dst), nil
	default:
		return sem.Undefined, nil
	}
}

func codeNewRegisterFor(code *iloc.Code) iloc.Register { return code.NewRegister() }

func constIntOp(op BinOp, a, b int32) int32 {
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
		return a % b
	case BinBitOr:
		return a | b
	case BinBitXor:
		return a ^ b
	case BinBitAnd:
		return a & b
	default:
		return 0
	}
}

// negateInt negates iv, emitting a sub-from-zero when iv isn't a known
// literal.
func negateInt(code *iloc.Code, iv sem.IntValue) (sem.IntValue, error) {
	if iv.Variant == sem.IntLiteral {
		return sem.Literal(-iv.Lit), nil
	}
	if iv.Variant == sem.IntUndefined {
		return sem.Undefined, nil
	}
	r, err := loadIntValue(code, iv)
	if err != nil {
		return sem.IntValue{}, err
	}
	zero := code.NewRegister()
	code.Push(iloc.Unlabeled(iloc.LoadIOp(iloc.Number(0), zero)))
	dst := code.NewRegister()
	code.Push(iloc.Unlabeled(iloc.SubOp(zero, r, dst)))
	return sem.Temp(dst), nil
}

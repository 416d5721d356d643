package iloc

import "strings"

// Code is the append-only instruction buffer of spec.md §4.4 (invariant (v)):
// it allocates labels and registers monotonically and resolves every promised
// Address in a single final pass. Seeded with the boot sequence that sets up
// rfp/rsp/rbss, saves a sentinel activation record, and jumps to "main".
type Code struct {
	instructions []Instruction
	labels       map[string]Label
	labelCounter int
	regCounter   int
}

// NewCode returns a Code buffer pre-seeded with the boot sequence of spec.md
// §4.4.
func NewCode() *Code {
	c := &Code{labels: map[string]Label{}, regCounter: 1}
	c.instructions = []Instruction{
		Unlabeled(LoadIOp(Number(1024), FP)),
		Unlabeled(LoadIOp(Number(1024), SP)),
		Unlabeled(LoadIOp(NumLenPromise(), BSS)),
		Unlabeled(LoadIOp(Number(8), R0)),
		Unlabeled(StoreAIOp(R0, SP, Number(0))),
		Unlabeled(StoreAIOp(SP, SP, Number(4))), // saves rsp
		Unlabeled(StoreAIOp(FP, SP, Number(8))), // saves rfp
		Unlabeled(JumpIOp(LabelPromise("main"))),
		Unlabeled(HaltOp()),
	}
	return c
}

// NewLabel allocates a new label, monotonically from 0.
func (c *Code) NewLabel() Label {
	l := Label{id: c.labelCounter}
	c.labelCounter++
	return l
}

// NewRegister allocates a new general-purpose register, monotonically from 1 (r0
// is reserved for the boot sequence).
func (c *Code) NewRegister() Register {
	r := Register{Kind: RegGeneral, Num: c.regCounter}
	c.regCounter++
	return r
}

// AddFnLabel allocates a label and binds it to fnName in the function label map,
// for later resolution of LabelPromise(fnName).
func (c *Code) AddFnLabel(fnName string) Label {
	l := c.NewLabel()
	c.labels[fnName] = l
	return l
}

// Push appends instr to the buffer.
func (c *Code) Push(instr Instruction) {
	c.instructions = append(c.instructions, instr)
}

// Len returns the number of instructions currently in the buffer.
func (c *Code) Len() int {
	return len(c.instructions)
}

// PayPromises walks the buffer once and replaces every promised Address with its
// resolved form. NumLenPromise resolves to the instruction count measured before
// this pass runs, so a second call is idempotent.
func (c *Code) PayPromises() error {
	codeLen := int32(len(c.instructions))
	out := make([]Instruction, len(c.instructions))
	for i, instr := range c.instructions {
		resolved, err := instr.payPromises(codeLen, c.labels)
		if err != nil {
			return err
		}
		out[i] = resolved
	}
	c.instructions = out
	return nil
}

// String renders the buffer as ILOC text, one instruction per line. Must be
// called after PayPromises.
func (c *Code) String() (string, error) {
	var b strings.Builder
	for _, instr := range c.instructions {
		s, err := instr.String()
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

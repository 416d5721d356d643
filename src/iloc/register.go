// Package iloc implements the instruction model of spec.md §4.4: registers,
// labels, addresses (including the two kinds of unresolved promise), a typed
// representation of ILOC operations, and the append-only code buffer that
// allocates labels/registers and resolves promises in a final pass.
package iloc

import "fmt"

// RegisterKind discriminates the fixed machine registers from the monotonically
// allocated general-purpose ones.
type RegisterKind int

const (
	RegFP RegisterKind = iota
	RegSP
	RegBSS
	RegGeneral
)

// Register is rfp, rsp, rbss, or one of the monotonically allocated r<n>.
type Register struct {
	Kind RegisterKind
	Num  int // meaningful only when Kind == RegGeneral
}

func (r Register) String() string {
	switch r.Kind {
	case RegFP:
		return "rfp"
	case RegSP:
		return "rsp"
	case RegBSS:
		return "rbss"
	default:
		return fmt.Sprintf("r%d", r.Num)
	}
}

// FP, SP and BSS are the three fixed registers spec.md §4.4 names.
var (
	FP  = Register{Kind: RegFP}
	SP  = Register{Kind: RegSP}
	BSS = Register{Kind: RegBSS}
)

// R0 is the scratch register the boot sequence uses before any user code runs.
var R0 = Register{Kind: RegGeneral, Num: 0}

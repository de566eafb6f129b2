package cpu

import "github.com/sts08015/rv32i-pipeline/pkg/isa"

// ForwardSel is the forwarding unit's 2-bit mux-select code (SPEC_FULL.md
// §4.4), in priority order from lowest to highest.
type ForwardSel uint8

const (
	ForwardID  ForwardSel = 0 // use ID/EX's own register-file read value
	ForwardWB  ForwardSel = 1 // forward MEM/WB's write-back value
	ForwardMem ForwardSel = 2 // forward EX/MEM's ALU result
	ForwardLui ForwardSel = 3 // forward EX/MEM's immediate (EX/MEM holds a LUI)
)

// SelectForward picks the forwarding source for one EX-stage operand, given
// its register-file source index. Priority: EX/MEM-holds-LUI > EX/MEM ALU
// result > MEM/WB write-back value > ID/EX's own value.
func SelectForward(srcReg uint8, exMem ExMem, memWb MemWb) ForwardSel {
	if srcReg == 0 {
		return ForwardID
	}
	if exMem.Opcode == isa.OpLui && exMem.RegWrite && exMem.Rd == srcReg {
		return ForwardLui
	}
	if exMem.RegWrite && exMem.Rd == srcReg {
		return ForwardMem
	}
	if memWb.RegWrite && memWb.Rd == srcReg {
		return ForwardWB
	}
	return ForwardID
}

// ResolveForward maps a ForwardSel to the actual operand value.
func ResolveForward(sel ForwardSel, idExVal uint32, exMem ExMem, wbValue uint32) uint32 {
	switch sel {
	case ForwardLui:
		return exMem.Imm32
	case ForwardMem:
		return exMem.AluResult
	case ForwardWB:
		return wbValue
	default:
		return idExVal
	}
}

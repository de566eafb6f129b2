package cpu

import "github.com/sts08015/rv32i-pipeline/pkg/isa"

// WriteBackValue picks the value committed to the register file for the
// instruction retiring in MEM/WB, in the priority order of SPEC_FULL.md
// §4.7: jump link > load extension > SLT/SLTU > LUI > plain ALU result.
func WriteBackValue(wb MemWb) uint32 {
	switch {
	case wb.IsJump:
		return wb.PC + 4
	case wb.MemToReg:
		return LoadExtend(wb.DMemDout, wb.Funct3)
	case wb.Slt:
		if wb.Funct3 == 3 {
			return boolToWord(wb.Carry) // SLTU / SLTIU
		}
		return boolToWord(wb.Sign) // SLT / SLTI
	case wb.Opcode == isa.OpLui:
		return wb.Imm32
	default:
		return wb.AluResult
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

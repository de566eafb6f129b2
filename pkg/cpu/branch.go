package cpu

import "github.com/sts08015/rv32i-pipeline/pkg/isa"

// BranchTaken evaluates the active branch condition from the ALU result and
// (for BLT/BGE only) the direct signed comparison of the operand values,
// per SPEC_FULL.md §4.6 / §9's resolved Open Question.
func BranchTaken(kind isa.BranchKind, alu isa.AluResult, a, b uint32) bool {
	switch kind {
	case isa.BranchBeq:
		return alu.Zero()
	case isa.BranchBne:
		return !alu.Zero()
	case isa.BranchBlt:
		return int32(a) < int32(b)
	case isa.BranchBge:
		return int32(a) >= int32(b)
	case isa.BranchBltu:
		return alu.Carry
	case isa.BranchBgeu:
		return !alu.Carry || alu.Zero()
	case isa.BranchJump:
		return true
	default:
		return false
	}
}

// BranchTarget computes the next-PC value for a taken branch/jump, per
// SPEC_FULL.md §4.6. JALR's target is the ALU's own rs1+imm result; every
// other taken branch/jump targets pc+imm32. The two arms resolve in
// different pipeline stages: JALR is evaluated one cycle later than every
// other branch kind, off the already-latched EX/MEM register rather than
// the live EX-stage result (see Engine.Tick's jalrTaken/jalrTarget), so
// callers pass EX/MEM's fields for the JALR arm and ID/EX's for every other.
func BranchTarget(opcode isa.Opcode, pc uint32, imm32 uint32, aluResult uint32) uint32 {
	if opcode == isa.OpJalr {
		return aluResult
	}
	return pc + imm32
}

// Package isa holds the pure, stateless pieces of the RV32I instruction
// semantics: the decoder, the immediate-extraction rules, the ALU and its
// control derivation, and the static disassembly catalog. Nothing in this
// package touches the register file, memory, or pipeline registers — those
// live in pkg/cpu, which drives isa functions cycle by cycle.
package isa

// Opcode is the 7-bit opcode field (inst[6:0]) of an RV32I instruction.
type Opcode uint8

const (
	OpLoad   Opcode = 0x03
	OpStore  Opcode = 0x23
	OpBranch Opcode = 0x63
	OpJalr   Opcode = 0x67
	OpJal    Opcode = 0x6f
	OpImm    Opcode = 0x13
	OpReg    Opcode = 0x33
	OpAuipc  Opcode = 0x17
	OpLui    Opcode = 0x37
)

// AluCtl is the 4-bit ALU control code the ALU-control generator derives
// from (AluOp, funct3, funct7). Values match the original reference's
// encoding so the carry/sign semantics in §4.3 line up exactly.
type AluCtl uint8

const (
	AluAnd AluCtl = 0
	AluOr  AluCtl = 1
	AluAdd AluCtl = 2
	AluXor AluCtl = 3
	AluSub AluCtl = 6
	AluSll AluCtl = 7
	AluSrl AluCtl = 8
	AluSra AluCtl = 9
)

// BranchKind is the tagged-variant replacement for the one-hot branch[0..6]
// vector from the original design (see SPEC_FULL.md §9 / spec.md §9's
// redesign note). Exactly one of these is active per decoded instruction.
type BranchKind uint8

const (
	BranchNone BranchKind = iota
	BranchBeq
	BranchBne
	BranchBlt
	BranchBge
	BranchBltu
	BranchBgeu
	BranchJump // JAL or JALR — unconditional
)

func (b BranchKind) String() string {
	switch b {
	case BranchBeq:
		return "beq"
	case BranchBne:
		return "bne"
	case BranchBlt:
		return "blt"
	case BranchBge:
		return "bge"
	case BranchBltu:
		return "bltu"
	case BranchBgeu:
		return "bgeu"
	case BranchJump:
		return "jump"
	default:
		return "none"
	}
}

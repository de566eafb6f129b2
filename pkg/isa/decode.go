package isa

// Decoded is the pure-combinational output of the instruction decoder: the
// raw bit fields plus the control bundle described in SPEC_FULL.md §4.1.
type Decoded struct {
	Opcode Opcode
	Funct3 uint8
	Funct7 uint8
	Rd     uint8
	Rs1    uint8
	Rs2    uint8
	Imm32  uint32

	MemRead   bool
	MemWrite  bool
	MemToReg  bool
	RegWrite  bool
	AluSrc    bool
	AluOp     uint8 // 0, 1, 2, or 3 — fed into AluControl alongside funct3/funct7
	Branch    BranchKind
}

// Decode splits a 32-bit instruction word into its fields and derives the
// control bundle. Unrecognized opcodes decode to an all-zero control bundle
// (effectively a no-op) rather than erroring — SPEC_FULL.md §7 requires the
// engine to stay total over every 32-bit pattern.
func Decode(inst uint32) Decoded {
	op := Opcode(inst & 0x7f)
	d := Decoded{
		Opcode: op,
		Funct3: uint8((inst >> 12) & 0x7),
		Funct7: uint8((inst >> 25) & 0x7f),
		Rd:     uint8((inst >> 7) & 0x1f),
		Rs1:    uint8((inst >> 15) & 0x1f),
		Rs2:    uint8((inst >> 20) & 0x1f),
	}
	d.Imm32 = Immediate(inst, op)

	switch op {
	case OpLoad:
		d.MemRead = true
		d.MemToReg = true
		d.RegWrite = true
		d.AluSrc = true
	case OpStore:
		d.MemWrite = true
		d.AluSrc = true
	case OpReg:
		d.RegWrite = true
		d.AluOp = 2
	case OpImm:
		d.RegWrite = true
		d.AluSrc = true
		d.AluOp = 3
	case OpJalr:
		d.RegWrite = true
		d.AluSrc = true
		d.Branch = BranchJump
	case OpJal:
		d.RegWrite = true
		d.AluSrc = true
		d.Branch = BranchJump
	case OpLui:
		d.RegWrite = true
	case OpAuipc:
		d.RegWrite = true
		d.AluSrc = true
	case OpBranch:
		d.AluOp = 1
		d.Branch = branchKindFromFunct3(d.Funct3)
	}

	// rs1/rs2 are architecturally unused by these opcodes; zeroing the index
	// here (rather than in the forwarding/hazard units) keeps every downstream
	// consumer — forwarding, hazard detection — from needing opcode-specific
	// cases of its own.
	switch op {
	case OpLui, OpAuipc, OpJal:
		d.Rs1 = 0
	}
	switch op {
	case OpLui, OpAuipc, OpJal, OpJalr, OpLoad, OpImm:
		d.Rs2 = 0
	}

	return d
}

func branchKindFromFunct3(funct3 uint8) BranchKind {
	switch funct3 {
	case 0:
		return BranchBeq
	case 1:
		return BranchBne
	case 4:
		return BranchBlt
	case 5:
		return BranchBge
	case 6:
		return BranchBltu
	case 7:
		return BranchBgeu
	default:
		return BranchNone
	}
}

// Immediate extracts and sign- or zero-extends the immediate field for the
// given opcode, per SPEC_FULL.md §4.2. Every immediate is sign-extended by
// default; only the LUI/AUIPC U-type immediate is zero-extended.
func Immediate(inst uint32, op Opcode) uint32 {
	switch op {
	case OpLoad, OpImm, OpJalr:
		return signExtend(inst>>20, 12)
	case OpStore:
		imm := ((inst >> 25) << 5) | ((inst >> 7) & 0x1f)
		return signExtend(imm, 12)
	case OpBranch:
		imm := (((inst >> 31) & 0x1) << 12) |
			(((inst >> 7) & 0x1) << 11) |
			(((inst >> 25) & 0x3f) << 5) |
			(((inst >> 8) & 0xf) << 1)
		return signExtend(imm, 13)
	case OpJal:
		imm := (((inst >> 31) & 0x1) << 20) |
			(((inst >> 12) & 0xff) << 12) |
			(((inst >> 20) & 0x1) << 11) |
			(((inst >> 21) & 0x3ff) << 1)
		return signExtend(imm, 21)
	case OpLui, OpAuipc:
		return inst & 0xfffff000
	default:
		return 0
	}
}

// signExtend treats the low bits bits of v as a signed integer and sign
// extends it to 32 bits.
func signExtend(v uint32, bits uint) uint32 {
	mask := uint32(1) << (bits - 1)
	v &= (uint32(1) << bits) - 1
	return (v ^ mask) - mask
}

package cpu

import "github.com/sts08015/rv32i-pipeline/pkg/isa"

// IfId is the IF/ID pipeline register (SPEC_FULL.md §3).
type IfId struct {
	PC   uint32
	Inst uint32
}

// IdEx is the ID/EX pipeline register. A flushed/bubble cycle latches the
// zero value of this struct, which naturally carries mem_read=false,
// reg_write=false, branch=BranchNone — an inert instruction.
type IdEx struct {
	PC       uint32
	Rs1Val   uint32
	Rs2Val   uint32
	Imm32    uint32
	Opcode   isa.Opcode
	Funct3   uint8
	Funct7   uint8
	Branch   isa.BranchKind
	AluSrc   bool
	AluOp    uint8
	MemRead  bool
	MemWrite bool
	Rs1      uint8
	Rs2      uint8
	Rd       uint8
	RegWrite bool
	MemToReg bool
}

// ExMem is the EX/MEM pipeline register.
type ExMem struct {
	AluResult uint32
	Rs2Val    uint32 // forwarded store-data operand
	MemRead   bool
	MemWrite  bool
	Rd        uint8
	RegWrite  bool
	MemToReg  bool
	Funct3    uint8
	Opcode    isa.Opcode
	Slt       bool
	Imm32     uint32
	PC        uint32
	Sign      bool
	Carry     bool
	IsJump    bool
}

// MemWb is the MEM/WB pipeline register.
type MemWb struct {
	AluResult uint32
	DMemDout  uint32
	Rd        uint8
	RegWrite  bool
	MemToReg  bool
	Funct3    uint8
	Opcode    isa.Opcode
	Slt       bool
	Imm32     uint32
	PC        uint32
	Sign      bool
	Carry     bool
	IsJump    bool
}

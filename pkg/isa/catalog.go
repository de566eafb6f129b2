package isa

import "fmt"

// mnemonicKey names an RV32I instruction family by (opcode, funct3, funct7)
// for disassembly. The mnemonics table is populated in init(), mirroring the
// teacher's static Catalog table of per-opcode metadata.
type mnemonicKey struct {
	op     Opcode
	funct3 uint8
	funct7 uint8
}

var mnemonics = map[mnemonicKey]string{}

func init() {
	reg := []struct {
		f3, f7 uint8
		name   string
	}{
		{0, 0x00, "add"}, {0, 0x20, "sub"}, {1, 0x00, "sll"}, {2, 0x00, "slt"},
		{3, 0x00, "sltu"}, {4, 0x00, "xor"}, {5, 0x00, "srl"}, {5, 0x20, "sra"},
		{6, 0x00, "or"}, {7, 0x00, "and"},
	}
	for _, r := range reg {
		mnemonics[mnemonicKey{OpReg, r.f3, r.f7}] = r.name
	}

	imm := []struct {
		f3   uint8
		name string
	}{
		{0, "addi"}, {2, "slti"}, {3, "sltiu"}, {4, "xori"}, {6, "ori"}, {7, "andi"},
	}
	for _, r := range imm {
		mnemonics[mnemonicKey{OpImm, r.f3, 0}] = r.name
	}
	mnemonics[mnemonicKey{OpImm, 1, 0x00}] = "slli"
	mnemonics[mnemonicKey{OpImm, 5, 0x00}] = "srli"
	mnemonics[mnemonicKey{OpImm, 5, 0x20}] = "srai"

	load := []struct {
		f3   uint8
		name string
	}{
		{0, "lb"}, {1, "lh"}, {2, "lw"}, {4, "lbu"}, {5, "lhu"},
	}
	for _, r := range load {
		mnemonics[mnemonicKey{OpLoad, r.f3, 0}] = r.name
	}

	store := []struct {
		f3   uint8
		name string
	}{
		{0, "sb"}, {1, "sh"}, {2, "sw"},
	}
	for _, r := range store {
		mnemonics[mnemonicKey{OpStore, r.f3, 0}] = r.name
	}

	branch := []struct {
		f3   uint8
		name string
	}{
		{0, "beq"}, {1, "bne"}, {4, "blt"}, {5, "bge"}, {6, "bltu"}, {7, "bgeu"},
	}
	for _, r := range branch {
		mnemonics[mnemonicKey{OpBranch, r.f3, 0}] = r.name
	}
}

// Disassemble renders a single instruction word as RISC-V assembly text.
func Disassemble(inst uint32) string {
	d := Decode(inst)
	switch d.Opcode {
	case OpLui:
		return fmt.Sprintf("lui x%d, 0x%x", d.Rd, d.Imm32>>12)
	case OpAuipc:
		return fmt.Sprintf("auipc x%d, 0x%x", d.Rd, d.Imm32>>12)
	case OpJal:
		return fmt.Sprintf("jal x%d, %d", d.Rd, int32(d.Imm32))
	case OpJalr:
		return fmt.Sprintf("jalr x%d, %d(x%d)", d.Rd, int32(d.Imm32), d.Rs1)
	case OpBranch:
		name := mnemonics[mnemonicKey{d.Opcode, d.Funct3, 0}]
		if name == "" {
			name = "b???"
		}
		return fmt.Sprintf("%s x%d, x%d, %d", name, d.Rs1, d.Rs2, int32(d.Imm32))
	case OpLoad:
		name := mnemonics[mnemonicKey{d.Opcode, d.Funct3, 0}]
		if name == "" {
			name = "l???"
		}
		return fmt.Sprintf("%s x%d, %d(x%d)", name, d.Rd, int32(d.Imm32), d.Rs1)
	case OpStore:
		name := mnemonics[mnemonicKey{d.Opcode, d.Funct3, 0}]
		if name == "" {
			name = "s???"
		}
		return fmt.Sprintf("%s x%d, %d(x%d)", name, d.Rs2, int32(d.Imm32), d.Rs1)
	case OpReg:
		f7 := d.Funct7 & 0x20
		name := mnemonics[mnemonicKey{d.Opcode, d.Funct3, f7}]
		if name == "" {
			name = "???"
		}
		return fmt.Sprintf("%s x%d, x%d, x%d", name, d.Rd, d.Rs1, d.Rs2)
	case OpImm:
		f7 := uint8(0)
		if d.Funct3 == 5 {
			f7 = d.Funct7 & 0x20
		}
		name := mnemonics[mnemonicKey{d.Opcode, d.Funct3, f7}]
		if name == "" {
			name = "???"
		}
		if d.Funct3 == 1 || d.Funct3 == 5 {
			return fmt.Sprintf("%s x%d, x%d, %d", name, d.Rd, d.Rs1, d.Imm32&0x1f)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", name, d.Rd, d.Rs1, int32(d.Imm32))
	default:
		return fmt.Sprintf(".word 0x%08x", inst)
	}
}

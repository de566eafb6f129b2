package cpu

import "github.com/sts08015/rv32i-pipeline/pkg/isa"

// Engine is the cycle-accurate five-stage pipeline (SPEC_FULL.md §2, §4.8).
// It owns instruction memory, data memory, the register file, the PC, and
// the four pipeline registers. A single Engine is never shared across
// goroutines (SPEC_FULL.md §5) — concurrency, where it exists at all, runs
// one Engine per goroutine (pkg/batch).
type Engine struct {
	IMem []uint32
	DMem *Memory
	RF   RegisterFile
	PC   uint32
	Cycle uint64

	ifId  IfId
	idEx  IdEx
	exMem ExMem
	memWb MemWb
}

// NewEngine builds an Engine over the given instruction image and a fresh
// data memory of dmemDepth words.
func NewEngine(imem []uint32, dmemDepth int) *Engine {
	return &Engine{
		IMem: imem,
		DMem: NewMemory(dmemDepth),
	}
}

// IfId, IdEx, ExMem, and MemWb expose the four pipeline registers'
// currently-latched contents, for callers (pkg/report's checkpointing) that
// need to capture mid-pipeline in-flight state rather than just
// architectural state.
func (e *Engine) IfId() IfId   { return e.ifId }
func (e *Engine) IdEx() IdEx   { return e.idEx }
func (e *Engine) ExMem() ExMem { return e.exMem }
func (e *Engine) MemWb() MemWb { return e.memWb }

// RestorePipeline overwrites the four pipeline registers, for resuming a
// checkpointed run mid-flight rather than from a clean architectural reset.
func (e *Engine) RestorePipeline(ifId IfId, idEx IdEx, exMem ExMem, memWb MemWb) {
	e.ifId = ifId
	e.idEx = idEx
	e.exMem = exMem
	e.memWb = memWb
}

func (e *Engine) fetch(pc uint32) uint32 {
	idx := int(pc >> 2)
	if idx < 0 || idx >= len(e.IMem) {
		return 0
	}
	return e.IMem[idx]
}

// resetWindow gates the PC: it does not advance until the cycle counter
// exceeds resetWindow, so it holds through the first three ticks (cycles 0
// to 2), matching the original reference's cc>2 gating (SPEC_FULL.md §4.6,
// §9).
const resetWindow = 2

// Tick advances the pipeline by exactly one cycle, following the ordering
// of SPEC_FULL.md §4.8: every stage reads the currently-latched registers
// combinationally, then all four pipeline registers and the PC are updated
// atomically at the end of the function.
func (e *Engine) Tick() {
	// --- MEM stage: operate on the currently-latched EX/MEM register ---
	var dmemDout uint32
	if e.exMem.MemRead {
		dmemDout = e.DMem.ReadWord(e.exMem.AluResult)
	}
	if e.exMem.MemWrite {
		existing := e.DMem.ReadWord(e.exMem.AluResult)
		e.DMem.WriteWord(e.exMem.AluResult, StoreMask(existing, e.exMem.Rs2Val, e.exMem.Funct3))
	}

	// JALR resolves one stage later than every other branch kind: its target
	// is EX/MEM.alu_result, already latched from the JALR's own EX cycle,
	// not the live EX-stage ALU result (SPEC_FULL.md §4.6, §9; grounded on
	// the original reference's mem.opcode==0x67 gate in pc_next_branch).
	jalrTaken := e.exMem.Opcode == isa.OpJalr
	jalrTarget := BranchTarget(e.exMem.Opcode, e.exMem.PC, e.exMem.Imm32, e.exMem.AluResult)

	// --- WB stage: operate on the currently-latched MEM/WB register ---
	wbValue := WriteBackValue(e.memWb)
	if e.memWb.RegWrite {
		e.RF.Write(e.memWb.Rd, wbValue)
	}

	// --- EX stage: operate on the currently-latched ID/EX register ---
	selA := SelectForward(e.idEx.Rs1, e.exMem, e.memWb)
	selB := SelectForward(e.idEx.Rs2, e.exMem, e.memWb)
	aVal := ResolveForward(selA, e.idEx.Rs1Val, e.exMem, wbValue)
	bVal := ResolveForward(selB, e.idEx.Rs2Val, e.exMem, wbValue)

	operandA := aVal
	if e.idEx.Opcode == isa.OpAuipc {
		operandA = e.idEx.PC
	}
	operandB := bVal
	if e.idEx.AluSrc {
		operandB = e.idEx.Imm32
	}

	ctl, slt := isa.AluControl(e.idEx.AluOp, e.idEx.Funct3, e.idEx.Funct7)
	aluRes := isa.Alu(ctl, operandA, operandB)

	// JALR is excluded from this cycle's EX-resolved branch check: its
	// resolution is deliberately deferred to the jalrTaken/jalrTarget pair
	// above, one stage later. Every other branch kind (including JAL)
	// resolves here, same-cycle, off ID/EX.
	exBranch := e.idEx.Branch
	if e.idEx.Opcode == isa.OpJalr {
		exBranch = isa.BranchNone
	}
	branchTaken := BranchTaken(exBranch, aluRes, operandA, operandB)
	branchTarget := BranchTarget(e.idEx.Opcode, e.idEx.PC, e.idEx.Imm32, aluRes.Result32)

	// --- ID stage: decode the currently-latched IF/ID register ---
	idDecoded := isa.Decode(e.ifId.Inst)
	loadUse := DetectLoadUse(e.idEx, idDecoded.Rs1, idDecoded.Rs2)

	// --- IF stage: fetch happens against the current PC ---
	fetchPC := e.PC
	hz := ResolveHazards(loadUse, branchTaken, e.ifId.PC, fetchPC, branchTarget)

	nextPC := e.PC + 4
	redirect := false
	if branchTaken && fetchPC != branchTarget {
		nextPC = branchTarget
		redirect = true
	}

	// jalrTaken overrides everything above: it redirects an older
	// instruction (already in MEM) than whatever EX/load-use signals just
	// computed for the instruction behind it, which is on JALR's wrong path
	// by construction and must be flushed regardless of its own signals.
	// squashEx additionally covers ID/EX itself — one stage more than any
	// EX-resolved branch ever needs to flush, since by the time JALR
	// resolves its immediate successor has already been latched into ID/EX.
	// None of this applies when ID/EX already holds the JALR's target (a JALR
	// that falls through to PC+4): everything behind it is then on the right
	// path, so it costs no extra cycle. Otherwise the IF/ID and fetch flushes
	// reuse ResolveHazards' own "already the target, don't flush" comparisons
	// (mirroring the original reference's id.pc/id.pc+4 checks).
	squashEx := false
	if jalrTaken && e.idEx.PC != jalrTarget {
		jh := ResolveHazards(false, true, e.ifId.PC, fetchPC, jalrTarget)
		hz.IdFlush = jh.IdFlush
		hz.IfFlush = jh.IfFlush
		hz.IdStall = false
		hz.IfStall = false
		hz.PcWrite = jh.PcWrite
		squashEx = true
		nextPC, redirect = e.PC+4, false
		if fetchPC != jalrTarget {
			nextPC, redirect = jalrTarget, true
		}
	}

	// --- latch next MEM/WB from current EX/MEM + this cycle's DMEM read ---
	nextMemWb := MemWb{
		AluResult: e.exMem.AluResult,
		DMemDout:  dmemDout,
		Rd:        e.exMem.Rd,
		RegWrite:  e.exMem.RegWrite,
		MemToReg:  e.exMem.MemToReg,
		Funct3:    e.exMem.Funct3,
		Opcode:    e.exMem.Opcode,
		Slt:       e.exMem.Slt,
		Imm32:     e.exMem.Imm32,
		PC:        e.exMem.PC,
		Sign:      e.exMem.Sign,
		Carry:     e.exMem.Carry,
		IsJump:    e.exMem.IsJump,
	}

	// --- latch next EX/MEM from current ID/EX + this cycle's ALU result ---
	// squashEx zeroes this to a bubble: the instruction currently in EX was
	// fetched under JALR's stale PC prediction and must not reach MEM,
	// unless it already happens to be the JALR's actual target.
	var nextExMem ExMem
	if !squashEx {
		nextExMem = ExMem{
			AluResult: aluRes.Result32,
			Rs2Val:    bVal,
			MemRead:   e.idEx.MemRead,
			MemWrite:  e.idEx.MemWrite,
			Rd:        e.idEx.Rd,
			RegWrite:  e.idEx.RegWrite,
			MemToReg:  e.idEx.MemToReg,
			Funct3:    e.idEx.Funct3,
			Opcode:    e.idEx.Opcode,
			Slt:       slt,
			Imm32:     e.idEx.Imm32,
			PC:        e.idEx.PC,
			Sign:      signedLess(slt, e.idEx.Funct3, operandA, operandB),
			Carry:     aluRes.Carry,
			IsJump:    e.idEx.Branch == isa.BranchJump,
		}
	}

	// --- latch next ID/EX from current IF/ID + this cycle's decode, subject
	//     to the stall/flush lines just computed ---
	var nextIdEx IdEx
	if !hz.IdStall && !hz.IdFlush {
		nextIdEx = IdEx{
			PC:       e.ifId.PC,
			Rs1Val:   e.RF.Read(idDecoded.Rs1),
			Rs2Val:   e.RF.Read(idDecoded.Rs2),
			Imm32:    idDecoded.Imm32,
			Opcode:   idDecoded.Opcode,
			Funct3:   idDecoded.Funct3,
			Funct7:   idDecoded.Funct7,
			Branch:   idDecoded.Branch,
			AluSrc:   idDecoded.AluSrc,
			AluOp:    idDecoded.AluOp,
			MemRead:  idDecoded.MemRead,
			MemWrite: idDecoded.MemWrite,
			Rs1:      idDecoded.Rs1,
			Rs2:      idDecoded.Rs2,
			Rd:       idDecoded.Rd,
			RegWrite: idDecoded.RegWrite,
			MemToReg: idDecoded.MemToReg,
		}
	}

	// --- latch next IF/ID from this cycle's fetch, subject to if_flush/if_stall ---
	var nextIfId IfId
	switch {
	case hz.IfStall:
		nextIfId = e.ifId
	case hz.IfFlush:
		nextIfId = IfId{}
	default:
		nextIfId = IfId{PC: fetchPC, Inst: e.fetch(fetchPC)}
	}

	// if_flush deasserts pc_write on every redirect, so a redirect latches its
	// target regardless; otherwise pc_write holds the PC during a load-use
	// stall.
	if (hz.PcWrite || redirect) && e.Cycle > resetWindow {
		e.PC = nextPC
	}

	e.memWb = nextMemWb
	e.exMem = nextExMem
	e.idEx = nextIdEx
	e.ifId = nextIfId
	e.Cycle++
}

// Run ticks the engine n times.
func (e *Engine) Run(cycles int) {
	for i := 0; i < cycles; i++ {
		e.Tick()
	}
}

// signedLess corrects SLT's comparison for the EX/MEM.Sign field: a plain
// sign-bit-of-subtraction reading is wrong exactly when the subtraction
// itself overflows, the same defect the branch unit avoids for BLT/BGE
// (SPEC_FULL.md §9). SLTU doesn't need this — its unsigned borrow-out from
// AluResult.Carry is already correct for every operand pair.
func signedLess(slt bool, funct3 uint8, a, b uint32) bool {
	if !slt || funct3 == 3 {
		return false
	}
	return int32(a) < int32(b)
}

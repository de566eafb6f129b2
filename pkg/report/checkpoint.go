package report

import (
	"encoding/gob"
	"os"

	"github.com/sts08015/rv32i-pipeline/pkg/cpu"
)

// Checkpoint holds the full simulator state needed to resume or inspect a
// run offline: all four pipeline registers, the PC, the register file, data
// memory, and the cycle number (SPEC_FULL.md §6).
type Checkpoint struct {
	Cycle      uint64
	PC         uint32
	Registers  [32]uint32
	DataMemory []uint32
	IMem       []uint32

	IfId  cpu.IfId
	IdEx  cpu.IdEx
	ExMem cpu.ExMem
	MemWb cpu.MemWb
}

func init() {
	gob.Register(Checkpoint{})
}

// NewCheckpoint captures e's current state, including the four pipeline
// registers' in-flight contents.
func NewCheckpoint(e *cpu.Engine) Checkpoint {
	return Checkpoint{
		Cycle:      e.Cycle,
		PC:         e.PC,
		Registers:  e.RF.Snapshot(),
		DataMemory: e.DMem.Words(),
		IMem:       e.IMem,
		IfId:       e.IfId(),
		IdEx:       e.IdEx(),
		ExMem:      e.ExMem(),
		MemWb:      e.MemWb(),
	}
}

// Restore rebuilds an Engine from ckpt, including its in-flight pipeline
// registers, ready to resume ticking exactly where the checkpoint was taken.
func Restore(ckpt Checkpoint) *cpu.Engine {
	e := cpu.NewEngine(ckpt.IMem, len(ckpt.DataMemory))
	e.DMem.LoadWords(ckpt.DataMemory)
	e.PC = ckpt.PC
	e.Cycle = ckpt.Cycle
	for idx, v := range ckpt.Registers {
		e.RF.Write(uint8(idx), v)
	}
	e.RestorePipeline(ckpt.IfId, ckpt.IdEx, ckpt.ExMem, ckpt.MemWb)
	return e
}

// SaveCheckpoint writes ckpt to path as gob.
func SaveCheckpoint(path string, ckpt Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checkpoint{}, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return Checkpoint{}, err
	}
	return ckpt, nil
}

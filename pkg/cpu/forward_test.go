package cpu

import (
	"testing"

	"github.com/sts08015/rv32i-pipeline/pkg/isa"
)

func TestSelectForwardPrefersMemOverWb(t *testing.T) {
	exMem := ExMem{RegWrite: true, Rd: 3}
	memWb := MemWb{RegWrite: true, Rd: 3}
	if sel := SelectForward(3, exMem, memWb); sel != ForwardMem {
		t.Errorf("sel = %v, want ForwardMem", sel)
	}
}

func TestSelectForwardFallsBackToWb(t *testing.T) {
	exMem := ExMem{RegWrite: true, Rd: 5}
	memWb := MemWb{RegWrite: true, Rd: 3}
	if sel := SelectForward(3, exMem, memWb); sel != ForwardWB {
		t.Errorf("sel = %v, want ForwardWB", sel)
	}
}

func TestSelectForwardLuiTakesPriority(t *testing.T) {
	exMem := ExMem{RegWrite: true, Rd: 3, Opcode: isa.OpLui}
	memWb := MemWb{}
	if sel := SelectForward(3, exMem, memWb); sel != ForwardLui {
		t.Errorf("sel = %v, want ForwardLui", sel)
	}
}

func TestSelectForwardIgnoresX0(t *testing.T) {
	exMem := ExMem{RegWrite: true, Rd: 0}
	memWb := MemWb{RegWrite: true, Rd: 0}
	if sel := SelectForward(0, exMem, memWb); sel != ForwardID {
		t.Errorf("sel = %v, want ForwardID for x0", sel)
	}
}

func TestResolveForwardValues(t *testing.T) {
	exMem := ExMem{AluResult: 42, Imm32: 99}
	if v := ResolveForward(ForwardMem, 1, exMem, 7); v != 42 {
		t.Errorf("ForwardMem resolved to %d, want 42", v)
	}
	if v := ResolveForward(ForwardLui, 1, exMem, 7); v != 99 {
		t.Errorf("ForwardLui resolved to %d, want 99", v)
	}
	if v := ResolveForward(ForwardWB, 1, exMem, 7); v != 7 {
		t.Errorf("ForwardWB resolved to %d, want 7", v)
	}
	if v := ResolveForward(ForwardID, 1, exMem, 7); v != 1 {
		t.Errorf("ForwardID resolved to %d, want 1", v)
	}
}

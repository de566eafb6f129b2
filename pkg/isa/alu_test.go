package isa

import "testing"

func TestAluAddCarry(t *testing.T) {
	r := Alu(AluAdd, 0xffffffff, 1)
	if r.Result32 != 0 {
		t.Errorf("result = 0x%x, want 0", r.Result32)
	}
	if !r.Carry {
		t.Errorf("expected carry out of 0xffffffff+1")
	}
}

func TestAluSubBorrow(t *testing.T) {
	r := Alu(AluSub, 1, 2)
	if !r.Carry {
		t.Errorf("expected borrow for 1-2")
	}
	if int32(r.Result32) != -1 {
		t.Errorf("result = %d, want -1", int32(r.Result32))
	}
}

func TestAluSra(t *testing.T) {
	r := Alu(AluSra, 0x80000000, 4)
	if r.Result32 != 0xf8000000 {
		t.Errorf("sra result = 0x%08x, want 0xf8000000", r.Result32)
	}
}

func TestAluSllMasksShamt(t *testing.T) {
	r := Alu(AluSll, 1, 33) // shamt masked to 33&0x1f = 1
	if r.Result32 != 2 {
		t.Errorf("sll result = %d, want 2", r.Result32)
	}
}

func TestAluControlRType(t *testing.T) {
	cases := []struct {
		f3, f7 uint8
		want   AluCtl
	}{
		{0, 0x00, AluAdd}, {0, 0x20, AluSub}, {1, 0, AluSll}, {4, 0, AluXor},
		{5, 0x00, AluSrl}, {5, 0x20, AluSra}, {6, 0, AluOr}, {7, 0, AluAnd},
	}
	for _, c := range cases {
		ctl, _ := AluControl(2, c.f3, c.f7)
		if ctl != c.want {
			t.Errorf("funct3=%d funct7=0x%x: ctl=%v, want %v", c.f3, c.f7, ctl, c.want)
		}
	}
}

func TestAluControlSltSetsFlag(t *testing.T) {
	ctl, slt := AluControl(2, 2, 0)
	if ctl != AluSub || !slt {
		t.Errorf("slt should derive SUB with slt flag, got ctl=%v slt=%v", ctl, slt)
	}
}

func TestAluControlImmSrliSraiFunct7(t *testing.T) {
	ctl, _ := AluControl(3, 5, 0x20)
	if ctl != AluSra {
		t.Errorf("srai should derive SRA, got %v", ctl)
	}
}

package cpu

import "testing"

func TestDetectLoadUseStalls(t *testing.T) {
	idEx := IdEx{MemRead: true, Rd: 1}
	if !DetectLoadUse(idEx, 1, 2) {
		t.Errorf("expected load-use hazard when rd matches rs1")
	}
	if !DetectLoadUse(idEx, 2, 1) {
		t.Errorf("expected load-use hazard when rd matches rs2")
	}
}

func TestDetectLoadUseIgnoresNonLoads(t *testing.T) {
	idEx := IdEx{MemRead: false, Rd: 1}
	if DetectLoadUse(idEx, 1, 2) {
		t.Errorf("non-load instruction should never stall")
	}
}

func TestDetectLoadUseIgnoresX0Dest(t *testing.T) {
	idEx := IdEx{MemRead: true, Rd: 0}
	if DetectLoadUse(idEx, 0, 0) {
		t.Errorf("rd=x0 can never create a hazard")
	}
}

func TestResolveHazardsNoStallNoBranch(t *testing.T) {
	hz := ResolveHazards(false, false, 4, 8, 0)
	if hz.IfFlush || hz.IfStall || hz.IdFlush || hz.IdStall {
		t.Errorf("expected no stall/flush, got %+v", hz)
	}
	if !hz.PcWrite {
		t.Errorf("expected pc_write asserted")
	}
}

func TestResolveHazardsLoadUseFreezesIfAndId(t *testing.T) {
	hz := ResolveHazards(true, false, 4, 8, 0)
	if !hz.IdStall || !hz.IfStall {
		t.Errorf("expected id_stall and if_stall, got %+v", hz)
	}
	if hz.PcWrite {
		t.Errorf("pc_write must deassert during a stall")
	}
}

func TestResolveHazardsBranchFlushesBothStages(t *testing.T) {
	hz := ResolveHazards(false, true, 4, 8, 100)
	if !hz.IdFlush || !hz.IfFlush {
		t.Errorf("expected both stages flushed when target mismatches both, got %+v", hz)
	}
}

func TestResolveHazardsBranchTargetAlreadyFetchedSkipsIfFlush(t *testing.T) {
	hz := ResolveHazards(false, true, 96, 100, 100)
	if hz.IfFlush {
		t.Errorf("if_flush should not assert when the fetched PC already equals the target")
	}
	if !hz.IdFlush {
		t.Errorf("id_flush should still assert since IF/ID's PC (96) isn't the target")
	}
}

package cpu

// HazardSignals bundles the five stall/flush control lines computed once
// per cycle by the hazard-detection and branch-resolution units
// (SPEC_FULL.md §4.5).
type HazardSignals struct {
	IfFlush bool
	IfStall bool
	IdFlush bool
	IdStall bool
	PcWrite bool
}

// DetectLoadUse reports whether the instruction currently in ID/EX is a load
// whose destination is read by the instruction currently in ID — the
// classic one-cycle load-use hazard (SPEC_FULL.md §4.5).
func DetectLoadUse(idEx IdEx, idRs1, idRs2 uint8) bool {
	if !idEx.MemRead || idEx.Rd == 0 {
		return false
	}
	return idEx.Rd == idRs1 || idEx.Rd == idRs2
}

// ResolveHazards combines the load-use stall with the branch-taken signal
// from EX to produce this cycle's stall/flush lines.
func ResolveHazards(loadUse, branchTaken bool, ifIdPC, ifFetchPC, branchTarget uint32) HazardSignals {
	var h HazardSignals
	if loadUse {
		h.IdStall = true
		h.IfStall = true
	}
	if branchTaken {
		if ifIdPC != branchTarget {
			h.IdFlush = true
		}
		if ifFetchPC != branchTarget {
			h.IfFlush = true
		}
	}
	h.PcWrite = !(h.IfFlush || h.IfStall)
	return h
}

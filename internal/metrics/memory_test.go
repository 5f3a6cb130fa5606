package metrics

import "testing"

func TestSnapshotReportsLiveHeap(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc = 0, want a live heap")
	}
	if snap.Sys == 0 {
		t.Error("Sys = 0, want reserved OS memory")
	}
	if snap.HeapObjects == 0 {
		t.Error("HeapObjects = 0, want live objects")
	}
}

func TestSnapshotSeesAmplitudeAllocation(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// A 16-qubit register: 2^16 amplitudes at 16 bytes each.
	buf := make([]complex128, 1<<16)
	buf[0] = 1

	after := mc.Snapshot()
	if after.Sys < before.Sys {
		t.Errorf("Sys shrank from %d to %d between snapshots", before.Sys, after.Sys)
	}
	_ = buf
}

package metrics

import "runtime"

// MemorySnapshot is a point-in-time view of the runtime's memory
// accounting. Amplitude buffers dominate the heap in this program, so
// HeapAlloc tracks the register sizes an evaluation touched.
type MemorySnapshot struct {
	HeapAlloc    uint64 // live heap bytes, amplitude buffers included
	HeapSys      uint64 // heap bytes reserved from the OS
	Sys          uint64 // total bytes reserved from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative stop-the-world pause time
	HeapObjects  uint64 // live heap objects
}

// MemoryCollector samples runtime.MemStats into snapshots.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector ready to sample.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the runtime memory statistics. ReadMemStats briefly
// stops the world, so call it around evaluations, not inside kernels.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

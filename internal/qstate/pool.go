// This file provides memory pooling for amplitude buffers to reduce GC pressure.

package qstate

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Amplitude Buffer Pools
// ─────────────────────────────────────────────────────────────────────────────

// maxPooledExponent bounds the size classes kept in pools. Buffers larger
// than 2^maxPooledExponent amplitudes (16M, 256MB of complex128) are
// allocated directly and left to the GC.
const maxPooledExponent = 24

// bufferPools pools amplitude buffers by exponent: pool k holds buffers of
// exactly 2^k amplitudes. Every buffer in the engine has a power-of-two
// length, so the classes are exact and no capacity slack exists.
var bufferPools [maxPooledExponent + 1]sync.Pool

// poolStats counts pool hits and misses for the metrics layer.
type poolStats struct {
	mu     sync.Mutex
	hits   uint64
	misses uint64
}

var stats poolStats

// AcquireBuffer gets a zeroed buffer of exactly size amplitudes from the
// pool. Size must be a power of two; oversized requests are allocated
// directly.
//
// The returned buffer should be released using ReleaseBuffer once no step
// or collaborator references it:
//
//	buf := qstate.AcquireBuffer(n)
//	defer qstate.ReleaseBuffer(buf)
func AcquireBuffer(size int) Buffer {
	exp := exponentOf(size)
	if exp < 0 || exp > maxPooledExponent {
		return make(Buffer, size)
	}
	if v := bufferPools[exp].Get(); v != nil {
		stats.mu.Lock()
		stats.hits++
		stats.mu.Unlock()
		b := v.(Buffer)
		clear(b)
		return b
	}
	stats.mu.Lock()
	stats.misses++
	stats.mu.Unlock()
	return make(Buffer, size)
}

// ReleaseBuffer returns a buffer to its size-class pool. Buffers whose
// capacity is not an exact pooled power of two are dropped for the GC.
// Safe to call with nil.
func ReleaseBuffer(b Buffer) {
	if b == nil {
		return
	}
	exp := exponentOf(cap(b))
	if exp < 0 || exp > maxPooledExponent {
		return
	}
	bufferPools[exp].Put(b[:cap(b)])
}

// PoolCounters returns the cumulative pool hit and miss counts.
func PoolCounters() (hits, misses uint64) {
	stats.mu.Lock()
	defer stats.mu.Unlock()
	return stats.hits, stats.misses
}

// exponentOf returns k when size == 2^k, or -1 when size is not a
// positive power of two.
func exponentOf(size int) int {
	if size <= 0 || size&(size-1) != 0 {
		return -1
	}
	return bits.TrailingZeros(uint(size))
}

// Copyright (c) 2024 Neomantra Corp
//
// A byte-oriented single-producer/single-consumer ring buffer sitting
// between the input reader and the framer. The producer pushes raw bytes;
// the consumer peeks and discards them as it frames and decodes records.
// Backpressure is cooperative: the producer yields while free space sits
// below a low-water mark, the consumer yields while fewer than a frame
// preamble's worth of bytes are available.

package itch

import "sync"

// DefaultRingCapacity is a reasonable size for the expected burst rate of
// an ITCH feed; 8 MiB absorbs a multi-millisecond stall without the
// producer blocking.
const DefaultRingCapacity = 8 * 1024 * 1024

// DefaultLowWaterFraction is the fraction of total capacity that must be
// free before a blocked producer resumes writing.
const DefaultLowWaterFraction = 0.10

// Ring is a fixed-capacity circular byte buffer safe for exactly one
// producer goroutine and one consumer goroutine. Any other usage pattern
// (multiple writers, multiple readers) is undefined.
type Ring struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	buf      []byte
	start    int
	length   int
	lowWater int
	done     bool
}

// NewRing allocates a ring of the given capacity. A non-positive capacity
// falls back to DefaultRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	r := &Ring{
		buf:      make([]byte, capacity),
		lowWater: int(float64(capacity) * DefaultLowWaterFraction),
	}
	r.notEmpty = sync.NewCond(&r.mu)
	r.notFull = sync.NewCond(&r.mu)
	return r
}

func (r *Ring) free() int { return len(r.buf) - r.length }

// Write copies p into the ring, blocking while free space sits below the
// low-water threshold and more than that much of p still needs writing.
// It always writes the full p; there is no short write on an open ring.
func (r *Ring) Write(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	written := 0
	for written < len(p) {
		need := len(p) - written
		threshold := r.lowWater
		if need < threshold {
			threshold = need
		}
		for r.free() < threshold {
			r.notFull.Wait()
		}
		n := min(r.free(), need)
		for i := 0; i < n; i++ {
			pos := (r.start + r.length) % len(r.buf)
			r.buf[pos] = p[written+i]
			r.length++
		}
		written += n
		r.notEmpty.Signal()
	}
	return written
}

// Peek blocks until len(dst) bytes are available, then copies them without
// consuming. If the ring is marked done and can never supply len(dst)
// bytes, it returns early with however many bytes remain (possibly zero).
func (r *Ring) Peek(dst []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.length < len(dst) && !r.done {
		r.notEmpty.Wait()
	}
	n := min(len(dst), r.length)
	for i := 0; i < n; i++ {
		pos := (r.start + i) % len(r.buf)
		dst[i] = r.buf[pos]
	}
	return n
}

// Discard advances the read position by up to n bytes, signaling the
// producer that free space increased.
func (r *Ring) Discard(n int) {
	r.mu.Lock()
	if n > r.length {
		n = r.length
	}
	r.start = (r.start + n) % len(r.buf)
	r.length -= n
	r.mu.Unlock()
	r.notFull.Signal()
}

// SetDone marks the input exhausted. Blocked Peek calls wake and return
// whatever is left rather than waiting forever for bytes that will never
// arrive.
func (r *Ring) SetDone() {
	r.mu.Lock()
	r.done = true
	r.mu.Unlock()
	r.notEmpty.Broadcast()
}

// Drained reports whether the input is exhausted and every byte it
// produced has been consumed — the consumer's exit condition.
func (r *Ring) Drained() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done && r.length == 0
}

// Len returns the number of unread bytes currently buffered.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.length
}

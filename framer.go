// Copyright (c) 2024 Neomantra Corp
//
// Frame dispatch over the ring buffer: peek a 3-byte preamble, validate
// its length, wait for the full payload (the incomplete-message polling
// path), decode, and advance. Corrupt preambles trigger a one-byte resync
// rather than a hard failure, so a single flipped byte anywhere in the
// stream costs at most one skipped frame.

package itch

import (
	"encoding/binary"
	"errors"
	"io"
)

// preambleSize is the 3-byte {len: u16 BE, type: u8} header the framer
// reads before it knows which decoder to invoke.
const preambleSize = 3

// ErrDrained is returned by Framer.Next once the ring is marked done and
// fully drained — the normal, successful end of the stream.
var ErrDrained = errors.New("itch: ring drained")

// Framer turns the raw byte stream in a Ring into decoded Records. It is
// meant to be driven by a single consumer goroutine; Next is not
// concurrency-safe to call from multiple goroutines.
type Framer struct {
	ring        *Ring
	resyncCount uint64
	skipCount   uint64
}

// NewFramer wraps ring for frame-at-a-time decoding.
func NewFramer(ring *Ring) *Framer {
	return &Framer{ring: ring}
}

// ResyncCount returns how many single-byte resync steps the framer has
// performed, e.g. due to an implausible length field.
func (f *Framer) ResyncCount() uint64 { return f.resyncCount }

// SkipCount returns how many well-formed-length frames were consumed and
// discarded without producing a Record, e.g. an unknown type tag or a
// decode error.
func (f *Framer) SkipCount() uint64 { return f.skipCount }

// Next reads and decodes the next frame, advancing past it regardless of
// outcome. It returns (nil, ErrDrained) when the ring is exhausted
// and empty. A decode error on a well-formed-length frame is returned to
// the caller after the frame has already been discarded, so the stream
// position is never stuck on an error.
func (f *Framer) Next() (Record, error) {
	for {
		var preamble [preambleSize]byte
		n := f.ring.Peek(preamble[:])
		if n < preambleSize {
			if f.ring.Drained() {
				return nil, ErrDrained
			}
			// Ring reported done mid-peek with a dangling partial
			// preamble that will never complete; treat as drained.
			return nil, ErrDrained
		}

		length := binary.BigEndian.Uint16(preamble[0:2])
		tag := preamble[2]

		if length == 0 || int(length) > MaxExpectedRecordLength {
			f.ring.Discard(1)
			f.resyncCount++
			continue
		}

		total := preambleSize + int(length)
		frame := make([]byte, total)
		got := f.ring.Peek(frame)
		if got < total {
			// Peek only comes back short once the ring is done, so the
			// input ended mid-frame: a truncated trailing record.
			// Discard what's left and report end of stream rather
			// than fabricate a decode error for bytes that will
			// never arrive.
			f.ring.Discard(got)
			return nil, ErrDrained
		}

		payload := frame[preambleSize:total]

		if !IsKnownMessageType(tag) {
			f.ring.Discard(total)
			f.skipCount++
			continue
		}

		rec, err := DecodeRecord(tag, payload)
		f.ring.Discard(total)
		if err != nil {
			f.skipCount++
			return nil, err
		}
		return rec, nil
	}
}

// NextFrom is a convenience for tests and one-shot decoding: it frames and
// decodes every record in r until EOF, returning the first decode error
// encountered (if any) alongside the records successfully decoded before it.
func NextFrom(r io.Reader, capacity int) ([]Record, error) {
	ring := NewRing(capacity)
	framer := NewFramer(ring)

	errCh := make(chan error, 1)
	go func() {
		buf := make([]byte, 64*1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				ring.Write(buf[:n])
			}
			if err != nil {
				ring.SetDone()
				if err == io.EOF {
					errCh <- nil
				} else {
					errCh <- err
				}
				return
			}
		}
	}()

	var records []Record
	for {
		rec, err := framer.Next()
		if err != nil {
			if errors.Is(err, ErrDrained) {
				return records, <-errCh
			}
			return records, err
		}
		records = append(records, rec)
	}
}

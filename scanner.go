// Copyright (c) 2024 Neomantra Corp
//
// ItchScanner is the top-level entry point for driving a byte stream
// through the ring buffer, framer, and decoders. It owns the producer
// goroutine; callers drive the consumer side via Next or Visit.

package itch

import (
	"errors"
	"io"
	"log/slog"
)

// ItchScanner reads from an io.Reader on a dedicated producer goroutine
// and exposes decoded Records to a single consumer via Next or Visit.
// Not safe for concurrent calls to Next/Visit from multiple goroutines.
type ItchScanner struct {
	ring    *Ring
	framer  *Framer
	readErr chan error
	logger  *slog.Logger
}

// ItchScannerOption configures an ItchScanner at construction time.
type ItchScannerOption func(*ItchScanner)

// WithRingCapacity overrides the default ring buffer size.
func WithRingCapacity(capacity int) ItchScannerOption {
	return func(s *ItchScanner) { s.ring = NewRing(capacity) }
}

// WithLogger overrides the default slog logger Visit uses to report frames
// skipped for a decode error. Resyncs and unknown-tag skips are counted,
// not logged.
func WithLogger(logger *slog.Logger) ItchScannerOption {
	return func(s *ItchScanner) { s.logger = logger }
}

// NewItchScanner starts a producer goroutine reading r into a ring buffer
// and returns a scanner ready to decode frames from it.
func NewItchScanner(r io.Reader, opts ...ItchScannerOption) *ItchScanner {
	s := &ItchScanner{
		ring:    NewRing(DefaultRingCapacity),
		logger:  slog.Default(),
		readErr: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.framer = NewFramer(s.ring)

	go func() {
		buf := make([]byte, 64*1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				s.ring.Write(buf[:n])
			}
			if err != nil {
				s.ring.SetDone()
				if errors.Is(err, io.EOF) {
					s.readErr <- nil
				} else {
					s.readErr <- err
				}
				return
			}
		}
	}()
	return s
}

// Next returns the next decoded Record. It returns (nil, io.EOF) once the
// input is exhausted and the ring fully drained. A DecodeError on a
// well-formed-length frame is returned directly — the frame has already
// been discarded, so a subsequent Next call continues with the next frame.
func (s *ItchScanner) Next() (Record, error) {
	rec, err := s.framer.Next()
	if err != nil {
		if errors.Is(err, ErrDrained) {
			if readErr := <-s.readErr; readErr != nil {
				return nil, readErr
			}
			return nil, io.EOF
		}
		return nil, err
	}
	return rec, nil
}

// ResyncCount reports how many single-byte resync steps occurred while
// scanning, per §4.D of the framing design.
func (s *ItchScanner) ResyncCount() uint64 { return s.framer.ResyncCount() }

// SkipCount reports how many frames were discarded without producing a
// Record: unknown type tags and decode errors.
func (s *ItchScanner) SkipCount() uint64 { return s.framer.SkipCount() }

// Visit drains the scanner, dispatching every successfully decoded Record
// to v. Decode errors are logged and do not terminate the scan, matching
// the propagation policy: framing corruption is recoverable per-message.
// Visit returns only once the input is exhausted, or sooner if v returns a
// non-nil error from a Visit method, which Visit propagates immediately.
func (s *ItchScanner) Visit(v Visitor) error {
	for {
		rec, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var decErr *DecodeError
			if errors.As(err, &decErr) {
				s.logger.Warn("itch: skipping undecodable frame", "error", decErr)
				continue
			}
			return err
		}
		if err := Visit(v, rec); err != nil {
			return err
		}
	}
}

// Copyright (c) 2024 Neomantra Corp

package itch

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ItchScanner", func() {
	It("decodes the S1 System Event end to end and then reports io.EOF", func() {
		frame := []byte{0x00, 0x0B, 'S', 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4F}
		scanner := NewItchScanner(bytes.NewReader(frame), WithRingCapacity(64))

		rec, err := scanner.Next()
		Expect(err).To(BeNil())
		ev, ok := rec.(*SystemEvent)
		Expect(ok).To(BeTrue())
		Expect(ev.Code).To(Equal(SystemEventStartOfMessages))

		_, err = scanner.Next()
		Expect(err).To(Equal(io.EOF))
	})

	It("Visit dispatches every decoded record and stops cleanly at EOF", func() {
		frame := []byte{0x00, 0x0B, 'S', 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4F}
		scanner := NewItchScanner(bytes.NewReader(frame), WithRingCapacity(64))

		count := 0
		v := &recordingVisitor{onAddOrder: func(*AddOrder) {}}
		err := scanner.Visit(&countingVisitor{Visitor: v, count: &count})
		Expect(err).To(BeNil())
		Expect(count).To(Equal(1))
	})
})

// countingVisitor wraps another Visitor, tallying every successful dispatch
// regardless of concrete record type.
type countingVisitor struct {
	Visitor
	count *int
}

func (c *countingVisitor) VisitSystemEvent(m *SystemEvent) error {
	*c.count++
	return nil
}

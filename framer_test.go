// Copyright (c) 2024 Neomantra Corp

package itch

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Framer", func() {
	It("resyncs past a garbage preamble and decodes the System Event that follows (S6)", func() {
		garbage := []byte{0x00, 0xFF}
		systemEvent := []byte{0x00, 0x0B, 'S', 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4F}
		stream := append(append([]byte{}, garbage...), systemEvent...)

		ring := NewRing(64)
		framer := NewFramer(ring)
		ring.Write(stream)
		ring.SetDone()

		rec, err := framer.Next()
		Expect(err).To(BeNil())
		ev, ok := rec.(*SystemEvent)
		Expect(ok).To(BeTrue())
		Expect(ev.Code).To(Equal(SystemEventStartOfMessages))
		Expect(framer.ResyncCount()).To(BeNumerically(">", 0))

		_, err = framer.Next()
		Expect(err).To(Equal(ErrDrained))
	})

	It("skips a well-formed frame of an unknown message type", func() {
		unknownTag := []byte{0x00, 0x02, '?', 0x00, 0x00}
		ring := NewRing(64)
		framer := NewFramer(ring)
		ring.Write(unknownTag)
		ring.SetDone()

		_, err := framer.Next()
		Expect(err).To(Equal(ErrDrained))
		Expect(framer.SkipCount()).To(Equal(uint64(1)))
	})

	It("NextFrom decodes every record in a multi-frame stream", func() {
		systemEvent := []byte{0x00, 0x0B, 'S', 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4F}
		stream := append(append([]byte{}, systemEvent...), systemEvent...)
		records, err := NextFrom(bytes.NewReader(stream), 0)
		Expect(err).To(BeNil())
		Expect(records).To(HaveLen(2))
	})
})

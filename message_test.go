// Copyright (c) 2024 Neomantra Corp

package itch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("message metadata", func() {
	It("reports the wire length for every known message type", func() {
		for tag, want := range recordLength {
			got, ok := RecordLength(tag)
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(want))
			Expect(got).To(BeNumerically("<=", MaxExpectedRecordLength))
		}
	})

	It("recognizes a declared message type and rejects an unknown tag", func() {
		Expect(IsKnownMessageType(byte(MessageTypeAddOrder))).To(BeTrue())
		Expect(IsKnownMessageType('?')).To(BeFalse())
	})

	It("names declared message types", func() {
		Expect(MessageTypeName(MessageTypeAddOrder)).To(Equal("AddOrder"))
		Expect(MessageTypeName(MessageTypeNetOrderImbalance)).To(Equal("NetOrderImbalance"))
	})

	It("left-justifies and space-pads a short ticker", func() {
		t := NewTicker("AAPL")
		Expect(t.String()).To(Equal("AAPL    "))
	})

	It("truncates a ticker longer than 8 bytes", func() {
		t := NewTicker("TOOLONGTICKER")
		Expect(len(t)).To(Equal(8))
	})
})

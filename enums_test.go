// Copyright (c) 2024 Neomantra Corp

package itch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("enum decoders", func() {
	It("decodes a valid Side byte", func() {
		s, err := decodeSide(byte(MessageTypeAddOrder), 18, 'B')
		Expect(err).To(BeNil())
		Expect(s).To(Equal(SideBuy))
	})

	It("rejects an invalid Side byte", func() {
		_, err := decodeSide(byte(MessageTypeAddOrder), 18, 'X')
		Expect(err).ToNot(BeNil())
	})

	It("decodes a strict Y/N boolean", func() {
		v, err := decodeStrictBool(byte(MessageTypeStockDirectory), 24, "round_lots_only", 'Y')
		Expect(err).To(BeNil())
		Expect(v).To(BeTrue())
	})

	It("rejects a strict boolean outside {Y,N}, including the tri-state space sentinel", func() {
		_, err := decodeStrictBool(byte(MessageTypeStockDirectory), 24, "round_lots_only", ' ')
		Expect(err).ToNot(BeNil())
	})

	It("decodes the tri-state unavailable sentinel distinctly from false", func() {
		v, err := decodeTriStateBool(byte(MessageTypeStockDirectory), 29, "short_sale_threshold", ' ')
		Expect(err).To(BeNil())
		Expect(v).To(Equal(TriStateUnavailable))
		Expect(v).ToNot(Equal(TriStateNo))
	})
})

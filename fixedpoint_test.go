// Copyright (c) 2024 Neomantra Corp

package itch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("fixed-point prices", func() {
	It("renders the exact integer quotient and remainder", func() {
		Expect(Price4(150_0000).String()).To(Equal("150.0000"))
		Expect(Price4(1).String()).To(Equal("0.0001"))
	})

	It("round-trips through ParsePrice4", func() {
		p, err := ParsePrice4("101.2500")
		Expect(err).To(BeNil())
		Expect(p).To(Equal(Price4(101_2500)))
	})

	It("saturates Sub at zero rather than wrapping", func() {
		Expect(Price4(100).Sub(Price4(200))).To(Equal(Price4(0)))
		Expect(Price4(200).Sub(Price4(100))).To(Equal(Price4(100)))
	})

	It("converts to an exact decimal.Decimal", func() {
		d := Price4(150_0000).Decimal()
		Expect(d.String()).To(Equal("150"))
	})

	It("renders Price8 with 8 fractional digits", func() {
		Expect(Price8(123456789).String()).To(Equal("1.23456789"))
	})
})

// Copyright (c) 2024 Neomantra Corp

package itch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Visitor", func() {
	Context("interfaces", func() {
		It("NullVisitor should implement itch.Visitor", func() {
			v := NullVisitor{}
			var _ Visitor = &v
		})
	})

	Context("Visit", func() {
		It("dispatches an AddOrder to VisitAddOrder", func() {
			var got *AddOrder
			v := &recordingVisitor{onAddOrder: func(m *AddOrder) { got = m }}
			add := &AddOrder{Header: MessageHeader{StockLocate: 1}, OrderRef: 10}
			Expect(Visit(v, add)).To(BeNil())
			Expect(got).To(Equal(add))
		})

		It("propagates an error returned by the handler", func() {
			boom := &OrderBookError{Op: "add", OrderRef: 1, reason: "boom"}
			v := &recordingVisitor{onAddOrder: func(*AddOrder) {}, addErr: boom}
			err := Visit(v, &AddOrder{})
			Expect(err).To(Equal(boom))
		})
	})
})

// recordingVisitor embeds NullVisitor so only the method under test needs
// overriding, the same pattern internal/feed.Runner uses in production.
type recordingVisitor struct {
	NullVisitor
	onAddOrder func(*AddOrder)
	addErr     error
}

func (v *recordingVisitor) VisitAddOrder(m *AddOrder) error {
	v.onAddOrder(m)
	return v.addErr
}

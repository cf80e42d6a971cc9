// Copyright (c) 2024 Neomantra Corp

package itch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ring", func() {
	It("writes and peeks back the same bytes without consuming them", func() {
		r := NewRing(16)
		r.Write([]byte("hello"))
		dst := make([]byte, 5)
		n := r.Peek(dst)
		Expect(n).To(Equal(5))
		Expect(string(dst)).To(Equal("hello"))
		Expect(r.Len()).To(Equal(5))
	})

	It("discard advances the read position", func() {
		r := NewRing(16)
		r.Write([]byte("hello"))
		r.Discard(2)
		dst := make([]byte, 3)
		r.Peek(dst)
		Expect(string(dst)).To(Equal("llo"))
	})

	It("wraps around the circular buffer correctly", func() {
		r := NewRing(4)
		r.Write([]byte("ab"))
		r.Discard(2)
		r.Write([]byte("cd"))
		r.Discard(0)
		dst := make([]byte, 2)
		r.Peek(dst)
		Expect(string(dst)).To(Equal("cd"))
	})

	It("reports drained once done and empty", func() {
		r := NewRing(4)
		Expect(r.Drained()).To(BeFalse())
		r.SetDone()
		Expect(r.Drained()).To(BeTrue())
	})

	It("a blocked Peek wakes on SetDone and returns a short read", func() {
		r := NewRing(16)
		done := make(chan int, 1)
		go func() {
			dst := make([]byte, 10)
			done <- r.Peek(dst)
		}()
		r.Write([]byte("abc"))
		r.SetDone()
		n := <-done
		Expect(n).To(Equal(3))
	})
})

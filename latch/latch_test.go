package latch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/latch"
)

var _ = Describe("Latch", func() {
	It("starts empty", func() {
		var l latch.Latch
		Expect(l.IsEmpty()).To(BeTrue())
		Expect(l.HasWork()).To(BeFalse())
	})

	It("clears back to empty from any state", func() {
		l := latch.Latch{State: latch.Valid, Inst: &insts.Instruction{Op: insts.OpHALT}}
		l.Clear()
		Expect(l.IsEmpty()).To(BeTrue())
		Expect(l.Inst).To(BeNil())
	})

	It("squashes without touching other fields", func() {
		l := latch.Latch{State: latch.Valid, Result: 42}
		l.Squash()
		Expect(l.IsSquashed()).To(BeTrue())
		Expect(l.Result).To(Equal(int32(42)))
	})

	It("reports HasWork for Valid and Stalled, not Empty or Squashed", func() {
		for _, s := range []latch.State{latch.Valid, latch.Stalled} {
			l := latch.Latch{State: s}
			Expect(l.HasWork()).To(BeTrue())
		}
		for _, s := range []latch.State{latch.Empty, latch.Squashed} {
			l := latch.Latch{State: s}
			Expect(l.HasWork()).To(BeFalse())
		}
	})
})

package register_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apex/register"
)

var _ = Describe("File", func() {
	var f *register.File

	BeforeEach(func() {
		f = register.New()
	})

	It("starts with every register valid and zero", func() {
		for r := int8(0); r < register.Count; r++ {
			Expect(f.Read(r)).To(Equal(int32(0)))
			Expect(f.IsValid(r)).To(BeTrue())
		}
	})

	It("invalidates a register when a writer is admitted", func() {
		f.Invalidate(3)
		Expect(f.IsValid(3)).To(BeFalse())
	})

	It("restores validity and value on commit", func() {
		f.Invalidate(3)
		f.Commit(3, 42)
		Expect(f.IsValid(3)).To(BeTrue())
		Expect(f.Read(3)).To(Equal(int32(42)))
	})

	It("snapshots all 16 registers", func() {
		f.Commit(0, 10)
		f.Invalidate(1)
		snap := f.Snapshot()
		Expect(snap[0]).To(Equal(register.Entry{Value: 10, Valid: true}))
		Expect(snap[1].Valid).To(BeFalse())
	})
})

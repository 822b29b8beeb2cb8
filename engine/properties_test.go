package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apex/engine"
)

var _ = Describe("pipeline invariants", func() {
	It("P1: in-flight writer latches equal invalid register count, every cycle", func() {
		prog := mustLoad("MOVC,R1,#5\nMOVC,R2,#3\nSUB,R3,R1,R2\nMUL,R4,R3,R2\nADD,R5,R3,R4\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		for i := 0; i < 200 && !e.Halted(); i++ {
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(e.InFlightWriters()).To(Equal(e.InvalidRegisterCount()))
		}
		Expect(e.Halted()).To(BeTrue())
	})

	It("P2: a taken branch squashes the instructions fetched behind it", func() {
		prog := mustLoad("MOVC,R1,#0\nBZ,#8\nMOVC,R2,#99\nMOVC,R3,#7\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		_, err := e.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		regs := e.RegisterFile().Snapshot()
		// MOVC,R2,#99 was squashed: it never committed, R2 stays 0.
		Expect(regs[2].Value).To(Equal(int32(0)))
		Expect(regs[2].Valid).To(BeTrue())
	})

	It("P3: a writer commits the ALU function of its operands as read at issue time", func() {
		prog := mustLoad("MOVC,R1,#12\nMOVC,R2,#7\nADD,R3,R1,R2\nSUB,R4,R1,R2\nAND,R5,R1,R2\nOR,R6,R1,R2\nEX-OR,R7,R1,R2\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		_, err := e.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		regs := e.RegisterFile().Snapshot()
		Expect(regs[3].Value).To(Equal(int32(12 + 7)))
		Expect(regs[4].Value).To(Equal(int32(12 - 7)))
		Expect(regs[5].Value).To(Equal(int32(12 & 7)))
		Expect(regs[6].Value).To(Equal(int32(12 | 7)))
		Expect(regs[7].Value).To(Equal(int32(12 ^ 7)))
	})

	It("P4: stall-only and forwarding agree on final state for a hazard-heavy program", func() {
		text := "MOVC,R1,#5\nMOVC,R2,#3\nSUB,R3,R1,R2\nMUL,R4,R3,R2\nSTORE,R4,R2,#4\nLOAD,R5,R2,#4\nADD,R6,R5,R3\nHALT\n"

		cfgA := engine.DefaultConfig()
		cfgA.Variant = engine.VariantStallOnly
		eA := engine.New(mustLoad(text), cfgA)
		_, err := eA.Run(1000)
		Expect(err).NotTo(HaveOccurred())

		cfgB := engine.DefaultConfig()
		cfgB.Variant = engine.VariantForwarding
		eB := engine.New(mustLoad(text), cfgB)
		_, err = eB.Run(1000)
		Expect(err).NotTo(HaveOccurred())

		Expect(eA.RegisterFile().Snapshot()).To(Equal(eB.RegisterFile().Snapshot()))
		Expect(eA.DataMemory().Dump(16)).To(Equal(eB.DataMemory().Dump(16)))

		// Forwarding should have let Variant B finish in no more cycles
		// than stall-only, and strictly fewer whenever a forward actually
		// avoided a stall.
		Expect(eB.Stats().Cycles).To(BeNumerically("<=", eA.Stats().Cycles))
	})

	It("P5: HALT retires at most once and nothing retires after it", func() {
		prog := mustLoad("MOVC,R1,#1\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		_, err := e.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Halted()).To(BeTrue())

		retiredAtHalt := e.Stats().Retired
		cycleAtHalt := e.Stats().Cycles

		_, err = e.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Stats().Retired).To(Equal(retiredAtHalt))
		Expect(e.Stats().Cycles).To(Equal(cycleAtHalt))
	})

	It("P6: a LOAD following a STORE to the same address returns the stored value", func() {
		prog := mustLoad("MOVC,R1,#123\nMOVC,R2,#40\nSTORE,R1,R2,#8\nLOAD,R3,R2,#8\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		_, err := e.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.RegisterFile().Snapshot()[3].Value).To(Equal(int32(123)))
	})

	It("P7: a hazard-free program retires one instruction per cycle after the 7-cycle fill", func() {
		prog := mustLoad("MOVC,R1,#1\nMOVC,R2,#2\nMOVC,R3,#3\nMOVC,R4,#4\nMOVC,R5,#5\nHALT\n")
		e := engine.New(prog, engine.DefaultConfig())
		_, err := e.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Halted()).To(BeTrue())
		Expect(e.Stats().Cycles).To(Equal(uint64(prog.Len() + 6)))
	})
})

package loader_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/loader"
)

func writeProgram(text string) string {
	dir := GinkgoT().TempDir()
	path := filepath.Join(dir, "prog.asm")
	Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	It("parses scenario S1 into instruction records", func() {
		path := writeProgram("MOVC,R1,#10\nMOVC,R2,#20\nADD,R3,R1,R2\nHALT\n")
		prog, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(4))
		Expect(prog.Base).To(Equal(uint32(loader.DefaultBase)))

		Expect(prog.Instructions[0]).To(Equal(&insts.Instruction{
			Op: insts.OpMOVC, Rd: 1, Rs1: insts.NoReg, Rs2: insts.NoReg, Rs3: insts.NoReg, Imm: 10,
		}))
		Expect(prog.Instructions[2]).To(Equal(&insts.Instruction{
			Op: insts.OpADD, Rd: 3, Rs1: 1, Rs2: 2, Rs3: insts.NoReg,
		}))
		Expect(prog.Instructions[3].Op).To(Equal(insts.OpHALT))
	})

	It("skips blank lines and comments", func() {
		path := writeProgram("# a comment\n\nMOVC,R1,#1\n; another comment\nHALT\n")
		prog, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(2))
	})

	It("parses STORE and STR operand order", func() {
		path := writeProgram("STORE,R1,R2,#4\nSTR,R1,R2,R3\n")
		prog, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Instructions[0]).To(Equal(&insts.Instruction{
			Op: insts.OpSTORE, Rd: insts.NoReg, Rs1: 1, Rs2: 2, Rs3: insts.NoReg, Imm: 4,
		}))
		Expect(prog.Instructions[1]).To(Equal(&insts.Instruction{
			Op: insts.OpSTR, Rd: insts.NoReg, Rs1: 1, Rs2: 2, Rs3: 3,
		}))
	})

	It("rejects an unknown opcode", func() {
		path := writeProgram("NOPE,R1,R2\n")
		_, err := loader.Load(path)
		Expect(err).To(HaveOccurred())
		var perr *loader.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("rejects a missing file", func() {
		_, err := loader.Load(filepath.Join(GinkgoT().TempDir(), "missing.asm"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects wrong operand count", func() {
		path := writeProgram("ADD,R1,R2\n")
		_, err := loader.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an out-of-range register", func() {
		path := writeProgram("MOVC,R16,#1\n")
		_, err := loader.Load(path)
		Expect(err).To(HaveOccurred())
	})
})

// This file is part of GopherPS2.
//
// GopherPS2 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPS2 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPS2.  If not, see <https://www.gnu.org/licenses/>.

package vif_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopherps2/hardware/freeze"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/hardware/vif"
	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/test"
)

// gs records packets sent to the GS paths.
type gs struct {
	packets [][]byte
	busy    [4]bool
	refuse  bool
}

func (g *gs) TrySend(path int, data []byte) bool {
	if g.refuse {
		return false
	}
	g.packets = append(g.packets, bytes.Clone(data))
	return true
}

func (g *gs) Busy(path int) bool {
	return g.busy[path]
}

func newVIF(id int) (*vif.VIF, *vu.VU, *interrupts.INTC, *gs) {
	u := vu.NewVU(id)
	intc := interrupts.NewINTC()
	g := &gs{}
	if id == 0 {
		return vif.NewVIF(id, u, nil, intc), u, intc, g
	}
	return vif.NewVIF(id, u, g, intc), u, intc, g
}

func code(op vif.Opcode, num uint8, imm uint16) uint32 {
	return vif.NewCode(op, num, imm, false)
}

func quad(w ...uint32) []byte {
	b := make([]byte, 16)
	for i := range w {
		binary.LittleEndian.PutUint32(b[i*4:], w[i])
	}
	return b
}

func TestSkipPattern(t *testing.T) {
	const n = 12

	v, u, _, _ := newVIF(1)

	// two of every three quadwords are written
	words := []uint32{
		code(vif.STCYCL, 0, 0x0302),
		code(vif.UNPACK, n, 0),
	}
	for k := range n {
		words = append(words, uint32(101+k))
	}

	test.ExpectEquality(t, v.Process(words), len(words))
	test.ExpectEquality(t, v.Busy, false)

	for k := range n {
		addr := uint32((k/2)*3 + k%2)
		for c := range 4 {
			test.ExpectEquality(t, u.ReadData(addr, c), uint32(101+k), k, c)
		}
		skipped := uint32((k/2)*3 + 2)
		test.ExpectEquality(t, u.ReadData(skipped, 0), uint32(0), k)
	}
}

// stream exercises every kind of UNPACK state that can be interrupted by the
// end of the input.
func stream() []uint32 {
	w := []uint32{
		// fill mode with masking and the add and store row mode
		code(vif.STCYCL, 0, 0x0204),
		code(vif.STMASK, 0, 0), 0xaa55c000,
		code(vif.STROW, 0, 0), 1, 2, 3, 4,
		code(vif.STCOL, 0, 0), 10, 20, 30, 40,
		code(vif.STMOD, 0, 2),

		// V3-8 masked, six elements of three bytes
		code(0x7a, 10, 0x10), 0x04030201, 0x08070605, 0x0c0b0a09, 0x100f0e0d, 0xdead1211,

		code(vif.STCYCL, 0, 0x0101),
		code(vif.STMOD, 0, 0),

		// V4-5, five elements of two bytes
		code(0x6f, 5, 0x40), 0x8c417fff, 0x00018421, 0xbeef1234,

		// V2-16 unsigned
		code(0x65, 3, 0x4050), 0xfffe0003, 0x80000001, 0x00020004,

		code(vif.MPG, 2, 0), 0x11111111, 0x22222222, 0x33333333, 0x44444444,
		code(vif.NOP, 0, 0),
	}
	return w
}

func TestSplitEqualsUnsplit(t *testing.T) {
	words := stream()

	v, ref, _, _ := newVIF(1)
	test.DemandEquality(t, v.Process(words), len(words))

	for k := 0; k <= len(words); k++ {
		v, u, _, _ := newVIF(1)
		a := v.Process(words[:k])
		test.ExpectEquality(t, a, k, k)
		b := v.Process(words[k:])
		test.ExpectEquality(t, a+b, len(words), k)
		test.ExpectEquality(t, string(u.Data), string(ref.Data), k)
		test.ExpectEquality(t, string(u.Micro), string(ref.Micro), k)
	}

	// one word at a time
	v, u, _, _ := newVIF(1)
	for _, w := range words {
		test.ExpectEquality(t, v.Process([]uint32{w}), 1)
	}
	test.ExpectEquality(t, string(u.Data), string(ref.Data))
}

func TestUnpackFormats(t *testing.T) {
	type format struct {
		name     string
		op       vif.Opcode
		num      uint8
		imm      uint16
		data     []uint32
		expected [][4]uint32
	}

	for _, f := range []format{
		{name: "V1-32", op: 0x60, num: 1, data: []uint32{7},
			expected: [][4]uint32{{7, 7, 7, 7}}},
		{name: "V2-16 signed", op: 0x65, num: 1, data: []uint32{0x0003fffe},
			expected: [][4]uint32{{0xfffffffe, 3, 0xfffffffe, 3}}},
		{name: "V2-16 unsigned", op: 0x65, num: 1, imm: 0x4000, data: []uint32{0x0003fffe},
			expected: [][4]uint32{{0xfffe, 3, 0xfffe, 3}}},
		{name: "V3-32", op: 0x68, num: 1, data: []uint32{1, 2, 3},
			expected: [][4]uint32{{1, 2, 3, 0}}},
		{name: "V4-5", op: 0x6f, num: 1, data: []uint32{0x8c41},
			expected: [][4]uint32{{8, 16, 24, 128}}},
		{name: "V1-8 unsigned", op: 0x62, num: 4, imm: 0x4000, data: []uint32{0xff020180},
			expected: [][4]uint32{{0x80, 0x80, 0x80, 0x80}, {1, 1, 1, 1}, {2, 2, 2, 2}, {0xff, 0xff, 0xff, 0xff}}},
		{name: "V1-8 signed", op: 0x62, num: 1, data: []uint32{0x80},
			expected: [][4]uint32{{0xffffff80, 0xffffff80, 0xffffff80, 0xffffff80}}},
		{name: "V4-8 signed", op: 0x6e, num: 1, data: []uint32{0x7f80ff01},
			expected: [][4]uint32{{1, 0xffffffff, 0xffffff80, 0x7f}}},
		{name: "V4-32", op: 0x6c, num: 1, data: []uint32{5, 6, 7, 8},
			expected: [][4]uint32{{5, 6, 7, 8}}},
	} {
		v, u, _, _ := newVIF(0)
		words := append([]uint32{code(f.op, f.num, f.imm)}, f.data...)
		test.ExpectEquality(t, v.Process(words), len(words), f.name)
		test.ExpectEquality(t, v.Busy, false, f.name)
		for a, e := range f.expected {
			for c := range 4 {
				test.ExpectEquality(t, u.ReadData(uint32(a), c), e[c], f.name, a, c)
			}
		}
	}
}

func TestMask(t *testing.T) {
	v, u, _, _ := newVIF(1)
	u.WriteData(0, 3, 0x99)

	// x is data, y is row, z is column and w is protected
	words := []uint32{
		code(vif.STMASK, 0, 0), 0xe4,
		code(vif.STROW, 0, 0), 1, 2, 3, 4,
		code(vif.STCOL, 0, 0), 10, 20, 30, 40,
		code(0x7c, 1, 0), 100, 200, 300, 400,
	}
	test.ExpectEquality(t, v.Process(words), len(words))

	test.ExpectEquality(t, u.ReadData(0, 0), uint32(100))
	test.ExpectEquality(t, u.ReadData(0, 1), uint32(2))
	test.ExpectEquality(t, u.ReadData(0, 2), uint32(10))
	test.ExpectEquality(t, u.ReadData(0, 3), uint32(0x99))
}

func TestMode(t *testing.T) {
	v, u, _, _ := newVIF(1)

	words := []uint32{
		code(vif.STROW, 0, 0), 1, 2, 3, 4,
		code(vif.STMOD, 0, 1),
		code(0x6c, 1, 0), 10, 10, 10, 10,
		code(vif.STMOD, 0, 2),
		code(0x6c, 2, 1), 10, 10, 10, 10, 5, 5, 5, 5,
	}
	test.ExpectEquality(t, v.Process(words), len(words))

	// add row
	test.ExpectEquality(t, u.ReadData(0, 0), uint32(11))
	test.ExpectEquality(t, u.ReadData(0, 3), uint32(14))

	// add and store row
	test.ExpectEquality(t, u.ReadData(1, 0), uint32(11))
	test.ExpectEquality(t, u.ReadData(2, 0), uint32(16))
	test.ExpectEquality(t, u.ReadData(2, 3), uint32(19))
	test.ExpectEquality(t, v.Regs.R[0], uint32(16))
}

func TestFill(t *testing.T) {
	v, u, _, _ := newVIF(1)

	// period of three with one data quadword. fill slots take the row
	words := []uint32{
		code(vif.STCYCL, 0, 0x0103),
		code(vif.STMASK, 0, 0), 0x00555500,
		code(vif.STROW, 0, 0), 1, 2, 3, 4,
		code(0x70, 6, 0), 100, 200,
	}
	test.ExpectEquality(t, v.Process(words), len(words))

	for a, x := range []uint32{100, 1, 1, 200, 1, 1} {
		test.ExpectEquality(t, u.ReadData(uint32(a), 0), x, a)
	}
	test.ExpectEquality(t, u.ReadData(4, 3), uint32(4))

	// without a mask the fill slots keep their previous value
	for a := range 3 {
		u.WriteData(uint32(0x20+a), 0, 0x77)
	}
	words = []uint32{code(0x60, 3, 0x20), 300}
	test.ExpectEquality(t, v.Process(words), len(words))
	test.ExpectEquality(t, u.ReadData(0x20, 0), uint32(300))
	test.ExpectEquality(t, u.ReadData(0x21, 0), uint32(0x77))
	test.ExpectEquality(t, u.ReadData(0x22, 0), uint32(0x77))
}

func TestMPG(t *testing.T) {
	v, u, _, _ := newVIF(1)

	words := []uint32{code(vif.MPG, 1, 2), 0xaabbccdd, 0x11223344}
	test.ExpectEquality(t, v.Process(words), len(words))
	test.ExpectEquality(t, u.ReadMicro(16), uint32(0xaabbccdd))
	test.ExpectEquality(t, u.ReadMicro(20), uint32(0x11223344))
}

func TestInterrupt(t *testing.T) {
	v, _, intc, _ := newVIF(1)

	var resumed int
	v.SetResume(func() {
		resumed++
	})

	words := []uint32{
		vif.NewCode(vif.NOP, 0, 0, true),
		code(vif.STMOD, 0, 1),
	}
	test.ExpectEquality(t, v.Process(words), 1)
	test.ExpectEquality(t, v.Stalled, true)
	test.ExpectEquality(t, v.IRQ, 1)
	test.ExpectEquality(t, intc.Count(interrupts.VIF1), 1)

	stat, _ := v.Read(vif.RegSTAT)
	test.ExpectEquality(t, stat&(vif.StatVIS|vif.StatINT), uint32(vif.StatVIS|vif.StatINT))

	// nothing is decoded while stalled
	test.ExpectEquality(t, v.Process(words[1:]), 0)

	v.Write(vif.RegFBRST, vif.FbrstSTC)
	test.ExpectEquality(t, resumed, 1)
	test.ExpectEquality(t, v.Stalled, false)
	test.ExpectEquality(t, v.IRQ, 0)
	stat, _ = v.Read(vif.RegSTAT)
	test.ExpectEquality(t, stat&(vif.StatVIS|vif.StatINT), uint32(0))

	test.ExpectEquality(t, v.Process(words[1:]), 1)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))

	// the interrupt bit is ignored when masked
	v.Write(vif.RegERR, vif.ErrMII)
	test.ExpectEquality(t, v.Process(words), 2)
	test.ExpectEquality(t, v.Stalled, false)
	test.ExpectEquality(t, intc.Count(interrupts.VIF1), 1)
}

func TestInterruptAfterPayload(t *testing.T) {
	v, u, _, _ := newVIF(1)

	words := []uint32{
		vif.NewCode(0x60, 2, 0, true), 5, 6,
		code(vif.STMOD, 0, 1),
	}
	test.ExpectEquality(t, v.Process(words), 3)
	test.ExpectEquality(t, u.ReadData(1, 0), uint32(6))
	test.ExpectEquality(t, v.Stalled, true)
}

func TestFromMemory(t *testing.T) {
	v, _, _, _ := newVIF(1)

	first := quad(vif.NewCode(vif.NOP, 0, 0, true), code(vif.STMOD, 0, 1), code(vif.STMOD, 0, 2), code(vif.NOP, 0, 0))
	second := quad(code(vif.ITOP, 0, 0x12), 0, 0, 0)

	// the quadword is accepted and the words after the interrupt are kept
	test.ExpectEquality(t, v.FromMemory(first), 1)
	test.ExpectEquality(t, len(v.Pending), 3)
	test.ExpectEquality(t, v.Regs.MODE, uint32(0))

	test.ExpectEquality(t, v.FromMemory(second), 0)

	v.WriteFBRST(vif.FbrstSTC)
	test.ExpectEquality(t, v.FromMemory(second), 1)
	test.ExpectEquality(t, len(v.Pending), 0)
	test.ExpectEquality(t, v.Regs.MODE, uint32(2))
	test.ExpectEquality(t, v.Regs.ITOPS, uint32(0x12))
	test.ExpectEquality(t, v.Idle(), true)
}

func TestUnknownOpcode(t *testing.T) {
	words := []uint32{code(0x08, 0, 0), code(vif.STMOD, 0, 1)}

	// lenient
	v, _, intc, _ := newVIF(1)
	test.ExpectEquality(t, v.Process(words), 2)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))
	test.ExpectEquality(t, intc.Count(interrupts.VIF1), 0)

	// strict
	v, _, intc, _ = newVIF(1)
	v.Strict = true
	test.ExpectEquality(t, v.Process(words), 1)
	test.ExpectEquality(t, v.Stalled, true)
	test.ExpectEquality(t, v.Regs.STAT&vif.StatER1, uint32(vif.StatER1))
	test.ExpectEquality(t, intc.Count(interrupts.VIF1), 1)
	v.WriteFBRST(vif.FbrstSTC)
	test.ExpectEquality(t, v.Process(words[1:]), 1)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))

	// strict but the error is masked
	v, _, _, _ = newVIF(1)
	v.Strict = true
	v.Write(vif.RegERR, vif.ErrME1)
	test.ExpectEquality(t, v.Process(words), 2)

	// DIRECT is not a VIF0 command
	v, _, intc, _ = newVIF(0)
	v.Strict = true
	test.ExpectEquality(t, v.Process([]uint32{code(vif.DIRECT, 0, 1)}), 1)
	test.ExpectEquality(t, v.Stalled, true)
	test.ExpectEquality(t, intc.Count(interrupts.VIF0), 1)
}

func TestMalformedUnpack(t *testing.T) {
	v, u, _, _ := newVIF(1)

	// exactly one of CL and WL is zero. the payload is skipped and decoding
	// continues with the next VIFcode
	words := []uint32{
		code(vif.STCYCL, 0, 0x0200),
		code(0x60, 2, 0), 1, 2,
		code(vif.STMOD, 0, 1),
	}
	test.ExpectEquality(t, v.Process(words), len(words))
	test.ExpectEquality(t, v.Busy, false)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))
	test.ExpectEquality(t, u.ReadData(0, 0), uint32(0))
	test.ExpectEquality(t, u.ReadData(1, 0), uint32(0))

	// the same words split after the UNPACK
	v, u, _, _ = newVIF(1)
	test.ExpectEquality(t, v.Process(words[:2]), 2)
	test.ExpectEquality(t, v.Busy, true)
	test.ExpectEquality(t, v.Process(words[2:]), 3)
	test.ExpectEquality(t, v.Busy, false)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))
	test.ExpectEquality(t, u.ReadData(0, 0), uint32(0))

	// one word at a time
	v, u, _, _ = newVIF(1)
	for i := range words {
		test.ExpectEquality(t, v.Process(words[i:i+1]), 1)
	}
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))
	test.ExpectEquality(t, u.ReadData(0, 0), uint32(0))

	// V2-5 does not exist. one element of two bytes is padded to one word
	v, _, _, _ = newVIF(1)
	words = []uint32{code(0x67, 1, 0), 1, code(vif.STMOD, 0, 2)}
	test.ExpectEquality(t, v.Process(words[:1]), 1)
	test.ExpectEquality(t, v.Regs.MODE, uint32(0))
	test.ExpectEquality(t, v.Process(words[1:]), 2)
	test.ExpectEquality(t, v.Regs.MODE, uint32(2))
}

func TestDirect(t *testing.T) {
	v, _, _, g := newVIF(1)

	words := []uint32{code(vif.DIRECT, 0, 2), 1, 2, 3, 4, 5, 6, 7, 8}
	test.ExpectEquality(t, v.Process(words[:3]), 3)
	test.ExpectEquality(t, len(g.packets), 0)
	test.ExpectEquality(t, v.Process(words[3:]), 6)
	test.ExpectEquality(t, v.Busy, false)

	test.DemandEquality(t, len(g.packets), 1)
	expected := append(quad(1, 2, 3, 4), quad(5, 6, 7, 8)...)
	test.ExpectEquality(t, string(g.packets[0]), string(expected))

	// the path refuses the data
	g.refuse = true
	test.ExpectEquality(t, v.Process(words[:5]), 1)
	test.ExpectEquality(t, v.Busy, true)
	g.refuse = false
	test.ExpectEquality(t, v.Process(words[1:5]), 4)
	test.ExpectEquality(t, len(g.packets), 2)
}

func TestFlush(t *testing.T) {
	v, u, _, g := newVIF(1)
	u.Hold = true

	words := []uint32{
		code(vif.BASE, 0, 0x100),
		code(vif.OFFSET, 0, 0x40),
		code(vif.MSCAL, 0, 0x10),
		code(vif.FLUSHE, 0, 0),
		code(vif.STMOD, 0, 1),
	}
	test.ExpectEquality(t, v.Process(words), 4)
	test.ExpectEquality(t, v.Busy, true)
	test.ExpectEquality(t, v.Regs.STAT&vif.StatVEW, uint32(vif.StatVEW))

	test.ExpectEquality(t, u.Starts, 1)
	test.ExpectEquality(t, u.Last.Address, uint32(0x80))
	test.ExpectEquality(t, u.Last.TOP, uint32(0x100))
	test.ExpectEquality(t, v.Regs.TOPS, uint32(0x140))
	test.ExpectEquality(t, v.Regs.STAT&vif.StatDBF, uint32(vif.StatDBF))

	// still waiting
	test.ExpectEquality(t, v.Process(words[4:]), 0)

	u.Finish()
	test.ExpectEquality(t, v.Process(words[4:]), 1)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))
	test.ExpectEquality(t, v.Regs.STAT&vif.StatVEW, uint32(0))

	// FLUSH waits for GS paths 1 and 2
	g.busy[vif.Path2] = true
	test.ExpectEquality(t, v.Process([]uint32{code(vif.FLUSH, 0, 0)}), 1)
	test.ExpectEquality(t, v.Busy, true)
	g.busy[vif.Path2] = false
	test.ExpectEquality(t, v.Process(nil), 0)
	test.ExpectEquality(t, v.Busy, false)

	// the second MSCAL uses the other buffer
	u.Hold = false
	test.ExpectEquality(t, v.Process([]uint32{code(vif.MSCNT, 0, 0)}), 1)
	test.ExpectEquality(t, u.Last.Continue, true)
	test.ExpectEquality(t, u.Last.TOP, uint32(0x140))
	test.ExpectEquality(t, v.Regs.TOPS, uint32(0x100))
}

func TestStop(t *testing.T) {
	v, _, _, _ := newVIF(1)

	// stop while idle
	v.WriteFBRST(vif.FbrstSTP)
	test.ExpectEquality(t, v.Stalled, true)
	v.WriteFBRST(vif.FbrstSTC)

	// stop during a command takes effect when the command completes
	test.ExpectEquality(t, v.Process([]uint32{code(0x60, 2, 0), 1}), 2)
	v.WriteFBRST(vif.FbrstSTP)
	test.ExpectEquality(t, v.Stalled, false)
	test.ExpectEquality(t, v.Process([]uint32{2, code(vif.STMOD, 0, 1)}), 1)
	test.ExpectEquality(t, v.Stalled, true)
	test.ExpectEquality(t, v.Regs.STAT&vif.StatVSS, uint32(vif.StatVSS))

	v.WriteFBRST(vif.FbrstSTC)
	test.ExpectEquality(t, v.Process([]uint32{code(vif.STMOD, 0, 1)}), 1)
	test.ExpectEquality(t, v.Regs.MODE, uint32(1))

	// force break
	v.WriteFBRST(vif.FbrstFBK)
	test.ExpectEquality(t, v.Process([]uint32{code(vif.STMOD, 0, 2)}), 0)
	v.WriteFBRST(vif.FbrstRST)
	test.ExpectEquality(t, v.Stalled, false)
	test.ExpectEquality(t, v.Regs.MODE, uint32(0))
}

func TestRegisters(t *testing.T) {
	v, _, _, _ := newVIF(1)

	test.ExpectEquality(t, v.Process([]uint32{code(vif.STCYCL, 0, 0x0304)}), 1)
	cycle, ok := v.Read(vif.RegCYCLE)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, cycle, uint32(0x0304))

	test.ExpectEquality(t, v.Write(vif.RegR0+0x20, 0x55), true)
	r2, _ := v.Read(vif.RegR0 + 0x20)
	test.ExpectEquality(t, r2, uint32(0x55))

	// NUM counts down during an unpack
	test.ExpectEquality(t, v.Process([]uint32{code(vif.STCYCL, 0, 0x0101), code(0x60, 5, 0), 1, 2}), 4)
	num, _ := v.Read(vif.RegNUM)
	test.ExpectEquality(t, num, uint32(3))

	// VIF0 has no BASE register
	v, _, _, _ = newVIF(0)
	_, ok = v.Read(vif.RegBASE)
	test.ExpectEquality(t, ok, false)
}

func TestFreezeThaw(t *testing.T) {
	words := stream()

	// split in the middle of the V3-8 payload
	const split = 19

	ref, refVU, _, _ := newVIF(1)
	ref.Process(words)

	a, aVU, _, _ := newVIF(1)
	test.ExpectEquality(t, a.Process(words[:split]), split)
	test.ExpectEquality(t, a.Busy, true)

	enc := freeze.NewEncoder()
	a.Freeze(enc)
	aVU.Freeze(enc)

	dec, err := freeze.NewDecoder(enc.Data())
	test.DemandSuccess(t, err)

	b, bVU, _, _ := newVIF(1)
	test.DemandSuccess(t, b.Thaw(dec))
	test.DemandSuccess(t, bVU.Thaw(dec))

	test.ExpectEquality(t, b.Process(words[split:]), len(words)-split)
	test.ExpectEquality(t, string(bVU.Data), string(refVU.Data))
	test.ExpectEquality(t, string(bVU.Micro), string(refVU.Micro))
}

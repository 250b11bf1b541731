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

package registers_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/hardware/dmac"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/hardware/memory"
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherps2/hardware/registers"
	"github.com/jetsetilly/gopherps2/hardware/vif"
	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/test"
)

type clock struct {
	cycle uint64
}

func (clk *clock) Cycle() uint64 {
	return clk.cycle
}

type rig struct {
	mem  *memory.Memory
	cs   *counters.Counters
	d    *dmac.DMAC
	intc *interrupts.INTC
	vif0 *vif.VIF
	vif1 *vif.VIF
	regs *registers.Registers
}

func newRig() *rig {
	r := &rig{}
	r.mem = memory.NewMemory()
	r.intc = interrupts.NewINTC()
	r.cs = counters.NewCounters(&clock{}, r.intc, clocks.NTSC)
	r.d = dmac.NewDMAC(r.mem)
	r.vif0 = vif.NewVIF(0, vu.NewVU(0), nil, r.intc)
	r.vif1 = vif.NewVIF(1, vu.NewVU(1), nil, r.intc)
	r.d.Attach(dmac.VIF0, r.vif0)
	r.d.Attach(dmac.VIF1, r.vif1)
	r.regs = registers.NewRegisters(r.mem, r.cs, r.d, r.intc, r.vif0, r.vif1)
	return r
}

func quad(w ...uint32) [16]byte {
	var b [16]byte
	for i := range w {
		binary.LittleEndian.PutUint32(b[i*4:], w[i])
	}
	return b
}

func TestRAM(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(0x00100000, 0x12345678))
	v, err := r.regs.Read32(0x00100000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x12345678))

	// kernel segment addresses the same memory
	v, _ = r.regs.Read32(0x80100000)
	test.ExpectEquality(t, v, uint32(0x12345678))

	b, _ := r.regs.Read8(0x00100001)
	test.ExpectEquality(t, b, uint8(0x56))

	test.ExpectSuccess(t, r.regs.Write64(0x00100008, 0x1122334455667788))
	d, _ := r.regs.Read64(0x00100008)
	test.ExpectEquality(t, d, uint64(0x1122334455667788))

	q := quad(1, 2, 3, 4)
	test.ExpectSuccess(t, r.regs.Write128(0x00100010, q))
	p, _ := r.regs.Read128(0x00100010)
	test.ExpectEquality(t, p, q)
}

func TestScratchpad(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(0x70000010, 0xdeadbeef))
	test.ExpectEquality(t, binary.LittleEndian.Uint32(r.mem.Scratchpad[0x10:]), uint32(0xdeadbeef))

	h, _ := r.regs.Read16(0x70000012)
	test.ExpectEquality(t, h, uint16(0xdead))
}

func TestAlignment(t *testing.T) {
	r := newRig()

	_, err := r.regs.Read32(0x10000002)
	test.ExpectEquality(t, curated.Is(err, registers.Misaligned), true)

	err = r.regs.Write(0x10000000, make([]byte, 3))
	test.ExpectEquality(t, curated.Is(err, registers.InvalidWidth), true)

	_, err = r.regs.Read32(0x12000000)
	test.ExpectEquality(t, curated.Is(err, memory.BusError), true)
}

func TestCounters(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(0x10000810, 0x80))
	test.ExpectEquality(t, r.cs.ReadMode(1), uint32(0x80))

	test.ExpectSuccess(t, r.regs.Write32(0x10001820, 0x1234))
	test.ExpectEquality(t, r.cs.ReadTarget(3), uint32(0x1234))
	v, _ := r.regs.Read32(0x10001820)
	test.ExpectEquality(t, v, uint32(0x1234))

	// counters 2 and 3 have no hold register
	test.ExpectSuccess(t, r.regs.Write32(0x10001030, 0x55))
	test.ExpectEquality(t, r.cs.ReadHold(2), uint32(0))
	v, _ = r.regs.Read32(0x10001030)
	test.ExpectEquality(t, v, uint32(0x55))

	// a 64 bit write puts the high word in the backing store
	test.ExpectSuccess(t, r.regs.Write64(0x10000020, 0x0000007700000099))
	test.ExpectEquality(t, r.cs.ReadTarget(0), uint32(0x99))
	v, _ = r.regs.Read32(0x10000024)
	test.ExpectEquality(t, v, uint32(0x77))
}

func TestMerge(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(0x10009010, 0x12345670))
	test.ExpectSuccess(t, r.regs.Write8(0x10009011, 0xab))
	test.ExpectEquality(t, r.d.Channel[dmac.VIF1].MADR, uint32(0x1234ab70))

	test.ExpectSuccess(t, r.regs.Write16(0x10009012, 0xbeef))
	test.ExpectEquality(t, r.d.Channel[dmac.VIF1].MADR, uint32(0xbeefab70))

	b, _ := r.regs.Read8(0x10009013)
	test.ExpectEquality(t, b, uint8(0xbe))
}

func TestActionRegisters(t *testing.T) {
	r := newRig()

	// the unwritten half of D_STAT does not clear the status bits
	r.d.Stat = 0x00000003
	test.ExpectSuccess(t, r.regs.Write8(dmac.DStat+2, 0x01))
	test.ExpectEquality(t, r.d.Stat, uint32(0x00010003))
	test.ExpectSuccess(t, r.regs.Write8(dmac.DStat, 0x01))
	test.ExpectEquality(t, r.d.Stat, uint32(0x00010002))

	r.intc.Raise(interrupts.VIF0)
	r.intc.Raise(interrupts.VIF1)
	test.ExpectSuccess(t, r.regs.Write8(memorymap.INTCStat, 0x10))
	test.ExpectEquality(t, r.intc.Stat, uint32(0x20))
	test.ExpectSuccess(t, r.regs.Write16(memorymap.INTCStat+2, 0))
	test.ExpectEquality(t, r.intc.Stat, uint32(0x20))

	test.ExpectSuccess(t, r.regs.Write8(memorymap.INTCMask+1, 0x02))
	test.ExpectEquality(t, r.intc.Mask, uint32(0x0200))
	test.ExpectSuccess(t, r.regs.Write8(memorymap.INTCMask, 0x20))
	test.ExpectEquality(t, r.intc.Mask, uint32(0x0220))

	// the flag bits of a counter's mode are not cleared by a write to the
	// low byte
	r.cs.Counter[0].Mode = counters.Mode(0x480)
	test.ExpectSuccess(t, r.regs.Write8(0x10000011, 0x01))
	test.ExpectEquality(t, r.cs.ReadMode(0), uint32(0x580))
	test.ExpectSuccess(t, r.regs.Write8(0x10000011, 0x05))
	test.ExpectEquality(t, r.cs.ReadMode(0), uint32(0x180))
}

func TestVIF(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(vif.RegisterBase[1]+vif.RegR0+0x10, 7))
	test.ExpectEquality(t, r.vif1.Regs.R[1], uint32(7))
	v, _ := r.regs.Read32(vif.RegisterBase[1] + vif.RegR0 + 0x10)
	test.ExpectEquality(t, v, uint32(7))

	// FIFO writes are decoded
	test.ExpectSuccess(t, r.regs.Write128(vif.FIFOBase[0], quad(vif.NewCode(vif.STMOD, 0, 1, false))))
	test.ExpectEquality(t, r.vif0.Regs.MODE, uint32(1))

	// narrower writes are ignored
	test.ExpectSuccess(t, r.regs.Write32(vif.FIFOBase[0], vif.NewCode(vif.STMOD, 0, 2, false)))
	test.ExpectEquality(t, r.vif0.Regs.MODE, uint32(1))

	// a stopped VIF refuses data
	test.ExpectSuccess(t, r.regs.Write32(vif.RegisterBase[1]+vif.RegFBRST, vif.FbrstSTP))
	test.ExpectEquality(t, r.vif1.Stalled, true)
	err := r.regs.Write128(vif.FIFOBase[1], quad())
	test.ExpectEquality(t, curated.Is(err, registers.FIFORefused), true)
}

func TestDMAStart(t *testing.T) {
	r := newRig()

	q := quad(vif.NewCode(vif.STMOD, 0, 2, false))
	test.DemandSuccess(t, r.mem.Write(0x1000, q[:]))

	test.ExpectSuccess(t, r.regs.Write32(0x10009010, 0x1000))
	test.ExpectSuccess(t, r.regs.Write32(0x10009020, 1))
	test.ExpectSuccess(t, r.regs.Write32(0x10009000, 0x101))

	test.ExpectEquality(t, r.vif1.Regs.MODE, uint32(2))
	test.ExpectEquality(t, r.d.Channel[dmac.VIF1].State, dmac.Done)
	test.ExpectEquality(t, r.d.Stat&0x02, uint32(0x02))

	chcr, _ := r.regs.Read32(0x10009000)
	test.ExpectEquality(t, chcr&0x100, uint32(0))
}

func TestBackingStore(t *testing.T) {
	r := newRig()

	test.ExpectSuccess(t, r.regs.Write32(0x1000f100, 5))
	v, _ := r.regs.Read32(0x1000f100)
	test.ExpectEquality(t, v, uint32(5))

	test.ExpectSuccess(t, r.regs.Write8(0x1000f102, 0xaa))
	v, _ = r.regs.Read32(0x1000f100)
	test.ExpectEquality(t, v, uint32(0x00aa0005))

	// D_ENABLEW is mirrored by D_ENABLER
	test.ExpectSuccess(t, r.regs.Write32(memorymap.DEnableW, 0x11201))
	v, _ = r.regs.Read32(memorymap.DEnableR)
	test.ExpectEquality(t, v, uint32(0x11201))

	r.regs.Reset()
	v, _ = r.regs.Read32(0x1000f100)
	test.ExpectEquality(t, v, uint32(0))
}

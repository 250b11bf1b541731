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

package registers

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/hardware/dmac"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/hardware/memory"
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherps2/hardware/vif"
	"github.com/jetsetilly/gopherps2/logger"
)

// Error patterns.
const (
	Misaligned   = "registers: misaligned %d bit access at %#08x"
	FIFORefused  = "registers: %v FIFO refused quadword"
	InvalidWidth = "registers: invalid access width (%d bytes)"
)

// Offsets of the counter registers. Counter n starts at OriginCounters +
// n*CounterStride.
const (
	CounterStride = 0x800
	RegCount      = 0x00
	RegMode       = 0x10
	RegComp       = 0x20
	RegHold       = 0x30
)

// Registers is the EE's view of memory and the hardware registers.
type Registers struct {
	mem      *memory.Memory
	counters *counters.Counters
	dmac     *dmac.DMAC
	intc     *interrupts.INTC
	vif      [2]*vif.VIF

	// words of the IO area that are not a register
	store map[uint32]uint32
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters(mem *memory.Memory, cs *counters.Counters, d *dmac.DMAC, intc *interrupts.INTC,
	vif0 *vif.VIF, vif1 *vif.VIF) *Registers {
	if mem == nil || cs == nil || d == nil || intc == nil || vif0 == nil || vif1 == nil {
		panic("registers: nil collaborator")
	}
	return &Registers{
		mem:      mem,
		counters: cs,
		dmac:     d,
		intc:     intc,
		vif:      [2]*vif.VIF{vif0, vif1},
		store:    make(map[uint32]uint32),
	}
}

// Reset clears the backing store.
func (r *Registers) Reset() {
	clear(r.store)
}

// Read len(data) bytes from the address. The length must be 1, 2, 4, 8 or
// 16 and the address must be aligned to the length.
func (r *Registers) Read(address uint32, data []byte) error {
	if err := check(address, len(data)); err != nil {
		return err
	}

	area, offset := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return r.mem.Read(offset, data)
	case memorymap.Scratchpad:
		return r.mem.Read(memorymap.SPRFlag|offset, data)
	case memorymap.VIF0FIFO, memorymap.VIF1FIFO:
		// reading back from the FIFO is not supported
		clear(data)
		return nil
	case memorymap.Undefined:
		return curated.Errorf(memory.BusError, address)
	}

	phys := address & memorymap.PhysMask
	if len(data) < 4 {
		w := r.readWord(phys &^ 3)
		shift := (phys & 3) * 8
		for i := range data {
			data[i] = uint8(w >> (shift + uint32(i)*8))
		}
		return nil
	}

	for i := 0; i < len(data); i += 4 {
		binary.LittleEndian.PutUint32(data[i:], r.readWord(phys+uint32(i)))
	}
	return nil
}

// Write len(data) bytes to the address. The length must be 1, 2, 4, 8 or 16
// and the address must be aligned to the length.
func (r *Registers) Write(address uint32, data []byte) error {
	if err := check(address, len(data)); err != nil {
		return err
	}

	area, offset := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return r.mem.Write(offset, data)
	case memorymap.Scratchpad:
		return r.mem.Write(memorymap.SPRFlag|offset, data)
	case memorymap.VIF0FIFO:
		return r.writeFIFO(r.vif[0], data)
	case memorymap.VIF1FIFO:
		return r.writeFIFO(r.vif[1], data)
	case memorymap.Undefined:
		return curated.Errorf(memory.BusError, address)
	}

	phys := address & memorymap.PhysMask
	if len(data) < 4 {
		var v, lanes uint32
		shift := (phys & 3) * 8
		for i := range data {
			v |= uint32(data[i]) << (shift + uint32(i)*8)
			lanes |= 0xff << (shift + uint32(i)*8)
		}
		r.writeWord(phys&^3, v, lanes)
	} else {
		for i := 0; i < len(data); i += 4 {
			r.writeWord(phys+uint32(i), binary.LittleEndian.Uint32(data[i:]), 0xffffffff)
		}
	}

	// changes to the DMAC can start a transfer
	switch area {
	case memorymap.DMAChannel, memorymap.DMAC, memorymap.IO:
		r.dmac.Service()
	}

	return nil
}

func check(address uint32, n int) error {
	switch n {
	case 1, 2, 4, 8, 16:
	default:
		return curated.Errorf(InvalidWidth, n)
	}
	if address&uint32(n-1) != 0 {
		return curated.Errorf(Misaligned, n*8, address)
	}
	return nil
}

func (r *Registers) writeFIFO(v *vif.VIF, data []byte) error {
	if len(data) != memorymap.QuadBytes {
		logger.Logf(logger.Allow, "registers", "%d bit write to %s FIFO ignored", len(data)*8, v)
		return nil
	}
	if v.FromMemory(data) == 0 {
		return curated.Errorf(FIFORefused, fmt.Sprintf("VIF%d", v.ID))
	}
	return nil
}

// readWord returns the value of the 32-bit word at the physical address.
// reading never changes the state of the hardware.
func (r *Registers) readWord(address uint32) uint32 {
	area, offset := memorymap.MapAddress(address)

	switch area {
	case memorymap.Counters:
		if v, ok := r.readCounter(offset); ok {
			return v
		}
	case memorymap.VIF0:
		if v, ok := r.vif[0].Read(offset); ok {
			return v
		}
	case memorymap.VIF1:
		if v, ok := r.vif[1].Read(offset); ok {
			return v
		}
	case memorymap.DMAChannel, memorymap.DMAC, memorymap.IO:
		if v, ok := r.dmac.Read(address); ok {
			return v
		}
	case memorymap.INTC:
		if address == memorymap.INTCStat {
			return r.intc.Stat
		}
		return r.intc.Mask
	}

	return r.store[address]
}

// writeWord writes the bits of value selected by lanes to the word at the
// physical address.
func (r *Registers) writeWord(address uint32, value uint32, lanes uint32) {
	area, offset := memorymap.MapAddress(address)

	if lanes != 0xffffffff {
		action := r.actionBits(area, address, offset)
		value = (r.readWord(address) &^ lanes &^ action) | (value & lanes)
	}

	switch area {
	case memorymap.Counters:
		if r.writeCounter(offset, value) {
			return
		}
	case memorymap.VIF0:
		if r.vif[0].Write(offset, value) {
			return
		}
	case memorymap.VIF1:
		if r.vif[1].Write(offset, value) {
			return
		}
	case memorymap.DMAChannel, memorymap.DMAC, memorymap.IO:
		if r.dmac.Write(address, value) {
			return
		}
	case memorymap.INTC:
		if address == memorymap.INTCStat {
			r.intc.WriteStat(value)
		} else {
			r.intc.WriteMask(value)
		}
		return
	}

	r.store[address] = value
}

// actionBits returns the bits of a register that perform an action when
// written as one.
func (r *Registers) actionBits(area memorymap.Area, address uint32, offset uint32) uint32 {
	switch area {
	case memorymap.INTC:
		return 0xffffffff
	case memorymap.DMAC:
		if address == dmac.DStat {
			return 0xffffffff
		}
	case memorymap.VIF0, memorymap.VIF1:
		if offset == vif.RegFBRST {
			return 0xffffffff
		}
	case memorymap.Counters:
		if offset%CounterStride == RegMode {
			return counters.ModeFlags
		}
	}
	return 0
}

func (r *Registers) readCounter(offset uint32) (uint32, bool) {
	id := int(offset / CounterStride)
	switch offset % CounterStride {
	case RegCount:
		return r.counters.ReadCount(id), true
	case RegMode:
		return r.counters.ReadMode(id), true
	case RegComp:
		return r.counters.ReadTarget(id), true
	case RegHold:
		if id < 2 {
			return r.counters.ReadHold(id), true
		}
	}
	return 0, false
}

func (r *Registers) writeCounter(offset uint32, value uint32) bool {
	id := int(offset / CounterStride)
	switch offset % CounterStride {
	case RegCount:
		r.counters.WriteCount(id, value)
	case RegMode:
		r.counters.WriteMode(id, value)
	case RegComp:
		r.counters.WriteTarget(id, value)
	case RegHold:
		if id >= 2 {
			return false
		}
		r.counters.WriteHold(id, value)
	default:
		return false
	}
	return true
}

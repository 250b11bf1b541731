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

package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case Scratchpad:
		return "Scratchpad"
	case Counters:
		return "Counters"
	case VIF0:
		return "VIF0"
	case VIF1:
		return "VIF1"
	case VIF0FIFO:
		return "VIF0 FIFO"
	case VIF1FIFO:
		return "VIF1 FIFO"
	case DMAChannel:
		return "DMA channel"
	case DMAC:
		return "DMAC"
	case INTC:
		return "INTC"
	case IO:
		return "IO"
	}
	return "undefined"
}

// List of memory areas.
const (
	Undefined Area = iota
	RAM
	Scratchpad
	Counters
	VIF0
	VIF1
	VIF0FIFO
	VIF1FIFO
	DMAChannel
	DMAC
	INTC
	IO
)

// The origin and memory top for each area of memory.
const (
	OriginRAM        = uint32(0x00000000)
	MemtopRAM        = uint32(0x01ffffff)
	OriginIO         = uint32(0x10000000)
	MemtopIO         = uint32(0x1000ffff)
	OriginCounters   = uint32(0x10000000)
	MemtopCounters   = uint32(0x10001fff)
	OriginVIF0       = uint32(0x10003800)
	MemtopVIF0       = uint32(0x10003bff)
	OriginVIF1       = uint32(0x10003c00)
	MemtopVIF1       = uint32(0x10003fff)
	OriginVIF0FIFO   = uint32(0x10004000)
	MemtopVIF0FIFO   = uint32(0x10004fff)
	OriginVIF1FIFO   = uint32(0x10005000)
	MemtopVIF1FIFO   = uint32(0x10005fff)
	OriginDMAChannel = uint32(0x10008000)
	MemtopDMAChannel = uint32(0x1000dfff)
	OriginDMAC       = uint32(0x1000e000)
	MemtopDMAC       = uint32(0x1000e0ff)
	OriginScratchpad = uint32(0x70000000)
	MemtopScratchpad = uint32(0x70003fff)
)

// Addresses of the registers that sit outside the regular areas.
const (
	INTCStat  = uint32(0x1000f000)
	INTCMask  = uint32(0x1000f010)
	DEnableR  = uint32(0x1000f520)
	DEnableW  = uint32(0x1000f590)
	SizeRAM   = MemtopRAM - OriginRAM + 1
	SizeSPR   = MemtopScratchpad - OriginScratchpad + 1
	SPRFlag   = uint32(0x80000000)
	PhysMask  = uint32(0x1fffffff)
	QuadBytes = 16
)

// MapAddress returns the area the address falls in and the offset of the
// address from the origin of that area. Virtual kernel segment bits are
// removed before mapping, except for the scratchpad which only exists as a
// virtual address.
func MapAddress(address uint32) (Area, uint32) {
	if address >= OriginScratchpad && address <= MemtopScratchpad {
		return Scratchpad, address - OriginScratchpad
	}

	address &= PhysMask

	switch {
	case address <= MemtopRAM:
		return RAM, address
	case address >= OriginCounters && address <= MemtopCounters:
		return Counters, address - OriginCounters
	case address >= OriginVIF0 && address <= MemtopVIF0:
		return VIF0, address - OriginVIF0
	case address >= OriginVIF1 && address <= MemtopVIF1:
		return VIF1, address - OriginVIF1
	case address >= OriginVIF0FIFO && address <= MemtopVIF0FIFO:
		return VIF0FIFO, address - OriginVIF0FIFO
	case address >= OriginVIF1FIFO && address <= MemtopVIF1FIFO:
		return VIF1FIFO, address - OriginVIF1FIFO
	case address >= OriginDMAChannel && address <= MemtopDMAChannel:
		return DMAChannel, address - OriginDMAChannel
	case address >= OriginDMAC && address <= MemtopDMAC:
		return DMAC, address - OriginDMAC
	case address == INTCStat || address == INTCMask:
		return INTC, address - INTCStat
	case address >= OriginIO && address <= MemtopIO:
		return IO, address - OriginIO
	}

	return Undefined, address
}

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

package dmac

import "github.com/jetsetilly/gopherps2/hardware/memory/memorymap"

// mfifoDrain returns the channel that reads from the MFIFO ring or -1 if the
// MFIFO is not in use.
func (d *DMAC) mfifoDrain() int {
	switch (d.Ctrl & ctrlMFD) >> 2 {
	case 2:
		return VIF1
	case 3:
		return GIF
	}
	return -1
}

// ringAddress masks an address into the ring.
func (d *DMAC) ringAddress(address uint32) uint32 {
	return d.RBOR + (address & d.RBSR)
}

// ringEnd is the first address after the ring.
func (d *DMAC) ringEnd() uint32 {
	return d.RBOR + d.RBSR + memorymap.QuadBytes
}

// ringAvailable returns the number of quadwords between the address and the
// write position of the ring.
func (d *DMAC) ringAvailable(address uint32) uint32 {
	w := d.ringAddress(d.Channel[FromSPR].MADR)
	r := d.ringAddress(address)
	return ((w - r) & d.RBSR) / memorymap.QuadBytes
}

// ringSplit divides a transfer of n bytes at address into the part that fits
// before the end of the ring and the part that wraps to the start.
func (d *DMAC) ringSplit(address uint32, n int) (uint32, int, int) {
	a := d.ringAddress(address)
	end := d.ringEnd()
	if a+uint32(n) > end {
		s := int(end - a)
		return a, s, n - s
	}
	return a, n, 0
}

// readRing reads from the ring. a read that crosses the end of the ring is
// two reads from memory.
func (d *DMAC) readRing(address uint32, data []byte) error {
	a, s1, s2 := d.ringSplit(address, len(data))
	if err := d.mem.Read(a, data[:s1]); err != nil {
		return err
	}
	if s2 > 0 {
		return d.mem.Read(d.RBOR, data[s1:])
	}
	return nil
}

// writeRing writes to the ring. a write that crosses the end of the ring is
// two writes to memory.
func (d *DMAC) writeRing(address uint32, data []byte) error {
	a, s1, s2 := d.ringSplit(address, len(data))
	if err := d.mem.Write(a, data[:s1]); err != nil {
		return err
	}
	if s2 > 0 {
		return d.mem.Write(d.RBOR, data[s1:])
	}
	return nil
}

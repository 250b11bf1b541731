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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherps2/test"
)

func TestMapAddress(t *testing.T) {
	for _, c := range []struct {
		address uint32
		area    memorymap.Area
		offset  uint32
	}{
		{0x00100000, memorymap.RAM, 0x00100000},
		{0x80100000, memorymap.RAM, 0x00100000},
		{0x70000010, memorymap.Scratchpad, 0x10},
		{0x10000810, memorymap.Counters, 0x810},
		{0x10003c00, memorymap.VIF1, 0},
		{0x10005000, memorymap.VIF1FIFO, 0},
		{0x10009010, memorymap.DMAChannel, 0x1010},
		{0x1000e010, memorymap.DMAC, 0x10},
		{0x1000f010, memorymap.INTC, 0x10},
		{0x1000f590, memorymap.IO, 0xf590},
		{0x12000000, memorymap.Undefined, 0x12000000},
	} {
		area, offset := memorymap.MapAddress(c.address)
		test.ExpectEquality(t, area, c.area, c.address)
		test.ExpectEquality(t, offset, c.offset, c.address)
	}
}

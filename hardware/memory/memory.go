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

package memory

import (
	"encoding/binary"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
)

// BusError is the pattern for errors caused by an access to an address that
// is not backed by any memory.
const BusError = "memory: bus error at %#08x"

// Memory is the main RAM and the scratchpad. It is the memory-access
// collaborator for the DMAC.
//
// Addresses given to Read() and Write() are in the form used by the DMA
// channel registers. If bit 31 is set the address is an offset into the
// scratchpad, otherwise it is a physical RAM address.
type Memory struct {
	RAM        []byte
	Scratchpad []byte
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		RAM:        make([]byte, memorymap.SizeRAM),
		Scratchpad: make([]byte, memorymap.SizeSPR),
	}
}

// Reset clears all memory.
func (mem *Memory) Reset() {
	clear(mem.RAM)
	clear(mem.Scratchpad)
}

// area returns the slice of memory for the address and length. scratchpad
// addressing wraps at the end of the scratchpad. RAM accesses must fit inside
// RAM.
func (mem *Memory) area(address uint32, n int) ([]byte, []byte, error) {
	if address&memorymap.SPRFlag == memorymap.SPRFlag {
		o := int(address & (memorymap.SizeSPR - 1))
		if o+n <= len(mem.Scratchpad) {
			return mem.Scratchpad[o : o+n], nil, nil
		}
		return mem.Scratchpad[o:], mem.Scratchpad[:o+n-len(mem.Scratchpad)], nil
	}

	area, o := memorymap.MapAddress(address)
	if area != memorymap.RAM || int(o)+n > len(mem.RAM) {
		return nil, nil, curated.Errorf(BusError, address)
	}
	return mem.RAM[o : int(o)+n], nil, nil
}

// Read len(data) bytes from address.
func (mem *Memory) Read(address uint32, data []byte) error {
	a, b, err := mem.area(address, len(data))
	if err != nil {
		return err
	}
	n := copy(data, a)
	copy(data[n:], b)
	return nil
}

// Write data to address.
func (mem *Memory) Write(address uint32, data []byte) error {
	a, b, err := mem.area(address, len(data))
	if err != nil {
		return err
	}
	n := copy(a, data)
	copy(b, data[n:])
	return nil
}

// Peek returns the 32-bit little-endian value at address without side effects.
func (mem *Memory) Peek(address uint32) (uint32, error) {
	var d [4]byte
	if err := mem.Read(address, d[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d[:]), nil
}

// Poke writes a 32-bit little-endian value to address.
func (mem *Memory) Poke(address uint32, value uint32) error {
	var d [4]byte
	binary.LittleEndian.PutUint32(d[:], value)
	return mem.Write(address, d[:])
}

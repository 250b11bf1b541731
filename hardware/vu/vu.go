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

// Package vu is the vector unit as seen by the VIF. Only the data and micro
// memories are emulated. Microprograms are not executed, a program start is
// recorded and handed to an optional observer.
package vu

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopherps2/hardware/freeze"
)

// Memory sizes in bytes for each unit.
const (
	VU0DataSize  = 0x1000
	VU0MicroSize = 0x1000
	VU1DataSize  = 0x4000
	VU1MicroSize = 0x4000
)

// Start describes a request to run a microprogram.
type Start struct {
	// byte address in micro memory. not used if Continue is true
	Address  uint32
	Continue bool

	TOP  uint32
	ITOP uint32
}

func (s Start) String() string {
	if s.Continue {
		return fmt.Sprintf("continue top=%#03x itop=%#03x", s.TOP, s.ITOP)
	}
	return fmt.Sprintf("%#04x top=%#03x itop=%#03x", s.Address, s.TOP, s.ITOP)
}

// VU is one vector unit.
type VU struct {
	ID    int
	Data  []byte
	Micro []byte

	// the most recent program start and the number of starts since reset
	Last   Start
	Starts int

	// a started program ends immediately unless Hold is true. a held program
	// runs until Finish() is called
	Hold    bool
	running bool

	observer func(Start)
}

// NewVU is the preferred method of initialisation for the VU type.
func NewVU(id int) *VU {
	vu := &VU{ID: id}
	switch id {
	case 0:
		vu.Data = make([]byte, VU0DataSize)
		vu.Micro = make([]byte, VU0MicroSize)
	case 1:
		vu.Data = make([]byte, VU1DataSize)
		vu.Micro = make([]byte, VU1MicroSize)
	default:
		panic(fmt.Sprintf("vu: no unit %d", id))
	}
	return vu
}

func (vu *VU) String() string {
	return fmt.Sprintf("VU%d starts=%d last=%s busy=%v", vu.ID, vu.Starts, vu.Last, vu.running)
}

// Reset clears memory and stops any running program.
func (vu *VU) Reset() {
	clear(vu.Data)
	clear(vu.Micro)
	vu.Last = Start{}
	vu.Starts = 0
	vu.running = false
}

// SetObserver sets the function called on every program start.
func (vu *VU) SetObserver(f func(Start)) {
	vu.observer = f
}

// Start a microprogram.
func (vu *VU) Start(s Start) {
	vu.Last = s
	vu.Starts++
	vu.running = vu.Hold
	if vu.observer != nil {
		vu.observer(s)
	}
}

// Finish the running program.
func (vu *VU) Finish() {
	vu.running = false
}

// Busy returns true if a program is running.
func (vu *VU) Busy() bool {
	return vu.running
}

// DataQuadwords returns the size of data memory in quadwords.
func (vu *VU) DataQuadwords() uint32 {
	return uint32(len(vu.Data) / 16)
}

// dataOffset returns the byte offset of a component. addresses wrap.
func (vu *VU) dataOffset(qaddr uint32, comp int) int {
	return int(qaddr%vu.DataQuadwords())*16 + comp*4
}

// ReadData returns one 32-bit component of a quadword in data memory.
func (vu *VU) ReadData(qaddr uint32, comp int) uint32 {
	return binary.LittleEndian.Uint32(vu.Data[vu.dataOffset(qaddr, comp):])
}

// WriteData writes one 32-bit component of a quadword in data memory.
func (vu *VU) WriteData(qaddr uint32, comp int, value uint32) {
	binary.LittleEndian.PutUint32(vu.Data[vu.dataOffset(qaddr, comp):], value)
}

// WriteMicro writes a 32-bit word to micro memory at a byte address. The
// address wraps.
func (vu *VU) WriteMicro(addr uint32, value uint32) {
	o := int(addr&^3) % len(vu.Micro)
	binary.LittleEndian.PutUint32(vu.Micro[o:], value)
}

// ReadMicro returns the 32-bit word in micro memory at a byte address.
func (vu *VU) ReadMicro(addr uint32) uint32 {
	o := int(addr&^3) % len(vu.Micro)
	return binary.LittleEndian.Uint32(vu.Micro[o:])
}

// Freeze implements the freeze.Freezer interface.
func (vu *VU) Freeze(enc *freeze.Encoder) {
	enc.Bytes(vu.Data)
	enc.Bytes(vu.Micro)
	enc.Uint32(vu.Last.Address)
	enc.Bool(vu.Last.Continue)
	enc.Uint32(vu.Last.TOP)
	enc.Uint32(vu.Last.ITOP)
	enc.Int(vu.Starts)
	enc.Bool(vu.running)
}

// Thaw implements the freeze.Freezer interface.
func (vu *VU) Thaw(dec *freeze.Decoder) error {
	dec.BytesInto(vu.Data)
	dec.BytesInto(vu.Micro)
	vu.Last.Address = dec.Uint32()
	vu.Last.Continue = dec.Bool()
	vu.Last.TOP = dec.Uint32()
	vu.Last.ITOP = dec.Uint32()
	vu.Starts = dec.Int()
	vu.running = dec.Bool()
	return dec.Err()
}

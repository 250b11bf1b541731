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

package vif

import "fmt"

// Opcode of a VIFcode.
type Opcode uint8

// List of valid opcodes. UNPACK covers the range 0x60 to 0x7f.
const (
	NOP      Opcode = 0x00
	STCYCL   Opcode = 0x01
	OFFSET   Opcode = 0x02
	BASE     Opcode = 0x03
	ITOP     Opcode = 0x04
	STMOD    Opcode = 0x05
	MSKPATH3 Opcode = 0x06
	MARK     Opcode = 0x07
	FLUSHE   Opcode = 0x10
	FLUSH    Opcode = 0x11
	FLUSHA   Opcode = 0x13
	MSCAL    Opcode = 0x14
	MSCALF   Opcode = 0x15
	MSCNT    Opcode = 0x17
	STMASK   Opcode = 0x20
	STROW    Opcode = 0x30
	STCOL    Opcode = 0x31
	MPG      Opcode = 0x4a
	DIRECT   Opcode = 0x50
	DIRECTHL Opcode = 0x51
	UNPACK   Opcode = 0x60
)

// IsUnpack returns true for all UNPACK opcodes.
func (op Opcode) IsUnpack() bool {
	return op&0x60 == 0x60
}

func (op Opcode) String() string {
	if op.IsUnpack() {
		return fmt.Sprintf("UNPACK %s", unpackFormat(op))
	}
	switch op {
	case NOP:
		return "NOP"
	case STCYCL:
		return "STCYCL"
	case OFFSET:
		return "OFFSET"
	case BASE:
		return "BASE"
	case ITOP:
		return "ITOP"
	case STMOD:
		return "STMOD"
	case MSKPATH3:
		return "MSKPATH3"
	case MARK:
		return "MARK"
	case FLUSHE:
		return "FLUSHE"
	case FLUSH:
		return "FLUSH"
	case FLUSHA:
		return "FLUSHA"
	case MSCAL:
		return "MSCAL"
	case MSCALF:
		return "MSCALF"
	case MSCNT:
		return "MSCNT"
	case STMASK:
		return "STMASK"
	case STROW:
		return "STROW"
	case STCOL:
		return "STCOL"
	case MPG:
		return "MPG"
	case DIRECT:
		return "DIRECT"
	case DIRECTHL:
		return "DIRECTHL"
	}
	return fmt.Sprintf("unknown opcode (%#02x)", uint8(op))
}

// vif1Only returns true for opcodes that are not recognised by VIF0.
func (op Opcode) vif1Only() bool {
	switch op {
	case OFFSET, BASE, MSKPATH3, DIRECT, DIRECTHL:
		return true
	}
	return false
}

// known returns true if the opcode is recognised by the unit.
func (op Opcode) known(unit int) bool {
	if op.IsUnpack() {
		return true
	}
	switch op {
	case NOP, STCYCL, ITOP, STMOD, MARK, FLUSHE, FLUSH, FLUSHA, MSCAL, MSCALF,
		MSCNT, STMASK, STROW, STCOL, MPG:
		return true
	}
	return unit == 1 && op.vif1Only()
}

// Code is a VIFcode.
type Code uint32

// Opcode returns the opcode of the VIFcode.
func (c Code) Opcode() Opcode {
	return Opcode(c>>24) & 0x7f
}

// Interrupt returns true if the interrupt bit is set.
func (c Code) Interrupt() bool {
	return c&0x80000000 == 0x80000000
}

// Num returns the num field.
func (c Code) Num() uint32 {
	return uint32(c>>16) & 0xff
}

// Imm returns the immediate field.
func (c Code) Imm() uint32 {
	return uint32(c) & 0xffff
}

func (c Code) String() string {
	s := fmt.Sprintf("%s num=%d imm=%#04x", c.Opcode(), c.Num(), c.Imm())
	if c.Interrupt() {
		s += " [i]"
	}
	return s
}

// NewCode builds a VIFcode. Used to build streams for testing and scripting.
func NewCode(op Opcode, num uint8, imm uint16, interrupt bool) uint32 {
	c := uint32(op)<<24 | uint32(num)<<16 | uint32(imm)
	if interrupt {
		c |= 0x80000000
	}
	return c
}

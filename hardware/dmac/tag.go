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

import (
	"encoding/binary"
	"fmt"
)

// ChainID selects the instruction of a chain tag.
type ChainID int

// Source chain IDs.
const (
	REFE ChainID = iota
	CNT
	NEXT
	REF
	REFS
	CALL
	RET
	END
)

// Destination chain IDs. The tag of a destination chain is provided by the
// peripheral.
const (
	DestCNTS ChainID = 0
	DestCNT  ChainID = 1
	DestEND  ChainID = 7
)

func (id ChainID) String() string {
	switch id {
	case REFE:
		return "REFE"
	case CNT:
		return "CNT"
	case NEXT:
		return "NEXT"
	case REF:
		return "REF"
	case REFS:
		return "REFS"
	case CALL:
		return "CALL"
	case RET:
		return "RET"
	case END:
		return "END"
	}
	return fmt.Sprintf("ID%d", int(id))
}

// TagSize is the number of bytes in a chain tag.
const TagSize = 16

// Tag is a decoded chain tag.
//
//	bits  0-15	QWC
//	bits 26-27	PCE
//	bits 28-30	ID
//	bit     31	IRQ
//	bits 32-63	ADDR (bit 63 selects the scratchpad)
//	bits 64-127	data forwarded to the peripheral when CHCR.TTE is set
type Tag struct {
	QWC  uint16
	PCE  uint8
	ID   ChainID
	IRQ  bool
	Addr uint32
	Data [8]byte
}

// DecodeTag decodes the first 16 bytes of b.
func DecodeTag(b []byte) Tag {
	lo := binary.LittleEndian.Uint32(b[0:])
	t := Tag{
		QWC:  uint16(lo),
		PCE:  uint8(lo>>26) & 0x03,
		ID:   ChainID(lo>>28) & 0x07,
		IRQ:  lo&0x80000000 == 0x80000000,
		Addr: binary.LittleEndian.Uint32(b[4:]) &^ 0x0f,
	}
	copy(t.Data[:], b[8:16])
	return t
}

// Encode the tag in its 16 byte form.
func (t Tag) Encode() [TagSize]byte {
	var b [TagSize]byte
	lo := uint32(t.QWC) | uint32(t.PCE&0x03)<<26 | uint32(t.ID&0x07)<<28
	if t.IRQ {
		lo |= 0x80000000
	}
	binary.LittleEndian.PutUint32(b[0:], lo)
	binary.LittleEndian.PutUint32(b[4:], t.Addr)
	copy(b[8:], t.Data[:])
	return b
}

// upper returns bits 16 to 31 of the tag, which are copied into CHCR.
func (t Tag) upper() uint16 {
	b := t.Encode()
	return binary.LittleEndian.Uint16(b[2:])
}

func (t Tag) String() string {
	s := fmt.Sprintf("%s qwc=%d addr=%#08x", t.ID, t.QWC, t.Addr)
	if t.IRQ {
		s += " irq"
	}
	return s
}

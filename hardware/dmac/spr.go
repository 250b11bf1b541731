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
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
)

// the scratchpad is the peripheral of the fromSPR and toSPR channels. the
// position in the scratchpad is the channel's SADR register.
type scratchpad struct {
	d  *DMAC
	id int
}

const sadrMask = memorymap.SizeSPR - memorymap.QuadBytes

func (spr *scratchpad) sadr() *uint32 {
	return &spr.d.Channel[spr.id].SADR
}

// FromMemory implements the Peripheral interface. Used by toSPR.
func (spr *scratchpad) FromMemory(data []byte) int {
	sadr := spr.sadr()
	if err := spr.d.mem.Write(memorymap.SPRFlag|*sadr, data); err != nil {
		return 0
	}
	*sadr = (*sadr + uint32(len(data))) & sadrMask
	return len(data) / memorymap.QuadBytes
}

// ToMemory implements the Peripheral interface. Used by fromSPR.
func (spr *scratchpad) ToMemory(data []byte) int {
	sadr := spr.sadr()
	if err := spr.d.mem.Read(memorymap.SPRFlag|*sadr, data); err != nil {
		return 0
	}
	*sadr = (*sadr + uint32(len(data))) & sadrMask
	return len(data) / memorymap.QuadBytes
}

// DestinationTag implements the DestinationTagger interface. The tags of a
// fromSPR chain are in the scratchpad.
func (spr *scratchpad) DestinationTag() (Tag, bool) {
	sadr := spr.sadr()
	var b [TagSize]byte
	if err := spr.d.mem.Read(memorymap.SPRFlag|*sadr, b[:]); err != nil {
		return Tag{}, false
	}
	*sadr = (*sadr + TagSize) & sadrMask
	return DecodeTag(b[:]), true
}

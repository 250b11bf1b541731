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

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/logger"
)

// format of an UNPACK. vn is the number of components less one and vl selects
// the component width (32, 16, 8 or 5 bits).
type format struct {
	vn int
	vl int
}

func unpackFormat(op Opcode) format {
	return format{vn: int(op>>2) & 0x03, vl: int(op) & 0x03}
}

func (f format) String() string {
	if f.vl == 3 {
		return fmt.Sprintf("V%d-5", f.vn+1)
	}
	return fmt.Sprintf("V%d-%d", f.vn+1, 32>>f.vl)
}

// valid returns false for formats that do not exist. the 5 bit format is
// only defined for four components.
func (f format) valid() bool {
	return f.vl != 3 || f.vn == 3
}

// bytes returns the size of one element in the input stream.
func (f format) bytes() int {
	if f.vl == 3 {
		return 2
	}
	return (f.vn + 1) * (4 >> f.vl)
}

// decode one element into four components.
func (f format) decode(b []byte, usn bool) [4]uint32 {
	if f.vl == 3 {
		c := binary.LittleEndian.Uint16(b)
		return [4]uint32{
			uint32(c&0x1f) << 3,
			uint32((c>>5)&0x1f) << 3,
			uint32((c>>10)&0x1f) << 3,
			uint32((c>>15)&0x01) << 7,
		}
	}

	var v [4]uint32
	for i := range f.vn + 1 {
		switch f.vl {
		case 0:
			v[i] = binary.LittleEndian.Uint32(b[i*4:])
		case 1:
			c := binary.LittleEndian.Uint16(b[i*2:])
			if usn {
				v[i] = uint32(c)
			} else {
				v[i] = uint32(int32(int16(c)))
			}
		case 2:
			c := b[i]
			if usn {
				v[i] = uint32(c)
			} else {
				v[i] = uint32(int32(int8(c)))
			}
		}
	}

	switch f.vn {
	case 0:
		v[1], v[2], v[3] = v[0], v[0], v[0]
	case 1:
		v[2], v[3] = v[0], v[1]
	case 2:
		v[3] = 0
	}

	return v
}

// stuffing mode selected by CL and WL.
type stuffing int

const (
	continuous stuffing = iota
	skipping
	filling
	malformed
)

func (v *VIF) stuffing() stuffing {
	cl, wl := v.Regs.CL, v.Regs.WL
	switch {
	case cl == wl:
		return continuous
	case cl == 0 || wl == 0:
		return malformed
	case cl < wl:
		return skipping
	}
	return filling
}

// dataElements returns the number of elements read from the input for num
// destination quadwords.
func (v *VIF) dataElements(num uint32) uint32 {
	if v.stuffing() != filling {
		return num
	}
	cl, wl := uint32(v.Regs.CL), uint32(v.Regs.WL)
	return wl*(num/cl) + min(num%cl, wl)
}

// startUnpack prepares the VIF for the payload of an UNPACK. the payload of
// a malformed UNPACK is consumed without being written.
func (v *VIF) startUnpack(code Code) {
	f := unpackFormat(code.Opcode())

	num := code.Num()
	if num == 0 {
		num = 256
	}

	v.Busy = true
	v.Num = num
	v.Cycle = 0
	v.AccLen = 0
	v.Tag = Tag{
		Size: (v.dataElements(num)*uint32(f.bytes()) + 3) / 4,
		Cmd:  code,
	}

	if !f.valid() {
		logger.Log(logger.Allow, v.tag, curated.Errorf(MalformedUnpack, v.ID, f))
		v.Num = 0
		return
	}
	if v.stuffing() == malformed {
		logger.Log(logger.Allow, v.tag, curated.Errorf(MalformedUnpack, v.ID,
			fmt.Sprintf("cl=%d wl=%d", v.Regs.CL, v.Regs.WL)))
		v.Num = 0
		return
	}

	imm := code.Imm()
	addr := imm & 0x3ff
	if v.ID == 1 && imm&0x8000 == 0x8000 {
		addr = (addr + v.Regs.TOPS) & 0x3ff
	}

	v.USN = imm&0x4000 == 0x4000
	v.Tag.Addr = addr
}

// fillSlot returns true if the next destination quadword is a fill slot.
func (v *VIF) fillSlot() bool {
	return v.stuffing() == filling && v.Cycle >= int(v.Regs.WL)
}

// nextSlot moves to the next destination quadword.
func (v *VIF) nextSlot() {
	v.Tag.Addr++
	v.Cycle++

	cl, wl := int(v.Regs.CL), int(v.Regs.WL)
	switch v.stuffing() {
	case continuous:
		if cl == 0 || v.Cycle >= cl {
			v.Cycle = 0
		}
	case skipping:
		if v.Cycle >= cl {
			v.Tag.Addr += uint32(wl - cl)
			v.Cycle = 0
		}
	case filling:
		if v.Cycle >= cl {
			v.Cycle = 0
		}
	}
}

// unpack continues the current UNPACK with the words available.
func (v *VIF) unpack(words []uint32) (int, bool) {
	f := unpackFormat(v.Code.Opcode())
	masked := v.Code.Opcode()&0x10 == 0x10
	sz := f.bytes()

	var i int

	for v.Num > 0 {
		if v.fillSlot() {
			v.write([4]uint32{}, masked, true)
			v.Num--
			v.nextSlot()
			continue
		}

		for v.AccLen < sz {
			if i >= len(words) || v.Tag.Size == 0 {
				return i, false
			}
			binary.LittleEndian.PutUint32(v.Acc[v.AccLen:], words[i])
			v.AccLen += 4
			v.Tag.Size--
			i++
		}

		v.write(f.decode(v.Acc[:sz], v.USN), masked, false)
		copy(v.Acc[:], v.Acc[sz:v.AccLen])
		v.AccLen -= sz

		v.Num--
		v.nextSlot()
	}

	// padding at the end of the payload. all of the payload is padding for a
	// malformed UNPACK
	skip := min(uint32(len(words)-i), v.Tag.Size)
	i += int(skip)
	v.Tag.Size -= skip
	if v.Tag.Size > 0 {
		return i, false
	}

	v.AccLen = 0
	return i, true
}

// write one destination quadword applying the mask and the mode. fill slots
// have no data and only the row and column selections of the mask are
// written.
func (v *VIF) write(data [4]uint32, masked bool, fill bool) {
	r := &v.Regs
	pos := min(v.Cycle, 3)
	addr := v.Tag.Addr

	for c := range 4 {
		var sel uint32
		if masked {
			sel = (r.MASK >> (pos*8 + c*2)) & 0x03
		}

		switch sel {
		case 0:
			if fill {
				continue
			}
			d := data[c]
			switch r.MODE {
			case 1:
				d += r.R[c]
			case 2:
				r.R[c] += d
				d = r.R[c]
			}
			v.vu.WriteData(addr, c, d)
		case 1:
			v.vu.WriteData(addr, c, r.R[c])
		case 2:
			v.vu.WriteData(addr, c, r.C[pos])
		case 3:
			// write protected
		}
	}
}

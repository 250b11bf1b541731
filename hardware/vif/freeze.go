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

import "github.com/jetsetilly/gopherps2/hardware/freeze"

// Freeze implements the freeze.Freezer interface.
func (v *VIF) Freeze(enc *freeze.Encoder) {
	r := &v.Regs
	enc.Uint32(r.STAT)
	enc.Uint32(r.ERR)
	enc.Uint32(r.MARK)
	enc.Uint8(r.CL)
	enc.Uint8(r.WL)
	enc.Uint32(r.MODE)
	enc.Uint32(r.MASK)
	enc.Uint32(r.CODE)
	enc.Uint32(r.ITOPS)
	enc.Uint32(r.BASE)
	enc.Uint32(r.OFST)
	enc.Uint32(r.TOPS)
	enc.Uint32(r.ITOP)
	enc.Uint32(r.TOP)
	enc.Uint32s(r.R[:])
	enc.Uint32s(r.C[:])

	enc.Uint32(uint32(v.Code))
	enc.Bool(v.Busy)
	enc.Uint32(v.Tag.Addr)
	enc.Uint32(v.Tag.Size)
	enc.Uint32(uint32(v.Tag.Cmd))
	enc.Uint32(v.Num)
	enc.Int(v.Cycle)
	enc.Int(v.Offset)
	enc.Uint32s(v.Partial[:])
	enc.Bytes(v.Acc[:])
	enc.Int(v.AccLen)
	enc.Bool(v.USN)
	enc.Int(v.IRQ)
	enc.Bool(v.Stalled)
	enc.Bool(v.StopPending)
	enc.Bool(v.MaskPath3)
	enc.Uint32s(v.Pending)
	enc.Bool(v.waiting)
}

// Thaw implements the freeze.Freezer interface.
func (v *VIF) Thaw(dec *freeze.Decoder) error {
	r := &v.Regs
	r.STAT = dec.Uint32()
	r.ERR = dec.Uint32()
	r.MARK = dec.Uint32()
	r.CL = dec.Uint8()
	r.WL = dec.Uint8()
	r.MODE = dec.Uint32()
	r.MASK = dec.Uint32()
	r.CODE = dec.Uint32()
	r.ITOPS = dec.Uint32()
	r.BASE = dec.Uint32()
	r.OFST = dec.Uint32()
	r.TOPS = dec.Uint32()
	r.ITOP = dec.Uint32()
	r.TOP = dec.Uint32()
	copy(r.R[:], dec.Uint32s())
	copy(r.C[:], dec.Uint32s())

	v.Code = Code(dec.Uint32())
	v.Busy = dec.Bool()
	v.Tag.Addr = dec.Uint32()
	v.Tag.Size = dec.Uint32()
	v.Tag.Cmd = Code(dec.Uint32())
	v.Num = dec.Uint32()
	v.Cycle = dec.Int()
	v.Offset = dec.Int()
	copy(v.Partial[:], dec.Uint32s())
	dec.BytesInto(v.Acc[:])
	v.AccLen = dec.Int()
	v.USN = dec.Bool()
	v.IRQ = dec.Int()
	v.Stalled = dec.Bool()
	v.StopPending = dec.Bool()
	v.MaskPath3 = dec.Bool()
	v.Pending = append(v.Pending[:0], dec.Uint32s()...)
	v.waiting = dec.Bool()
	return dec.Err()
}

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

import "github.com/jetsetilly/gopherps2/hardware/freeze"

// Freeze implements the freeze.Freezer interface.
func (d *DMAC) Freeze(enc *freeze.Encoder) {
	for _, ch := range d.Channel {
		enc.Uint32(uint32(ch.CHCR))
		enc.Uint32(ch.MADR)
		enc.Uint32(ch.QWC)
		enc.Uint32(ch.TADR)
		enc.Uint32(ch.ASR[0])
		enc.Uint32(ch.ASR[1])
		enc.Uint32(ch.SADR)
		enc.Int(int(ch.State))
		enc.Int(int(ch.Resume))
		enc.Bool(ch.Terminal)
		enc.Bool(ch.StallTag)
		enc.Bool(ch.RingData)
		enc.Bool(ch.TagPending)
		enc.Bytes(ch.TagData[:])
		enc.Uint32(ch.Interleaved)
	}
	enc.Uint32(d.Ctrl)
	enc.Uint32(d.Stat)
	enc.Uint32(d.PCR)
	enc.Uint32(d.SQWC)
	enc.Uint32(d.RBSR)
	enc.Uint32(d.RBOR)
	enc.Uint32(d.STADR)
	enc.Uint32(d.Enable)
	enc.Int(d.next)
}

// Thaw implements the freeze.Freezer interface.
func (d *DMAC) Thaw(dec *freeze.Decoder) error {
	for _, ch := range d.Channel {
		ch.CHCR = CHCR(dec.Uint32())
		ch.MADR = dec.Uint32()
		ch.QWC = dec.Uint32()
		ch.TADR = dec.Uint32()
		ch.ASR[0] = dec.Uint32()
		ch.ASR[1] = dec.Uint32()
		ch.SADR = dec.Uint32()
		ch.State = State(dec.Int())
		ch.Resume = State(dec.Int())
		ch.Terminal = dec.Bool()
		ch.StallTag = dec.Bool()
		ch.RingData = dec.Bool()
		ch.TagPending = dec.Bool()
		dec.BytesInto(ch.TagData[:])
		ch.Interleaved = dec.Uint32()
	}
	d.Ctrl = dec.Uint32()
	d.Stat = dec.Uint32()
	d.PCR = dec.Uint32()
	d.SQWC = dec.Uint32()
	d.RBSR = dec.Uint32()
	d.RBOR = dec.Uint32()
	d.STADR = dec.Uint32()
	d.Enable = dec.Uint32()
	d.next = dec.Int()
	return dec.Err()
}

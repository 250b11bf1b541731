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

package freeze_test

import (
	"testing"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/freeze"
	"github.com/jetsetilly/gopherps2/test"
)

func TestEncodeDecode(t *testing.T) {
	enc := freeze.NewEncoder()
	enc.Bool(true)
	enc.Uint8(0x7f)
	enc.Uint16(0xffff)
	enc.Uint32(0x10000000)
	enc.Uint64(1 << 40)
	enc.Int(-3)
	enc.Uint32s([]uint32{1, 2, 3, 4})
	enc.Bytes([]byte{0xde, 0xad})

	dec, err := freeze.NewDecoder(enc.Data())
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, dec.Bool(), true)
	test.ExpectEquality(t, dec.Uint8(), uint8(0x7f))
	test.ExpectEquality(t, dec.Uint16(), uint16(0xffff))
	test.ExpectEquality(t, dec.Uint32(), uint32(0x10000000))
	test.ExpectEquality(t, dec.Uint64(), uint64(1<<40))
	test.ExpectEquality(t, dec.Int(), -3)
	w := dec.Uint32s()
	test.DemandEquality(t, len(w), 4)
	test.ExpectEquality(t, w[3], uint32(4))
	b := make([]byte, 2)
	dec.BytesInto(b)
	test.ExpectEquality(t, b[1], uint8(0xad))
	test.ExpectSuccess(t, dec.Err())
	test.ExpectEquality(t, dec.Remaining(), 0)

	// reading past the end is a sticky error
	_ = dec.Uint32()
	test.ExpectSuccess(t, curated.Is(dec.Err(), freeze.Corrupt))
	test.ExpectEquality(t, dec.Bool(), false)
}

func TestHeader(t *testing.T) {
	enc := freeze.NewEncoder()
	enc.Uint32(1)
	d := enc.Data()

	_, err := freeze.NewDecoder(d[:3])
	test.ExpectSuccess(t, curated.Is(err, freeze.BadMagic))

	bad := append([]byte{}, d...)
	bad[len(bad)-1] ^= 0xff
	_, err = freeze.NewDecoder(bad)
	test.ExpectSuccess(t, curated.Is(err, freeze.BadChecksum))

	bad = append([]byte{}, d...)
	bad[4] = 99
	_, err = freeze.NewDecoder(bad)
	test.ExpectSuccess(t, curated.Is(err, freeze.BadVersion))
}

func TestBytesLength(t *testing.T) {
	enc := freeze.NewEncoder()
	enc.Bytes(make([]byte, 8))
	dec, err := freeze.NewDecoder(enc.Data())
	test.DemandSuccess(t, err)

	dec.BytesInto(make([]byte, 4))
	test.ExpectSuccess(t, curated.Is(dec.Err(), freeze.Corrupt))
}

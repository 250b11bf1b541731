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

package vu_test

import (
	"testing"

	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/test"
)

func TestDataWrap(t *testing.T) {
	u := vu.NewVU(0)
	test.ExpectEquality(t, u.DataQuadwords(), uint32(256))

	u.WriteData(256+3, 2, 0xdeadbeef)
	test.ExpectEquality(t, u.ReadData(3, 2), uint32(0xdeadbeef))
	test.ExpectEquality(t, u.Data[3*16+8], byte(0xef))
}

func TestMicro(t *testing.T) {
	u := vu.NewVU(1)
	u.WriteMicro(0x4008, 0x12345678)
	test.ExpectEquality(t, u.ReadMicro(8), uint32(0x12345678))
}

func TestStart(t *testing.T) {
	u := vu.NewVU(1)

	var seen []vu.Start
	u.SetObserver(func(s vu.Start) {
		seen = append(seen, s)
	})

	u.Start(vu.Start{Address: 0x100})
	test.ExpectEquality(t, u.Busy(), false)

	u.Hold = true
	u.Start(vu.Start{Continue: true})
	test.ExpectEquality(t, u.Busy(), true)
	u.Finish()
	test.ExpectEquality(t, u.Busy(), false)

	test.ExpectEquality(t, u.Starts, 2)
	test.DemandEquality(t, len(seen), 2)
	test.ExpectEquality(t, seen[0].Address, uint32(0x100))
	test.ExpectEquality(t, seen[1].Continue, true)
}

func TestBadUnit(t *testing.T) {
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	vu.NewVU(2)
}

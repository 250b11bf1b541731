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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/test"
)

func TestRefreshRate(t *testing.T) {
	for _, s := range []clocks.Spec{clocks.NTSC, clocks.PAL} {
		rate := float64(clocks.EE) / float64(s.FrameCycles)
		test.ExpectApproximate(t, rate, s.RefreshRate, 0.001, s.ID)
		test.ExpectSuccess(t, s.HRenderCycles() > 0, s.ID)
		test.ExpectSuccess(t, s.VRenderCycles() > s.VBlankCycles, s.ID)
	}
}

func TestSpecByID(t *testing.T) {
	s, ok := clocks.SpecByID("PAL")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s.ID, "PAL")

	_, ok = clocks.SpecByID("SECAM")
	test.ExpectFailure(t, ok)
}

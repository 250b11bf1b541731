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

package performance_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherps2/hardware"
	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/hardware/preferences"
	"github.com/jetsetilly/gopherps2/performance"
	"github.com/jetsetilly/gopherps2/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(clocks.PAL, 100, 2.0)
	test.ExpectEquality(t, fps, 50.0)
	test.ExpectEquality(t, accuracy, 100.0)

	fps, accuracy = performance.CalcFPS(clocks.PAL, 50, 2.0)
	test.ExpectEquality(t, fps, 25.0)
	test.ExpectEquality(t, accuracy, 50.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("BOTH")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfile("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfile("GPU")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	m, err := hardware.NewMachine(p, nil)
	test.DemandSuccess(t, err)
	defer m.Close()

	performance.Leadtime = 0

	test.ExpectFailure(t, performance.Check(&strings.Builder{}, performance.ProfileNone, m, "five seconds"))

	s := &strings.Builder{}
	test.DemandSuccess(t, performance.Check(s, performance.ProfileNone, m, "50ms"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "fps"))
	test.ExpectSuccess(t, m.Frame() > 0)
}

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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/prefs"
	"github.com/jetsetilly/gopherps2/test"
)

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), prefs.WarningBoilerPlate+"\n"+expected)
}

func TestDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	// loading a file that doesn't exist
	err = dsk.Load()
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	var strict prefs.Bool
	var burst prefs.Int
	var video prefs.String
	test.ExpectSuccess(t, dsk.Add("hardware.vif.strict", &strict))
	test.ExpectSuccess(t, dsk.Add("hardware.dma.burst", &burst))
	test.ExpectSuccess(t, dsk.Add("hardware.video", &video))

	test.ExpectSuccess(t, strict.Set("TRUE"))
	test.ExpectSuccess(t, burst.Set(8))
	test.ExpectSuccess(t, video.Set("PAL"))
	test.ExpectSuccess(t, dsk.Save())
	cmpFile(t, fn, "hardware.dma.burst :: 8\nhardware.video :: PAL\nhardware.vif.strict :: true\n")

	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, strict.Get().(bool), false)
	test.ExpectEquality(t, burst.Get().(int), 0)

	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, strict.Get().(bool), true)
	test.ExpectEquality(t, burst.Get().(int), 8)
	test.ExpectEquality(t, video.String(), "PAL")
}

func TestDiskPreservesUnknownKeys(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dskA, _ := prefs.NewDisk(fn)
	var a prefs.Int
	test.ExpectSuccess(t, dskA.Add("a", &a))
	test.ExpectSuccess(t, a.Set(1))
	test.ExpectSuccess(t, dskA.Save())

	dskB, _ := prefs.NewDisk(fn)
	var b prefs.Int
	test.ExpectSuccess(t, dskB.Add("b", &b))
	test.ExpectSuccess(t, b.Set(2))
	test.ExpectSuccess(t, dskB.Save())

	cmpFile(t, fn, "a :: 1\nb :: 2\n")
}

func TestIntConversion(t *testing.T) {
	var v prefs.Int
	test.ExpectSuccess(t, v.Set("10"))
	test.ExpectEquality(t, v.Get().(int), 10)
	test.ExpectFailure(t, v.Set("ten"))
	test.ExpectFailure(t, v.Set(1.5))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var seen int
	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 1 {
			return curated.Errorf("burst too small")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		seen = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(4))
	test.ExpectEquality(t, seen, 4)
	test.ExpectFailure(t, v.Set(0))
	test.ExpectEquality(t, v.Get().(int), 4)
}

func TestCommandLineOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")
	dsk, _ := prefs.NewDisk(fn)

	prefs.PushCommandLineStack("hardware.video::PAL")
	defer prefs.PopCommandLineStack()

	var video prefs.String
	test.ExpectSuccess(t, dsk.Add("hardware.video", &video))
	test.ExpectEquality(t, video.String(), "PAL")
}

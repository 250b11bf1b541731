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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherps2/test"
)

func TestRunMode(t *testing.T) {
	t.Chdir(t.TempDir())
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "-frames", "1"}), 0)
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "-frames", "1", "-video", "PAL"}), 0)

	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "-digest"}), 0)
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION"}), 0)

	// RUN is the default mode
	test.ExpectEquality(t, launch(context.Background(), []string{}), 0)
}

func TestBadArguments(t *testing.T) {
	t.Chdir(t.TempDir())
	test.ExpectEquality(t, launch(context.Background(), []string{"-nosuchflag"}), 10)

	// flags for the sub-mode are parsed by the mode itself
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "-nosuchflag"}), 20)
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "-video", "SECAM"}), 20)
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", "a.lua", "b.lua"}), 20)
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	fn := filepath.Join(dir, "test.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("advance(100)\nwrite32(0x10000010, 0x80)\n"), 0o644))
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", fn}), 0)

	test.DemandSuccess(t, os.WriteFile(fn, []byte("frames(2)\nassert(rewind(0) == 0)\nassert(frame() == 0)\n"), 0o644))
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", fn}), 0)

	test.DemandSuccess(t, os.WriteFile(fn, []byte("write32(0x102, 1)\n"), 0o644))
	test.ExpectEquality(t, launch(context.Background(), []string{"RUN", fn}), 20)
}

func TestDumpMode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	test.DemandEquality(t, launch(context.Background(), []string{"DUMP", "-frames", "1"}), 0)

	m, err := filepath.Glob(filepath.Join(dir, "dump_NTSC_*.gv"))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(m), 1)

	b, err := os.ReadFile(m[0])
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, len(b) > 0)
}

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

//go:build !release

package paths_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherps2/paths"
	"github.com/jetsetilly/gopherps2/test"
)

func TestPaths(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopherps2/foo/bar/baz")

	// the directories have been created but not the file
	_, err = os.Stat(".gopherps2/foo/bar")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(".gopherps2/foo/bar/baz")
	test.ExpectFailure(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopherps2/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopherps2")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("dump", "frames")
	test.ExpectEquality(t, strings.HasPrefix(fn, "dump_frames_"), true)

	fn = paths.UniqueFilename("dump", " ")
	test.ExpectEquality(t, strings.HasPrefix(fn, "dump_2"), true)
}

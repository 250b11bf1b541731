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

// Package modalflag wraps the flag package in the Go standard library. It
// handles program modes and allows a different set of flags for each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DUMP")
//	frames := md.AddInt("frames", 60, "number of frames to run")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// A mode is a non-flag argument that puts the program into a different mode
// of operation. After Parse() the Mode() function returns the mode that was
// found. If no mode was specified on the command line, the first mode in the
// list is used. Comparisons are case insensitive.
//
// Once a mode has been found, NewMode() prepares the Modes type for the flags
// and sub-modes of that mode. The next call to Parse() continues from where
// the previous call stopped. Path() returns all modes found so far, separated
// by a slash.
package modalflag

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

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect functions report a failure with t.Errorf() and the test
// continues. The Demand functions report with t.Fatalf() and the test stops.
//
// ExpectSuccess() and ExpectFailure() test for success or failure depending
// on the type of the value. A bool is successful if it is true and an error
// is successful if it is nil. An untyped nil is always considered to be a
// success because that is how error values work.
//
// The CompareWriter type implements io.Writer and should be used to capture
// output. The CompareWriter.Compare() function can then be used to test the
// output for equality.
package test

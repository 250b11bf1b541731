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

// Package curated wraps the plain Go error type so that errors can be
// identified by the pattern they were created with rather than by their
// final text.
//
// Curated errors are created with Errorf(), which takes a formatting pattern
// and values in the same way as fmt.Errorf(). Formatting is deferred until
// the Error() function is called.
//
// The Is() function checks whether an error was created with a specific
// pattern:
//
//	e := curated.Errorf(memory.BusError, 0x02000000)
//
//	if curated.Is(e, memory.BusError) {
//		fmt.Println("bus error")
//	}
//
// The Has() function is similar but searches the whole chain, including any
// curated errors used as values:
//
//	f := curated.Errorf("dmac: %v", e)
//
//	curated.Has(f, memory.BusError) // true
//	curated.Is(f, memory.BusError)  // false
//
// IsAny() answers whether an error was created by Errorf() at all. Errors that
// are not curated can be thought of as unexpected.
//
// The Error() function normalises the message so that adjacent duplicate
// parts of the chain are removed. Parts are separated by the sub-string ": ".
// This means that a package can prefix its errors with its name without
// worrying about the prefix being repeated when the error is wrapped again by
// the same package:
//
//	dmac: dmac: tag fetch failed
//
// is printed as:
//
//	dmac: tag fetch failed
//
// Patterns intended for use with Is() and Has() should be exported as
// constants by the package that creates them.
package curated

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

// Package digest produces fingerprints of the emulation's output. The
// fingerprints are used to check that the emulation has not changed.
package digest

// Digest implementations compute a hash of output data.
type Digest interface {
	Hash() string
	ResetDigest()
}

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

package registers

import (
	"maps"
	"slices"

	"github.com/jetsetilly/gopherps2/hardware/freeze"
)

// Freeze implements the freeze.Freezer interface. Only the backing store is
// frozen. The registers belong to the hardware they control.
func (r *Registers) Freeze(enc *freeze.Encoder) {
	keys := slices.Sorted(maps.Keys(r.store))
	enc.Int(len(keys))
	for _, k := range keys {
		enc.Uint32(k)
		enc.Uint32(r.store[k])
	}
}

// Thaw implements the freeze.Freezer interface.
func (r *Registers) Thaw(dec *freeze.Decoder) error {
	clear(r.store)
	n := dec.Int()
	for range n {
		if dec.Err() != nil {
			break
		}
		k := dec.Uint32()
		r.store[k] = dec.Uint32()
	}
	return dec.Err()
}

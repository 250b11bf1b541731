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

import "encoding/binary"

// Read8 reads one byte.
func (r *Registers) Read8(address uint32) (uint8, error) {
	var b [1]byte
	err := r.Read(address, b[:])
	return b[0], err
}

// Read16 reads a halfword.
func (r *Registers) Read16(address uint32) (uint16, error) {
	var b [2]byte
	err := r.Read(address, b[:])
	return binary.LittleEndian.Uint16(b[:]), err
}

// Read32 reads a word.
func (r *Registers) Read32(address uint32) (uint32, error) {
	var b [4]byte
	err := r.Read(address, b[:])
	return binary.LittleEndian.Uint32(b[:]), err
}

// Read64 reads a doubleword.
func (r *Registers) Read64(address uint32) (uint64, error) {
	var b [8]byte
	err := r.Read(address, b[:])
	return binary.LittleEndian.Uint64(b[:]), err
}

// Read128 reads a quadword.
func (r *Registers) Read128(address uint32) ([16]byte, error) {
	var b [16]byte
	err := r.Read(address, b[:])
	return b, err
}

// Write8 writes one byte.
func (r *Registers) Write8(address uint32, value uint8) error {
	return r.Write(address, []byte{value})
}

// Write16 writes a halfword.
func (r *Registers) Write16(address uint32, value uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], value)
	return r.Write(address, b[:])
}

// Write32 writes a word.
func (r *Registers) Write32(address uint32, value uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return r.Write(address, b[:])
}

// Write64 writes a doubleword.
func (r *Registers) Write64(address uint32, value uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	return r.Write(address, b[:])
}

// Write128 writes a quadword.
func (r *Registers) Write128(address uint32, value [16]byte) error {
	return r.Write(address, value[:])
}

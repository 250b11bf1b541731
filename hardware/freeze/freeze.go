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

// Package freeze encodes and decodes the state of the hardware so that
// emulation can be resumed from a snapshot with identical future behaviour.
//
// Values are written in a fixed order using the MessagePack primitives from
// the msgp package. The encoded state is preceded by a header:
//
//	magic (4 bytes) | version (uint16 LE) | crc32 of payload (uint32 LE)
//
// A Decoder carries a sticky error. Once a value fails to decode, every
// following call returns a zero value and Err() reports the first failure.
package freeze

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/tinylib/msgp/msgp"

	"github.com/jetsetilly/gopherps2/curated"
)

const (
	magic      = "GPS2"
	version    = 1
	headerSize = 10
)

// error patterns.
const (
	BadMagic    = "freeze: not a gopherps2 state"
	BadVersion  = "freeze: unsupported version (%d)"
	BadChecksum = "freeze: checksum mismatch"
	Corrupt     = "freeze: corrupt state: %v"
)

// Freezer is implemented by every hardware component that has state.
type Freezer interface {
	Freeze(enc *Encoder)
	Thaw(dec *Decoder) error
}

// Encoder accumulates values in order.
type Encoder struct {
	b []byte
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder() *Encoder {
	return &Encoder{b: make([]byte, 0, 1024)}
}

// Bool appends a boolean value.
func (enc *Encoder) Bool(v bool) {
	enc.b = msgp.AppendBool(enc.b, v)
}

// Uint8 appends an 8-bit value.
func (enc *Encoder) Uint8(v uint8) {
	enc.b = msgp.AppendUint8(enc.b, v)
}

// Uint16 appends a 16-bit value.
func (enc *Encoder) Uint16(v uint16) {
	enc.b = msgp.AppendUint16(enc.b, v)
}

// Uint32 appends a 32-bit value.
func (enc *Encoder) Uint32(v uint32) {
	enc.b = msgp.AppendUint32(enc.b, v)
}

// Uint64 appends a 64-bit value.
func (enc *Encoder) Uint64(v uint64) {
	enc.b = msgp.AppendUint64(enc.b, v)
}

// Int appends an int value.
func (enc *Encoder) Int(v int) {
	enc.b = msgp.AppendInt(enc.b, v)
}

// Uint32s appends a slice of 32-bit values. The length is encoded.
func (enc *Encoder) Uint32s(v []uint32) {
	enc.b = msgp.AppendArrayHeader(enc.b, uint32(len(v)))
	for _, w := range v {
		enc.b = msgp.AppendUint32(enc.b, w)
	}
}

// Bytes appends a byte slice. The length is encoded.
func (enc *Encoder) Bytes(v []byte) {
	enc.b = msgp.AppendBytes(enc.b, v)
}

// Data returns the encoded state with the header.
func (enc *Encoder) Data() []byte {
	d := make([]byte, headerSize, headerSize+len(enc.b))
	copy(d, magic)
	binary.LittleEndian.PutUint16(d[4:], version)
	binary.LittleEndian.PutUint32(d[6:], crc32.ChecksumIEEE(enc.b))
	return append(d, enc.b...)
}

// Decoder reads values in the same order as they were written by an Encoder.
type Decoder struct {
	b   []byte
	err error
}

// NewDecoder checks the header of the data and prepares it for decoding.
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < headerSize || string(data[:4]) != magic {
		return nil, curated.Errorf(BadMagic)
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != version {
		return nil, curated.Errorf(BadVersion, v)
	}
	if crc32.ChecksumIEEE(data[headerSize:]) != binary.LittleEndian.Uint32(data[6:]) {
		return nil, curated.Errorf(BadChecksum)
	}
	return &Decoder{b: data[headerSize:]}, nil
}

// Err returns the first error encountered while decoding.
func (dec *Decoder) Err() error {
	return dec.err
}

func (dec *Decoder) fail(err error) {
	if dec.err == nil {
		dec.err = curated.Errorf(Corrupt, err)
	}
}

// Bool reads a boolean value.
func (dec *Decoder) Bool() bool {
	if dec.err != nil {
		return false
	}
	v, o, err := msgp.ReadBoolBytes(dec.b)
	if err != nil {
		dec.fail(err)
		return false
	}
	dec.b = o
	return v
}

// Uint8 reads an 8-bit value.
func (dec *Decoder) Uint8() uint8 {
	if dec.err != nil {
		return 0
	}
	v, o, err := msgp.ReadUint8Bytes(dec.b)
	if err != nil {
		dec.fail(err)
		return 0
	}
	dec.b = o
	return v
}

// Uint16 reads a 16-bit value.
func (dec *Decoder) Uint16() uint16 {
	if dec.err != nil {
		return 0
	}
	v, o, err := msgp.ReadUint16Bytes(dec.b)
	if err != nil {
		dec.fail(err)
		return 0
	}
	dec.b = o
	return v
}

// Uint32 reads a 32-bit value.
func (dec *Decoder) Uint32() uint32 {
	if dec.err != nil {
		return 0
	}
	v, o, err := msgp.ReadUint32Bytes(dec.b)
	if err != nil {
		dec.fail(err)
		return 0
	}
	dec.b = o
	return v
}

// Uint64 reads a 64-bit value.
func (dec *Decoder) Uint64() uint64 {
	if dec.err != nil {
		return 0
	}
	v, o, err := msgp.ReadUint64Bytes(dec.b)
	if err != nil {
		dec.fail(err)
		return 0
	}
	dec.b = o
	return v
}

// Int reads an int value.
func (dec *Decoder) Int() int {
	if dec.err != nil {
		return 0
	}
	v, o, err := msgp.ReadIntBytes(dec.b)
	if err != nil {
		dec.fail(err)
		return 0
	}
	dec.b = o
	return v
}

// Uint32s reads a slice of 32-bit values.
func (dec *Decoder) Uint32s() []uint32 {
	if dec.err != nil {
		return nil
	}
	n, o, err := msgp.ReadArrayHeaderBytes(dec.b)
	if err != nil {
		dec.fail(err)
		return nil
	}
	dec.b = o
	v := make([]uint32, n)
	for i := range v {
		v[i] = dec.Uint32()
	}
	return v
}

// BytesInto reads a byte slice into dst. The encoded length must match the
// length of dst.
func (dec *Decoder) BytesInto(dst []byte) {
	if dec.err != nil {
		return
	}
	v, o, err := msgp.ReadBytesZC(dec.b)
	if err != nil {
		dec.fail(err)
		return
	}
	if len(v) != len(dst) {
		dec.fail(fmt.Errorf("byte slice length %d, expected %d", len(v), len(dst)))
		return
	}
	copy(dst, v)
	dec.b = o
}

// Remaining returns the number of bytes that have not been decoded.
func (dec *Decoder) Remaining() int {
	return len(dec.b)
}

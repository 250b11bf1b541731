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

package gspath

import (
	"fmt"
	"sync"
)

// Backend receives the packets sent over the GS paths. Transfer is called
// from the worker goroutine of the path and must not keep a reference to
// data after it returns.
type Backend interface {
	Transfer(path int, data []byte) error
}

// Discard is a Backend that accepts and ignores every packet.
type Discard struct{}

// Transfer implements the Backend interface.
func (Discard) Transfer(path int, data []byte) error {
	return nil
}

// Recorder is a Backend that keeps a copy of every packet. It is safe for
// use by all workers at once.
type Recorder struct {
	crit    sync.Mutex
	packets [NumPaths + 1][][]byte
	bytes   [NumPaths + 1]int

	// if not nil, Transfer() returns the error
	Fail error
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()
	return fmt.Sprintf("path1=%d path2=%d path3=%d", r.bytes[Path1], r.bytes[Path2], r.bytes[Path3])
}

// Transfer implements the Backend interface.
func (r *Recorder) Transfer(path int, data []byte) error {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.Fail != nil {
		return r.Fail
	}

	p := make([]byte, len(data))
	copy(p, data)
	r.packets[path] = append(r.packets[path], p)
	r.bytes[path] += len(data)
	return nil
}

// Packets returns the packets received on the path.
func (r *Recorder) Packets(path int) [][]byte {
	r.crit.Lock()
	defer r.crit.Unlock()
	return append([][]byte{}, r.packets[path]...)
}

// Bytes returns the number of bytes received on the path.
func (r *Recorder) Bytes(path int) int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.bytes[path]
}

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

package digest

import (
	"crypto/sha1"
	"fmt"
	"sync"

	"github.com/jetsetilly/gopherps2/hardware/gspath"
)

// GS is a gspath.Backend that fingerprints the data sent over each GS path.
// Data is passed on to another backend if one is given.
//
// Each path has its own chained digest because the order of packets is only
// preserved within a path.
type GS struct {
	next gspath.Backend

	crit   sync.Mutex
	digest [gspath.NumPaths][sha1.Size]byte
}

// NewGS is the preferred method of initialisation for the GS type. The next
// backend can be nil.
func NewGS(next gspath.Backend) *GS {
	return &GS{next: next}
}

// Transfer implements the gspath.Backend interface.
func (dig *GS) Transfer(path int, data []byte) error {
	dig.crit.Lock()
	d := &dig.digest[path-1]
	b := make([]byte, 0, len(d)+len(data))
	b = append(b, d[:]...)
	b = append(b, data...)
	*d = sha1.Sum(b)
	dig.crit.Unlock()

	if dig.next != nil {
		return dig.next.Transfer(path, data)
	}
	return nil
}

// Hash implements the Digest interface.
func (dig *GS) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	b := make([]byte, 0, gspath.NumPaths*sha1.Size)
	for _, d := range dig.digest {
		b = append(b, d[:]...)
	}
	return fmt.Sprintf("%x", sha1.Sum(b))
}

// PathHash returns the hash of one path.
func (dig *GS) PathHash(path int) string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return fmt.Sprintf("%x", dig.digest[path-1])
}

// ResetDigest implements the Digest interface.
func (dig *GS) ResetDigest() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	clear(dig.digest[:])
}

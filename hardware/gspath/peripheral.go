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

// Peripheral connects a DMA channel to a GS path. It implements the
// dmac.Peripheral interface.
type Peripheral struct {
	g    *GSPath
	path int

	// the path is masked while Masked() returns true. data from memory is
	// refused and the channel stalls
	Masked func() bool
}

// Peripheral returns the DMA end of the path.
func (g *GSPath) Peripheral(path int) *Peripheral {
	g.get(path)
	return &Peripheral{g: g, path: path}
}

// FromMemory implements the dmac.Peripheral interface. Whole quadwords are
// sent as one packet.
func (p *Peripheral) FromMemory(data []byte) int {
	if p.Masked != nil && p.Masked() {
		return 0
	}
	if !p.g.TrySend(p.path, data) {
		return 0
	}
	return len(data) / 16
}

// ToMemory implements the dmac.Peripheral interface. Reading back from the GS
// is not supported and the channel is stalled.
func (p *Peripheral) ToMemory(data []byte) int {
	return 0
}

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

package dmac

import "fmt"

// Mode of a DMA transfer, as selected by the MOD field of CHCR.
type Mode int

// List of valid Mode values.
const (
	Normal Mode = iota
	Chain
	Interleave
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Chain:
		return "chain"
	case Interleave:
		return "interleave"
	}
	return fmt.Sprintf("mode %d", int(m))
}

// CHCR is the value of a channel control register.
type CHCR uint32

// CHCR bits.
const (
	chcrDIR = CHCR(0x00000001)
	chcrMOD = CHCR(0x0000000c)
	chcrASP = CHCR(0x00000030)
	chcrTTE = CHCR(0x00000040)
	chcrTIE = CHCR(0x00000080)
	chcrSTR = CHCR(0x00000100)
	chcrTAG = CHCR(0xffff0000)
)

// FromMemory is true if data is moved from memory to the peripheral.
func (c CHCR) FromMemory() bool {
	return c&chcrDIR == chcrDIR
}

// Mode of the transfer.
func (c CHCR) Mode() Mode {
	return Mode((c & chcrMOD) >> 2)
}

// ASP is the number of addresses on the call stack.
func (c CHCR) ASP() int {
	return int((c & chcrASP) >> 4)
}

// TTE is the tag transfer enable bit.
func (c CHCR) TTE() bool {
	return c&chcrTTE == chcrTTE
}

// TIE is the tag interrupt enable bit.
func (c CHCR) TIE() bool {
	return c&chcrTIE == chcrTIE
}

// STR is the start bit. It is cleared when the transfer ends.
func (c CHCR) STR() bool {
	return c&chcrSTR == chcrSTR
}

// Tag returns bits 16 to 31 of the most recent chain tag.
func (c CHCR) Tag() uint16 {
	return uint16(c >> 16)
}

func (c *CHCR) setASP(n int) {
	*c = (*c &^ chcrASP) | CHCR(n<<4)&chcrASP
}

func (c *CHCR) setSTR(on bool) {
	if on {
		*c |= chcrSTR
	} else {
		*c &^= chcrSTR
	}
}

func (c *CHCR) setTag(t uint16) {
	*c = (*c &^ chcrTAG) | CHCR(t)<<16
}

func (c CHCR) String() string {
	s := fmt.Sprintf("%s asp=%d", c.Mode(), c.ASP())
	if c.FromMemory() {
		s = "from " + s
	} else {
		s = "to " + s
	}
	if c.TTE() {
		s += " tte"
	}
	if c.TIE() {
		s += " tie"
	}
	if c.STR() {
		s += " str"
	}
	return s
}

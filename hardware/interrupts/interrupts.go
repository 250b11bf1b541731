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

// Package interrupts implements the EE interrupt controller (INTC). Hardware
// components raise an interrupt line with the Raiser interface. The CPU side
// of the machine reads and acknowledges interrupts through the INTC_STAT and
// INTC_MASK registers.
package interrupts

import "fmt"

// Line identifies an interrupt line of the INTC. The value of the line is
// the bit position in the INTC_STAT and INTC_MASK registers.
type Line int

// List of interrupt lines.
const (
	GS Line = iota
	SBUS
	VBlankStart
	VBlankEnd
	VIF0
	VIF1
	VU0
	VU1
	IPU
	Timer0
	Timer1
	Timer2
	Timer3
	SFIFO
	VU0Watchdog

	NumLines
)

func (l Line) String() string {
	switch l {
	case GS:
		return "GS"
	case SBUS:
		return "SBUS"
	case VBlankStart:
		return "VBON"
	case VBlankEnd:
		return "VBOF"
	case VIF0:
		return "VIF0"
	case VIF1:
		return "VIF1"
	case VU0:
		return "VU0"
	case VU1:
		return "VU1"
	case IPU:
		return "IPU"
	case Timer0, Timer1, Timer2, Timer3:
		return fmt.Sprintf("TIM%d", l-Timer0)
	case SFIFO:
		return "SFIFO"
	case VU0Watchdog:
		return "VU0WD"
	}
	return fmt.Sprintf("unknown line (%d)", int(l))
}

// Raiser is implemented by types that can receive an interrupt request.
type Raiser interface {
	Raise(line Line)
}

// INTC is the interrupt controller.
type INTC struct {
	Stat uint32
	Mask uint32

	// number of times each line has been raised since the last reset
	count [NumLines]int
}

// NewINTC is the preferred method of initialisation for the INTC type.
func NewINTC() *INTC {
	return &INTC{}
}

func (intc *INTC) String() string {
	return fmt.Sprintf("INTC stat=%04x mask=%04x", intc.Stat, intc.Mask)
}

// Reset the INTC to its initial state.
func (intc *INTC) Reset() {
	*intc = INTC{}
}

// Raise implements the Raiser interface.
func (intc *INTC) Raise(line Line) {
	if line < 0 || line >= NumLines {
		panic(fmt.Sprintf("intc: %v", line))
	}
	intc.Stat |= 1 << uint(line)
	intc.count[line]++
}

// WriteStat acknowledges interrupts. Bits written as one are cleared.
func (intc *INTC) WriteStat(value uint32) {
	intc.Stat &^= value
}

// WriteMask toggles the mask bits written as one.
func (intc *INTC) WriteMask(value uint32) {
	intc.Mask ^= value & ((1 << uint(NumLines)) - 1)
}

// Pending returns true if an unmasked interrupt is waiting to be serviced.
func (intc *INTC) Pending() bool {
	return intc.Stat&intc.Mask != 0
}

// Count returns the number of times the line has been raised since the last
// reset.
func (intc *INTC) Count(line Line) int {
	return intc.count[line]
}

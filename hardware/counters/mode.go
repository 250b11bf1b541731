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

package counters

import (
	"fmt"
	"strings"
)

// Mode is the value of a counter's mode register.
type Mode uint32

// Mode register bits.
const (
	modeClockSource     = Mode(0x0003)
	modeGateEnable      = Mode(0x0004)
	modeGateSource      = Mode(0x0008)
	modeGatePolicy      = Mode(0x0030)
	modeZeroReturn      = Mode(0x0040)
	modeCounting        = Mode(0x0080)
	modeTargetInterrupt = Mode(0x0100)
	modeOverflowIrq     = Mode(0x0200)
	modeTargetReached   = Mode(0x0400)
	modeOverflowReached = Mode(0x0800)

	// the two flags are cleared by writing a one to them
	modeFlags = modeTargetReached | modeOverflowReached

	// the bits that can be written directly
	modeWritable = Mode(0x03ff)
)

// ModeFlags are the bits of the mode register that are cleared by writing a
// one to them.
const ModeFlags = uint32(modeFlags)

// Clock sources.
const (
	ClockBus     = 0
	ClockBus16   = 1
	ClockBus256  = 2
	ClockHBlank  = 3
	GateHBlank   = 0
	GateVBlank   = 1
	rateHBlank   = 0
	numClockSrcs = 4
)

// number of EE cycles for each increment of the count, indexed by clock source.
var rates = [numClockSrcs]uint32{2, 32, 512, rateHBlank}

// ClockSource returns the clock source of the counter (0 to 3).
func (m Mode) ClockSource() int {
	return int(m & modeClockSource)
}

// GateEnable returns true if gating is enabled.
func (m Mode) GateEnable() bool {
	return m&modeGateEnable == modeGateEnable
}

// GateSource returns the source of the gate signal (GateHBlank or GateVBlank).
func (m Mode) GateSource() int {
	return int(m&modeGateSource) >> 3
}

// GatePolicy returns the gate policy (0 to 3).
func (m Mode) GatePolicy() int {
	return int(m&modeGatePolicy) >> 4
}

// ZeroReturn returns true if the count should return to zero on reaching the
// target.
func (m Mode) ZeroReturn() bool {
	return m&modeZeroReturn == modeZeroReturn
}

// Counting returns true if the counting enable bit is set.
func (m Mode) Counting() bool {
	return m&modeCounting == modeCounting
}

// TargetInterrupt returns true if reaching the target raises an interrupt.
func (m Mode) TargetInterrupt() bool {
	return m&modeTargetInterrupt == modeTargetInterrupt
}

// OverflowInterrupt returns true if an overflow raises an interrupt.
func (m Mode) OverflowInterrupt() bool {
	return m&modeOverflowIrq == modeOverflowIrq
}

// TargetReached returns the state of the target-reached flag.
func (m Mode) TargetReached() bool {
	return m&modeTargetReached == modeTargetReached
}

// OverflowReached returns the state of the overflow-reached flag.
func (m Mode) OverflowReached() bool {
	return m&modeOverflowReached == modeOverflowReached
}

func (m Mode) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("clk=%d", m.ClockSource()))
	if m.GateEnable() {
		s.WriteString(fmt.Sprintf(" gate=%d/%d", m.GateSource(), m.GatePolicy()))
	}
	for _, f := range []struct {
		set  bool
		name string
	}{
		{m.ZeroReturn(), "zret"},
		{m.Counting(), "cue"},
		{m.TargetInterrupt(), "cmpe"},
		{m.OverflowInterrupt(), "ovfe"},
		{m.TargetReached(), "EQUF"},
		{m.OverflowReached(), "OVFF"},
	} {
		if f.set {
			s.WriteString(" ")
			s.WriteString(f.name)
		}
	}
	return s.String()
}

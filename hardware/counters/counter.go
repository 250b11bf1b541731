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

import "fmt"

// Future is set in a counter's target to indicate that the target cannot be
// reached before the next overflow. The bit is above the range of the count
// so that a normal comparison with the count will fail.
const Future = uint32(0x10000000)

// CountMask is the width of the count, target and hold registers.
const CountMask = uint32(0xffff)

// Counter is one of the four EE timers.
type Counter struct {
	ID int

	// Count is exact at Base. it may briefly be larger than CountMask
	// between resolution and the overflow test
	Count  uint32
	Mode   Mode
	Target uint32
	Hold   uint32

	// number of EE cycles per increment. zero if the counter is clocked by
	// the horizontal blank
	Rate uint32

	// the global cycle at which Count was last exact
	Base uint64

	// whether the gate currently allows the counter to count. always true
	// if the counter is not gated
	GateOpen bool
}

func (c *Counter) String() string {
	t := fmt.Sprintf("%04x", c.Target&CountMask)
	if c.Target&Future == Future {
		t = fmt.Sprintf("(%s)", t)
	}
	return fmt.Sprintf("T%d count=%04x target=%s hold=%04x [%s]", c.ID, c.Count&CountMask, t, c.Hold, c.Mode)
}

func (c *Counter) reset(id int) {
	*c = Counter{
		ID:       id,
		Target:   CountMask,
		Rate:     rates[ClockBus],
		GateOpen: true,
	}
}

// counting returns true if the counter is currently counting.
func (c *Counter) counting() bool {
	return c.Mode.Counting() && c.GateOpen
}

// gated returns true if the gate applies to the counter.
func (c *Counter) gated() bool {
	if !c.Mode.GateEnable() {
		return false
	}
	return !(c.Mode.GateSource() == GateHBlank && c.Mode.ClockSource() == ClockHBlank)
}

// interpolated counters are those that are not driven by the horizontal blank.
func (c *Counter) interpolated() bool {
	return c.Rate != rateHBlank
}

// peek returns the count at cycle now without changing the counter.
func (c *Counter) peek(now uint64) uint32 {
	if !c.counting() || !c.interpolated() || now <= c.Base {
		return c.Count
	}
	return c.Count + uint32((now-c.Base)/uint64(c.Rate))
}

// resolve brings Count up to date at cycle at. any remainder of a Rate
// period is kept by leaving Base behind at.
func (c *Counter) resolve(at uint64) {
	if at <= c.Base {
		return
	}
	if !c.counting() || !c.interpolated() {
		c.Base = at
		return
	}
	elapsed := at - c.Base
	r := uint64(c.Rate)
	c.Count += uint32(elapsed / r)
	c.Base = at - elapsed%r
}

// restart the count from zero at cycle at.
func (c *Counter) restart(at uint64) {
	c.Count = 0
	c.Base = at
	c.Target &= CountMask
}

// deadline returns the cycle at which the counter will next reach its target
// or overflow. returns false if the counter has no deadline.
func (c *Counter) deadline() (uint64, bool) {
	if !c.counting() || !c.interpolated() {
		return 0, false
	}

	r := uint64(c.Rate)

	if c.Count > CountMask || c.Target <= c.Count {
		return c.Base, true
	}

	d := c.Base + uint64(CountMask+1-c.Count)*r
	if c.Target&Future == 0 {
		d = min(d, c.Base+uint64(c.Target-c.Count)*r)
	}

	return d, true
}

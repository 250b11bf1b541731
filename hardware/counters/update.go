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
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
)

// Update must be called when the global clock reaches the published deadline.
// It is safe to call Update() at any other time.
func (cs *Counters) Update() {
	now := cs.src.Cycle()

	// generator edges in chronological order. the horizontal edge is
	// processed first if both generators flip on the same cycle
	for {
		h := cs.HSync.NextFlip()
		v := cs.VSync.NextFlip()
		if h > now && v > now {
			break
		}
		if h <= v {
			cs.horizontalEdge(cs.HSync.flip())
		} else {
			cs.verticalEdge(cs.VSync.flip())
		}
	}

	for i := range cs.Counter {
		c := &cs.Counter[i]
		if !c.interpolated() {
			continue
		}
		c.resolve(now)
		cs.test(c)
	}

	cs.reschedule(now)
}

// test the counter for target and overflow conditions.
func (cs *Counters) test(c *Counter) {
	cs.testTarget(c)
	if cs.testOverflow(c) {
		// the target is re-armed by the overflow and may already have been
		// passed by the remainder of the count
		cs.testTarget(c)
	}
}

func (cs *Counters) testTarget(c *Counter) {
	if c.Count < c.Target {
		return
	}

	if c.Mode.TargetInterrupt() && !c.Mode.TargetReached() {
		c.Mode |= modeTargetReached
		cs.intc.Raise(interrupts.Timer0 + interrupts.Line(c.ID))
	}

	if c.Mode.ZeroReturn() {
		t := c.Target & CountMask
		if t == 0 {
			c.Target |= Future
			return
		}
		c.Count %= t
		return
	}

	c.Target |= Future
}

func (cs *Counters) testOverflow(c *Counter) bool {
	if c.Count <= CountMask {
		return false
	}

	if c.Mode.OverflowInterrupt() && !c.Mode.OverflowReached() {
		c.Mode |= modeOverflowReached
		cs.intc.Raise(interrupts.Timer0 + interrupts.Line(c.ID))
	}

	c.Count &= CountMask
	c.Target &= CountMask

	return true
}

// horizontalEdge processes a phase change of the scanline generator.
func (cs *Counters) horizontalEdge(e Edge) {
	cs.gateEdge(GateHBlank, e)

	if e.Phase == Blank {
		for i := range cs.Counter {
			c := &cs.Counter[i]
			if c.interpolated() || !c.counting() {
				continue
			}
			c.Count++
			c.Base = e.Cycle
			cs.test(c)
		}
	}

	if cs.lineObserver != nil {
		cs.lineObserver(e)
	}
}

// verticalEdge processes a phase change of the frame generator.
func (cs *Counters) verticalEdge(e Edge) {
	cs.gateEdge(GateVBlank, e)

	if e.Phase == Blank {
		cs.intc.Raise(interrupts.VBlankStart)
	} else {
		cs.intc.Raise(interrupts.VBlankEnd)
	}

	for _, f := range cs.frameCallbacks {
		f(e)
	}
}

// gateEdge applies the gate policy of every counter gated by source. each
// counter is brought up to the edge before the policy is applied.
func (cs *Counters) gateEdge(source int, e Edge) {
	for i := range cs.Counter {
		c := &cs.Counter[i]
		if !c.gated() || c.Mode.GateSource() != source {
			continue
		}

		c.resolve(e.Cycle)
		cs.test(c)

		policy := c.Mode.GatePolicy()

		if e.Phase == Blank {
			switch policy {
			case 0:
				c.GateOpen = false
			case 2, 3:
				c.restart(e.Cycle)
				c.GateOpen = true
			}
		} else {
			switch policy {
			case 0:
				c.GateOpen = true
				c.Base = e.Cycle
			case 1, 3:
				c.restart(e.Cycle)
				c.GateOpen = true
			}
		}
	}
}

// reschedule publishes the earliest of the counter deadlines and the next
// generator edges.
func (cs *Counters) reschedule(now uint64) {
	next := min(cs.HSync.NextFlip(), cs.VSync.NextFlip())

	for i := range cs.Counter {
		if d, ok := cs.Counter[i].deadline(); ok {
			next = min(next, d)
		}
	}

	// a counter deadline can be behind now by less than one rate period
	if next < now {
		next = now
	}

	cs.Schedule = Schedule{
		LastRecompute:        now,
		CyclesUntilNextEvent: next - now,
	}
}

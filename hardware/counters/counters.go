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

	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/logger"
)

// NumCounters is the number of EE timers.
const NumCounters = 4

// Clock gives access to the global cycle count. The timing core never
// changes the clock.
type Clock interface {
	Cycle() uint64
}

// Schedule is the single outstanding deadline. It is recomputed after every
// change to a Counter or Generator.
type Schedule struct {
	LastRecompute        uint64
	CyclesUntilNextEvent uint64
}

// Deadline returns the absolute cycle of the next event.
func (s Schedule) Deadline() uint64 {
	return s.LastRecompute + s.CyclesUntilNextEvent
}

// Counters is the timing core.
type Counters struct {
	spec  clocks.Spec
	src   Clock
	intc  interrupts.Raiser

	Counter [NumCounters]Counter

	HSync Generator
	VSync Generator

	Schedule Schedule

	// called on every vertical edge
	frameCallbacks []func(Edge)

	// called on every horizontal edge
	lineObserver func(Edge)
}

// NewCounters is the preferred method of initialisation for the Counters
// type.
func NewCounters(src Clock, intc interrupts.Raiser, spec clocks.Spec) *Counters {
	if src == nil || intc == nil {
		panic("counters: nil collaborator")
	}
	cs := &Counters{
		src:   src,
		intc:  intc,
		spec:  spec,
	}
	cs.Reset()
	return cs
}

func (cs *Counters) String() string {
	s := strings.Builder{}
	for i := range cs.Counter {
		s.WriteString(cs.Counter[i].String())
		s.WriteString("\n")
	}
	s.WriteString(cs.HSync.String())
	s.WriteString("\n")
	s.WriteString(cs.VSync.String())
	return s.String()
}

// Reset all counters and restart the generators at the current cycle.
func (cs *Counters) Reset() {
	now := cs.src.Cycle()
	for i := range cs.Counter {
		cs.Counter[i].reset(i)
		cs.Counter[i].Base = now
	}
	cs.HSync.reset("hsync", cs.spec.HRenderCycles(), cs.spec.HBlankCycles)
	cs.HSync.PhaseStart = now
	cs.VSync.reset("vsync", cs.spec.VRenderCycles(), cs.spec.VBlankCycles)
	cs.VSync.PhaseStart = now
	cs.reschedule(now)
}

// Spec returns the video timing in use.
func (cs *Counters) Spec() clocks.Spec {
	return cs.spec
}

// SetSpec changes the video timing. The generators are restarted.
func (cs *Counters) SetSpec(spec clocks.Spec) {
	cs.spec = spec
	cs.Reset()
}

// AddFrameCallback registers a function to be called on every vertical edge.
func (cs *Counters) AddFrameCallback(f func(Edge)) {
	cs.frameCallbacks = append(cs.frameCallbacks, f)
}

// SetLineObserver sets the function to be called on every horizontal edge.
// A nil function removes the observer.
func (cs *Counters) SetLineObserver(f func(Edge)) {
	cs.lineObserver = f
}

// Deadline returns the absolute cycle at which Update() must next be called.
func (cs *Counters) Deadline() uint64 {
	return cs.Schedule.Deadline()
}

func (cs *Counters) get(id int) *Counter {
	if id < 0 || id >= NumCounters {
		panic(fmt.Sprintf("counters: no counter %d", id))
	}
	return &cs.Counter[id]
}

// Peek returns the current count without changing the counter.
func (cs *Counters) Peek(id int) uint32 {
	return cs.get(id).peek(cs.src.Cycle()) & CountMask
}

// Resolve brings the counter up to date and returns the count. Target and
// overflow conditions are not tested until the next Update().
func (cs *Counters) Resolve(id int) uint32 {
	c := cs.get(id)
	c.resolve(cs.src.Cycle())
	return c.Count & CountMask
}

// ReadCount returns the value of the count register. It does not change the
// counter.
func (cs *Counters) ReadCount(id int) uint32 {
	return cs.Peek(id)
}

// ReadMode returns the value of the mode register.
func (cs *Counters) ReadMode(id int) uint32 {
	return uint32(cs.get(id).Mode)
}

// ReadTarget returns the value of the target register.
func (cs *Counters) ReadTarget(id int) uint32 {
	return cs.get(id).Target & CountMask
}

// ReadHold returns the value of the hold register.
func (cs *Counters) ReadHold(id int) uint32 {
	return cs.get(id).Hold
}

// WriteMode writes to the mode register. Writing a one to either of the two
// flag bits clears the flag.
func (cs *Counters) WriteMode(id int, value uint32) {
	c := cs.get(id)
	now := cs.src.Cycle()
	c.resolve(now)

	v := Mode(value)
	c.Mode &^= v & modeFlags
	c.Mode = (c.Mode & modeFlags) | (v & modeWritable)
	c.Rate = rates[c.Mode.ClockSource()]
	c.Base = now

	cs.applyGate(c, true)
	cs.reschedule(now)
}

// WriteCount writes to the count register.
func (cs *Counters) WriteCount(id int, value uint32) {
	c := cs.get(id)
	now := cs.src.Cycle()
	c.resolve(now)

	c.Count = value & CountMask
	c.Base = now
	c.Target &= CountMask
	if c.Count > c.Target {
		c.Target |= Future
	}

	cs.applyGate(c, false)
	cs.reschedule(now)
}

// WriteTarget writes to the target register.
func (cs *Counters) WriteTarget(id int, value uint32) {
	c := cs.get(id)
	now := cs.src.Cycle()
	c.resolve(now)

	c.Target = value & CountMask
	if c.Target <= c.Count&CountMask {
		c.Target |= Future
	}

	// a zero target with zero-return would be reached on every cycle
	if c.Mode.ZeroReturn() && c.Target == 0 {
		c.Target |= Future
	}

	cs.applyGate(c, false)
	cs.reschedule(now)
}

// WriteHold writes to the hold register.
func (cs *Counters) WriteHold(id int, value uint32) {
	c := cs.get(id)
	now := cs.src.Cycle()
	c.resolve(now)
	c.Hold = value & CountMask
	cs.applyGate(c, false)
	cs.reschedule(now)
}

// LatchHold copies the current count into the hold register. On the console
// this happens for counters 0 and 1 when an SBUS interrupt is raised.
func (cs *Counters) LatchHold(id int) {
	c := cs.get(id)
	c.resolve(cs.src.Cycle())
	c.Hold = c.Count & CountMask
}

// phase of the generator that drives the gate source.
func (cs *Counters) gatePhase(source int) Phase {
	if source == GateVBlank {
		return cs.VSync.Phase
	}
	return cs.HSync.Phase
}

// applyGate re-evaluates the gate for the counter. a mode write that enables
// the gate resets the count. policy 0 then counts while the gate signal is
// low and the other policies wait for their edge.
func (cs *Counters) applyGate(c *Counter, modeWrite bool) {
	if !c.gated() {
		if modeWrite && c.Mode.GateEnable() {
			logger.Logf(logger.Allow, "counters", "T%d: hblank gate has no effect on hblank clock", c.ID)
		}
		c.GateOpen = true
		return
	}

	if modeWrite {
		c.restart(cs.src.Cycle())
	}

	switch c.Mode.GatePolicy() {
	case 0:
		c.GateOpen = cs.gatePhase(c.Mode.GateSource()) == Render
	default:
		if modeWrite {
			c.GateOpen = false
		}
	}
}

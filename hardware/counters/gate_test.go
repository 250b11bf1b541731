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

package counters_test

import (
	"testing"

	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/test"
)

func TestHBlankClock(t *testing.T) {
	clk, _, cs := newCounters()
	cs.WriteMode(0, cue|counters.ClockHBlank)

	advance(clk, cs, clocks.NTSC.HRenderCycles()-1)
	test.ExpectEquality(t, cs.ReadCount(0), uint32(0))
	advance(clk, cs, 1)
	test.ExpectEquality(t, cs.ReadCount(0), uint32(1))

	advance(clk, cs, 9*clocks.NTSC.ScanlineCycles)
	test.ExpectEquality(t, cs.ReadCount(0), uint32(10))
}

func TestHBlankGateOnHBlankClock(t *testing.T) {
	clk, _, cs := newCounters()

	// the gate is ignored and the counter behaves as an ungated hblank counter
	cs.WriteMode(0, cue|gate|counters.ClockHBlank|0x30)
	advance(clk, cs, 10*clocks.NTSC.ScanlineCycles)
	test.ExpectEquality(t, cs.ReadCount(0), uint32(10))
}

func TestGatePolicy0(t *testing.T) {
	clk, intc, cs := newCounters()
	spec := clocks.NTSC

	// divide by 512, gated by vblank, count while the gate signal is low
	cs.WriteMode(2, cue|counters.ClockBus256|gate|vgate)

	advance(clk, cs, spec.VRenderCycles()+1000)
	expected := uint32(spec.VRenderCycles() / 512)
	test.ExpectEquality(t, cs.ReadCount(2), expected)
	test.ExpectEquality(t, intc.Count(interrupts.VBlankStart), 1)

	// counter is stopped for the rest of the vblank
	advance(clk, cs, spec.VBlankCycles-1000)
	test.ExpectEquality(t, cs.ReadCount(2), expected)
	test.ExpectEquality(t, intc.Count(interrupts.VBlankEnd), 1)

	advance(clk, cs, 1024)
	test.ExpectEquality(t, cs.ReadCount(2), expected+2)
}

func TestGatePolicy3(t *testing.T) {
	clk, _, cs := newCounters()
	spec := clocks.NTSC

	// divide by 2, gated by hblank, reset on both edges
	cs.WriteMode(1, cue|gate|0x30)

	// policy 3 waits for the first edge
	advance(clk, cs, 100)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(0))

	advance(clk, cs, spec.HRenderCycles())
	test.ExpectEquality(t, cs.ReadCount(1), uint32(50))

	advance(clk, cs, spec.HBlankCycles-100+10)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(5))
}

func TestGatePolicy1(t *testing.T) {
	clk, _, cs := newCounters()
	spec := clocks.NTSC

	// reset on the falling edge only
	cs.WriteMode(1, cue|gate|0x10)

	advance(clk, cs, spec.HRenderCycles()+100)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(0))

	advance(clk, cs, spec.HBlankCycles-100+20)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(10))

	// rising edge has no effect
	advance(clk, cs, spec.HRenderCycles())
	test.ExpectEquality(t, cs.ReadCount(1), uint32(10+spec.HRenderCycles()/2))
}

func TestGatePolicy2(t *testing.T) {
	clk, _, cs := newCounters()
	spec := clocks.NTSC

	// reset on the rising edge only
	cs.WriteMode(1, cue|gate|0x20)

	advance(clk, cs, 100)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(0))

	advance(clk, cs, spec.HRenderCycles())
	test.ExpectEquality(t, cs.ReadCount(1), uint32(50))

	// falling edge has no effect
	advance(clk, cs, spec.HBlankCycles-100+20)
	test.ExpectEquality(t, cs.ReadCount(1), uint32((spec.HBlankCycles+20)/2))

	// next rising edge
	advance(clk, cs, spec.HRenderCycles()-20+10)
	test.ExpectEquality(t, cs.ReadCount(1), uint32(5))
}

func TestFrameCallbacks(t *testing.T) {
	clk, _, cs := newCounters()
	spec := clocks.NTSC

	var edges []counters.Edge
	cs.AddFrameCallback(func(e counters.Edge) {
		edges = append(edges, e)
	})

	var lines int
	cs.SetLineObserver(func(e counters.Edge) {
		if e.Phase == counters.Blank {
			lines++
		}
	})

	advance(clk, cs, spec.FrameCycles)

	test.DemandEquality(t, len(edges), 2)
	test.ExpectEquality(t, edges[0].Phase, counters.Blank)
	test.ExpectEquality(t, edges[0].Cycle, spec.VRenderCycles())
	test.ExpectEquality(t, edges[1].Phase, counters.Render)
	test.ExpectEquality(t, edges[1].Cycle, spec.FrameCycles)
	test.ExpectEquality(t, edges[1].Count, 1)

	// one hblank for every started scanline in the frame
	expected := int((spec.FrameCycles - spec.HRenderCycles()) / spec.ScanlineCycles)
	test.ExpectEquality(t, lines, expected+1)
}

func TestPAL(t *testing.T) {
	clk, intc, cs := newCounters()
	cs.SetSpec(clocks.PAL)
	advance(clk, cs, 50*clocks.PAL.FrameCycles)
	test.ExpectEquality(t, intc.Count(interrupts.VBlankStart), 50)
	test.ExpectEquality(t, cs.VSync.Count, 50)
}

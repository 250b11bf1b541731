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

import "github.com/jetsetilly/gopherps2/hardware/freeze"

// Freeze implements the freeze.Freezer interface.
func (cs *Counters) Freeze(enc *freeze.Encoder) {
	for i := range cs.Counter {
		c := &cs.Counter[i]
		enc.Uint32(c.Count)
		enc.Uint32(uint32(c.Mode))
		enc.Uint32(c.Target)
		enc.Uint32(c.Hold)
		enc.Uint32(c.Rate)
		enc.Uint64(c.Base)
		enc.Bool(c.GateOpen)
	}
	for _, g := range []*Generator{&cs.HSync, &cs.VSync} {
		enc.Int(int(g.Phase))
		enc.Uint64(g.PhaseStart)
		enc.Uint64(g.RenderDuration)
		enc.Uint64(g.BlankDuration)
		enc.Int(g.Count)
	}
	enc.Uint64(cs.Schedule.LastRecompute)
	enc.Uint64(cs.Schedule.CyclesUntilNextEvent)
}

// Thaw implements the freeze.Freezer interface.
func (cs *Counters) Thaw(dec *freeze.Decoder) error {
	for i := range cs.Counter {
		c := &cs.Counter[i]
		c.ID = i
		c.Count = dec.Uint32()
		c.Mode = Mode(dec.Uint32())
		c.Target = dec.Uint32()
		c.Hold = dec.Uint32()
		c.Rate = dec.Uint32()
		c.Base = dec.Uint64()
		c.GateOpen = dec.Bool()
	}
	for _, g := range []*Generator{&cs.HSync, &cs.VSync} {
		g.Phase = Phase(dec.Int())
		g.PhaseStart = dec.Uint64()
		g.RenderDuration = dec.Uint64()
		g.BlankDuration = dec.Uint64()
		g.Count = dec.Int()
	}
	cs.Schedule.LastRecompute = dec.Uint64()
	cs.Schedule.CyclesUntilNextEvent = dec.Uint64()
	return dec.Err()
}

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

// Phase of a sync generator.
type Phase int

// List of valid Phase values. The gate signal is high during Blank.
const (
	Render Phase = iota
	Blank
)

func (p Phase) String() string {
	switch p {
	case Render:
		return "render"
	case Blank:
		return "blank"
	}
	return fmt.Sprintf("unknown phase (%d)", int(p))
}

// Edge describes a phase change of a sync generator. Phase is the phase that
// has just started. A Blank edge is a rising edge of the gate signal.
type Edge struct {
	Phase Phase
	Cycle uint64

	// number of complete render/blank cycles before this edge
	Count int
}

func (e Edge) String() string {
	return fmt.Sprintf("%s @ %d", e.Phase, e.Cycle)
}

// Generator alternates between Render and Blank. There is one generator for
// the scanline (horizontal) and one for the frame (vertical).
type Generator struct {
	Name string

	Phase      Phase
	PhaseStart uint64

	RenderDuration uint64
	BlankDuration  uint64

	// number of complete render/blank cycles
	Count int
}

func (g *Generator) String() string {
	return fmt.Sprintf("%s %s since %d (next %d)", g.Name, g.Phase, g.PhaseStart, g.NextFlip())
}

func (g *Generator) reset(name string, render uint64, blank uint64) {
	*g = Generator{
		Name:           name,
		Phase:          Render,
		RenderDuration: render,
		BlankDuration:  blank,
	}
}

// Duration of the current phase.
func (g *Generator) Duration() uint64 {
	if g.Phase == Blank {
		return g.BlankDuration
	}
	return g.RenderDuration
}

// NextFlip returns the cycle at which the current phase ends.
func (g *Generator) NextFlip() uint64 {
	return g.PhaseStart + g.Duration()
}

// flip to the other phase. the new phase starts exactly where the old phase
// ended regardless of when flip() is called.
func (g *Generator) flip() Edge {
	g.PhaseStart = g.NextFlip()
	if g.Phase == Render {
		g.Phase = Blank
	} else {
		g.Phase = Render
		g.Count++
	}
	return Edge{Phase: g.Phase, Cycle: g.PhaseStart, Count: g.Count}
}

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

// Package clocks defines the constant values that describe the speed of the
// Emotion Engine and the timing of the video signal generated by the console.
//
// All durations are in EE cycles. Values are rounded to whole cycles, which
// means the refresh rate derived from the constants is very slightly off the
// nominal rate. The difference is not significant for the hardware modelled
// by this module.
package clocks

import "fmt"

// EE is the frequency of the Emotion Engine core clock in Hz.
const EE = 294912000

// Bus is the frequency of the EE bus clock in Hz. The counters and the DMAC
// are driven by the bus clock but all values in this module are expressed in
// EE cycles.
const Bus = EE / 2

// Spec describes the timing of one video standard.
type Spec struct {
	ID string

	// the duration of one complete scanline and how much of that is
	// horizontal blank
	ScanlineCycles uint64
	HBlankCycles   uint64

	// the duration of one field and how much of that is vertical blank
	FrameCycles  uint64
	VBlankCycles uint64

	// nominal field rate in Hz
	RefreshRate float64
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %.2fHz", s.ID, s.RefreshRate)
}

// HRenderCycles is the visible part of a scanline.
func (s Spec) HRenderCycles() uint64 {
	return s.ScanlineCycles - s.HBlankCycles
}

// VRenderCycles is the visible part of a field.
func (s Spec) VRenderCycles() uint64 {
	return s.FrameCycles - s.VBlankCycles
}

// hblank is half of the scanline for both standards.
var (
	NTSC = Spec{
		ID:             "NTSC",
		ScanlineCycles: 18743,
		HBlankCycles:   9371,
		FrameCycles:    4920115,
		VBlankCycles:   22 * 18743,
		RefreshRate:    59.94,
	}

	PAL = Spec{
		ID:             "PAL",
		ScanlineCycles: 18874,
		HBlankCycles:   9437,
		FrameCycles:    5898240,
		VBlankCycles:   25 * 18874,
		RefreshRate:    50.0,
	}
)

// SpecByID returns the Spec with the given ID. The comparison is exact.
func SpecByID(id string) (Spec, bool) {
	switch id {
	case NTSC.ID:
		return NTSC, true
	case PAL.ID:
		return PAL, true
	}
	return Spec{}, false
}

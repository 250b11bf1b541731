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

// Package preferences holds the preference values used by the hardware
// package.
package preferences

import (
	"fmt"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/clocks"
	"github.com/jetsetilly/gopherps2/hardware/dmac"
	"github.com/jetsetilly/gopherps2/paths"
	"github.com/jetsetilly/gopherps2/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// the video standard. either "NTSC" or "PAL"
	Video prefs.String

	// the number of quadwords a DMA channel moves before the next channel
	// is serviced
	DMABurst prefs.Int

	// unknown VIF opcodes stall the VIF and raise an error interrupt
	VIFStrict prefs.Bool

	// include main memory in frozen state
	FreezeRAM prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with a specific
// preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.Video.SetHookPre(func(v prefs.Value) error {
		if _, ok := clocks.SpecByID(fmt.Sprintf("%v", v)); !ok {
			return fmt.Errorf("unknown video standard (%v)", v)
		}
		return nil
	})
	p.DMABurst.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("DMA burst must be at least one quadword")
		}
		return nil
	})

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.video", &p.Video)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.dma.burst", &p.DMABurst)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.vif.strict", &p.VIFStrict)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.freeze.ram", &p.FreezeRAM)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Video.Set(clocks.NTSC.ID)
	p.DMABurst.Set(dmac.DefaultBurstLimit)
	p.VIFStrict.Set(false)
	p.FreezeRAM.Set(true)
}

// Spec returns the video timing selected by the Video preference.
func (p *Preferences) Spec() clocks.Spec {
	spec, _ := clocks.SpecByID(p.Video.String())
	return spec
}

// Reset all hardware preferences to the default values.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

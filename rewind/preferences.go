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

package rewind

import (
	"fmt"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/paths"
	"github.com/jetsetilly/gopherps2/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	dsk *prefs.Disk

	// the maximum number of states kept
	MaxEntries prefs.Int

	// a state is stored every Freq frames
	Freq prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	defaultMaxEntries = 10
	defaultFreq       = 5
)

// newPreferences loads the preferences from the file. If pth is empty the
// default preferences file is used.
func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.MaxEntries.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 2 {
			return fmt.Errorf("rewind must keep at least two entries")
		}
		return nil
	})
	p.Freq.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind frequency must be at least one")
		}
		return nil
	})

	p.MaxEntries.Set(defaultMaxEntries)
	p.Freq.Set(defaultFreq)

	var err error
	if pth == "" {
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.maxentries", &p.MaxEntries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.freq", &p.Freq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

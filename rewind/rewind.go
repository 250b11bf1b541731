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
	"sort"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/prefs"
)

// RewindError is the pattern for errors returned when a state could not be
// plumbed in.
const RewindError = "rewind: %v"

// Rewind is the history of machine states.
type Rewind struct {
	m     *hardware.Machine
	Prefs *Preferences

	// circular array of stored states in frame order
	entries []*hardware.State
	start   int
	count   int

	// a new frame has started. the state is stored on the next call to
	// Check()
	newFrame bool

	comparison *hardware.State
}

// NewRewind is the preferred method of initialisation for the Rewind type.
// The preferences are loaded from the file at pth, or the default
// preferences file if pth is empty.
func NewRewind(m *hardware.Machine, pth string) (*Rewind, error) {
	if m == nil {
		panic("rewind: nil machine")
	}

	r := &Rewind{m: m}

	var err error
	r.Prefs, err = newPreferences(pth)
	if err != nil {
		return nil, err
	}

	m.Counters.AddFrameCallback(func(e counters.Edge) {
		if e.Phase == counters.Blank {
			r.newFrame = true
		}
	})

	r.Prefs.MaxEntries.SetHookPost(func(_ prefs.Value) error {
		r.Reset()
		return nil
	})

	r.Reset()

	return r, nil
}

func (r *Rewind) String() string {
	f := r.GetFrames()
	return fmt.Sprintf("%d entries: %d to %d", r.count, f.Start, f.End)
}

// Reset the history. The only entry is the current state of the machine.
func (r *Rewind) Reset() {
	r.entries = make([]*hardware.State, r.Prefs.MaxEntries.Get().(int))
	r.start = 0
	r.count = 0
	r.newFrame = false
	r.append(r.m.Snapshot())
	r.comparison = r.entries[0]
}

// Check must be called regularly by the emulation loop. If a new frame has
// started since the last call the machine state is stored.
func (r *Rewind) Check() {
	if !r.newFrame {
		return
	}
	r.newFrame = false

	if r.m.Frame()%r.Prefs.Freq.Get().(int) != 0 {
		return
	}

	r.append(r.m.Snapshot())
}

// at returns the i'th entry in frame order.
func (r *Rewind) at(i int) *hardware.State {
	return r.entries[(r.start+i)%len(r.entries)]
}

func (r *Rewind) append(s *hardware.State) {
	if r.count == len(r.entries) {
		r.entries[r.start] = s
		r.start = (r.start + 1) % len(r.entries)
		return
	}
	r.entries[(r.start+r.count)%len(r.entries)] = s
	r.count++
}

// Frames is the range of frames in the history and the frame of the machine.
type Frames struct {
	Start   int
	End     int
	Current int
}

// GetFrames returns the range of frames that can be rewound to.
func (r *Rewind) GetFrames() Frames {
	return Frames{
		Start:   r.at(0).Frame,
		End:     r.at(r.count - 1).Frame,
		Current: r.m.Frame(),
	}
}

// plumb in entry i and run the emulation forward to the frame. entries after
// i are dropped.
func (r *Rewind) plumb(i int, frame int) error {
	s := r.at(i)
	r.count = i + 1

	if err := r.m.Plumb(s); err != nil {
		return curated.Errorf(RewindError, err)
	}

	if frame > s.Frame {
		if err := r.m.RunForFrameCount(frame-s.Frame, nil); err != nil {
			return curated.Errorf(RewindError, err)
		}
	}

	r.newFrame = false

	return nil
}

// GotoFrame moves the machine to the frame. Requests outside the range of the
// history are moved to the nearest stored frame. Returns the frame the
// machine is now at.
func (r *Rewind) GotoFrame(frame int) (int, error) {
	if frame <= r.at(0).Frame {
		return r.at(0).Frame, r.plumb(0, r.at(0).Frame)
	}

	last := r.count - 1
	if frame >= r.at(last).Frame {
		return r.at(last).Frame, r.plumb(last, r.at(last).Frame)
	}

	// the latest entry at or before the frame
	i := sort.Search(r.count, func(i int) bool {
		return r.at(i).Frame > frame
	}) - 1

	return frame, r.plumb(i, frame)
}

// GotoLast moves the machine to the most recent stored state.
func (r *Rewind) GotoLast() error {
	last := r.count - 1
	return r.plumb(last, r.at(last).Frame)
}

// SetComparison marks the most recent stored state as the comparison point.
func (r *Rewind) SetComparison() {
	r.comparison = r.at(r.count - 1)
}

// GetComparison returns the state marked by SetComparison().
func (r *Rewind) GetComparison() *hardware.State {
	return r.comparison
}

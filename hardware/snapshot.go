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

package hardware

import (
	"context"

	"github.com/jetsetilly/gopherps2/hardware/freeze"
)

// State is a frozen copy of the machine. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
//
// Note that the GS backend is not part of the snapshot process.
type State struct {
	Cycle uint64
	Frame int

	data []byte
}

// Data returns the encoded state. The data can be restored with
// NewStateFromData().
func (s *State) Data() []byte {
	return s.data
}

// NewStateFromData checks the encoded state and returns it as a State
// instance.
func NewStateFromData(data []byte) (*State, error) {
	dec, err := freeze.NewDecoder(data)
	if err != nil {
		return nil, err
	}
	s := &State{
		Cycle: dec.Uint64(),
		Frame: dec.Int(),
		data:  data,
	}
	return s, dec.Err()
}

// Snapshot the state of the machine.
func (m *Machine) Snapshot() *State {
	enc := freeze.NewEncoder()
	enc.Uint64(m.cycle)
	enc.Int(m.frame)

	m.INTC.Freeze(enc)
	m.Counters.Freeze(enc)
	m.DMAC.Freeze(enc)
	for _, u := range m.VU {
		u.Freeze(enc)
	}
	for _, v := range m.VIF {
		v.Freeze(enc)
	}
	m.Bus.Freeze(enc)

	ram := m.Prefs.FreezeRAM.Get().(bool)
	enc.Bool(ram)
	if ram {
		enc.Bytes(m.Mem.RAM)
		enc.Bytes(m.Mem.Scratchpad)
	}

	return &State{
		Cycle: m.cycle,
		Frame: m.frame,
		data:  enc.Data(),
	}
}

// Plumb a previously snapshotted state into the machine. Packets already
// sent to the GS are delivered before the state is changed.
//
// If the state was made without main memory then main memory is left as it
// is.
func (m *Machine) Plumb(s *State) error {
	if s == nil {
		panic("hardware: cannot plumb in a nil state")
	}

	if err := m.GS.Flush(context.Background()); err != nil {
		return err
	}

	dec, err := freeze.NewDecoder(s.data)
	if err != nil {
		return err
	}

	m.cycle = dec.Uint64()
	m.frame = dec.Int()

	if err := m.INTC.Thaw(dec); err != nil {
		return err
	}
	if err := m.Counters.Thaw(dec); err != nil {
		return err
	}
	if err := m.DMAC.Thaw(dec); err != nil {
		return err
	}
	for _, u := range m.VU {
		if err := u.Thaw(dec); err != nil {
			return err
		}
	}
	for _, v := range m.VIF {
		if err := v.Thaw(dec); err != nil {
			return err
		}
	}
	if err := m.Bus.Thaw(dec); err != nil {
		return err
	}

	if dec.Bool() {
		dec.BytesInto(m.Mem.RAM)
		dec.BytesInto(m.Mem.Scratchpad)
	}

	return dec.Err()
}

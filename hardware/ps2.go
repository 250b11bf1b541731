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
	"fmt"

	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/hardware/dmac"
	"github.com/jetsetilly/gopherps2/hardware/gspath"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/hardware/memory"
	"github.com/jetsetilly/gopherps2/hardware/preferences"
	"github.com/jetsetilly/gopherps2/hardware/registers"
	"github.com/jetsetilly/gopherps2/hardware/vif"
	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/logger"
	"github.com/jetsetilly/gopherps2/prefs"
)

// Machine is the emulated EE hardware. The machine owns the global cycle
// count. Nothing else changes it.
type Machine struct {
	Prefs *preferences.Preferences

	Mem      *memory.Memory
	INTC     *interrupts.INTC
	Counters *counters.Counters
	DMAC     *dmac.DMAC
	VU       [2]*vu.VU
	VIF      [2]*vif.VIF
	GS       *gspath.GSPath

	// all register accesses from the CPU side go through the bus
	Bus *registers.Registers

	cycle uint64
	frame int
}

// NewMachine creates a new machine. If prefs is nil the preferences are
// loaded from the default preferences file. If backend is nil data sent to
// the GS is discarded.
func NewMachine(p *preferences.Preferences, backend gspath.Backend) (*Machine, error) {
	var err error

	if p == nil {
		p, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	if backend == nil {
		backend = gspath.Discard{}
	}

	m := &Machine{
		Prefs: p,
		Mem:   memory.NewMemory(),
		INTC:  interrupts.NewINTC(),
		GS:    gspath.NewGSPath(backend),
	}

	m.Counters = counters.NewCounters(m, m.INTC, p.Spec())
	m.Counters.AddFrameCallback(func(e counters.Edge) {
		if e.Phase == counters.Blank {
			m.frame++
		}
	})

	m.DMAC = dmac.NewDMAC(m.Mem)
	m.DMAC.BurstLimit = p.DMABurst.Get().(int)

	for i := range m.VU {
		m.VU[i] = vu.NewVU(i)
	}

	// VIF0 has no path to the GS
	m.VIF[0] = vif.NewVIF(0, m.VU[0], nil, m.INTC)
	m.VIF[1] = vif.NewVIF(1, m.VU[1], m.GS, m.INTC)

	m.VIF[0].SetResume(func() { m.DMAC.Resume(dmac.VIF0) })
	m.VIF[1].SetResume(func() { m.DMAC.Resume(dmac.VIF1) })

	m.DMAC.Attach(dmac.VIF0, m.VIF[0])
	m.DMAC.Attach(dmac.VIF1, m.VIF[1])

	path3 := m.GS.Peripheral(gspath.Path3)
	path3.Masked = func() bool { return m.VIF[1].MaskPath3 }
	m.DMAC.Attach(dmac.GIF, path3)

	m.Bus = registers.NewRegisters(m.Mem, m.Counters, m.DMAC, m.INTC, m.VIF[0], m.VIF[1])

	m.applyStrict(p.VIFStrict.Get().(bool))

	p.Video.SetHookPost(func(v prefs.Value) error {
		m.Counters.SetSpec(m.Prefs.Spec())
		logger.Logf(logger.Allow, "hardware", "video standard is now %s", m.Counters.Spec())
		return nil
	})
	p.DMABurst.SetHookPost(func(v prefs.Value) error {
		m.DMAC.BurstLimit = v.(int)
		return nil
	})
	p.VIFStrict.SetHookPost(func(v prefs.Value) error {
		m.applyStrict(v.(bool))
		return nil
	})

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("cycle=%d frame=%d %s", m.cycle, m.frame, m.Counters.Spec())
}

func (m *Machine) applyStrict(strict bool) {
	for _, v := range m.VIF {
		v.Strict = strict
	}
}

// Cycle implements the counters.Clock interface.
func (m *Machine) Cycle() uint64 {
	return m.cycle
}

// Frame returns the number of vertical blanks since the machine was created
// or reset.
func (m *Machine) Frame() int {
	return m.frame
}

// Reset all components. The cycle count is not changed.
func (m *Machine) Reset() {
	m.Mem.Reset()
	m.INTC.Reset()
	m.Counters.Reset()
	m.DMAC.Reset()
	for i := range m.VU {
		m.VU[i].Reset()
	}
	for i := range m.VIF {
		m.VIF[i].Reset()
	}
	m.Bus.Reset()
	m.frame = 0
}

// Advance the global clock by the number of cycles. The counters are updated
// at every deadline on the way and the DMAC is serviced after every update.
func (m *Machine) Advance(cycles uint64) {
	target := m.cycle + cycles

	for m.cycle < target {
		d := m.Counters.Deadline()
		if d <= m.cycle {
			d = m.cycle + 1
		}
		m.cycle = min(d, target)
		m.Counters.Update()
		m.service()
	}
}

// service the VIFs and the DMAC. a VIF waiting for the GS or a VU program
// picks up where it left off.
func (m *Machine) service() {
	for _, v := range m.VIF {
		if !v.Idle() {
			v.Drain()
		}
	}
	m.DMAC.Service()
}

// Close the machine. Data already sent to the GS backend is delivered before
// Close() returns.
func (m *Machine) Close() error {
	return m.GS.Close()
}

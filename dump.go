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

package main

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopherps2/hardware"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/hardware/vif"
)

// the memory and the VU memories are too large for a useful graph. the dump
// is made from copies of the register state only.

type channelDump struct {
	Name  string
	State string
	CHCR  uint32
	MADR  uint32
	QWC   uint32
	TADR  uint32
}

type vifDump struct {
	Regs    vif.Registers
	Busy    bool
	Stalled bool
	Pending int
}

type machineDump struct {
	Cycle uint64
	Frame int

	INTCStat uint32
	INTCMask uint32

	Counters [counters.NumCounters]counters.Counter
	HSync    counters.Generator
	VSync    counters.Generator
	Schedule counters.Schedule

	DCtrl    uint32
	DStat    uint32
	Channels []channelDump

	VIF [2]vifDump
}

func newMachineDump(m *hardware.Machine) *machineDump {
	d := &machineDump{
		Cycle:    m.Cycle(),
		Frame:    m.Frame(),
		INTCStat: m.INTC.Stat,
		INTCMask: m.INTC.Mask,
		Counters: m.Counters.Counter,
		HSync:    m.Counters.HSync,
		VSync:    m.Counters.VSync,
		Schedule: m.Counters.Schedule,
		DCtrl:    m.DMAC.Ctrl,
		DStat:    m.DMAC.Stat,
	}

	for _, ch := range m.DMAC.Channel {
		d.Channels = append(d.Channels, channelDump{
			Name:  ch.Name,
			State: ch.State.String(),
			CHCR:  uint32(ch.CHCR),
			MADR:  ch.MADR,
			QWC:   ch.QWC,
			TADR:  ch.TADR,
		})
	}

	for i, v := range m.VIF {
		d.VIF[i] = vifDump{
			Regs:    v.Regs,
			Busy:    v.Busy,
			Stalled: v.Stalled,
			Pending: len(v.Pending),
		}
	}

	return d
}

// writeDump writes a graphviz description of the machine's register state.
func writeDump(w io.Writer, m *hardware.Machine) {
	memviz.Map(w, newMachineDump(m))
}

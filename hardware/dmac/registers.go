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

package dmac

import (
	"github.com/jetsetilly/gopherps2/logger"
)

// ReadChannel returns the value of a channel register.
func (d *DMAC) ReadChannel(id int, offset uint32) (uint32, bool) {
	ch := d.get(id)
	switch offset {
	case RegCHCR:
		return uint32(ch.CHCR), true
	case RegMADR:
		return ch.MADR, true
	case RegQWC:
		return ch.QWC, true
	case RegTADR:
		return ch.TADR, true
	case RegASR0:
		return ch.ASR[0], true
	case RegASR1:
		return ch.ASR[1], true
	case RegSADR:
		return ch.SADR, true
	}
	return 0, false
}

// WriteChannel writes to a channel register. Setting the STR bit of CHCR
// starts the channel.
func (d *DMAC) WriteChannel(id int, offset uint32, value uint32) bool {
	ch := d.get(id)
	switch offset {
	case RegCHCR:
		v := CHCR(value)
		if ch.Active() {
			if v.STR() {
				logger.Logf(logger.Allow, "dmac", "%s: CHCR write ignored while channel is active", ch.Name)
				return true
			}
			ch.CHCR = v
			ch.stop()
			return true
		}
		ch.CHCR = v
		if v.STR() {
			ch.start()
		}
	case RegMADR:
		ch.MADR = value &^ 0x0f
	case RegQWC:
		ch.QWC = value & 0xffff
	case RegTADR:
		ch.TADR = value &^ 0x0f
	case RegASR0:
		ch.ASR[0] = value &^ 0x0f
	case RegASR1:
		ch.ASR[1] = value &^ 0x0f
	case RegSADR:
		ch.SADR = value & sadrMask
	default:
		return false
	}
	return true
}

// Read returns the value of the DMAC or channel register at the address.
// Returns false if the address is not a DMAC register.
func (d *DMAC) Read(address uint32) (uint32, bool) {
	if id, offset, ok := ChannelAt(address); ok {
		return d.ReadChannel(id, offset)
	}

	switch address {
	case DCtrl:
		return d.Ctrl, true
	case DStat:
		return d.Stat, true
	case DPcr:
		return d.PCR, true
	case DSqwc:
		return d.SQWC, true
	case DRbsr:
		return d.RBSR, true
	case DRbor:
		return d.RBOR, true
	case DStadr:
		return d.STADR, true
	case DEnableR, DEnableW:
		return d.Enable, true
	}

	return 0, false
}

// Write to the DMAC or channel register at the address. Returns false if the
// address is not a DMAC register.
//
// Writing to D_STAT clears the status bits written as one and toggles the
// mask bits written as one.
func (d *DMAC) Write(address uint32, value uint32) bool {
	if id, offset, ok := ChannelAt(address); ok {
		return d.WriteChannel(id, offset, value)
	}

	switch address {
	case DCtrl:
		if (d.Ctrl^value)&ctrlMFD != 0 {
			logger.Logf(logger.Allow, "dmac", "MFIFO mode %d", (value&ctrlMFD)>>2)
		}
		d.Ctrl = value
	case DStat:
		d.Stat &^= value & 0x0000ffff
		d.Stat ^= value & 0xffff0000
	case DPcr:
		d.PCR = value
	case DSqwc:
		d.SQWC = value & 0x00ff00ff
	case DRbsr:
		d.RBSR = value &^ 0x0f
	case DRbor:
		d.RBOR = value &^ 0x0f
	case DStadr:
		d.STADR = value &^ 0x0f
	case DEnableW:
		d.Enable = value
	case DEnableR:
		// read only
	default:
		return false
	}

	return true
}

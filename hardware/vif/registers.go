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

package vif

import (
	"fmt"

	"github.com/jetsetilly/gopherps2/logger"
)

// Base addresses of the register blocks and FIFOs of the two units.
var (
	RegisterBase = [2]uint32{0x10003800, 0x10003c00}
	FIFOBase     = [2]uint32{0x10004000, 0x10005000}
)

// Register offsets from the unit's register base.
const (
	RegSTAT  = 0x000
	RegFBRST = 0x010
	RegERR   = 0x020
	RegMARK  = 0x030
	RegCYCLE = 0x040
	RegMODE  = 0x050
	RegNUM   = 0x060
	RegMASK  = 0x070
	RegCODE  = 0x080
	RegITOPS = 0x090
	RegBASE  = 0x0a0
	RegOFST  = 0x0b0
	RegTOPS  = 0x0c0
	RegITOP  = 0x0d0
	RegTOP   = 0x0e0
	RegR0    = 0x100
	RegC0    = 0x140
)

// STAT bits.
const (
	StatVPS = 0x00000003
	StatVEW = 0x00000004
	StatVGW = 0x00000008
	StatMRK = 0x00000040
	StatDBF = 0x00000080
	StatVSS = 0x00000100
	StatVFS = 0x00000200
	StatVIS = 0x00000400
	StatINT = 0x00000800
	StatER0 = 0x00001000
	StatER1 = 0x00002000
	StatFDR = 0x00800000
	StatFQC = 0x1f000000
)

// FBRST bits.
const (
	FbrstRST = 0x01
	FbrstFBK = 0x02
	FbrstSTP = 0x04
	FbrstSTC = 0x08
)

// ERR bits.
const (
	ErrMII = 0x01
	ErrME0 = 0x02
	ErrME1 = 0x04
)

// VPS field values.
const (
	vpsIdle     = 0
	vpsWaiting  = 1
	vpsDecoding = 2
	vpsTransfer = 3
)

// Registers of one VIF unit. BASE, OFST, TOPS and TOP are only used by VIF1.
type Registers struct {
	STAT  uint32
	ERR   uint32
	MARK  uint32
	CL    uint8
	WL    uint8
	MODE  uint32
	MASK  uint32
	CODE  uint32
	ITOPS uint32
	BASE  uint32
	OFST  uint32
	TOPS  uint32
	ITOP  uint32
	TOP   uint32
	R     [4]uint32
	C     [4]uint32
}

func (r Registers) String() string {
	return fmt.Sprintf("stat=%#08x err=%#x mark=%#04x cl=%d wl=%d mode=%d mask=%#08x code=%#08x",
		r.STAT, r.ERR, r.MARK, r.CL, r.WL, r.MODE, r.MASK, r.CODE)
}

// Read returns the value of the register at the offset from the unit's
// register base.
func (v *VIF) Read(offset uint32) (uint32, bool) {
	r := &v.Regs
	switch offset {
	case RegSTAT:
		return v.stat(), true
	case RegFBRST:
		return 0, true
	case RegERR:
		return r.ERR, true
	case RegMARK:
		return r.MARK, true
	case RegCYCLE:
		return uint32(r.CL) | uint32(r.WL)<<8, true
	case RegMODE:
		return r.MODE, true
	case RegNUM:
		return v.Num & 0xff, true
	case RegMASK:
		return r.MASK, true
	case RegCODE:
		return r.CODE, true
	case RegITOPS:
		return r.ITOPS, true
	case RegITOP:
		return r.ITOP, true
	}

	if v.ID == 1 {
		switch offset {
		case RegBASE:
			return r.BASE, true
		case RegOFST:
			return r.OFST, true
		case RegTOPS:
			return r.TOPS, true
		case RegTOP:
			return r.TOP, true
		}
	}

	if offset >= RegR0 && offset < RegR0+0x40 && offset&0x0f == 0 {
		return r.R[(offset-RegR0)>>4], true
	}
	if offset >= RegC0 && offset < RegC0+0x40 && offset&0x0f == 0 {
		return r.C[(offset-RegC0)>>4], true
	}

	return 0, false
}

// Write to the register at the offset from the unit's register base. Most
// registers are read only and writes to them are ignored.
func (v *VIF) Write(offset uint32, value uint32) bool {
	r := &v.Regs
	switch offset {
	case RegSTAT:
		if v.ID == 1 {
			r.STAT = (r.STAT &^ StatFDR) | (value & StatFDR)
		}
	case RegFBRST:
		v.WriteFBRST(value)
	case RegERR:
		r.ERR = value & (ErrMII | ErrME0 | ErrME1)
	case RegMARK:
		r.MARK = value & 0xffff
		r.STAT &^= StatMRK
	default:
		if offset >= RegR0 && offset < RegR0+0x40 && offset&0x0f == 0 {
			r.R[(offset-RegR0)>>4] = value
			return true
		}
		if offset >= RegC0 && offset < RegC0+0x40 && offset&0x0f == 0 {
			r.C[(offset-RegC0)>>4] = value
			return true
		}
		_, ok := v.Read(offset)
		return ok
	}
	return true
}

// WriteFBRST performs the actions of the FBRST register.
func (v *VIF) WriteFBRST(value uint32) {
	if value&FbrstRST == FbrstRST {
		logger.Logf(logger.Allow, v.tag, "reset")
		v.Reset()
	}

	if value&FbrstFBK == FbrstFBK {
		v.Regs.STAT |= StatVFS
		v.Stalled = true
	}

	if value&FbrstSTP == FbrstSTP {
		if v.Busy {
			v.StopPending = true
		} else {
			v.Regs.STAT |= StatVSS
			v.Stalled = true
		}
	}

	if value&FbrstSTC == FbrstSTC {
		v.Regs.STAT &^= StatVSS | StatVFS | StatVIS | StatINT | StatER0 | StatER1
		v.StopPending = false
		if v.IRQ > 0 {
			v.IRQ--
		}
		if v.Stalled {
			v.Stalled = false
			if v.resume != nil {
				v.resume()
			}
		}
	}
}

// stat returns the value of the STAT register with the fields that reflect
// the state of the VIF.
func (v *VIF) stat() uint32 {
	s := v.Regs.STAT &^ (StatVPS | StatFQC)

	switch {
	case !v.Busy:
		s |= vpsIdle
	case v.waiting:
		s |= vpsDecoding
	case v.Code.Opcode().IsUnpack() || v.Code.Opcode() == DIRECT || v.Code.Opcode() == DIRECTHL:
		s |= vpsTransfer
	default:
		s |= vpsWaiting
	}

	fqc := min((len(v.Pending)+3)/4, 0x1f)
	s |= uint32(fqc) << 24

	return s
}

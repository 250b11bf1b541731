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
	"encoding/binary"

	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/logger"
)

// decode a VIFcode. commands without a payload are completed immediately.
// commands with a payload, or that must wait, set Busy.
func (v *VIF) decode(code Code) {
	v.Code = code
	v.Regs.CODE = uint32(code)

	op := code.Opcode()
	if !op.known(v.ID) {
		v.protocolError(code)
		return
	}

	imm := code.Imm()

	if op.IsUnpack() {
		v.startUnpack(code)
		return
	}

	switch op {
	case NOP:

	case STCYCL:
		v.Regs.CL = uint8(imm)
		v.Regs.WL = uint8(imm >> 8)

	case OFFSET:
		v.Regs.OFST = imm & 0x3ff
		v.Regs.STAT &^= StatDBF
		v.Regs.TOPS = v.Regs.BASE

	case BASE:
		v.Regs.BASE = imm & 0x3ff

	case ITOP:
		v.Regs.ITOPS = imm & 0x3ff

	case STMOD:
		v.Regs.MODE = imm & 0x03

	case MSKPATH3:
		v.MaskPath3 = imm&0x8000 == 0x8000

	case MARK:
		v.Regs.MARK = imm
		v.Regs.STAT |= StatMRK

	case FLUSHE, FLUSH, FLUSHA, MSCAL, MSCALF, MSCNT:
		v.Busy = true

	case STMASK:
		v.Busy = true
		v.Tag = Tag{Size: 1, Cmd: code}

	case STROW, STCOL:
		v.Busy = true
		v.Tag = Tag{Size: 4, Cmd: code}

	case MPG:
		num := code.Num()
		if num == 0 {
			num = 256
		}
		v.Busy = true
		v.Tag = Tag{Addr: imm * 8, Size: num * 2, Cmd: code}

	case DIRECT, DIRECTHL:
		size := imm
		if size == 0 {
			size = 0x10000
		}
		v.Busy = true
		v.Offset = 0
		v.Tag = Tag{Size: size * 4, Cmd: code}
	}
}

// execute continues the current command with the words available. returns
// the number of words consumed and whether the command has completed.
func (v *VIF) execute(words []uint32) (int, bool) {
	op := v.Code.Opcode()

	if op.IsUnpack() {
		return v.unpack(words)
	}

	switch op {
	case FLUSHE, FLUSH, FLUSHA, MSCAL, MSCALF, MSCNT:
		if !v.ready(op) {
			v.waiting = true
			return 0, false
		}
		v.waiting = false
		v.Regs.STAT &^= StatVEW | StatVGW
		switch op {
		case MSCAL, MSCALF:
			v.startMicro(vu.Start{Address: v.Code.Imm() * 8})
		case MSCNT:
			v.startMicro(vu.Start{Continue: true})
		}
		return 0, true

	case STMASK:
		if len(words) == 0 {
			return 0, false
		}
		v.Regs.MASK = words[0]
		v.Tag.Size = 0
		return 1, true

	case STROW, STCOL:
		n := min(len(words), int(v.Tag.Size))
		for _, w := range words[:n] {
			if op == STROW {
				v.Regs.R[v.Tag.Addr] = w
			} else {
				v.Regs.C[v.Tag.Addr] = w
			}
			v.Tag.Addr++
		}
		v.Tag.Size -= uint32(n)
		return n, v.Tag.Size == 0

	case MPG:
		n := min(len(words), int(v.Tag.Size))
		for _, w := range words[:n] {
			v.vu.WriteMicro(v.Tag.Addr, w)
			v.Tag.Addr += 4
		}
		v.Tag.Size -= uint32(n)
		return n, v.Tag.Size == 0

	case DIRECT, DIRECTHL:
		return v.direct(words)
	}

	return 0, true
}

// ready returns true if the conditions for a waiting command are met.
func (v *VIF) ready(op Opcode) bool {
	if v.vu.Busy() {
		v.Regs.STAT |= StatVEW
		return false
	}

	var paths []int
	switch op {
	case FLUSH, MSCALF:
		paths = []int{Path1, Path2}
	case FLUSHA:
		paths = []int{Path1, Path2, Path3}
	}

	if v.gs == nil {
		return true
	}
	for _, p := range paths {
		if v.gs.Busy(p) {
			v.Regs.STAT |= StatVGW
			return false
		}
	}
	return true
}

// startMicro starts a VU program. on VIF1 the double buffer is swapped.
func (v *VIF) startMicro(s vu.Start) {
	r := &v.Regs
	r.ITOP = r.ITOPS
	if v.ID == 1 {
		r.TOP = r.TOPS
		r.STAT ^= StatDBF
		if r.STAT&StatDBF == StatDBF {
			r.TOPS = r.BASE + r.OFST
		} else {
			r.TOPS = r.BASE
		}
	}
	s.TOP = r.TOP
	s.ITOP = r.ITOP
	v.vu.Start(s)
}

// direct sends whole quadwords to GS path 2. words of a partial quadword are
// kept until the quadword is complete.
func (v *VIF) direct(words []uint32) (int, bool) {
	if v.gs == nil {
		logger.Logf(logger.Allow, v.tag, "DIRECT with no GS path")
		n := min(len(words), int(v.Tag.Size))
		v.Tag.Size -= uint32(n)
		return n, v.Tag.Size == 0
	}

	n := min(len(words), int(v.Tag.Size))
	total := v.Offset + n
	whole := total / 4

	if whole > 0 {
		data := make([]byte, whole*16)
		for i := range whole * 4 {
			var w uint32
			if i < v.Offset {
				w = v.Partial[i]
			} else {
				w = words[i-v.Offset]
			}
			binary.LittleEndian.PutUint32(data[i*4:], w)
		}
		if !v.gs.TrySend(Path2, data) {
			return 0, false
		}
	}

	// keep the words of the incomplete quadword
	rest := total - whole*4
	for i := range rest {
		src := whole*4 + i
		if src < v.Offset {
			v.Partial[i] = v.Partial[src]
		} else {
			v.Partial[i] = words[src-v.Offset]
		}
	}
	v.Offset = rest

	v.Tag.Size -= uint32(n)
	return n, v.Tag.Size == 0
}

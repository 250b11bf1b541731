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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/interrupts"
	"github.com/jetsetilly/gopherps2/hardware/vu"
	"github.com/jetsetilly/gopherps2/logger"
)

// GS paths used by the VIF.
const (
	Path1 = 1
	Path2 = 2
	Path3 = 3
)

// GSPath is the connection from VIF1 to the graphics synthesizer.
type GSPath interface {
	// TrySend hands a copy of data to the path. Returns false if the path
	// cannot accept the data at the moment.
	TrySend(path int, data []byte) bool

	// Busy returns true if the path has data in flight.
	Busy(path int) bool
}

// Error patterns. Errors are logged and not returned.
const (
	UnknownOpcode   = "vif%d: unknown opcode (%#02x)"
	MalformedUnpack = "vif%d: malformed unpack: %s"
)

// Tag is the progress through the payload of the current command.
type Tag struct {
	// destination address. quadwords for UNPACK, bytes for MPG and the word
	// index for STROW and STCOL
	Addr uint32

	// words of payload still to be received
	Size uint32

	// the command the payload belongs to
	Cmd Code
}

// VIF is one VIF unit.
type VIF struct {
	ID   int
	Regs Registers

	// unknown opcodes stall the VIF and raise an error interrupt unless
	// ERR.ME1 is set
	Strict bool

	// the command being executed. Busy is false when the VIF is waiting for
	// the next VIFcode
	Code Code
	Busy bool
	Tag  Tag

	// remaining quadwords to write for an UNPACK
	Num uint32

	// position in the CL/WL cycle
	Cycle int

	// word position in a partially received quadword (DIRECT)
	Offset  int
	Partial [4]uint32

	// bytes received for an unpack element that is not yet complete
	Acc    [16]byte
	AccLen int

	USN bool

	// interrupts raised and not acknowledged
	IRQ int

	// no data is accepted while the VIF is stalled
	Stalled     bool
	StopPending bool

	// PATH3 is masked by MSKPATH3
	MaskPath3 bool

	// words received from DMA that could not yet be decoded
	Pending []uint32

	// the current command is waiting for the VU or the GS to become idle
	waiting bool

	vu     *vu.VU
	gs     GSPath
	intc   interrupts.Raiser
	resume func()

	tag string
}

// NewVIF is the preferred method of initialisation for the VIF type. The GS
// path can be nil.
func NewVIF(id int, unit *vu.VU, gs GSPath, intc interrupts.Raiser) *VIF {
	if id < 0 || id > 1 {
		panic(fmt.Sprintf("vif: no unit %d", id))
	}
	if unit == nil || intc == nil {
		panic("vif: nil collaborator")
	}
	v := &VIF{
		ID:   id,
		vu:   unit,
		gs:   gs,
		intc: intc,
		tag:  fmt.Sprintf("vif%d", id),
	}
	v.Reset()
	return v
}

func (v *VIF) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("VIF%d %s", v.ID, v.Regs))
	if v.Busy {
		s.WriteString(fmt.Sprintf(" [%s]", v.Code))
	}
	if v.Stalled {
		s.WriteString(" stalled")
	}
	return s.String()
}

// Reset the VIF. The connections to the VU, GS and interrupt controller are
// kept.
func (v *VIF) Reset() {
	v.Regs = Registers{}
	v.Code = 0
	v.Busy = false
	v.Tag = Tag{}
	v.Num = 0
	v.Cycle = 0
	v.Offset = 0
	v.Partial = [4]uint32{}
	v.AccLen = 0
	v.USN = false
	v.IRQ = 0
	v.Stalled = false
	v.StopPending = false
	v.MaskPath3 = false
	v.Pending = v.Pending[:0]
	v.waiting = false
}

// SetResume sets the function called when a stall is cancelled. This is
// normally the resumption of the VIF's DMA channel.
func (v *VIF) SetResume(f func()) {
	v.resume = f
}

// Idle returns true if the VIF has no command in progress and no words
// waiting to be decoded.
func (v *VIF) Idle() bool {
	return !v.Busy && len(v.Pending) == 0
}

// Process decodes words and returns the number of words consumed. Fewer words
// than given are consumed if the VIF stalls or if a command is waiting for
// the VU or the GS.
func (v *VIF) Process(words []uint32) int {
	var i int

	for !v.Stalled {
		if !v.Busy {
			if v.StopPending {
				v.StopPending = false
				v.Regs.STAT |= StatVSS
				v.Stalled = true
				break
			}
			if i >= len(words) {
				break
			}

			v.decode(Code(words[i]))
			i++

			if !v.Busy {
				v.complete()
			}
			continue
		}

		n, done := v.execute(words[i:])
		i += n

		if !done {
			break
		}

		v.Busy = false
		v.complete()
	}

	return i
}

// complete is called at the end of every command.
func (v *VIF) complete() {
	v.waiting = false
	if !v.Code.Interrupt() || v.Regs.ERR&ErrMII == ErrMII {
		return
	}
	v.raise()
	v.Regs.STAT |= StatVIS
	v.Stalled = true
}

// raise the VIF interrupt.
func (v *VIF) raise() {
	v.Regs.STAT |= StatINT
	v.IRQ++
	v.intc.Raise(interrupts.VIF0 + interrupts.Line(v.ID))
}

// protocolError for an unknown opcode. in strict mode the VIF stalls with an
// error interrupt.
func (v *VIF) protocolError(code Code) {
	logger.Log(logger.Allow, v.tag, curated.Errorf(UnknownOpcode, v.ID, uint8(code.Opcode())))

	if !v.Strict || v.Regs.ERR&ErrME1 == ErrME1 {
		return
	}

	v.Regs.STAT |= StatER1
	v.raise()
	v.Stalled = true
}

// drain processes words that were received while the VIF could not decode
// them. returns true if there are no pending words.
func (v *VIF) drain() bool {
	if len(v.Pending) == 0 {
		return true
	}
	n := v.Process(v.Pending)
	v.Pending = append(v.Pending[:0], v.Pending[n:]...)
	return len(v.Pending) == 0
}

// Drain decodes any words that were received while the VIF was busy. It
// should be called when a VU program or a GS transfer finishes.
func (v *VIF) Drain() bool {
	return v.drain()
}

func toWords(data []byte) []uint32 {
	w := make([]uint32, len(data)/4)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return w
}

// FromMemory implements the dmac.Peripheral interface. A quadword that is
// only partly decoded is accepted and the remaining words are kept until
// they can be decoded.
func (v *VIF) FromMemory(data []byte) int {
	if !v.drain() {
		return 0
	}

	words := toWords(data)
	n := v.Process(words)
	if n == len(words) {
		return len(data) / 16
	}

	q := (n + 3) / 4
	v.Pending = append(v.Pending, words[n:q*4]...)
	return q
}

// ToMemory implements the dmac.Peripheral interface. Reading back from the GS
// is not supported and the channel is stalled.
func (v *VIF) ToMemory(data []byte) int {
	return 0
}

// ReceiveTag implements the dmac.TagReceiver interface. The upper half of a
// DMA tag is decoded as two words.
func (v *VIF) ReceiveTag(data []byte) bool {
	if !v.drain() {
		return false
	}
	words := toWords(data)
	n := v.Process(words)
	v.Pending = append(v.Pending, words[n:]...)
	return true
}

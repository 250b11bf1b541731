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
	"fmt"
)

// Channel IDs.
const (
	VIF0 = iota
	VIF1
	GIF
	FromIPU
	ToIPU
	SIF0
	SIF1
	SIF2
	FromSPR
	ToSPR

	NumChannels
)

// Offsets of the channel registers from the channel's base address.
const (
	RegCHCR = 0x00
	RegMADR = 0x10
	RegQWC  = 0x20
	RegTADR = 0x30
	RegASR0 = 0x40
	RegASR1 = 0x50
	RegSADR = 0x80
)

// direction of the channel regardless of CHCR.DIR.
type direction int

const (
	either direction = iota
	fromMemory
	toMemory
)

type info struct {
	name    string
	address uint32
	dir     direction

	// chain mode supports CALL and RET
	stack bool
}

var channels = [NumChannels]info{
	{name: "VIF0", address: 0x10008000, dir: fromMemory, stack: true},
	{name: "VIF1", address: 0x10009000, dir: either, stack: true},
	{name: "GIF", address: 0x1000a000, dir: fromMemory, stack: true},
	{name: "fromIPU", address: 0x1000b000, dir: toMemory},
	{name: "toIPU", address: 0x1000b400, dir: fromMemory},
	{name: "SIF0", address: 0x1000c000, dir: toMemory},
	{name: "SIF1", address: 0x1000c400, dir: fromMemory},
	{name: "SIF2", address: 0x1000c800, dir: either},
	{name: "fromSPR", address: 0x1000d000, dir: toMemory},
	{name: "toSPR", address: 0x1000d400, dir: fromMemory},
}

// Address returns the base address of the channel's registers.
func Address(id int) uint32 {
	return channels[id].address
}

// ChannelAt returns the channel and register offset for an address in the
// DMA channel area.
func ChannelAt(address uint32) (int, uint32, bool) {
	for id := range channels {
		base := channels[id].address
		if address >= base && address < base+0x100 {
			return id, address - base, true
		}
	}
	return 0, 0, false
}

// State of a channel.
type State int

// List of valid State values.
const (
	Idle State = iota
	NormalTransfer
	ChainTagFetch
	ChainTransfer
	Stalled
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case NormalTransfer:
		return "normal"
	case ChainTagFetch:
		return "tag fetch"
	case ChainTransfer:
		return "chain"
	case Stalled:
		return "stalled"
	case Done:
		return "done"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Peripheral is the device at the other end of a channel.
type Peripheral interface {
	// FromMemory is given whole quadwords read from memory. It returns the
	// number of quadwords accepted. Returning zero stalls the channel.
	FromMemory(data []byte) int

	// ToMemory fills data with whole quadwords to be written to memory. It
	// returns the number of quadwords provided. Returning zero stalls the
	// channel.
	ToMemory(data []byte) int
}

// TagReceiver is implemented by peripherals that accept the upper half of a
// chain tag when CHCR.TTE is set. Returning false stalls the channel.
type TagReceiver interface {
	ReceiveTag(data []byte) bool
}

// DestinationTagger is implemented by peripherals that provide the tags of a
// destination chain. Returning false stalls the channel.
type DestinationTagger interface {
	DestinationTag() (Tag, bool)
}

// Channel is one DMA channel.
type Channel struct {
	ID   int
	Name string

	CHCR CHCR
	MADR uint32
	QWC  uint32
	TADR uint32
	ASR  [2]uint32
	SADR uint32

	State State

	// the state to return to when a stalled channel makes progress
	Resume State

	// the current tag is the last in the chain
	Terminal bool

	// the current tag is REFS or CNTS and the transfer is subject to stall
	// control
	StallTag bool

	// the data of the current tag is in the MFIFO ring
	RingData bool

	// the upper half of the current tag is still to be sent to the peripheral
	TagPending bool
	TagData    [8]byte

	// quadwords moved in the current interleave block
	Interleaved uint32

	peripheral Peripheral
}

func newChannel(id int) *Channel {
	return &Channel{
		ID:   id,
		Name: channels[id].name,
	}
}

func (ch *Channel) String() string {
	return fmt.Sprintf("%s [%s] %s madr=%#08x qwc=%d tadr=%#08x asr=%#08x,%#08x sadr=%#04x",
		ch.Name, ch.State, ch.CHCR, ch.MADR, ch.QWC, ch.TADR, ch.ASR[0], ch.ASR[1], ch.SADR)
}

func (ch *Channel) reset() {
	p := ch.peripheral
	*ch = *newChannel(ch.ID)
	ch.peripheral = p
}

// fromMemory returns true if the channel moves data from memory to the
// peripheral.
func (ch *Channel) fromMemory() bool {
	switch channels[ch.ID].dir {
	case fromMemory:
		return true
	case toMemory:
		return false
	}
	return ch.CHCR.FromMemory()
}

// Active returns true if the channel has been started and has not finished.
func (ch *Channel) Active() bool {
	return ch.State != Idle && ch.State != Done
}

// stall the channel. the current state is remembered so that the transfer
// continues exactly where it stopped.
func (ch *Channel) stall() {
	if ch.State != Stalled {
		ch.Resume = ch.State
		ch.State = Stalled
	}
}

// unstall returns the channel to the state it was in when it stalled.
func (ch *Channel) unstall() {
	if ch.State == Stalled {
		ch.State = ch.Resume
	}
}

// start the channel after the STR bit has been set.
func (ch *Channel) start() {
	ch.Terminal = false
	ch.StallTag = false
	ch.RingData = false
	ch.TagPending = false
	ch.Interleaved = 0

	switch ch.CHCR.Mode() {
	case Chain:
		if ch.QWC > 0 {
			// data left over from a previous tag is transferred before the
			// next tag is read. the ID of that tag is in CHCR.TAG
			id := ChainID(ch.CHCR.Tag()>>12) & 0x07
			if ch.fromMemory() {
				ch.Terminal = id == REFE || id == END
			} else {
				ch.Terminal = id == DestEND
			}
			if ch.CHCR.TIE() && ch.CHCR.Tag()&0x8000 == 0x8000 {
				ch.Terminal = true
			}
			ch.State = ChainTransfer
		} else {
			ch.State = ChainTagFetch
		}
	default:
		ch.State = NormalTransfer
	}
}

// stop the channel after the STR bit has been cleared by the CPU. the
// cursors are left as they are.
func (ch *Channel) stop() {
	ch.State = Idle
}

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
	"strings"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherps2/logger"
)

// Memory is the DMAC's view of main memory and the scratchpad. If bit 31 of
// an address is set the address is an offset into the scratchpad.
type Memory interface {
	Read(address uint32, data []byte) error
	Write(address uint32, data []byte) error
}

// Addresses of the DMAC control registers.
const (
	DCtrl    = uint32(0x1000e000)
	DStat    = uint32(0x1000e010)
	DPcr     = uint32(0x1000e020)
	DSqwc    = uint32(0x1000e030)
	DRbsr    = uint32(0x1000e040)
	DRbor    = uint32(0x1000e050)
	DStadr   = uint32(0x1000e060)
	DEnableR = memorymap.DEnableR
	DEnableW = memorymap.DEnableW
)

// D_CTRL bits.
const (
	ctrlDMAE = 0x00000001
	ctrlMFD  = 0x0000000c
	ctrlSTS  = 0x00000030
	ctrlSTD  = 0x000000c0
)

// D_STAT bits.
const (
	StatCIS  = 0x000003ff
	StatSIS  = 0x00002000
	StatMEIS = 0x00004000
	StatBEIS = 0x00008000
	StatCIM  = 0x03ff0000
	StatSIM  = 0x20000000
	StatMEIM = 0x40000000
)

// D_PCR bits.
const (
	pcrCDE = 0x03ff0000
	pcrPCE = 0x80000000
)

// D_ENABLE bits.
const (
	enableCPND = 0x00010000
)

// DefaultBurstLimit is the number of quadwords a channel moves before the
// next channel is serviced.
const DefaultBurstLimit = 8

// the maximum number of channel steps in one call to Service(). a chain that
// loops on itself would otherwise never end.
const serviceLimit = 0x10000

// DMAC is the DMA controller.
type DMAC struct {
	mem Memory

	Channel [NumChannels]*Channel

	Ctrl   uint32
	Stat   uint32
	PCR    uint32
	SQWC   uint32
	RBSR   uint32
	RBOR   uint32
	STADR  uint32
	Enable uint32

	// quadwords moved by a channel in one step
	BurstLimit int

	// the channel to be serviced first on the next call to Service()
	next int

	buffer []byte
}

// NewDMAC is the preferred method of initialisation for the DMAC type.
func NewDMAC(mem Memory) *DMAC {
	if mem == nil {
		panic("dmac: nil memory")
	}

	d := &DMAC{
		mem:        mem,
		BurstLimit: DefaultBurstLimit,
	}

	for id := range d.Channel {
		d.Channel[id] = newChannel(id)
		d.Channel[id].peripheral = unconnected{}
	}

	// the scratchpad channels are internal to the DMAC
	d.Attach(FromSPR, &scratchpad{d: d, id: FromSPR})
	d.Attach(ToSPR, &scratchpad{d: d, id: ToSPR})

	d.Reset()

	return d
}

func (d *DMAC) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ctrl=%#08x stat=%#08x pcr=%#08x sqwc=%#08x rbor=%#08x rbsr=%#08x stadr=%#08x\n",
		d.Ctrl, d.Stat, d.PCR, d.SQWC, d.RBOR, d.RBSR, d.STADR))
	for _, ch := range d.Channel {
		s.WriteString(ch.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Attach a peripheral to a channel. A nil peripheral disconnects the
// channel. Data sent to a disconnected channel is discarded.
func (d *DMAC) Attach(id int, p Peripheral) {
	if p == nil {
		p = unconnected{}
	}
	d.get(id).peripheral = p
}

// Reset the DMAC and all channels. The DMAE bit of D_CTRL is set.
func (d *DMAC) Reset() {
	for _, ch := range d.Channel {
		ch.reset()
	}
	d.Ctrl = ctrlDMAE
	d.Stat = 0
	d.PCR = 0
	d.SQWC = 0
	d.RBSR = 0
	d.RBOR = 0
	d.STADR = 0
	d.Enable = 0x1201
	d.next = 0
}

func (d *DMAC) get(id int) *Channel {
	if id < 0 || id >= NumChannels {
		panic(fmt.Sprintf("dmac: no channel %d", id))
	}
	return d.Channel[id]
}

// suspended returns true if no channel can run.
func (d *DMAC) suspended() bool {
	return d.Ctrl&ctrlDMAE == 0 || d.Enable&enableCPND == enableCPND
}

// enabled returns true if the priority control register allows the channel
// to run.
func (d *DMAC) enabled(id int) bool {
	if d.PCR&pcrPCE == 0 {
		return true
	}
	return d.PCR&(1<<(16+id)) != 0
}

// Pending returns true if the DMAC is requesting a CPU interrupt.
func (d *DMAC) Pending() bool {
	if d.Stat&StatBEIS == StatBEIS {
		return true
	}
	if d.Stat&StatCIS&(d.Stat>>16) != 0 {
		return true
	}
	if d.Stat&StatSIS == StatSIS && d.Stat&StatSIM == StatSIM {
		return true
	}
	return d.Stat&StatMEIS == StatMEIS && d.Stat&StatMEIM == StatMEIM
}

// Active returns true if any channel has been started and not finished.
func (d *DMAC) Active() bool {
	for _, ch := range d.Channel {
		if ch.Active() {
			return true
		}
	}
	return false
}

// Service the active channels in turn until no channel makes progress.
// Returns true if any channel made progress.
func (d *DMAC) Service() bool {
	if d.suspended() {
		return false
	}

	var progressed bool

	for steps := 0; steps < serviceLimit; {
		var p bool
		for i := range NumChannels {
			ch := d.Channel[(d.next+i)%NumChannels]
			if !ch.Active() || !d.enabled(ch.ID) {
				continue
			}
			if d.step(ch) {
				p = true
				steps++
			}
		}
		d.next = (d.next + 1) % NumChannels
		if !p {
			return progressed
		}
		progressed = true
	}

	logger.Logf(logger.Allow, "dmac", "service limit reached")
	return progressed
}

// Resume a channel. The channel is stepped until it makes no more progress.
// Returns true if the channel made progress.
func (d *DMAC) Resume(id int) bool {
	ch := d.get(id)
	if d.suspended() || !d.enabled(id) {
		return false
	}

	var progressed bool
	for range serviceLimit {
		if !ch.Active() || !d.step(ch) {
			break
		}
		progressed = true
	}
	return progressed
}

// step moves the channel forward by one tag or one burst of data. returns
// true if the channel made progress.
func (d *DMAC) step(ch *Channel) bool {
	ch.unstall()

	switch ch.State {
	case ChainTagFetch:
		if ch.fromMemory() {
			return d.fetchTag(ch)
		}
		return d.fetchDestinationTag(ch)
	case NormalTransfer, ChainTransfer:
		return d.transfer(ch)
	}

	return false
}

// finish the channel's transfer.
func (d *DMAC) finish(ch *Channel) {
	ch.CHCR.setSTR(false)
	ch.State = Done
	d.Stat |= 1 << ch.ID
}

// busError ends the channel's transfer.
func (d *DMAC) busError(ch *Channel, err error) {
	logger.Log(logger.Allow, "dmac", curated.Errorf(BusError, ch.Name, err))
	d.Stat |= StatBEIS
	ch.QWC = 0
	ch.CHCR.setSTR(false)
	ch.State = Done
}

// endOfData is called when QWC reaches zero.
func (d *DMAC) endOfData(ch *Channel) {
	if ch.State == ChainTransfer && !ch.Terminal {
		ch.State = ChainTagFetch
		return
	}
	d.finish(ch)
}

// fetchTag reads the next tag of a source chain.
func (d *DMAC) fetchTag(ch *Channel) bool {
	drain := ch.ID == d.mfifoDrain()

	if drain {
		ch.TADR = d.ringAddress(ch.TADR)
		if ch.TADR == d.ringAddress(d.Channel[FromSPR].MADR) {
			d.Stat |= StatMEIS
			ch.stall()
			return false
		}
	}

	var b [TagSize]byte
	if err := d.mem.Read(ch.TADR, b[:]); err != nil {
		d.busError(ch, err)
		return true
	}

	tag := DecodeTag(b[:])
	terminal, err := ch.FollowTag(tag)
	if err != nil {
		logger.Log(logger.Allow, "dmac", err)
	}
	ch.Terminal = terminal

	ch.RingData = false
	if drain {
		switch tag.ID {
		case CNT, NEXT, CALL, RET, END:
			ch.RingData = true
			ch.MADR = d.ringAddress(ch.MADR)
		}
	}

	if ch.CHCR.TTE() {
		ch.TagPending = true
		ch.TagData = tag.Data
	}

	ch.State = ChainTransfer
	return true
}

// fetchDestinationTag asks the peripheral for the next tag of a destination
// chain.
func (d *DMAC) fetchDestinationTag(ch *Channel) bool {
	t, ok := ch.peripheral.(DestinationTagger)
	if !ok {
		logger.Logf(logger.Allow, "dmac", "%s: peripheral does not support destination chains", ch.Name)
		ch.QWC = 0
		d.finish(ch)
		return true
	}

	tag, ok := t.DestinationTag()
	if !ok {
		ch.stall()
		return false
	}

	terminal, err := ch.followDestinationTag(tag)
	if err != nil {
		logger.Log(logger.Allow, "dmac", err)
	}
	ch.Terminal = terminal
	ch.State = ChainTransfer
	return true
}

// transfer moves one burst of data.
func (d *DMAC) transfer(ch *Channel) bool {
	var progressed bool

	if ch.TagPending {
		if r, ok := ch.peripheral.(TagReceiver); ok && !r.ReceiveTag(ch.TagData[:]) {
			ch.stall()
			return false
		}
		ch.TagPending = false
		progressed = true
	}

	if ch.QWC == 0 {
		d.endOfData(ch)
		return true
	}

	n := d.limit(ch, min(uint32(max(d.BurstLimit, 1)), ch.QWC))
	if n == 0 {
		ch.stall()
		return progressed
	}

	var moved uint32
	var err error
	if ch.fromMemory() {
		moved, err = d.toPeripheral(ch, n)
	} else {
		moved, err = d.fromPeripheral(ch, n)
	}
	if err != nil {
		d.busError(ch, err)
		return true
	}
	if moved == 0 {
		ch.stall()
		return progressed
	}

	d.advance(ch, moved)
	if ch.QWC == 0 {
		d.endOfData(ch)
	}

	return true
}

// limit reduces the number of quadwords to move according to stall control,
// the MFIFO and interleave mode. zero means the channel must stall.
func (d *DMAC) limit(ch *Channel, n uint32) uint32 {
	if ch.ID == d.stallDrain() && d.stallControlled(ch) {
		if ch.MADR+n*memorymap.QuadBytes > d.STADR {
			var avail uint32
			if d.STADR > ch.MADR {
				avail = (d.STADR - ch.MADR) / memorymap.QuadBytes
			}
			if avail == 0 {
				d.Stat |= StatSIS
				return 0
			}
			n = min(n, avail)
		}
	}

	// no more than one pass of the ring in a single write
	if ch.ID == FromSPR && d.mfifoDrain() != -1 {
		n = min(n, (d.RBSR+memorymap.QuadBytes)/memorymap.QuadBytes)
	}

	if ch.RingData && ch.ID == d.mfifoDrain() {
		avail := d.ringAvailable(ch.MADR)
		if avail == 0 {
			d.Stat |= StatMEIS
			return 0
		}
		n = min(n, avail)
	}

	if ch.CHCR.Mode() == Interleave && ch.State == NormalTransfer {
		if tqwc := d.tqwc(); tqwc > ch.Interleaved {
			n = min(n, tqwc-ch.Interleaved)
		}
	}

	return n
}

// stallControlled returns true if the current transfer of the channel is
// subject to stall control. this is true for normal transfers and for REFS and
// CNTS tags.
func (d *DMAC) stallControlled(ch *Channel) bool {
	if ch.State == NormalTransfer {
		return true
	}
	return ch.StallTag
}

func (d *DMAC) buf(n uint32) []byte {
	sz := int(n) * memorymap.QuadBytes
	if cap(d.buffer) < sz {
		d.buffer = make([]byte, sz)
	}
	return d.buffer[:sz]
}

// toPeripheral reads n quadwords from memory and gives them to the
// peripheral. returns the number of quadwords accepted.
func (d *DMAC) toPeripheral(ch *Channel, n uint32) (uint32, error) {
	data := d.buf(n)

	var err error
	if ch.RingData && ch.ID == d.mfifoDrain() {
		err = d.readRing(ch.MADR, data)
	} else {
		err = d.mem.Read(ch.MADR, data)
	}
	if err != nil {
		return 0, err
	}

	moved := ch.peripheral.FromMemory(data)
	return uint32(min(max(moved, 0), int(n))), nil
}

// fromPeripheral takes up to n quadwords from the peripheral and writes them
// to memory. returns the number of quadwords written.
func (d *DMAC) fromPeripheral(ch *Channel, n uint32) (uint32, error) {
	data := d.buf(n)

	moved := min(ch.peripheral.ToMemory(data), int(n))
	if moved <= 0 {
		return 0, nil
	}
	data = data[:moved*memorymap.QuadBytes]

	var err error
	if ch.ID == FromSPR && d.mfifoDrain() != -1 {
		err = d.writeRing(ch.MADR, data)
	} else {
		err = d.mem.Write(ch.MADR, data)
	}
	if err != nil {
		return 0, err
	}

	return uint32(moved), nil
}

// advance the channel's cursors after moving quadwords.
func (d *DMAC) advance(ch *Channel, moved uint32) {
	ch.QWC -= moved

	sz := moved * memorymap.QuadBytes
	if (ch.ID == FromSPR && d.mfifoDrain() != -1) || (ch.RingData && ch.ID == d.mfifoDrain()) {
		ch.MADR = d.ringAddress(ch.MADR + sz)
	} else {
		ch.MADR += sz
	}

	if ch.ID == d.stallSource() && d.stallControlled(ch) {
		d.STADR = ch.MADR
	}

	if ch.CHCR.Mode() == Interleave && ch.State == NormalTransfer {
		ch.Interleaved += moved
		if tqwc := d.tqwc(); tqwc > 0 && ch.Interleaved >= tqwc {
			ch.MADR += d.sqwc() * memorymap.QuadBytes
			ch.Interleaved = 0
		}
	}
}

// the number of quadwords moved and skipped in each interleave block.
func (d *DMAC) tqwc() uint32 {
	return (d.SQWC >> 16) & 0xff
}

func (d *DMAC) sqwc() uint32 {
	return d.SQWC & 0xff
}

// stallSource returns the channel that updates STADR or -1.
func (d *DMAC) stallSource() int {
	switch (d.Ctrl & ctrlSTS) >> 4 {
	case 1:
		return SIF0
	case 2:
		return FromSPR
	case 3:
		return FromIPU
	}
	return -1
}

// stallDrain returns the channel that is limited by STADR or -1.
func (d *DMAC) stallDrain() int {
	switch (d.Ctrl & ctrlSTD) >> 6 {
	case 1:
		return VIF1
	case 2:
		return GIF
	case 3:
		return SIF1
	}
	return -1
}

// unconnected is the peripheral of channels with nothing attached.
type unconnected struct{}

func (unconnected) FromMemory(data []byte) int {
	return len(data) / memorymap.QuadBytes
}

func (unconnected) ToMemory(data []byte) int {
	return 0
}

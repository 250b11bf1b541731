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
	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/hardware/memory/memorymap"
)

// FollowTag executes a source chain tag that has been read from TADR. MADR,
// QWC, TADR and the call stack are updated. Returns true if the tag is the
// last in the chain.
//
// A CALL that would overflow the call stack ends the chain after the data of
// the tag has been transferred. The error is returned so that it can be
// logged.
func (ch *Channel) FollowTag(tag Tag) (bool, error) {
	ch.CHCR.setTag(tag.upper())
	ch.QWC = uint32(tag.QWC)
	ch.MADR = tag.Addr
	ch.StallTag = tag.ID == REFS

	var terminal bool
	var err error

	switch tag.ID {
	case REFE:
		ch.TADR += TagSize
		terminal = true

	case CNT:
		ch.MADR = ch.TADR + TagSize
		ch.TADR = ch.MADR + ch.QWC*memorymap.QuadBytes

	case NEXT:
		ch.MADR = ch.TADR + TagSize
		ch.TADR = tag.Addr

	case REF, REFS:
		ch.TADR += TagSize

	case CALL:
		if !channels[ch.ID].stack {
			ch.QWC = 0
			return true, curated.Errorf(UnsupportedTag, ch.Name, tag.ID)
		}
		ch.MADR = ch.TADR + TagSize
		asp := ch.CHCR.ASP()
		if asp >= len(ch.ASR) {
			terminal = true
			err = curated.Errorf(CallStackOverflow, ch.Name)
			break
		}
		ch.ASR[asp] = ch.MADR + ch.QWC*memorymap.QuadBytes
		ch.CHCR.setASP(asp + 1)
		ch.TADR = tag.Addr

	case RET:
		if !channels[ch.ID].stack {
			ch.QWC = 0
			return true, curated.Errorf(UnsupportedTag, ch.Name, tag.ID)
		}
		ch.MADR = ch.TADR + TagSize
		asp := min(ch.CHCR.ASP(), len(ch.ASR))
		if asp == 0 {
			terminal = true
			break
		}
		asp--
		ch.TADR = ch.ASR[asp]
		ch.ASR[asp] = 0
		ch.CHCR.setASP(asp)

	case END:
		ch.MADR = ch.TADR + TagSize
		terminal = true
	}

	if ch.CHCR.TIE() && tag.IRQ {
		terminal = true
	}

	return terminal, err
}

// followDestinationTag executes a destination chain tag that has been
// provided by the peripheral.
func (ch *Channel) followDestinationTag(tag Tag) (bool, error) {
	ch.CHCR.setTag(tag.upper())
	ch.QWC = uint32(tag.QWC)
	ch.MADR = tag.Addr
	ch.StallTag = false

	var terminal bool

	switch tag.ID {
	case DestCNTS:
		ch.StallTag = true
	case DestCNT:
	case DestEND:
		terminal = true
	default:
		ch.QWC = 0
		return true, curated.Errorf(UnsupportedTag, ch.Name, tag.ID)
	}

	if ch.CHCR.TIE() && tag.IRQ {
		terminal = true
	}

	return terminal, nil
}

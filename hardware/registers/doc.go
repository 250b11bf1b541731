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

// Package registers routes CPU accesses of 8, 16, 32, 64 and 128 bits to
// the memory and hardware registers of the EE.
//
// Hardware registers are 32 bits wide. Accesses of every width are broken
// into 32-bit words and each word is routed to the register at its address.
// Words that do not belong to a register are kept in a backing store with no
// side effects.
//
// Accesses narrower than a word are merged with the current value of the
// register. The exceptions are the registers where writing a one performs an
// action (D_STAT, INTC_STAT, INTC_MASK, VIF FBRST and the flag bits of a
// counter's mode register). The bytes that were not written are treated as
// zero for those bits.
//
// The VIF FIFOs only accept 128-bit writes. The quadword is given to the VIF
// as though it came from the VIF's DMA channel.
package registers

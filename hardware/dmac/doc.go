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

// Package dmac implements the DMA controller of the Emotion Engine. There are
// ten channels, each connecting main memory (or the scratchpad) with a
// peripheral.
//
// A channel is started by setting the STR bit of its CHCR register. The
// transfer mode is selected by the MOD field:
//
//	0	normal: QWC quadwords from MADR
//	1	chain: quadwords are moved as directed by a list of tags in memory
//	2	interleave: scratchpad channels only, TQWC quadwords are moved and
//		then SQWC quadwords of memory are skipped
//
// Transfers do not happen when the channel is started. The DMAC is serviced
// by the driving loop with Service(), which moves at most BurstLimit
// quadwords for each active channel in turn until no channel makes progress.
//
// A peripheral that cannot accept (or provide) data stalls the channel. All
// cursors are preserved and the transfer continues on the next call to
// Service() or Resume() with nothing duplicated or lost.
//
// When the MFD field of D_CTRL is set, the fromSPR channel writes into a ring
// buffer in main memory (the MFIFO) and either VIF1 or the GIF channel reads
// its chain tags and data from the ring.
package dmac

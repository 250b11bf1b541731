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

// Package counters implements the four EE timers and the video timing
// generators that drive them. Together they are the timing core of the
// emulation.
//
// Counters are evaluated lazily. A counter holds the count at the time of the
// last resolution (Base) and the current count is interpolated from the
// elapsed cycles:
//
//	count = Count + (now - Base) / Rate
//
// Reading a count (ReadCount() and Peek()) never changes the counter. Writes
// to a counter register first resolve the counter, which moves Base forward by
// a whole number of Rate periods so that no fractional progress is lost.
//
// The Counters type publishes a single deadline. The driving loop must call
// Update() when the global clock reaches the deadline. Update() processes any
// horizontal or vertical phase changes in the order they happened, tests each
// counter for target and overflow conditions and then publishes the next
// deadline.
//
// Counters clocked by the horizontal blank are not interpolated. They are
// incremented by one at the start of every horizontal blank.
//
// Gating ties a counter to the horizontal or vertical blank. The gate signal
// is high during the blank period. The gate policy, held in bits 4 and 5 of
// the mode register, decides what happens on each edge:
//
//	0	count only while the gate signal is low
//	1	reset and start counting on the falling edge
//	2	reset and start counting on the rising edge
//	3	reset and start counting on both edges
//
// A counter clocked by the horizontal blank and gated by the horizontal blank
// ignores the gate.
package counters

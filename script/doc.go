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

// Package script drives a hardware.Machine from a Lua script. It is used for
// testing sequences of register accesses and for scripted runs from the
// command line.
//
// The following functions are available to the script. Addresses and values
// are numbers and 32-bit values are exact.
//
//	write8(addr, v)  write16(addr, v)  write32(addr, v)
//	write128(addr, w0, w1, w2, w3)
//	read8(addr)  read16(addr)  read32(addr)
//	poke(addr, v)  peek(addr)
//	advance(cycles)  frames(n)
//	cycle()  frame()  deadline()
//	latchhold(counter)  dmapending()
//	rewind(frame)  history()
//	log(msg)
//
// The rewind functions are only available if the script was created with a
// rewind history. The history is updated by advance() and frames().
//
// Bus errors are raised as Lua errors and stop the script unless they are
// caught with pcall().
package script

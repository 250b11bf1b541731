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

// Package memory implements the main RAM (32MB) and the scratchpad (16KB) of
// the Emotion Engine.
//
// The DMAC is the main user of the package. The DMAC reads and writes data in
// units of quadwords and uses bit 31 of the address to select the scratchpad.
// Accesses to addresses that are not backed by memory return a curated error
// with the BusError pattern. How the error is surfaced to the emulated
// program is a decision for the caller.
//
// The memorymap sub-package describes the address space as a whole, including
// the register areas that are handled by the registers package.
package memory

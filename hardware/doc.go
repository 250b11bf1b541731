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

// Package hardware is the base package for the EE hardware emulation. It
// and its sub-packages contain everything required for a headless emulation.
//
// The Machine type is the root of the emulation and contains external
// references to all the sub-components. From here, the emulation can be
// started with the Run() or RunForFrameCount() functions, or advanced by a
// fixed number of cycles with the Advance() function.
//
// The Machine owns the global cycle count. The timing core publishes the next
// cycle at which something must happen and the Machine advances the clock to
// that deadline, updates the counters and services the DMAC. Register
// accesses from the CPU side go through the Bus field.
//
// The state of the Machine can be saved with Snapshot() and restored with
// Plumb(). The GS backend is outside of the Machine and is not part of the
// snapshot.
package hardware

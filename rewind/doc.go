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

// Package rewind keeps a history of machine states so that the emulation can
// be moved back to an earlier frame.
//
// A snapshot is taken at the first call to Check() after a vertical blank
// has started. Only every Nth frame is stored, where N is the Freq
// preference. Moving to a frame that falls between two stored frames plumbs
// in the earlier state and runs the emulation forward.
//
// Snapshots include main memory only if the hardware.freeze.ram preference
// is set. Without main memory a rewound machine will not see the memory as it
// was.
package rewind

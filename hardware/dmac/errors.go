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

// Error patterns for the DMAC. Errors are logged and never returned to the
// driving loop.
const (
	CallStackOverflow = "dmac: %s: call stack overflow"
	UnsupportedTag    = "dmac: %s: unsupported tag (%s)"
	BusError          = "dmac: %s: %v"
)

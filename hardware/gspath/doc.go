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

// Package gspath connects the DMA and VIF units to a graphics backend.
//
// There are three paths to the GS. Each path has a worker goroutine that
// hands packets to the Backend in the order they were sent. At most one
// packet is in flight on a path at any time. The emulation core is single
// threaded and only ever waits on a path with Send() or Flush(). TrySend()
// never blocks and is the function used by the VIF and the DMAC to apply
// backpressure.
//
// The workers run under an errgroup. A failed transfer cancels the context
// of every worker and the error is returned by Close().
package gspath

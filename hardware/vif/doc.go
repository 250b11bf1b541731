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

// Package vif implements the two VIF units. A VIF decodes a stream of 32-bit
// words received from its DMA channel. Each command (a VIFcode) is one word:
//
//	bits  0-15	immediate
//	bits 16-23	num
//	bits 24-30	opcode
//	bit     31	interrupt
//
// and may be followed by a payload. Commands and payloads can be split across
// any number of calls to Process(). All progress through a command is kept in
// the VIF so that the result does not depend on how the stream was divided.
//
// UNPACK decompresses vectors into VU data memory. The CL and WL fields of the
// CYCLE register select how destination quadwords are written:
//
//	CL == WL	every quadword is written
//	CL < WL		of every WL quadwords the first CL are written and the rest
//			are skipped
//	CL > WL		of every CL quadwords the first WL are written with data
//			and the rest are filled from the row and column registers
//
// A command with the interrupt bit set raises the VIF interrupt when it
// completes and stalls the VIF. The VIF accepts no more data until the stall
// is cancelled by writing STC to the FBRST register.
package vif

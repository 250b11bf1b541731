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

package script

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/govern"
	"github.com/jetsetilly/gopherps2/hardware"
	"github.com/jetsetilly/gopherps2/hardware/counters"
	"github.com/jetsetilly/gopherps2/logger"
	"github.com/jetsetilly/gopherps2/rewind"
	lua "github.com/yuin/gopher-lua"
)

// ScriptError is the pattern for errors returned by a script.
const ScriptError = "script: %v"

// Script is a Lua state bound to a machine.
type Script struct {
	m *hardware.Machine
	r *rewind.Rewind
	L *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// The rewind history can be nil, in which case the rewind functions raise an
// error in the script.
func NewScript(m *hardware.Machine, r *rewind.Rewind) *Script {
	if m == nil {
		panic("script: nil machine")
	}

	s := &Script{
		m: m,
		r: r,
		L: lua.NewState(),
	}

	for name, f := range map[string]lua.LGFunction{
		"write8":   s.write8,
		"write16":  s.write16,
		"write32":  s.write32,
		"write128": s.write128,
		"read8":    s.read8,
		"read16":   s.read16,
		"read32":   s.read32,
		"poke":     s.poke,
		"peek":     s.peek,
		"advance":  s.advance,
		"frames":   s.frames,
		"cycle":    s.cycle,
		"frame":    s.frame,
		"deadline": s.deadline,
		"log":      s.log,

		"latchhold":  s.latchhold,
		"dmapending": s.dmapending,

		"rewind":  s.rewindTo,
		"history": s.history,
	} {
		s.L.SetGlobal(name, s.L.NewFunction(f))
	}

	return s
}

// Close the Lua state. The machine is not closed.
func (s *Script) Close() {
	s.L.Close()
}

// RunString runs the Lua source. The script stops if the context is
// cancelled.
func (s *Script) RunString(ctx context.Context, src string) error {
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()
	if err := s.L.DoString(src); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// RunFile runs the Lua file.
func (s *Script) RunFile(ctx context.Context, pth string) error {
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()
	if err := s.L.DoFile(pth); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// check32 returns argument n as a 32-bit value.
func check32(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func (s *Script) fail(L *lua.LState, err error) int {
	L.RaiseError("%v", err)
	return 0
}

func (s *Script) write8(L *lua.LState) int {
	if err := s.m.Bus.Write8(check32(L, 1), uint8(check32(L, 2))); err != nil {
		return s.fail(L, err)
	}
	return 0
}

func (s *Script) write16(L *lua.LState) int {
	if err := s.m.Bus.Write16(check32(L, 1), uint16(check32(L, 2))); err != nil {
		return s.fail(L, err)
	}
	return 0
}

func (s *Script) write32(L *lua.LState) int {
	if err := s.m.Bus.Write32(check32(L, 1), check32(L, 2)); err != nil {
		return s.fail(L, err)
	}
	return 0
}

func (s *Script) write128(L *lua.LState) int {
	var q [16]byte
	for i := range 4 {
		binary.LittleEndian.PutUint32(q[i*4:], check32(L, 2+i))
	}
	if err := s.m.Bus.Write128(check32(L, 1), q); err != nil {
		return s.fail(L, err)
	}
	return 0
}

func (s *Script) read8(L *lua.LState) int {
	v, err := s.m.Bus.Read8(check32(L, 1))
	if err != nil {
		return s.fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) read16(L *lua.LState) int {
	v, err := s.m.Bus.Read16(check32(L, 1))
	if err != nil {
		return s.fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) read32(L *lua.LState) int {
	v, err := s.m.Bus.Read32(check32(L, 1))
	if err != nil {
		return s.fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) poke(L *lua.LState) int {
	if err := s.m.Mem.Poke(check32(L, 1), check32(L, 2)); err != nil {
		return s.fail(L, err)
	}
	return 0
}

func (s *Script) peek(L *lua.LState) int {
	v, err := s.m.Mem.Peek(check32(L, 1))
	if err != nil {
		return s.fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) advance(L *lua.LState) int {
	n := L.CheckInt64(1)
	if n < 0 {
		L.ArgError(1, "cycles must not be negative")
		return 0
	}
	s.m.Advance(uint64(n))
	s.check()
	return 0
}

// check stores the machine state in the rewind history if a frame has
// started.
func (s *Script) check() {
	if s.r != nil {
		s.r.Check()
	}
}

func (s *Script) frames(L *lua.LState) int {
	err := s.m.RunForFrameCount(L.CheckInt(1), func(_ int) (govern.State, error) {
		s.check()
		return govern.Running, nil
	})
	if err != nil {
		return s.fail(L, err)
	}
	s.check()
	return 0
}

func (s *Script) latchhold(L *lua.LState) int {
	id := L.CheckInt(1)
	if id < 0 || id >= counters.NumCounters {
		L.ArgError(1, "no such counter")
		return 0
	}
	s.m.Counters.LatchHold(id)
	return 0
}

func (s *Script) dmapending(L *lua.LState) int {
	L.Push(lua.LBool(s.m.DMAC.Pending()))
	return 1
}

func (s *Script) rewindTo(L *lua.LState) int {
	if s.r == nil {
		return s.fail(L, curated.Errorf("rewind is not available"))
	}
	f, err := s.r.GotoFrame(L.CheckInt(1))
	if err != nil {
		return s.fail(L, err)
	}
	L.Push(lua.LNumber(f))
	return 1
}

// history returns the first and last frames that can be rewound to.
func (s *Script) history(L *lua.LState) int {
	if s.r == nil {
		return s.fail(L, curated.Errorf("rewind is not available"))
	}
	f := s.r.GetFrames()
	L.Push(lua.LNumber(f.Start))
	L.Push(lua.LNumber(f.End))
	return 2
}

func (s *Script) cycle(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.Cycle()))
	return 1
}

func (s *Script) frame(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.Frame()))
	return 1
}

func (s *Script) deadline(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.Counters.Deadline()))
	return 1
}

func (s *Script) log(L *lua.LState) int {
	var msg string
	for i := 1; i <= L.GetTop(); i++ {
		if i > 1 {
			msg += " "
		}
		msg += L.ToStringMeta(L.Get(i)).String()
	}
	logger.Log(logger.Allow, "script", msg)
	return 0
}

func (s *Script) String() string {
	return fmt.Sprintf("script: %s", s.m)
}

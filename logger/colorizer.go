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

package logger

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	penTag    = "\033[2;36m"
	penNormal = "\033[0m"
)

// Colorizer wraps an io.Writer and, if the writer is a terminal, writes the
// tag part of each log entry in a dim pen.
type Colorizer struct {
	out   io.Writer
	color bool
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type. Colour is only used if out is an *os.File connected to a terminal.
func NewColorizer(out io.Writer) Colorizer {
	c := Colorizer{out: out}
	if f, ok := out.(*os.File); ok {
		c.color = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c Colorizer) Write(p []byte) (n int, err error) {
	if !c.color {
		return c.out.Write(p)
	}

	tag, detail, ok := bytes.Cut(p, []byte(": "))
	if !ok {
		return c.out.Write(p)
	}

	b := make([]byte, 0, len(p)+len(penTag)+len(penNormal))
	b = append(b, penTag...)
	b = append(b, tag...)
	b = append(b, penNormal...)
	b = append(b, ": "...)
	b = append(b, detail...)

	_, err = c.out.Write(b)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

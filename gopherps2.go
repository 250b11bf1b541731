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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopherps2/curated"
	"github.com/jetsetilly/gopherps2/digest"
	"github.com/jetsetilly/gopherps2/govern"
	"github.com/jetsetilly/gopherps2/hardware"
	"github.com/jetsetilly/gopherps2/hardware/preferences"
	"github.com/jetsetilly/gopherps2/logger"
	"github.com/jetsetilly/gopherps2/modalflag"
	"github.com/jetsetilly/gopherps2/paths"
	"github.com/jetsetilly/gopherps2/performance"
	"github.com/jetsetilly/gopherps2/prefs"
	"github.com/jetsetilly/gopherps2/rewind"
	"github.com/jetsetilly/gopherps2/script"
	"github.com/jetsetilly/gopherps2/statsview"
	"github.com/jetsetilly/gopherps2/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(launch(ctx, os.Args[1:]))
}

// launch parses the arguments and runs the selected mode. returns the exit
// value for the program.
func launch(ctx context.Context, args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DUMP", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, false)

	case "DUMP":
		err = run(ctx, md, true)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// run a script or a number of frames. if dump is true the register state of
// the machine is written to a file when the run has finished.
func run(ctx context.Context, md *modalflag.Modes, dump bool) error {
	md.NewMode()

	video := md.AddString("video", "", "video standard: NTSC, PAL (default from preferences)")
	prefsOverride := md.AddString("prefs", "", "preference overrides. eg. \"hardware.dma.burst::16; hardware.vif.strict::true\"")
	frames := md.AddInt("frames", 0, "number of frames to run (after the script if one is given)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	showDigest := md.AddBool("digest", false, "print the digest of all data sent to the GS")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp("a Lua script file can be given as the final argument. the script can rewind to earlier frames")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer prefs.PopCommandLineStack()
	}

	hw, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	if *video != "" {
		if err := hw.Video.Set(*video); err != nil {
			return err
		}
	}

	dig := digest.NewGS(nil)

	m, err := hardware.NewMachine(hw, dig)
	if err != nil {
		return err
	}
	defer m.Close()

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		r, err := rewind.NewRewind(m, "")
		if err != nil {
			return err
		}
		s := script.NewScript(m, r)
		defer s.Close()
		if err := s.RunFile(ctx, md.GetArg(0)); err != nil {
			return err
		}
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	if *frames > 0 {
		err = m.RunForFrameCount(*frames, func(frame int) (govern.State, error) {
			select {
			case <-ctx.Done():
				return govern.Ending, nil
			default:
			}
			return govern.Running, nil
		})
		if err != nil {
			return err
		}
	}

	fmt.Println(m)

	if *showDigest {
		if err := m.GS.Flush(ctx); err != nil {
			return err
		}
		fmt.Println(dig.Hash())
	}

	if dump {
		fn := fmt.Sprintf("%s.gv", paths.UniqueFilename("dump", m.Counters.Spec().ID))
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()
		writeDump(f, m)
		fmt.Printf("register state written to %s\n", fn)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	video := md.AddString("video", "", "video standard: NTSC, PAL (default from preferences)")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: NONE, CPU, MEM, BOTH")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(strings.ToUpper(*profile))
	if err != nil {
		return err
	}

	hw, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	if *video != "" {
		if err := hw.Video.Set(*video); err != nil {
			return err
		}
	}

	m, err := hardware.NewMachine(hw, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	return performance.Check(os.Stdout, prf, m, *duration)
}

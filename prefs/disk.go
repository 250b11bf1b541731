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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/gopherps2/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// error patterns.
const (
	NoPrefsFile    = "prefs: no prefs file (%s)"
	PrefsFileError = "prefs: %v"
)

// separator between key and value in the preferences file.
const diskSeparator = " :: "

// Disk represents preference values as stored on disk. Values are added with
// Add() and then loaded and saved together.
type Disk struct {
	path    string
	entries map[string]pref
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, diskSeparator, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. If there is
// a value for the key on the command line stack then it is applied
// immediately.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, diskSeparator) {
		return curated.Errorf(PrefsFileError, fmt.Errorf("illegal key %q", key))
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return curated.Errorf(PrefsFileError, err)
		}
	}

	return nil
}

func (dsk *Disk) keys() []string {
	k := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// Reset all preferences in the Disk to their default value.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(PrefsFileError, err)
		}
	}
	return nil
}

// Save current preference values to disk. Entries in the file that are not
// part of this Disk are preserved.
func (dsk *Disk) Save() error {
	values := make(map[string]string)
	if err := dsk.read(func(k, v string) { values[k] = v }); err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(PrefsFileError, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, diskSeparator, values[k])
	}

	if err := w.Flush(); err != nil {
		return curated.Errorf(PrefsFileError, err)
	}

	return nil
}

// Load preference values from disk. Keys in the file that have not been added
// to the Disk are ignored.
func (dsk *Disk) Load() error {
	var setErr error
	err := dsk.read(func(k, v string) {
		if p, ok := dsk.entries[k]; ok && setErr == nil {
			setErr = p.Set(v)
		}
	})
	if err != nil {
		return err
	}
	if setErr != nil {
		return curated.Errorf(PrefsFileError, setErr)
	}
	return nil
}

func (dsk *Disk) read(f func(k, v string)) error {
	fh, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(NoPrefsFile, dsk.path)
		}
		return curated.Errorf(PrefsFileError, err)
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)

	// the first line must be the boilerplate warning
	if !scanner.Scan() || scanner.Text() != WarningBoilerPlate {
		return curated.Errorf(PrefsFileError, fmt.Errorf("not a valid prefs file (%s)", dsk.path))
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), diskSeparator)
		if !ok {
			continue
		}
		f(k, v)
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf(PrefsFileError, err)
	}

	return nil
}

// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gocbm/c64core/paths"
)

// WarningBoilerPlate is written as the first line of every prefs file.
const WarningBoilerPlate = "# this file was generated by c64core - do not manually edit"

// Fs is the filesystem Disk uses to read/write prefs files. It defaults to
// the real OS filesystem but can be swapped for an in-memory one in tests.
var Fs afero.Fs = afero.NewOsFs()

// Disk associates preference keys with Preference values and persists them
// to a single file.
type Disk struct {
	filename string
	entries  map[string]Preference
}

// DefaultFilename returns the path a Disk should persist to when the caller
// has no preference of their own: the "prefs" file in the emulator's
// resource directory (see the paths package). Callers that want persistence
// disabled entirely should pass the empty string to NewDisk/NewPreferences
// instead of this value.
func DefaultFilename() (string, error) {
	return paths.ResourcePath("", "prefs")
}

// NewDisk prepares a Disk instance backed by filename. The file is not
// created until Save() is called. An empty filename is valid and disables
// persistence entirely: Save and Load both become no-ops.
func NewDisk(filename string) (*Disk, error) {
	return &Disk{
		filename: filename,
		entries:  make(map[string]Preference),
	}, nil
}

// Add registers v under key. Save/Load will henceforth include it.
func (d *Disk) Add(key string, v Preference) error {
	if _, ok := d.entries[key]; ok {
		return fmt.Errorf("prefs: key already registered: %s", key)
	}
	d.entries[key] = v
	return nil
}

// Save writes every registered preference to disk, one "key :: value" line
// per entry, sorted alphabetically by key, preceded by WarningBoilerPlate.
// Entries already in the file under keys this Disk has not registered are
// kept. A no-op if the Disk was constructed with an empty filename.
func (d *Disk) Save() error {
	if d.filename == "" {
		return nil
	}

	values := make(map[string]string)
	if f, err := Fs.Open(d.filename); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if k, v, ok := strings.Cut(scanner.Text(), "::"); ok && !strings.HasPrefix(k, "#") {
				values[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
		}
		f.Close()
	}
	for k, e := range d.entries {
		values[k] = e.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := Fs.Create(d.filename)
	if err != nil {
		return fmt.Errorf("prefs: cannot create %s: %w", d.filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s :: %s\n", k, values[k])
	}
	return w.Flush()
}

// Load reads the prefs file and applies each recognised key to its
// registered Preference. Unrecognised keys and malformed lines are ignored.
// A no-op if the Disk was constructed with an empty filename.
func (d *Disk) Load() error {
	if d.filename == "" {
		return nil
	}

	f, err := Fs.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("prefs: cannot open %s: %w", d.filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "::")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)

		e, ok := d.entries[k]
		if !ok {
			continue
		}
		if err := e.Set(v); err != nil {
			return fmt.Errorf("prefs: loading %s: %w", k, err)
		}
	}
	return scanner.Err()
}

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

// Package instance defines those parts of the emulation that might change
// from instance to instance of the Machine type, but are not the machine
// itself. Particularly useful when running more than one instance of the
// emulation in parallel - for example a headless batch-test harness driving
// many machines concurrently, each wanting its own preferences, its own
// source of randomness and its own log.
package instance

import (
	"math/rand"

	"github.com/gocbm/c64core/logger"
	"github.com/gocbm/c64core/prefs"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the machine, but is not the machine itself.
type Instance struct {
	Prefs  *prefs.Preferences
	Random *rand.Rand
	Log    *logger.Logger
}

// NewInstance is the preferred method of initialisation for the Instance
// type. prefsFile is the path preferences are loaded from/saved to; pass the
// empty string to run with defaults only and no persistence. seed seeds the
// instance's random source - pass 0 to seed from a fixed default.
func NewInstance(prefsFile string, seed int64) (*Instance, error) {
	ins := &Instance{
		Log: logger.NewLogger(1000),
	}

	if seed == 0 {
		seed = 1
	}
	ins.Random = rand.New(rand.NewSource(seed))

	var err error
	ins.Prefs, err = prefs.NewPreferences(prefsFile)
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// Normalise resets the instance to a known default state. Useful for
// regression testing where the initial state must be the same for every run
// of the test.
func (ins *Instance) Normalise() {
	ins.Random = rand.New(rand.NewSource(1))
	ins.Prefs.SetDefaults()
	ins.Log.Clear()
}

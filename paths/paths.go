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

// Package paths builds the on-disk paths used for the emulator's own
// resources: saved state, preferences, disk images created at runtime, and
// the like. Every path it returns is relative, nested under the .c64core
// directory, and so resolves against the current working directory.
package paths

import "path/filepath"

// resourceDir is the directory name every resource path nests under,
// joined to the caller-supplied subPath and file.
const resourceDir = ".c64core"

// ResourcePath joins subPath and file onto the resource directory. Either
// argument may be empty; empty components are simply omitted rather than
// producing a trailing or doubled separator.
func ResourcePath(subPath string, file string) (string, error) {
	parts := []string{resourceDir}
	if subPath != "" {
		parts = append(parts, subPath)
	}
	if file != "" {
		parts = append(parts, file)
	}
	return filepath.Join(parts...), nil
}

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

package errors

// error messages, grouped by the kind they back (see categories.go)
const (
	// power-on / ROM loading
	ROMLoadFailureMsg = "rom load failure: %v"

	// disk images
	DiskImageInvalidMsg   = "disk image invalid: %v"
	DiskWriteProtectedMsg = "disk write protected: %v"
	BAMExhaustedMsg       = "bam exhausted: %v"
	DirectoryFullMsg      = "directory full: %v"

	// memory bus - used only for assertions/tests, production reads
	// return open bus rather than erroring
	AddressOutOfRangeMsg = "address out of range: %v"

	// cpu
	CPUJammedMsg = "cpu jammed: %v"

	// save state
	SaveStateCorruptMsg = "save state corrupt: %v"

	// generic cpu/memory diagnostics, retained for debugger/monitor use
	InvalidResult          = "cpu error: %v"
	InvalidDuringExecution = "cpu error: invalid operation mid-instruction (%v)"
	CPUBugMsg              = "cpu bug: %v"
	UnpokeableAddress      = "memory error: cannot poke address (%v)"
	UnpeekableAddress      = "memory error: cannot peek address (%v)"
	MemoryBusError         = "memory error: inaccessible address (%v)"

	// iec bus / drives
	IECBusError   = "iec bus error: %v"
	DriveError    = "drive error: %v"
	NoDiskInDrive = "drive error: no disk in drive %d"

	// media loading
	MediaLoaderError = "media loader error: %v"

	// prefs
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"
)

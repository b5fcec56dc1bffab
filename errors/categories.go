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

// Kind is the set of error categories a curated error can be created with.
// Components pass the kind's message string (messages.go) to Errorf; callers
// recognise the kind again with Is(err, string(kind)).
type Kind string

// List of recognised error kinds, following the taxonomy of spec section 7.
const (
	ROMLoadFailure     Kind = ROMLoadFailureMsg
	DiskImageInvalid   Kind = DiskImageInvalidMsg
	DiskWriteProtected Kind = DiskWriteProtectedMsg
	BAMExhausted       Kind = BAMExhaustedMsg
	DirectoryFull      Kind = DirectoryFullMsg
	AddressOutOfRange  Kind = AddressOutOfRangeMsg
	CPUJammed          Kind = CPUJammedMsg
	SaveStateCorrupt   Kind = SaveStateCorruptMsg
)

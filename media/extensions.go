// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

package media

// Kind identifies the format a Loader will decode.
type Kind string

const (
	KindAuto Kind = "AUTO"
	KindPRG  Kind = "PRG"
	KindP00  Kind = "P00"
	KindT64  Kind = "T64"
	KindTAP  Kind = "TAP"
	KindCRT  Kind = "CRT"
	KindD64  Kind = "D64"
	KindD71  Kind = "D71"
	KindD81  Kind = "D81"
)

// FileExtensions maps recognised file extensions to the Kind they imply.
var FileExtensions = map[string]Kind{
	".PRG": KindPRG,
	".P00": KindP00,
	".T64": KindT64,
	".TAP": KindTAP,
	".CRT": KindCRT,
	".D64": KindD64,
	".D71": KindD71,
	".D81": KindD81,
}

// diskKinds is the subset of Kind that names a disk image rather than a tape,
// program or cartridge image.
var diskKinds = map[Kind]bool{
	KindD64: true,
	KindD71: true,
	KindD81: true,
}

// IsDiskImage reports whether k names a disk image format.
func IsDiskImage(k Kind) bool {
	return diskKinds[k]
}

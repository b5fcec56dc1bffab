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

import (
	"bytes"
)

// standard D64/D71/D81 image sizes, with and without the one error-info byte
// per sector some tools append to a dump (683 for a D64, 1366 for a D71,
// 3200 for a D81).
const (
	sizeD64          = 174848
	sizeD64WithError = 175531
	sizeD71          = 349696
	sizeD71WithError = 351062
	sizeD81          = 819200
	sizeD81WithError = 822400
)

var crtMagic = []byte("C64 CARTRIDGE   ")

// miniFingerprint guesses a Kind from the raw content of a file whose
// extension didn't resolve one. It never returns an error; an unrecognised
// fingerprint leaves the Kind unresolved (KindAuto) for the caller to reject.
func miniFingerprint(data []byte) Kind {
	if len(data) >= len(crtMagic) && bytes.Equal(data[:len(crtMagic)], crtMagic) {
		return KindCRT
	}

	switch len(data) {
	case sizeD64, sizeD64WithError:
		return KindD64
	case sizeD71, sizeD71WithError:
		return KindD71
	case sizeD81, sizeD81WithError:
		return KindD81
	}

	if len(data) >= 4 && bytes.Equal(data[:4], []byte{'C', '6', '4', '-'}) {
		return KindTAP
	}
	if len(data) >= 32 && bytes.Contains(bytes.ToLower(data[:32]), []byte("tape")) {
		return KindT64
	}

	return KindAuto
}

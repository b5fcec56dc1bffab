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

// Package media loads the file formats a C64 session can be started from:
// PRG program files, T64/TAP tape images, CRT cartridge images, and D64/D71/
// D81 disk images.
//
// # File Extensions
//
// The file extension of a file decides its Kind unless the caller names one
// explicitly. Recognised extensions are listed in FileExtensions.
//
// # Filesystem abstraction
//
// Plain files are read through the package-level Fs variable (an afero.Fs),
// defaulting to the OS filesystem. Tests substitute an in-memory filesystem
// so loading can be exercised without touching disk. Files inside a zip
// archive are read through archivefs, which always uses the OS filesystem.
package media

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

// Package clocks defines the constant values that define the speed of the
// main system clock, shared by the CPU, the two CIAs and the VIC-II raster
// engine - every subsystem ticks against the same cycle count per frame,
// just with region-dependent totals.
package clocks

// CPU clock rate in Hz for each video standard the VIC-II supports.
const (
	NTSC = 1022727
	PAL  = 985248
)

// Raster geometry: lines per frame and CPU cycles per raster line.
const (
	NTSCLinesPerFrame = 262
	PALLinesPerFrame  = 312

	NTSCCyclesPerLine = 65
	PALCyclesPerLine  = 63
)

// TODIncrementThreshold is the number of system-clock cycles that make up
// one tenth of a second of CIA TOD clock time, for each region.
const (
	NTSCTODIncrementThreshold = 102273
	PALTODIncrementThreshold  = 98525
)

// CyclesPerFrame is the total CPU cycle count of one complete video frame.
func CyclesPerFrame(ntsc bool) int {
	if ntsc {
		return NTSCLinesPerFrame * NTSCCyclesPerLine
	}
	return PALLinesPerFrame * PALCyclesPerLine
}

// TODIncrementThreshold returns the region-appropriate CIA TOD threshold.
func TODIncrementThreshold(ntsc bool) int {
	if ntsc {
		return NTSCTODIncrementThreshold
	}
	return PALTODIncrementThreshold
}

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

// JamPolicy controls what the CPU does when it decodes a KIL/JAM opcode.
type JamPolicy int

const (
	// JamHalt stops the synchronisation loop entirely, as real hardware
	// does (a jam can only be cleared by a reset).
	JamHalt JamPolicy = iota

	// JamFreezePC leaves the CPU latched on the jam opcode's address,
	// still consuming cycles, so callers can continue driving VIC/CIA/IEC
	// state without a CPU reset.
	JamFreezePC

	// JamNopCompat treats the jam opcode as a one-byte NOP. Some cartridge
	// copy-protection schemes rely on $02 behaving this way under buggy
	// emulators; this policy exists for compatibility with software
	// written against those emulators.
	JamNopCompat
)

// TVStandard selects the VIC-II/CIA TOD clock timing model.
type TVStandard int

const (
	PAL TVStandard = iota
	NTSC
)

// Preferences carries every runtime-tunable value read by the emulation
// core. An Instance holds one; components read through the Instance rather
// than taking a *Preferences parameter of their own so that a single
// Normalise/SetDefaults call keeps every component consistent.
type Preferences struct {
	dsk *Disk

	TVStandard TVStandard
	JamPolicy  JamPolicy

	// romPaths locates the three C64 mask ROM images (KERNAL, BASIC and
	// the 4K character generator ROM mapped into the PLA's CHARACTER_ROM
	// range), held as String preferences so they persist across runs via
	// Disk.
	romPaths romPaths

	// InitialVICBank is the 2-bit VIC-II bank selection CIA2 port A
	// presents at power-on (bits 0-1, active low in hardware, stored here
	// already inverted to a plain 0-3 bank index).
	InitialVICBank Int

	// IECDevices lists the device numbers (8-11 conventionally) that
	// should be attached to the IEC bus at startup.
	IECDevices []int

	// CIA2RawIECOverlay selects between the conservative DDR-gated model
	// of CIA2 port A (false, the default) and a raw-overlay model that
	// lets an input bit read back the bus state even when the
	// corresponding DDR bit is set to output. See the Open Question
	// Decisions section for the rationale.
	CIA2RawIECOverlay Bool
}

// romPaths groups the three mask-ROM path preferences so Preferences itself
// doesn't need a placeholder field (see NewPreferences).
type romPaths struct {
	Kernal    String
	Basic     String
	Character String
}

// NewPreferences returns a Preferences with every value set to its default
// and registered against a Disk backed by filename. Call Load() to overlay
// any previously saved values.
func NewPreferences(filename string) (*Preferences, error) {
	dsk, err := NewDisk(filename)
	if err != nil {
		return nil, err
	}

	p := &Preferences{dsk: dsk}
	p.SetDefaults()

	if err := dsk.Add("tv.standard", NewGeneric(
		func(v Value) error {
			s, _ := v.(string)
			if s == "ntsc" {
				p.TVStandard = NTSC
			} else {
				p.TVStandard = PAL
			}
			return nil
		},
		func() Value {
			if p.TVStandard == NTSC {
				return "ntsc"
			}
			return "pal"
		},
	)); err != nil {
		return nil, err
	}

	if err := dsk.Add("cpu.jampolicy", NewGeneric(
		func(v Value) error {
			s, _ := v.(string)
			switch s {
			case "freezepc":
				p.JamPolicy = JamFreezePC
			case "nopcompat":
				p.JamPolicy = JamNopCompat
			default:
				p.JamPolicy = JamHalt
			}
			return nil
		},
		func() Value {
			switch p.JamPolicy {
			case JamFreezePC:
				return "freezepc"
			case JamNopCompat:
				return "nopcompat"
			default:
				return "halt"
			}
		},
	)); err != nil {
		return nil, err
	}

	if err := dsk.Add("rom.kernal", &p.romPaths.Kernal); err != nil {
		return nil, err
	}
	if err := dsk.Add("rom.basic", &p.romPaths.Basic); err != nil {
		return nil, err
	}
	if err := dsk.Add("rom.character", &p.romPaths.Character); err != nil {
		return nil, err
	}
	if err := dsk.Add("vic.initialbank", &p.InitialVICBank); err != nil {
		return nil, err
	}
	if err := dsk.Add("iec.cia2rawoverlay", &p.CIA2RawIECOverlay); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults resets every field to its power-on default, leaving the
// backing Disk registration (if any) untouched.
func (p *Preferences) SetDefaults() {
	p.TVStandard = PAL
	p.JamPolicy = JamHalt
	p.romPaths = romPaths{}
	_ = p.InitialVICBank.Set(3)
	p.IECDevices = []int{8}
	_ = p.CIA2RawIECOverlay.Set(false)
}

// KernalROM returns the configured path to the KERNAL ROM image.
func (p *Preferences) KernalROM() string { return p.romPaths.Kernal.String() }

// BasicROM returns the configured path to the BASIC ROM image.
func (p *Preferences) BasicROM() string { return p.romPaths.Basic.String() }

// CharacterROM returns the configured path to the character generator ROM
// image.
func (p *Preferences) CharacterROM() string { return p.romPaths.Character.String() }

// SetROMPaths sets all three mask-ROM image paths at once.
func (p *Preferences) SetROMPaths(kernal, basic, character string) {
	_ = p.romPaths.Kernal.Set(kernal)
	_ = p.romPaths.Basic.Set(basic)
	_ = p.romPaths.Character.Set(character)
}

// Load overlays any values previously saved to the backing Disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save persists the current values to the backing Disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// Package loader places a Gekko ROM image into a CPU's memory.
//
// Real Gekko titles ship as a set of disjoint sections (.init, .text,
// .data, .sdata, ...) that a bootloader relocates to their link-time
// virtual addresses, with the gaps between sections left zero-filled.
// LoadSegmented reproduces that splat directly from a flat dump of the
// sections concatenated in file order, the same layout the reference
// loader this package is ported from reads.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

// Segment describes one contiguous section of a ROM dump: Size bytes,
// read next from the input file, are placed starting at Address.
type Segment struct {
	Address uint32
	Size    uint32
}

// LoadFlat loads the entire contents of path into cpu's memory starting
// at base, with no gaps. This is the common case for a single-section
// homebrew image or a pre-relocated memory dump.
func LoadFlat(cpu *gekko.CPU, path string, base uint32) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied ROM path
	if err != nil {
		return fmt.Errorf("loader: failed to read %s: %w", path, err)
	}
	if err := cpu.Mem.LoadBytes(base, data); err != nil {
		return fmt.Errorf("loader: failed to place %s at 0x%08X: %w", path, base, err)
	}
	return nil
}

// LoadSegmented reads segments from path in order, each Size bytes read
// consecutively from the file, and places each one at its Address in
// cpu's memory. Gaps between the end of one segment and the start of
// the next are left zeroed (memory is zeroed at CPU construction, so no
// explicit fill is required). Segments must be supplied in ascending
// address order; overlapping or descending segments are a caller error
// and return an error rather than silently clobbering memory.
func LoadSegmented(cpu *gekko.CPU, path string, segments []Segment) error {
	f, err := os.Open(path) // #nosec G304 -- user-supplied ROM path
	if err != nil {
		return fmt.Errorf("loader: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var prevEnd uint32
	for i, seg := range segments {
		if i > 0 && seg.Address < prevEnd {
			return fmt.Errorf("loader: segment %d at 0x%08X overlaps the previous segment ending at 0x%08X", i, seg.Address, prevEnd)
		}

		buf := make([]byte, seg.Size)
		if _, err := io.ReadFull(f, buf); err != nil {
			return fmt.Errorf("loader: failed to read %d bytes for segment %d (0x%08X): %w", seg.Size, i, seg.Address, err)
		}
		if err := cpu.Mem.LoadBytes(seg.Address, buf); err != nil {
			return fmt.Errorf("loader: failed to place segment %d at 0x%08X: %w", i, seg.Address, err)
		}
		prevEnd = seg.Address + seg.Size
	}
	return nil
}

// Patch writes a single 32-bit opcode at addr, overwriting whatever the
// image placed there. Used to drop a break opcode at a chosen address
// after loading, the same trick the reference driver uses to halt
// execution at a specific PC without decoding the rest of the routine.
func Patch(cpu *gekko.CPU, addr uint32, opcode uint32) error {
	if err := cpu.Mem.WriteU32(addr, opcode); err != nil {
		return fmt.Errorf("loader: failed to patch opcode at 0x%08X: %w", addr, err)
	}
	return nil
}

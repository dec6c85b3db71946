package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadFlat(t *testing.T) {
	cpu := gekko.NewCPU(64)
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	path := writeTempFile(t, data)

	if err := LoadFlat(cpu, path, cpu.Mem.Base()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	word, err := cpu.Mem.ReadU32(cpu.Mem.Base())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if word != 0xDEADBEEF {
		t.Errorf("ReadU32 = 0x%X, want 0xDEADBEEF", word)
	}
}

func TestLoadSegmented(t *testing.T) {
	cpu := gekko.NewCPU(256)
	base := cpu.Mem.Base()

	// Two 4-byte segments separated by an 8-byte gap.
	data := append([]byte{0x11, 0x22, 0x33, 0x44}, []byte{0x55, 0x66, 0x77, 0x88}...)
	path := writeTempFile(t, data)

	segments := []Segment{
		{Address: base, Size: 4},
		{Address: base + 12, Size: 4},
	}
	if err := LoadSegmented(cpu, path, segments); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := cpu.Mem.ReadU32(base)
	if first != 0x11223344 {
		t.Errorf("first segment = 0x%X, want 0x11223344", first)
	}
	gap, _ := cpu.Mem.ReadU32(base + 4)
	if gap != 0 {
		t.Errorf("gap between segments = 0x%X, want 0 (zero-filled)", gap)
	}
	second, _ := cpu.Mem.ReadU32(base + 12)
	if second != 0x55667788 {
		t.Errorf("second segment = 0x%X, want 0x55667788", second)
	}
}

func TestLoadSegmentedRejectsOverlap(t *testing.T) {
	cpu := gekko.NewCPU(256)
	base := cpu.Mem.Base()
	data := make([]byte, 16)
	path := writeTempFile(t, data)

	segments := []Segment{
		{Address: base, Size: 8},
		{Address: base + 4, Size: 8}, // overlaps the first segment
	}
	if err := LoadSegmented(cpu, path, segments); err == nil {
		t.Error("expected an overlap error")
	}
}

func TestPatch(t *testing.T) {
	cpu := gekko.NewCPU(64)
	if err := Patch(cpu, cpu.Mem.Base(), gekko.OpcodeBreak); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	word, _ := cpu.Mem.ReadU32(cpu.Mem.Base())
	if word != gekko.OpcodeBreak {
		t.Errorf("Patch did not write the break opcode: got 0x%X", word)
	}
}

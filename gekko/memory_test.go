package gekko

import "testing"

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory(BaseAddress, 64)
	if err := m.WriteU32(BaseAddress+4, 0x12345678); err != nil {
		t.Fatal(err)
	}
	got, err := m.ReadU32(BaseAddress + 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x12345678 {
		t.Errorf("round trip mismatch: got 0x%X", got)
	}
}

func TestMemoryBigEndian(t *testing.T) {
	m := NewMemory(BaseAddress, 64)
	if err := m.WriteU32(BaseAddress, 0xAABBCCDD); err != nil {
		t.Fatal(err)
	}
	b0, _ := m.ReadU8(BaseAddress)
	b3, _ := m.ReadU8(BaseAddress + 3)
	if b0 != 0xAA || b3 != 0xDD {
		t.Errorf("expected big-endian byte order, got b0=0x%X b3=0x%X", b0, b3)
	}
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := NewMemory(BaseAddress, 16)
	if _, err := m.ReadU32(BaseAddress + 100); err == nil {
		t.Error("expected out-of-bounds error")
	}
	if _, err := m.ReadU32(BaseAddress - 4); err == nil {
		t.Error("expected error reading below base address")
	}
}

func TestMemoryResetPreservesSize(t *testing.T) {
	m := NewMemory(BaseAddress, 32)
	_ = m.WriteU8(BaseAddress, 0xFF)
	m.Reset()
	if m.Len() != 32 {
		t.Errorf("Reset changed size: got %d want 32", m.Len())
	}
	v, _ := m.ReadU8(BaseAddress)
	if v != 0 {
		t.Errorf("Reset did not clear byte: got %d", v)
	}
}

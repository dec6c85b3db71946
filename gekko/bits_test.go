package gekko

import "testing"

func TestField(t *testing.T) {
	if got := field(0b00001111_10000000_00000000_00000000, 4, 5); got != 0x1F {
		t.Errorf("field() = 0x%X, want 0x1F", got)
	}
}

func TestBitAt(t *testing.T) {
	if bitAt(0xFF7FFFFF, 8) {
		t.Errorf("bitAt(0xFF7FFFFF, 8) = true, want false")
	}
	if !bitAt(0x00010000, 15) {
		t.Errorf("bitAt(0x00010000, 15) = false, want true")
	}
}

func TestSignExtend16(t *testing.T) {
	// -0x4000 and -0xF1 are the bit patterns 0xC000 and 0xFF0F read as int16.
	if got := signExtend16(0x4000, 15); got != -0x4000 {
		t.Errorf("signExtend16(0x4000, 15) = %d, want %d", got, -0x4000)
	}
	if got := signExtend16(0x0F0F, 12); got != -0xF1 {
		t.Errorf("signExtend16(0x0F0F, 12) = %d, want %d", got, -0xF1)
	}
	if got := signExtend16(0x1F0F, 15); got != 0x1F0F {
		t.Errorf("signExtend16(0x1F0F, 15) = %d, want 0x1F0F", got)
	}
}

func TestRotateMask(t *testing.T) {
	// Only the wraparound case is checked here: swapping MB and ME must
	// yield a different mask.
	if got := rotateMask(20, 10); got == rotateMask(10, 20) {
		t.Errorf("rotateMask should differ between wrapped and non-wrapped ranges")
	}
}

func TestQuantizedSize(t *testing.T) {
	cases := map[uint8]uint32{0: 4, 1: 4, 4: 10, 5: 20, 6: 10, 7: 20}
	for in, want := range cases {
		if got := quantizedSize(in); got != want {
			t.Errorf("quantizedSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestFloatBitReinterpretation(t *testing.T) {
	const nan64 = uint64(0x7FF8000000000001) // quiet NaN with a non-zero payload
	if bits := float64ToBits(bitsToFloat64(nan64)); bits != nan64 {
		t.Errorf("float64 bit round trip lost payload: got 0x%X want 0x%X", bits, nan64)
	}
	const nan32 = uint32(0x7FC00001)
	if bits := float32ToBits(bitsToFloat32(nan32)); bits != nan32 {
		t.Errorf("float32 bit round trip lost payload: got 0x%X want 0x%X", bits, nan32)
	}
}

package gekko

import "testing"

func TestDecodeAdd(t *testing.T) {
	// add r0, r1, r2 (OE=0, Rc=0)
	opcode := uint32(0b011111_00000_00001_00010_0_100001010_0)
	inst, ok := Decode(opcode)
	if !ok {
		t.Fatal("decode failed")
	}
	if inst.Op != OpAdd || inst.RD != 0 || inst.RA != 1 || inst.RB != 2 || inst.OE || inst.Rc {
		t.Errorf("decoded add wrong: %+v", inst)
	}
}

func TestDecodeUnknownReturnsFalse(t *testing.T) {
	// Primary opcode 1 is not part of the supported subset.
	if _, ok := Decode(uint32(1) << 26); ok {
		t.Errorf("expected decode failure for reserved primary opcode")
	}
}

func TestDecodeCustomBreak(t *testing.T) {
	inst, ok := Decode(OpcodeBreak)
	if !ok || inst.Op != OpBreak {
		t.Errorf("custom break not decoded: %+v ok=%v", inst, ok)
	}
}

func TestDecodeIsPure(t *testing.T) {
	opcode := uint32(0b011111_00000_00001_00010_0_100001010_0)
	a, okA := Decode(opcode)
	b, okB := Decode(opcode)
	if okA != okB || a != b {
		t.Errorf("Decode is not deterministic for the same input")
	}
}

func TestDecodeCmpli(t *testing.T) {
	opcode := uint32(0b001010_101_0_0_00100_0000000000000101)
	inst, ok := Decode(opcode)
	if !ok || inst.Op != OpCmpli {
		t.Fatalf("cmpli not decoded: %+v ok=%v", inst, ok)
	}
	if inst.BF != 5 || inst.RA != 4 || inst.Uimm16 != 5 || inst.L {
		t.Errorf("cmpli operands wrong: %+v", inst)
	}
}

func TestDecodeStwu(t *testing.T) {
	opcode := uint32(0b100101_00001_00010_1111111111111000)
	inst, ok := Decode(opcode)
	if !ok || inst.Op != OpStwu {
		t.Fatalf("stwu not decoded: %+v ok=%v", inst, ok)
	}
	if inst.RS != 1 || inst.RA != 2 || inst.Simm16 != -8 {
		t.Errorf("stwu operands wrong: %+v", inst)
	}
}

func TestDecodeStmw(t *testing.T) {
	opcode := uint32(0b101111_11101_00011_1111111111111100)
	inst, ok := Decode(opcode)
	if !ok || inst.Op != OpStmw {
		t.Fatalf("stmw not decoded: %+v ok=%v", inst, ok)
	}
	if inst.RS != 29 || inst.RA != 3 || inst.Simm16 != -4 {
		t.Errorf("stmw operands wrong: %+v", inst)
	}
}

func TestDecodeBc(t *testing.T) {
	opcode := uint32(0b010000_00100_00000_00000000000010_0_0)
	inst, ok := Decode(opcode)
	if !ok || inst.Op != OpBc {
		t.Fatalf("bc not decoded: %+v ok=%v", inst, ok)
	}
	if inst.BO != 0b00100 || inst.BI != 0 || inst.BD != 2 || inst.AA || inst.LK {
		t.Errorf("bc operands wrong: %+v", inst)
	}
}

func TestDecodeRlwinm(t *testing.T) {
	// rlwinm r4, r3, 2, 10, 20
	opcode := uint32(21)<<26 | uint32(3)<<21 | uint32(4)<<16 | uint32(2)<<11 | uint32(10)<<6 | uint32(20)<<1
	inst, ok := Decode(opcode)
	if !ok || inst.Op != OpRlwinm {
		t.Fatalf("rlwinm not decoded: %+v ok=%v", inst, ok)
	}
	if inst.RS != 3 || inst.RA != 4 || inst.SH != 2 || inst.MB != 10 || inst.ME != 20 {
		t.Errorf("rlwinm operands wrong: %+v", inst)
	}
}

package gekko

// Registers holds the architectural state of one Gekko core: general
// purpose, floating-point (paired-single capable), and the special
// registers (PC/LR/CTR/XER/CR/QR). All registers zero-initialise except
// PC, which the owning CPU sets to the memory base address.
type Registers struct {
	GPR [32]uint32
	FPR [32]uint64 // raw bit pattern; may be viewed as f64 or as a ps0/ps1 pair of f32

	PC  uint32
	LR  uint32
	CTR uint32
	XER uint32

	CR [8]uint8 // each field uses only its low nibble: LT,GT,EQ,SO

	QR [8]uint32
}

// GPR accessors.

func (r *Registers) GetGPR(n uint8) uint32    { return r.GPR[n] }
func (r *Registers) SetGPR(n uint8, v uint32) { r.GPR[n] = v }

// FPR accessors: slot 0 is always the primary (double-precision) value;
// slot 1 is the paired-single companion, meaningful only as a float32.

func (r *Registers) FPRBits(n uint8) uint64        { return r.FPR[n] }
func (r *Registers) SetFPRBits(n uint8, v uint64)  { r.FPR[n] = v }
func (r *Registers) FPRDouble(n uint8) float64      { return bitsToFloat64(r.FPR[n]) }
func (r *Registers) SetFPRDouble(n uint8, v float64) { r.FPR[n] = float64ToBits(v) }

// FPRPaired returns the two single-precision lanes (ps0, ps1) of frN.
func (r *Registers) FPRPaired(n uint8) (ps0, ps1 float32) {
	bits := r.FPR[n]
	ps0 = bitsToFloat32(uint32(bits >> 32))
	ps1 = bitsToFloat32(uint32(bits))
	return
}

// SetFPRPaired packs two single-precision lanes into frN's 64-bit slot.
func (r *Registers) SetFPRPaired(n uint8, ps0, ps1 float32) {
	r.FPR[n] = uint64(float32ToBits(ps0))<<32 | uint64(float32ToBits(ps1))
}

// IncPC advances the program counter by one instruction.
func (r *Registers) IncPC() { r.PC += InstructionSize }

// DecCTR decrements CTR, wrapping mod 2^32.
func (r *Registers) DecCTR() { r.CTR-- }

// CRBit returns the boolean value of CR bit i, counting bit 0 as the MSB
// of the whole 32-bit condition register (i.e. CR0's LT bit).
func (r *Registers) CRBit(i int) bool {
	return (r.CR[i/4]>>(3-uint(i%4)))&1 == 1
}

// SetCRBit sets CR bit i (same indexing as CRBit).
func (r *Registers) SetCRBit(i int, v bool) {
	nibble := &r.CR[i/4]
	shift := uint(3 - i%4)
	*nibble &^= 1 << shift
	if v {
		*nibble |= 1 << shift
	}
}

// UpdateCR0 sets CR0 from a signed comparison of x against zero, ORing in
// the current XER.SO bit, per spec.md's update_cr0.
func (r *Registers) UpdateCR0(x uint32) {
	var f uint8
	switch {
	case int32(x) < 0:
		f = 1 << (3 - crBitLT)
	case int32(x) > 0:
		f = 1 << (3 - crBitGT)
	default:
		f = 1 << (3 - crBitEQ)
	}
	if r.XERSO() {
		f |= 1 << (3 - crBitSO)
	}
	r.CR[0] = f
}

// UpdateCR1 would set CR1 from IEEE floating-point class bits; this is an
// unimplemented branch per spec.md §9/§7 (deferred, never called by any
// instruction this interpreter decodes with Rc set on an FP result).
func (r *Registers) UpdateCR1(x float64) {
	panic("gekko: update_cr1 is not implemented")
}

// SetXEROVSO writes OV and SO to the same value b. Note this is the
// literal (non-sticky) behavior ported from the reference implementation:
// SO is architecturally sticky (cleared only by mtspr/mcrxr), but this
// interpreter clears it right along with OV. See SPEC_FULL.md §9.1.
func (r *Registers) SetXEROVSO(b bool) {
	r.XER &^= 1 << (31 - xerBitOV)
	if b {
		r.XER |= 1 << (31 - xerBitOV)
	}
	r.XER &^= 1 << (31 - xerBitSO)
	if b {
		r.XER |= 1 << (31 - xerBitSO)
	}
}

// XERSO reads the XER SO bit.
func (r *Registers) XERSO() bool {
	return (r.XER>>(31-xerBitSO))&1 == 1
}

// SetCarry writes the XER CA bit.
func (r *Registers) SetCarry(b bool) {
	r.XER &^= 1 << (31 - xerBitCA)
	if b {
		r.XER |= 1 << (31 - xerBitCA)
	}
}

// Carry reads the XER CA bit.
func (r *Registers) Carry() bool {
	return (r.XER>>(31-xerBitCA))&1 == 1
}

// EAD computes the D-form effective address: (rA==0 ? 0 : GPR[rA]) + d.
func (r *Registers) EAD(ra uint8, d int32) uint32 {
	var base uint32
	if ra != 0 {
		base = r.GPR[ra]
	}
	return uint32(int64(base) + int64(d))
}

// EAX computes the X-form effective address: (rA==0 ? 0 : GPR[rA]) + GPR[rB].
func (r *Registers) EAX(ra, rb uint8) uint32 {
	var base uint32
	if ra != 0 {
		base = r.GPR[ra]
	}
	return base + r.GPR[rb]
}

// GPROrZero returns GPR[n], or 0 if n == 0 (the rA==0 special case used by
// addi/addis/D-form effective addresses).
func (r *Registers) GPROrZero(n uint8) uint32 {
	if n == 0 {
		return 0
	}
	return r.GPR[n]
}

// GetSPR resolves a named special-purpose register.
func (r *Registers) GetSPR(spr SPR) uint32 {
	switch spr {
	case SPRXER:
		return r.XER
	case SPRLR:
		return r.LR
	case SPRCTR:
		return r.CTR
	}
	return 0
}

// SetSPR writes a named special-purpose register.
func (r *Registers) SetSPR(spr SPR, v uint32) {
	switch spr {
	case SPRXER:
		r.XER = v
	case SPRLR:
		r.LR = v
	case SPRCTR:
		r.CTR = v
	}
}

// QRStoreType / QRStoreScale / QRLoadType / QRLoadScale read the
// paired-single quantization sub-fields out of QR[i] per the bit layout
// in constants.go.
func (r *Registers) QRStoreType(i uint8) uint8  { return uint8(field(r.QR[i], qrStoreTypeStart, 3)) }
func (r *Registers) QRStoreScale(i uint8) uint8 { return uint8(field(r.QR[i], qrStoreScaleStart, 6)) }
func (r *Registers) QRLoadType(i uint8) uint8   { return uint8(field(r.QR[i], qrLoadTypeStart, 3)) }
func (r *Registers) QRLoadScale(i uint8) uint8  { return uint8(field(r.QR[i], qrLoadScaleStart, 6)) }

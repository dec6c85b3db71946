package gekko

// Decode translates a 32-bit big-endian Gekko opcode word into a decoded
// Instruction. It is a pure function: the same opcode always decodes the
// same way, and unrecognised or reserved encodings report ok=false rather
// than guessing.
func Decode(opcode uint32) (inst Instruction, ok bool) {
	inst.Opcode = opcode
	primary := field(opcode, 0, 6)

	switch primary {
	case 10:
		inst.Op = OpCmpli
		inst.BF = uint8(field(opcode, 6, 3))
		inst.L = bitAt(opcode, 10)
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Uimm16 = uint16(field(opcode, 16, 16))
		return inst, true

	case 11:
		inst.Op = OpCmpi
		inst.BF = uint8(field(opcode, 6, 3))
		inst.L = bitAt(opcode, 10)
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Simm16 = signExtend16(uint16(field(opcode, 16, 16)), 16)
		return inst, true

	case 13:
		inst.Op = OpAddicDot
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Simm16 = signExtend16(uint16(field(opcode, 16, 16)), 16)
		return inst, true

	case 14:
		inst.Op = OpAddi
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Simm16 = signExtend16(uint16(field(opcode, 16, 16)), 16)
		return inst, true

	case 15:
		inst.Op = OpAddis
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Uimm16 = uint16(field(opcode, 16, 16))
		return inst, true

	case 16:
		inst.Op = OpBc
		inst.BO = uint8(field(opcode, 6, 5))
		inst.BI = uint8(field(opcode, 11, 5))
		inst.BD = signExtend16(uint16(field(opcode, 16, 14)), 14)
		inst.AA = bitAt(opcode, 30)
		inst.LK = bitAt(opcode, 31)
		return inst, true

	case 18:
		inst.Op = OpB
		inst.LI = signExtend32(field(opcode, 6, 24), 24)
		inst.AA = bitAt(opcode, 30)
		inst.LK = bitAt(opcode, 31)
		return inst, true

	case 19:
		ext := field(opcode, 21, 10)
		switch ext {
		case 16:
			inst.Op = OpBclr
			inst.BO = uint8(field(opcode, 6, 5))
			inst.BI = uint8(field(opcode, 11, 5))
			inst.LK = bitAt(opcode, 31)
			return inst, true
		case 193:
			inst.Op = OpCrxor
			inst.BF = uint8(field(opcode, 6, 5)) // crbD
			inst.RA = uint8(field(opcode, 11, 5))
			inst.RB = uint8(field(opcode, 16, 5))
			return inst, true
		}
		return inst, false

	case 21:
		inst.Op = OpRlwinm
		inst.RS = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.SH = uint8(field(opcode, 16, 5))
		inst.MB = uint8(field(opcode, 21, 5))
		inst.ME = uint8(field(opcode, 26, 5))
		inst.Rc = bitAt(opcode, 31)
		return inst, true

	case 24:
		inst.Op = OpOri
		inst.RS = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Uimm16 = uint16(field(opcode, 16, 16))
		return inst, true

	case 28:
		inst.Op = OpAndiDot
		inst.RS = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Uimm16 = uint16(field(opcode, 16, 16))
		return inst, true

	case 31:
		return decode31(opcode, inst)

	case 32:
		inst.Op = OpLwz
		fillDForm(opcode, &inst)
		return inst, true
	case 33:
		inst.Op = OpLwzu
		fillDForm(opcode, &inst)
		return inst, true
	case 34:
		inst.Op = OpLbz
		fillDForm(opcode, &inst)
		return inst, true
	case 35:
		inst.Op = OpLbzu
		fillDForm(opcode, &inst)
		return inst, true
	case 36:
		inst.Op = OpStw
		fillDForm(opcode, &inst)
		return inst, true
	case 37:
		inst.Op = OpStwu
		fillDForm(opcode, &inst)
		return inst, true
	case 38:
		inst.Op = OpStb
		fillDForm(opcode, &inst)
		return inst, true
	case 39:
		inst.Op = OpStbu
		fillDForm(opcode, &inst)
		return inst, true
	case 40:
		inst.Op = OpLhz
		fillDForm(opcode, &inst)
		return inst, true
	case 46:
		inst.Op = OpLmw
		fillDForm(opcode, &inst)
		return inst, true
	case 47:
		inst.Op = OpStmw
		fillDForm(opcode, &inst)
		return inst, true
	case 48:
		inst.Op = OpLfs
		fillDForm(opcode, &inst)
		return inst, true
	case 50:
		inst.Op = OpLfd
		fillDForm(opcode, &inst)
		return inst, true
	case 52:
		inst.Op = OpStfs
		fillDForm(opcode, &inst)
		return inst, true

	case 56:
		inst.Op = OpPsqL
		fillPsqForm(opcode, &inst)
		return inst, true
	case 60:
		inst.Op = OpPsqSt
		fillPsqForm(opcode, &inst)
		return inst, true

	case 54:
		inst.Op = OpStfd
		fillDForm(opcode, &inst)
		return inst, true
	case 55:
		inst.Op = OpStfdu
		fillDForm(opcode, &inst)
		return inst, true

	case 59:
		ext := field(opcode, 26, 5)
		if ext == 0 {
			inst.Op = OpBreak
			return inst, true
		}
		return inst, false

	case 63:
		return decode63(opcode, inst)
	}

	return inst, false
}

// fillDForm fills the common D-form fields shared by all integer and
// float load/store instructions: rD/rS, rA and the 16-bit signed
// displacement.
func fillDForm(opcode uint32, inst *Instruction) {
	rdrs := uint8(field(opcode, 6, 5))
	inst.RD = rdrs
	inst.RS = rdrs
	inst.RA = uint8(field(opcode, 11, 5))
	inst.Simm16 = signExtend16(uint16(field(opcode, 16, 16)), 16)
}

// fillPsqForm fills the paired-single quantized load/store fields.
func fillPsqForm(opcode uint32, inst *Instruction) {
	rdrs := uint8(field(opcode, 6, 5))
	inst.RD = rdrs
	inst.RS = rdrs
	inst.RA = uint8(field(opcode, 11, 5))
	inst.Simm16 = signExtend16(uint16(field(opcode, 16, 12)), 12)
	inst.W = bitAt(opcode, 28)
	inst.QRIndex = uint8(field(opcode, 29, 3))
}

func decode31(opcode uint32, inst Instruction) (Instruction, bool) {
	ext := field(opcode, 22, 9)
	switch ext {
	case 0:
		inst.Op = OpCmp
		inst.BF = uint8(field(opcode, 6, 3))
		inst.L = bitAt(opcode, 10)
		inst.RA = uint8(field(opcode, 11, 5))
		inst.RB = uint8(field(opcode, 16, 5))
		return inst, true
	case 10:
		inst.Op = OpAddc
		fillXOForm(opcode, &inst)
		return inst, true
	case 23:
		inst.Op = OpLwzx
		fillXForm(opcode, &inst)
		return inst, true
	case 32:
		inst.Op = OpCmpl
		inst.BF = uint8(field(opcode, 6, 3))
		inst.L = bitAt(opcode, 10)
		inst.RA = uint8(field(opcode, 11, 5))
		inst.RB = uint8(field(opcode, 16, 5))
		return inst, true
	case 40:
		inst.Op = OpSubf
		fillXOForm(opcode, &inst)
		return inst, true
	case 124:
		inst.Op = OpNor
		fillXForm(opcode, &inst)
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 138:
		inst.Op = OpAdde
		fillXOForm(opcode, &inst)
		return inst, true
	case 151:
		inst.Op = OpStwx
		fillXForm(opcode, &inst)
		return inst, true
	case 266:
		inst.Op = OpAdd
		fillXOForm(opcode, &inst)
		return inst, true
	case 339:
		inst.Op = OpMfspr
		inst.RD = uint8(field(opcode, 6, 5))
		inst.SPR = decodeSPR(uint16(field(opcode, 11, 10)))
		return inst, true
	case 371:
		inst.Op = OpMftb
		inst.RD = uint8(field(opcode, 6, 5))
		inst.TBR = decodeTBR(uint16(field(opcode, 11, 10)))
		return inst, true
	case 442:
		inst.Op = OpExtsbDot
		inst.RS = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 444:
		inst.Op = OpOr
		fillXForm(opcode, &inst)
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 467:
		inst.Op = OpMtspr
		inst.RS = uint8(field(opcode, 6, 5))
		inst.SPR = decodeSPR(uint16(field(opcode, 11, 10)))
		return inst, true
	}
	return inst, false
}

// fillXForm fills the common X-form integer operands: rS/rD, rA, rB.
func fillXForm(opcode uint32, inst *Instruction) {
	rdrs := uint8(field(opcode, 6, 5))
	inst.RD = rdrs
	inst.RS = rdrs
	inst.RA = uint8(field(opcode, 11, 5))
	inst.RB = uint8(field(opcode, 16, 5))
}

// fillXOForm fills an XO-form arithmetic operand set: rD, rA, rB, OE, Rc.
func fillXOForm(opcode uint32, inst *Instruction) {
	inst.RD = uint8(field(opcode, 6, 5))
	inst.RA = uint8(field(opcode, 11, 5))
	inst.RB = uint8(field(opcode, 16, 5))
	inst.OE = bitAt(opcode, 21)
	inst.Rc = bitAt(opcode, 31)
}

func decode63(opcode uint32, inst Instruction) (Instruction, bool) {
	ext := field(opcode, 26, 5)
	switch ext {
	case 12:
		inst.Op = OpFrsp
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RB = uint8(field(opcode, 16, 5))
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 25:
		inst.Op = OpFmul
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.RB = uint8(field(opcode, 21, 5)) // rC lives in the rB slot for fmul (A-form)
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 26:
		inst.Op = OpFrsqrte
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RB = uint8(field(opcode, 16, 5))
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	case 30:
		inst.Op = OpFnmsub
		inst.RD = uint8(field(opcode, 6, 5))
		inst.RA = uint8(field(opcode, 11, 5))
		inst.RB = uint8(field(opcode, 16, 5))
		inst.RS = uint8(field(opcode, 21, 5)) // rC, reusing RS as the fourth operand slot
		inst.Rc = bitAt(opcode, 31)
		return inst, true
	}
	return inst, false
}

func decodeSPR(raw uint16) SPR {
	switch raw >> 5 {
	case 0b00001:
		return SPRXER
	case 0b01000:
		return SPRLR
	case 0b01001:
		return SPRCTR
	}
	return SPRUnknown
}

func decodeTBR(raw uint16) TBR {
	switch raw >> 5 {
	case 0b01100:
		return TBRTBL
	case 0b01101:
		return TBRTBU
	}
	return TBRUnknown
}

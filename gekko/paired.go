package gekko

// execPsqSt implements psq_st: quantize and store a paired-single value.
// Only quantization type 0 (raw 32-bit float) is defined; any other
// store type is an unimplemented-opcode-branch abort per spec.md §7/§9 —
// the architecture requires it, but no decoded type-4..7 path exists yet.
func (c *CPU) execPsqSt(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))
	storeType := c.Regs.QRStoreType(inst.QRIndex)

	if storeType != 0 {
		panic("gekko: psq_st quantization type other than 0 is not implemented")
	}

	ps0, ps1 := c.Regs.FPRPaired(inst.RS)
	if err := c.Mem.WriteU32(ea, float32ToBits(ps0)); err != nil {
		return err
	}
	if !inst.W {
		size := quantizedSize(storeType)
		if err := c.Mem.WriteU32(ea+size, float32ToBits(ps1)); err != nil {
			return err
		}
	}
	c.Regs.IncPC()
	return nil
}

// execPsqL implements psq_l: dequantize and load a paired-single value.
// Only load type 0 is defined, matching execPsqSt.
func (c *CPU) execPsqL(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))
	loadType := c.Regs.QRLoadType(inst.QRIndex)

	if loadType != 0 {
		panic("gekko: psq_l quantization type other than 0 is not implemented")
	}

	raw, err := c.Mem.ReadU32(ea)
	if err != nil {
		return err
	}
	ps0 := bitsToFloat32(raw)

	ps1 := float32(1.0)
	if !inst.W {
		size := quantizedSize(loadType)
		raw2, err := c.Mem.ReadU32(ea + size)
		if err != nil {
			return err
		}
		ps1 = bitsToFloat32(raw2)
	}

	c.Regs.SetFPRPaired(inst.RD, ps0, ps1)
	c.Regs.IncPC()
	return nil
}

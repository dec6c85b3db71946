package gekko

// execB implements the unconditional branch b/ba/bl/bla.
func (c *CPU) execB(inst *Instruction) {
	if inst.LK {
		c.Regs.LR = c.Regs.PC + InstructionSize
	}
	target := inst.LI << 2
	if inst.AA {
		c.Regs.PC = uint32(target)
	} else {
		c.Regs.PC = uint32(int64(c.Regs.PC) + int64(target))
	}
}

// evaluateBranchCondition applies the BO/BI/CTR machinery shared by
// bc and bclr. BO bit indexing follows SPEC_FULL.md §9.2: bit 7-2 of the
// 8-bit BO value gates CTR decrement, 7-1 its compare polarity, 7-4 gates
// the condition check, 7-3 its compare polarity (positions counted by
// u8BitAt from the MSB of the byte that holds the 5-bit BO field).
func (c *CPU) evaluateBranchCondition(bo, bi uint8) (ctrOK, condOK bool) {
	dontUseCTR := u8BitAt(bo, 5)
	if !dontUseCTR {
		c.Regs.DecCTR()
	}
	ctrDiffZero := u8BitAt(bo, 6)
	ctrOK = dontUseCTR || ((c.Regs.CTR != 0) != ctrDiffZero)

	dontCheckCond := u8BitAt(bo, 3)
	condPolarity := u8BitAt(bo, 4)
	condOK = dontCheckCond || (c.Regs.CRBit(int(bi)) == condPolarity)
	return
}

// execBc implements bc: conditional branch with a 14-bit displacement.
func (c *CPU) execBc(inst *Instruction) {
	ctrOK, condOK := c.evaluateBranchCondition(inst.BO, inst.BI)
	if ctrOK && condOK {
		if inst.LK {
			c.Regs.LR = c.Regs.PC + InstructionSize
		}
		target := int32(inst.BD) << 2
		if inst.AA {
			c.Regs.PC = uint32(target)
		} else {
			c.Regs.PC = uint32(int64(c.Regs.PC) + int64(target))
		}
	} else {
		c.Regs.IncPC()
	}
}

// execBclr implements bclr: branch to LR & ~3, testing the same BO/BI
// condition machinery as bc. LR is updated for LK *after* the target is
// captured, matching the reference implementation's evaluation order.
func (c *CPU) execBclr(inst *Instruction) {
	ctrOK, condOK := c.evaluateBranchCondition(inst.BO, inst.BI)
	if ctrOK && condOK {
		target := c.Regs.LR &^ 3
		c.Regs.PC = target
		if inst.LK {
			c.Regs.LR = c.Regs.PC + InstructionSize
		}
	} else {
		c.Regs.IncPC()
	}
}

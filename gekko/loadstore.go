package gekko

import "fmt"

// execLoadD implements the D-form integer loads: lwz(u), lbz(u), lhz.
func (c *CPU) execLoadD(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))

	var value uint32
	switch inst.Op {
	case OpLwz, OpLwzu:
		v, err := c.Mem.ReadU32(ea)
		if err != nil {
			return err
		}
		value = v
	case OpLbz, OpLbzu:
		v, err := c.Mem.ReadU8(ea)
		if err != nil {
			return err
		}
		value = uint32(v)
	case OpLhz:
		v, err := c.Mem.ReadU16(ea)
		if err != nil {
			return err
		}
		value = uint32(v)
	}
	c.Regs.SetGPR(inst.RD, value)

	if inst.Op == OpLwzu || inst.Op == OpLbzu {
		c.Regs.SetGPR(inst.RA, ea)
	}
	c.Regs.IncPC()
	return nil
}

// execStoreD implements the D-form integer stores: stw(u), stb(u).
func (c *CPU) execStoreD(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))
	s := c.Regs.GetGPR(inst.RS)

	switch inst.Op {
	case OpStw, OpStwu:
		if err := c.Mem.WriteU32(ea, s); err != nil {
			return err
		}
	case OpStb, OpStbu:
		if err := c.Mem.WriteU8(ea, uint8(s)); err != nil {
			return err
		}
	}

	if inst.Op == OpStwu || inst.Op == OpStbu {
		c.Regs.SetGPR(inst.RA, ea)
	}
	c.Regs.IncPC()
	return nil
}

// execLwzx implements lwzx: rD <- MEM32[EAX(rA, rB)].
func (c *CPU) execLwzx(inst *Instruction) error {
	ea := c.Regs.EAX(inst.RA, inst.RB)
	v, err := c.Mem.ReadU32(ea)
	if err != nil {
		return err
	}
	c.Regs.SetGPR(inst.RD, v)
	c.Regs.IncPC()
	return nil
}

// execStwx implements stwx: MEM32[EAX(rA, rB)] <- rS.
func (c *CPU) execStwx(inst *Instruction) error {
	ea := c.Regs.EAX(inst.RA, inst.RB)
	if err := c.Mem.WriteU32(ea, c.Regs.GetGPR(inst.RS)); err != nil {
		return err
	}
	c.Regs.IncPC()
	return nil
}

// execLmw implements lmw: from EA onward, load consecutive 32-bit words
// into GPR[rD]..GPR[31].
func (c *CPU) execLmw(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))
	for r := uint32(inst.RD); r < 32; r++ {
		v, err := c.Mem.ReadU32(ea)
		if err != nil {
			return fmt.Errorf("lmw: %w", err)
		}
		c.Regs.SetGPR(uint8(r), v)
		ea += 4
	}
	c.Regs.IncPC()
	return nil
}

// execStmw implements stmw: symmetric store from GPR[rS]..GPR[31] to EA
// onward.
func (c *CPU) execStmw(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))
	for r := uint32(inst.RS); r < 32; r++ {
		if err := c.Mem.WriteU32(ea, c.Regs.GetGPR(uint8(r))); err != nil {
			return fmt.Errorf("stmw: %w", err)
		}
		ea += 4
	}
	c.Regs.IncPC()
	return nil
}

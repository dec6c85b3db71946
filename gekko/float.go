package gekko

import "math"

// execLoadFloat implements lfs/lfd.
func (c *CPU) execLoadFloat(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))

	switch inst.Op {
	case OpLfs:
		raw, err := c.Mem.ReadU32(ea)
		if err != nil {
			return err
		}
		widened := float64(bitsToFloat32(raw))
		// lfs widens to double and that double occupies frD's full 64 bits;
		// the paired-single lanes share that same word (see DESIGN.md's
		// "lfs ps1" entry), so ps1 is left holding whatever the double's low
		// 32 bits happen to be rather than a second copy of the single.
		c.Regs.SetFPRDouble(inst.RD, widened)
	case OpLfd:
		raw, err := c.Mem.ReadU64(ea)
		if err != nil {
			return err
		}
		c.Regs.SetFPRBits(inst.RD, raw)
	}
	c.Regs.IncPC()
	return nil
}

// execStoreFloat implements stfs/stfd(u).
func (c *CPU) execStoreFloat(inst *Instruction) error {
	ea := c.Regs.EAD(inst.RA, int32(inst.Simm16))

	switch inst.Op {
	case OpStfs:
		narrow := float32(c.Regs.FPRDouble(inst.RS))
		if err := c.Mem.WriteU32(ea, float32ToBits(narrow)); err != nil {
			return err
		}
	case OpStfd, OpStfdu:
		if err := c.Mem.WriteU64(ea, c.Regs.FPRBits(inst.RS)); err != nil {
			return err
		}
		if inst.Op == OpStfdu {
			c.Regs.SetGPR(inst.RA, ea)
		}
	}
	c.Regs.IncPC()
	return nil
}

// execFmul implements fmul: frD <- frA * frC (RB operand slot carries frC;
// see decode.go's A-form comment).
func (c *CPU) execFmul(inst *Instruction) {
	result := c.Regs.FPRDouble(inst.RA) * c.Regs.FPRDouble(inst.RB)
	c.Regs.SetFPRDouble(inst.RD, result)
	c.Regs.IncPC()
}

// execFnmsub implements fnmsub: frD <- -((frA * frC) - frB).
func (c *CPU) execFnmsub(inst *Instruction) {
	a := c.Regs.FPRDouble(inst.RA)
	b := c.Regs.FPRDouble(inst.RB)
	cc := c.Regs.FPRDouble(inst.RS) // frC, decoded into the RS slot
	result := -((a * cc) - b)
	c.Regs.SetFPRDouble(inst.RD, result)
	c.Regs.IncPC()
}

// execFrsqrte implements frsqrte: frD <- 1/sqrt(frB), a low-precision
// estimate acceptable per spec.md §4.4.
func (c *CPU) execFrsqrte(inst *Instruction) {
	b := c.Regs.FPRDouble(inst.RB)
	c.Regs.SetFPRDouble(inst.RD, 1/math.Sqrt(b))
	c.Regs.IncPC()
}

// execFrsp implements frsp: round the double in frB to single precision,
// then widen back to double into frD.
func (c *CPU) execFrsp(inst *Instruction) {
	b := c.Regs.FPRDouble(inst.RB)
	rounded := float64(float32(b))
	c.Regs.SetFPRDouble(inst.RD, rounded)
	c.Regs.IncPC()
}

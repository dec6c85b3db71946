package gekko

// execMfspr implements mfspr: rD <- SPR (XER|LR|CTR).
func (c *CPU) execMfspr(inst *Instruction) {
	c.Regs.SetGPR(inst.RD, c.Regs.GetSPR(inst.SPR))
	c.Regs.IncPC()
}

// execMtspr implements mtspr: SPR <- rS.
func (c *CPU) execMtspr(inst *Instruction) {
	c.Regs.SetSPR(inst.SPR, c.Regs.GetGPR(inst.RS))
	c.Regs.IncPC()
}

// execMftb implements mftb: rD <- half of a 64-bit timebase synthesised
// from the instruction counter. Per the reference implementation this
// interpreter is ported from, TBL reads the high 32 bits of the timebase
// and TBU the low 32 bits — a naming inversion relative to real PowerPC
// TBR semantics, kept verbatim.
func (c *CPU) execMftb(inst *Instruction) {
	tb := c.Timebase()
	var v uint32
	switch inst.TBR {
	case TBRTBL:
		v = uint32(tb >> 32)
	case TBRTBU:
		v = uint32(tb)
	}
	c.Regs.SetGPR(inst.RD, v)
	c.Regs.IncPC()
}

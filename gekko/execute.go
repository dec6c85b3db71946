package gekko

import "fmt"

// execute dispatches a decoded instruction to its semantics, mutating the
// register file and/or memory image. Each helper is responsible for
// leaving PC advanced (or set to a branch target) before returning.
func (c *CPU) execute(inst *Instruction) (Event, error) {
	switch inst.Op {
	case OpAdd, OpAddc, OpAdde, OpSubf:
		return EventNone, c.execArith(inst)
	case OpAddi:
		c.execAddi(inst)
	case OpAddis:
		c.execAddis(inst)
	case OpAddicDot:
		c.execAddicDot(inst)
	case OpExtsbDot:
		c.execExtsb(inst)
	case OpNor:
		c.execNor(inst)
	case OpOr:
		c.execOr(inst)
	case OpOri:
		c.execOri(inst)
	case OpAndiDot:
		c.execAndiDot(inst)
	case OpCrxor:
		c.execCrxor(inst)
	case OpRlwinm:
		c.execRlwinm(inst)
	case OpCmp:
		c.execCmp(inst, true, false)
	case OpCmpl:
		c.execCmp(inst, false, false)
	case OpCmpi:
		c.execCmp(inst, true, true)
	case OpCmpli:
		c.execCmp(inst, false, true)

	case OpB:
		c.execB(inst)
	case OpBc:
		c.execBc(inst)
	case OpBclr:
		c.execBclr(inst)

	case OpLwz, OpLwzu, OpLbz, OpLbzu, OpLhz:
		return EventNone, c.execLoadD(inst)
	case OpStw, OpStwu, OpStb, OpStbu:
		return EventNone, c.execStoreD(inst)
	case OpLwzx:
		return EventNone, c.execLwzx(inst)
	case OpStwx:
		return EventNone, c.execStwx(inst)
	case OpLmw:
		return EventNone, c.execLmw(inst)
	case OpStmw:
		return EventNone, c.execStmw(inst)

	case OpLfs, OpLfd:
		return EventNone, c.execLoadFloat(inst)
	case OpStfs, OpStfd, OpStfdu:
		return EventNone, c.execStoreFloat(inst)

	case OpPsqSt:
		return EventNone, c.execPsqSt(inst)
	case OpPsqL:
		return EventNone, c.execPsqL(inst)

	case OpMfspr:
		c.execMfspr(inst)
	case OpMtspr:
		c.execMtspr(inst)
	case OpMftb:
		c.execMftb(inst)

	case OpFmul:
		c.execFmul(inst)
	case OpFnmsub:
		c.execFnmsub(inst)
	case OpFrsqrte:
		c.execFrsqrte(inst)
	case OpFrsp:
		c.execFrsp(inst)

	case OpBreak:
		c.Regs.IncPC()
		return EventBreak, nil

	default:
		return EventNone, fmt.Errorf("gekko: unimplemented opcode at 0x%08X: op=%d", inst.Address, inst.Op)
	}
	return EventNone, nil
}

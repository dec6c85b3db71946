package gekko

// Op identifies the decoded mnemonic of an instruction. The engine
// dispatches on this tag; Decode is the only place that produces it.
type Op int

const (
	OpUnknown Op = iota
	OpAdd
	OpAddi
	OpAddis
	OpAddicDot
	OpAddc
	OpAdde
	OpSubf
	OpExtsbDot
	OpNor
	OpOr
	OpOri
	OpAndiDot
	OpCrxor
	OpRlwinm
	OpCmp
	OpCmpl
	OpCmpi
	OpCmpli
	OpB
	OpBc
	OpBclr
	OpLwz
	OpLwzu
	OpLwzx
	OpLbz
	OpLbzu
	OpLhz
	OpStw
	OpStwu
	OpStwx
	OpStb
	OpStbu
	OpLmw
	OpStmw
	OpLfs
	OpLfd
	OpStfs
	OpStfd
	OpStfdu
	OpPsqSt
	OpPsqL
	OpMfspr
	OpMtspr
	OpMftb
	OpFmul
	OpFnmsub
	OpFrsqrte
	OpFrsp
	OpBreak
)

var opNames = map[Op]string{
	OpUnknown: "unknown",
	OpAdd:     "add", OpAddi: "addi", OpAddis: "addis", OpAddicDot: "addic.",
	OpAddc: "addc", OpAdde: "adde", OpSubf: "subf", OpExtsbDot: "extsb.",
	OpNor: "nor", OpOr: "or", OpOri: "ori", OpAndiDot: "andi.", OpCrxor: "crxor",
	OpRlwinm: "rlwinm", OpCmp: "cmp", OpCmpl: "cmpl", OpCmpi: "cmpi", OpCmpli: "cmpli",
	OpB: "b", OpBc: "bc", OpBclr: "bclr",
	OpLwz: "lwz", OpLwzu: "lwzu", OpLwzx: "lwzx", OpLbz: "lbz", OpLbzu: "lbzu", OpLhz: "lhz",
	OpStw: "stw", OpStwu: "stwu", OpStwx: "stwx", OpStb: "stb", OpStbu: "stbu",
	OpLmw: "lmw", OpStmw: "stmw",
	OpLfs: "lfs", OpLfd: "lfd", OpStfs: "stfs", OpStfd: "stfd", OpStfdu: "stfdu",
	OpPsqSt: "psq_st", OpPsqL: "psq_l",
	OpMfspr: "mfspr", OpMtspr: "mtspr", OpMftb: "mftb",
	OpFmul: "fmul", OpFnmsub: "fnmsub", OpFrsqrte: "frsqrte", OpFrsp: "frsp",
	OpBreak: "break",
}

// String renders the mnemonic for an Op, used by the debugger and TUI
// disassembly views; unrecognised values (there should be none reachable
// from Decode) fall back to "unknown".
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// SPR names the special-purpose registers this interpreter resolves.
type SPR int

const (
	SPRUnknown SPR = iota
	SPRXER
	SPRLR
	SPRCTR
)

// TBR names the two halves of the timebase register pair.
type TBR int

const (
	TBRUnknown TBR = iota
	TBRTBL
	TBRTBU
)

// Instruction is a decoded Gekko opcode: a tag plus its operand fields.
// Not every field is meaningful for every Op; see decode.go for which
// fields each variant populates.
type Instruction struct {
	Op Op

	// Register operands, always 5-bit fields widened to a byte.
	RD, RA, RB, RS uint8

	// Immediates. Simm16/Uimm16 are pre-sign-extended by the decoder where
	// the field is signed, but never pre-shifted by the caller.
	Simm16 int16
	Uimm16 uint16
	LI     int32 // 24-bit signed branch displacement, not yet <<2
	BD     int16 // 14-bit signed conditional-branch displacement, not yet <<2

	// Condition-register field index (3 bits) and comparison L bit.
	BF uint8
	L  bool

	// bcx/bclrx operands.
	BO, BI uint8

	// Rotate/mask operands.
	SH, MB, ME uint8

	// Flag bits.
	OE, Rc, AA, LK, W bool

	// Quantization register index (psq_l/psq_st).
	QRIndex uint8

	SPR SPR
	TBR TBR

	// Address of this instruction, filled in by the engine at fetch time
	// (Decode itself is pure and does not know the PC).
	Address uint32
	Opcode  uint32
}

package gekko

// ============================================================================
// Gekko Architecture Constants
// ============================================================================
// These values are defined by the PowerPC/Gekko instruction set and should
// not be modified.

const (
	// InstructionSize is the width in bytes of every Gekko instruction.
	InstructionSize = 4

	// BaseAddress is the fixed virtual base the flat memory image is mapped
	// at. All public load/store addresses are full virtual addresses; the
	// memory layer subtracts BaseAddress to index into its backing slice.
	BaseAddress uint32 = 0x8000_3100

	// DefaultRAMSize is used when a caller does not specify a RAM size.
	DefaultRAMSize = 24 * 1024 * 1024

	// DefaultMaxCycles bounds RunUntilEvent when no caller-supplied limit
	// is set, mirroring the teacher project's DefaultMaxCycles safety net.
	DefaultMaxCycles = 1_000_000

	// OpcodeBreak is the synthetic "custom break" encoding: primary opcode
	// 59 with all five extended-opcode bits clear. No architecturally
	// defined instruction in the subset this interpreter supports uses
	// this encoding.
	OpcodeBreak uint32 = 0b111011_00_00000000_00000000_00000000
)

// XER status bit positions, counting from MSB=0 (PowerPC bit numbering).
const (
	xerBitCA = 29
	xerBitOV = 30
	xerBitSO = 31
)

// CR nibble layout: LT, GT, EQ, SO from MSB to LSB of each 4-bit field.
const (
	crBitLT = 0
	crBitGT = 1
	crBitEQ = 2
	crBitSO = 3
)

// QR sub-field bit positions (PowerPC bit numbering, MSB=0) per the
// paired-single ISA: store type/scale live in the low-order half (bits
// 16..31), load type/scale in the high-order half (bits 0..15).
const (
	qrStoreTypeStart  = 29 // 3 bits
	qrStoreScaleStart = 18 // 6 bits
	qrLoadTypeStart   = 13 // 3 bits
	qrLoadScaleStart  = 2  // 6 bits
)

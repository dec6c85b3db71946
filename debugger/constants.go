package debugger

// Code View Context Constants
const (
	// CodeContextLinesBeforeCompact is the number of instructions shown
	// before PC in the TUI disassembly panel.
	CodeContextLinesBeforeCompact = 5

	// CodeContextLinesAfterCompact is the number of instructions shown
	// from PC onward (PC included) in the TUI disassembly panel.
	CodeContextLinesAfterCompact = 10
)

// Memory Display Constants
const (
	// MemoryDisplayRows is the number of rows shown in the memory hex dump view.
	MemoryDisplayRows = 16

	// MemoryDisplayColumns is the number of bytes per row in the memory hex dump view.
	MemoryDisplayColumns = 16
)

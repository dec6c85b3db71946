package debugger

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

// Debugger wraps a CPU with breakpoint tracking, command history and a
// line-oriented command interpreter, in the same shape as a gdb-style
// front end driving a single inferior.
type Debugger struct {
	CPU *gekko.CPU

	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running bool

	// LastCommand supports "repeat last command on empty input", the same
	// convention gdb and the reference CLI both use for step/next.
	LastCommand string

	// Output buffer, flushed by the CLI/TUI front end after each command.
	Output strings.Builder
}

// NewDebugger creates a debugger driving cpu.
func NewDebugger(cpu *gekko.CPU) *Debugger {
	return &Debugger{
		CPU:         cpu,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
	}
}

// ResolveAddress parses a hex ("0x...") or decimal address string.
func (d *Debugger) ResolveAddress(addrStr string) (uint32, error) {
	var addr uint32
	if strings.HasPrefix(addrStr, "0x") || strings.HasPrefix(addrStr, "0X") {
		if _, err := fmt.Sscanf(addrStr, "0x%x", &addr); err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
	} else {
		if _, err := fmt.Sscanf(addrStr, "%d", &addr); err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
	}
	return addr, nil
}

// ExecuteCommand parses and runs one command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)

	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		return d.cmdRun(args)
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s", "si":
		return d.cmdStep(args)

	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)

	case "print", "p":
		return d.cmdPrint(args)
	case "x":
		return d.cmdExamine(args)
	case "info", "i":
		return d.cmdInfo(args)

	case "set":
		return d.cmdSet(args)
	case "reset":
		return d.cmdReset(args)

	case "help", "h", "?":
		return d.cmdHelp(args)

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause at the CPU's current
// PC, and why: an enabled breakpoint hit, or none.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.CPU.Regs.PC

	if bp := d.Breakpoints.GetBreakpoint(pc); bp != nil {
		if !bp.Enabled {
			return false, ""
		}
		bp.HitCount++
		if bp.Temporary {
			_ = d.Breakpoints.DeleteBreakpoint(bp.ID)
		}
		return true, fmt.Sprintf("breakpoint %d", bp.ID)
	}

	return false, ""
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Printf writes formatted output to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

// Println writes a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	d.Output.WriteString(fmt.Sprintln(args...))
}

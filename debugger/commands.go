package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

// Command handler implementations

// cmdRun restarts the CPU from a clean state and marks it running.
func (d *Debugger) cmdRun(args []string) error {
	d.CPU.Reboot()
	d.Running = true
	d.Println("Starting execution...")
	return nil
}

// cmdContinue resumes execution from the current PC.
func (d *Debugger) cmdContinue(args []string) error {
	d.Running = true
	d.Println("Continuing...")
	return nil
}

// cmdStep executes a single instruction and reports the new PC.
func (d *Debugger) cmdStep(args []string) error {
	ev, err := d.CPU.Step()
	if err != nil {
		return err
	}
	if ev == gekko.EventBreak {
		d.Printf("Hit break opcode at PC=0x%08X\n", d.CPU.Regs.PC)
	}
	d.Printf("PC=0x%08X\n", d.CPU.Regs.PC)
	return nil
}

// cmdBreak sets a breakpoint at the given address.
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.AddBreakpoint(address, false, "")
	d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

// cmdTBreak sets a temporary breakpoint (auto-deleted after its first hit).
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.AddBreakpoint(address, true, "")
	d.Printf("Temporary breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

// cmdDelete deletes a breakpoint by ID, or all breakpoints if no ID given.
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

// cmdEnable re-enables a disabled breakpoint.
func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.EnableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

// cmdDisable disables a breakpoint without deleting it.
func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DisableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdPrint prints a single register: "print r3", "print fr0", "print pc",
// "print lr", "print ctr", "print xer", "print cr".
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <r N|fr N|pc|lr|ctr|xer|cr>")
	}

	name := strings.ToLower(args[0])
	switch {
	case name == "pc":
		d.Printf("pc = 0x%08X\n", d.CPU.Regs.PC)
	case name == "lr":
		d.Printf("lr = 0x%08X\n", d.CPU.Regs.LR)
	case name == "ctr":
		d.Printf("ctr = 0x%08X\n", d.CPU.Regs.CTR)
	case name == "xer":
		d.Printf("xer = 0x%08X\n", d.CPU.Regs.XER)
	case name == "cr":
		d.Printf("cr = %02X %02X %02X %02X %02X %02X %02X %02X\n", d.CPU.Regs.CR[0], d.CPU.Regs.CR[1],
			d.CPU.Regs.CR[2], d.CPU.Regs.CR[3], d.CPU.Regs.CR[4], d.CPU.Regs.CR[5], d.CPU.Regs.CR[6], d.CPU.Regs.CR[7])
	case strings.HasPrefix(name, "fr"):
		n, err := strconv.Atoi(name[2:])
		if err != nil || n < 0 || n > 31 {
			return fmt.Errorf("invalid FPR: %s", args[0])
		}
		ps0, ps1 := d.CPU.Regs.FPRPaired(uint8(n))
		d.Printf("fr%d = %v (double=%v, ps0=%v, ps1=%v)\n", n, d.CPU.Regs.FPRBits(uint8(n)), d.CPU.Regs.FPRDouble(uint8(n)), ps0, ps1)
	case strings.HasPrefix(name, "r"):
		n, err := strconv.Atoi(name[1:])
		if err != nil || n < 0 || n > 31 {
			return fmt.Errorf("invalid GPR: %s", args[0])
		}
		v := d.CPU.GetGPR(uint8(n))
		d.Printf("r%d = 0x%08X (%d)\n", n, v, int32(v))
	default:
		return fmt.Errorf("unknown register: %s", args[0])
	}
	return nil
}

// cmdExamine dumps a range of memory: "x <address> [count]" (count in
// 32-bit words, default 4).
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x <address> [word-count]")
	}

	addr, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	count := 4
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid word count: %s", args[1])
		}
		count = n
	}

	for i := 0; i < count; i++ {
		a := addr + uint32(i*4)
		v, err := d.CPU.Mem.ReadU32(a)
		if err != nil {
			return err
		}
		d.Printf("0x%08X: 0x%08X\n", a, v)
	}
	return nil
}

// cmdInfo prints register-file or breakpoint-list summaries:
// "info registers", "info breakpoints".
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints>")
	}

	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		d.printRegisters()
	case "breakpoints", "break", "b":
		d.printBreakpoints()
	default:
		return fmt.Errorf("unknown info topic: %s", args[0])
	}
	return nil
}

func (d *Debugger) printRegisters() {
	for i := 0; i < 32; i += 4 {
		d.Printf("r%-2d=0x%08X  r%-2d=0x%08X  r%-2d=0x%08X  r%-2d=0x%08X\n",
			i, d.CPU.GetGPR(uint8(i)), i+1, d.CPU.GetGPR(uint8(i+1)),
			i+2, d.CPU.GetGPR(uint8(i+2)), i+3, d.CPU.GetGPR(uint8(i+3)))
	}
	d.Printf("pc=0x%08X lr=0x%08X ctr=0x%08X xer=0x%08X\n",
		d.CPU.Regs.PC, d.CPU.Regs.LR, d.CPU.Regs.CTR, d.CPU.Regs.XER)
}

func (d *Debugger) printBreakpoints() {
	bps := d.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		d.Println("No breakpoints")
		return
	}
	for _, bp := range bps {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		d.Printf("%d: 0x%08X (%s, hits=%d)\n", bp.ID, bp.Address, status, bp.HitCount)
	}
}

// cmdSet writes a GPR: "set r3 0x10".
func (d *Debugger) cmdSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <r N> <value>")
	}

	name := strings.ToLower(args[0])
	if !strings.HasPrefix(name, "r") {
		return fmt.Errorf("set only supports GPRs (r0-r31): %s", args[0])
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 || n > 31 {
		return fmt.Errorf("invalid GPR: %s", args[0])
	}

	value, err := d.ResolveAddress(args[1])
	if err != nil {
		return fmt.Errorf("invalid value: %s", args[1])
	}

	d.CPU.SetGPR(uint8(n), value)
	d.Printf("r%d = 0x%08X\n", n, value)
	return nil
}

// cmdReset reboots the CPU without leaving the debugger.
func (d *Debugger) cmdReset(args []string) error {
	d.CPU.Reboot()
	d.Running = false
	d.Println("CPU reset")
	return nil
}

// cmdHelp lists available commands.
func (d *Debugger) cmdHelp(args []string) error {
	d.Println(`Commands:
  run, r                  Reboot the CPU and start execution
  continue, c             Continue execution
  step, s, si             Execute a single instruction
  break, b <addr>         Set a breakpoint
  tbreak, tb <addr>       Set a temporary (one-shot) breakpoint
  delete, d [id]          Delete a breakpoint (or all, with no id)
  enable <id>             Re-enable a disabled breakpoint
  disable <id>            Disable a breakpoint without deleting it
  print, p <reg>          Print a register (r0-r31, fr0-fr31, pc, lr, ctr, xer, cr)
  x <addr> [count]        Dump count 32-bit words starting at addr
  info registers          Show all GPRs and the special registers
  info breakpoints        List breakpoints
  set <r N> <value>       Write a GPR
  reset                   Reboot the CPU
  help, h, ?              Show this message`)
	return nil
}

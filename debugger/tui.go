package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

// TUI is the full-screen tcell/tview front end for the debugger.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	DisassemblyView *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	MemoryAddress uint32
}

// NewTUI creates a text user interface driving dbg.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{Debugger: dbg}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.App = tview.NewApplication()

	t.RegisterView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.DisassemblyView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.BreakpointsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	t.LeftPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(t.MemoryView, 0, 2, false)

	t.RightPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 0, 2, false).
		AddItem(t.BreakpointsView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.LeftPanel, 0, 2, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().
		AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF9:
			t.executeCommand(fmt.Sprintf("break 0x%08X", t.Debugger.CPU.Regs.PC))
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Debugger.Output.Reset()
	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}

	if t.Debugger.Running {
		for t.Debugger.Running {
			if shouldBreak, reason := t.Debugger.ShouldBreak(); shouldBreak {
				t.Debugger.Running = false
				t.WriteOutput(fmt.Sprintf("Stopped: %s at PC=0x%08X\n", reason, t.Debugger.CPU.Regs.PC))
				break
			}
			ev, stepErr := t.Debugger.CPU.Step()
			if stepErr != nil {
				t.WriteOutput(fmt.Sprintf("[red]Runtime error:[white] %v\n", stepErr))
				t.Debugger.Running = false
				break
			}
			if ev == gekko.EventBreak {
				t.Debugger.Running = false
				t.WriteOutput(fmt.Sprintf("Break opcode hit at PC=0x%08X\n", t.Debugger.CPU.Regs.PC))
				break
			}
		}
	}

	t.RefreshAll()
}

// WriteOutput appends text to the output panel.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from current CPU state.
func (t *TUI) RefreshAll() {
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.UpdateDisassemblyView()
	t.UpdateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()
	regs := &t.Debugger.CPU.Regs

	var lines []string
	for i := 0; i < 32; i += 4 {
		lines = append(lines, fmt.Sprintf("r%-2d: 0x%08X  r%-2d: 0x%08X  r%-2d: 0x%08X  r%-2d: 0x%08X",
			i, regs.GetGPR(uint8(i)), i+1, regs.GetGPR(uint8(i+1)),
			i+2, regs.GetGPR(uint8(i+2)), i+3, regs.GetGPR(uint8(i+3))))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("pc: 0x%08X  lr: 0x%08X  ctr: 0x%08X", regs.PC, regs.LR, regs.CTR))
	lines = append(lines, fmt.Sprintf("xer: 0x%08X", regs.XER))
	lines = append(lines, fmt.Sprintf("cr:  %X %X %X %X %X %X %X %X",
		regs.CR[0], regs.CR[1], regs.CR[2], regs.CR[3], regs.CR[4], regs.CR[5], regs.CR[6], regs.CR[7]))
	lines = append(lines, fmt.Sprintf("Counter: %d", t.Debugger.CPU.Counter))

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()

	addr := t.MemoryAddress
	if addr == 0 {
		addr = t.Debugger.CPU.Regs.PC
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]Address: 0x%08X[white]", addr))

	for row := 0; row < MemoryDisplayRows; row++ {
		rowAddr := addr + uint32(row*MemoryDisplayColumns)

		line := fmt.Sprintf("0x%08X: ", rowAddr)
		var hexBytes []string
		var asciiBytes []byte

		for col := 0; col < MemoryDisplayColumns; col++ {
			byteAddr := rowAddr + uint32(col)
			b, err := t.Debugger.CPU.Mem.ReadU8(byteAddr)
			if err != nil {
				hexBytes = append(hexBytes, "??")
				asciiBytes = append(asciiBytes, '.')
				continue
			}
			hexBytes = append(hexBytes, fmt.Sprintf("%02X", b))
			if b >= 32 && b < 127 {
				asciiBytes = append(asciiBytes, b)
			} else {
				asciiBytes = append(asciiBytes, '.')
			}
		}

		line += strings.Join(hexBytes, " ") + "  " + string(asciiBytes)
		lines = append(lines, line)
	}

	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateDisassemblyView() {
	t.DisassemblyView.Clear()

	pc := t.Debugger.CPU.Regs.PC
	startAddr := pc - uint32(CodeContextLinesBeforeCompact*4)
	if startAddr > pc {
		startAddr = t.Debugger.CPU.Mem.Base()
	}

	var lines []string
	total := CodeContextLinesBeforeCompact + CodeContextLinesAfterCompact
	for i := 0; i < total; i++ {
		addr := startAddr + uint32(i*4)

		word, err := t.Debugger.CPU.Mem.ReadU32(addr)
		if err != nil {
			continue
		}

		marker := "  "
		color := "white"
		if addr == pc {
			marker = "->"
			color = "yellow"
		}
		if t.Debugger.Breakpoints.GetBreakpoint(addr) != nil {
			marker = "* "
		}

		mnemonic := "???"
		if inst, ok := gekko.Decode(word); ok {
			mnemonic = inst.Op.String()
		}

		lines = append(lines, fmt.Sprintf("[%s]%s 0x%08X: %08X  %s[white]", color, marker, addr, word, mnemonic))
	}

	t.DisassemblyView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateBreakpointsView() {
	t.BreakpointsView.Clear()

	var lines []string
	bps := t.Debugger.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		lines = append(lines, "[yellow]No breakpoints set[white]")
	}
	for _, bp := range bps {
		status := "enabled"
		color := "green"
		if !bp.Enabled {
			status = "disabled"
			color = "red"
		}
		lines = append(lines, fmt.Sprintf("  %d: [%s]%s[white] 0x%08X (hits: %d)", bp.ID, color, status, bp.Address, bp.HitCount))
	}

	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]Gekko debugger[white]\n")
	t.WriteOutput("Press F1 for help, F5 to continue, F9 to set a breakpoint at PC, F11 to step\n")
	t.WriteOutput("Type 'help' for command list\n\n")

	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop tears down the TUI application.
func (t *TUI) Stop() {
	t.App.Stop()
}

package debugger

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

func newTestTUI(t *testing.T) *TUI {
	t.Helper()
	cpu := gekko.NewCPU(256)
	dbg := NewDebugger(cpu)
	tui := NewTUI(dbg)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	tui.App.SetScreen(screen)

	return tui
}

// TestExecuteCommandAsync verifies executeCommand returns promptly when run
// from a goroutine, the same way the real TUI drives it from its input
// callback.
func TestExecuteCommandAsync(t *testing.T) {
	tui := newTestTUI(t)

	done := make(chan bool, 1)
	go func() {
		tui.executeCommand("help")
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("executeCommand blocked for more than 2 seconds - deadlock detected")
	}
}

// TestHandleCommandAsync verifies handleCommand itself never blocks, even
// though it triggers command execution and a full panel refresh.
func TestHandleCommandAsync(t *testing.T) {
	tui := newTestTUI(t)
	tui.CommandInput.SetText("help")

	done := make(chan bool, 1)
	go func() {
		tui.handleCommand(tcell.KeyEnter)
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("handleCommand blocked for more than 100ms - should return immediately")
	}
}

// Command gekko runs the Gekko interpreter: load a flat or segmented
// binary image into a simulated core and either execute it directly,
// drive it from a line-mode or full-screen debugger, or expose it over
// the session HTTP+WebSocket API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lookbusy1344/gekko-interpreter/api"
	"github.com/lookbusy1344/gekko-interpreter/config"
	"github.com/lookbusy1344/gekko-interpreter/debugger"
	"github.com/lookbusy1344/gekko-interpreter/gekko"
	"github.com/lookbusy1344/gekko-interpreter/loader"
)

// Version information, overridable at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")

		romPath  = flag.String("rom", "", "Path to a flat binary image to load")
		baseAddr = flag.String("base", "", "Base address to load the image at (hex, e.g. 0x80003100; default from config)")
		ramSize  = flag.Uint("ram", 0, "RAM size in bytes (default from config)")
		entry    = flag.String("entry", "", "Entry point address (hex or decimal; default is the base address)")
		breakAt  = flag.String("break", "", "Patch a break opcode at this address before running")
		confPath = flag.String("config", "", "Path to a TOML config file (default: platform config path)")

		debugMode = flag.Bool("debug", false, "Start in line-mode debugger")
		tuiMode   = flag.Bool("tui", false, "Start in full-screen TUI debugger")

		apiServer = flag.Bool("api-server", false, "Start the HTTP/WebSocket session API server")
		apiPort   = flag.Int("port", 8732, "Session API server port (used with -api-server)")

		verbose = flag.Bool("verbose", false, "Verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("gekko %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*confPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *apiServer {
		runAPIServer(*apiPort)
		return
	}

	if *romPath == "" {
		printHelp()
		os.Exit(0)
	}

	base, err := resolveBaseAddress(*baseAddr, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	size := int(*ramSize)
	if size <= 0 {
		size = int(cfg.Execution.RAMSize)
	}

	cpu := gekko.NewCPUAt(base, size)

	if *verbose {
		fmt.Printf("Loading %s at 0x%08X (%d bytes RAM)\n", *romPath, base, size)
	}
	if err := loader.LoadFlat(cpu, *romPath, base); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	if *entry != "" {
		entryAddr, err := parseAddress(*entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid entry point: %v\n", err)
			os.Exit(1)
		}
		cpu.Regs.PC = entryAddr
	}

	if *breakAt != "" {
		breakAddr, err := parseAddress(*breakAt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid break address: %v\n", err)
			os.Exit(1)
		}
		if err := loader.Patch(cpu, breakAddr, gekko.OpcodeBreak); err != nil {
			fmt.Fprintf(os.Stderr, "Error patching break opcode: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *tuiMode:
		dbg := debugger.NewDebugger(cpu)
		if err := debugger.RunTUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	case *debugMode:
		dbg := debugger.NewDebugger(cpu)
		fmt.Println("Gekko Debugger - Type 'help' for commands")
		fmt.Printf("Image loaded: %s\n", *romPath)
		fmt.Println()
		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
	default:
		runDirect(cpu, cfg, *verbose)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func resolveBaseAddress(flagValue string, cfg *config.Config) (uint32, error) {
	if flagValue != "" {
		return parseAddress(flagValue)
	}
	return config.ParseBaseAddress(cfg.Execution.BaseAddress)
}

func parseAddress(s string) (uint32, error) {
	var addr uint32
	if _, err := fmt.Sscanf(s, "0x%x", &addr); err == nil {
		return addr, nil
	}
	if _, err := fmt.Sscanf(s, "%d", &addr); err == nil {
		return addr, nil
	}
	return 0, fmt.Errorf("invalid address %q", s)
}

// runDirect steps the core to completion (a Break event, a runtime error,
// or the configured cycle cap) and prints a DumpState-style summary.
func runDirect(cpu *gekko.CPU, cfg *config.Config, verbose bool) {
	if verbose {
		fmt.Println("Starting execution...")
	}

	ev, err := cpu.RunUntilEventLimited(cfg.Execution.MaxCycles)

	fmt.Println(cpu.DumpState())

	if err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error at PC=0x%08X: %v\n", cpu.Regs.PC, err)
		os.Exit(1)
	}
	if ev == gekko.EventBreak {
		fmt.Println("Stopped on break opcode")
	} else {
		fmt.Printf("Stopped after reaching the %d cycle limit\n", cfg.Execution.MaxCycles)
	}
}

// runAPIServer starts the session API server and blocks until it receives
// SIGINT/SIGTERM, then shuts down gracefully.
func runAPIServer(port int) {
	server := api.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down API server...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("API server stopped")
			os.Exit(0)
		})
	}

	monitor := api.NewProcessMonitor(performShutdown)
	monitor.Start()

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	performShutdown()
}

func printHelp() {
	fmt.Printf(`gekko %s

Usage: gekko [options] -rom <image-file>
       gekko -api-server [-port N]

Options:
  -help              Show this help message
  -version           Show version information
  -rom FILE          Path to a flat binary image to load
  -base ADDR         Base address to load the image at (hex, default from config)
  -ram N             RAM size in bytes (default from config)
  -entry ADDR        Entry point address (hex or decimal, default is the base address)
  -break ADDR        Patch a break opcode at this address before running
  -config FILE       Path to a TOML config file (default: platform config path)
  -debug             Start in line-mode debugger
  -tui               Start in full-screen TUI debugger
  -api-server        Start the HTTP/WebSocket session API server (no image required)
  -port N            Session API server port (default: 8732, used with -api-server)
  -verbose           Enable verbose output

Examples:
  # Run an image directly until it breaks or errors
  gekko -rom spyro06.bin

  # Run with a custom base address and entry point
  gekko -rom spyro06.bin -base 0x80003100 -entry 0x80003200

  # Patch a break opcode to halt at a chosen PC, then inspect it
  gekko -rom spyro06.bin -break 0x80004000 -debug

  # Start the full-screen debugger
  gekko -rom spyro06.bin -tui

  # Start the session API server for an external front end
  gekko -api-server -port 9000

Debugger Commands (when in -debug or -tui mode):
  run, r             Reboot and start execution
  continue, c        Continue execution
  step, s            Execute a single instruction
  break ADDR         Set a breakpoint
  print REG          Print a register
  info registers     Show all registers
  help               Show debugger help
`, Version)
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/rv64ic-emulator/config"
	"github.com/lookbusy1344/rv64ic-emulator/cpu"
	"github.com/lookbusy1344/rv64ic-emulator/debugger"
	"github.com/lookbusy1344/rv64ic-emulator/loader"
	"github.com/lookbusy1344/rv64ic-emulator/trace"
)

// Version information - can be overridden at build time with:
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
		debugMode   = flag.Bool("debug", false, "Start in line-oriented debugger mode")
		tuiMode     = flag.Bool("tui", false, "Use TUI (Text User Interface) debugger")
		configPath  = flag.String("config", "", "Path to config file (default: platform config dir)")
		verboseMode = flag.Bool("verbose", false, "Print each instruction before it executes")
		enableTrace = flag.Bool("trace", false, "Write an instruction trace to -trace-file")
		traceFile   = flag.String("trace-file", "", "Trace output file (default: from config)")
		traceFilter = flag.String("trace-filter", "", "Filter trace by registers (comma-separated ABI names, e.g. a0,a1,sp)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("rv64ic-emulator %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	imagePath := flag.Arg(0)

	path := *configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Loading image: %s\n", imagePath)
	}

	mem, entry, err := loader.Load(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Loaded %d bytes, entry=0x%x\n", len(mem), entry)
	}

	c := cpu.New(mem, entry)

	if *verboseMode || *enableTrace || cfg.Execution.EnableTrace {
		w := os.Stderr
		var closer func()
		if *enableTrace || cfg.Execution.EnableTrace {
			w, closer = openTraceSink(*traceFile, cfg)
		}
		if closer != nil {
			defer closer()
		}
		filter := *traceFilter
		maxEntries := cfg.Trace.MaxEntries
		if *verboseMode && !*enableTrace {
			maxEntries = 0
		}
		c.Trace = trace.New(w, filter, maxEntries)
	}

	switch {
	case *tuiMode:
		dbg := debugger.NewDebugger(c)
		if err := debugger.RunTUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
	case *debugMode:
		dbg := debugger.NewDebugger(c)
		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := c.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
			os.Exit(1)
		}
	}
}

// openTraceSink resolves the trace destination: -trace-file, else the
// config's configured output file, else stdout.
func openTraceSink(explicit string, cfg *config.Config) (*os.File, func()) {
	path := explicit
	if path == "" {
		path = cfg.Trace.OutputFile
	}
	if path == "" {
		return os.Stdout, nil
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trace file %s: %v (tracing to stdout)\n", path, err)
		return os.Stdout, nil
	}
	return f, func() { f.Close() }
}

func printHelp() {
	fmt.Println("rv64ic-emulator: an RV64IC user-mode interpreter")
	fmt.Println()
	fmt.Println("Usage: rv64ic-emulator [flags] <image>")
	fmt.Println()
	fmt.Println("<image> is an ELF file or a flat binary of RV64IC machine code.")
	fmt.Println()
	flag.PrintDefaults()
}

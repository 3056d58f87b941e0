// Package debugger provides interactive inspection of a running cpu.CPU:
// breakpoints, single-stepping, register/memory inspection, and both a
// line-oriented CLI and a tcell/tview TUI front end.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rv64ic-emulator/cpu"
	"github.com/lookbusy1344/rv64ic-emulator/register"
)

// Debugger wraps a cpu.CPU with breakpoints, stepping state, and a
// command dispatcher shared by the CLI and TUI front ends.
type Debugger struct {
	CPU *cpu.CPU

	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running  bool
	StepMode StepMode
	// StepOverPC is the PC single-step-over stops at: the instruction
	// right after the jal/jalr that started the step.
	StepOverPC uint64

	// LastErr is the most recent runtime error, if execution halted on one.
	LastErr error

	LastCommand string
	Output      strings.Builder
}

type StepMode int

const (
	StepNone StepMode = iota
	StepSingle
	StepOver
)

func NewDebugger(c *cpu.CPU) *Debugger {
	return &Debugger{
		CPU:         c,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
	}
}

// ResolveAddress parses a hex ("0x...") or decimal address string.
func ResolveAddress(addrStr string) (uint64, error) {
	addrStr = strings.TrimSpace(addrStr)
	var addr uint64
	var err error
	if strings.HasPrefix(addrStr, "0x") || strings.HasPrefix(addrStr, "0X") {
		addr, err = strconv.ParseUint(addrStr[2:], 16, 64)
	} else {
		addr, err = strconv.ParseUint(addrStr, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", addrStr)
	}
	return addr, nil
}

// ExecuteCommand parses and runs one debugger command line. An empty line
// repeats the last command, matching the teacher's REPL convention.
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
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s", "si":
		return d.cmdStep(args)
	case "next", "n":
		return d.cmdNext(args)
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
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak reports whether execution should pause before the
// instruction at the CPU's current PC runs.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.CPU.PC()

	switch d.StepMode {
	case StepSingle:
		d.StepMode = StepNone
		return true, "single step"
	case StepOver:
		if pc == d.StepOverPC {
			d.StepMode = StepNone
			return true, "step over complete"
		}
	}

	if bp := d.Breakpoints.ProcessHit(pc); bp != nil {
		return true, fmt.Sprintf("breakpoint %d", bp.ID)
	}

	return false, ""
}

func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

func (d *Debugger) Printf(format string, args ...interface{}) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

func (d *Debugger) Println(args ...interface{}) {
	d.Output.WriteString(fmt.Sprintln(args...))
}

// lookupRegister resolves an ABI or xN register name to its Name.
func lookupRegister(target string) (register.Name, bool) {
	target = strings.ToLower(target)
	if strings.HasPrefix(target, "x") {
		if n, err := strconv.Atoi(target[1:]); err == nil && n >= 0 && n < 32 {
			return register.Name(n), true
		}
	}
	for i := 0; i < 32; i++ {
		n := register.Name(i)
		if n.String() == target {
			return n, true
		}
	}
	return 0, false
}

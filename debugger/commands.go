package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rv64ic-emulator/register"
)

func (d *Debugger) cmdContinue(args []string) error {
	d.Running = true
	d.StepMode = StepNone
	d.Println("Continuing...")
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

// cmdNext steps over jal/jalr: it runs until control returns to the
// instruction after the call, rather than descending into it.
func (d *Debugger) cmdNext(args []string) error {
	// The stop address is always PC+4, the length of a 32-bit jal/jalr;
	// the width of the instruction at PC is not checked. A compressed
	// jump (c.j, c.jr) does not come back to PC+4, so after one the run
	// goes on until a breakpoint or an error stops it.
	d.StepOverPC = d.CPU.PC() + 4
	d.StepMode = StepOver
	d.Running = true
	return nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address>")
	}
	address, err := ResolveAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(address, false)
	d.Printf("Breakpoint %d at 0x%x\n", bp.ID, address)
	return nil
}

func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address>")
	}
	address, err := ResolveAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(address, true)
	d.Printf("Temporary breakpoint %d at 0x%x\n", bp.ID, address)
	return nil
}

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

// cmdPrint prints a register value, or a raw address/immediate.
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <register>")
	}
	target := args[0]
	if n, ok := lookupRegister(target); ok {
		v := d.CPU.Reg(n)
		d.Printf("%s = 0x%x (%d)\n", n, v, int64(v))
		return nil
	}
	addr, err := ResolveAddress(target)
	if err != nil {
		return fmt.Errorf("unknown register or address: %s", target)
	}
	d.Printf("0x%x\n", addr)
	return nil
}

// cmdExamine examines memory at an address. Usage: x[/nu] <address>
// where n is a repeat count and u is a unit size (b/h/w/d).
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x[/nu] <address>\n  n: count, u: unit size (b/h/w/d)")
	}

	count := 1
	unit := byte('w')
	addrArg := args[0]

	if strings.HasPrefix(args[0], "/") {
		spec := args[0][1:]
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		addrArg = args[1]

		i := 0
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			i++
		}
		if i > 0 {
			if n, err := strconv.Atoi(spec[:i]); err == nil {
				count = n
			}
			spec = spec[i:]
		}
		if len(spec) > 0 {
			unit = spec[0]
		}
	}

	address, err := ResolveAddress(addrArg)
	if err != nil {
		return err
	}

	d.Printf("0x%x:", address)
	for i := 0; i < count; i++ {
		value, width, err := d.CPU.ReadMemUnit(address, unit)
		if err != nil {
			return err
		}
		d.Printf(" 0x%0*x", width*2, value)
		address += uint64(width)
	}
	d.Println()
	return nil
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints>")
	}
	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

func (d *Debugger) showRegisters() error {
	d.Println("Registers:")
	for i := 0; i < 32; i++ {
		n := register.Name(i)
		v := d.CPU.Reg(n)
		d.Printf("  x%-2d (%-4s) = 0x%016x (%d)\n", i, n, v, int64(v))
	}
	d.Printf("  pc           = 0x%016x\n", d.CPU.PC())
	return nil
}

func (d *Debugger) showBreakpoints() error {
	breakpoints := d.Breakpoints.GetAllBreakpoints()
	if len(breakpoints) == 0 {
		d.Println("No breakpoints")
		return nil
	}
	d.Println("Breakpoints:")
	for _, bp := range breakpoints {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}
		d.Printf("  %d: 0x%x %s%s (hit %d times)\n", bp.ID, bp.Address, status, temp, bp.HitCount)
	}
	return nil
}

// cmdSet modifies a register's value.
func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 || args[1] != "=" {
		return fmt.Errorf("usage: set <register> = <value>")
	}

	n, ok := lookupRegister(args[0])
	if !ok {
		return fmt.Errorf("invalid register: %s", args[0])
	}

	value, err := ResolveAddress(args[2])
	if err != nil {
		return err
	}

	d.CPU.SetReg(n, value)
	d.Printf("Register %s set to 0x%x\n", n, value)
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("RV64IC Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  continue (c)      - Continue execution")
	d.Println("  step (s, si)      - Execute single instruction")
	d.Println("  next (n)          - Step over jal/jalr calls")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr>  - Set breakpoint")
	d.Println("  tbreak (tb) <addr>- Set temporary breakpoint")
	d.Println("  delete (d) [id]   - Delete breakpoint(s)")
	d.Println("  enable <id>       - Enable breakpoint")
	d.Println("  disable <id>      - Disable breakpoint")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <reg>   - Print a register")
	d.Println("  x[/nu] <addr>     - Examine memory")
	d.Println("  info (i) <what>   - Show registers or breakpoints")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <reg> = <val> - Modify a register")
	d.Println()
	d.Println("  help (h, ?)       - Show this help")
	return nil
}

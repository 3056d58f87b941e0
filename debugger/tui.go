package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/rv64ic-emulator/cpu"
	"github.com/lookbusy1344/rv64ic-emulator/isa"
	"github.com/lookbusy1344/rv64ic-emulator/register"
)

// TUI is the full-screen debugger front end: registers, memory,
// disassembly, and breakpoints panels plus a scrolling output log and a
// command input line.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex
	RightPanel *tview.Flex

	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	DisassemblyView *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	MemoryAddress uint64
}

func NewTUI(debugger *Debugger) *TUI {
	t := &TUI{
		Debugger: debugger,
		App:      tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightTop := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 18, 0, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.RightPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(rightTop, 0, 3, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
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
		case tcell.KeyF10:
			t.executeCommand("next")
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
		t.Debugger.runUntilStop()
		if t.Debugger.LastErr != nil {
			t.WriteOutput(fmt.Sprintf("[red]Runtime error:[white] %v\n", t.Debugger.LastErr))
		}
	}

	t.RefreshAll()
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

func (t *TUI) RefreshAll() {
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.UpdateDisassemblyView()
	t.UpdateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()
	c := t.Debugger.CPU

	var lines []string
	for i := 0; i < 32; i += 2 {
		n1, n2 := register.Name(i), register.Name(i+1)
		a := fmt.Sprintf("x%-2d(%4s): 0x%016x", i, n1, c.Reg(n1))
		b := fmt.Sprintf("x%-2d(%4s): 0x%016x", i+1, n2, c.Reg(n2))
		lines = append(lines, a+"  "+b)
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("pc: 0x%016x", c.PC()))

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()

	addr := t.MemoryAddress
	if addr == 0 {
		addr = t.Debugger.CPU.PC()
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]Address: 0x%x[white]", addr))

	for row := 0; row < 12; row++ {
		rowAddr := addr + uint64(row*16)
		line := fmt.Sprintf("0x%x: ", rowAddr)

		var hexBytes []string
		var ascii []byte
		for col := 0; col < 16; col++ {
			v, _, err := t.Debugger.CPU.ReadMemUnit(rowAddr+uint64(col), 'b')
			if err != nil {
				hexBytes = append(hexBytes, "??")
				ascii = append(ascii, '.')
				continue
			}
			b := byte(v)
			hexBytes = append(hexBytes, fmt.Sprintf("%02x", b))
			if b >= 32 && b < 127 {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
		}
		line += strings.Join(hexBytes, " ") + "  " + string(ascii)
		lines = append(lines, line)
	}

	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

// UpdateDisassemblyView decodes and renders instructions around the
// current PC, reusing the same isa.Decode16/Decode32 path the CPU uses.
func (t *TUI) UpdateDisassemblyView() {
	t.DisassemblyView.Clear()
	c := t.Debugger.CPU
	pc := c.PC()

	var lines []string
	addr := pc
	if addr >= 16 {
		addr -= 16
	} else {
		addr = 0
	}

	for i := 0; i < 16 && len(lines) < 16; i++ {
		lo, _, err := c.ReadMemUnit(addr, 'h')
		if err != nil {
			break
		}
		inst, needMore, err := isa.Decode16(uint16(lo))
		width := uint64(2)
		if err == nil && needMore {
			hi, _, herr := c.ReadMemUnit(addr+2, 'h')
			if herr == nil {
				word := uint32(lo) | uint32(hi)<<16
				inst, err = isa.Decode32(word)
				width = 4
			}
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

		var rendered string
		if err != nil {
			rendered = fmt.Sprintf("0x%x: <decode error: %v>", addr, err)
		} else {
			rendered = cpu.Render(inst, addr)
		}

		lines = append(lines, fmt.Sprintf("[%s]%s %s[white]", color, marker, rendered))
		addr += width
	}

	t.DisassemblyView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateBreakpointsView() {
	t.BreakpointsView.Clear()

	bps := t.Debugger.Breakpoints.GetAllBreakpoints()
	var lines []string
	if len(bps) == 0 {
		lines = append(lines, "[yellow]No breakpoints set[white]")
	}
	for _, bp := range bps {
		status, color := "enabled", "green"
		if !bp.Enabled {
			status, color = "disabled", "red"
		}
		line := fmt.Sprintf("  %d: [%s]%s[white] 0x%x (hits: %d)", bp.ID, color, status, bp.Address, bp.HitCount)
		lines = append(lines, line)
	}

	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI application.
func (t *TUI) Run() error {
	t.RefreshAll()

	t.WriteOutput("[green]RV64IC Emulator Debugger[white]\n")
	t.WriteOutput("Press F1 for help, F5 to continue, F10 to step over, F11 to step\n")
	t.WriteOutput("Type 'help' for command list\n\n")

	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

func (t *TUI) Stop() {
	t.App.Stop()
}

// Package cpu implements the fetch-decode-execute loop against a guest
// register file, program counter, and a host-resident flat memory image.
package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/lookbusy1344/rv64ic-emulator/isa"
	"github.com/lookbusy1344/rv64ic-emulator/register"
)

// StackSize is the size, in bytes, of the host-allocated guest stack
// created at CPU construction.
const StackSize = 4096

// Tracer receives one rendered instruction line per step, along with a way
// to resolve register values for whatever subset it chooses to report.
// *trace.InstructionTrace satisfies this.
type Tracer interface {
	Line(rendered string, regFn func(register.Name) uint64)
}

// CPU holds the guest register file, program counter, and the guest's
// flat memory image. Memory is borrowed, not owned: the caller of Run must
// keep it alive and at a stable address for the CPU's entire lifetime.
type CPU struct {
	regs [32]uint64
	pc   uint64
	// oldPC is the PC at fetch time for the instruction currently
	// executing, used by PC-relative branches and Auipc.
	oldPC uint64

	mem   []byte
	stack []byte

	// Trace, if non-nil, receives a rendered form of each instruction
	// before it executes (verbose mode).
	Trace Tracer
}

// New constructs a CPU whose PC starts at entry, an address inside mem.
// Register x2 (sp) is initialized to one past the end of a freshly
// allocated guest stack; the guest stack grows downward from there.
func New(mem []byte, entry uint64) *CPU {
	c := &CPU{
		mem:   mem,
		pc:    entry,
		stack: make([]byte, StackSize),
	}
	c.regs[register.X2] = c.stackBase() + StackSize
	return c
}

// stackBase returns a synthetic address for the guest stack buffer, placed
// immediately past the end of guest memory so it never aliases a loaded
// program's addresses.
func (c *CPU) stackBase() uint64 {
	return uint64(len(c.mem))
}

// PC returns the current program counter.
func (c *CPU) PC() uint64 { return c.pc }

// Reg reads register n. Register 0 always reads as 0.
func (c *CPU) Reg(n register.Name) uint64 {
	if n == register.X0 {
		return 0
	}
	return c.regs[n]
}

// SetReg writes register n. Writes to register 0 are discarded.
func (c *CPU) SetReg(n register.Name, v uint64) {
	if n == register.X0 {
		return
	}
	c.regs[n] = v
}

// Run executes instructions until Step returns an error: a decode error or
// an out-of-bounds memory access. In practice most guest programs never
// return from Run: the Ecall trap forwards exit syscalls straight to the
// host kernel, which terminates this process before the loop gets a chance
// to iterate again. There is no graceful halt, only an unrecoverable error
// or a syscall that does not return.
func (c *CPU) Run() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Step fetches, decodes, and executes exactly one instruction.
func (c *CPU) Step() error {
	c.oldPC = c.pc

	lo, err := c.readU16(c.pc)
	if err != nil {
		return err
	}

	inst, needMore, err := isa.Decode16(lo)
	if err != nil {
		return err
	}

	if needMore {
		hi, err := c.readU16(c.pc + 2)
		if err != nil {
			return err
		}
		word := uint32(lo) | uint32(hi)<<16
		c.pc += 4
		inst, err = isa.Decode32(word)
		if err != nil {
			return err
		}
	} else {
		c.pc += 2
	}

	if c.Trace != nil {
		c.Trace.Line(Render(inst, c.oldPC), c.Reg)
	}

	return c.execute(inst)
}

func (c *CPU) readU16(addr uint64) (uint16, error) {
	b, err := c.memSlice(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// memSlice resolves addr (which may land in guest memory or in the
// synthetic guest stack region) to a byte slice of the given length.
func (c *CPU) memSlice(addr uint64, length int) ([]byte, error) {
	base := c.stackBase()
	if addr >= base {
		off := addr - base
		if off+uint64(length) > uint64(len(c.stack)) {
			return nil, fmt.Errorf("stack access out of bounds: addr=0x%x len=%d", addr, length)
		}
		return c.stack[off : off+uint64(length)], nil
	}
	if addr+uint64(length) > uint64(len(c.mem)) {
		return nil, fmt.Errorf("memory access out of bounds: addr=0x%x len=%d", addr, length)
	}
	return c.mem[addr : addr+uint64(length)], nil
}

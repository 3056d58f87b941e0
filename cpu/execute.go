package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/lookbusy1344/rv64ic-emulator/bits"
	"github.com/lookbusy1344/rv64ic-emulator/isa"
	"github.com/lookbusy1344/rv64ic-emulator/register"
	"golang.org/x/sys/unix"
)

// execute dispatches one decoded instruction. All arithmetic wraps modulo
// 2^64 via Go's unsigned overflow semantics unless a comparison explicitly
// reinterprets a register as signed.
func (c *CPU) execute(inst isa.Instruction) error {
	switch inst.Kind {
	case isa.KindR:
		c.execR(inst)
	case isa.KindI:
		return c.execI(inst)
	case isa.KindS:
		return c.execS(inst)
	case isa.KindB:
		c.execB(inst)
	case isa.KindU:
		c.execU(inst)
	case isa.KindJal:
		c.SetReg(inst.Rd, c.pc)
		c.pc = uint64(int64(c.oldPC) + int64(inst.ImmS))
	case isa.KindEcall:
		return c.execEcall()
	default:
		return fmt.Errorf("cpu: unhandled instruction kind %v", inst.Kind)
	}
	return nil
}

func (c *CPU) execR(inst isa.Instruction) {
	rs1, rs2 := c.Reg(inst.Rs1), c.Reg(inst.Rs2)
	shamt := rs2 & 0x3F
	var result uint64
	switch inst.RFunct {
	case isa.Add:
		result = rs1 + rs2
	case isa.Sub:
		result = rs1 - rs2
	case isa.Sll:
		result = rs1 << shamt
	case isa.Slt:
		result = boolToU64(int64(rs1) < int64(rs2))
	case isa.Sltu:
		result = boolToU64(rs1 < rs2)
	case isa.Xor:
		result = rs1 ^ rs2
	case isa.Srl:
		result = rs1 >> shamt
	case isa.Sra:
		result = uint64(int64(rs1) >> shamt)
	case isa.Or:
		result = rs1 | rs2
	case isa.And:
		result = rs1 & rs2
	}
	c.SetReg(inst.Rd, result)
}

func (c *CPU) execI(inst isa.Instruction) error {
	rs1 := c.Reg(inst.Rs1)
	simm := bits.SignExtend12To64U(inst.Imm)
	addr := rs1 + simm

	switch inst.IFunct {
	case isa.Addi:
		c.SetReg(inst.Rd, rs1+simm)
	case isa.Slti:
		c.SetReg(inst.Rd, boolToU64(int64(rs1) < int64(simm)))
	case isa.Sltiu:
		c.SetReg(inst.Rd, boolToU64(rs1 < simm))
	case isa.Xori:
		c.SetReg(inst.Rd, rs1^simm)
	case isa.Ori:
		c.SetReg(inst.Rd, rs1|simm)
	case isa.Andi:
		c.SetReg(inst.Rd, rs1&simm)
	case isa.Slli:
		c.SetReg(inst.Rd, rs1<<(inst.Imm&0x3F))
	case isa.Srli:
		c.SetReg(inst.Rd, rs1>>(inst.Imm&0x3F))
	case isa.Srai:
		c.SetReg(inst.Rd, uint64(int64(rs1)>>(inst.Imm&0x3F)))
	case isa.Lb:
		v, err := c.load(addr, 1)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, bits.SignExtend32To64U(int32(int8(v))))
	case isa.Lh:
		v, err := c.load(addr, 2)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, bits.SignExtend32To64U(int32(int16(v))))
	case isa.Lw:
		v, err := c.load(addr, 4)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, bits.SignExtend32To64U(int32(v)))
	case isa.Ld:
		v, err := c.load(addr, 8)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, v)
	case isa.Lbu:
		v, err := c.load(addr, 1)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, v&0xFF)
	case isa.Lhu:
		v, err := c.load(addr, 2)
		if err != nil {
			return err
		}
		c.SetReg(inst.Rd, v&0xFFFF)
	case isa.Jalr:
		next := c.pc
		c.pc = rs1 + simm
		c.SetReg(inst.Rd, next)
	}
	return nil
}

func (c *CPU) execS(inst isa.Instruction) error {
	rs1, rs2 := c.Reg(inst.Rs1), c.Reg(inst.Rs2)
	addr := rs1 + bits.SignExtend12To64U(inst.Imm)

	var width int
	switch inst.SFunct {
	case isa.Sb:
		width = 1
	case isa.Sh:
		width = 2
	case isa.Sw:
		width = 4
	case isa.Sd:
		width = 8
	}
	return c.store(addr, rs2, width)
}

func (c *CPU) execB(inst isa.Instruction) {
	rs1, rs2 := c.Reg(inst.Rs1), c.Reg(inst.Rs2)
	var taken bool
	switch inst.BFunct {
	case isa.Beq:
		taken = rs1 == rs2
	case isa.Bne:
		taken = rs1 != rs2
	case isa.Blt:
		taken = int64(rs1) < int64(rs2)
	case isa.Bge:
		taken = int64(rs1) >= int64(rs2)
	case isa.Bltu:
		taken = rs1 < rs2
	case isa.Bgeu:
		taken = rs1 >= rs2
	}
	if taken {
		c.pc = uint64(int64(c.oldPC) + int64(inst.ImmS))
	}
}

func (c *CPU) execU(inst isa.Instruction) {
	switch inst.UOp {
	case isa.Lui:
		c.SetReg(inst.Rd, bits.SignExtend32To64U(int32(inst.Imm)))
	case isa.Auipc:
		c.SetReg(inst.Rd, c.oldPC+bits.SignExtend32To64U(int32(inst.Imm)))
	}
}

// execEcall performs the host syscall trap: call number in a7 (x17),
// arguments in a0..a5 (x10..x15), result written back to a0 (x10). No
// translation of numbers or argument semantics is performed — they are
// whatever the host kernel defines.
func (c *CPU) execEcall() error {
	num := c.Reg(register.A7)
	a0 := c.Reg(register.A0)
	a1 := c.Reg(register.A1)
	a2 := c.Reg(register.A2)
	a3 := c.Reg(register.A3)
	a4 := c.Reg(register.A4)
	a5 := c.Reg(register.A5)

	ret, _, errno := unix.Syscall6(uintptr(num), uintptr(a0), uintptr(a1), uintptr(a2), uintptr(a3), uintptr(a4), uintptr(a5))
	if errno != 0 {
		c.SetReg(register.A0, uint64(-int64(errno)))
		return nil
	}
	c.SetReg(register.A0, uint64(ret))
	return nil
}

func (c *CPU) load(addr uint64, width int) (uint64, error) {
	b, err := c.memSlice(addr, width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("cpu: unsupported load width %d", width)
	}
}

func (c *CPU) store(addr uint64, value uint64, width int) error {
	b, err := c.memSlice(addr, width)
	if err != nil {
		return err
	}
	switch width {
	case 1:
		b[0] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(value))
	case 8:
		binary.LittleEndian.PutUint64(b, value)
	default:
		return fmt.Errorf("cpu: unsupported store width %d", width)
	}
	return nil
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

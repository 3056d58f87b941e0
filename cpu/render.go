package cpu

import (
	"fmt"

	"github.com/lookbusy1344/rv64ic-emulator/bits"
	"github.com/lookbusy1344/rv64ic-emulator/isa"
)

// Render produces the debug form of inst, fetched from address pc, printed
// to standard error in verbose mode before execution (spec'd in §4.D) and
// reused by the debugger's disassembly view.
func Render(inst isa.Instruction, pc uint64) string {
	switch inst.Kind {
	case isa.KindR:
		return fmt.Sprintf("0x%08x  %-6s %s, %s, %s", pc, inst.RFunct, inst.Rd, inst.Rs1, inst.Rs2)
	case isa.KindI:
		switch inst.IFunct {
		case isa.Lb, isa.Lh, isa.Lw, isa.Ld, isa.Lbu, isa.Lhu:
			return fmt.Sprintf("0x%08x  %-6s %s, %d(%s)", pc, inst.IFunct, inst.Rd, bits.SignExtend12To32(inst.Imm), inst.Rs1)
		case isa.Jalr:
			return fmt.Sprintf("0x%08x  %-6s %s, %d(%s)", pc, inst.IFunct, inst.Rd, bits.SignExtend12To32(inst.Imm), inst.Rs1)
		default:
			return fmt.Sprintf("0x%08x  %-6s %s, %s, %d", pc, inst.IFunct, inst.Rd, inst.Rs1, bits.SignExtend12To32(inst.Imm))
		}
	case isa.KindS:
		return fmt.Sprintf("0x%08x  %-6s %s, %d(%s)", pc, inst.SFunct, inst.Rs2, bits.SignExtend12To32(inst.Imm), inst.Rs1)
	case isa.KindB:
		return fmt.Sprintf("0x%08x  %-6s %s, %s, %d", pc, inst.BFunct, inst.Rs1, inst.Rs2, inst.ImmS)
	case isa.KindU:
		return fmt.Sprintf("0x%08x  %-6s %s, 0x%x", pc, inst.UOp, inst.Rd, inst.Imm)
	case isa.KindJal:
		return fmt.Sprintf("0x%08x  jal    %s, %d", pc, inst.Rd, inst.ImmS)
	case isa.KindEcall:
		return fmt.Sprintf("0x%08x  ecall", pc)
	default:
		return fmt.Sprintf("0x%08x  <unknown>", pc)
	}
}

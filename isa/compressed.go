package isa

import (
	"github.com/lookbusy1344/rv64ic-emulator/bits"
	"github.com/lookbusy1344/rv64ic-emulator/register"
)

// Decode16 decodes a 16-bit raw word under the compressed encoding. The
// second return value is true when the low two bits were 0b11, meaning this
// was never a compressed instruction at all — the caller must re-fetch the
// full 32-bit word and decode that instead. Keeping "need more bytes"
// distinct from an error in the type system (rather than collapsing it into
// one) is deliberate: a 16-bit decode failure and "this is actually a 32-bit
// instruction" are different outcomes with different recovery.
func Decode16(word uint16) (inst Instruction, needMore bool, err error) {
	quadrant := word & 0b11
	if quadrant == 0b11 {
		return Instruction{}, true, nil
	}

	funct3 := (word >> 13) & 0b111
	rdField := register.CompressedRD(word)

	switch {
	case quadrant == 0b01 && funct3 == 0b000: // C.ADDI
		imm := compressed6BitImm(word)
		return Instruction{
			Kind:   KindI,
			IFunct: Addi,
			Rs1:    rdField,
			Rd:     rdField,
			Imm:    imm,
		}, false, nil

	case quadrant == 0b01 && funct3 == 0b010: // C.LI
		imm := compressed6BitImm(word)
		return Instruction{
			Kind:   KindI,
			IFunct: Addi,
			Rs1:    register.X0,
			Rd:     rdField,
			Imm:    imm,
		}, false, nil

	case quadrant == 0b01 && funct3 == 0b011 && rdField == register.X2: // C.ADDI16SP
		raw := bits.SMS(uint32(word), 12, 1, 9) |
			bits.SMS(uint32(word), 3, 2, 6) |
			bits.SMS(uint32(word), 5, 1, 5) |
			bits.SMS(uint32(word), 2, 1, 4) |
			bits.SMS(uint32(word), 6, 1, 3)
		return Instruction{
			Kind:   KindI,
			IFunct: Addi,
			Rs1:    register.X2,
			Rd:     register.X2,
			Imm:    sext10Field(raw),
		}, false, nil

	case quadrant == 0b01 && funct3 == 0b101: // C.J
		raw := bits.SMS(uint32(word), 12, 1, 11) |
			bits.SMS(uint32(word), 8, 1, 10) |
			bits.SMS(uint32(word), 9, 2, 8) |
			bits.SMS(uint32(word), 6, 1, 7) |
			bits.SMS(uint32(word), 7, 1, 6) |
			bits.SMS(uint32(word), 2, 1, 5) |
			bits.SMS(uint32(word), 11, 1, 4) |
			bits.SMS(uint32(word), 3, 3, 1)
		return Instruction{
			Kind: KindJal,
			Rd:   register.X0,
			ImmS: int32(raw<<20) >> 20,
		}, false, nil

	case quadrant == 0b10 && funct3 == 0b011: // C.LDSP
		raw := bits.SMS(uint32(word), 2, 3, 6) |
			bits.SMS(uint32(word), 12, 1, 5) |
			bits.SMS(uint32(word), 5, 2, 3)
		return Instruction{
			Kind:   KindI,
			IFunct: Ld,
			Rs1:    register.X2,
			Rd:     rdField,
			Imm:    raw,
		}, false, nil

	case quadrant == 0b10 && funct3 == 0b100 && word&(1<<12) == 0:
		rs2 := register.CompressedRS2(word)
		if rs2 == register.X0 { // C.JR
			return Instruction{
				Kind:   KindI,
				IFunct: Jalr,
				Rs1:    rdField,
				Rd:     register.X0,
				Imm:    0,
			}, false, nil
		}
		// C.MV
		return Instruction{
			Kind:   KindR,
			RFunct: Add,
			Rs1:    register.X0,
			Rs2:    rs2,
			Rd:     rdField,
		}, false, nil

	case quadrant == 0b10 && funct3 == 0b111: // C.SDSP
		rs2 := register.CompressedRS2(word)
		raw := bits.SMS(uint32(word), 7, 3, 6) | bits.SMS(uint32(word), 10, 3, 3)
		return Instruction{
			Kind:   KindS,
			SFunct: Sd,
			Rs1:    register.X2,
			Rs2:    rs2,
			Imm:    raw,
		}, false, nil

	default:
		return Instruction{}, false, newUnknown16(word)
	}
}

// compressed6BitImm assembles the signed 6-bit immediate shared by C.ADDI
// and C.LI: bit 12 is the sign bit, bits [6:2] are the low 5 bits. The
// result is sign-extended to 12 bits and zero-padded to 32, the same
// representation 32-bit I-type immediates use.
func compressed6BitImm(word uint16) uint32 {
	raw := bits.SMS(uint32(word), 12, 1, 5) | bits.SMS(uint32(word), 2, 5, 0)
	return uint32(int32(raw<<26)>>26) & bits.Mask(12)
}

// sext10Field sign-extends a value already assembled into bits [9:0] (bit 9
// the sign bit, bits [2:0] always zero) to 12 bits, zero-padded to 32, the
// same representation I-type Addi immediates use.
func sext10Field(raw uint32) uint32 {
	return uint32(int32(raw<<22)>>22) & bits.Mask(12)
}

// Package isa decodes raw RV64IC instruction words — both the 32-bit base
// encoding and the 16-bit compressed encoding — into a tagged Instruction
// value the cpu package can execute. An Instruction is produced fresh on
// every fetch and consumed in the same step; nothing here is stored across
// instructions.
package isa

import (
	"github.com/lookbusy1344/rv64ic-emulator/bits"
	"github.com/lookbusy1344/rv64ic-emulator/register"
)

// Kind discriminates the shape of a decoded Instruction.
type Kind int

const (
	KindR Kind = iota
	KindI
	KindS
	KindB
	KindU
	KindJal
	KindEcall
)

// RFunct enumerates the ten register-register ALU operations.
type RFunct int

const (
	Add RFunct = iota
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And
)

// IFunct enumerates the register-immediate and load operations, plus Jalr.
type IFunct int

const (
	Addi IFunct = iota
	Slti
	Sltiu
	Xori
	Ori
	Andi
	Slli
	Srli
	Srai
	Lb
	Lh
	Lw
	Ld
	Lbu
	Lhu
	Jalr
)

// SFunct enumerates the store widths.
type SFunct int

const (
	Sb SFunct = iota
	Sh
	Sw
	Sd
)

// BFunct enumerates the branch conditions.
type BFunct int

const (
	Beq BFunct = iota
	Bne
	Blt
	Bge
	Bltu
	Bgeu
)

// UOpcode distinguishes the two U-type instructions.
type UOpcode int

const (
	Lui UOpcode = iota
	Auipc
)

// Instruction is the decoded form of one guest instruction. Only the fields
// relevant to Kind are meaningful; this mirrors the source ISA's tagged-enum
// shape as a flat Go struct rather than as a discriminated union of types,
// which keeps decode and execute free of type assertions.
type Instruction struct {
	Kind Kind

	RFunct RFunct
	IFunct IFunct
	SFunct SFunct
	BFunct BFunct
	UOp    UOpcode

	Rd, Rs1, Rs2 register.Name

	// Imm carries the immediate in whatever form each shape's decoder
	// naturally produces: I and U imms are raw, zero-padded bit patterns
	// sign-extended only at execute time; S.imm is likewise raw and
	// 12-bit; B and Jal imms are already signed byte offsets, so ImmS is
	// populated instead of Imm.
	Imm  uint32
	ImmS int32
}

// Decode32 decodes a 32-bit raw instruction word.
func Decode32(word uint32) (Instruction, error) {
	if word == 0x0000_0073 {
		return Instruction{Kind: KindEcall}, nil
	}

	opcode := word & bits.Mask(7)
	switch opcode {
	case 0b0110011: // R-type
		funct, err := decodeRFunct(word)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:   KindR,
			RFunct: funct,
			Rs2:    register.RS2(word),
			Rs1:    register.RS1(word),
			Rd:     register.RD(word),
		}, nil

	case 0b0010011, 0b0000011, 0b1100111: // immediate-ALU, load, Jalr
		funct, err := decodeIFunct(word, opcode)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			Kind:   KindI,
			Imm:    bits.SMS(word, 20, 12, 0),
			Rs1:    register.RS1(word),
			IFunct: funct,
			Rd:     register.RD(word),
		}, nil

	case 0b0100011: // S-type
		funct, err := decodeSFunct(word)
		if err != nil {
			return Instruction{}, err
		}
		imm := bits.SMS(word, 25, 7, 5) | bits.SMS(word, 7, 5, 0)
		return Instruction{
			Kind:   KindS,
			Imm:    imm,
			Rs2:    register.RS2(word),
			Rs1:    register.RS1(word),
			SFunct: funct,
		}, nil

	case 0b1100011: // B-type
		funct, err := decodeBFunct(word)
		if err != nil {
			return Instruction{}, err
		}
		raw := bits.SMS(word, 31, 1, 12) |
			bits.SMS(word, 7, 1, 11) |
			bits.SMS(word, 25, 6, 5) |
			bits.SMS(word, 8, 4, 1)
		return Instruction{
			Kind:   KindB,
			ImmS:   int32(raw<<19) >> 19,
			Rs2:    register.RS2(word),
			Rs1:    register.RS1(word),
			BFunct: funct,
		}, nil

	case 0b0110111: // Lui
		return Instruction{
			Kind: KindU,
			Imm:  word & (bits.Mask(20) << 12),
			Rd:   register.RD(word),
			UOp:  Lui,
		}, nil

	case 0b0010111: // Auipc
		return Instruction{
			Kind: KindU,
			Imm:  word & (bits.Mask(20) << 12),
			Rd:   register.RD(word),
			UOp:  Auipc,
		}, nil

	case 0b1101111: // Jal
		raw := bits.SMS(word, 31, 1, 20) |
			bits.SMS(word, 12, 8, 12) |
			bits.SMS(word, 20, 1, 11) |
			bits.SMS(word, 21, 10, 1)
		return Instruction{
			Kind: KindJal,
			ImmS: int32(raw<<11) >> 11,
			Rd:   register.RD(word),
		}, nil

	default:
		return Instruction{}, newUnknown32(word)
	}
}

func decodeRFunct(word uint32) (RFunct, error) {
	raw := bits.SMS(word, 12, 3, 0) | bits.SMS(word, 25, 7, 3)
	switch raw {
	case 0b0000000_000:
		return Add, nil
	case 0b0100000_000:
		return Sub, nil
	case 0b0000000_001:
		return Sll, nil
	case 0b0000000_010:
		return Slt, nil
	case 0b0000000_011:
		return Sltu, nil
	case 0b0000000_100:
		return Xor, nil
	case 0b0000000_101:
		return Srl, nil
	case 0b0100000_101:
		return Sra, nil
	case 0b0000000_110:
		return Or, nil
	case 0b0000000_111:
		return And, nil
	default:
		return 0, newUnknown32(word)
	}
}

func decodeIFunct(word, opcode uint32) (IFunct, error) {
	raw := bits.SMS(word, 12, 3, 0)
	switch opcode {
	case 0b0010011: // immediate-ALU
		switch raw {
		case 0b000:
			return Addi, nil
		case 0b010:
			return Slti, nil
		case 0b011:
			return Sltiu, nil
		case 0b100:
			return Xori, nil
		case 0b110:
			return Ori, nil
		case 0b111:
			return Andi, nil
		case 0b001:
			return Slli, nil
		case 0b101:
			if word&(1<<30) != 0 {
				return Srai, nil
			}
			return Srli, nil
		default:
			return 0, newUnknown32(word)
		}
	case 0b0000011: // load
		switch raw {
		case 0b000:
			return Lb, nil
		case 0b001:
			return Lh, nil
		case 0b010:
			return Lw, nil
		case 0b011:
			return Ld, nil
		case 0b100:
			return Lbu, nil
		case 0b101:
			return Lhu, nil
		default:
			return 0, newUnknown32(word)
		}
	case 0b1100111: // Jalr
		if raw != 0b000 {
			return 0, newUnknown32(word)
		}
		return Jalr, nil
	default:
		return 0, newUnknown32(word)
	}
}

func decodeSFunct(word uint32) (SFunct, error) {
	switch bits.SMS(word, 12, 3, 0) {
	case 0b000:
		return Sb, nil
	case 0b001:
		return Sh, nil
	case 0b010:
		return Sw, nil
	case 0b011:
		return Sd, nil
	default:
		return 0, newUnknown32(word)
	}
}

func decodeBFunct(word uint32) (BFunct, error) {
	switch bits.SMS(word, 12, 3, 0) {
	case 0b000:
		return Beq, nil
	case 0b001:
		return Bne, nil
	case 0b100:
		return Blt, nil
	case 0b101:
		return Bge, nil
	case 0b110:
		return Bltu, nil
	case 0b111:
		return Bgeu, nil
	default:
		return 0, newUnknown32(word)
	}
}

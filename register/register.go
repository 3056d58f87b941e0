// Package register names one of the 32 guest integer registers and extracts
// register fields from both the 32-bit and compressed instruction
// encodings.
package register

import "github.com/lookbusy1344/rv64ic-emulator/bits"

// Name is a 5-bit register identifier, 0..31.
type Name uint8

// X0 is the architectural zero register. X2 is the stack pointer, used by
// several compressed encodings that hard-wire it.
const (
	X0 Name = 0
	X2 Name = 2
)

// Syscall ABI registers: arguments in A0..A5, call number in A7, return
// value written back to A0.
const (
	A0 Name = 10
	A1 Name = 11
	A2 Name = 12
	A3 Name = 13
	A4 Name = 14
	A5 Name = 15
	A7 Name = 17
)

// RD extracts the destination register field, bits [11:7], shared by both
// the 32-bit and the 16-bit encodings.
func RD(word uint32) Name {
	return Name(bits.SMS(word, 7, 5, 0))
}

// RS1 extracts bits [19:15] of a 32-bit word.
func RS1(word uint32) Name {
	return Name(bits.SMS(word, 15, 5, 0))
}

// RS2 extracts bits [24:20] of a 32-bit word.
func RS2(word uint32) Name {
	return Name(bits.SMS(word, 20, 5, 0))
}

// CompressedRD extracts bits [11:7] of a 16-bit word, the same position as
// the 32-bit rd field.
func CompressedRD(word uint16) Name {
	return Name(bits.SMS(uint32(word), 7, 5, 0))
}

// CompressedRS2 extracts bits [6:2] of a 16-bit word.
func CompressedRS2(word uint16) Name {
	return Name(bits.SMS(uint32(word), 2, 5, 0))
}

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"fp", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// String renders the register using its RISC-V ABI mnemonic.
func (n Name) String() string {
	if int(n) >= len(abiNames) {
		return "x?"
	}
	return abiNames[n]
}

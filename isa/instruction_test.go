package isa_test

import (
	"errors"
	"testing"

	"github.com/lookbusy1344/rv64ic-emulator/isa"
	"github.com/lookbusy1344/rv64ic-emulator/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode32Addi(t *testing.T) {
	// addi x5, x0, 42
	inst, err := isa.Decode32(0x02A00293)
	require.NoError(t, err)
	assert.Equal(t, isa.KindI, inst.Kind)
	assert.Equal(t, isa.Addi, inst.IFunct)
	assert.Equal(t, register.Name(5), inst.Rd)
	assert.Equal(t, register.Name(0), inst.Rs1)
	assert.Equal(t, uint32(42), inst.Imm)
}

func TestDecode32Ecall(t *testing.T) {
	inst, err := isa.Decode32(0x00000073)
	require.NoError(t, err)
	assert.Equal(t, isa.KindEcall, inst.Kind)
}

func TestDecode32Unknown(t *testing.T) {
	_, err := isa.Decode32(0xFFFFFFFF)
	require.Error(t, err)
	var de *isa.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, isa.UnknownInstruction, de.Kind)
	assert.Equal(t, uint32(0xFFFFFFFF), de.Word)
}

func TestDecode32RType(t *testing.T) {
	// add x6, x6, x5
	word := uint32(0b0000000_00101_00110_000_00110_0110011)
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindR, inst.Kind)
	assert.Equal(t, isa.Add, inst.RFunct)
	assert.Equal(t, register.Name(6), inst.Rd)
	assert.Equal(t, register.Name(6), inst.Rs1)
	assert.Equal(t, register.Name(5), inst.Rs2)
}

func TestDecode32Sub(t *testing.T) {
	word := uint32(0b0100000_00101_00110_000_00110_0110011)
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.Sub, inst.RFunct)
}

func TestDecode32Store(t *testing.T) {
	// sw x5, 0(x2)
	word := uint32(0b0000000_00101_00010_010_00000_0100011)
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindS, inst.Kind)
	assert.Equal(t, isa.Sw, inst.SFunct)
	assert.Equal(t, register.Name(2), inst.Rs1)
	assert.Equal(t, register.Name(5), inst.Rs2)
	assert.Equal(t, uint32(0), inst.Imm)
}

func TestDecode32Load(t *testing.T) {
	// lw x6, 0(x2)
	word := uint32(0b000000000000_00010_010_00110_0000011)
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindI, inst.Kind)
	assert.Equal(t, isa.Lw, inst.IFunct)
	assert.Equal(t, register.Name(6), inst.Rd)
}

func TestDecode32Branch(t *testing.T) {
	// bne x5, x0, +8 (taken if x5 != 0)
	// imm=8 -> bit3=1 else zero; assemble raw word manually.
	// imm[12|10:5] at [31:25], imm[4:1|11] at [11:7]
	// imm=8 binary: ...0000 1000 -> bit3=1
	var word uint32
	word |= 0b1100011      // opcode
	word |= (0b001) << 12  // funct3 = bne
	word |= 5 << 15        // rs1 = x5
	word |= 0 << 20        // rs2 = x0
	// word bits[11:8] map to immediate bits[4:1]; setting word bit10 sets
	// immediate bit3, i.e. offset = 8.
	word |= 1 << 10
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindB, inst.Kind)
	assert.Equal(t, isa.Bne, inst.BFunct)
	assert.Equal(t, int32(8), inst.ImmS)
}

func TestDecode32Jal(t *testing.T) {
	// jal x1, +8
	var word uint32
	word |= 0b1101111 // opcode
	word |= 1 << 7  // rd = x1
	word |= 1 << 23 // bits[30:21]->imm[10:1]; word bit23 -> imm bit3, i.e. offset = 8
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindJal, inst.Kind)
	assert.Equal(t, register.Name(1), inst.Rd)
	assert.Equal(t, int32(8), inst.ImmS)
}

func TestDecode32LuiAuipc(t *testing.T) {
	// lui x5, 0x12345 -> imm occupies high 20 bits
	word := uint32(0x12345000 | (5 << 7) | 0b0110111)
	inst, err := isa.Decode32(word)
	require.NoError(t, err)
	assert.Equal(t, isa.KindU, inst.Kind)
	assert.Equal(t, isa.Lui, inst.UOp)
	assert.Equal(t, uint32(0x12345000), inst.Imm)

	word2 := uint32(0x00001000 | (5 << 7) | 0b0010111)
	inst2, err := isa.Decode32(word2)
	require.NoError(t, err)
	assert.Equal(t, isa.Auipc, inst2.UOp)
}

func TestDecode16NeedMore(t *testing.T) {
	_, needMore, err := isa.Decode16(0xFFFF)
	require.NoError(t, err)
	assert.True(t, needMore)
}

func TestDecode16Addi(t *testing.T) {
	// c.addi x5, -1
	inst, needMore, err := isa.Decode16(0x12FD)
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.Equal(t, isa.KindI, inst.Kind)
	assert.Equal(t, isa.Addi, inst.IFunct)
	assert.Equal(t, register.Name(5), inst.Rd)
	assert.Equal(t, register.Name(5), inst.Rs1)
	assert.Equal(t, uint32(0xFFF), inst.Imm)
}

func TestDecode16Unknown(t *testing.T) {
	// quadrant 00, all zero word is the reserved all-zero encoding
	_, needMore, err := isa.Decode16(0x0000)
	require.Error(t, err)
	assert.False(t, needMore)
	var de *isa.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, isa.UnknownCompressedInstruction, de.Kind)
}

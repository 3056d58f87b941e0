package register_test

import (
	"testing"

	"github.com/lookbusy1344/rv64ic-emulator/register"
	"github.com/stretchr/testify/assert"
)

func TestFieldExtraction(t *testing.T) {
	// addi x5, x0, 42 = 0x02A00293
	word := uint32(0x02A00293)
	assert.Equal(t, register.Name(5), register.RD(word))
	assert.Equal(t, register.Name(0), register.RS1(word))
}

func TestRS2(t *testing.T) {
	// add x6, x6, x5 -> rs2 field bits [24:20] = 5
	word := uint32(0b0000000_00101_00110_000_00110_0110011)
	assert.Equal(t, register.Name(5), register.RS2(word))
	assert.Equal(t, register.Name(6), register.RS1(word))
	assert.Equal(t, register.Name(6), register.RD(word))
}

func TestCompressedFields(t *testing.T) {
	// c.addi x5, -1 = 0x12FD
	word := uint16(0x12FD)
	assert.Equal(t, register.Name(5), register.CompressedRD(word))
}

func TestABINames(t *testing.T) {
	assert.Equal(t, "zero", register.X0.String())
	assert.Equal(t, "sp", register.X2.String())
	assert.Equal(t, "ra", register.Name(1).String())
	assert.Equal(t, "a0", register.Name(10).String())
	assert.Equal(t, "t6", register.Name(31).String())
}

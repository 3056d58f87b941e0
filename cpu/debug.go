package cpu

import "encoding/binary"

// ReadMemUnit reads one unit of memory at addr for debugger inspection.
// unit selects the width: 'b' (1 byte), 'h' (2), 'w' (4), 'd' (8); any
// other value defaults to a word. It returns the value and the width read,
// so callers can advance addr without hardcoding the unit size again.
func (c *CPU) ReadMemUnit(addr uint64, unit byte) (value uint64, width int, err error) {
	switch unit {
	case 'b':
		width = 1
	case 'h':
		width = 2
	case 'd':
		width = 8
	default:
		width = 4
	}

	b, err := c.memSlice(addr, width)
	if err != nil {
		return 0, width, err
	}

	switch width {
	case 1:
		return uint64(b[0]), width, nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), width, nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), width, nil
	default:
		return binary.LittleEndian.Uint64(b), width, nil
	}
}

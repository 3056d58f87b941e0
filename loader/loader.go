// Package loader turns a guest image file into the (buffer, entry) pair the
// cpu package is constructed around. It detects an ELF container by its
// 4-byte magic and, if present, maps PT_LOAD segments into a host buffer;
// otherwise it treats the file as a flat binary.
//
// ELF parsing uses the standard library's debug/elf rather than a
// third-party parser — see DESIGN.md for why.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"os"
)

var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// Load reads path and returns a host buffer holding the guest image plus
// the byte offset into that buffer of the guest entry instruction.
func Load(path string) (mem []byte, entry uint64, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("loader: %w", err)
	}

	if bytes.HasPrefix(raw, elfMagic) {
		return loadELF(raw)
	}
	return raw, 0, nil
}

// loadELF maps every PT_LOAD segment into a single host buffer, sized and
// offset so that guest virtual addresses map to buffer offsets by
// subtracting the minimum used segment virtual address. The entry pointer
// is computed from the ELF header's entry address using that same offset.
func loadELF(raw []byte) ([]byte, uint64, error) {
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("loader: parse elf: %w", err)
	}
	defer f.Close()

	loads := make([]*elf.Prog, 0, len(f.Progs))
	for _, p := range f.Progs {
		if p.Type == elf.PT_LOAD && p.Memsz > 0 {
			loads = append(loads, p)
		}
	}
	if len(loads) == 0 {
		return nil, 0, fmt.Errorf("loader: elf file has no PT_LOAD segments")
	}

	var minAddr uint64 = ^uint64(0)
	var maxAddr uint64
	for _, p := range loads {
		if p.Vaddr < minAddr {
			minAddr = p.Vaddr
		}
		if end := p.Vaddr + p.Memsz; end > maxAddr {
			maxAddr = end
		}
	}

	mem := make([]byte, maxAddr-minAddr)
	for _, p := range loads {
		data := make([]byte, p.Filesz)
		if _, err := p.ReadAt(data, 0); err != nil {
			return nil, 0, fmt.Errorf("loader: read segment at 0x%x: %w", p.Vaddr, err)
		}
		off := p.Vaddr - minAddr
		copy(mem[off:], data)
	}

	entry := f.Entry - minAddr
	return mem, entry, nil
}

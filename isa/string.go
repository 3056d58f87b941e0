package isa

func (k RFunct) String() string {
	return [...]string{"add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and"}[k]
}

func (k IFunct) String() string {
	return [...]string{
		"addi", "slti", "sltiu", "xori", "ori", "andi", "slli", "srli", "srai",
		"lb", "lh", "lw", "ld", "lbu", "lhu", "jalr",
	}[k]
}

func (k SFunct) String() string {
	return [...]string{"sb", "sh", "sw", "sd"}[k]
}

func (k BFunct) String() string {
	return [...]string{"beq", "bne", "blt", "bge", "bltu", "bgeu"}[k]
}

func (k UOpcode) String() string {
	return [...]string{"lui", "auipc"}[k]
}

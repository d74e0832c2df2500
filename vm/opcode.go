package vm

import (
	"strings"
)

// Opcode is a MEPA instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NONE = Opcode(0)  // -
	OP_INPP = Opcode(1)  // INPP
	OP_PARA = Opcode(2)  // PARA
	OP_AMEM = Opcode(3)  // AMEM
	OP_DMEM = Opcode(4)  // DMEM
	OP_CRVL = Opcode(5)  // CRVL
	OP_ARMZ = Opcode(6)  // ARMZ
	OP_CRCT = Opcode(7)  // CRCT
	OP_SOMA = Opcode(8)  // SOMA
	OP_SUBT = Opcode(9)  // SUBT
	OP_MULT = Opcode(10) // MULT
	OP_DIVI = Opcode(11) // DIVI
	OP_INVR = Opcode(12) // INVR
	OP_CONJ = Opcode(13) // CONJ
	OP_DISJ = Opcode(14) // DISJ
	OP_CMME = Opcode(15) // CMME
	OP_CMMA = Opcode(16) // CMMA
	OP_CMIG = Opcode(17) // CMIG
	OP_CMDG = Opcode(18) // CMDG
	OP_CMEG = Opcode(19) // CMEG
	OP_CMAG = Opcode(20) // CMAG
	OP_DSVS = Opcode(21) // DSVS
	OP_DSVF = Opcode(22) // DSVF
	OP_IMPR = Opcode(23) // IMPR
	OP_NADA = Opcode(24) // NADA

	opcodeCount = 25
)

// Operand is the kind of operand an opcode takes.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_NONE    = Operand(0) // none
	OPERAND_CONST   = Operand(1) // constant
	OPERAND_ADDRESS = Operand(2) // address
	OPERAND_COUNT   = Operand(3) // count
	OPERAND_TARGET  = Operand(4) // target
)

// opcodeOperand is the operand kind of each opcode.
var opcodeOperand = [opcodeCount]Operand{
	OP_AMEM: OPERAND_COUNT,
	OP_DMEM: OPERAND_COUNT,
	OP_CRVL: OPERAND_ADDRESS,
	OP_ARMZ: OPERAND_ADDRESS,
	OP_CRCT: OPERAND_CONST,
	OP_DSVS: OPERAND_TARGET,
	OP_DSVF: OPERAND_TARGET,
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op := OP_INPP; op < opcodeCount; op++ {
		m[op.String()] = op
	}
	return m
}()

// LookupOpcode returns the opcode for a mnemonic. Mnemonics are case-insensitive.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[strings.ToUpper(word)]
	return
}

// Operand returns the operand kind of the opcode.
func (op Opcode) Operand() Operand {
	if op < 0 || op >= opcodeCount {
		return OPERAND_NONE
	}
	return opcodeOperand[op]
}

// Binary returns true for opcodes that pop two values and push one.
func (op Opcode) Binary() bool {
	switch op {
	case OP_SOMA, OP_SUBT, OP_MULT, OP_DIVI,
		OP_CONJ, OP_DISJ,
		OP_CMME, OP_CMMA, OP_CMIG, OP_CMDG, OP_CMEG, OP_CMAG:
		return true
	}
	return false
}

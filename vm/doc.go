// Package vm implements the MEPA stack machine.
//
// A Program is an ordered, 1-indexed list of source lines. Each line holds at
// most one instruction, optionally preceded by a label. The Machine decodes
// the line under its program counter, applies it to an operand Stack and a
// Memory segment, and advances (or jumps) to the next line.
//
// Step executes exactly one line; Run repeats Step until the machine halts or
// faults. Both share the same transition, so single-stepping a program to the
// end leaves the same stack, memory and output as running it.
//
// Numeric operands may be written as $(expr), evaluated as a starlark integer
// expression with LINENO bound to the current line.
package vm

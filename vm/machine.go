package vm

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
)

// Status is the execution state of a Machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_READY   = Status(0) // ready
	STATUS_RUNNING = Status(1) // running
	STATUS_HALTED  = Status(2) // halted
	STATUS_FAULTED = Status(3) // faulted
)

// Done returns true for the terminal states.
func (st Status) Done() bool {
	return st == STATUS_HALTED || st == STATUS_FAULTED
}

// Machine is one MEPA execution session. It owns its stack and memory; a
// reloaded program needs a new Machine.
type Machine struct {
	Verbose bool      // Set to log every executed line.
	Output  io.Writer // IMPR output, one value per line. Discarded if nil.

	Stack  Stack  // Operand stack.
	Memory Memory // Data segment.

	program *Program
	labels  Labels
	pc      int // 1-indexed line of the next instruction.
	status  Status
	err     error
	steps   int
}

// NewMachine creates a session for a program, in the ready state, with the
// program counter on the entry line. A program with duplicated labels starts
// out faulted.
func NewMachine(prog *Program) (m *Machine) {
	if prog == nil {
		prog = &Program{}
	}

	m = &Machine{
		program: prog,
		pc:      prog.Entry(),
		status:  STATUS_READY,
	}

	m.labels, m.err = BuildLabels(prog)
	if m.err != nil {
		m.status = STATUS_FAULTED
	}

	return
}

// Program returns the program the machine executes.
func (m *Machine) Program() *Program {
	return m.program
}

// Labels returns the label table of the program.
func (m *Machine) Labels() Labels {
	return m.labels
}

// Pc returns the 1-indexed line of the next instruction to execute. For a
// halted or faulted machine it is the line that halted or faulted, or one
// past the last line.
func (m *Machine) Pc() int {
	return m.pc
}

// Status returns the execution state.
func (m *Machine) Status() Status {
	return m.status
}

// Err returns the fault of a faulted machine.
func (m *Machine) Err() error {
	return m.err
}

// Steps returns the number of instructions executed.
func (m *Machine) Steps() int {
	return m.steps
}

// StackContents returns a copy of the stack, bottom first.
func (m *Machine) StackContents() []int {
	return slices.Clone(m.Stack.Data)
}

// MemoryContents returns a copy of memory, address 0 first.
func (m *Machine) MemoryContents() []int {
	return slices.Clone(m.Memory.Data)
}

// Step executes the instruction at the program counter.
// A halted or faulted machine is left unchanged.
func (m *Machine) Step() (status Status, err error) {
	if m.status.Done() {
		return m.status, m.err
	}

	if m.pc > m.program.Len() {
		m.status = STATUS_HALTED
		return m.status, nil
	}

	m.status = STATUS_RUNNING

	lineno := m.pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
			m.status = STATUS_FAULTED
			m.err = err
		}
		status = m.status
	}()

	inst, err := Decode(m.program.Line(lineno), lineno)
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("%03d: %v", lineno, inst)
	}

	next, halt, err := m.execute(inst)
	if err != nil {
		return
	}
	m.steps++

	if halt {
		m.status = STATUS_HALTED
		return
	}

	m.pc = next
	if m.pc > m.program.Len() {
		m.status = STATUS_HALTED
	}

	return
}

// Run executes until the machine halts or faults.
// A program that loops forever runs forever.
func (m *Machine) Run() (status Status, err error) {
	return m.RunContext(context.Background(), 0)
}

// RunContext executes until the machine halts or faults, the context is
// done, or limit instructions have run (when limit > 0). The last two stop
// between instructions and leave the machine running; the context error or
// ErrStepLimit is returned.
func (m *Machine) RunContext(ctx context.Context, limit int) (status Status, err error) {
	for count := 0; !m.status.Done(); count++ {
		if limit > 0 && count >= limit {
			return m.status, ErrStepLimit
		}
		err = ctx.Err()
		if err != nil {
			return m.status, err
		}
		status, err = m.Step()
		if err != nil {
			return
		}
	}

	return m.status, m.err
}

// execute applies an instruction to the stack and memory, returning the next
// line to execute.
func (m *Machine) execute(inst Instruction) (next int, halt bool, err error) {
	next = m.pc + 1

	if inst.Opcode.Binary() {
		// Both operands must exist, so a fault leaves the stack intact.
		if m.Stack.Len() < 2 {
			err = ErrStackUnderflow
			return
		}
		var a, b int
		b, err = m.Stack.Pop()
		if err != nil {
			return
		}
		a, err = m.Stack.Pop()
		if err != nil {
			return
		}
		var value int
		value, err = binaryOp(inst.Opcode, a, b)
		if err != nil {
			return
		}
		m.Stack.Push(value)
		return
	}

	switch inst.Opcode {
	case OP_NONE, OP_NADA:
		// no-op
	case OP_INPP:
		m.Stack.Reset()
		m.Memory.Reset()
	case OP_PARA:
		halt = true
	case OP_AMEM:
		err = m.Memory.Allocate(inst.Value)
	case OP_DMEM:
		err = m.Memory.Deallocate(inst.Value)
	case OP_CRCT:
		m.Stack.Push(inst.Value)
	case OP_CRVL:
		var value int
		value, err = m.Memory.Read(inst.Value)
		if err != nil {
			return
		}
		m.Stack.Push(value)
	case OP_ARMZ:
		var value int
		value, err = m.Stack.Pop()
		if err != nil {
			return
		}
		err = m.Memory.Write(inst.Value, value)
	case OP_INVR:
		var value int
		value, err = m.Stack.Pop()
		if err != nil {
			return
		}
		m.Stack.Push(-value)
	case OP_DSVS:
		next, err = m.labels.Resolve(inst.Target, m.program.Len())
	case OP_DSVF:
		var cond int
		cond, err = m.Stack.Pop()
		if err != nil {
			return
		}
		if cond == 0 {
			next, err = m.labels.Resolve(inst.Target, m.program.Len())
		}
	case OP_IMPR:
		var value int
		value, err = m.Stack.Pop()
		if err != nil {
			return
		}
		if m.Output != nil {
			fmt.Fprintln(m.Output, value)
		}
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// boolInt converts a truth value to 0 or 1.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// binaryOp computes 'a op b', where b was on top of the stack.
func binaryOp(op Opcode, a, b int) (value int, err error) {
	switch op {
	case OP_SOMA:
		value = a + b
	case OP_SUBT:
		value = a - b
	case OP_MULT:
		value = a * b
	case OP_DIVI:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		// Floor division, rounding toward negative infinity.
		value = a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			value--
		}
	case OP_CONJ:
		value = boolInt(a != 0 && b != 0)
	case OP_DISJ:
		value = boolInt(a != 0 || b != 0)
	case OP_CMME:
		value = boolInt(a < b)
	case OP_CMMA:
		value = boolInt(a > b)
	case OP_CMIG:
		value = boolInt(a == b)
	case OP_CMDG:
		value = boolInt(a != b)
	case OP_CMEG:
		value = boolInt(a <= b)
	case OP_CMAG:
		value = boolInt(a >= b)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

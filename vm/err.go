package vm

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrStepLimit      = errors.New(f("step limit reached"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOperandNegative = errors.New(f("operand negative"))
)

// ErrLabelMissing is an unresolved jump target.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelDuplicate is a label declared on more than one line.
type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

// ErrMemoryBounds is an access outside of the allocated memory segment.
type ErrMemoryBounds struct {
	Address int
	Size    int
}

func (err ErrMemoryBounds) Error() string {
	if err.Size == 0 {
		return f("memory address %d out of bounds (no memory allocated)", err.Address)
	}
	return f("memory address %d out of bounds (0..%d)", err.Address, err.Size-1)
}

// Is matches any ErrMemoryBounds, regardless of address.
func (err ErrMemoryBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryBounds)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseTarget string

func (err ErrParseTarget) Error() string {
	return f("'%v' is not a label or line number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrDecode is a line that does not decode to an instruction.
type ErrDecode struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrDecode) Error() string {
	return f("decode '%v' %v", err.Line, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the location of a machine fault.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

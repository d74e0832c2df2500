package vm

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/mepa/internal"
)

// Snapshot is a copy of the observable machine state.
type Snapshot struct {
	Line   int    // Line of the next instruction, or of the halting/faulting one.
	Text   string // Source text of Line.
	Status Status
	Err    error
	Stack  []int // Bottom first.
	Memory []int // Address 0 first.
	Steps  int
}

// Snapshot returns a copy of the machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Line:   m.pc,
		Text:   m.program.Line(m.pc),
		Status: m.status,
		Err:    m.err,
		Stack:  m.StackContents(),
		Memory: m.MemoryContents(),
		Steps:  m.steps,
	}
}

// Cells iterates over memory then the stack, numbering the stack cells after
// the last memory address.
func (snap Snapshot) Cells() iter.Seq2[int, int] {
	return internal.IterEnumerate(0, internal.IterSeqConcat(slices.Values(snap.Memory), slices.Values(snap.Stack)))
}

// Empty returns true when there is neither memory nor stack.
func (snap Snapshot) Empty() bool {
	return len(snap.Memory) == 0 && len(snap.Stack) == 0
}

// String returns the state as text, in the manner of a register dump.
func (snap Snapshot) String() (text string) {
	text += fmt.Sprintf("% 7s: %v\n", "status", snap.Status)
	text += fmt.Sprintf("% 7s: %d\n", "line", snap.Line)
	text += fmt.Sprintf("% 7s: %d\n", "steps", snap.Steps)
	text += fmt.Sprintf("% 7s: %v\n", "memory", snap.Memory)
	text += fmt.Sprintf("% 7s: %v\n", "stack", snap.Stack)
	if snap.Err != nil {
		text += fmt.Sprintf("% 7s: %v\n", "fault", snap.Err)
	}

	return
}

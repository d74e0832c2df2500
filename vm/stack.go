package vm

import (
	"iter"
	"slices"
)

// Stack is the operand stack. The top of the stack is the end of Data.
type Stack struct {
	Data []int
}

func (s *Stack) Push(value int) {
	s.Data = append(s.Data, value)
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (value int, err error) {
	value, err = s.Peek(0)
	if err == nil {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

// Peek returns the value depth entries below the top of the stack.
func (s *Stack) Peek(depth int) (value int, err error) {
	if depth < 0 || depth >= len(s.Data) {
		err = ErrStackUnderflow
		return
	}

	value = s.Data[len(s.Data)-1-depth]
	return
}

func (s *Stack) Len() int {
	return len(s.Data)
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}

// All iterates from the bottom of the stack to the top.
func (s *Stack) All() iter.Seq[int] {
	return slices.Values(s.Data)
}

package vm

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sumProgram prints the sum of 1..5.
var sumProgram = []string{
	"INPP",
	"AMEM 2",
	"CRCT 0",
	"ARMZ 0 ; sum",
	"CRCT 1",
	"ARMZ 1 ; i",
	"L1: CRVL 1",
	"CRCT 5",
	"CMEG",
	"DSVF L2",
	"CRVL 0",
	"CRVL 1",
	"SOMA",
	"ARMZ 0",
	"CRVL 1",
	"CRCT 1",
	"SOMA",
	"ARMZ 1",
	"DSVS L1",
	"L2: CRVL 0",
	"IMPR",
	"DMEM 2",
	"PARA",
}

func doRun(program []string) (m *Machine, output string, err error) {
	buf := &bytes.Buffer{}
	m = NewMachine(LoadProgram(program))
	m.Output = buf
	_, err = m.Run()
	output = buf.String()
	return
}

func doStep(program []string) (m *Machine, output string, err error) {
	buf := &bytes.Buffer{}
	m = NewMachine(LoadProgram(program))
	m.Output = buf
	for !m.Status().Done() {
		_, err = m.Step()
	}
	output = buf.String()
	return
}

func TestMachine_New(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(LoadProgram(sumProgram))
	assert.Equal(STATUS_READY, m.Status())
	assert.Equal(1, m.Pc())
	assert.NoError(m.Err())
	assert.Equal(Labels{"L1": 7, "L2": 20}, m.Labels())
	assert.Equal(0, m.Steps())
	assert.Empty(m.StackContents())
	assert.Empty(m.MemoryContents())
}

func TestMachine_Sum(t *testing.T) {
	assert := assert.New(t)

	m, output, err := doRun(sumProgram)
	assert.NoError(err)
	assert.Equal("15\n", output)
	assert.Equal(STATUS_HALTED, m.Status())
	assert.Equal(23, m.Pc())
	assert.Empty(m.StackContents())
	assert.Empty(m.MemoryContents())
}

func TestMachine_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	m, output, err := doRun([]string{"AMEM 1", "CRCT 7", "ARMZ 0", "CRVL 0", "IMPR", "PARA"})
	assert.NoError(err)
	assert.Equal("7\n", output)
	assert.Equal(STATUS_HALTED, m.Status())
	assert.Equal([]int{7}, m.MemoryContents())
	assert.Empty(m.StackContents())
	assert.Equal(6, m.Steps())
}

func TestMachine_Binary(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       string
		a, b     int
		expected int
	}){
		{"SOMA", 2, 3, 5},
		{"SOMA", -2, 3, 1},
		{"SUBT", 5, 3, 2},
		{"SUBT", 3, 5, -2},
		{"MULT", -4, 3, -12},
		{"DIVI", 7, 2, 3},
		{"DIVI", -7, 2, -4},
		{"DIVI", 7, -2, -4},
		{"DIVI", -8, 2, -4},
		{"CONJ", 1, 5, 1},
		{"CONJ", 1, 0, 0},
		{"DISJ", 0, 0, 0},
		{"DISJ", 0, -3, 1},
		{"CMME", 1, 2, 1},
		{"CMME", 2, 2, 0},
		{"CMMA", 3, 2, 1},
		{"CMMA", 2, 3, 0},
		{"CMIG", 4, 4, 1},
		{"CMIG", 4, 5, 0},
		{"CMDG", 4, 5, 1},
		{"CMDG", 4, 4, 0},
		{"CMEG", 4, 4, 1},
		{"CMEG", 5, 4, 0},
		{"CMAG", 4, 4, 1},
		{"CMAG", 3, 4, 0},
	}

	for _, entry := range table {
		m := NewMachine(LoadProgram([]string{"CRCT 9", entry.op}))
		m.Stack.Push(entry.a)
		m.Stack.Push(entry.b)
		// Skip the CRCT.
		m.pc = 2

		status, err := m.Step()
		assert.NoError(err, entry.op)
		assert.Equal(STATUS_HALTED, status, entry.op)
		assert.Equal([]int{entry.expected}, m.StackContents(), "%v %v %v", entry.a, entry.op, entry.b)
	}
}

func TestMachine_Soma(t *testing.T) {
	assert := assert.New(t)

	for _, pair := range [][2]int{{0, 0}, {1, 2}, {-5, 5}, {100, -300}} {
		m := NewMachine(LoadProgram([]string{"SOMA"}))
		m.Stack.Push(42)
		m.Stack.Push(pair[0])
		m.Stack.Push(pair[1])

		_, err := m.Step()
		assert.NoError(err)
		assert.Equal(2, m.Stack.Len())
		top, err := m.Stack.Peek(0)
		assert.NoError(err)
		assert.Equal(pair[0]+pair[1], top)
	}
}

func TestMachine_Invr(t *testing.T) {
	assert := assert.New(t)

	m, output, err := doRun([]string{"CRCT 4", "INVR", "IMPR", "CRCT -4", "INVR", "IMPR"})
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, m.Status())
	assert.Equal("-4\n4\n", output)
}

func TestMachine_Dsvf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		cond     int
		expected string
	}){
		{0, "2\n"},
		{1, "1\n2\n"},
		{-1, "1\n2\n"},
	}

	for _, entry := range table {
		m := NewMachine(LoadProgram([]string{
			"DSVF SKIP",
			"CRCT 1",
			"IMPR",
			"SKIP: CRCT 2",
			"IMPR",
		}))
		buf := &bytes.Buffer{}
		m.Output = buf
		m.Stack.Push(77)
		m.Stack.Push(entry.cond)

		_, err := m.Step()
		assert.NoError(err)
		assert.Equal([]int{77}, m.StackContents())

		_, err = m.Run()
		assert.NoError(err)
		assert.Equal(entry.expected, buf.String())
		assert.Equal([]int{77}, m.StackContents())
	}
}

func TestMachine_JumpLineNumber(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun([]string{
		"DSVS 4",
		"CRCT 1",
		"IMPR",
		"CRCT 2",
		"IMPR",
	})
	assert.NoError(err)
	assert.Equal("2\n", output)
}

func TestMachine_Inpp(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(LoadProgram([]string{
		"CRCT 1",
		"IMPR",
		"INPP",
		"CRCT 2",
		"IMPR",
		"PARA",
	}))
	assert.Equal(3, m.Pc())

	m.Stack.Push(5)
	assert.NoError(m.Memory.Allocate(2))

	_, err := m.Step()
	assert.NoError(err)
	assert.Equal(4, m.Pc())
	assert.Equal(STATUS_RUNNING, m.Status())
	assert.Empty(m.StackContents())
	assert.Empty(m.MemoryContents())

	buf := &bytes.Buffer{}
	m.Output = buf
	_, err = m.Run()
	assert.NoError(err)
	assert.Equal("2\n", buf.String())
}

func TestMachine_Halt(t *testing.T) {
	assert := assert.New(t)

	// Empty program
	m := NewMachine(LoadProgram(nil))
	status, err := m.Step()
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)

	// Past the last line
	m = NewMachine(LoadProgram([]string{"CRCT 1", "L1:"}))
	status, err = m.Step()
	assert.NoError(err)
	assert.Equal(STATUS_RUNNING, status)
	status, err = m.Step()
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)
	assert.Equal(3, m.Pc())

	// PARA leaves the program counter on itself.
	m = NewMachine(LoadProgram([]string{"PARA", "CRCT 1"}))
	status, err = m.Step()
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)
	assert.Equal(1, m.Pc())

	// Idempotent once halted.
	status, err = m.Step()
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)
	assert.Equal(1, m.Pc())
	assert.Equal(1, m.Steps())
	assert.Empty(m.StackContents())
}

func TestMachine_Faults(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"underflow", []string{"CRCT 1", "SOMA"}, 2, ErrStackUnderflow},
		{"underflow impr", []string{"IMPR"}, 1, ErrStackUnderflow},
		{"underflow dsvf", []string{"DSVF 1"}, 1, ErrStackUnderflow},
		{"underflow armz", []string{"AMEM 1", "ARMZ 0"}, 2, ErrStackUnderflow},
		{"divide", []string{"CRCT 1", "CRCT 0", "DIVI"}, 3, ErrDivisionByZero},
		{"read", []string{"AMEM 1", "CRVL 1"}, 2, ErrMemoryBounds{}},
		{"write", []string{"CRCT 1", "ARMZ 0"}, 2, ErrMemoryBounds{}},
		{"negative", []string{"AMEM 1", "CRVL -1"}, 2, ErrMemoryBounds{}},
		{"dmem", []string{"AMEM 1", "DMEM 2"}, 2, ErrMemoryBounds{}},
		{"label", []string{"NADA", "DSVS NOWHERE"}, 2, ErrLabelMissing("NOWHERE")},
		{"line", []string{"DSVS 3", "NADA"}, 1, ErrLabelMissing("3")},
		{"decode", []string{"NADA", "CRCT"}, 2, ErrOperandMissing},
		{"opcode", []string{"FOO"}, 1, ErrOpcodeInvalid},
		{"duplicate", []string{"A: NADA", "A: NADA"}, 2, ErrLabelDuplicate("A")},
	}

	for _, entry := range table {
		m, _, err := doRun(entry.program)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(STATUS_FAULTED, m.Status(), entry.name)
		assert.Equal(err, m.Err(), entry.name)

		var runtime *ErrRuntime
		assert.True(errors.As(err, &runtime), entry.name)
		if runtime != nil {
			assert.Equal(entry.lineno, runtime.LineNo, entry.name)
		}

		// Faulted is terminal.
		status, again := m.Step()
		assert.Equal(STATUS_FAULTED, status, entry.name)
		assert.Equal(err, again, entry.name)
	}

	// The faulting instruction leaves its operands in place.
	m, _, err := doRun([]string{"CRCT 1", "SOMA"})
	assert.ErrorIs(err, ErrStackUnderflow)
	assert.Equal([]int{1}, m.StackContents())
}

func TestMachine_FaultKeepsState(t *testing.T) {
	assert := assert.New(t)

	m, output, err := doRun([]string{"AMEM 1", "CRCT 3", "ARMZ 0", "CRCT 8", "IMPR", "CRCT 5", "CRCT 0", "DIVI", "PARA"})
	assert.ErrorIs(err, ErrDivisionByZero)
	assert.Equal("8\n", output)
	assert.Equal(STATUS_FAULTED, m.Status())
	assert.Equal(8, m.Pc())
	assert.Equal([]int{3}, m.MemoryContents())
	assert.Empty(m.StackContents())

	snap := m.Snapshot()
	assert.Equal(8, snap.Line)
	assert.Equal("DIVI", snap.Text)
	assert.Equal(STATUS_FAULTED, snap.Status)
	assert.Equal(err, snap.Err)
}

func TestMachine_UnresolvedAtUse(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	m := NewMachine(LoadProgram([]string{"CRCT 1", "IMPR", "DSVS MISSING", "PARA"}))
	m.Output = buf

	for range 2 {
		status, err := m.Step()
		assert.NoError(err)
		assert.Equal(STATUS_RUNNING, status)
	}
	assert.Equal("1\n", buf.String())

	status, err := m.Step()
	assert.Equal(STATUS_FAULTED, status)
	assert.ErrorIs(err, ErrLabelMissing("MISSING"))
	assert.Equal(3, m.Pc())
}

func TestMachine_UnreachedErrors(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun([]string{"CRCT 1", "IMPR", "PARA", "BOGUS", "DSVS NOWHERE"})
	assert.NoError(err)
	assert.Equal("1\n", output)
}

func TestMachine_StepRunEquivalence(t *testing.T) {
	assert := assert.New(t)

	programs := [][]string{
		sumProgram,
		{"AMEM 1", "CRCT 7", "ARMZ 0", "CRVL 0", "IMPR", "PARA"},
		{"CRCT 1", "IMPR", "CRCT 0", "DIVI"},
		{"CRCT 2", "IMPR", "DSVS NOWHERE"},
		{},
	}

	for _, program := range programs {
		run, run_out, run_err := doRun(program)
		step, step_out, step_err := doStep(program)

		assert.Equal(run.Status(), step.Status())
		assert.Equal(run_out, step_out)
		assert.Equal(run_err, step_err)
		assert.Equal(run.StackContents(), step.StackContents())
		assert.Equal(run.MemoryContents(), step.MemoryContents())
		assert.Equal(run.Pc(), step.Pc())
		assert.Equal(run.Steps(), step.Steps())
	}
}

func TestMachine_Deterministic(t *testing.T) {
	assert := assert.New(t)

	prog := LoadProgram(sumProgram)

	var outputs []string
	for range 2 {
		buf := &bytes.Buffer{}
		m := NewMachine(prog)
		m.Output = buf
		_, err := m.Run()
		assert.NoError(err)
		outputs = append(outputs, buf.String())
	}

	assert.Equal(outputs[0], outputs[1])
}

func TestMachine_RunContext(t *testing.T) {
	assert := assert.New(t)

	forever := LoadProgram([]string{"L: NADA", "DSVS L"})

	m := NewMachine(forever)
	status, err := m.RunContext(context.Background(), 100)
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(STATUS_RUNNING, status)
	assert.Equal(100, m.Steps())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m = NewMachine(forever)
	status, err = m.RunContext(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(STATUS_READY, status)
	assert.Equal(0, m.Steps())

	m = NewMachine(LoadProgram([]string{"NADA", "PARA"}))
	status, err = m.RunContext(context.Background(), 2)
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)
}

func TestMachine_NilOutput(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(LoadProgram([]string{"CRCT 1", "IMPR"}))
	status, err := m.Run()
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, status)
	assert.Empty(m.StackContents())
}

func TestSnapshot_Cells(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(LoadProgram([]string{"AMEM 2", "CRCT 3", "ARMZ 1", "CRCT 9", "CRCT 8"}))
	_, err := m.Run()
	assert.NoError(err)

	snap := m.Snapshot()
	assert.False(snap.Empty())

	var addrs, values []int
	for addr, value := range snap.Cells() {
		addrs = append(addrs, addr)
		values = append(values, value)
	}
	assert.Equal([]int{0, 1, 2, 3}, addrs)
	assert.Equal([]int{0, 3, 9, 8}, values)

	assert.Contains(snap.String(), "halted")
	assert.True(NewMachine(nil).Snapshot().Empty())
}

package vm

import (
	"iter"
	"slices"
	"strings"
)

// Program is an immutable snapshot of MEPA source lines.
// Line numbers are 1-indexed and contiguous.
type Program struct {
	lines []string
}

// LoadProgram creates a program from an ordered list of source lines.
// The lines are copied, so later edits by the caller are not observed.
func LoadProgram(lines []string) (prog *Program) {
	prog = &Program{
		lines: make([]string, len(lines)),
	}
	for n, line := range lines {
		prog.lines[n] = strings.TrimSpace(line)
	}

	return
}

// Len returns the number of lines in the program.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.lines)
}

// Line returns the text of a 1-indexed line, or "" if there is no such line.
func (prog *Program) Line(lineno int) string {
	if lineno < 1 || lineno > prog.Len() {
		return ""
	}
	return prog.lines[lineno-1]
}

// Lines returns a copy of the program text.
func (prog *Program) Lines() []string {
	if prog == nil {
		return nil
	}
	return slices.Clone(prog.lines)
}

// All iterates over the line numbers and text of the program.
func (prog *Program) All() iter.Seq2[int, string] {
	return func(yield func(lineno int, text string) bool) {
		for n := range prog.Len() {
			if !yield(n+1, prog.lines[n]) {
				return
			}
		}
	}
}

// Entry returns the line execution starts on: the first INPP line, or line 1.
func (prog *Program) Entry() int {
	for lineno, text := range prog.All() {
		_, rest := splitLabel(stripComment(text))
		words := strings.Fields(rest)
		if len(words) > 0 && strings.EqualFold(words[0], OP_INPP.String()) {
			return lineno
		}
	}

	return 1
}

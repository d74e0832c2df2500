package vm

import (
	"strconv"
	"strings"
)

// Labels maps upper-cased label names to 1-indexed line numbers.
type Labels map[string]int

// BuildLabels scans every line of the program once for label declarations.
// Undefined or unused labels are not errors here; they only fault when a
// jump to them executes.
func BuildLabels(prog *Program) (labels Labels, err error) {
	labels = make(Labels)

	for lineno, text := range prog.All() {
		label, _ := splitLabel(stripComment(text))
		if len(label) == 0 {
			continue
		}
		label = strings.ToUpper(label)
		if _, ok := labels[label]; ok {
			err = &ErrRuntime{LineNo: lineno, Err: ErrLabelDuplicate(label)}
			return
		}
		labels[label] = lineno
	}

	return
}

// Resolve returns the line number a jump target refers to. A target is either
// a label name or a line number of the program.
func (labels Labels) Resolve(target string, lines int) (lineno int, err error) {
	n, nerr := strconv.Atoi(target)
	if nerr == nil {
		if n < 1 || n > lines {
			err = ErrLabelMissing(target)
			return
		}
		lineno = n
		return
	}

	lineno, ok := labels[strings.ToUpper(target)]
	if !ok {
		err = ErrLabelMissing(target)
		return
	}

	return
}

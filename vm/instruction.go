package vm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Instruction is a decoded source line.
type Instruction struct {
	Label  string // Declared label, if any.
	Opcode Opcode // OP_NONE for a label-only or empty line.
	Value  int    // Constant, address or count operand.
	Target string // Jump target: label name or line number.
}

// String returns the canonical source text of the instruction.
func (inst Instruction) String() string {
	var text string
	switch inst.Opcode.Operand() {
	case OPERAND_NONE:
		text = inst.Opcode.String()
	case OPERAND_TARGET:
		text = fmt.Sprintf("%v %v", inst.Opcode, inst.Target)
	default:
		text = fmt.Sprintf("%v %d", inst.Opcode, inst.Value)
	}

	if inst.Opcode == OP_NONE {
		text = ""
	}

	if len(inst.Label) != 0 {
		text = strings.TrimSpace(inst.Label + ": " + text)
	}

	return text
}

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// stripComment removes a ';' comment and surrounding space.
func stripComment(text string) string {
	text, _, _ = strings.Cut(text, ";")
	return strings.TrimSpace(text)
}

// splitLabel separates a leading label declaration from the rest of a line.
// Labels are written 'NAME:' or, when NAME is not a mnemonic, 'NAME OPCODE'.
func splitLabel(text string) (label string, rest string) {
	rest = text

	before, after, found := strings.Cut(text, ":")
	if found {
		tok := strings.TrimSpace(before)
		if reIdentifier.MatchString(tok) {
			label = tok
			rest = strings.TrimSpace(after)
			return
		}
	}

	words := strings.Fields(text)
	if len(words) >= 2 && reIdentifier.MatchString(words[0]) {
		_, first := LookupOpcode(words[0])
		_, second := LookupOpcode(words[1])
		if !first && second {
			label = words[0]
			rest = strings.TrimSpace(strings.TrimPrefix(text, words[0]))
		}
	}

	return
}

// exprEval evaluates a $(...) operand expression.
func exprEval(expr string, lineno int) (value int, err error) {
	thread := starlark.Thread{Name: "mepa"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineno),
	}
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", "rc="+expr+"\n", pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// Decode parses one source line into an Instruction.
// Mnemonics and labels are case-insensitive.
func Decode(text string, lineno int) (inst Instruction, err error) {
	defer func() {
		if err != nil {
			err = &ErrDecode{LineNo: lineno, Line: text, Err: err}
		}
	}()

	label, rest := splitLabel(stripComment(text))
	inst.Label = label

	// Do $() evaluations
	rest = reExpression.ReplaceAllStringFunc(rest, func(str string) string {
		value, _err := exprEval(str[2:len(str)-1], lineno)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(rest)
	if len(words) == 0 {
		return
	}

	op, ok := LookupOpcode(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}
	inst.Opcode = op

	args := words[1:]
	kind := op.Operand()
	switch {
	case kind == OPERAND_NONE && len(args) > 0:
		err = ErrOperandExtra
		return
	case kind == OPERAND_NONE:
		return
	case len(args) == 0:
		err = ErrOperandMissing
		return
	case len(args) > 1:
		err = ErrOperandExtra
		return
	}

	word := args[0]
	switch kind {
	case OPERAND_TARGET:
		if !reIdentifier.MatchString(word) {
			if _, nerr := strconv.Atoi(word); nerr != nil {
				err = ErrParseTarget(word)
				return
			}
		}
		inst.Target = word
	case OPERAND_CONST, OPERAND_ADDRESS, OPERAND_COUNT:
		inst.Value, err = strconv.Atoi(word)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		if kind == OPERAND_COUNT && inst.Value < 0 {
			err = ErrOperandNegative
			return
		}
	}

	return
}

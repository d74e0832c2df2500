package repl

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	ErrCommandInvalid = errors.New(f("invalid command"))
	ErrNoCode         = errors.New(f("no code in memory"))
	ErrFilename       = errors.New(f("specify the file name"))
	ErrInsUsage       = errors.New(f("INS requires <LINE> <INSTRUCTION>"))
	ErrDelUsage       = errors.New(f("DEL requires <LINE> or <FIRST> <LAST>"))
	ErrDebugOnly      = errors.New(f("STACK is only available in debug mode"))
	ErrUseDebug       = errors.New(f("not in debug mode, use DEBUG first"))
)

// ErrLineNumber is a line number argument that is not a number.
type ErrLineNumber string

func (err ErrLineNumber) Error() string {
	return f("invalid line number '%v'", string(err))
}

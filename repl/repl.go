// Package repl is the interactive MEPA shell: it edits a program buffer and
// runs or debugs it.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/mepa/debugger"
	"github.com/ezrec/mepa/listing"
)

const (
	PROMPT    = "> "
	PAGE_SIZE = 20 // Default LIST page size.
)

// Repl is a shell session.
type Repl struct {
	Verbose  bool // If set, enables verbose logging.
	PageSize int  // Lines per LIST page.
	MaxSteps int  // Instruction limit of RUN; 0 is unlimited.

	Buffer   listing.Buffer
	Debugger debugger.Debugger

	out     io.Writer
	scanner *bufio.Scanner
}

// NewRepl creates a shell reading commands from in and writing to out.
func NewRepl(in io.Reader, out io.Writer) (r *Repl) {
	r = &Repl{
		PageSize: PAGE_SIZE,
		out:      out,
		scanner:  bufio.NewScanner(in),
	}
	r.Debugger.Output = out

	return
}

// println writes a line of output.
func (r *Repl) println(text string) {
	fmt.Fprintln(r.out, text)
}

// readLine prompts and reads a line of input. ok is false at end of input.
func (r *Repl) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		return
	}

	line = strings.TrimSpace(r.scanner.Text())
	ok = true
	return
}

// confirm asks a yes/no question.
func (r *Repl) confirm(question string) bool {
	answer, ok := r.readLine(question + " (y/n): ")
	return ok && strings.EqualFold(answer, "y")
}

// Run reads and executes commands until EXIT or end of input.
func (r *Repl) Run(ctx context.Context) (err error) {
	r.Buffer.Verbose = r.Verbose
	r.Debugger.Verbose = r.Verbose

	r.println(f("MEPA interpreter - type 'EXIT' to quit"))

	for {
		line, ok := r.readLine(PROMPT)
		if !ok {
			r.println("")
			r.println(f("Exiting..."))
			return r.scanner.Err()
		}

		if r.Execute(ctx, line) {
			return
		}
	}
}

// Execute runs one command line. It returns true when the shell should exit.
func (r *Repl) Execute(ctx context.Context, line string) (exit bool) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	name, args, _ := strings.Cut(line, " ")
	name = strings.ToUpper(name)
	args = strings.TrimSpace(args)

	cmd, ok := commandMap[name]
	if !ok {
		r.println(f("error: %v", ErrCommandInvalid))
		return
	}

	if cmd.EndsDebug && r.Debugger.Active() {
		r.debugStop()
	}

	exit, err := cmd.Exec(r, ctx, args)
	if err != nil {
		r.println(f("error: %v", err))
	}

	return
}

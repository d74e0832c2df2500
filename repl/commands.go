package repl

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/mepa/debugger"
	"github.com/ezrec/mepa/vm"
)

// Command is a shell command.
type Command struct {
	Name      string
	Usage     string
	Summary   string
	EndsDebug bool // Leaves debug mode before executing.
	Exec      func(r *Repl, ctx context.Context, args string) (exit bool, err error)
}

var commands []*Command

var commandMap map[string]*Command

func init() {
	commands = []*Command{
		{Name: "LOAD", Usage: "LOAD <file>", Summary: "load a program file", EndsDebug: true, Exec: loadExec},
		{Name: "LIST", Usage: "LIST", Summary: "list the program, one page at a time", Exec: listExec},
		{Name: "INS", Usage: "INS <line> <instruction>", Summary: "insert a line", EndsDebug: true, Exec: insExec},
		{Name: "DEL", Usage: "DEL <line> [<last>]", Summary: "delete a line or a range of lines", EndsDebug: true, Exec: delExec},
		{Name: "SAVE", Usage: "SAVE [<file>]", Summary: "save the program", Exec: saveExec},
		{Name: "RUN", Usage: "RUN", Summary: "run the program", EndsDebug: true, Exec: runExec},
		{Name: "DEBUG", Usage: "DEBUG", Summary: "start debug mode", Exec: debugExec},
		{Name: "NEXT", Usage: "NEXT", Summary: "execute the next instruction (debug mode)", Exec: nextExec},
		{Name: "STOP", Usage: "STOP", Summary: "leave debug mode", Exec: stopExec},
		{Name: "STACK", Usage: "STACK", Summary: "show memory and stack (debug mode)", Exec: stackExec},
		{Name: "HELP", Usage: "HELP", Summary: "show this help", Exec: helpExec},
		{Name: "EXIT", Usage: "EXIT", Summary: "quit", EndsDebug: true, Exec: exitExec},
	}

	commandMap = make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name] = cmd
	}
}

// saveChanges offers to save a modified buffer.
func (r *Repl) saveChanges(question string) {
	if !r.Buffer.Modified || !r.confirm(question) {
		return
	}

	err := r.Buffer.SaveFile("")
	if err != nil {
		r.println(f("error saving: %v", err))
		return
	}
	r.println(f("File '%v' saved", r.Buffer.Filename))
}

func (r *Repl) debugStop() {
	r.Debugger.Stop()
	r.println(f("Debug mode ended"))
}

// printLine shows a program line as 'NUMBER TEXT'.
func (r *Repl) printLine(lineno int, text string) {
	r.println(strings.TrimSpace(strconv.Itoa(lineno) + " " + text))
}

func lineNumber(word string) (lineno int, err error) {
	lineno, err = strconv.Atoi(word)
	if err != nil {
		err = ErrLineNumber(word)
	}
	return
}

func exitExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	r.saveChanges(f("There are unsaved changes. Save before exiting?"))
	r.println(f("Exiting..."))
	exit = true
	return
}

func helpExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	for _, cmd := range commands {
		r.println(f("  %-26v %v", cmd.Usage, cmd.Summary))
	}
	return
}

func loadExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if len(args) == 0 {
		err = ErrFilename
		return
	}

	r.saveChanges(f("There are unsaved changes. Save before loading another file?"))

	err = r.Buffer.LoadFile(args)
	if err != nil {
		return
	}

	r.println(f("File '%v' loaded", args))
	return
}

func listExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if r.Buffer.Len() == 0 {
		err = ErrNoCode
		return
	}

	size := r.PageSize
	if size < 1 {
		size = PAGE_SIZE
	}

	for first := 1; first <= r.Buffer.Len(); first += size {
		for lineno, text := range r.Buffer.Page(first, size) {
			r.printLine(lineno, text)
		}
		if first+size <= r.Buffer.Len() {
			_, ok := r.readLine(f("Press Enter to continue."))
			if !ok {
				break
			}
		}
	}

	return
}

func insExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	word, text, _ := strings.Cut(args, " ")
	text = strings.TrimSpace(text)
	if len(word) == 0 || len(text) == 0 {
		err = ErrInsUsage
		return
	}

	lineno, err := lineNumber(word)
	if err != nil {
		return
	}

	err = r.Buffer.Insert(lineno, text)
	if err != nil {
		return
	}

	r.println(f("Line inserted:"))
	r.printLine(lineno, text)
	return
}

func delExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	words := strings.Fields(args)
	if len(words) < 1 || len(words) > 2 {
		err = ErrDelUsage
		return
	}

	first, err := lineNumber(words[0])
	if err != nil {
		return
	}
	last := first
	if len(words) == 2 {
		last, err = lineNumber(words[1])
		if err != nil {
			return
		}
	}

	removed, err := r.Buffer.DeleteRange(first, last)
	if err != nil {
		return
	}

	if len(removed) == 1 {
		r.println(f("Line removed:"))
	} else {
		r.println(f("Lines removed:"))
	}
	for n, text := range removed {
		r.printLine(first+n, text)
	}
	return
}

func saveExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if r.Buffer.Len() == 0 {
		err = ErrNoCode
		return
	}

	err = r.Buffer.SaveFile(args)
	if err != nil {
		return
	}

	r.println(f("File '%v' saved", r.Buffer.Filename))
	return
}

func runExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if r.Buffer.Len() == 0 {
		err = ErrNoCode
		return
	}

	m := vm.NewMachine(r.Buffer.Program())
	m.Output = r.out
	m.Verbose = r.Verbose

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_, err = m.RunContext(ctx, r.MaxSteps)
	switch {
	case errors.Is(err, context.Canceled):
		r.println(f("Interrupted at line %d", m.Pc()))
		err = nil
	case errors.Is(err, vm.ErrStepLimit):
		r.println(f("Stopped at line %d after %d steps", m.Pc(), m.Steps()))
		err = nil
	case err != nil:
		r.println(f("Execution error: %v", err))
		err = nil
	default:
		if r.Verbose {
			r.println(f("%d steps", m.Steps()))
		}
	}

	return
}

// showNext prints the line the debugger will execute next.
func (r *Repl) showNext(snap vm.Snapshot) {
	switch snap.Status {
	case vm.STATUS_HALTED:
		r.println(f("Program finished"))
	case vm.STATUS_FAULTED:
		r.println(f("Program faulted: %v", snap.Err))
	default:
		if snap.Line > r.Buffer.Len() {
			r.println(f("Program finished"))
			return
		}
		r.printLine(snap.Line, snap.Text)
	}
}

func debugExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if r.Buffer.Len() == 0 {
		err = ErrNoCode
		return
	}

	r.println(f("Starting debug mode:"))
	snap := r.Debugger.Enter(r.Buffer.Program())
	r.showNext(snap)
	return
}

func nextExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if !r.Debugger.Active() {
		err = ErrUseDebug
		return
	}

	snap, _ := r.Debugger.Next()
	r.showNext(snap)
	return
}

func stopExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	if !r.Debugger.Active() {
		err = debugger.ErrNotDebugging
		return
	}

	r.debugStop()
	return
}

func stackExec(r *Repl, ctx context.Context, args string) (exit bool, err error) {
	snap, err := r.Debugger.Stack()
	if err != nil {
		err = ErrDebugOnly
		return
	}

	if snap.Empty() {
		r.println(f("Stack empty"))
		return
	}

	r.println(f("Stack contents"))

	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{f("address"), f("value"), f("area")})
	for addr, value := range snap.Cells() {
		area := f("stack")
		if addr < len(snap.Memory) {
			area = f("memory")
		}
		tw.AppendRow(table.Row{addr, value, area})
	}
	tw.Render()

	return
}

// Package debugger single-steps a MEPA machine and exposes its state
// between steps.
package debugger

import (
	"io"
	"log"

	"github.com/ezrec/mepa/vm"
)

// Debugger holds at most one debug session.
type Debugger struct {
	Verbose bool      // If set, logs session changes and executed lines.
	Output  io.Writer // IMPR output of the debugged program.

	machine *vm.Machine
}

// Active returns true while a debug session exists, including one that has
// halted or faulted and is kept for inspection.
func (dbg *Debugger) Active() bool {
	return dbg.machine != nil
}

// Enter starts a session for the program, unless one is already in progress.
// A session that has halted or faulted is replaced by a fresh one.
func (dbg *Debugger) Enter(prog *vm.Program) (snap vm.Snapshot) {
	if dbg.machine == nil || dbg.machine.Status().Done() {
		if dbg.Verbose {
			log.Printf("debugger: enter, %d lines", prog.Len())
		}
		dbg.machine = vm.NewMachine(prog)
		dbg.machine.Output = dbg.Output
		dbg.machine.Verbose = dbg.Verbose
	}

	return dbg.machine.Snapshot()
}

// Next executes exactly one instruction. The returned error is the fault, if
// the machine faulted; the session stays for inspection either way.
func (dbg *Debugger) Next() (snap vm.Snapshot, err error) {
	if dbg.machine == nil {
		err = ErrNotDebugging
		return
	}

	_, err = dbg.machine.Step()
	snap = dbg.machine.Snapshot()

	if dbg.Verbose && snap.Status.Done() {
		log.Printf("debugger: %v after %d steps", snap.Status, snap.Steps)
	}

	return
}

// Stack returns the current state without changing it.
func (dbg *Debugger) Stack() (snap vm.Snapshot, err error) {
	if dbg.machine == nil {
		err = ErrNotDebugging
		return
	}

	snap = dbg.machine.Snapshot()
	return
}

// Stop discards the session without finishing it.
func (dbg *Debugger) Stop() {
	if dbg.Verbose && dbg.machine != nil {
		log.Printf("debugger: stop at line %d", dbg.machine.Pc())
	}
	dbg.machine = nil
}

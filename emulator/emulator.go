// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled MARIE programs one session at a time.
package emulator

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/ezrec/marie/cpu"
)

// State is the execution state of an emulator session.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_IDLE    = State(0) // idle
	STATE_RUNNING = State(1) // running
	STATE_PAUSED  = State(2) // paused
	STATE_HALTED  = State(3) // halted
)

// Config is the session configuration, fixed at construction.
type Config struct {
	Verbose   bool          // If set, enables verbose logging.
	Delay     time.Duration // Delay between steps of Run.
	StepLimit int           // If non-zero, maximum instructions per load.

	OnOutput         func(value uint16) // Called for each OUTPUT.
	OnError          func(err error)    // Called when a fatal error halts the session.
	OnInputRequested func()             // Called when INPUT pauses the session.
	OnProgramEnd     func()             // Called on HALT or Stop.
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	AC, PC, IR, MAR, MBR uint16

	Running bool
	State   State

	Memory [cpu.MEMORY_SIZE]uint16
	Output []uint16
}

// Emulator is a single execution session. CPU + input queue + output log.
type Emulator struct {
	Config

	ID      string       // Unique session identifier.
	Program *cpu.Program // Currently loaded program, if loaded with LoadProgram.

	mutex   sync.Mutex
	machine *cpu.Cpu
	state   State
	input   []uint16
	output  []uint16
	pending []func()
}

// NewEmulator creates a new, idle emulator session.
func NewEmulator(config Config) (emu *Emulator) {
	emu = &Emulator{
		Config:  config,
		ID:      xid.New().String(),
		machine: cpu.NewCpu(),
		state:   STATE_IDLE,
	}

	emu.machine.Verbose = config.Verbose
	emu.machine.SetConsole(console{emu})

	return
}

// console attaches the input queue and output log to the CPU.
type console struct {
	emu *Emulator
}

func (c console) Input() (value uint16, ok bool) {
	emu := c.emu
	if len(emu.input) == 0 {
		return
	}

	value = emu.input[0]
	emu.input = emu.input[1:]
	ok = true
	return
}

func (c console) Output(value uint16) {
	emu := c.emu
	emu.output = append(emu.output, value)
	if emu.OnOutput != nil {
		emu.pending = append(emu.pending, func() { emu.OnOutput(value) })
	}
}

func (emu *Emulator) logf(format string, args ...any) {
	if emu.Verbose {
		log.Printf("emulator %v: "+format, append([]any{emu.ID}, args...)...)
	}
}

// Load resets memory, registers, the input queue and the output log, copies
// the words into memory, and starts the session.
func (emu *Emulator) Load(words []uint16) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	err = emu.machine.Load(words)
	if err != nil {
		return
	}

	emu.Program = nil
	emu.input = nil
	emu.output = nil
	emu.state = STATE_RUNNING

	emu.logf("load %d words", len(words))

	return
}

// LoadProgram loads an assembled program, keeping its line information.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	err = emu.Load(prog.Binary())
	if err != nil {
		return
	}

	emu.mutex.Lock()
	emu.Program = prog
	emu.mutex.Unlock()

	return
}

// State returns the current execution state.
func (emu *Emulator) State() State {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.state
}

// lineNo returns the source line for an address.
func (emu *Emulator) lineNo(addr uint16) int {
	if emu.Program == nil {
		return 0
	}

	op := emu.Program.Debug(addr)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// LineNo returns the source line number of the instruction at PC.
func (emu *Emulator) LineNo() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.lineNo(emu.machine.Get(cpu.REG_PC))
}

// Step performs a single instruction cycle. Only valid while running.
func (emu *Emulator) Step() (state State, err error) {
	emu.mutex.Lock()
	state, err = emu.step()
	notify := emu.pending
	emu.pending = nil
	emu.mutex.Unlock()

	for _, fn := range notify {
		fn()
	}

	return
}

// step runs one cycle with the lock held, queueing notifications.
func (emu *Emulator) step() (state State, err error) {
	if emu.state != STATE_RUNNING {
		err = ErrNotRunning
		state = emu.state
		return
	}

	addr := emu.machine.Get(cpu.REG_PC)

	var trap cpu.Trap
	if emu.StepLimit > 0 && emu.machine.Ticks >= emu.StepLimit {
		err = ErrStepLimit
	} else {
		trap, err = emu.machine.Tick()
	}

	if err != nil {
		err = &ErrRuntime{LineNo: emu.lineNo(addr), Address: addr, Err: err}
		emu.logf("%v", err)
		emu.state = STATE_HALTED
		if emu.OnError != nil {
			fatal := err
			emu.pending = append(emu.pending, func() { emu.OnError(fatal) })
		}
		state = emu.state
		return
	}

	switch trap {
	case cpu.TRAP_INPUT:
		emu.logf("paused for input at %03x", addr)
		emu.state = STATE_PAUSED
		if emu.OnInputRequested != nil {
			emu.pending = append(emu.pending, emu.OnInputRequested)
		}
	case cpu.TRAP_HALT:
		emu.logf("halted at %03x", addr)
		emu.state = STATE_HALTED
		if emu.OnProgramEnd != nil {
			emu.pending = append(emu.pending, emu.OnProgramEnd)
		}
	}

	state = emu.state
	return
}

// Run steps until the session leaves the running state, waiting Delay
// between steps. Returns nil when paused for input or halted normally.
// Cancelling the context stops the session.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	if emu.State() != STATE_RUNNING {
		err = ErrNotRunning
		return
	}

	for {
		var state State
		state, err = emu.Step()
		if errors.Is(err, ErrNotRunning) {
			// Stopped between steps.
			err = nil
			return
		}
		if err != nil || state != STATE_RUNNING {
			return
		}

		if emu.Delay > 0 {
			timer := time.NewTimer(emu.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}

		if ctx.Err() != nil {
			emu.Stop()
			err = ctx.Err()
			return
		}
	}
}

// SetInput validates values to 16 bits and appends them to the input queue.
// On failure nothing is queued.
func (emu *Emulator) SetInput(values []int) (err error) {
	queued := make([]uint16, 0, len(values))
	for n, value := range values {
		if value < 0 || value > cpu.WORD_MASK {
			err = cpu.ErrRange{Name: f("INPUT[%d]", n), Value: value, Limit: cpu.WORD_MASK}
			return
		}
		queued = append(queued, uint16(value))
	}

	emu.mutex.Lock()
	emu.input = append(emu.input, queued...)
	emu.mutex.Unlock()

	return
}

// Resume continues a session paused for input.
func (emu *Emulator) Resume(ctx context.Context) (err error) {
	emu.mutex.Lock()
	if emu.state != STATE_PAUSED {
		emu.mutex.Unlock()
		err = ErrNotPaused
		return
	}
	emu.state = STATE_RUNNING
	emu.mutex.Unlock()

	emu.logf("resumed")

	return emu.Run(ctx)
}

// Stop halts the session, whatever its state.
func (emu *Emulator) Stop() {
	emu.mutex.Lock()
	emu.state = STATE_HALTED
	emu.mutex.Unlock()

	emu.logf("stopped")

	if emu.OnProgramEnd != nil {
		emu.OnProgramEnd()
	}
}

// Output returns a copy of the output log.
func (emu *Emulator) Output() []uint16 {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return slices.Clone(emu.output)
}

// Ticks returns the instructions executed since the last load.
func (emu *Emulator) Ticks() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.machine.Ticks
}

// Snapshot returns a copy of the registers, memory and output log.
func (emu *Emulator) Snapshot() (snap Snapshot) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	m := emu.machine
	snap = Snapshot{
		AC:      m.Get(cpu.REG_AC),
		PC:      m.Get(cpu.REG_PC),
		IR:      m.Get(cpu.REG_IR),
		MAR:     m.Get(cpu.REG_MAR),
		MBR:     m.Get(cpu.REG_MBR),
		Running: emu.state == STATE_RUNNING,
		State:   emu.state,
		Memory:  m.Memory,
		Output:  slices.Clone(emu.output),
	}

	return
}

// String returns the register state as a string.
func (emu *Emulator) String() string {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.machine.String()
}

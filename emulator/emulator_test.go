package emulator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/marie/cpu"
)

func loadSource(t *testing.T, emu *Emulator, program []string) {
	prog, err := cpu.Assemble(strings.Join(program, "\n"))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.LoadProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	assert.False(emu.Verbose)
	assert.NotEmpty(emu.ID)
	assert.NotEqual(emu.ID, NewEmulator(Config{}).ID)
	assert.Equal(STATE_IDLE, emu.State())
	assert.Nil(emu.Program)
	assert.Equal(0, emu.LineNo())

	state, err := emu.Step()
	assert.ErrorIs(err, ErrNotRunning)
	assert.Equal(STATE_IDLE, state)

	assert.ErrorIs(emu.Run(context.Background()), ErrNotRunning)
	assert.ErrorIs(emu.Resume(context.Background()), ErrNotPaused)

	err = emu.Load(make([]uint16, cpu.MEMORY_SIZE+1))
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
	assert.Equal(STATE_IDLE, emu.State())
}

func TestEmulatorSimple(t *testing.T) {
	assert := assert.New(t)

	var outputs []uint16
	var ended int
	emu := NewEmulator(Config{
		OnOutput:     func(value uint16) { outputs = append(outputs, value) },
		OnProgramEnd: func() { ended++ },
		OnError:      func(err error) { t.Error(err) },
	})

	err := emu.Load([]uint16{4099, 24576, 28672, 12})
	assert.NoError(err)
	assert.Equal(STATE_RUNNING, emu.State())

	state, err := emu.Step()
	assert.NoError(err)
	assert.Equal(STATE_RUNNING, state)

	snap := emu.Snapshot()
	assert.Equal(uint16(12), snap.AC)
	assert.Equal(uint16(1), snap.PC)
	assert.Equal(uint16(4099), snap.IR)
	assert.Equal(uint16(0), snap.MAR)
	assert.Equal(uint16(4099), snap.MBR)
	assert.True(snap.Running)
	assert.Equal(uint16(12), snap.Memory[3])

	err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal([]uint16{12}, outputs)
	assert.Equal([]uint16{12}, emu.Output())
	assert.Equal(1, ended)
	assert.Equal(3, emu.Ticks())

	snap = emu.Snapshot()
	assert.False(snap.Running)
	assert.Equal(STATE_HALTED, snap.State)

	state, err = emu.Step()
	assert.ErrorIs(err, ErrNotRunning)
	assert.Equal(STATE_HALTED, state)
}

func TestEmulatorInput(t *testing.T) {
	assert := assert.New(t)

	var requested int
	emu := NewEmulator(Config{
		OnInputRequested: func() { requested++ },
	})

	loadSource(t, emu, []string{
		"input",
		"output",
		"halt",
	})

	ctx := context.Background()

	err := emu.Run(ctx)
	assert.NoError(err)
	assert.Equal(STATE_PAUSED, emu.State())
	assert.Equal(1, requested)
	assert.Equal(1, emu.LineNo())
	assert.Equal(uint16(0), emu.Snapshot().PC)

	assert.ErrorIs(emu.Run(ctx), ErrNotRunning)

	// Invalid input queues nothing.
	err = emu.SetInput([]int{1, 65536})
	assert.ErrorIs(err, cpu.ErrRange{})
	err = emu.SetInput([]int{-1})
	assert.ErrorIs(err, cpu.ErrRange{})
	assert.Equal(STATE_PAUSED, emu.State())

	err = emu.SetInput([]int{7})
	assert.NoError(err)

	err = emu.Resume(ctx)
	assert.NoError(err)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal([]uint16{7}, emu.Output())
	assert.Equal(1, requested)
}

func TestEmulatorSum(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	loadSource(t, emu, []string{
		"// Sum input values until a zero is read.",
		"loop,  input",
		"       skipcond 400",
		"       jump accum",
		"       load sum",
		"       output",
		"       halt",
		"accum, add sum",
		"       store sum",
		"       jump loop",
		"sum,   dec 0",
	})

	err := emu.SetInput([]int{3, 4, 5, 0})
	assert.NoError(err)

	err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal([]uint16{12}, emu.Output())
}

func TestEmulatorFatal(t *testing.T) {
	assert := assert.New(t)

	var fatal error
	var ended int
	emu := NewEmulator(Config{
		OnError:      func(err error) { fatal = err },
		OnProgramEnd: func() { ended++ },
	})

	loadSource(t, emu, []string{
		"load a",
		"output",
		"add a",
		"halt",
		"a, hex FFFF",
	})

	err := emu.Run(context.Background())
	assert.ErrorIs(err, cpu.ErrOverflow)
	assert.Equal(err, fatal)
	assert.Equal(0, ended)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
		assert.Equal(uint16(2), rt.Address)
	}

	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal([]uint16{0xffff}, emu.Output())
	assert.Equal(uint16(0xffff), emu.Snapshot().AC)
}

func TestEmulatorStop(t *testing.T) {
	assert := assert.New(t)

	var emu *Emulator
	var ended int
	emu = NewEmulator(Config{
		OnOutput: func(value uint16) {
			if len(emu.Output()) == 3 {
				emu.Stop()
			}
		},
		OnProgramEnd: func() { ended++ },
	})

	loadSource(t, emu, []string{
		"loop, output",
		"      jump loop",
	})

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal(3, len(emu.Output()))
	assert.Equal(1, ended)
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	loadSource(t, emu, []string{
		"loop, jump loop",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(STATE_HALTED, emu.State())
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{StepLimit: 5})

	loadSource(t, emu, []string{
		"loop, jump loop",
	})

	err := emu.Run(context.Background())
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal(5, emu.Ticks())
}

func TestEmulatorReload(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	loadSource(t, emu, []string{
		"load x",
		"output",
		"halt",
		"x, dec 9",
	})
	assert.Equal(1, emu.LineNo())
	assert.NoError(emu.SetInput([]int{1, 2}))

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal([]uint16{9}, emu.Output())

	err = emu.Load([]uint16{0x5000})
	assert.NoError(err)
	assert.Nil(emu.Program)
	assert.Equal(STATE_RUNNING, emu.State())
	assert.Empty(emu.Output())
	assert.Equal(0, emu.Ticks())
	assert.Equal(0, emu.LineNo())

	snap := emu.Snapshot()
	assert.Equal(uint16(0), snap.AC)
	assert.Equal(uint16(0), snap.Memory[3])

	// Input queued before the reload is dropped.
	err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(STATE_PAUSED, emu.State())
}

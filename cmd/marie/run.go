package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	goio "io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/marie/emulator"
	"github.com/ezrec/marie/io"
	"github.com/ezrec/marie/translate"
)

var (
	runInput    string
	runOutput   string
	runRadix    string
	runDelay    time.Duration
	runMaxSteps int
	runDump     bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Assemble and run a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		radix, err := io.ParseRadix(runRadix)
		if err != nil {
			return fmt.Errorf("--radix %v: %w", runRadix, err)
		}

		prog, err := assembleFile(args[0])
		if err != nil {
			return fmt.Errorf("%v: %w", args[0], err)
		}

		tape := &io.Tape{Radix: radix}

		interactive := runInput == "-"
		if interactive {
			tape.Input = os.Stdin
		} else {
			inf, err := os.Open(runInput)
			if err != nil {
				return err
			}
			defer inf.Close()
			tape.Input = inf
		}

		ouf := os.Stdout
		if runOutput != "-" {
			ouf, err = os.Create(runOutput)
			if err != nil {
				return
			}
		}
		w := bufio.NewWriter(ouf)
		atexit.Register(func() {
			w.Flush()
			ouf.Close()
		})
		tape.Output = w

		emu := emulator.NewEmulator(emulator.Config{
			Verbose:   verbose,
			Delay:     runDelay,
			StepLimit: runMaxSteps,
			OnOutput: func(value uint16) {
				err := tape.Send(value)
				if err != nil {
					log.Printf("output: %v", err)
				}
				if runDelay > 0 || interactive {
					w.Flush()
				}
			},
			OnInputRequested: func() {
				if interactive {
					w.Flush()
					fmt.Fprint(os.Stderr, translate.From("input (%v): ", radix))
				}
			},
		})

		err = emu.LoadProgram(prog)
		if err != nil {
			return
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		err = emu.Run(ctx)
		for err == nil && emu.State() == emulator.STATE_PAUSED {
			var values []int
			values, err = tape.Receive()
			if errors.Is(err, goio.EOF) {
				err = fmt.Errorf("line %d: %w", emu.LineNo(), goio.ErrUnexpectedEOF)
				break
			}
			if err != nil {
				break
			}
			err = emu.SetInput(values)
			if err != nil {
				break
			}
			err = emu.Resume(ctx)
		}

		if runDump {
			dump(emu)
		}

		if verbose {
			log.Printf("%v instructions", translate.Number(emu.Ticks()))
		}

		if err != nil {
			return
		}

		return w.Flush()
	},
}

// dump writes the final registers and output log to stderr.
func dump(emu *emulator.Emulator) {
	snap := emu.Snapshot()
	pp.Fprintln(os.Stderr, struct {
		State  string
		AC     uint16
		PC     uint16
		IR     uint16
		MAR    uint16
		MBR    uint16
		Line   int
		Output []uint16
	}{
		State:  snap.State.String(),
		AC:     snap.AC,
		PC:     snap.PC,
		IR:     snap.IR,
		MAR:    snap.MAR,
		MBR:    snap.MBR,
		Line:   emu.LineNo(),
		Output: snap.Output,
	})
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", "Input file, one or more values per line")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "-", "Output file")
	runCmd.Flags().StringVarP(&runRadix, "radix", "r", "dec", "Input and output radix: dec, hex, bin or ascii")
	runCmd.Flags().DurationVarP(&runDelay, "delay", "d", 0, "Delay between instructions")
	runCmd.Flags().IntVarP(&runMaxSteps, "max-steps", "m", 0, "Stop after this many instructions (0 for no limit)")
	runCmd.Flags().BoolVar(&runDump, "dump", false, "Dump the final machine state to stderr")
	rootCmd.AddCommand(runCmd)
}

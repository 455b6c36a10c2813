package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	asmListing bool
	asmSymbols bool
	asmOutput  string
)

var asmCmd = &cobra.Command{
	Use:   "asm [file]",
	Short: "Assemble a source file and print its machine words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := assembleFile(args[0])
		if err != nil {
			return fmt.Errorf("%v: %w", args[0], err)
		}

		out := os.Stdout
		if asmOutput != "-" {
			out, err = os.Create(asmOutput)
			if err != nil {
				return
			}
		}

		w := bufio.NewWriter(out)
		atexit.Register(func() {
			w.Flush()
			out.Close()
		})

		if asmListing {
			err = prog.Listing(w)
			if err != nil {
				return
			}
		} else {
			for _, code := range prog.Codes() {
				_, err = fmt.Fprintf(w, "%04X\n", uint16(code))
				if err != nil {
					return
				}
			}
		}

		if asmSymbols {
			_, err = pp.Fprintln(os.Stderr, prog.Symbol)
			if err != nil {
				return
			}
		}

		return w.Flush()
	},
}

func init() {
	asmCmd.Flags().BoolVarP(&asmListing, "listing", "l", false, "Print an address, word and source listing")
	asmCmd.Flags().BoolVarP(&asmSymbols, "symbols", "s", false, "Dump the symbol table to stderr")
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "-", "Output file")
	rootCmd.AddCommand(asmCmd)
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/marie/cpu"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marie",
	Short: "Assemble and run programs for the MARIE educational computer.",
	Long: `marie assembles MARIE assembly source into 16-bit machine words, ` +
		`and runs them on a simulated MARIE machine with 4096 words of memory.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}

// assembleFile assembles a source file.
func assembleFile(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err = asm.Parse(inf)
	return
}

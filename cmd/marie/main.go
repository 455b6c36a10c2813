// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command marie assembles and runs MARIE programs.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tebeka/atexit"
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

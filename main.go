package main

import (
	"os"

	"github.com/bwoodyear/level-replay/benchmarks/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/solatis/pipecrack/cmd/pipecrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

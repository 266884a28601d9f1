package main

import (
	"os"

	"github.com/huidtask/task/internal/runner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := runner.Run(args...); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		return 1
	}
	return 0
}

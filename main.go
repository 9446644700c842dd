// relaxi is the command-line interface to the relaxed-memory instruction interpreter.
package main

import (
	"context"
	"os"

	"github.com/K-dizzled/isa-interprerter/internal/cli"
	"github.com/K-dizzled/isa-interprerter/internal/cli/cmd"
)

var (
	commands = []cli.Command{
		cmd.Run(),
	}
)

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}

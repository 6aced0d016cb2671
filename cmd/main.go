package main

import (
	"errors"
	"fmt"
	"os"

	"docgate"
	"docgate/cmd/commands"
)

func main() {
	if len(os.Args) < 2 {
		commands.HandleHelp(os.Args)
		commands.ExitOnError(errors.New("a command is required"))
	}

	switch os.Args[1] {
	case "run":
		commands.HandleRun(os.Args)

	case "help":
		commands.HandleHelp(os.Args)
		os.Exit(0)

	case "version":
		fmt.Println(docgate.StringVersion()) //nolint
		os.Exit(0)

	default:
		commands.HandleHelp(os.Args)
		commands.ExitOnError(fmt.Errorf("unknown command %q", os.Args[1]))
	}
}

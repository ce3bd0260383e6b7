package main

import (
	"fmt"
	"os"

	"github.com/systmms/opcred/cmd/chorus/commands"
)

var version = "0.1.0"

func main() {
	if err := commands.NewRootCommand(&commands.App{Version: version}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

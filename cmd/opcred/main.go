package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/systmms/opcred/cmd/opcred/commands"
)

var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	memguard.CatchInterrupt()

	err := run()
	memguard.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &commands.App{
		Version: version,
		Build:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}
	err := commands.NewRootCommand(app).Execute()
	if flushErr := app.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

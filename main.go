package main

import (
	"fmt"
	"os"
)

func main() {
	out := Output{Out: os.Stdout, Err: os.Stderr}

	var app *App
	newApp := func(out Output, clock Clock, dbPath string, verbose bool) *App {
		app = NewApp(out, clock, NewLogger(out.Err, verbose), dbPath)
		return app
	}

	rootCmd := SetupCommands(out, SystemClock, newApp)
	err := rootCmd.Execute()
	if app != nil {
		app.Close()
	}
	if err != nil {
		fmt.Fprintln(out.Err, err)
		os.Exit(1)
	}
}

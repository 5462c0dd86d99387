package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/noisysoil/repacker/internal/cmd"
)

func main() {
	// Interrupt cancels the run's context: no new jobs start, in-flight
	// jobs finish, and the summary still prints.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}

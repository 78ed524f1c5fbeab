package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/bracketmaker/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		if code := cli.ExitCode(err); code != 130 {
			fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
			os.Exit(code)
		}
		os.Exit(130)
	}
}

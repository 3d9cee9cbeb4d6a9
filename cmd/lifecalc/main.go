package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/meenmo/lifelib/cmd/lifecalc/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Execute(ctx, args, stdout, stderr)
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/cargodot/internal/cli"
	errs "github.com/matzehuels/cargodot/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(errs.ExitInterrupted) // Standard shell convention for SIGINT
		}
		cli.PrintError(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	// `cargo dot -o deps.dot` runs `cargo-dot dot -o deps.dot`.
	root.SetArgs(cli.StripSubcommand(os.Args[1:]))

	return root.ExecuteContext(ctx)
}

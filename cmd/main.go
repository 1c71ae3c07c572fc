package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rosterlab/internal/cli"
	"github.com/okian/rosterlab/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.NewRootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return 0
	}
	// Use the raw writer since logging may not be initialized yet.
	_, _ = io.WriteString(stderr, "rosterlab: "+err.Error()+"\n")
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}

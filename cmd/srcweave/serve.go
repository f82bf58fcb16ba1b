package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/srcweave/srcweave/pkg/serve"
)

var serveCacheSize int

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as streaming server for editor integration",
		Long: `Run srcweave as a long-lived streaming server that accepts render and
index requests via stdin and writes responses to stdout using NDJSON format.

Token streams are cached by content, so re-rendering an unchanged buffer
with new wrappers does not tokenize it again. The process exits when stdin
closes, a close request arrives, or SIGTERM is received.`,
		RunE: runServe,
	}
	cmd.Flags().IntVar(&serveCacheSize, "cache-size", serve.DefaultCacheSize, "Number of token streams to cache")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	session, err := serve.NewSession(serveCacheSize, newLogger())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(session, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}

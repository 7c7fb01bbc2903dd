package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// startPipelineCommand runs the chain monitor until the process is
// interrupted.
//
//	bcmonitor start
func startPipelineCommand(p Pipeline) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the chain monitor: explorer feeds, incoming payments, confirmations and broadcasts.",
		Usage:       "Runs the monitor. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			if err := p.Start(ctx); err != nil {
				return err
			}
			defer p.Close()

			select {
			case <-quit:
			case <-ctx.Done():
			}
			return nil
		},
	}
}

// Package cli is the bcmonitor command line.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/gabapcia/bcmonitor/internal/notification"

	"github.com/urfave/cli/v3"
)

// Pipeline is the long running monitor started by the start command.
type Pipeline interface {
	Start(ctx context.Context) error
	Close()
}

// Store is the record store behind the maintenance commands.
type Store interface {
	FetchNotifications(ctx context.Context, walletIDs []string, sinceID string, sinceTs time.Time) ([]notification.Notification, error)
	RemoveWallet(ctx context.Context, walletID string) error
}

// HistoryCache is the transaction history cache.
type HistoryCache interface {
	SoftResetTxHistoryCache(ctx context.Context, walletID string) error
	SoftResetAllTxHistoryCache(ctx context.Context) error
	ClearTxHistoryCache(ctx context.Context, walletID string) error
}

// Run parses os.Args and executes the selected command:
//
//   - `start`: runs the monitor until SIGINT or SIGTERM.
//   - `notifications`: prints the stored notifications of wallets.
//   - `cache soft-reset` / `cache clear`: invalidates history caches.
//   - `wallet remove`: deletes a wallet and everything it owns.
func Run(ctx context.Context, pipeline Pipeline, store Store, cache HistoryCache) error {
	return newApp(pipeline, store, cache).Run(ctx, os.Args)
}

func newApp(pipeline Pipeline, store Store, cache HistoryCache) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "bcmonitor",
		Description:           "Blockchain monitor of the multisig wallet service.",
		Usage:                 "bcmonitor [command] [flags]",
		Commands: []*cli.Command{
			startPipelineCommand(pipeline),
			listNotificationsCommand(store),
			cacheCommand(cache),
			walletCommand(store),
		},
	}
}

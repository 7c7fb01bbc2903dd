package cli

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
)

var errWalletOrAll = errors.New("either --wallet or --all is required")

// cacheCommand groups the history cache maintenance commands.
//
//	bcmonitor cache soft-reset --wallet W1
//	bcmonitor cache soft-reset --all
//	bcmonitor cache clear --wallet W1
func cacheCommand(cache HistoryCache) *cli.Command {
	return &cli.Command{
		Name:        "cache",
		Description: "Maintenance of the transaction history cache.",
		Usage:       "Invalidates or clears wallet history caches.",
		Commands: []*cli.Command{
			{
				Name:  "soft-reset",
				Usage: "Marks history caches stale. Cached pages are kept.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "wallet", Usage: "Wallet id"},
					&cli.BoolFlag{Name: "all", Usage: "Every wallet"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					switch {
					case c.Bool("all"):
						return cache.SoftResetAllTxHistoryCache(ctx)
					case c.String("wallet") != "":
						return cache.SoftResetTxHistoryCache(ctx, c.String("wallet"))
					default:
						return errWalletOrAll
					}
				},
			},
			{
				Name:  "clear",
				Usage: "Deletes the history cache of a wallet.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "wallet", Usage: "Wallet id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return cache.ClearTxHistoryCache(ctx, c.String("wallet"))
				},
			},
		},
	}
}

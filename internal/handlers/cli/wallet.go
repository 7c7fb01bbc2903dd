package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// walletCommand groups the wallet maintenance commands.
//
//	bcmonitor wallet remove --wallet W1
func walletCommand(store Store) *cli.Command {
	return &cli.Command{
		Name:        "wallet",
		Description: "Maintenance of stored wallets.",
		Usage:       "Manages wallet records.",
		Commands: []*cli.Command{
			{
				Name:  "remove",
				Usage: "Deletes a wallet with its addresses, proposals, notifications, subscriptions and caches.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "wallet", Usage: "Wallet id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return store.RemoveWallet(ctx, c.String("wallet"))
				},
			},
		},
	}
}

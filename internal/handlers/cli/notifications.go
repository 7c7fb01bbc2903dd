package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/urfave/cli/v3"
)

// listNotificationsCommand prints, one JSON document per line, the
// notifications of the given wallets in id order.
//
//	bcmonitor notifications --wallet W1 --wallet W2 --since 24h
func listNotificationsCommand(store Store) *cli.Command {
	return &cli.Command{
		Name:        "notifications",
		Description: "Prints the stored notifications of one or more wallets.",
		Usage:       "Lists notifications newer than a cursor and/or a time window.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "wallet",
				Usage:    "Wallet id, repeatable",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "since-id",
				Usage: "Only notifications with a greater id",
			},
			&cli.DurationFlag{
				Name:  "since",
				Usage: "Only notifications created within this window (e.g. 24h)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var sinceTs time.Time
			if d := c.Duration("since"); d > 0 {
				sinceTs = time.Now().Add(-d)
			}

			notifications, err := store.FetchNotifications(ctx, c.StringSlice("wallet"), c.String("since-id"), sinceTs)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			for _, n := range notifications {
				if err := enc.Encode(n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

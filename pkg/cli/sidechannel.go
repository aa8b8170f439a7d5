package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskdesk/pkg/repository/sidechannel"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
	"github.com/grc-lab/riskdesk/pkg/utils/safe"
)

// cmdSideChannel inspects records captured while the primary store was
// unavailable. Replay into the primary store is a manual operation; this
// command gives operators the data to do it.
func cmdSideChannel() *cli.Command {
	var path string
	var dump bool

	return &cli.Command{
		Name:    "sidechannel",
		Usage:   "Inspect the durable side-channel of degraded writes",
		Aliases: []string{"sc"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "sidechannel-path",
				Usage:       "Path of the durable local side-channel database",
				Value:       "riskdesk-sidechannel.db",
				Sources:     cli.EnvVars("RISKDESK_SIDECHANNEL_PATH"),
				Destination: &path,
			},
			&cli.BoolFlag{
				Name:        "dump",
				Usage:       "Print every record payload as JSON",
				Destination: &dump,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			side, err := sidechannel.New(path)
			if err != nil {
				return goerr.Wrap(err, "failed to open side-channel", goerr.V("path", path))
			}
			defer safe.Close(ctx, side)

			keys, err := side.Keys(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list side-channel keys")
			}

			var total int64
			for _, key := range keys {
				n, err := side.Count(ctx, key)
				if err != nil {
					return goerr.Wrap(err, "failed to count records", goerr.V("key", key))
				}
				total += n
				fmt.Printf("%-16s %d\n", key, n)
			}
			fmt.Printf("%-16s %d\n", "total", total)

			if !dump {
				return nil
			}

			for _, key := range keys {
				records, err := side.ReadAll(ctx, key)
				if err != nil {
					return goerr.Wrap(err, "failed to read records", goerr.V("key", key))
				}
				for _, rec := range records {
					fmt.Printf("%s\t%s\t%s\n", rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), rec.Key, string(rec.Payload))
				}
			}

			logging.From(ctx).Debug("side-channel inspection completed", "records", total)
			return nil
		},
	}
}

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kiwikv/kiwikv/internal/cli/connection"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:  "system",
		Usage: "Server introspection",
		Subcommands: []*cli.Command{
			{
				Name:   "ping",
				Usage:  "Check server liveness",
				Action: systemPing,
			},
		},
	}
}

func systemPing(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var reply struct {
		Status string `json:"status"`
	}
	if err := connection.ParseResponse(resp, &reply); err != nil {
		return err
	}

	fmt.Println(reply.Status)
	return nil
}

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kiwikv/kiwikv/internal/cli/connection"
	"github.com/kiwikv/kiwikv/internal/cli/output"
)

const requestTimeout = 10 * time.Second

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value for a key",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "KEY VALUE",
		Action:    setAction,
	}
}

// RemoveCommand returns the rm subcommand.
func RemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a key",
		ArgsUsage: "KEY",
		Action:    removeAction,
	}
}

func getAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("KEY argument required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Post(ctx, "/v1/get", map[string]string{"key": key})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var reply struct {
		Found bool   `json:"found"`
		Value string `json:"value"`
	}
	if err := connection.ParseResponse(resp, &reply); err != nil {
		return err
	}

	if !reply.Found {
		fmt.Println("Key not found")
		return nil
	}

	fmt.Println(reply.Value)
	return nil
}

func setAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: kiwikv-cli set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Post(ctx, "/v1/set", map[string]string{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return connection.ParseResponse(resp, nil)
}

func removeAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("KEY argument required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Post(ctx, "/v1/remove", map[string]string{"key": key})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var reply struct {
		Found bool `json:"found"`
	}
	if err := connection.ParseResponse(resp, &reply); err != nil {
		return err
	}

	if !reply.Found {
		fmt.Println("Key not found")
		return cli.Exit("", 1)
	}
	return nil
}

// CompactCommand returns the compact subcommand, triggering an
// immediate log compaction on the server.
func CompactCommand() *cli.Command {
	return &cli.Command{
		Name:   "compact",
		Usage:  "Trigger a log compaction",
		Action: compactAction,
	}
}

func compactAction(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Post(ctx, "/v1/compact", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return connection.ParseResponse(resp, nil)
}

// StatsCommand returns the stats subcommand, printing storage engine
// size and key-count statistics.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show storage engine statistics",
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/stats")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var stats map[string]any
	if err := connection.ParseResponse(resp, &stats); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
	return formatter.Format(os.Stdout, stats)
}

// Package command provides CLI command definitions for kiwikv-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: root command, global flags
//   - kv.go: get/set/rm/compact/stats subcommand group
//   - system.go: system subcommand group
//
// Commands follow a consistent pattern of parsing flags, calling the
// server's RPC surface, and formatting output.
package command

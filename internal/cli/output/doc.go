// Package output formats kiwikv-cli's replies for the terminal.
//
// Every subcommand that returns more than a single scalar (stats is
// the only one today — get/set/rm/ping print their one value or
// status line directly) pipes the server's decoded JSON reply through
// a Formatter chosen by the --output/-o global flag, so the same
// map[string]any can be rendered as a table, as JSON, or as YAML.
//
//   - formatter.go: the Formatter interface and NewFormatter factory.
//   - table.go: the KEY/VALUE table renderer, filtered by -w/--wide.
//   - json.go: indented-JSON rendering, every field always shown.
//   - yaml.go: YAML rendering, every field always shown.
package output

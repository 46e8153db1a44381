package output

import "io"

// Format names one of the output encodings kiwikv-cli supports.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter renders data (always a map[string]any decoded from a
// kiwikv-server JSON reply) to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter builds the formatter named by format, defaulting to a
// table. wide controls how much of a stats reply the table formatter
// shows; it has no effect on JSON or YAML, which always emit every
// field.
func NewFormatter(format Format, wide bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: wide}
	}
}

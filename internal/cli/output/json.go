package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats a stats reply as indented JSON, -o json's
// counterpart to -o table's filtered view: every field the engine
// reported is always present.
type JSONFormatter struct{}

// Format formats data as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats a stats reply as YAML, same field set as
// JSONFormatter.
type YAMLFormatter struct{}

// Format formats data as YAML.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

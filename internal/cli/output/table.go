package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"text/tabwriter"
)

// coreStatsFields lists the keys every engine's StatsMap is expected
// to carry (see internal/logstore.Engine.StatsMap and
// internal/altengine.Engine.StatsMap). In non-wide mode the table
// formatter shows only these, in this order, so "kiwikv-cli stats"
// reads the same two or three lines regardless of which engine is
// backing the server; -w/--wide adds whatever engine-specific fields
// (lsm_size_bytes, gc_bytes_reclaimed, ...) the reply also carries.
var coreStatsFields = []string{"engine", "log_size_bytes", "key_count", "total_size_bytes"}

// TableFormatter formats a stats reply as a two-column KEY/VALUE
// table.
type TableFormatter struct {
	// Wide shows every field the reply carries; otherwise only the
	// fields in coreStatsFields are shown.
	Wide bool
	// NoHeaders suppresses the KEY/VALUE header row.
	NoHeaders bool
}

// Format renders data as a table. data is normally the map[string]any
// an engine's StatsMap produces; a *Table or Table is rendered as-is,
// and anything else falls back to indented JSON since a table has
// nothing sensible to show for it.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	if t, ok := data.(*Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}
	if t, ok := data.(Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	m, ok := data.(map[string]any)
	if !ok {
		return fallbackJSON(w, data)
	}

	table := mapToTable(m, f.Wide)
	return table.RenderWithOptions(w, f.NoHeaders)
}

func fallbackJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// mapToTable renders m as a KEY/VALUE table. In non-wide mode only the
// keys named in coreStatsFields are shown, in that fixed order; in
// wide mode every key is shown, core fields first in their fixed
// order followed by whatever else the map carries, sorted.
func mapToTable(m map[string]any, wide bool) *Table {
	table := &Table{Headers: []string{"KEY", "VALUE"}}

	seen := make(map[string]bool, len(coreStatsFields))
	for _, key := range coreStatsFields {
		v, ok := m[key]
		if !ok {
			continue
		}
		seen[key] = true
		table.AddRow(key, formatValue(reflect.ValueOf(v)))
	}

	if !wide {
		return table
	}

	var rest []string
	for key := range m {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		table.AddRow(key, formatValue(reflect.ValueOf(m[key])))
	}

	return table
}

// formatValue renders a single stats value for display.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		s := v.String()
		if s == "" {
			return "-"
		}
		return s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		// The CLI decodes the stats reply's JSON into map[string]any, so
		// every byte count and key count arrives here as a float64; an
		// integral float prints without a misleading ".00" suffix.
		f := v.Float()
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%.2f", f)
	case reflect.Bool:
		if v.Bool() {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// Table is a rendered KEY/VALUE (or arbitrary) grid, used when a
// command has already shaped its own rows rather than handing a raw
// stats map to the formatter.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally suppressing the
// header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if !noHeaders && len(t.Headers) > 0 {
		for i, h := range t.Headers {
			if i > 0 {
				tw.Write([]byte("\t"))
			}
			tw.Write([]byte(h))
		}
		tw.Write([]byte("\n"))
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				tw.Write([]byte("\t"))
			}
			tw.Write([]byte(cell))
		}
		tw.Write([]byte("\n"))
	}

	return nil
}

// AddRow appends a row of cells to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders replaces the table's header row.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

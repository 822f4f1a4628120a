package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
)

// MaxCellWidth is the width at which table cells are truncated unless the
// formatter is in wide mode.
const MaxCellWidth = 60

// TableFormatter formats data as an ASCII table.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format formats data as a table.
// Supports: Table, configuration trees, []T (slice of structs), structs and
// scalars. Scalars are written bare, one per line.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	// If data is already a Table, render it directly
	if t, ok := data.(*Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}
	if t, ok := data.(Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	table, err := f.toTable(data)
	if err != nil {
		// Fallback to JSON for complex types
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	if table == nil {
		_, err := fmt.Fprintln(w, FormatScalar(data))
		return err
	}

	return table.RenderWithOptions(w, f.NoHeaders)
}

// toTable converts various data types to a Table. A nil table means data
// is a scalar.
func (f *TableFormatter) toTable(data any) (*Table, error) {
	switch d := data.(type) {
	case confloader.Tree:
		return f.treeToTable(d), nil
	case map[string]any:
		return f.treeToTable(d), nil
	}

	v := reflect.ValueOf(data)

	// Dereference pointer
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return f.sliceToTable(v)
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return nil, nil
		}
		return f.structToTable(v), nil
	case reflect.Map, reflect.Chan, reflect.Func, reflect.Invalid:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	default:
		return nil, nil
	}
}

// treeToTable flattens a tree into sorted KEY/VALUE rows.
func (f *TableFormatter) treeToTable(t map[string]any) *Table {
	flat := confloader.Flatten(t)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		table.AddRow(k, f.cell(FormatScalar(flat[k])))
	}
	return table
}

// sliceToTable renders a slice of structs with one column per exported
// field, or any other slice as a single VALUE column.
func (f *TableFormatter) sliceToTable(v reflect.Value) (*Table, error) {
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() != reflect.Struct {
		table := &Table{Headers: []string{"VALUE"}}
		for i := 0; i < v.Len(); i++ {
			table.AddRow(f.cell(FormatScalar(v.Index(i).Interface())))
		}
		return table, nil
	}

	var headers []string
	var fieldIndices []int
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		if !field.IsExported() {
			continue
		}
		// Skip wide-only fields if not in wide mode
		tag := field.Tag.Get("table")
		if tag == "-" {
			continue
		}
		if strings.Contains(tag, "wide") && !f.Wide {
			continue
		}
		headers = append(headers, strings.ToUpper(fieldName(field)))
		fieldIndices = append(fieldIndices, i)
	}

	table := &Table{Headers: headers}
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		row := make([]string, 0, len(fieldIndices))
		for _, idx := range fieldIndices {
			row = append(row, f.cell(formatValue(elem.Field(idx))))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// structToTable converts a single struct to a field-value table.
func (f *TableFormatter) structToTable(v reflect.Value) *Table {
	table := &Table{
		Headers: []string{"FIELD", "VALUE"},
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		table.AddRow(fieldName(field), f.cell(formatValue(v.Field(i))))
	}

	return table
}

func (f *TableFormatter) cell(s string) string {
	if f.Wide || len(s) <= MaxCellWidth {
		return s
	}
	return s[:MaxCellWidth-3] + "..."
}

// fieldName returns the json tag name of a field, or its Go name in snake case.
func fieldName(field reflect.StructField) string {
	if jsonTag := field.Tag.Get("json"); jsonTag != "" {
		name, _, _ := strings.Cut(jsonTag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(field.Name)
}

// formatValue formats a reflect.Value for display.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) && v.IsNil() {
		return ""
	}
	return FormatScalar(v.Interface())
}

// FormatScalar renders a configuration value on one line. Numbers keep
// their shortest exact form, sequences use flow style and mappings are
// rendered as JSON.
func FormatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if val == "" {
			return `""`
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.IsZero() {
			return "-"
		}
		return val.Format("2006-01-02 15:04:05")
	case []byte:
		return string(val)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = FormatScalar(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any, confloader.Tree:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				result.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintError(err error)
	PrintHint(msg string)
}

// Column defines a column for list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Truncation width (0 = no truncation)
}

// Formats lists the recognized output format tokens.
var Formats = []string{"json", "jsonl", "csv", "text", "table", "markdown"}

// New creates a formatter for the specified format token.
// An unrecognized token returns an UnknownFormatError; per the CLI
// contract that is a non-fatal user error, so callers typically report
// it and continue with Discard().
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return &jsonFormatter{w: os.Stdout, errW: os.Stderr}, nil
	case "jsonl":
		return &jsonlFormatter{w: os.Stdout, errW: os.Stderr}, nil
	case "csv":
		return &csvFormatter{w: os.Stdout, errW: os.Stderr}, nil
	case "text":
		return &textFormatter{w: os.Stdout, errW: os.Stderr}, nil
	case "table":
		return &tableFormatter{w: os.Stdout, errW: os.Stderr}, nil
	case "markdown":
		return &markdownFormatter{w: os.Stdout, errW: os.Stderr}, nil
	default:
		return nil, &UnknownFormatError{Format: format}
	}
}

// Discard returns a formatter that renders nothing but still reports
// errors and hints. Used after an unrecognized format token.
func Discard() Formatter {
	return &discardFormatter{errW: os.Stderr}
}

// listValue normalizes items into a reflect slice value.
func listValue(items any) (reflect.Value, error) {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("PrintList requires a slice, got %T", items)
	}
	return v, nil
}

// cellString extracts the column value from a struct or map element.
func cellString(item reflect.Value, col Column) string {
	if item.Kind() == reflect.Interface || item.Kind() == reflect.Ptr {
		item = item.Elem()
	}

	var value string
	switch item.Kind() {
	case reflect.Map:
		mapVal := item.MapIndex(reflect.ValueOf(col.Key))
		if mapVal.IsValid() {
			value = fmt.Sprintf("%v", mapVal.Interface())
		}
	case reflect.Struct:
		field := item.FieldByName(col.Key)
		if field.IsValid() {
			value = fmt.Sprintf("%v", field.Interface())
		}
	}

	if col.Width > 0 {
		value = TruncateString(value, col.Width)
	}
	return value
}

// listCells renders all rows of a slice into strings, one cell per column.
func listCells(items any, columns []Column) ([][]string, error) {
	v, err := listValue(items)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = cellString(v.Index(i), col)
		}
		rows[i] = cells
	}
	return rows, nil
}

// columnNames returns the display headers for a column set.
func columnNames(columns []Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}

// jsonFormatter outputs an indented JSON document
type jsonFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, _ []Column) error {
	// The raw array; columns only matter for tabular formats.
	return f.Print(items)
}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errW)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]string{"error": err.Error()})
}

func (f *jsonFormatter) PrintHint(msg string) {
	// Hints are noise in machine-readable output.
}

// jsonlFormatter outputs one JSON object per line
type jsonlFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *jsonlFormatter) Print(data any) error {
	return json.NewEncoder(f.w).Encode(data)
}

func (f *jsonlFormatter) PrintList(items any, _ []Column) error {
	v, err := listValue(items)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f.w)
	for i := 0; i < v.Len(); i++ {
		if err := enc.Encode(v.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (f *jsonlFormatter) PrintError(err error) {
	json.NewEncoder(f.errW).Encode(map[string]string{"error": err.Error()})
}

func (f *jsonlFormatter) PrintHint(msg string) {}

// csvFormatter outputs RFC 4180 CSV with a header row
type csvFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *csvFormatter) Print(data any) error {
	// A single record renders as a header row plus one data row.
	return f.PrintList([]any{data}, structColumns(data))
}

func (f *csvFormatter) PrintList(items any, columns []Column) error {
	rows, err := listCells(items, columns)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f.w)
	if err := cw.Write(columnNames(columns)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *csvFormatter) PrintError(err error) {
	fmt.Fprintf(f.errW, "error: %v\n", err)
}

func (f *csvFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errW, "hint: %v\n", msg)
}

// textFormatter outputs tab-separated values
type textFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *textFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(f.w, "%s\t%v\n", t.Field(i).Name, v.Field(i).Interface())
		}
		return nil
	}

	fmt.Fprintf(f.w, "%v\n", data)
	return nil
}

func (f *textFormatter) PrintList(items any, columns []Column) error {
	rows, err := listCells(items, columns)
	if err != nil {
		return err
	}

	fmt.Fprintln(f.w, strings.Join(columnNames(columns), "\t"))
	for _, row := range rows {
		fmt.Fprintln(f.w, strings.Join(row, "\t"))
	}
	return nil
}

func (f *textFormatter) PrintError(err error) {
	fmt.Fprintf(f.errW, "error: %v\n", err)
}

func (f *textFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errW, "hint: %v\n", msg)
}

// markdownFormatter outputs a GitHub-style pipe table
type markdownFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *markdownFormatter) Print(data any) error {
	return f.PrintList([]any{data}, structColumns(data))
}

func (f *markdownFormatter) PrintList(items any, columns []Column) error {
	rows, err := listCells(items, columns)
	if err != nil {
		return err
	}

	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, col := range columns {
		header[i] = escapePipes(col.Name)
		rule[i] = "---"
	}
	fmt.Fprintf(f.w, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(f.w, "| %s |\n", strings.Join(rule, " | "))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapePipes(cell)
		}
		fmt.Fprintf(f.w, "| %s |\n", strings.Join(cells, " | "))
	}
	return nil
}

func (f *markdownFormatter) PrintError(err error) {
	fmt.Fprintf(f.errW, "error: %v\n", err)
}

func (f *markdownFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errW, "hint: %v\n", msg)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// tableFormatter outputs an aligned, styled terminal table
type tableFormatter struct {
	w    io.Writer
	errW io.Writer
}

func (f *tableFormatter) Print(data any) error {
	return f.PrintList([]any{data}, structColumns(data))
}

func (f *tableFormatter) PrintList(items any, columns []Column) error {
	rows, err := listCells(items, columns)
	if err != nil {
		return err
	}
	RenderTable(f.w, columns, rows)
	return nil
}

func (f *tableFormatter) PrintError(err error) {
	fmt.Fprintf(f.errW, "%s\n", errorStyle().Render("error: "+err.Error()))
}

func (f *tableFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errW, "%s\n", hintStyle().Render("hint: "+msg))
}

// discardFormatter renders nothing
type discardFormatter struct {
	errW io.Writer
}

func (f *discardFormatter) Print(any) error               { return nil }
func (f *discardFormatter) PrintList(any, []Column) error { return nil }
func (f *discardFormatter) PrintError(err error)          { fmt.Fprintf(f.errW, "error: %v\n", err) }
func (f *discardFormatter) PrintHint(msg string)          { fmt.Fprintf(f.errW, "hint: %v\n", msg) }

// structColumns derives one column per exported struct field, used when
// a single record lands in a tabular format.
func structColumns(data any) []Column {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []Column{{Name: "Value", Key: ""}}
	}

	t := v.Type()
	columns := make([]Column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			columns = append(columns, Column{Name: t.Field(i).Name, Key: t.Field(i).Name})
		}
	}
	return columns
}

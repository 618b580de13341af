// Package export writes synthesized TableData out to a concrete wire
// format. Exporters self-register via init() under a short format name,
// the same way a reporting library registers output formatters.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/relgen/relgen/relgen"
)

// Exporter streams one table's rows to w. Start is called once before the
// first AddTable, Finish once after the last, so a single exporter
// instance can serialize many tables into one file (e.g. a multi-statement
// SQL dump) without buffering everything in memory first.
type Exporter interface {
	Start(w io.Writer, schema *relgen.Schema) error
	AddTable(w io.Writer, table relgen.TableData) error
	Finish(w io.Writer) error
}

var registry = map[string]Exporter{}

// Register makes an Exporter available by name (e.g. "json", "sql").
// Exporters call this from an init() func, matching RegisterFormatter's
// self-registration idiom.
func Register(name string, e Exporter) { registry[name] = e }

// Get looks up a registered exporter by name.
func Get(name string) (Exporter, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("export: unknown format %q", name)
	}
	return e, nil
}

// WriteAll runs one full Start/AddTable*/Finish cycle against w for the
// given schema and data using the named exporter.
func WriteAll(format string, w io.Writer, schema *relgen.Schema, data []relgen.TableData) error {
	e, err := Get(format)
	if err != nil {
		return err
	}
	if err := e.Start(w, schema); err != nil {
		return err
	}
	for _, td := range data {
		if err := e.AddTable(w, td); err != nil {
			return err
		}
	}
	return e.Finish(w)
}

// OpenOutput resolves the output path from the option surface's "output"
// key: "-" or "" means stdout, anything else is created as a file.
func OpenOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("export: cannot create output file: %w", err)
	}
	return f, f.Close, nil
}

package export

import (
	"encoding/json"
	"io"

	"github.com/relgen/relgen/relgen"
)

// JSONExporter writes the full result set as one JSON object,
// `{"table_name": [ {...}, ... ], ...}`, buffering every table and
// encoding once on Finish.
type JSONExporter struct {
	tables map[string][]relgen.Record
	order  []string
}

func (e *JSONExporter) Start(w io.Writer, schema *relgen.Schema) error {
	e.tables = make(map[string][]relgen.Record)
	e.order = nil
	for _, t := range schema.Tables {
		e.order = append(e.order, t.Name)
	}
	return nil
}

func (e *JSONExporter) AddTable(w io.Writer, table relgen.TableData) error {
	e.tables[table.Table] = table.Records
	return nil
}

func (e *JSONExporter) Finish(w io.Writer) error {
	ordered := make(map[string][]relgen.Record, len(e.tables))
	for _, name := range e.order {
		ordered[name] = e.tables[name]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ordered)
}

// JSONLinesExporter writes one JSON object per row, one per line, of the
// form {"row": {...}, "table": name}, suitable for streaming ingestion — the Start/AddTable split
// matters here since nothing is buffered across tables.
type JSONLinesExporter struct{}

func (e *JSONLinesExporter) Start(w io.Writer, schema *relgen.Schema) error { return nil }

func (e *JSONLinesExporter) AddTable(w io.Writer, table relgen.TableData) error {
	enc := json.NewEncoder(w)
	for _, row := range table.Records {
		line := map[string]any{"table": table.Table, "row": row}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

func (e *JSONLinesExporter) Finish(w io.Writer) error { return nil }

func init() {
	Register("json", &JSONExporter{})
	Register("jsonl", &JSONLinesExporter{})
}

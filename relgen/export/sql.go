package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/relgen/relgen/relgen"
)

// SQLExporter emits one multi-row INSERT statement per table, in batches
// of 500 values tuples to keep any single statement from growing unbounded.
type SQLExporter struct{}

const sqlBatchSize = 500

func (e *SQLExporter) Start(w io.Writer, schema *relgen.Schema) error { return nil }

func (e *SQLExporter) AddTable(w io.Writer, table relgen.TableData) error {
	if len(table.Records) == 0 {
		return nil
	}
	columns := columnOrder(table.Records[0])
	for start := 0; start < len(table.Records); start += sqlBatchSize {
		end := start + sqlBatchSize
		if end > len(table.Records) {
			end = len(table.Records)
		}
		if err := writeInsertBatch(w, table.Table, columns, table.Records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (e *SQLExporter) Finish(w io.Writer) error { return nil }

func columnOrder(row relgen.Record) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func writeInsertBatch(w io.Writer, table string, columns []string, rows []relgen.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES\n", table, strings.Join(columns, ", "))
	for i, row := range rows {
		b.WriteString("  (")
		for j, c := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(sqlLiteral(row[c]))
		}
		b.WriteString(")")
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString(";\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sqlLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case time.Time:
		return "'" + val.Format(time.RFC3339) + "'"
	case int, int8, int16, int32, int64, float32, float64:
		return fmt.Sprintf("%v", val)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", val), "'", "''") + "'"
	}
}

// CSVExporter writes one file section per table: a header line of column
// names, then one line per row, RFC 4180 quoting applied by hand in the
// same literal-escaping style as the SQL exporter rather than importing
// encoding/csv.
type CSVExporter struct{}

func (e *CSVExporter) Start(w io.Writer, schema *relgen.Schema) error { return nil }

func (e *CSVExporter) AddTable(w io.Writer, table relgen.TableData) error {
	if len(table.Records) == 0 {
		return nil
	}
	columns := columnOrder(table.Records[0])
	if _, err := io.WriteString(w, "# table: "+table.Table+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, strings.Join(columns, ",")+"\n"); err != nil {
		return err
	}
	for _, row := range table.Records {
		fields := make([]string, len(columns))
		for i, c := range columns {
			fields[i] = csvField(row[c])
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (e *CSVExporter) Finish(w io.Writer) error { return nil }

func csvField(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func init() {
	Register("sql", &SQLExporter{})
	Register("csv", &CSVExporter{})
}

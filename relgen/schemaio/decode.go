// Package schemaio decodes the JSON schema input contract (§6.2 of the
// generation contract) into relgen's in-memory Schema. It stands in for a
// real DDL parser or live introspection collaborator — both out of scope
// for relgen itself — giving the module a genuine, testable entry point
// for "a schema arrives as JSON" rather than only accepting Go struct
// literals.
package schemaio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/relgen/relgen/relgen"
)

type wireSchema struct {
	Tables []wireTable `json:"tables"`
}

type wireTable struct {
	Name        string            `json:"name"`
	Columns     []wireColumn      `json:"columns"`
	Constraints []wireConstraint  `json:"constraints"`
	Comment     string            `json:"comment,omitempty"`
}

type wireColumn struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Nullable      bool    `json:"nullable"`
	Length        *int    `json:"length,omitempty"`
	Precision     *int    `json:"precision,omitempty"`
	Scale         *int    `json:"scale,omitempty"`
	DefaultValue  *string `json:"default_value,omitempty"`
	AutoIncrement bool    `json:"auto_increment,omitempty"`
	Pattern       string  `json:"pattern,omitempty"`
}

type wireConstraint struct {
	Type              string   `json:"type"`
	Columns           []string `json:"columns,omitempty"`
	ReferencedTable   string   `json:"referenced_table,omitempty"`
	ReferencedColumns []string `json:"referenced_columns,omitempty"`
	Expression        string   `json:"expression,omitempty"`
}

// Decode reads the JSON schema input contract from r and builds a
// relgen.Schema, validating it before returning.
func Decode(r io.Reader) (*relgen.Schema, error) {
	var wire wireSchema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("schemaio: decoding schema document: %w", err)
	}

	schema := &relgen.Schema{}
	for _, wt := range wire.Tables {
		table := relgen.Table{Name: wt.Name, Comment: wt.Comment}
		for _, wc := range wt.Columns {
			table.Columns = append(table.Columns, relgen.Column{
				Name:          wc.Name,
				Type:          relgen.LogicalType(wc.Type),
				Nullable:      wc.Nullable,
				Length:        wc.Length,
				Precision:     wc.Precision,
				Scale:         wc.Scale,
				Default:       wc.DefaultValue,
				AutoIncrement: wc.AutoIncrement,
				Pattern:       wc.Pattern,
			})
		}
		for _, wcn := range wt.Constraints {
			c, err := decodeConstraint(wt.Name, wcn)
			if err != nil {
				return nil, err
			}
			table.Constraints = append(table.Constraints, c)
		}
		schema.Tables = append(schema.Tables, table)
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

func decodeConstraint(table string, wc wireConstraint) (relgen.Constraint, error) {
	switch wc.Type {
	case "PRIMARY_KEY":
		return relgen.PrimaryKey{Columns: wc.Columns}, nil
	case "FOREIGN_KEY":
		return relgen.ForeignKey{
			Columns:    wc.Columns,
			RefTable:   wc.ReferencedTable,
			RefColumns: wc.ReferencedColumns,
		}, nil
	case "UNIQUE":
		return relgen.Unique{Columns: wc.Columns}, nil
	case "CHECK":
		return relgen.Check{Expression: wc.Expression}, nil
	default:
		return nil, fmt.Errorf("schemaio: table %s: unknown constraint type %q", table, wc.Type)
	}
}

// Encode serializes schema back to the JSON wire contract — used by
// round-trip tests and by tools that introspect a schema then hand it to
// another relgen process.
func Encode(w io.Writer, schema *relgen.Schema) error {
	wire := wireSchema{}
	for _, t := range schema.Tables {
		wt := wireTable{Name: t.Name, Comment: t.Comment}
		for _, c := range t.Columns {
			wt.Columns = append(wt.Columns, wireColumn{
				Name: c.Name, Type: string(c.Type), Nullable: c.Nullable,
				Length: c.Length, Precision: c.Precision, Scale: c.Scale,
				DefaultValue: c.Default, AutoIncrement: c.AutoIncrement, Pattern: c.Pattern,
			})
		}
		for _, c := range t.Constraints {
			switch v := c.(type) {
			case relgen.PrimaryKey:
				wt.Constraints = append(wt.Constraints, wireConstraint{Type: "PRIMARY_KEY", Columns: v.Columns})
			case relgen.ForeignKey:
				wt.Constraints = append(wt.Constraints, wireConstraint{
					Type: "FOREIGN_KEY", Columns: v.Columns,
					ReferencedTable: v.RefTable, ReferencedColumns: v.RefColumns,
				})
			case relgen.Unique:
				wt.Constraints = append(wt.Constraints, wireConstraint{Type: "UNIQUE", Columns: v.Columns})
			case relgen.Check:
				wt.Constraints = append(wt.Constraints, wireConstraint{Type: "CHECK", Expression: v.Expression})
			}
		}
		wire.Tables = append(wire.Tables, wt)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}

package schemaio

import (
	"bytes"
	"strings"
	"testing"
)

const sampleDoc = `{
  "tables": [
    {
      "name": "customers",
      "columns": [
        {"name": "id", "type": "INT", "nullable": false},
        {"name": "email", "type": "VARCHAR", "nullable": false, "length": 255}
      ],
      "constraints": [
        {"type": "PRIMARY_KEY", "columns": ["id"]},
        {"type": "UNIQUE", "columns": ["email"]}
      ]
    },
    {
      "name": "orders",
      "columns": [
        {"name": "id", "type": "INT", "nullable": false},
        {"name": "customer_id", "type": "INT", "nullable": false}
      ],
      "constraints": [
        {"type": "PRIMARY_KEY", "columns": ["id"]},
        {"type": "FOREIGN_KEY", "columns": ["customer_id"], "referenced_table": "customers", "referenced_columns": ["id"]}
      ]
    }
  ]
}`

func TestDecodeValidDocument(t *testing.T) {
	schema, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(schema.Tables))
	}
}

func TestDecodeRejectsUnknownConstraintType(t *testing.T) {
	doc := `{"tables":[{"name":"t","columns":[{"name":"id","type":"INT","nullable":false}],"constraints":[{"type":"BOGUS","columns":["id"]}]}]}`
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for unknown constraint type")
	}
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	doc := `{"tables":[{"name":"t","unexpected_field":true,"columns":[],"constraints":[]}]}`
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an unknown field in a table object")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	schema, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roundTripped, err := Decode(&buf)
	if err != nil {
		t.Fatalf("unexpected error decoding round-tripped document: %v", err)
	}
	if len(roundTripped.Tables) != len(schema.Tables) {
		t.Fatalf("round trip changed table count: %d vs %d", len(roundTripped.Tables), len(schema.Tables))
	}
}

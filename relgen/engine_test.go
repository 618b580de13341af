package relgen

import (
	"context"
	"testing"
)

func sampleSchema() *Schema {
	length := 40
	return &Schema{Tables: []Table{
		{
			Name: "customers",
			Columns: []Column{
				{Name: "id", Type: TypeInt},
				{Name: "email", Type: TypeVarchar, Length: &length},
			},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				Unique{Columns: []string{"email"}},
			},
		},
		{
			Name: "orders",
			Columns: []Column{
				{Name: "id", Type: TypeInt},
				{Name: "customer_id", Type: TypeInt},
				{Name: "total", Type: TypeDecimal, Precision: intp(10), Scale: intp(2)},
			},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				ForeignKey{Columns: []string{"customer_id"}, RefTable: "customers", RefColumns: []string{"id"}},
			},
		},
	}}
}

func intp(v int) *int { return &v }

func TestGenerateProducesRequestedRowCounts(t *testing.T) {
	schema := sampleSchema()
	seed := uint32(123)
	opts := Options{Count: 10, Seed: &seed, Locale: LocaleEnUS}
	data, err := Generate(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, td := range data {
		if len(td.Records) != 10 {
			t.Errorf("table %s: expected 10 rows, got %d", td.Table, len(td.Records))
		}
	}
}

func TestGenerateIsDeterministicForFixedSeed(t *testing.T) {
	schema := sampleSchema()
	seed := uint32(7)
	opts := Options{Count: 5, Seed: &seed, Locale: LocaleEnUS}
	a, err := Generate(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		for j := range a[i].Records {
			if a[i].Records[j]["id"] != b[i].Records[j]["id"] {
				t.Fatalf("same seed produced different id at table %d row %d", i, j)
			}
		}
	}
}

func TestGenerateRespectsForeignKeys(t *testing.T) {
	schema := sampleSchema()
	seed := uint32(55)
	opts := Options{Count: 20, Seed: &seed, Locale: LocaleEnUS}
	data, err := Generate(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var customerIDs = map[any]bool{}
	var orders []Record
	for _, td := range data {
		switch td.Table {
		case "customers":
			for _, r := range td.Records {
				customerIDs[r["id"]] = true
			}
		case "orders":
			orders = td.Records
		}
	}
	for _, o := range orders {
		if !customerIDs[o["customer_id"]] {
			t.Fatalf("order references unknown customer_id %v", o["customer_id"])
		}
	}
}

func TestGenerateRejectsUnbreakableCycleSchema(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "a", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "b_id", Type: TypeInt}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}, ForeignKey{Columns: []string{"b_id"}, RefTable: "b", RefColumns: []string{"id"}}}},
		{Name: "b", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "a_id", Type: TypeInt}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}, ForeignKey{Columns: []string{"a_id"}, RefTable: "a", RefColumns: []string{"id"}}}},
	}}
	_, err := Generate(context.Background(), schema, Options{Count: 3})
	if err == nil {
		t.Fatal("expected UnbreakableCycle")
	}
}

func TestGenerateZeroCountProducesEmptyTables(t *testing.T) {
	schema := sampleSchema()
	data, err := Generate(context.Background(), schema, Options{Count: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, td := range data {
		if len(td.Records) != 0 {
			t.Fatalf("expected 0 rows, got %d", len(td.Records))
		}
	}
}

package relgen

import "testing"

func tbl(name string, cols []Column, constraints ...Constraint) Table {
	return Table{Name: name, Columns: cols, Constraints: constraints}
}

func col(name string, typ LogicalType, nullable bool) Column {
	return Column{Name: name, Type: typ, Nullable: nullable}
}

func TestAnalyzeAcyclicOrder(t *testing.T) {
	schema := &Schema{Tables: []Table{
		tbl("orders", []Column{col("id", TypeInt, false), col("customer_id", TypeInt, false)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"customer_id"}, RefTable: "customers", RefColumns: []string{"id"}}),
		tbl("customers", []Column{col("id", TypeInt, false)}, PrimaryKey{Columns: []string{"id"}}),
	}}
	plan, err := Analyze(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(plan.Phases))
	}
	if plan.Phases[0].Table != "customers" || plan.Phases[1].Table != "orders" {
		t.Fatalf("expected customers before orders, got %+v", plan.Phases)
	}
}

func TestAnalyzeDetectsUnbreakableCycle(t *testing.T) {
	schema := &Schema{Tables: []Table{
		tbl("a", []Column{col("id", TypeInt, false), col("b_id", TypeInt, false)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"b_id"}, RefTable: "b", RefColumns: []string{"id"}}),
		tbl("b", []Column{col("id", TypeInt, false), col("a_id", TypeInt, false)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"a_id"}, RefTable: "a", RefColumns: []string{"id"}}),
	}}
	_, err := Analyze(schema)
	if err == nil {
		t.Fatal("expected UnbreakableCycle: neither FK is nullable")
	}
	relErr, ok := err.(*Error)
	if !ok || relErr.Kind != KindUnbreakableCycle {
		t.Fatalf("expected UnbreakableCycle, got %v", err)
	}
}

func TestAnalyzeBreaksCycleWithNullableFK(t *testing.T) {
	schema := &Schema{Tables: []Table{
		tbl("a", []Column{col("id", TypeInt, false), col("b_id", TypeInt, true)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"b_id"}, RefTable: "b", RefColumns: []string{"id"}}),
		tbl("b", []Column{col("id", TypeInt, false), col("a_id", TypeInt, false)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"a_id"}, RefTable: "a", RefColumns: []string{"id"}}),
	}}
	plan, err := Analyze(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Phases) != 1 || plan.Phases[0].Cycle == nil {
		t.Fatalf("expected a single cycle-group phase, got %+v", plan.Phases)
	}
	if _, ok := plan.Phases[0].Cycle.DeferredFK["a"]; !ok {
		t.Fatalf("expected table 'a' to defer its nullable FK, got %+v", plan.Phases[0].Cycle.DeferredFK)
	}
}

func TestAnalyzeIgnoresSelfReference(t *testing.T) {
	schema := &Schema{Tables: []Table{
		tbl("employees", []Column{col("id", TypeInt, false), col("manager_id", TypeInt, true)},
			PrimaryKey{Columns: []string{"id"}},
			ForeignKey{Columns: []string{"manager_id"}, RefTable: "employees", RefColumns: []string{"id"}}),
	}}
	plan, err := Analyze(schema)
	if err != nil {
		t.Fatalf("self-reference should not be treated as an unbreakable cycle: %v", err)
	}
	if len(plan.Phases) != 1 || plan.Phases[0].Table != "employees" {
		t.Fatalf("expected a single standalone phase, got %+v", plan.Phases)
	}
}

package relgen

import "testing"

func TestValidateFlagsDuplicatePK(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "t", Columns: []Column{{Name: "id", Type: TypeInt}}, Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}}},
	}}
	data := []TableData{{Table: "t", Records: []Record{{"id": 1}, {"id": 1}}}}
	report := Validate(schema, data)
	if report.Tables["t"].Valid {
		t.Fatal("expected duplicate PK to be flagged invalid")
	}
	found := false
	for _, e := range report.Tables["t"].Errors {
		if e.Type == ViolationDuplicatePK {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a DuplicatePK violation")
	}
}

func TestValidateFlagsOrphanFK(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "parent", Columns: []Column{{Name: "id", Type: TypeInt}}, Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}}},
		{Name: "child", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "parent_id", Type: TypeInt}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}, ForeignKey{Columns: []string{"parent_id"}, RefTable: "parent", RefColumns: []string{"id"}}}},
	}}
	data := []TableData{
		{Table: "parent", Records: []Record{{"id": 1}}},
		{Table: "child", Records: []Record{{"id": 1, "parent_id": 99}}},
	}
	report := Validate(schema, data)
	if report.Tables["child"].Valid {
		t.Fatal("expected orphan FK to be flagged invalid")
	}
}

func TestValidatePassesCleanData(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "t", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "name", Type: TypeVarchar}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}}},
	}}
	data := []TableData{{Table: "t", Records: []Record{{"id": 1, "name": "a"}, {"id": 2, "name": "b"}}}}
	report := Validate(schema, data)
	if !report.Tables["t"].Valid {
		t.Fatalf("expected clean data to be valid, got errors %+v", report.Tables["t"].Errors)
	}
}

func TestValidateCompositeFKWithDifferentColumnNamesNotFlaggedOrphan(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "parent", Columns: []Column{{Name: "a", Type: TypeInt}, {Name: "b", Type: TypeInt}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"a", "b"}}}},
		{Name: "child", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "x", Type: TypeInt}, {Name: "y", Type: TypeInt}},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				ForeignKey{Columns: []string{"x", "y"}, RefTable: "parent", RefColumns: []string{"a", "b"}},
			}},
	}}
	data := []TableData{
		{Table: "parent", Records: []Record{{"a": 1, "b": 2}}},
		{Table: "child", Records: []Record{{"id": 1, "x": 1, "y": 2}}},
	}
	report := Validate(schema, data)
	if !report.Tables["child"].Valid {
		t.Fatalf("expected matching composite FK with differently-named columns to validate clean, got %+v", report.Tables["child"].Errors)
	}
}

func TestValidateFlagsSelfReferenceToOwnRow(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "node", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "parent_id", Type: TypeInt, Nullable: true}},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				ForeignKey{Columns: []string{"parent_id"}, RefTable: "node", RefColumns: []string{"id"}},
			}},
	}}
	data := []TableData{
		{Table: "node", Records: []Record{{"id": 1, "parent_id": 1}}},
	}
	report := Validate(schema, data)
	found := false
	for _, e := range report.Tables["node"].Errors {
		if e.Type == ViolationSelfRefOrder {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a row referencing itself to be flagged as self_reference_order")
	}
}

func TestValidateFlagsSelfReferenceToLaterTier(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "node", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "parent_id", Type: TypeInt, Nullable: true}},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				ForeignKey{Columns: []string{"parent_id"}, RefTable: "node", RefColumns: []string{"id"}},
			}},
	}}
	// With 2 rows, newTierAssigner puts row 0 in tier 0 and row 1 in tier 1.
	// Row 0 (tier 0) pointing at row 1 (tier 1) references a later tier.
	data := []TableData{
		{Table: "node", Records: []Record{{"id": 1, "parent_id": 2}, {"id": 2, "parent_id": nil}}},
	}
	report := Validate(schema, data)
	found := false
	for _, e := range report.Tables["node"].Errors {
		if e.Type == ViolationSelfRefOrder {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a row referencing a later tier to be flagged as self_reference_order")
	}
}

func TestValidateAcceptsSelfReferenceToEarlierTier(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "node", Columns: []Column{{Name: "id", Type: TypeInt}, {Name: "parent_id", Type: TypeInt, Nullable: true}},
			Constraints: []Constraint{
				PrimaryKey{Columns: []string{"id"}},
				ForeignKey{Columns: []string{"parent_id"}, RefTable: "node", RefColumns: []string{"id"}},
			}},
	}}
	// Row 1 (tier 1) pointing back at row 0 (tier 0) is a legitimate parent reference.
	data := []TableData{
		{Table: "node", Records: []Record{{"id": 1, "parent_id": nil}, {"id": 2, "parent_id": 1}}},
	}
	report := Validate(schema, data)
	if !report.Tables["node"].Valid {
		t.Fatalf("expected a valid earlier-tier self-reference to validate clean, got %+v", report.Tables["node"].Errors)
	}
}

func TestValidateReportsUnenforcedCheck(t *testing.T) {
	schema := &Schema{Tables: []Table{
		{Name: "t", Columns: []Column{{Name: "id", Type: TypeInt}},
			Constraints: []Constraint{PrimaryKey{Columns: []string{"id"}}, Check{Expression: "complex_function(id) > other_column"}}},
	}}
	data := []TableData{{Table: "t", Records: []Record{{"id": 1}}}}
	report := Validate(schema, data)
	found := false
	for _, e := range report.Tables["t"].Errors {
		if e.Type == ViolationCheckUnchecked {
			found = true
		}
	}
	if !found {
		t.Fatal("expected unrecognized CHECK expression to be reported as not enforced")
	}
}

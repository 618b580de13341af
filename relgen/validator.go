package relgen

import "fmt"

// ValidationErrorKind classifies one constraint violation found by Validate.
type ValidationErrorKind string

const (
	ViolationDuplicatePK    ValidationErrorKind = "duplicate_primary_key"
	ViolationNotNull        ValidationErrorKind = "not_null_violation"
	ViolationUnique         ValidationErrorKind = "unique_violation"
	ViolationOrphanFK       ValidationErrorKind = "orphan_foreign_key"
	ViolationSelfRefOrder   ValidationErrorKind = "self_reference_order"
	ViolationCheck          ValidationErrorKind = "check_violation"
	ViolationCheckUnchecked ValidationErrorKind = "check_not_enforced"
)

type ValidationError struct {
	Type     ValidationErrorKind
	RowIndex int
	Column   string
	Message  string
}

type TableReport struct {
	Valid  bool
	Errors []ValidationError
}

type Counts struct {
	TablesChecked int
	RowsChecked   int
	ErrorsFound   int
}

// Report is the read-only, order-independent output of Validate.
type Report struct {
	Tables map[string]TableReport
	Totals Counts
}

// Validate checks every generated row against schema's constraints. It
// never mutates data or schema.
func Validate(schema *Schema, data []TableData) Report {
	byTable := map[string]TableData{}
	for _, td := range data {
		byTable[td.Table] = td
	}

	report := Report{Tables: map[string]TableReport{}}
	for i := range schema.Tables {
		table := &schema.Tables[i]
		td := byTable[table.Name]
		errs := validateTable(table, td, byTable)
		report.Tables[table.Name] = TableReport{Valid: len(errs) == 0, Errors: errs}
		report.Totals.TablesChecked++
		report.Totals.RowsChecked += len(td.Records)
		report.Totals.ErrorsFound += len(errs)
	}
	return report
}

func validateTable(table *Table, td TableData, byTable map[string]TableData) []ValidationError {
	var errs []ValidationError

	pk := table.PrimaryKey()
	if pk != nil {
		seen := map[string]int{}
		for i, row := range td.Records {
			v, err := serializeValue(compositeValue(row, pk.Columns))
			if err != nil {
				continue
			}
			if firstIdx, dup := seen[v]; dup {
				errs = append(errs, ValidationError{
					Type: ViolationDuplicatePK, RowIndex: i,
					Message: fmt.Sprintf("duplicate primary key, first seen at row %d", firstIdx),
				})
			} else {
				seen[v] = i
			}
		}
	}

	for _, u := range table.UniqueConstraints() {
		seen := map[string]int{}
		for i, row := range td.Records {
			if anyNull(row, u.Columns) {
				continue
			}
			v, err := serializeValue(compositeValue(row, u.Columns))
			if err != nil {
				continue
			}
			if firstIdx, dup := seen[v]; dup {
				errs = append(errs, ValidationError{
					Type: ViolationUnique, RowIndex: i, Column: joinColumns(u.Columns),
					Message: fmt.Sprintf("unique constraint violated, first seen at row %d", firstIdx),
				})
			} else {
				seen[v] = i
			}
		}
	}

	for i := range table.Columns {
		col := &table.Columns[i]
		if col.Nullable {
			continue
		}
		for r, row := range td.Records {
			if row[col.Name] == nil {
				errs = append(errs, ValidationError{
					Type: ViolationNotNull, RowIndex: r, Column: col.Name,
					Message: "non-nullable column has NULL value",
				})
			}
		}
	}

	for _, fk := range table.ForeignKeys() {
		parent, ok := byTable[fk.RefTable]
		parentKeys := map[string]bool{}
		if ok {
			for _, prow := range parent.Records {
				key, err := serializeValue(orderedValues(prow, fk.RefColumns))
				if err == nil {
					parentKeys[key] = true
				}
			}
		}
		for r, row := range td.Records {
			if anyNull(row, fk.Columns) {
				continue
			}
			key, err := serializeValue(orderedValues(row, fk.Columns))
			if err != nil {
				continue
			}
			if !parentKeys[key] {
				errs = append(errs, ValidationError{
					Type: ViolationOrphanFK, RowIndex: r, Column: joinColumns(fk.Columns),
					Message: "references a row absent from " + fk.RefTable,
				})
			}
		}
	}

	if pk != nil {
		tiers := newTierAssigner(len(td.Records))
		pkIndex := map[string]int{}
		for i, row := range td.Records {
			key, err := serializeValue(orderedValues(row, pk.Columns))
			if err != nil {
				continue
			}
			pkIndex[key] = i
		}
		for _, fk := range table.ForeignKeys() {
			if fk.RefTable != table.Name {
				continue
			}
			for r, row := range td.Records {
				if anyNull(row, fk.Columns) {
					continue
				}
				selfKey, err := serializeValue(orderedValues(row, fk.Columns))
				if err != nil {
					continue
				}
				ownKey, err := serializeValue(orderedValues(row, pk.Columns))
				if err == nil && selfKey == ownKey {
					errs = append(errs, ValidationError{
						Type: ViolationSelfRefOrder, RowIndex: r, Column: joinColumns(fk.Columns),
						Message: "self-referencing foreign key points to its own row",
					})
					continue
				}
				refIdx, ok := pkIndex[selfKey]
				if !ok {
					continue // orphan check above already flags an unresolvable reference
				}
				if tiers.TierOf(refIdx) >= tiers.TierOf(r) {
					errs = append(errs, ValidationError{
						Type: ViolationSelfRefOrder, RowIndex: r, Column: joinColumns(fk.Columns),
						Message: fmt.Sprintf("self-reference points to row %d (tier %d), not earlier than its own tier %d", refIdx, tiers.TierOf(refIdx), tiers.TierOf(r)),
					})
				}
			}
		}
	}

	for _, c := range table.Checks() {
		rule, ok := parseCheck(c.Expression)
		if !ok {
			errs = append(errs, ValidationError{
				Type: ViolationCheckUnchecked, Message: "CHECK (" + c.Expression + ") is not enforced by the generator",
			})
			continue
		}
		for r, row := range td.Records {
			v := row[rule.Column]
			if v == nil {
				continue
			}
			if !rule.Satisfies(v) {
				errs = append(errs, ValidationError{
					Type: ViolationCheck, RowIndex: r, Column: rule.Column,
					Message: "CHECK (" + c.Expression + ") violated",
				})
			}
		}
	}

	return errs
}

// orderedValues returns row's values for columns in column order — a
// name-independent key. Unlike compositeValue's column-name-keyed map, this
// lets a foreign key's child columns compare equal to a parent's referenced
// columns even when the two sides use different column names.
func orderedValues(row Record, columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = row[c]
	}
	return out
}

func anyNull(row Record, columns []string) bool {
	for _, c := range columns {
		if row[c] == nil {
			return true
		}
	}
	return false
}

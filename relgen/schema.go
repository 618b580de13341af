package relgen

// LogicalType is the closed set of column types relgen understands. Any
// type string outside this set fails schema validation with SchemaInvalid.
type LogicalType string

const (
	TypeInt       LogicalType = "INT"
	TypeInteger   LogicalType = "INTEGER"
	TypeBigInt    LogicalType = "BIGINT"
	TypeSmallInt  LogicalType = "SMALLINT"
	TypeTinyInt   LogicalType = "TINYINT"
	TypeVarchar   LogicalType = "VARCHAR"
	TypeChar      LogicalType = "CHAR"
	TypeText      LogicalType = "TEXT"
	TypeString    LogicalType = "STRING"
	TypeDecimal   LogicalType = "DECIMAL"
	TypeNumeric   LogicalType = "NUMERIC"
	TypeFloat     LogicalType = "FLOAT"
	TypeDouble    LogicalType = "DOUBLE"
	TypeReal      LogicalType = "REAL"
	TypeDate      LogicalType = "DATE"
	TypeDateTime  LogicalType = "DATETIME"
	TypeTimestamp LogicalType = "TIMESTAMP"
	TypeTime      LogicalType = "TIME"
	TypeBoolean   LogicalType = "BOOLEAN"
	TypeBool      LogicalType = "BOOL"
	TypeJSON      LogicalType = "JSON"
	TypeJSONB     LogicalType = "JSONB"
	TypeUUID      LogicalType = "UUID"
	TypeBlob      LogicalType = "BLOB"
	TypeBinary    LogicalType = "BINARY"
)

var validTypes = map[LogicalType]bool{
	TypeInt: true, TypeInteger: true, TypeBigInt: true, TypeSmallInt: true, TypeTinyInt: true,
	TypeVarchar: true, TypeChar: true, TypeText: true, TypeString: true,
	TypeDecimal: true, TypeNumeric: true, TypeFloat: true, TypeDouble: true, TypeReal: true,
	TypeDate: true, TypeDateTime: true, TypeTimestamp: true, TypeTime: true,
	TypeBoolean: true, TypeBool: true, TypeJSON: true, TypeJSONB: true,
	TypeUUID: true, TypeBlob: true, TypeBinary: true,
}

// Locale is the closed set of personas the value synthesizer can draw from.
type Locale string

const (
	LocaleEnUS Locale = "en_US"
	LocaleEnGB Locale = "en_GB"
	LocaleDeDE Locale = "de_DE"
	LocaleFrFR Locale = "fr_FR"
	LocaleEnCA Locale = "en_CA"
	LocaleEnAU Locale = "en_AU"
)

// Column describes one table column.
type Column struct {
	Name          string
	Type          LogicalType
	Length        *int
	Precision     *int
	Scale         *int
	Nullable      bool
	Default       *string
	AutoIncrement bool
	Pattern       string // optional pattern-template override for string synthesis
}

// Constraint is a sum type over PrimaryKey, ForeignKey, Unique, and Check —
// modeled as an interface with an unexported marker method rather than a
// shared base struct, since the four kinds share almost no fields.
type Constraint interface {
	isConstraint()
}

type PrimaryKey struct {
	Columns []string
}

type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

type Unique struct {
	Columns []string
}

type Check struct {
	Expression string
}

func (PrimaryKey) isConstraint() {}
func (ForeignKey) isConstraint() {}
func (Unique) isConstraint()     {}
func (Check) isConstraint()      {}

// Table is one relation in the schema.
type Table struct {
	Name        string
	Columns     []Column
	Constraints []Constraint
	Comment     string
}

// Schema is the full set of tables to synthesize data for.
type Schema struct {
	Tables []Table
}

// PrimaryKey returns the table's primary key constraint, if any.
func (t *Table) PrimaryKey() *PrimaryKey {
	for _, c := range t.Constraints {
		if pk, ok := c.(PrimaryKey); ok {
			return &pk
		}
	}
	return nil
}

// ForeignKeys returns every foreign key constraint on the table.
func (t *Table) ForeignKeys() []ForeignKey {
	var out []ForeignKey
	for _, c := range t.Constraints {
		if fk, ok := c.(ForeignKey); ok {
			out = append(out, fk)
		}
	}
	return out
}

// UniqueConstraints returns every unique constraint on the table,
// including single-column ones expressed via Unique{Columns: [col]}.
func (t *Table) UniqueConstraints() []Unique {
	var out []Unique
	for _, c := range t.Constraints {
		if u, ok := c.(Unique); ok {
			out = append(out, u)
		}
	}
	return out
}

// Checks returns every CHECK constraint on the table.
func (t *Table) Checks() []Check {
	var out []Check
	for _, c := range t.Constraints {
		if ch, ok := c.(Check); ok {
			out = append(out, ch)
		}
	}
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Validate checks the closed-world invariants of the schema: known types,
// non-empty table/column names, PK/FK/Unique columns that actually exist,
// and FK references to tables/columns that exist in the schema.
func (s *Schema) Validate() error {
	tableNames := map[string]*Table{}
	for i := range s.Tables {
		t := &s.Tables[i]
		if t.Name == "" {
			return errSchemaInvalid("", "", "table name must not be empty")
		}
		if _, dup := tableNames[t.Name]; dup {
			return errSchemaInvalid(t.Name, "", "duplicate table name")
		}
		tableNames[t.Name] = t
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		colNames := map[string]bool{}
		for _, c := range t.Columns {
			if c.Name == "" {
				return errSchemaInvalid(t.Name, "", "column name must not be empty")
			}
			if !validTypes[c.Type] {
				return errSchemaInvalid(t.Name, c.Name, "unknown logical type "+string(c.Type))
			}
			colNames[c.Name] = true
		}
		for _, c := range t.Constraints {
			switch v := c.(type) {
			case PrimaryKey:
				if err := requireColumns(t, colNames, v.Columns); err != nil {
					return err
				}
			case Unique:
				if err := requireColumns(t, colNames, v.Columns); err != nil {
					return err
				}
			case ForeignKey:
				if err := requireColumns(t, colNames, v.Columns); err != nil {
					return err
				}
				refTable, ok := tableNames[v.RefTable]
				if !ok {
					return errSchemaInvalid(t.Name, "", "foreign key references unknown table "+v.RefTable)
				}
				refCols := map[string]bool{}
				for _, c := range refTable.Columns {
					refCols[c.Name] = true
				}
				if err := requireColumns(refTable, refCols, v.RefColumns); err != nil {
					return err
				}
				if len(v.Columns) != len(v.RefColumns) {
					return errSchemaInvalid(t.Name, "", "foreign key column count mismatch with "+v.RefTable)
				}
			}
		}
	}
	return nil
}

func requireColumns(t *Table, known map[string]bool, cols []string) error {
	if len(cols) == 0 {
		return errSchemaInvalid(t.Name, "", "constraint lists no columns")
	}
	for _, c := range cols {
		if !known[c] {
			return errSchemaInvalid(t.Name, c, "constraint references unknown column")
		}
	}
	return nil
}

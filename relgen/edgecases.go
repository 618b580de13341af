package relgen

// edgeCasesByType lists the substitution catalog consulted by the injector
// for a given logical type. Values here are returned as-is (the caller
// still must respect nullability/PK/FK exclusion before calling Inject).
var edgeCasesByType = map[LogicalType][]any{
	TypeInt:       {0, -1, 2147483647, -2147483648},
	TypeInteger:   {0, -1, 2147483647, -2147483648},
	TypeBigInt:    {0, -1, int64(9223372036854775807)},
	TypeSmallInt:  {0, -1, 32767, -32768},
	TypeTinyInt:   {0, -1, 127, -128},
	TypeVarchar:   {"", "a", "NULL", "'; DROP TABLE--", "😀🔥", "   "},
	TypeChar:      {"", "a"},
	TypeText:      {"", "a", "😀🔥"},
	TypeString:    {"", "a", "NULL"},
	TypeDecimal:   {"0.00", "-0.01", "999999999.99"},
	TypeNumeric:   {"0.00", "-0.01", "999999999.99"},
	TypeFloat:     {0.0, -1.0, 1e308, -1e308},
	TypeDouble:    {0.0, -1.0, 1e308, -1e308},
	TypeReal:      {0.0, -1.0},
	TypeDate:      {"1970-01-01", "2099-12-31"},
	TypeDateTime:  {"1970-01-01T00:00:00Z", "2099-12-31T23:59:59Z"},
	TypeTimestamp: {"1970-01-01T00:00:00Z", "2099-12-31T23:59:59Z"},
	TypeTime:      {"00:00:00", "23:59:59"},
	TypeBoolean:   {true, false},
	TypeBool:      {true, false},
	TypeJSON:      {"{}", "null", `{"nested":{"a":[1,2,3]}}`},
	TypeJSONB:     {"{}", "null"},
	TypeUUID:      {"00000000-0000-0000-0000-000000000000"},
	TypeBlob:      {""},
	TypeBinary:    {""},
}

// EdgeCaseInjector substitutes an edge-case value from the catalog for a
// column's synthesized value, at a caller-chosen rate. PK and FK columns
// must be excluded by the caller before injection is attempted.
type EdgeCaseInjector struct{}

func NewEdgeCaseInjector() *EdgeCaseInjector { return &EdgeCaseInjector{} }

// eligible reports whether col can receive an injected edge case: its type
// has a catalog entry and the column is nullable. Edge-case catalogs
// include boundary and NULL-ish sentinel values that assume the column can
// legitimately hold them; a non-nullable column is never a candidate.
func (e *EdgeCaseInjector) eligible(col *Column) bool {
	if !col.Nullable {
		return false
	}
	catalog, ok := edgeCasesByType[col.Type]
	return ok && len(catalog) > 0
}

// value draws one edge-case value from col's catalog.
func (e *EdgeCaseInjector) value(col *Column, rng *RNG) any {
	catalog := edgeCasesByType[col.Type]
	return catalog[rng.Intn(len(catalog))]
}

// Maybe returns (edgeCaseValue, true) with probability rate if col is
// eligible, otherwise (nil, false) leaving the caller's already-synthesized
// value untouched.
func (e *EdgeCaseInjector) Maybe(col *Column, rate float64, rng *RNG) (any, bool) {
	if rate <= 0 || !e.eligible(col) {
		return nil, false
	}
	if !rng.Bool(rate) {
		return nil, false
	}
	return e.value(col, rng), true
}

// InjectOne rolls probability rate exactly once and, on success, picks a
// single eligible column uniformly at random from candidates and returns
// its name and injected value. ok is false if the roll missed or no
// candidate is eligible — the caller's row is left untouched either way.
func (e *EdgeCaseInjector) InjectOne(candidates []*Column, rate float64, rng *RNG) (column string, value any, ok bool) {
	if rate <= 0 {
		return "", nil, false
	}
	var eligible []*Column
	for _, c := range candidates {
		if e.eligible(c) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 || !rng.Bool(rate) {
		return "", nil, false
	}
	chosen := eligible[rng.Intn(len(eligible))]
	return chosen.Name, e.value(chosen, rng), true
}

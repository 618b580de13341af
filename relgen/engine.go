package relgen

import (
	"context"
	"sort"
	"time"
)

// TableOverride holds per-table option overrides keyed by table name in
// Options.TableOptions.
type TableOverride struct {
	Count     *int
	EdgeCases *int // percentage points, 0-100
}

// Options configures one Generate call. BatchSize is accepted but not read:
// Generate always returns every table's rows in full, and Validate is not
// read by Generate either (callers run Validate on the result themselves).
type Options struct {
	Count             int
	Seed              *uint32
	Locale            Locale
	EdgeCases         int // percentage points, 0-100, default 0
	Distributions     []DistributionSpec
	Validate          bool
	BatchSize         int
	MaxUniqueAttempts int // default 1000
	TableOptions      map[string]TableOverride
}

// GenContext is the per-run state shared by every row across every table:
// the RNG, the uniqueness registries, the key allocator, and the
// in-progress output. It is owned exclusively by one Generate call.
type GenContext struct {
	RNG        *RNG
	Synth      *Synthesizer
	Keys       *KeyAllocator
	Unique     *UniquenessRegistry
	EdgeCase   *EdgeCaseInjector
	FKSampler  *FKSampler
	Output     map[string]*TableData
	Options    Options
	distByCol  map[string]*DistributionSpec // "table.column" -> spec
	Logger     *Logger
}

func (c *GenContext) distFor(table, column string) *DistributionSpec {
	return c.distByCol[table+"."+column]
}

// Generate synthesizes rows for every table in schema per opts, returning
// the full in-memory result. On any error, no partial result is returned.
func Generate(ctx context.Context, schema *Schema, opts Options) ([]TableData, error) {
	start := time.Now()
	gctx, plan, err := prepare(schema, opts)
	if err != nil {
		return nil, err
	}

	for _, phase := range plan.Phases {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		if phase.Table != "" {
			if err := generateTable(ctx, gctx, tableNamed(schema, phase.Table), gctx.rowCountFor(phase.Table)); err != nil {
				return nil, err
			}
			continue
		}
		if err := generateCycleGroup(ctx, gctx, schema, phase.Cycle); err != nil {
			return nil, err
		}
	}

	results := make([]TableData, 0, len(schema.Tables))
	rowCount := 0
	for i := range schema.Tables {
		td := *gctx.Output[schema.Tables[i].Name]
		rowCount += len(td.Records)
		results = append(results, td)
	}
	gctx.Logger.Summary(len(results), rowCount, time.Since(start))
	return results, nil
}

func (c *GenContext) rowCountFor(table string) int {
	if override, ok := c.Options.TableOptions[table]; ok && override.Count != nil {
		return *override.Count
	}
	return c.Options.Count
}

func (c *GenContext) edgeCaseRateFor(table string) float64 {
	pct := c.Options.EdgeCases
	if override, ok := c.Options.TableOptions[table]; ok && override.EdgeCases != nil {
		pct = *override.EdgeCases
	}
	return float64(pct) / 100.0
}

func prepare(schema *Schema, opts Options) (*GenContext, *Plan, error) {
	if err := schema.Validate(); err != nil {
		return nil, nil, err
	}
	if opts.Count < 0 {
		return nil, nil, errConfigInvalid("count must be >= 0", nil)
	}

	logger := NewLogger()
	var seed uint32
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = uint32(time.Now().UnixNano())
		logger.SeedChosen(seed)
	}

	plan, err := Analyze(schema)
	if err != nil {
		return nil, nil, err
	}

	distByCol := map[string]*DistributionSpec{}
	for i := range opts.Distributions {
		d := opts.Distributions[i]
		distByCol[d.Table+"."+d.Column] = &d
	}

	gctx := &GenContext{
		RNG:       NewRNG(seed),
		Synth:     NewSynthesizer(opts.Locale),
		Keys:      NewKeyAllocator(),
		Unique:    NewUniquenessRegistry(),
		EdgeCase:  NewEdgeCaseInjector(),
		FKSampler: NewFKSampler(),
		Output:    map[string]*TableData{},
		Options:   opts,
		distByCol: distByCol,
		Logger:    logger,
	}
	for i := range schema.Tables {
		gctx.Output[schema.Tables[i].Name] = &TableData{Table: schema.Tables[i].Name}
	}
	return gctx, plan, nil
}

func tableNamed(schema *Schema, name string) *Table {
	for i := range schema.Tables {
		if schema.Tables[i].Name == name {
			return &schema.Tables[i]
		}
	}
	return nil
}

func checkCancel(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errCancelRequested()
	default:
		return nil
	}
}

// generateTable runs the row loop for one table, assuming every non-self
// FK target has already been fully materialized in gctx.Output.
func generateTable(ctx context.Context, gctx *GenContext, table *Table, rowCount int) error {
	if table == nil {
		return nil
	}
	pk := table.PrimaryKey()
	fks := table.ForeignKeys()
	uniques := table.UniqueConstraints()
	checks := parseCheckRules(gctx, table)
	selfFKs := selfReferencingFKs(table)
	tier := newTierAssigner(rowCount)

	pkColumns := map[string]bool{}
	if pk != nil {
		for _, c := range pk.Columns {
			pkColumns[c] = true
		}
	}
	fkColumns := map[string]bool{}
	for _, fk := range fks {
		for _, c := range fk.Columns {
			fkColumns[c] = true
		}
	}

	edgeRate := gctx.edgeCaseRateFor(table.Name)
	maxAttempts := gctx.Options.MaxUniqueAttempts

	rows := make([]Record, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		if i%512 == 0 {
			if err := checkCancel(ctx); err != nil {
				return err
			}
		}
		row, err := generateRow(gctx, table, i, pkColumns, fkColumns, fks, selfFKs, tier, checks, edgeRate, maxAttempts)
		if err != nil {
			return err
		}
		if err := enforceUniqueConstraints(gctx, table, row, uniques, maxAttempts); err != nil {
			return err
		}
		rows = append(rows, row)
		gctx.Output[table.Name].Records = rows
	}
	gctx.Output[table.Name].Records = rows
	return nil
}

func selfReferencingFKs(table *Table) []ForeignKey {
	var out []ForeignKey
	for _, fk := range table.ForeignKeys() {
		if fk.RefTable == table.Name {
			out = append(out, fk)
		}
	}
	return out
}

func parseCheckRules(gctx *GenContext, table *Table) []checkRule {
	var rules []checkRule
	for _, c := range table.Checks() {
		if rule, ok := parseCheck(c.Expression); ok {
			rules = append(rules, rule)
		} else {
			gctx.Logger.CheckIgnored(table.Name, c.Expression)
		}
	}
	return rules
}

func generateRow(gctx *GenContext, table *Table, rowIndex int, pkColumns, fkColumns map[string]bool,
	fks []ForeignKey, selfFKs []ForeignKey, tier *tierAssigner, checks []checkRule, edgeRate float64, maxAttempts int) (Record, error) {

	row := Record{}

	// 1. Primary key columns.
	if pk := table.PrimaryKey(); pk != nil {
		for _, colName := range pk.Columns {
			col := table.Column(colName)
			v, err := gctx.Keys.Next(table.Name, col, gctx.RNG)
			if err != nil {
				return nil, err
			}
			row[colName] = v
		}
	}

	// 2. Non-self foreign keys, sampled from already-generated parents.
	for _, fk := range fks {
		if fk.RefTable == table.Name {
			continue // handled below as self-reference
		}
		spec := gctx.distFor(table.Name, fk.Columns[0])
		parentRow, err := gctx.FKSampler.SampleComposite(gctx, &fk, rowIndex, spec)
		if err != nil {
			if relErr, ok := err.(*Error); ok && relErr.Kind == KindMissingParent {
				if allNullable(table, fk.Columns) {
					for _, c := range fk.Columns {
						row[c] = nil
					}
					continue
				}
			}
			return nil, err
		}
		for i, c := range fk.Columns {
			row[c] = parentRow[fk.RefColumns[i]]
		}
	}

	// 3. Self-referencing FK via tiered assignment.
	for _, fk := range selfFKs {
		parentIdx := tier.PickParentRow(rowIndex, gctx.RNG)
		if parentIdx < 0 {
			for _, c := range fk.Columns {
				row[c] = nil
			}
			continue
		}
		parent := gctx.Output[table.Name].Records[parentIdx]
		for i, c := range fk.Columns {
			row[c] = parent[fk.RefColumns[i]]
		}
	}

	// 4. Remaining columns via the value synthesizer.
	for i := range table.Columns {
		col := &table.Columns[i]
		if pkColumns[col.Name] || fkColumns[col.Name] {
			continue
		}
		spec := gctx.distFor(table.Name, col.Name)
		v, err := synthesizeWithChecks(gctx, col, spec, checks)
		if err != nil {
			return nil, err
		}
		row[col.Name] = v
	}

	// 5. Edge-case injection: with probability edgeRate, exactly one
	// eligible non-PK/FK column in the row is replaced with a catalog value.
	var candidates []*Column
	for i := range table.Columns {
		col := &table.Columns[i]
		if pkColumns[col.Name] || fkColumns[col.Name] {
			continue
		}
		candidates = append(candidates, col)
	}
	if colName, v, ok := gctx.EdgeCase.InjectOne(candidates, edgeRate, gctx.RNG); ok {
		row[colName] = v
	}

	return row, nil
}

func allNullable(table *Table, columns []string) bool {
	for _, c := range columns {
		col := table.Column(c)
		if col == nil || !col.Nullable {
			return false
		}
	}
	return true
}

// synthesizeWithChecks draws a value and re-draws (bounded) until it
// satisfies every whitelisted CHECK rule naming that column.
func synthesizeWithChecks(gctx *GenContext, col *Column, spec *DistributionSpec, checks []checkRule) (any, error) {
	var applicable []checkRule
	for _, r := range checks {
		if r.Column == col.Name {
			applicable = append(applicable, r)
		}
	}
	for attempt := 0; attempt < 100; attempt++ {
		v, err := gctx.Synth.SynthesizeDist(col, gctx.RNG, spec)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return v, nil // NULL trivially satisfies numeric CHECKs we whitelist
		}
		ok := true
		for _, r := range applicable {
			if !r.Satisfies(v) {
				ok = false
				break
			}
		}
		if ok {
			return v, nil
		}
	}
	// Give up refining and return the last draw; the validator will flag it.
	return gctx.Synth.SynthesizeDist(col, gctx.RNG, spec)
}

func enforceUniqueConstraints(gctx *GenContext, table *Table, row Record, uniques []Unique, maxAttempts int) error {
	for _, u := range uniques {
		value := compositeValue(row, u.Columns)
		used, err := gctx.Unique.IsUsed(table.Name, u.Columns, value)
		if err != nil {
			return err
		}
		if !used {
			if err := gctx.Unique.MarkUsed(table.Name, u.Columns, value); err != nil {
				return err
			}
			continue
		}
		// Repair: re-synthesize just the unique column(s) until the tuple
		// is unseen, bounded by maxAttempts.
		repaired, err := gctx.Unique.Generate(table.Name, u.Columns, maxAttempts, func() (any, error) {
			for _, c := range u.Columns {
				col := table.Column(c)
				v, err := gctx.Synth.SynthesizeDist(col, gctx.RNG, gctx.distFor(table.Name, c))
				if err != nil {
					return nil, err
				}
				row[c] = v
			}
			return compositeValue(row, u.Columns), nil
		})
		if err != nil {
			return err
		}
		_ = repaired
	}
	return nil
}

func compositeValue(row Record, columns []string) any {
	if len(columns) == 1 {
		return row[columns[0]]
	}
	out := make(map[string]any, len(columns))
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}

// generateCycleGroup runs phase A (non-deferred columns) for every table
// in the cycle, then phase B (deferred FK backfill) once every table has
// its full row set.
func generateCycleGroup(ctx context.Context, gctx *GenContext, schema *Schema, dfp *DeferredFKPlan) error {
	sorted := orderCycleMembers(schema, dfp)

	for _, tname := range sorted {
		table := tableNamed(schema, tname)
		if err := generateTableDeferring(ctx, gctx, table, gctx.rowCountFor(tname), dfp.DeferredFK[tname]); err != nil {
			return err
		}
	}
	for tname, fk := range dfp.DeferredFK {
		table := tableNamed(schema, tname)
		if err := backfillDeferredFK(gctx, table, fk); err != nil {
			return err
		}
	}
	return nil
}

// orderCycleMembers topologically orders a cycle's tables using only the
// non-deferred internal edges (the deferred edge per table is excluded, so
// the remaining internal graph is acyclic by construction of
// validateBreakable/buildDeferredPlan).
func orderCycleMembers(schema *Schema, dfp *DeferredFKPlan) []string {
	members := map[string]bool{}
	for _, t := range dfp.Tables {
		members[t] = true
	}
	remaining := append([]string(nil), dfp.Tables...)
	sort.Strings(remaining)

	var ordered []string
	placed := map[string]bool{}
	for len(ordered) < len(remaining) {
		progressed := false
		for _, tname := range remaining {
			if placed[tname] {
				continue
			}
			table := tableNamed(schema, tname)
			deferred := dfp.DeferredFK[tname]
			ready := true
			for _, fk := range table.ForeignKeys() {
				if fk.RefTable == tname || !members[fk.RefTable] {
					continue // self-reference or outside the cycle: not a blocker here
				}
				if deferred.RefTable == fk.RefTable && sameColumns(deferred.Columns, fk.Columns) {
					continue // this is the deferred edge, excluded from phase-A ordering
				}
				if !placed[fk.RefTable] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, tname)
				placed[tname] = true
				progressed = true
			}
		}
		if !progressed {
			// Should not happen given validateBreakable's guarantee; fall
			// back to the remaining tables in lexicographic order.
			for _, tname := range remaining {
				if !placed[tname] {
					ordered = append(ordered, tname)
					placed[tname] = true
				}
			}
		}
	}
	return ordered
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// generateTableDeferring is generateTable but treats deferredFK's columns
// as always-null on the first pass, regardless of nullability elsewhere.
func generateTableDeferring(ctx context.Context, gctx *GenContext, table *Table, rowCount int, deferredFK ForeignKey) error {
	if table == nil {
		return nil
	}
	if err := generateTable(ctx, gctx, table, rowCount); err != nil {
		return err
	}
	if deferredFK.RefTable == "" {
		return nil
	}
	for _, row := range gctx.Output[table.Name].Records {
		for _, c := range deferredFK.Columns {
			row[c] = nil
		}
	}
	return nil
}

func backfillDeferredFK(gctx *GenContext, table *Table, fk ForeignKey) error {
	if table == nil || fk.RefTable == "" {
		return nil
	}
	parent := gctx.Output[fk.RefTable]
	if parent == nil || len(parent.Records) == 0 {
		return nil
	}
	for i, row := range gctx.Output[table.Name].Records {
		spec := gctx.distFor(table.Name, fk.Columns[0])
		parentRow, err := gctx.FKSampler.SampleComposite(gctx, &fk, i, spec)
		if err != nil {
			continue // leave null; allNullable guaranteed this FK is nullable
		}
		for j, c := range fk.Columns {
			row[c] = parentRow[fk.RefColumns[j]]
		}
	}
	return nil
}

package relgen

import "sort"

// Cycle is one FK-dependency cycle found in the schema, listing the tables
// involved in the order they were discovered, rotated to start at the
// lexicographically smallest table name so the same cycle always reports
// identically regardless of discovery order.
type Cycle []string

// DeferredFKPlan describes how to break one cycle: tables in the group are
// first inserted with their non-deferred columns, then revisited to fill
// in the deferred FK column once every table in the cycle has rows.
type DeferredFKPlan struct {
	Tables        []string
	DeferredFK    map[string]ForeignKey // table -> the FK column(s) deferred to phase B
}

// Plan is the output of the dependency analyzer: an ordered list of phases.
// A phase is either one standalone table (Kahn's-algorithm order) or one
// cycle group requiring two-pass deferred-FK insertion.
type Plan struct {
	Phases []Phase
}

type Phase struct {
	Table    string           // set when this is a single, acyclic table
	Cycle    *DeferredFKPlan  // set when this is a cycle group
}

// Analyze builds the generation plan for schema: a dependency graph over
// FK-referenced tables, cycle detection via DFS back-edges, and a
// topological order (Kahn's algorithm, ties broken by table name) for the
// acyclic remainder. A cycle with no nullable FK anywhere in it is
// UnbreakableCycle.
func Analyze(schema *Schema) (*Plan, error) {
	tableByName := map[string]*Table{}
	for i := range schema.Tables {
		tableByName[schema.Tables[i].Name] = &schema.Tables[i]
	}

	edges := map[string][]string{} // table -> tables it depends on (its FK ref targets)
	for i := range schema.Tables {
		t := &schema.Tables[i]
		seen := map[string]bool{}
		for _, fk := range t.ForeignKeys() {
			if fk.RefTable == t.Name {
				continue // self-reference handled separately by the engine, not the planner
			}
			if !seen[fk.RefTable] {
				edges[t.Name] = append(edges[t.Name], fk.RefTable)
				seen[fk.RefTable] = true
			}
		}
	}

	cycles := detectCycles(schema, edges)
	inCycle := map[string]bool{}
	cycleOf := map[string]*Cycle{}
	for i := range cycles {
		for _, t := range cycles[i] {
			inCycle[t] = true
			cycleOf[t] = &cycles[i]
		}
	}

	for _, c := range cycles {
		if err := validateBreakable(tableByName, c); err != nil {
			return nil, err
		}
	}

	var plan Plan
	handled := map[string]bool{}

	// Kahn's algorithm over the acyclic subgraph: cycle members are
	// excluded here and emitted as cycle-group phases instead.
	inDegree := map[string]int{}
	for i := range schema.Tables {
		inDegree[schema.Tables[i].Name] = 0
	}
	for t, deps := range edges {
		if inCycle[t] {
			continue
		}
		for range deps {
			inDegree[t]++
		}
	}

	var ready []string
	for name := range inDegree {
		if inCycle[name] {
			continue
		}
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	emittedCycleGroups := map[*Cycle]bool{}

	for len(ready) > 0 || len(handled) < len(schema.Tables) {
		if len(ready) == 0 {
			// Every remaining unhandled table is part of a cycle; emit
			// cycle groups in lexicographic order of their smallest member.
			var remaining []*Cycle
			for _, c := range cycleOf {
				if !emittedCycleGroups[c] {
					remaining = append(remaining, c)
				}
			}
			if len(remaining) == 0 {
				break
			}
			sort.Slice(remaining, func(i, j int) bool { return (*remaining[i])[0] < (*remaining[j])[0] })
			c := remaining[0]
			emittedCycleGroups[c] = true
			dfp, err := buildDeferredPlan(tableByName, *c)
			if err != nil {
				return nil, err
			}
			plan.Phases = append(plan.Phases, Phase{Cycle: dfp})
			for _, t := range *c {
				handled[t] = true
			}
			// unlock any non-cycle tables that depended only on this cycle
			for name, deps := range edges {
				if handled[name] || inCycle[name] {
					continue
				}
				allSatisfied := true
				for _, d := range deps {
					if !handled[d] {
						allSatisfied = false
						break
					}
				}
				if allSatisfied {
					alreadyReady := false
					for _, r := range ready {
						if r == name {
							alreadyReady = true
						}
					}
					if !alreadyReady {
						ready = append(ready, name)
					}
				}
			}
			sort.Strings(ready)
			continue
		}
		name := ready[0]
		ready = ready[1:]
		if handled[name] {
			continue
		}
		plan.Phases = append(plan.Phases, Phase{Table: name})
		handled[name] = true
		for candidate, deps := range edges {
			if handled[candidate] || inCycle[candidate] {
				continue
			}
			allSatisfied := true
			for _, d := range deps {
				if !handled[d] {
					allSatisfied = false
					break
				}
			}
			if allSatisfied {
				alreadyReady := false
				for _, r := range ready {
					if r == candidate {
						alreadyReady = true
					}
				}
				if !alreadyReady {
					ready = append(ready, candidate)
				}
			}
		}
		sort.Strings(ready)
	}

	// Tables with zero FKs and zero dependents that never entered inDegree
	// iteration order deterministically (e.g. isolated tables) are covered
	// above since inDegree is seeded for every table.

	return &plan, nil
}

// detectCycles runs a 3-color DFS (white/grey/black via visiting/visited
// maps) over edges, collecting back-edges as cycles. Ported from the same
// algorithm shape used for fixture dependency resolution and scaffold
// table ordering: an on-stack path slice lets a discovered back-edge be
// sliced directly into the cycle's member list.
func detectCycles(schema *Schema, edges map[string][]string) []Cycle {
	visited := map[string]bool{}
	visiting := map[string]bool{}
	var path []string
	var cycles []Cycle

	var names []string
	for i := range schema.Tables {
		names = append(names, schema.Tables[i].Name)
	}
	sort.Strings(names)

	var visit func(string)
	visit = func(node string) {
		if visited[node] {
			return
		}
		if visiting[node] {
			// found a back-edge; extract the cycle from path
			start := 0
			for i, n := range path {
				if n == node {
					start = i
					break
				}
			}
			cycle := append([]string(nil), path[start:]...)
			cycles = append(cycles, normalizeCycle(cycle))
			return
		}
		visiting[node] = true
		path = append(path, node)
		deps := append([]string(nil), edges[node]...)
		sort.Strings(deps)
		for _, d := range deps {
			visit(d)
		}
		path = path[:len(path)-1]
		visiting[node] = false
		visited[node] = true
	}

	for _, n := range names {
		visit(n)
	}

	return dedupeCycles(cycles)
}

// normalizeCycle rotates a cycle so it starts at its lexicographically
// smallest member, giving the same cycle a canonical representation
// regardless of which node the DFS happened to be visiting when it found
// the back-edge.
func normalizeCycle(c []string) Cycle {
	minIdx := 0
	for i, n := range c {
		if n < c[minIdx] {
			minIdx = i
		}
	}
	return append(append(Cycle{}, c[minIdx:]...), c[:minIdx]...)
}

func dedupeCycles(cycles []Cycle) []Cycle {
	seen := map[string]bool{}
	var out []Cycle
	for _, c := range cycles {
		key := ""
		for _, n := range c {
			key += n + ","
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}

// validateBreakable ensures at least one table in the cycle has a nullable
// FK column pointing at another cycle member, which the engine can null
// out on the first pass and backfill on the second.
func validateBreakable(tableByName map[string]*Table, cycle Cycle) error {
	members := map[string]bool{}
	for _, t := range cycle {
		members[t] = true
	}
	for _, tname := range cycle {
		t := tableByName[tname]
		for _, fk := range t.ForeignKeys() {
			if members[fk.RefTable] && isNullableFK(t, fk) {
				return nil
			}
		}
	}
	return errUnbreakableCycle(cycle, "no nullable foreign key found to defer")
}

func isNullableFK(t *Table, fk ForeignKey) bool {
	for _, colName := range fk.Columns {
		col := t.Column(colName)
		if col == nil || !col.Nullable {
			return false
		}
	}
	return true
}

func buildDeferredPlan(tableByName map[string]*Table, cycle Cycle) (*DeferredFKPlan, error) {
	members := map[string]bool{}
	for _, t := range cycle {
		members[t] = true
	}
	deferred := map[string]ForeignKey{}
	for _, tname := range cycle {
		t := tableByName[tname]
		for _, fk := range t.ForeignKeys() {
			if members[fk.RefTable] && isNullableFK(t, fk) {
				deferred[tname] = fk
				break
			}
		}
	}
	return &DeferredFKPlan{Tables: append([]string(nil), cycle...), DeferredFK: deferred}, nil
}

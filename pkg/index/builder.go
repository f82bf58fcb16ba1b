// Package index turns oracle answers into deduplicated definitions and the
// reference regions that point at them.
package index

import (
	"sort"

	"github.com/srcweave/srcweave/pkg/types"
)

// Stats summarizes one Build.
type Stats struct {
	Pairs          int `json:"pairs"`
	Unresolved     int `json:"unresolved"`
	SelfReferences int `json:"self_references"`
	Definitions    int `json:"definitions"`
	Regions        int `json:"regions"`
}

// Build is BuildWithStats without the summary.
func Build(pairs []types.Pair) ([]types.ActiveRegion, []types.Definition) {
	regions, defs, _ := BuildWithStats(pairs)
	return regions, defs
}

// BuildWithStats deduplicates definition sites and emits one ActiveRegion per
// resolved reference.
//
// Pairs missing either side are dropped, as are pairs whose occurrence is the
// definition itself. Surviving pairs are sorted by definition interval, then
// occurrence interval, before ids are handed out, so ids depend only on the
// set of pairs and never on the order the oracle produced them in. Ids are
// dense and start at 0.
//
// Definitions come back ordered by id. Callers should not rely on the order
// of regions beyond it being deterministic.
func BuildWithStats(pairs []types.Pair) ([]types.ActiveRegion, []types.Definition, Stats) {
	stats := Stats{Pairs: len(pairs)}

	type resolved struct {
		occ, def types.Interval
	}
	kept := make([]resolved, 0, len(pairs))
	for _, p := range pairs {
		if p.Occurrence == nil || p.Definition == nil {
			stats.Unresolved++
			continue
		}
		if *p.Occurrence == *p.Definition {
			stats.SelfReferences++
			continue
		}
		kept = append(kept, resolved{occ: *p.Occurrence, def: *p.Definition})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].def != kept[j].def {
			return kept[i].def.Less(kept[j].def)
		}
		return kept[i].occ.Less(kept[j].occ)
	})

	ids := make(map[types.Interval]int)
	defs := make([]types.Definition, 0)
	regions := make([]types.ActiveRegion, 0, len(kept))
	for _, r := range kept {
		id, ok := ids[r.def]
		if !ok {
			id = len(defs)
			ids[r.def] = id
			defs = append(defs, types.Definition{ID: id, Interval: r.def})
		}
		regions = append(regions, types.ActiveRegion{Interval: r.occ, DefinitionID: id})
	}

	stats.Definitions = len(defs)
	stats.Regions = len(regions)
	return regions, defs, stats
}

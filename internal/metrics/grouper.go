package metrics

import (
	"sort"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
)

// GroupedOrder is the deduplicated form of one logical order: the
// representative task plus the number of physical records behind it.
type GroupedOrder struct {
	Representative domain.Task
	MemberCount    int
}

// Group collapses physical task records into logical orders keyed by
// base code. The representative is the member with the lowest ID, so
// the result is independent of input order. Tasks with an empty unique
// code cannot be grouped and are dropped; the second return value is
// how many were dropped.
func Group(tasks []domain.Task) (map[string]GroupedOrder, int) {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	groups := make(map[string]GroupedOrder)
	skipped := 0
	for _, t := range sorted {
		base := t.BaseCode()
		if base == "" {
			skipped++
			continue
		}
		g, ok := groups[base]
		if !ok {
			groups[base] = GroupedOrder{Representative: t, MemberCount: 1}
			continue
		}
		g.MemberCount++
		groups[base] = g
	}
	return groups, skipped
}

// Representatives returns the representative tasks of the given groups,
// ordered by base code so downstream reductions are deterministic.
func Representatives(groups map[string]GroupedOrder) []domain.Task {
	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	reps := make([]domain.Task, 0, len(groups))
	for _, code := range codes {
		reps = append(reps, groups[code].Representative)
	}
	return reps
}

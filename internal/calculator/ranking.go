package calculator

import "sort"

// RankEntry is the minimal information needed to rank one restaurant.
// Index is the caller's position for the entry and is returned untouched,
// so results map back even when IDs are empty or repeated.
type RankEntry struct {
	Index   int
	ID      string
	Average float64
}

// Rank orders entries by Average descending and returns at most limit of them.
// Ties keep ascending ID order, which is insertion order for UUIDv7 IDs,
// then ascending Index.
// The input slice is not modified.
func Rank(entries []RankEntry, limit int) []RankEntry {
	if limit <= 0 || len(entries) == 0 {
		return []RankEntry{}
	}

	ranked := make([]RankEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Average != ranked[j].Average {
			return ranked[i].Average > ranked[j].Average
		}
		if ranked[i].ID != ranked[j].ID {
			return ranked[i].ID < ranked[j].ID
		}
		return ranked[i].Index < ranked[j].Index
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

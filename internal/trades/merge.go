package trades

import "sort"

// MergeTrades combines the three trade sources into one logical view:
// remote-store records are inserted first, local-cache records overlay a
// remote copy only when their updatedAt is strictly newer (local records
// with no remote counterpart are always included), and seed records are
// injected only for IDs absent from both other sources.
//
// Status is re-derived from each record's todo list on the way through;
// a stored status is never trusted.
func MergeTrades(remote, local, seeds []Trade) []Trade {
	byID := make(map[string]Trade, len(remote)+len(local))
	order := make([]string, 0, len(remote)+len(local))

	for _, t := range remote {
		if _, seen := byID[t.ID]; !seen {
			order = append(order, t.ID)
		}
		byID[t.ID] = t
	}
	for _, t := range local {
		existing, seen := byID[t.ID]
		if !seen {
			byID[t.ID] = t
			order = append(order, t.ID)
			continue
		}
		if t.UpdatedAt.After(existing.UpdatedAt) {
			byID[t.ID] = t
		}
	}
	for _, t := range seeds {
		if _, seen := byID[t.ID]; !seen {
			byID[t.ID] = t
			order = append(order, t.ID)
		}
	}

	merged := make([]Trade, 0, len(order))
	for _, id := range order {
		t := byID[id]
		t.Status = DeriveStatus(t.Todos)
		merged = append(merged, t)
	}

	// Most recently touched first.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TouchedAt().After(merged[j].TouchedAt())
	})
	return merged
}

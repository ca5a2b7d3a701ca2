package trades

import "fmt"

// DiscrepancyNote flags one way a trade's current item data has drifted
// from the terms captured in its listing snapshot.
type DiscrepancyNote struct {
	LineID  string `json:"line_id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListingDiscrepancies compares current items against the immutable
// listing snapshot. Returns nil when the trade has no snapshot or
// nothing has drifted.
func ListingDiscrepancies(t *Trade) []DiscrepancyNote {
	if t.ListingSnapshot == nil {
		return nil
	}

	current := make(map[string]StatementItem, len(t.Items))
	for _, item := range t.Items {
		current[item.LineID] = item
	}

	var notes []DiscrepancyNote
	for _, orig := range t.ListingSnapshot.Items {
		item, ok := current[orig.LineID]
		if !ok {
			notes = append(notes, DiscrepancyNote{
				LineID:  orig.LineID,
				Field:   "line",
				Message: "line from the original listing is no longer on the trade",
			})
			continue
		}
		if item.Qty != nil && *item.Qty != orig.Qty {
			notes = append(notes, DiscrepancyNote{
				LineID:  orig.LineID,
				Field:   "qty",
				Message: fmt.Sprintf("quantity changed from %d to %d", orig.Qty, *item.Qty),
			})
		}
		if item.UnitPrice != nil && *item.UnitPrice != orig.UnitPrice {
			notes = append(notes, DiscrepancyNote{
				LineID:  orig.LineID,
				Field:   "unit_price",
				Message: fmt.Sprintf("unit price changed from %d to %d yen", orig.UnitPrice, *item.UnitPrice),
			})
		}
		if orig.StorageLocation != "" && item.StorageLocation != orig.StorageLocation {
			notes = append(notes, DiscrepancyNote{
				LineID:  orig.LineID,
				Field:   "storage_location",
				Message: fmt.Sprintf("storage location changed from %q to %q", orig.StorageLocation, item.StorageLocation),
			})
		}
	}
	return notes
}

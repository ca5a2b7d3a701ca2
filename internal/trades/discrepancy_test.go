package trades

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListingDiscrepanciesNilWithoutSnapshot(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)
	assert.Nil(t, ListingDiscrepancies(trade))
}

func TestListingDiscrepanciesReportsDrift(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)
	trade.Items = []StatementItem{
		{LineID: "l1", ItemName: "NC lathe", Qty: i64(3), UnitPrice: i64(170000), StorageLocation: "Kobe warehouse"},
	}
	trade.ListingSnapshot = &ListingSnapshot{
		ListingID: "listing-1",
		Items: []ListingItem{
			{LineID: "l1", Qty: 2, UnitPrice: 180000, StorageLocation: "Osaka No.2 warehouse"},
			{LineID: "l2", Qty: 1, UnitPrice: 42000},
		},
		CapturedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	notes := ListingDiscrepancies(trade)

	assert.Len(t, notes, 4)

	fields := make(map[string]int)
	for _, note := range notes {
		fields[note.Field]++
	}
	assert.Equal(t, 1, fields["qty"])
	assert.Equal(t, 1, fields["unit_price"])
	assert.Equal(t, 1, fields["storage_location"])
	assert.Equal(t, 1, fields["line"])
}

func TestListingDiscrepanciesQuietWhenUnchanged(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)
	trade.Items = []StatementItem{
		{LineID: "l1", ItemName: "NC lathe", Qty: i64(2), UnitPrice: i64(180000)},
	}
	trade.ListingSnapshot = &ListingSnapshot{
		ListingID: "listing-1",
		Items:     []ListingItem{{LineID: "l1", Qty: 2, UnitPrice: 180000}},
	}

	assert.Empty(t, ListingDiscrepancies(trade))
}

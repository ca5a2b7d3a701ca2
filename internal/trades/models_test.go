package trades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsWellFormedTrade(t *testing.T) {
	trade := tradeAt(StatusPaymentRequired)
	trade.TaxRate = DefaultTaxRate

	assert.NoError(t, trade.Validate())
}

func TestValidateRejectsMalformedRecords(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Trade)
	}{
		{"missing id", func(tr *Trade) { tr.ID = "" }},
		{"missing buyer", func(tr *Trade) { tr.BuyerUserID = "" }},
		{"same party on both sides", func(tr *Trade) { tr.BuyerUserID = tr.SellerUserID }},
		{"unknown todo kind", func(tr *Trade) {
			tr.Todos = []TodoItem{{Kind: "mystery_step", Status: TodoOpen}}
		}},
		{"invalid todo status", func(tr *Trade) {
			tr.Todos = []TodoItem{{Kind: TodoApplicationSent, Status: "pending"}}
		}},
		{"two open todos", func(tr *Trade) {
			tr.Todos = []TodoItem{
				{Kind: TodoApplicationSent, Status: TodoOpen},
				{Kind: TodoApplicationApproved, Status: TodoOpen},
			}
		}},
		{"tax rate out of range", func(tr *Trade) { tr.TaxRate = 1.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trade := tradeAt(StatusApprovalRequired)
			tc.mutate(trade)
			assert.Error(t, trade.Validate())
		})
	}
}

func TestValidateAcceptsInquiryAlias(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)
	trade.Todos = []TodoItem{{Kind: TodoInquirySent, Assignee: RoleBuyer, Status: TodoOpen}}

	assert.NoError(t, trade.Validate())
}

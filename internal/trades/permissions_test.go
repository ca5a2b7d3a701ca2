package trades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tradeAt(status TradeStatus) *Trade {
	return &Trade{
		ID:           "trade-1",
		SellerUserID: "seller-1",
		BuyerUserID:  "buyer-1",
		Todos:        BuildTodosFromStatus(status),
	}
}

func TestRoleOf(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)

	assert.Equal(t, RoleBuyer, RoleOf(trade, "buyer-1"))
	assert.Equal(t, RoleSeller, RoleOf(trade, "seller-1"))
	assert.Equal(t, RoleNone, RoleOf(trade, "stranger"))
	assert.Equal(t, RoleNone, RoleOf(trade, ""))
}

func TestOnlyBuyerAdvancesHappyPath(t *testing.T) {
	approval := tradeAt(StatusApprovalRequired)
	assert.True(t, CanApprove(approval, "buyer-1"))
	assert.False(t, CanApprove(approval, "seller-1"))
	assert.False(t, CanApprove(approval, "stranger"))

	payment := tradeAt(StatusPaymentRequired)
	assert.True(t, CanMarkPaid(payment, "buyer-1"))
	assert.False(t, CanMarkPaid(payment, "seller-1"))

	confirm := tradeAt(StatusConfirmRequired)
	assert.True(t, CanMarkCompleted(confirm, "buyer-1"))
	assert.False(t, CanMarkCompleted(confirm, "seller-1"))
}

func TestAdvancesRequireMatchingOpenStep(t *testing.T) {
	payment := tradeAt(StatusPaymentRequired)

	// The buyer may only complete the step that is actually open.
	assert.False(t, CanApprove(payment, "buyer-1"))
	assert.False(t, CanMarkCompleted(payment, "buyer-1"))
	assert.True(t, CanMarkPaid(payment, "buyer-1"))
}

func TestCanApproveAcceptsInquiryAlias(t *testing.T) {
	trade := tradeAt(StatusApprovalRequired)
	trade.Todos = []TodoItem{{Kind: TodoInquirySent, Assignee: RoleBuyer, Status: TodoOpen}}

	assert.True(t, CanApprove(trade, "buyer-1"))
}

func TestEitherPartyCancelsWhileActive(t *testing.T) {
	for _, status := range []TradeStatus{StatusApprovalRequired, StatusPaymentRequired, StatusConfirmRequired} {
		trade := tradeAt(status)
		assert.True(t, CanCancel(trade, "buyer-1"), "buyer should cancel at %s", status)
		assert.True(t, CanCancel(trade, "seller-1"), "seller should cancel at %s", status)
		assert.False(t, CanCancel(trade, "stranger"))
	}
}

func TestTerminalTradesCannotBeCanceled(t *testing.T) {
	for _, status := range []TradeStatus{StatusCompleted, StatusCanceled} {
		trade := tradeAt(status)
		assert.False(t, CanCancel(trade, "buyer-1"))
		assert.False(t, CanCancel(trade, "seller-1"))
	}
}

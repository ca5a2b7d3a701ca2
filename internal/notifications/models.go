package notifications

import "time"

// TradeEvent describes one workflow transition for the two parties.
type TradeEvent struct {
	TradeID    string    `json:"trade_id"`
	Status     string    `json:"status"`
	ActingRole string    `json:"acting_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

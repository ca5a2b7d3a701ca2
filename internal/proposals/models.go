package proposals

import (
	"encoding/json"
	"time"
)

type ProposalStatus string

const (
	StatusPending  ProposalStatus = "PENDING"
	StatusApproved ProposalStatus = "APPROVED"
	StatusRejected ProposalStatus = "REJECTED"
)

// Proposal is a buyer-authored purchase inquiry, the precursor of a
// trade. When the seller approves it, a trade is created in
// APPROVAL_REQUIRED carrying the proposal's ID as its naviId.
type Proposal struct {
	ID           string          `db:"id" json:"id"`
	BuyerUserID  string          `db:"buyer_user_id" json:"buyer_user_id"`
	SellerUserID string          `db:"seller_user_id" json:"seller_user_id"`
	BuyerName    string          `db:"buyer_name" json:"buyer_name"`
	SellerName   string          `db:"seller_name" json:"seller_name"`
	Items        json.RawMessage `db:"items" json:"items"`
	Status       ProposalStatus  `db:"status" json:"status"`
	TradeID      *string         `db:"trade_id" json:"trade_id,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

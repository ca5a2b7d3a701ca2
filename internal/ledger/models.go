package ledger

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EntryCategory string

const (
	CategoryPurchase EntryCategory = "PURCHASE"
	CategorySale     EntryCategory = "SALE"
)

// Account holds a party's running balance in yen.
type Account struct {
	UserID     string    `gorm:"primaryKey" json:"user_id"`
	BalanceYen int64     `json:"balance_yen"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Entry is one append-only posting. Entries are never mutated or
// deleted; the balance after the posting is denormalized onto the row so
// statements can be rendered without replaying history.
type Entry struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string         `gorm:"index" json:"user_id"`
	Category         EntryCategory  `json:"category"`
	AmountYen        int64          `json:"amount_yen"`
	TradeID          string         `gorm:"index" json:"trade_id"`
	CounterpartyName string         `json:"counterparty_name"`
	ItemDescription  string         `json:"item_description"`
	BalanceAfterYen  int64          `json:"balance_after_yen"`
	Metadata         datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// CreditedTrade is the durable set of trade IDs whose completion credit
// has already been posted. A trade ID lands here only after a successful
// credit, which is what makes replayed completions no-ops.
type CreditedTrade struct {
	TradeID    string    `gorm:"primaryKey" json:"trade_id"`
	CreditedAt time.Time `json:"credited_at"`
}

// DebitedTrade is the debit-side counterpart of CreditedTrade: trade IDs
// whose purchase debit has been posted. A retried payment request after
// a failed trade write must not decrement the buyer twice.
type DebitedTrade struct {
	TradeID   string    `gorm:"primaryKey" json:"trade_id"`
	DebitedAt time.Time `json:"debited_at"`
}

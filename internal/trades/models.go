package trades

import (
	"fmt"
	"time"
)

type TradeStatus string

const (
	StatusApprovalRequired TradeStatus = "APPROVAL_REQUIRED"
	StatusPaymentRequired  TradeStatus = "PAYMENT_REQUIRED"
	StatusConfirmRequired  TradeStatus = "CONFIRM_REQUIRED"
	StatusCompleted        TradeStatus = "COMPLETED"
	StatusCanceled         TradeStatus = "CANCELED"
)

type TodoKind string

const (
	TodoApplicationSent     TodoKind = "application_sent"
	TodoApplicationApproved TodoKind = "application_approved"
	TodoPaymentConfirmed    TodoKind = "payment_confirmed"
	TodoTradeCompleted      TodoKind = "trade_completed"
	TodoTradeCanceled       TodoKind = "trade_canceled"

	// TodoInquirySent is a deprecated alias of TodoApplicationSent that
	// still appears in older records. It is never produced by new code.
	TodoInquirySent TodoKind = "inquiry_sent"
)

type TodoStatus string

const (
	TodoOpen TodoStatus = "open"
	TodoDone TodoStatus = "done"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleNone   Role = "none"
)

// TodoItem is one pending or completed step in a trade's workflow.
type TodoItem struct {
	Kind     TodoKind   `json:"kind"`
	Assignee Role       `json:"assignee"`
	Status   TodoStatus `json:"status"`
}

// StatementItem is one commercial line of a trade. Monetary values are
// integer yen. Amount, when set, overrides Qty*UnitPrice.
type StatementItem struct {
	LineID          string `json:"line_id"`
	Maker           string `json:"maker,omitempty"`
	ItemName        string `json:"item_name"`
	Category        string `json:"category,omitempty"`
	Qty             *int64 `json:"qty,omitempty"`
	UnitPrice       *int64 `json:"unit_price,omitempty"`
	Amount          *int64 `json:"amount,omitempty"`
	IsTaxable       *bool  `json:"is_taxable,omitempty"`
	StorageLocation string `json:"storage_location,omitempty"`
	Note            string `json:"note,omitempty"`
}

// CompanyProfile is the denormalized party snapshot carried on a trade.
type CompanyProfile struct {
	Name        string `json:"name"`
	Zip         string `json:"zip,omitempty"`
	Address     string `json:"address,omitempty"`
	Tel         string `json:"tel,omitempty"`
	Fax         string `json:"fax,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	TaxCategory string `json:"tax_category,omitempty"`
}

// ShippingAddress is the buyer's receiving snapshot.
type ShippingAddress struct {
	Company     string `json:"company"`
	Zip         string `json:"zip,omitempty"`
	Address     string `json:"address"`
	Tel         string `json:"tel,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
}

// BuyerContact is a reusable receiving contact for the buyer.
type BuyerContact struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
}

// ListingItem captures one line of the originating offer at creation time.
type ListingItem struct {
	LineID          string `json:"line_id"`
	Qty             int64  `json:"qty"`
	UnitPrice       int64  `json:"unit_price"`
	StorageLocation string `json:"storage_location,omitempty"`
}

// ListingSnapshot is the immutable record of the originating offer's
// terms, used to compute discrepancy notes when current item data drifts.
type ListingSnapshot struct {
	ListingID  string        `json:"listing_id"`
	Items      []ListingItem `json:"items"`
	CapturedAt time.Time     `json:"captured_at"`
}

// Trade is the aggregate root. Todos is the source of truth for workflow
// state; Status is derived from it and must never be authored directly.
type Trade struct {
	ID     string `json:"id"`
	NaviID string `json:"navi_id,omitempty"`

	SellerUserID  string         `json:"seller_user_id"`
	BuyerUserID   string         `json:"buyer_user_id"`
	SellerName    string         `json:"seller_name"`
	BuyerName     string         `json:"buyer_name"`
	SellerProfile CompanyProfile `json:"seller_profile"`
	BuyerProfile  CompanyProfile `json:"buyer_profile"`

	Items   []StatementItem `json:"items"`
	TaxRate float64         `json:"tax_rate"`

	Todos  []TodoItem  `json:"todos"`
	Status TradeStatus `json:"status"`

	ContractDate  *time.Time `json:"contract_date,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentAmount *int64     `json:"payment_amount,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
	CanceledBy    Role       `json:"canceled_by,omitempty"`

	Shipping *ShippingAddress `json:"shipping,omitempty"`
	Contacts []BuyerContact   `json:"contacts,omitempty"`

	ListingSnapshot *ListingSnapshot `json:"listing_snapshot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether the trade can no longer be transitioned.
func (t *Trade) Terminal() bool {
	s := DeriveStatus(t.Todos)
	return s == StatusCompleted || s == StatusCanceled
}

// TouchedAt is the sort key for list views: last update, falling back to
// creation time for records that have never been touched.
func (t *Trade) TouchedAt() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

var validTodoKinds = map[TodoKind]bool{
	TodoApplicationSent:     true,
	TodoApplicationApproved: true,
	TodoPaymentConfirmed:    true,
	TodoTradeCompleted:      true,
	TodoTradeCanceled:       true,
	TodoInquirySent:         true,
}

// Validate rejects malformed trade DTOs. Records from the remote store
// are validated before they enter the merged view; a mismatch is a hard
// failure, never coerced.
func (t *Trade) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trade: missing id")
	}
	if t.SellerUserID == "" || t.BuyerUserID == "" {
		return fmt.Errorf("trade %s: missing party user ids", t.ID)
	}
	if t.SellerUserID == t.BuyerUserID {
		return fmt.Errorf("trade %s: seller and buyer are the same user", t.ID)
	}
	open := 0
	for i, todo := range t.Todos {
		if !validTodoKinds[todo.Kind] {
			return fmt.Errorf("trade %s: unknown todo kind %q", t.ID, todo.Kind)
		}
		if todo.Status != TodoOpen && todo.Status != TodoDone {
			return fmt.Errorf("trade %s: todo %d has invalid status %q", t.ID, i, todo.Status)
		}
		if todo.Status == TodoOpen {
			open++
		}
	}
	if open > 1 {
		return fmt.Errorf("trade %s: %d open todos, want at most one", t.ID, open)
	}
	if t.TaxRate < 0 || t.TaxRate > 1 {
		return fmt.Errorf("trade %s: tax rate %v out of range", t.ID, t.TaxRate)
	}
	return nil
}

package parties

import "time"

// Profile is a party's master company record. Trades denormalize a
// snapshot of it per side at creation time; later profile edits never
// rewrite existing trades.
type Profile struct {
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Zip         string    `db:"zip" json:"zip,omitempty"`
	Address     string    `db:"address" json:"address,omitempty"`
	Tel         string    `db:"tel" json:"tel,omitempty"`
	Fax         string    `db:"fax" json:"fax,omitempty"`
	ContactName string    `db:"contact_name" json:"contact_name,omitempty"`
	TaxCategory string    `db:"tax_category" json:"tax_category,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Contact is a reusable receiving contact a buyer can attach to a
// trade's shipping snapshot.
type Contact struct {
	UserID    string    `db:"user_id" json:"user_id"`
	ContactID string    `db:"contact_id" json:"contact_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

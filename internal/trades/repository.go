package trades

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrConflict is returned by conditional writes when the stored record
// was touched since it was read.
var ErrConflict = errors.New("trade was modified concurrently")

// Repository is the local durable cache. Its row shape mirrors the
// remote DTO one-to-one so the merge layer can compare updatedAt without
// transformation.
type Repository interface {
	ListTrades(ctx context.Context) ([]Trade, error)
	GetTrade(ctx context.Context, id string) (*Trade, error)
	SaveTrade(ctx context.Context, t *Trade) error
	// SaveTradeIf upserts only when the stored updated_at still equals
	// expected; returns ErrConflict otherwise.
	SaveTradeIf(ctx context.Context, t *Trade, expected time.Time) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type tradeRow struct {
	ID           string    `db:"id"`
	SellerUserID string    `db:"seller_user_id"`
	BuyerUserID  string    `db:"buyer_user_id"`
	Status       string    `db:"status"`
	Payload      []byte    `db:"payload"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func rowFromTrade(t *Trade) (*tradeRow, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal trade %s: %w", t.ID, err)
	}
	return &tradeRow{
		ID:           t.ID,
		SellerUserID: t.SellerUserID,
		BuyerUserID:  t.BuyerUserID,
		Status:       string(DeriveStatus(t.Todos)),
		Payload:      payload,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func (r *tradeRow) toTrade() (*Trade, error) {
	var t Trade
	if err := json.Unmarshal(r.Payload, &t); err != nil {
		return nil, fmt.Errorf("unmarshal trade %s: %w", r.ID, err)
	}
	return &t, nil
}

func (r *postgresRepository) ListTrades(ctx context.Context) ([]Trade, error) {
	var rows []tradeRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM trade_cache ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}

	trades := make([]Trade, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toTrade()
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

func (r *postgresRepository) GetTrade(ctx context.Context, id string) (*Trade, error) {
	var row tradeRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM trade_cache WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toTrade()
}

func (r *postgresRepository) SaveTrade(ctx context.Context, t *Trade) error {
	row, err := rowFromTrade(t)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO trade_cache (
			id, seller_user_id, buyer_user_id, status, payload, created_at, updated_at
		) VALUES (
			:id, :seller_user_id, :buyer_user_id, :status, :payload, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`
	_, err = r.db.NamedExecContext(ctx, query, row)
	return err
}

func (r *postgresRepository) SaveTradeIf(ctx context.Context, t *Trade, expected time.Time) error {
	row, err := rowFromTrade(t)
	if err != nil {
		return err
	}
	query := `
		UPDATE trade_cache SET
			status = $2,
			payload = $3,
			updated_at = $4
		WHERE id = $1 AND updated_at = $5`
	res, err := r.db.ExecContext(ctx, query, row.ID, row.Status, row.Payload, row.UpdatedAt, expected)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

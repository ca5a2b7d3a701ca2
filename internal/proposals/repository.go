package proposals

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateProposal(ctx context.Context, p *Proposal) error
	GetProposalByID(ctx context.Context, id string) (*Proposal, error)
	ListProposals(ctx context.Context, userID string) ([]Proposal, error)
	UpdateProposal(ctx context.Context, p *Proposal) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProposal(ctx context.Context, p *Proposal) error {
	query := `
		INSERT INTO proposals (
			id, buyer_user_id, seller_user_id, buyer_name, seller_name,
			items, status, trade_id, created_at, updated_at
		) VALUES (
			:id, :buyer_user_id, :seller_user_id, :buyer_name, :seller_name,
			:items, :status, :trade_id, :created_at, :updated_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *postgresRepository) GetProposalByID(ctx context.Context, id string) (*Proposal, error) {
	var p Proposal
	err := r.db.GetContext(ctx, &p, "SELECT * FROM proposals WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) ListProposals(ctx context.Context, userID string) ([]Proposal, error) {
	var proposals []Proposal
	query := `
		SELECT * FROM proposals
		WHERE buyer_user_id = $1 OR seller_user_id = $1
		ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &proposals, query, userID)
	return proposals, err
}

func (r *postgresRepository) UpdateProposal(ctx context.Context, p *Proposal) error {
	query := `
		UPDATE proposals SET
			status = :status,
			trade_id = :trade_id,
			updated_at = :updated_at
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

package parties

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error
	ListContacts(ctx context.Context, userID string) ([]Contact, error)
	AddContact(ctx context.Context, contact *Contact) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM party_profiles WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO party_profiles (
			user_id, name, zip, address, tel, fax, contact_name, tax_category, created_at, updated_at
		) VALUES (
			:user_id, :name, :zip, :address, :tel, :fax, :contact_name, :tax_category, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			zip = EXCLUDED.zip,
			address = EXCLUDED.address,
			tel = EXCLUDED.tel,
			fax = EXCLUDED.fax,
			contact_name = EXCLUDED.contact_name,
			tax_category = EXCLUDED.tax_category,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.NamedExecContext(ctx, query, profile)
	return err
}

func (r *postgresRepository) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	var contacts []Contact
	err := r.db.SelectContext(ctx, &contacts, "SELECT * FROM buyer_contacts WHERE user_id = $1 ORDER BY created_at", userID)
	return contacts, err
}

func (r *postgresRepository) AddContact(ctx context.Context, contact *Contact) error {
	query := `
		INSERT INTO buyer_contacts (user_id, contact_id, name, created_at)
		VALUES (:user_id, :contact_id, :name, :created_at)
		ON CONFLICT (user_id, contact_id) DO UPDATE SET name = EXCLUDED.name`
	_, err := r.db.NamedExecContext(ctx, query, contact)
	return err
}

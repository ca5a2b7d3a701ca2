package parties

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradelink/trade-portal/trade-portal-backend/internal/trades"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, profile *Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return s.repo.UpsertProfile(ctx, profile)
}

func (s *Service) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	return s.repo.ListContacts(ctx, userID)
}

func (s *Service) AddContact(ctx context.Context, userID, name string) (*Contact, error) {
	contact := &Contact{
		UserID:    userID,
		ContactID: uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ProfileFor satisfies the trade service's ProfileProvider: it maps the
// master record into the denormalized snapshot carried on trades. A
// missing profile yields an empty snapshot rather than an error so
// trades can still be drafted against parties who have not filled one in.
func (s *Service) ProfileFor(ctx context.Context, userID string) (trades.CompanyProfile, bool, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return trades.CompanyProfile{}, false, err
	}
	if profile == nil {
		return trades.CompanyProfile{}, false, nil
	}
	return trades.CompanyProfile{
		Name:        profile.Name,
		Zip:         profile.Zip,
		Address:     profile.Address,
		Tel:         profile.Tel,
		Fax:         profile.Fax,
		ContactName: profile.ContactName,
		TaxCategory: profile.TaxCategory,
	}, true, nil
}

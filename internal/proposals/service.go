package proposals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradelink/trade-portal/trade-portal-backend/internal/trades"
)

var (
	ErrNotFound   = errors.New("proposal not found")
	ErrNotAllowed = errors.New("proposal decision not allowed for this user in this state")
)

// TradeCreator is the slice of the trade service a proposal approval
// needs: converting the accepted inquiry into a new trade.
type TradeCreator interface {
	CreateTrade(ctx context.Context, req trades.CreateRequest) (*trades.Trade, error)
}

type Service interface {
	CreateProposal(ctx context.Context, p *Proposal) (*Proposal, error)
	GetProposal(ctx context.Context, id string) (*Proposal, error)
	ListProposals(ctx context.Context, userID string) ([]Proposal, error)
	// Decide applies the status-only transition: APPROVED converts the
	// proposal into a trade, REJECTED closes it. Only the seller decides,
	// and only while the proposal is pending.
	Decide(ctx context.Context, id string, status ProposalStatus, actingUserID string) (*Proposal, error)
}

type proposalService struct {
	repo    Repository
	creator TradeCreator
	logger  *zap.Logger
}

func NewService(repo Repository, creator TradeCreator, logger *zap.Logger) Service {
	return &proposalService{repo: repo, creator: creator, logger: logger}
}

func (s *proposalService) CreateProposal(ctx context.Context, p *Proposal) (*Proposal, error) {
	if p.BuyerUserID == "" || p.SellerUserID == "" {
		return nil, fmt.Errorf("create proposal: both party user ids are required")
	}
	now := time.Now()
	p.ID = uuid.NewString()
	p.Status = StatusPending
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.CreateProposal(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proposalService) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	p, err := s.repo.GetProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *proposalService) ListProposals(ctx context.Context, userID string) ([]Proposal, error) {
	return s.repo.ListProposals(ctx, userID)
}

func (s *proposalService) Decide(ctx context.Context, id string, status ProposalStatus, actingUserID string) (*Proposal, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, fmt.Errorf("unknown proposal status %q", status)
	}

	p, err := s.repo.GetProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Status != StatusPending || actingUserID != p.SellerUserID {
		return nil, ErrNotAllowed
	}

	if status == StatusApproved {
		var items []trades.StatementItem
		if len(p.Items) > 0 {
			if err := json.Unmarshal(p.Items, &items); err != nil {
				return nil, fmt.Errorf("proposal %s has malformed items: %w", p.ID, err)
			}
		}
		trade, err := s.creator.CreateTrade(ctx, trades.CreateRequest{
			NaviID:       p.ID,
			SellerUserID: p.SellerUserID,
			BuyerUserID:  p.BuyerUserID,
			SellerName:   p.SellerName,
			BuyerName:    p.BuyerName,
			Items:        items,
		})
		if err != nil {
			return nil, fmt.Errorf("create trade from proposal: %w", err)
		}
		p.TradeID = &trade.ID
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	if err := s.repo.UpdateProposal(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("proposal decided",
		zap.String("proposal_id", p.ID),
		zap.String("status", string(p.Status)),
		zap.String("acting_user", actingUserID))
	return p, nil
}

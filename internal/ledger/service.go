package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service interface {
	// RecordDebit posts a PURCHASE entry against the buyer and lowers
	// their balance. Fails with ErrUnknownParty or ErrInsufficientFunds
	// without any partial write. A trade contributes a debit at most
	// once: a retried payment request for an already-debited trade
	// returns the current balance without posting.
	RecordDebit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error)

	// RecordCredit posts a SALE entry for the seller. A trade contributes
	// a credit at most once: replays of an already-credited trade return
	// the current balance without posting.
	RecordCredit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error)

	Balance(ctx context.Context, userID string) (int64, error)
	Entries(ctx context.Context, userID string) ([]Entry, error)
	OpenAccount(ctx context.Context, userID string, openingBalanceYen int64) error
}

type ledgerService struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &ledgerService{repo: repo, logger: logger, now: time.Now}
}

func (s *ledgerService) RecordDebit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error) {
	debited, err := s.repo.IsDebited(ctx, tradeID)
	if err != nil {
		return 0, err
	}
	if debited {
		// Retried payment after a failed trade write: the money already
		// moved, only the workflow step needs to land.
		s.logger.Info("debit skipped, trade already debited",
			zap.String("trade_id", tradeID))
		return s.repo.GetBalance(ctx, userID)
	}

	balance, err := s.repo.ApplyDelta(ctx, userID, -amountYen)
	if err != nil {
		return 0, err
	}

	entry := s.newEntry(userID, CategoryPurchase, amountYen, tradeID, counterpartyName, itemDescription, balance)
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return 0, fmt.Errorf("append purchase entry: %w", err)
	}

	// Marked only after the debit is fully posted.
	if err := s.repo.MarkDebited(ctx, tradeID); err != nil {
		return 0, fmt.Errorf("mark trade debited: %w", err)
	}

	s.logger.Info("buyer debited",
		zap.String("user_id", userID),
		zap.String("trade_id", tradeID),
		zap.Int64("amount_yen", amountYen),
		zap.Int64("balance_yen", balance))
	return balance, nil
}

func (s *ledgerService) RecordCredit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error) {
	credited, err := s.repo.IsCredited(ctx, tradeID)
	if err != nil {
		return 0, err
	}
	if credited {
		// Replayed completion: the state transition still applies, the
		// money does not move twice.
		s.logger.Info("credit skipped, trade already credited",
			zap.String("trade_id", tradeID))
		return s.repo.GetBalance(ctx, userID)
	}

	balance, err := s.repo.ApplyDelta(ctx, userID, amountYen)
	if err != nil {
		return 0, err
	}

	entry := s.newEntry(userID, CategorySale, amountYen, tradeID, counterpartyName, itemDescription, balance)
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return 0, fmt.Errorf("append sale entry: %w", err)
	}

	// Marked only after the credit is fully posted.
	if err := s.repo.MarkCredited(ctx, tradeID); err != nil {
		return 0, fmt.Errorf("mark trade credited: %w", err)
	}

	s.logger.Info("seller credited",
		zap.String("user_id", userID),
		zap.String("trade_id", tradeID),
		zap.Int64("amount_yen", amountYen),
		zap.Int64("balance_yen", balance))
	return balance, nil
}

func (s *ledgerService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *ledgerService) Entries(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}

func (s *ledgerService) OpenAccount(ctx context.Context, userID string, openingBalanceYen int64) error {
	return s.repo.CreateAccount(ctx, &Account{
		UserID:     userID,
		BalanceYen: openingBalanceYen,
		UpdatedAt:  s.now(),
	})
}

func (s *ledgerService) newEntry(userID string, category EntryCategory, amountYen int64, tradeID, counterpartyName, itemDescription string, balanceAfter int64) *Entry {
	metadata, _ := json.Marshal(map[string]string{"trade_id": tradeID})
	return &Entry{
		ID:               uuid.New(),
		UserID:           userID,
		Category:         category,
		AmountYen:        amountYen,
		TradeID:          tradeID,
		CounterpartyName: counterpartyName,
		ItemDescription:  itemDescription,
		BalanceAfterYen:  balanceAfter,
		Metadata:         datatypes.JSON(metadata),
		CreatedAt:        s.now(),
	}
}

package ledger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUnknownParty      = errors.New("ledger: unknown party")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
)

type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetBalance(ctx context.Context, userID string) (int64, error)
	// ApplyDelta atomically adjusts a balance and returns the new value.
	// A negative delta that would take the balance below zero fails with
	// ErrInsufficientFunds; a missing account fails with ErrUnknownParty.
	ApplyDelta(ctx context.Context, userID string, deltaYen int64) (int64, error)
	AppendEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context, userID string) ([]Entry, error)

	IsCredited(ctx context.Context, tradeID string) (bool, error)
	MarkCredited(ctx context.Context, tradeID string) error

	IsDebited(ctx context.Context, tradeID string) (bool, error)
	MarkDebited(ctx context.Context, tradeID string) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Entry{}, &CreditedTrade{}, &DebitedTrade{})
}

func (r *gormRepository) CreateAccount(ctx context.Context, account *Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *gormRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var account Account
	err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUnknownParty
	}
	if err != nil {
		return 0, err
	}
	return account.BalanceYen, nil
}

func (r *gormRepository) ApplyDelta(ctx context.Context, userID string, deltaYen int64) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update so a concurrent debit cannot drive the
		// balance negative between read and write.
		res := tx.Model(&Account{}).
			Where("user_id = ? AND balance_yen + ? >= 0", userID, deltaYen).
			Update("balance_yen", gorm.Expr("balance_yen + ?", deltaYen))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Account{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrUnknownParty
			}
			return ErrInsufficientFunds
		}

		var account Account
		if err := tx.First(&account, "user_id = ?", userID).Error; err != nil {
			return err
		}
		balance = account.BalanceYen
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *gormRepository) AppendEntry(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormRepository) ListEntries(ctx context.Context, userID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *gormRepository) IsCredited(ctx context.Context, tradeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CreditedTrade{}).Where("trade_id = ?", tradeID).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) MarkCredited(ctx context.Context, tradeID string) error {
	return r.db.WithContext(ctx).Create(&CreditedTrade{TradeID: tradeID, CreditedAt: time.Now()}).Error
}

func (r *gormRepository) IsDebited(ctx context.Context, tradeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DebitedTrade{}).Where("trade_id = ?", tradeID).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) MarkDebited(ctx context.Context, tradeID string) error {
	return r.db.WithContext(ctx).Create(&DebitedTrade{TradeID: tradeID, DebitedAt: time.Now()}).Error
}

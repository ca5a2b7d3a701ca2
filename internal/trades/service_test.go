package trades

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListTrades(ctx context.Context) ([]Trade, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Trade), args.Error(1)
}

func (m *MockRepository) GetTrade(ctx context.Context, id string) (*Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trade), args.Error(1)
}

func (m *MockRepository) SaveTrade(ctx context.Context, t *Trade) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) SaveTradeIf(ctx context.Context, t *Trade, expected time.Time) error {
	args := m.Called(ctx, t, expected)
	return args.Error(0)
}

// MockRemoteStore is a mock implementation of the RemoteStore interface
type MockRemoteStore struct {
	mock.Mock
}

func (m *MockRemoteStore) FetchTrades(ctx context.Context) ([]Trade, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Trade), args.Error(1)
}

func (m *MockRemoteStore) FetchTrade(ctx context.Context, id string) (*Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trade), args.Error(1)
}

func (m *MockRemoteStore) CreateTrade(ctx context.Context, t *Trade) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateTrade(ctx context.Context, t *Trade, expected time.Time) error {
	args := m.Called(ctx, t, expected)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateShipping(ctx context.Context, id string, shipping ShippingAddress, contacts []BuyerContact) error {
	args := m.Called(ctx, id, shipping, contacts)
	return args.Error(0)
}

// MockLedger is a mock implementation of the LedgerRecorder interface
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) RecordDebit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error) {
	args := m.Called(ctx, userID, amountYen, tradeID, counterpartyName, itemDescription)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) RecordCredit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error) {
	args := m.Called(ctx, userID, amountYen, tradeID, counterpartyName, itemDescription)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfiles is a mock implementation of the ProfileProvider interface
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) ProfileFor(ctx context.Context, userID string) (CompanyProfile, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(CompanyProfile), args.Bool(1), args.Error(2)
}

type testDeps struct {
	repo     *MockRepository
	remote   *MockRemoteStore
	ledger   *MockLedger
	profiles *MockProfiles
}

var testNow = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

func newTestService() (Service, *testDeps) {
	deps := &testDeps{
		repo:     new(MockRepository),
		remote:   new(MockRemoteStore),
		ledger:   new(MockLedger),
		profiles: new(MockProfiles),
	}
	svc := NewService(deps.repo, deps.remote, deps.ledger, nil, deps.profiles, zap.NewNop())
	svc.(*tradeService).now = func() time.Time { return testNow }
	return svc, deps
}

func remoteTrade(status TradeStatus) *Trade {
	return &Trade{
		ID:           "trade-1",
		SellerUserID: "seller-1",
		BuyerUserID:  "buyer-1",
		SellerName:   "Takeda Kiko Co., Ltd.",
		BuyerName:    "Aoba Machinery Inc.",
		Items: []StatementItem{
			{LineID: "l1", ItemName: "NC lathe SL-25", Qty: i64(2), UnitPrice: i64(180000)},
		},
		TaxRate:   DefaultTaxRate,
		Todos:     BuildTodosFromStatus(status),
		Status:    status,
		CreatedAt: testNow.Add(-72 * time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

func TestApproveAdvancesToPaymentRequired(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusApprovalRequired)
	readAt := trade.UpdatedAt

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.remote.On("UpdateTrade", ctx, mock.AnythingOfType("*trades.Trade"), readAt).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.AnythingOfType("*trades.Trade")).Return(nil)

	result, err := svc.Approve(ctx, "trade-1", "buyer-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusPaymentRequired, result.Status)
	assert.NotNil(t, result.ContractDate)
	assert.Equal(t, testNow, *result.ContractDate)

	open := OpenTodo(result.Todos)
	assert.NotNil(t, open)
	assert.Equal(t, TodoApplicationApproved, open.Kind)

	deps.remote.AssertExpectations(t)
	deps.repo.AssertExpectations(t)
}

func TestApprovePreservesExistingContractDate(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusApprovalRequired)
	existing := testNow.Add(-24 * time.Hour)
	trade.ContractDate = &existing

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.Approve(ctx, "trade-1", "buyer-1")

	assert.NoError(t, err)
	assert.Equal(t, existing, *result.ContractDate)
}

func TestApproveRejectsSeller(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusApprovalRequired), nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)

	_, err := svc.Approve(ctx, "trade-1", "seller-1")

	assert.ErrorIs(t, err, ErrNotAllowed)
	deps.remote.AssertNotCalled(t, "UpdateTrade", mock.Anything, mock.Anything, mock.Anything)
	deps.repo.AssertNotCalled(t, "SaveTrade", mock.Anything, mock.Anything)
}

func TestApproveRejectsWrongState(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusConfirmRequired), nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)

	_, err := svc.Approve(ctx, "trade-1", "buyer-1")

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestMarkPaidDebitsBuyerAndFreezesAmount(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusPaymentRequired)

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	// 2 x 180000 at 10% tax.
	deps.ledger.On("RecordDebit", ctx, "buyer-1", int64(396000), "trade-1", "Takeda Kiko Co., Ltd.", "NC lathe SL-25").Return(int64(604000), nil)
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.MarkPaid(ctx, "trade-1", "buyer-1", "bank_transfer")

	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmRequired, result.Status)
	assert.Equal(t, int64(396000), *result.PaymentAmount)
	assert.Equal(t, "bank_transfer", result.PaymentMethod)
	assert.Equal(t, testNow, *result.PaymentDate)

	deps.ledger.AssertExpectations(t)
}

func TestMarkPaidDebitFailureAbortsTransition(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusPaymentRequired), nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.ledger.On("RecordDebit", ctx, "buyer-1", int64(396000), "trade-1", mock.Anything, mock.Anything).
		Return(int64(0), assert.AnError)

	_, err := svc.MarkPaid(ctx, "trade-1", "buyer-1", "bank_transfer")

	assert.Error(t, err)
	deps.remote.AssertNotCalled(t, "UpdateTrade", mock.Anything, mock.Anything, mock.Anything)
	deps.repo.AssertNotCalled(t, "SaveTrade", mock.Anything, mock.Anything)
}

func TestMarkPaidRetriedAfterWriteFailure(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	// First attempt: the debit lands but the remote write fails with a
	// plain network error, so the todo flip never persists.
	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusPaymentRequired), nil).Once()
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.ledger.On("RecordDebit", ctx, "buyer-1", int64(396000), "trade-1", mock.Anything, mock.Anything).
		Return(int64(604000), nil).Once()
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.MarkPaid(ctx, "trade-1", "buyer-1", "bank_transfer")
	assert.Error(t, err)

	// The client retries. The guard still passes because the stored trade
	// never advanced; the ledger is asked again with the same trade ID and
	// skips the posting it already holds, returning the unchanged balance.
	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusPaymentRequired), nil).Once()
	deps.ledger.On("RecordDebit", ctx, "buyer-1", int64(396000), "trade-1", mock.Anything, mock.Anything).
		Return(int64(604000), nil).Once()
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.MarkPaid(ctx, "trade-1", "buyer-1", "bank_transfer")

	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmRequired, result.Status)
	// Both invocations carry the same trade ID, which is the key the
	// ledger's durable debited set dedupes on.
	deps.ledger.AssertNumberOfCalls(t, "RecordDebit", 2)
	deps.ledger.AssertExpectations(t)
}

func TestMarkCompletedCreditsFrozenAmount(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusConfirmRequired)
	frozen := int64(396000)
	trade.PaymentAmount = &frozen
	// An item edit after payment must not change what the seller receives.
	trade.Items[0].UnitPrice = i64(999999)

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.ledger.On("RecordCredit", ctx, "seller-1", frozen, "trade-1", "Aoba Machinery Inc.", "NC lathe SL-25").Return(int64(1396000), nil)
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.MarkCompleted(ctx, "trade-1", "buyer-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Nil(t, OpenTodo(result.Todos))
	assert.Equal(t, testNow, *result.CompletedAt)

	deps.ledger.AssertExpectations(t)
}

func TestMarkCompletedReplayCreditsOnce(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusConfirmRequired)
	frozen := int64(396000)
	trade.PaymentAmount = &frozen

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil).Once()
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.ledger.On("RecordCredit", ctx, "seller-1", frozen, "trade-1", mock.Anything, mock.Anything).
		Return(int64(1396000), nil).Once()
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	completed, err := svc.MarkCompleted(ctx, "trade-1", "buyer-1")
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	// Replaying the completion finds no open payment_confirmed step, so
	// the guard rejects it before the ledger is ever reached.
	deps.remote.On("FetchTrade", ctx, "trade-1").Return(completed, nil).Once()

	_, err = svc.MarkCompleted(ctx, "trade-1", "buyer-1")

	assert.ErrorIs(t, err, ErrNotAllowed)
	deps.ledger.AssertNumberOfCalls(t, "RecordCredit", 1)
}

func TestMarkCompletedConflictRetryCreditsEffectivelyOnce(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	frozen := int64(396000)
	first := remoteTrade(StatusConfirmRequired)
	first.PaymentAmount = &frozen
	second := remoteTrade(StatusConfirmRequired)
	second.PaymentAmount = &frozen
	second.UpdatedAt = first.UpdatedAt.Add(time.Second)

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(nil, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(first, nil).Once()
	deps.repo.On("GetTrade", ctx, "trade-1").Return(second, nil).Once()
	// The credit runs once per attempt; the second invocation is the
	// ledger's skip path, which returns the already-incremented balance
	// without posting a second SALE entry.
	deps.ledger.On("RecordCredit", ctx, "seller-1", frozen, "trade-1", mock.Anything, mock.Anything).
		Return(int64(1396000), nil).Twice()
	deps.repo.On("SaveTradeIf", ctx, mock.Anything, first.UpdatedAt).Return(ErrConflict).Once()
	deps.repo.On("SaveTradeIf", ctx, mock.Anything, second.UpdatedAt).Return(nil).Once()

	result, err := svc.MarkCompleted(ctx, "trade-1", "buyer-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	deps.ledger.AssertExpectations(t)
}

func TestCancelBySellerClosesAllOpenTodos(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusPaymentRequired), nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.remote.On("UpdateTrade", ctx, mock.Anything, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.Cancel(ctx, "trade-1", "seller-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, result.Status)
	assert.Equal(t, RoleSeller, result.CanceledBy)
	assert.Equal(t, testNow, *result.CanceledAt)
	assert.Nil(t, OpenTodo(result.Todos))

	// No money moved.
	deps.ledger.AssertNotCalled(t, "RecordDebit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.ledger.AssertNotCalled(t, "RecordCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelRejectsTerminalTrade(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(remoteTrade(StatusCompleted), nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)

	_, err := svc.Cancel(ctx, "trade-1", "buyer-1")

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestTransitionRetriesOnceOnConflict(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	// The trade lives only in the local cache, so the conditional write
	// goes through SaveTradeIf.
	first := remoteTrade(StatusApprovalRequired)
	second := remoteTrade(StatusApprovalRequired)
	second.UpdatedAt = first.UpdatedAt.Add(time.Second)

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(nil, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(first, nil).Once()
	deps.repo.On("GetTrade", ctx, "trade-1").Return(second, nil).Once()
	deps.repo.On("SaveTradeIf", ctx, mock.Anything, first.UpdatedAt).Return(ErrConflict).Once()
	deps.repo.On("SaveTradeIf", ctx, mock.Anything, second.UpdatedAt).Return(nil).Once()

	result, err := svc.Approve(ctx, "trade-1", "buyer-1")

	assert.NoError(t, err)
	assert.Equal(t, StatusPaymentRequired, result.Status)
	deps.repo.AssertExpectations(t)
}

func TestTransitionGivesUpAfterSecondConflict(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(nil, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(remoteTrade(StatusApprovalRequired), nil).Once()
	deps.repo.On("GetTrade", ctx, "trade-1").Return(remoteTrade(StatusApprovalRequired), nil).Once()
	deps.repo.On("SaveTradeIf", ctx, mock.Anything, mock.Anything).Return(ErrConflict)

	_, err := svc.Approve(ctx, "trade-1", "buyer-1")

	assert.ErrorIs(t, err, ErrConflict)
	deps.repo.AssertNumberOfCalls(t, "SaveTradeIf", 2)
}

func TestGetTradeFallsBackToSeeds(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "seed-trade-0001").Return(nil, nil)
	deps.repo.On("GetTrade", ctx, "seed-trade-0001").Return(nil, nil)

	result, err := svc.GetTrade(ctx, "seed-trade-0001")

	assert.NoError(t, err)
	assert.Equal(t, "seed-trade-0001", result.ID)
	assert.Equal(t, StatusApprovalRequired, result.Status)
}

func TestGetTradeUnknownID(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.remote.On("FetchTrade", ctx, "missing").Return(nil, nil)
	deps.repo.On("GetTrade", ctx, "missing").Return(nil, nil)

	_, err := svc.GetTrade(ctx, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTradesMergesAllSources(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	remote := remoteTrade(StatusApprovalRequired)
	deps.remote.On("FetchTrades", ctx).Return([]Trade{*remote}, nil)
	deps.repo.On("ListTrades", ctx).Return([]Trade{}, nil)

	result, err := svc.ListTrades(ctx)

	assert.NoError(t, err)
	// The remote record plus the two built-in seed records.
	assert.Len(t, result, 3)
}

func TestCreateTradeDenormalizesProfiles(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.profiles.On("ProfileFor", ctx, "seller-1").
		Return(CompanyProfile{Name: "Takeda Kiko Co., Ltd."}, true, nil)
	deps.profiles.On("ProfileFor", ctx, "buyer-1").
		Return(CompanyProfile{Name: "Aoba Machinery Inc.", TaxCategory: TaxCategoryReduced}, true, nil)
	deps.remote.On("CreateTrade", ctx, mock.AnythingOfType("*trades.Trade")).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.AnythingOfType("*trades.Trade")).Return(nil)

	result, err := svc.CreateTrade(ctx, CreateRequest{
		SellerUserID: "seller-1",
		BuyerUserID:  "buyer-1",
		Items:        []StatementItem{{LineID: "l1", ItemName: "Band saw HA-250", Amount: i64(42000)}},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Takeda Kiko Co., Ltd.", result.SellerName)
	assert.Equal(t, "Aoba Machinery Inc.", result.BuyerName)
	assert.Equal(t, ReducedTaxRate, result.TaxRate)
	assert.Equal(t, StatusApprovalRequired, result.Status)

	open := OpenTodo(result.Todos)
	assert.NotNil(t, open)
	assert.Equal(t, TodoApplicationSent, open.Kind)
	assert.Equal(t, RoleBuyer, open.Assignee)

	deps.remote.AssertExpectations(t)
}

func TestCreateTradeRejectsMissingParties(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateTrade(context.Background(), CreateRequest{
		SellerUserID: "seller-1",
		Items:        []StatementItem{{LineID: "l1", Amount: i64(100)}},
	})

	assert.Error(t, err)
}

func TestUpdateShippingBuyerOnly(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	trade := remoteTrade(StatusPaymentRequired)
	shipping := ShippingAddress{Company: "Aoba Machinery Inc.", Address: "1-8-2 Kanda Sudacho, Chiyoda-ku, Tokyo"}

	deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil)
	deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)
	deps.remote.On("UpdateShipping", ctx, "trade-1", shipping, mock.Anything).Return(nil)
	deps.repo.On("SaveTrade", ctx, mock.Anything).Return(nil)

	result, err := svc.UpdateShipping(ctx, "trade-1", "buyer-1", shipping, nil)

	assert.NoError(t, err)
	assert.Equal(t, shipping, *result.Shipping)

	_, err = svc.UpdateShipping(ctx, "trade-1", "seller-1", shipping, nil)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestUpdateShippingRejectsTerminalTrade(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	for _, status := range []TradeStatus{StatusCompleted, StatusCanceled} {
		trade := remoteTrade(status)
		deps.remote.On("FetchTrade", ctx, "trade-1").Return(trade, nil).Once()
		deps.repo.On("GetTrade", ctx, "trade-1").Return(nil, nil)

		_, err := svc.UpdateShipping(ctx, "trade-1", "buyer-1", ShippingAddress{Company: "Aoba Machinery Inc."}, nil)

		assert.ErrorIs(t, err, ErrNotAllowed, "shipping must be frozen at %s", status)
	}
	deps.remote.AssertNotCalled(t, "UpdateShipping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.repo.AssertNotCalled(t, "SaveTrade", mock.Anything, mock.Anything)
}

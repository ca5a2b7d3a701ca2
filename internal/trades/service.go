package trades

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradelink/trade-portal/trade-portal-backend/pkg/workflows"
)

// ErrNotAllowed reports a guard failure: the wrong role, or the wrong
// state, for the attempted transition. It is an expected outcome that
// callers probe for, not an exceptional one.
var ErrNotAllowed = errors.New("transition not allowed for this user in this state")

// ErrNotFound reports that no source holds the trade.
var ErrNotFound = errors.New("trade not found")

// LedgerRecorder applies balance-affecting postings. Amounts are yen.
type LedgerRecorder interface {
	RecordDebit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error)
	RecordCredit(ctx context.Context, userID string, amountYen int64, tradeID, counterpartyName, itemDescription string) (int64, error)
}

// TransitionNotifier delivers trade events to the two parties.
// Implementations must be best-effort and never block a transition.
type TransitionNotifier interface {
	TradeTransitioned(t *Trade, acting Role)
}

// ProfileProvider resolves a party's company profile for denormalization
// onto new trades.
type ProfileProvider interface {
	ProfileFor(ctx context.Context, userID string) (CompanyProfile, bool, error)
}

// CreateRequest is a buyer/seller-authored trade draft.
type CreateRequest struct {
	NaviID          string           `json:"navi_id,omitempty"`
	SellerUserID    string           `json:"seller_user_id"`
	BuyerUserID     string           `json:"buyer_user_id"`
	SellerName      string           `json:"seller_name,omitempty"`
	BuyerName       string           `json:"buyer_name,omitempty"`
	Items           []StatementItem  `json:"items"`
	Shipping        *ShippingAddress `json:"shipping,omitempty"`
	ListingSnapshot *ListingSnapshot `json:"listing_snapshot,omitempty"`
}

type Service interface {
	ListTrades(ctx context.Context) ([]Trade, error)
	GetTrade(ctx context.Context, id string) (*Trade, error)
	CreateTrade(ctx context.Context, req CreateRequest) (*Trade, error)

	Approve(ctx context.Context, id, actingUserID string) (*Trade, error)
	MarkPaid(ctx context.Context, id, actingUserID, paymentMethod string) (*Trade, error)
	MarkCompleted(ctx context.Context, id, actingUserID string) (*Trade, error)
	Cancel(ctx context.Context, id, actingUserID string) (*Trade, error)

	UpdateShipping(ctx context.Context, id, actingUserID string, shipping ShippingAddress, contacts []BuyerContact) (*Trade, error)
	Discrepancies(ctx context.Context, id string) ([]DiscrepancyNote, error)
}

type tradeService struct {
	repo     Repository
	remote   RemoteStore
	ledger   LedgerRecorder
	notifier TransitionNotifier
	profiles ProfileProvider
	sm       *workflows.StateMachine
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, remote RemoteStore, ledger LedgerRecorder, notifier TransitionNotifier, profiles ProfileProvider, logger *zap.Logger) Service {
	return &tradeService{
		repo:     repo,
		remote:   remote,
		ledger:   ledger,
		notifier: notifier,
		profiles: profiles,
		sm:       workflows.NewStateMachine(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *tradeService) ListTrades(ctx context.Context) ([]Trade, error) {
	remote, err := s.remote.FetchTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch remote trades: %w", err)
	}
	local, err := s.repo.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cached trades: %w", err)
	}
	return MergeTrades(remote, local, SeedTrades()), nil
}

func (s *tradeService) GetTrade(ctx context.Context, id string) (*Trade, error) {
	t, _, err := s.loadFresh(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	t.Status = DeriveStatus(t.Todos)
	return t, nil
}

func (s *tradeService) CreateTrade(ctx context.Context, req CreateRequest) (*Trade, error) {
	if req.SellerUserID == "" || req.BuyerUserID == "" {
		return nil, fmt.Errorf("create trade: both party user ids are required")
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("create trade: at least one item is required")
	}

	sellerProfile, _, err := s.profiles.ProfileFor(ctx, req.SellerUserID)
	if err != nil {
		return nil, fmt.Errorf("resolve seller profile: %w", err)
	}
	buyerProfile, _, err := s.profiles.ProfileFor(ctx, req.BuyerUserID)
	if err != nil {
		return nil, fmt.Errorf("resolve buyer profile: %w", err)
	}

	now := s.now()
	t := &Trade{
		ID:              uuid.NewString(),
		NaviID:          req.NaviID,
		SellerUserID:    req.SellerUserID,
		BuyerUserID:     req.BuyerUserID,
		SellerName:      firstNonEmpty(sellerProfile.Name, req.SellerName),
		BuyerName:       firstNonEmpty(buyerProfile.Name, req.BuyerName),
		SellerProfile:   sellerProfile,
		BuyerProfile:    buyerProfile,
		Items:           req.Items,
		TaxRate:         TaxRateForCategory(buyerProfile.TaxCategory),
		Todos:           BuildTodosFromStatus(StatusApprovalRequired),
		Shipping:        req.Shipping,
		ListingSnapshot: req.ListingSnapshot,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t.Status = DeriveStatus(t.Todos)

	if err := t.Validate(); err != nil {
		return nil, err
	}

	// The remote store is authoritative; the cache is refreshed after
	// the write is confirmed so local state never runs ahead of it.
	if err := s.remote.CreateTrade(ctx, t); err != nil {
		return nil, fmt.Errorf("create trade in remote store: %w", err)
	}
	if err := s.repo.SaveTrade(ctx, t); err != nil {
		s.logger.Warn("trade created remotely but cache write failed",
			zap.String("trade_id", t.ID), zap.Error(err))
	}

	s.logger.Info("trade created",
		zap.String("trade_id", t.ID),
		zap.String("seller", t.SellerUserID),
		zap.String("buyer", t.BuyerUserID))
	return t, nil
}

// Approve completes the application step: buyer only, sets contractDate
// once, advances to PAYMENT_REQUIRED. No money moves.
func (s *tradeService) Approve(ctx context.Context, id, actingUserID string) (*Trade, error) {
	return s.applyTransition(ctx, id, actingUserID, func(t *Trade) error {
		if !CanApprove(t, actingUserID) {
			return ErrNotAllowed
		}
		todos, ok := CompleteTodo(t.Todos, TodoApplicationSent)
		if !ok {
			return ErrNotAllowed
		}
		t.Todos = appendNext(todos, TodoApplicationSent)
		if t.ContractDate == nil {
			contractDate := s.now()
			t.ContractDate = &contractDate
		}
		return nil
	})
}

// MarkPaid completes the approval step: freezes the tax-inclusive total
// as paymentAmount, debits the buyer, advances to CONFIRM_REQUIRED. The
// debit fires before the trade is persisted so a failed debit leaves no
// state change behind; a retry after a failed trade write cannot charge
// twice because the ledger dedupes debits by trade ID.
func (s *tradeService) MarkPaid(ctx context.Context, id, actingUserID, paymentMethod string) (*Trade, error) {
	debited := false
	return s.applyTransition(ctx, id, actingUserID, func(t *Trade) error {
		if !CanMarkPaid(t, actingUserID) {
			return ErrNotAllowed
		}
		todos, ok := CompleteTodo(t.Todos, TodoApplicationApproved)
		if !ok {
			return ErrNotAllowed
		}

		totals := CalculateTotals(t.Items, t.TaxRate)
		if !debited {
			if _, err := s.ledger.RecordDebit(ctx, t.BuyerUserID, totals.Total, t.ID, t.SellerName, itemDescription(t.Items)); err != nil {
				return fmt.Errorf("debit buyer: %w", err)
			}
			debited = true
		}

		t.Todos = appendNext(todos, TodoApplicationApproved)
		paymentDate := s.now()
		t.PaymentDate = &paymentDate
		t.PaymentAmount = &totals.Total
		t.PaymentMethod = paymentMethod
		return nil
	})
}

// MarkCompleted confirms receipt: credits the seller exactly once (the
// ledger skips trade IDs it has already credited) and closes the trade.
func (s *tradeService) MarkCompleted(ctx context.Context, id, actingUserID string) (*Trade, error) {
	return s.applyTransition(ctx, id, actingUserID, func(t *Trade) error {
		if !CanMarkCompleted(t, actingUserID) {
			return ErrNotAllowed
		}
		todos, ok := CompleteTodo(t.Todos, TodoPaymentConfirmed)
		if !ok {
			return ErrNotAllowed
		}

		amount := frozenOrCurrentTotal(t)
		if _, err := s.ledger.RecordCredit(ctx, t.SellerUserID, amount, t.ID, t.BuyerName, itemDescription(t.Items)); err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}

		// The completion step closes the trade: the trade_completed item
		// lands already done so no open item remains on a terminal trade.
		t.Todos = append(todos, TodoItem{Kind: TodoTradeCompleted, Assignee: defaultAssignee[TodoTradeCompleted], Status: TodoDone})
		completedAt := s.now()
		t.CompletedAt = &completedAt
		return nil
	})
}

// Cancel closes every open todo and appends a done trade_canceled item.
// Either party may cancel at any non-terminal point; already-posted
// ledger entries are unaffected.
func (s *tradeService) Cancel(ctx context.Context, id, actingUserID string) (*Trade, error) {
	return s.applyTransition(ctx, id, actingUserID, func(t *Trade) error {
		if !CanCancel(t, actingUserID) {
			return ErrNotAllowed
		}
		acting := RoleOf(t, actingUserID)

		todos := make([]TodoItem, len(t.Todos))
		copy(todos, t.Todos)
		for i := range todos {
			if todos[i].Status == TodoOpen {
				todos[i].Status = TodoDone
			}
		}
		t.Todos = append(todos, TodoItem{Kind: TodoTradeCanceled, Assignee: acting, Status: TodoDone})

		canceledAt := s.now()
		t.CanceledAt = &canceledAt
		t.CanceledBy = acting
		return nil
	})
}

func (s *tradeService) UpdateShipping(ctx context.Context, id, actingUserID string, shipping ShippingAddress, contacts []BuyerContact) (*Trade, error) {
	t, origin, err := s.loadFresh(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if RoleOf(t, actingUserID) != RoleBuyer {
		return nil, ErrNotAllowed
	}
	// Terminal records are closed books; the receiving snapshot is part
	// of how goods were (or were not) delivered.
	if t.Terminal() {
		return nil, ErrNotAllowed
	}

	t.Shipping = &shipping
	if contacts != nil {
		t.Contacts = contacts
	}
	t.UpdatedAt = s.now()

	if origin == originRemote {
		if err := s.remote.UpdateShipping(ctx, id, shipping, contacts); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SaveTrade(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tradeService) Discrepancies(ctx context.Context, id string) ([]DiscrepancyNote, error) {
	t, err := s.GetTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	return ListingDiscrepancies(t), nil
}

type tradeOrigin int

const (
	originRemote tradeOrigin = iota
	originLocal
	originSeed
)

// loadFresh reads the freshest copy of a trade: the remote store when it
// has the record, otherwise the local cache, otherwise the seed set.
func (s *tradeService) loadFresh(ctx context.Context, id string) (*Trade, tradeOrigin, error) {
	remote, err := s.remote.FetchTrade(ctx, id)
	if err != nil {
		return nil, originRemote, err
	}
	local, err := s.repo.GetTrade(ctx, id)
	if err != nil {
		return nil, originLocal, err
	}
	if remote != nil {
		// A strictly newer cached copy carries an optimistic edit that
		// has not reached the store yet; prefer it, per the merge policy.
		if local != nil && local.UpdatedAt.After(remote.UpdatedAt) {
			return local, originLocal, nil
		}
		return remote, originRemote, nil
	}
	if local != nil {
		return local, originLocal, nil
	}
	for _, seed := range SeedTrades() {
		if seed.ID == id {
			seedCopy := seed
			return &seedCopy, originSeed, nil
		}
	}
	return nil, originLocal, nil
}

// applyTransition runs the guard-then-mutate sequence with a conditional
// write on updatedAt. On conflict the trade is reloaded and the guard
// re-checked against the freshest stored state before one retry.
func (s *tradeService) applyTransition(ctx context.Context, id, actingUserID string, mutate func(*Trade) error) (*Trade, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		t, origin, err := s.loadFresh(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrNotFound
		}

		before := DeriveStatus(t.Todos)
		expected := t.UpdatedAt

		if err := mutate(t); err != nil {
			return nil, err
		}

		t.Status = DeriveStatus(t.Todos)
		t.UpdatedAt = s.now()

		if before != t.Status && !s.sm.CanTransition(string(before), string(t.Status)) {
			return nil, fmt.Errorf("illegal status transition %s -> %s", before, t.Status)
		}

		if err := s.persist(ctx, t, origin, expected); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.logger.Info("trade transitioned",
			zap.String("trade_id", t.ID),
			zap.String("from", string(before)),
			zap.String("to", string(t.Status)),
			zap.String("acting_user", actingUserID))
		if s.notifier != nil {
			s.notifier.TradeTransitioned(t, RoleOf(t, actingUserID))
		}
		return t, nil
	}
	return nil, lastErr
}

// persist writes the transitioned trade back: ledger effects have already
// been applied, so the authoritative write happens before the cache is
// refreshed and the in-memory result is never ahead of durable state.
func (s *tradeService) persist(ctx context.Context, t *Trade, origin tradeOrigin, expected time.Time) error {
	switch origin {
	case originRemote:
		if err := s.remote.UpdateTrade(ctx, t, expected); err != nil {
			return err
		}
		if err := s.repo.SaveTrade(ctx, t); err != nil {
			s.logger.Warn("remote write confirmed but cache refresh failed",
				zap.String("trade_id", t.ID), zap.Error(err))
		}
		return nil
	case originLocal:
		return s.repo.SaveTradeIf(ctx, t, expected)
	default: // seed record entering the cache for the first time
		return s.repo.SaveTrade(ctx, t)
	}
}

// appendNext appends the open follow-on todo for a just-completed kind,
// when the fixed table defines one.
func appendNext(todos []TodoItem, completed TodoKind) []TodoItem {
	next, ok := nextTodoKind[canonicalKind(completed)]
	if !ok {
		return todos
	}
	return append(todos, TodoItem{Kind: next, Assignee: defaultAssignee[next], Status: TodoOpen})
}

// frozenOrCurrentTotal prefers the payment amount frozen at approval
// time; later item edits must not change what the seller is credited.
func frozenOrCurrentTotal(t *Trade) int64 {
	if t.PaymentAmount != nil {
		return *t.PaymentAmount
	}
	return CalculateTotals(t.Items, t.TaxRate).Total
}

func itemDescription(items []StatementItem) string {
	if len(items) == 0 {
		return ""
	}
	name := items[0].ItemName
	if len(items) > 1 {
		name = fmt.Sprintf("%s and %d more", name, len(items)-1)
	}
	return strings.TrimSpace(name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

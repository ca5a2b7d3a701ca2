package notifications

import (
	"time"

	"go.uber.org/zap"

	"tradelink/trade-portal/trade-portal-backend/internal/notifications/websocket"
	"tradelink/trade-portal/trade-portal-backend/internal/trades"
)

// Service fans workflow transitions out to the two parties over WebSocket.
// Delivery is best effort: a party that is not connected just misses the
// push and picks the change up on the next list.
type Service struct {
	manager *websocket.Manager
	logger  *zap.Logger
}

func NewService(manager *websocket.Manager, logger *zap.Logger) *Service {
	return &Service{manager: manager, logger: logger}
}

// TradeTransitioned notifies both parties that the trade moved.
func (s *Service) TradeTransitioned(t *trades.Trade, acting trades.Role) {
	event := TradeEvent{
		TradeID:    t.ID,
		Status:     string(t.Status),
		ActingRole: string(acting),
		OccurredAt: t.UpdatedAt,
	}
	message := websocket.Message{
		Type: websocket.MessageTypeTradeEvent,
		Data: map[string]interface{}{
			"trade_id":    event.TradeID,
			"status":      event.Status,
			"acting_role": event.ActingRole,
			"occurred_at": event.OccurredAt,
		},
		Timestamp: time.Now(),
	}

	for _, userID := range []string{t.BuyerUserID, t.SellerUserID} {
		if userID == "" {
			continue
		}
		if err := s.manager.SendToUser(userID, message); err != nil {
			s.logger.Debug("trade event not delivered",
				zap.String("trade_id", t.ID),
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
}

package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelink/trade-portal/trade-portal-backend/internal/auth"
	"tradelink/trade-portal/trade-portal-backend/internal/notifications/websocket"
)

type Handler struct {
	manager *websocket.Manager
}

func NewHandler(manager *websocket.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/notifications", h.Connect)
}

func (h *Handler) Connect(c *gin.Context) {
	userID := auth.ActingUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}
	if _, err := h.manager.HandleConnection(c.Writer, c.Request, userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

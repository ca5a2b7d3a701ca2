package ledger

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelink/trade-portal/trade-portal-backend/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/ledger")
	{
		group.GET("/balance", h.Balance)
		group.GET("/entries", h.Entries)
	}
}

func (h *Handler) Balance(c *gin.Context) {
	userID := auth.ActingUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), userID)
	if errors.Is(err, ErrUnknownParty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no account for user"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance_yen": balance})
}

func (h *Handler) Entries(c *gin.Context) {
	userID := auth.ActingUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	entries, err := h.service.Entries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

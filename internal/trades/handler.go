package trades

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
	trades := rg.Group("/trades")
	{
		trades.GET("/records", h.List)
		trades.POST("/records", h.Create)
		trades.PATCH("/records/:id", h.Transition)
		trades.GET("/:id", h.Get)
		trades.PATCH("/:id/shipping", h.UpdateShipping)
		trades.GET("/:id/discrepancies", h.Discrepancies)
	}
}

func (h *Handler) List(c *gin.Context) {
	merged, err := h.service.ListTrades(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}

func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.GetTrade(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "trade not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.CreateTrade(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Transition applies a progress transition. The target status names the
// state the caller wants the trade in; the acting user arrives
// out-of-band (JWT claim or X-User-ID header).
func (h *Handler) Transition(c *gin.Context) {
	id := c.Param("id")
	actingUserID := auth.ActingUser(c)
	if actingUserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	var req struct {
		Status        TradeStatus `json:"status"`
		PaymentMethod string      `json:"payment_method,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		t   *Trade
		err error
	)
	ctx := c.Request.Context()
	switch req.Status {
	case StatusPaymentRequired:
		t, err = h.service.Approve(ctx, id, actingUserID)
	case StatusConfirmRequired:
		t, err = h.service.MarkPaid(ctx, id, actingUserID, req.PaymentMethod)
	case StatusCompleted:
		t, err = h.service.MarkCompleted(ctx, id, actingUserID)
	case StatusCanceled:
		t, err = h.service.Cancel(ctx, id, actingUserID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target status"})
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "trade not found"})
	case errors.Is(err, ErrNotAllowed):
		// Expected outcome when the UI probes an action the gate denies.
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "trade was modified concurrently, retry"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, t)
	}
}

func (h *Handler) UpdateShipping(c *gin.Context) {
	id := c.Param("id")
	actingUserID := auth.ActingUser(c)
	if actingUserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	var req struct {
		Shipping ShippingAddress `json:"shipping"`
		Contacts []BuyerContact  `json:"contacts,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpdateShipping(c.Request.Context(), id, actingUserID, req.Shipping, req.Contacts)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "trade not found"})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, t)
	}
}

func (h *Handler) Discrepancies(c *gin.Context) {
	notes, err := h.service.Discrepancies(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "trade not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discrepancies": notes})
}

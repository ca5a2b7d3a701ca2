package proposals

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

// RegisterRoutes registers the proposal surface. The status-only PATCH
// lives under /trades/:id because proposals and trades share an ID
// namespace for the approval step of the precursor flow.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/trades/:id", h.Decide)

	group := rg.Group("/proposals")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var p Proposal
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateProposal(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c *gin.Context) {
	userID := auth.ActingUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	proposals, err := h.service.ListProposals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetProposal(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Decide(c *gin.Context) {
	actingUserID := auth.ActingUser(c)
	if actingUserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user is required"})
		return
	}

	var req struct {
		Status ProposalStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Decide(c.Request.Context(), c.Param("id"), req.Status, actingUserID)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, p)
	}
}

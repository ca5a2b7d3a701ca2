package parties

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelink/trade-portal/trade-portal-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/parties")
	{
		group.GET("/:id", h.GetProfile)
		group.PUT("/:id", h.UpdateProfile)
		group.GET("/:id/contacts", h.ListContacts)
		group.POST("/:id/contacts", h.AddContact)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.Param("id")
	if auth.ActingUser(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only update own profile"})
		return
	}

	var profile Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile.UserID = userID

	if err := h.service.UpdateProfile(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.service.ListContacts(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) AddContact(c *gin.Context) {
	userID := c.Param("id")
	if auth.ActingUser(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only edit own contacts"})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	contact, err := h.service.AddContact(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, contact)
}

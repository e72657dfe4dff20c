package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/services"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: profiles}
}

// GetProfile is GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.ProfileService.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile is PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	current, err := h.ProfileService.Load(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile: " + err.Error()})
		return
	}

	profile := req.ToProfile(current)
	if err := h.ProfileService.Save(ctx, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

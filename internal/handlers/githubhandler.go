package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/automate/internal/auth"
	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/services"
)

type GitHubHandler struct {
	// Auth is nil when no OAuth app is configured.
	Auth           *auth.GitHubAuth
	ProfileService *services.ProfileService
}

func NewGitHubHandler(a *auth.GitHubAuth, profiles *services.ProfileService) *GitHubHandler {
	return &GitHubHandler{Auth: a, ProfileService: profiles}
}

// Connect is GET /github/connect
func (h *GitHubHandler) Connect(c *gin.Context) {
	if h.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub connect is not configured"})
		return
	}

	ctx := c.Request.Context()
	profile, err := h.ProfileService.Load(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile: " + err.Error()})
		return
	}

	url, err := h.Auth.Begin(ctx, profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start GitHub connect: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Callback is GET /github/callback?code=&state=
func (h *GitHubHandler) Callback(c *gin.Context) {
	if h.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub connect is not configured"})
		return
	}

	ctx := c.Request.Context()
	user, pending, err := h.Auth.Complete(ctx, c.Query("code"), c.Query("state"))
	switch {
	case errors.Is(err, auth.ErrMissingCode), errors.Is(err, auth.ErrStateMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, auth.ErrNoAccessToken):
		log.Printf("❌ GitHub token exchange failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": auth.ErrNoAccessToken.Error()})
		return
	case err != nil:
		log.Printf("❌ GitHub callback failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch user data from GitHub"})
		return
	}

	profile, err := h.ProfileService.LinkGitHub(ctx, user.Login, pending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.GitHubCallbackResponse{
		Login:   user.Login,
		Name:    user.Name,
		Profile: profile,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/services"
)

type JobHandler struct {
	JobService     *services.JobService
	ProfileService *services.ProfileService
	LLMService     *services.LLMService
}

func NewJobHandler(jobs *services.JobService, profiles *services.ProfileService, llm *services.LLMService) *JobHandler {
	return &JobHandler{
		JobService:     jobs,
		ProfileService: profiles,
		LLMService:     llm,
	}
}

// ListJobs is GET /jobs?q=&type=&location=
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to fetch jobs: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load jobs. Please try again later.",
			"jobs":  []any{},
		})
		return
	}

	filtered := services.MatchJobs(jobs, services.JobFilter{
		Term:     c.Query("q"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
	})
	c.JSON(http.StatusOK, gin.H{"jobs": filtered, "total": len(jobs)})
}

// SearchJobs is POST /jobs/search; it bypasses the cache.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.JobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	jobs, err := h.JobService.Search(c.Request.Context(), req.Search, req.Location)
	if err != nil {
		log.Printf("❌ Job search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load jobs. Please try again later.",
			"jobs":  []any{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

// GetJob is GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found in cache. Please return to the jobs page and try again."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job details: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// AnalyzeJob is POST /jobs/:id/analyze
func (h *JobHandler) AnalyzeJob(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.JobService.Get(ctx, c.Param("id"))
	if errors.Is(err, services.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found in cache. Please return to the jobs page and try again."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job details: " + err.Error()})
		return
	}

	profile, err := h.ProfileService.Load(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile: " + err.Error()})
		return
	}

	analysis, err := h.LLMService.AnalyzeJob(ctx, *job, profile)
	if errors.Is(err, services.ErrLLMDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI analysis failed: " + err.Error()})
		return
	}

	// RawMessage keeps the model's JSON from being escaped into a string
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(analysis),
	})
}

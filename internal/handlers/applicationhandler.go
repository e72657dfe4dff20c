package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: apps}
}

// CreateSession is POST /applications
func (h *ApplicationHandler) CreateSession(c *gin.Context) {
	var req dtos.CreateApplicationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	id, seq, err := h.ApplicationService.Create(c.Request.Context(), req.JobIDs)
	if err != nil {
		writeApplicationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(id, seq))
}

// GetSession is GET /applications/:id
func (h *ApplicationHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	seq, err := h.ApplicationService.Get(id)
	if err != nil {
		writeApplicationError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(id, seq))
}

// Start is POST /applications/:id/start
func (h *ApplicationHandler) Start(c *gin.Context) {
	h.step(c, h.ApplicationService.Start)
}

// Advance is POST /applications/:id/advance
func (h *ApplicationHandler) Advance(c *gin.Context) {
	h.step(c, h.ApplicationService.Advance)
}

// Restart is POST /applications/:id/restart
func (h *ApplicationHandler) Restart(c *gin.Context) {
	h.step(c, h.ApplicationService.Restart)
}

// CloseSession is DELETE /applications/:id
func (h *ApplicationHandler) CloseSession(c *gin.Context) {
	if err := h.ApplicationService.Close(c.Param("id")); err != nil {
		writeApplicationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) step(c *gin.Context, op func(string) (*services.Sequencer, error)) {
	id := c.Param("id")
	seq, err := op(id)
	if err != nil {
		writeApplicationError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, sessionResponse(id, seq))
}

func sessionResponse(id string, seq *services.Sequencer) dtos.ApplicationSessionResponse {
	snap := seq.Snapshot()
	return dtos.ApplicationSessionResponse{
		ID:           id,
		Cursor:       snap.Cursor,
		Submitting:   snap.Submitting,
		Applications: snap.Applications,
		Progress:     snap.Progress,
	}
}

func writeApplicationError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNoJobsSelected), errors.Is(err, services.ErrNoCachedJobs):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSubmissionInFlight),
		errors.Is(err, services.ErrSequenceActive),
		errors.Is(err, services.ErrNothingPending),
		errors.Is(err, services.ErrNoCurrentApplication),
		errors.Is(err, services.ErrSequencerClosed):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

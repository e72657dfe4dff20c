package dtos

import "github.com/justsurfingit/automate/internal/models"

type JobSearchRequest struct {
	Search   string `json:"search" binding:"required"`
	Location string `json:"location,omitempty"`
}

// ApplyJob is the subset of a job the application server needs.
type ApplyJob struct {
	ID           string `json:"id"`
	Company      string `json:"company"`
	PositionName string `json:"positionName"`
	URL          string `json:"url,omitempty"`
}

type ApplyRequest struct {
	Job  ApplyJob       `json:"job"`
	User models.Profile `json:"user"`
}

type ApplyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CreateApplicationsRequest struct {
	JobIDs []string `json:"jobIds" binding:"required"`
}

// ApplicationProgress mirrors the summary bar of the applications page.
type ApplicationProgress struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Success    int `json:"success"`
	Failed     int `json:"failed"`
	Processed  int `json:"processed"`
	Total      int `json:"total"`
}

type ApplicationSessionResponse struct {
	ID           string                  `json:"id"`
	Cursor       int                     `json:"cursor"`
	Submitting   bool                    `json:"submitting"`
	Applications []models.JobApplication `json:"applications"`
	Progress     ApplicationProgress     `json:"progress"`
}

package services

import (
	"slices"
	"strings"

	"github.com/justsurfingit/automate/internal/models"
)

// JobFilter narrows a listing the way the jobs page search bar does.
// Zero fields match everything.
type JobFilter struct {
	Term     string
	Type     string
	Location string
}

// MatchJobs keeps the jobs that satisfy every rule of f, in order.
func MatchJobs(jobs []models.Job, f JobFilter) []models.Job {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	matched := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		// --- RULE 1: free text against position, company or description ---
		if term != "" &&
			!strings.Contains(strings.ToLower(job.PositionName), term) &&
			!strings.Contains(strings.ToLower(job.Company), term) &&
			!strings.Contains(strings.ToLower(job.Description), term) {
			continue
		}

		// --- RULE 2: exact employment type ---
		if f.Type != "" && !slices.Contains(job.JobType, f.Type) {
			continue
		}

		// --- RULE 3: location substring ---
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}

		matched = append(matched, job)
	}
	return matched
}

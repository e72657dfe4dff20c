package models

import (
	"time"
)

// StorageEntry is one row of the key/value store that backs every cached
// page state (job list, profile, OAuth handshake).
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;column:storage_key;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchInput echoes the query the scraper ran for a job.
type SearchInput struct {
	Country  string `json:"country"`
	Location string `json:"location"`
	Position string `json:"position"`
}

// Job is a listing as returned by the remote scraping API.
type Job struct {
	ID                string      `json:"id"`
	Company           string      `json:"company"`
	PositionName      string      `json:"positionName"`
	Description       string      `json:"description"`
	DescriptionHTML   string      `json:"descriptionHTML,omitempty"`
	Location          string      `json:"location"`
	JobType           []string    `json:"jobType"`
	Salary            string      `json:"salary"`
	URL               string      `json:"url"`
	ExternalApplyLink string      `json:"externalApplyLink"`
	PostedAt          string      `json:"postedAt"`
	PostingDateParsed string      `json:"postingDateParsed,omitempty"`
	ScrapedAt         string      `json:"scrapedAt,omitempty"`
	IsExpired         bool        `json:"isExpired"`
	Rating            float64     `json:"rating"`
	ReviewsCount      int         `json:"reviewsCount"`
	SearchInput       SearchInput `json:"searchInput"`
}

// Profile is the applicant data sent along with every submission.
type Profile struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Github         string `json:"github,omitempty"`
	GithubUsername string `json:"githubUsername,omitempty"`
	Linkedin       string `json:"linkedin,omitempty"`
	Devpost        string `json:"devpost,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	ZipCode        string `json:"zipCode,omitempty"`
	Country        string `json:"country,omitempty"`
}

type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusProcessing ApplicationStatus = "processing"
	StatusSuccess    ApplicationStatus = "success"
	StatusFailed     ApplicationStatus = "failed"
)

// Done reports whether the status is terminal for the current attempt.
func (s ApplicationStatus) Done() bool {
	return s == StatusSuccess || s == StatusFailed
}

// JobApplication tracks one submission attempt. The identifying fields are
// copied from a Job when the list is built and never change afterwards.
type JobApplication struct {
	ID                string            `json:"id"`
	Company           string            `json:"company"`
	PositionName      string            `json:"positionName"`
	Status            ApplicationStatus `json:"status"`
	StatusMessage     string            `json:"statusMessage,omitempty"`
	AppliedAt         *time.Time        `json:"appliedAt,omitempty"`
	ExternalApplyLink string            `json:"externalApplyLink,omitempty"`
	URL               string            `json:"url,omitempty"`
}

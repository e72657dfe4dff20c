package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dtos.JobSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "go developer", req.Search)
		assert.Equal(t, "Remote", req.Location)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Job{
			{ID: "1", Company: "Stripe", PositionName: "Backend Intern", JobType: []string{"Internship"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	jobs, err := c.SearchJobs(context.Background(), dtos.JobSearchRequest{Search: "go developer", Location: "Remote"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Stripe", jobs[0].Company)
	assert.Equal(t, []string{"Internship"}, jobs[0].JobType)
}

func TestClient_SearchJobs_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).SearchJobs(context.Background(), dtos.JobSearchRequest{Search: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Apply(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "accepted",
			status:      http.StatusOK,
			body:        `{"success":true,"message":"Applied"}`,
			wantSuccess: true,
			wantMessage: "Applied",
		},
		{
			name:        "rejected",
			status:      http.StatusOK,
			body:        `{"success":false,"message":"Already applied"}`,
			wantMessage: "Already applied",
		},
		{
			name:        "error status without message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"detail":"bad"}`,
			wantMessage: "application server returned 422",
		},
		{
			name:    "undecodable body",
			status:  http.StatusOK,
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/apply", r.URL.Path)
				var req dtos.ApplyRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "job-1", req.Job.ID)
				assert.Equal(t, "Ada", req.User.FirstName)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(srv.URL, nil).Apply(context.Background(), dtos.ApplyRequest{
				Job:  dtos.ApplyJob{ID: "job-1", Company: "Stripe", PositionName: "Intern"},
				User: models.Profile{FirstName: "Ada"},
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestClient_Apply_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Apply(context.Background(), dtos.ApplyRequest{})
	assert.Error(t, err)
}

// Package scraper talks to the remote job scraping and application service.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a plain client
// with no timeout: submissions drive a real browser on the other side and
// may take minutes, so callers bound them with their context instead.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SearchJobs calls POST /jobs.
func (c *Client) SearchJobs(ctx context.Context, req dtos.JobSearchRequest) ([]models.Job, error) {
	resp, err := c.post(ctx, "/jobs", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("error fetching jobs: %d", resp.StatusCode)
	}

	var jobs []models.Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

// Apply calls POST /apply. The returned error is non-nil only for transport
// or decoding failures; a rejected application comes back as Success=false.
func (c *Client) Apply(ctx context.Context, req dtos.ApplyRequest) (*dtos.ApplyResponse, error) {
	resp, err := c.post(ctx, "/apply", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out dtos.ApplyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode apply response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Success = false
		if out.Message == "" {
			out.Message = fmt.Sprintf("application server returned %d", resp.StatusCode)
		}
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	return resp, nil
}

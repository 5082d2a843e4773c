// Package ats integrates the Workable applicant tracking system.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seedtech/candidate-matcher/internal/parsing"
	"github.com/seedtech/candidate-matcher/internal/types"
)

// Client talks to the Workable SPI v3. All requests pass through a rate
// limiter so bulk runs stay inside the ATS quota.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient builds a Workable client for the given account subdomain.
// callDelay is the minimum interval between requests.
func NewClient(subdomain, apiKey string, callDelay time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	limit := rate.Inf
	if callDelay > 0 {
		limit = rate.Every(callDelay)
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://%s.workable.com/spi/v3", subdomain),
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("workable api key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("workable request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("workable api %s: status %d: %s", path, resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding workable response %s: %w", path, err)
	}
	return nil
}

// JobSummary is one entry of the job listing endpoint.
type JobSummary struct {
	Title     string `json:"title"`
	Shortcode string `json:"shortcode"`
	State     string `json:"state,omitempty"`
}

// ListJobs fetches up to limit job postings.
func (c *Client) ListJobs(ctx context.Context, limit int) ([]JobSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var response struct {
		Jobs []JobSummary `json:"jobs"`
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.do(ctx, http.MethodGet, "/jobs", query, nil, &response); err != nil {
		return nil, err
	}
	return response.Jobs, nil
}

// ListCandidates fetches up to limit candidate summaries.
func (c *Client) ListCandidates(ctx context.Context, limit int) ([]types.CandidateRef, error) {
	if limit <= 0 {
		limit = 50
	}
	var response struct {
		Candidates []types.CandidateRef `json:"candidates"`
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.do(ctx, http.MethodGet, "/candidates", query, nil, &response); err != nil {
		return nil, err
	}
	return response.Candidates, nil
}

// Job fetches one job posting and parses it into the internal model.
func (c *Client) Job(ctx context.Context, shortcode string) (*types.Job, error) {
	var record parsing.JobRecord
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(shortcode), nil, nil, &record); err != nil {
		return nil, err
	}
	record.ID = shortcode
	return parsing.ParseJob(&record), nil
}

// Candidate fetches one candidate profile and parses it into the internal
// model.
func (c *Client) Candidate(ctx context.Context, id string) (*types.Candidate, error) {
	var record parsing.CandidateRecord
	if err := c.do(ctx, http.MethodGet, "/candidates/"+url.PathEscape(id), nil, nil, &record); err != nil {
		return nil, err
	}
	record.ID = id
	return parsing.ParseCandidate(&record), nil
}

// JobCandidates lists the candidates attached to a job posting.
func (c *Client) JobCandidates(ctx context.Context, shortcode string) ([]types.CandidateRef, error) {
	var response struct {
		Candidates []types.CandidateRef `json:"candidates"`
	}
	path := "/jobs/" + url.PathEscape(shortcode) + "/candidates"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &response); err != nil {
		return nil, err
	}
	return response.Candidates, nil
}

// AddComment posts a comment on a candidate, scoped to a job.
func (c *Client) AddComment(ctx context.Context, candidateID, jobShortcode, comment string) error {
	body := map[string]any{
		"comment": map[string]string{
			"body":         comment,
			"jobShortcode": jobShortcode,
		},
	}
	path := "/candidates/" + url.PathEscape(candidateID) + "/comments"
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

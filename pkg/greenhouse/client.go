// Package greenhouse wraps the Harvest-compatible recruiting API the board is
// built against. The client only covers the resources the public board needs:
// jobs, job posts, users, and candidate creation.
//
// Authentication is HTTP Basic with the API key as username and an empty
// password. Write calls additionally require an On-Behalf-Of identity header.
package greenhouse

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production Harvest endpoint.
	DefaultBaseURL = "https://harvest.greenhouse.io/v1"

	defaultTimeout = 30 * time.Second

	headerOnBehalfOf = "On-Behalf-Of"
)

// Option configures a Client before construction.
type Option func(*Client)

// WithBaseURL overrides the upstream endpoint, mainly for tests.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds each upstream round-trip. Ignored when a custom HTTP
// client is injected after it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 && c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// Client talks to the upstream recruiting API. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	onBehalfOf string
	httpClient *http.Client
}

// New constructs a Client. apiKey is the Harvest API key; onBehalfOf is the
// upstream user ID stamped on write requests.
func New(apiKey, onBehalfOf string, options ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("greenhouse: api key is required")
	}

	client := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		onBehalfOf: strings.TrimSpace(onBehalfOf),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(client)
	}
	return client, nil
}

// authHeader encodes the API key with an empty password per the upstream
// Basic auth scheme.
func (c *Client) authHeader() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":"))
	return "Basic " + encoded
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("greenhouse: build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any, resource, id string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("greenhouse: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &NotFoundError{Resource: resource, ID: id}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("greenhouse: decode %s response: %w", resource, err)
	}
	return nil
}

// ListJobs fetches every job visible to the API key. Callers are expected to
// filter for public visibility themselves.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/jobs", nil)
	if err != nil {
		return nil, err
	}
	var jobs []Job
	if err := c.do(req, &jobs, "jobs", ""); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches one job by ID. Returns NotFoundError on 404.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := c.do(req, &job, "job", id); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobPosts fetches the posts overlay for a job. fullContent requests the
// rendered description alongside the questions.
func (c *Client) ListJobPosts(ctx context.Context, jobID string, fullContent bool) ([]JobPost, error) {
	path := "/jobs/" + url.PathEscape(jobID) + "/job_posts"
	if fullContent {
		path += "?full_content=true"
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var posts []JobPost
	if err := c.do(req, &posts, "job posts", jobID); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.do(req, &user, "user", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateCandidate creates a candidate plus its application entries. The
// configured On-Behalf-Of identity is required by the upstream API.
func (c *Client) CreateCandidate(ctx context.Context, candidate CandidateRequest) (*Candidate, error) {
	if c.onBehalfOf == "" {
		return nil, fmt.Errorf("greenhouse: on-behalf-of user is required for candidate creation")
	}

	payload, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("greenhouse: marshal candidate: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/candidates", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerOnBehalfOf, c.onBehalfOf)

	var created Candidate
	if err := c.do(req, &created, "candidate", ""); err != nil {
		return nil, err
	}
	return &created, nil
}

package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Page is one page of a list response.
type Page struct {
	Items []Job `json:"items"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

type bulkRequest struct {
	IDs       []int64           `json:"ids,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
	SelectAll bool              `json:"select_all,omitempty"`
	Update    *Patch            `json:"update,omitempty"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) ListJobs(ctx context.Context, criteria Criteria) (Page, error) {
	var page Page
	err := c.do(ctx, http.MethodGet, "/jobs?"+criteria.Values().Encode(), nil, &page, "list jobs")
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

func (c *Client) GetJob(ctx context.Context, id int64) (Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, jobPath(id), nil, &job, "get job"); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id int64, patch Patch) (Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPatch, jobPath(id), patch, &job, "update job"); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (c *Client) CreateJob(ctx context.Context, fields Patch) (Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPost, "/jobs", fields, &job, "create job"); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (c *Client) BulkUpdate(ctx context.Context, target BulkTarget, patch Patch) (int, error) {
	body := newBulkRequest(target)
	body.Update = &patch
	var out struct {
		Updated int `json:"updated"`
	}
	if err := c.do(ctx, http.MethodPost, "/jobs/bulk-update", body, &out, "bulk update jobs"); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

func (c *Client) BulkDelete(ctx context.Context, target BulkTarget) (int, error) {
	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodPost, "/jobs/bulk-delete", newBulkRequest(target), &out, "bulk delete jobs"); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func newBulkRequest(target BulkTarget) bulkRequest {
	if !target.SelectAll {
		return bulkRequest{IDs: target.IDs}
	}
	filters := make(map[string]string)
	for k, v := range target.Criteria.queryValues() {
		if k == "size" || len(v) == 0 {
			continue
		}
		filters[k] = v[0]
	}
	return bulkRequest{Filters: filters, SelectAll: true}
}

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, resource string) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", resource, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	logger := log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"request_id": req.Header.Get("X-Request-ID"),
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Debug("request failed")
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()
	logger.WithFields(log.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)}).Debug("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Resource: resource, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Resource string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Resource, e.Code, e.Body)
}

// NotFound reports whether the server answered 404.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

package photodex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.http = hc
	})
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.http.Timeout = d
	})
}

// Client is the photodex SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a photodex API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// UploadRecord identifies a stored object in a change notification.
type UploadRecord struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// SearchResult is a single search hit: a presigned retrieval link and the
// labels the photo is indexed under.
type SearchResult struct {
	URL    string   `json:"url"`
	Labels []string `json:"labels"`
}

// IngestStatus is the service's answer to an ingest request.
type IngestStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IngestPhoto indexes a stored photo by bucket and key. Extra labels are
// merged with the object's metadata tags and the detected labels. bucket may
// be empty to use the service default.
func (c *Client) IngestPhoto(ctx context.Context, bucket, key string, labels []string, jobID string) (IngestStatus, error) {
	body := map[string]any{
		"bucket": bucket,
		"key":    key,
		"job_id": jobID,
	}
	if len(labels) > 0 {
		body["labels"] = labels
	}

	var status IngestStatus
	if err := c.post(ctx, "/v1/photos", body, &status); err != nil {
		return IngestStatus{}, err
	}
	return status, nil
}

// NotifyUpload delivers a storage-change notification. The service ingests
// the first record.
func (c *Client) NotifyUpload(ctx context.Context, records []UploadRecord, jobID string) (IngestStatus, error) {
	body := map[string]any{
		"records": records,
		"job_id":  jobID,
	}

	var status IngestStatus
	if err := c.post(ctx, "/v1/events", body, &status); err != nil {
		return IngestStatus{}, err
	}
	return status, nil
}

// Search runs a free-text query and returns the matching photos.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := c.baseURL + "/v1/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("photodex: build request: %w", err)
	}

	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("photodex: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("photodex: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("photodex: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("photodex: decode response: %w", err)
		}
	}
	return nil
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &parsed) == nil {
		if parsed.Error != "" {
			apiErr.Message = parsed.Error
		} else {
			apiErr.Message = parsed.Message
		}
	}
	return apiErr
}

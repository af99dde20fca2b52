package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Path of the JSON submission endpoint.
const Path = "/api/contact"

// DefaultTimeout bounds a single submission request.
const DefaultTimeout = 15 * time.Second

// Response is the endpoint's reply body.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RemoteError is a non-success reply from the endpoint.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("contact endpoint returned %d: %s", e.StatusCode, e.Message)
}

// Client submits contact forms to a running site over HTTP. It makes
// exactly one attempt per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient targets baseURL (e.g. "http://localhost:8080"). A non-positive
// timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ Submitter = (*Client)(nil)

func (c *Client) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var out Response
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	if resp.StatusCode >= 300 || !out.Success {
		return &RemoteError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	return nil
}

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/containerd/errdefs"
	"github.com/lucsky/cuid"
	log "github.com/sirupsen/logrus"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	retryBaseDelay = 250 * time.Millisecond
)

// Client talks to the strato platform API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) newRequest(method, pathWithQuery string) (*http.Request, error) {
	req, err := http.NewRequest(method, c.baseURL+pathWithQuery, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", cuid.New())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doJSON performs the request and decodes the response body into out.
// Network failures and retryable statuses (429 and 5xx) are retried with a
// linear backoff before giving up. A 404 wraps errdefs.ErrNotFound so
// callers can classify it.
func (c *Client) doJSON(req *http.Request, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(retryBaseDelay * time.Duration(attempt-1))
			log.Debugf("retrying %s %s (attempt %d/%d)", req.Method, req.URL.Path, attempt, maxAttempts)
		}

		log.Debugf("%s %s request-id=%s", req.Method, req.URL.RequestURI(), req.Header.Get("X-Request-Id"))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		log.Debugf("%s %s -> %s", req.Method, req.URL.Path, resp.Status)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("api responded with %s", resp.Status)
			continue
		}

		return decodeResponse(resp, out)
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", apiErrorMessage(resp), errdefs.ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: %s", apiErrorMessage(resp))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode api response: %w", err)
	}
	return nil
}

// apiErrorMessage pulls the error message out of an error response body,
// falling back to the HTTP status line.
func apiErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return resp.Status
}

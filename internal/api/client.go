// Package api is the HTTP client for the CSPM REST API. It covers the three
// surfaces the exporter needs: token minting, license account listing, and
// paginated failed-asset retrieval. The client performs no retries; every
// error is returned to the caller, which decides between aborting the run
// and skipping the account.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// subscriptionKeyHeader is required on every CSPM API call.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// Client talks to one CSPM API host. It is safe for sequential reuse across
// accounts; the exporter never calls it concurrently.
type Client struct {
	baseURL         string
	subscriptionKey string
	creds           models.Credentials
	httpClient      *http.Client
	log             *logrus.Logger
}

// New returns a Client for the given API host. timeout bounds each
// individual request; zero falls back to 60 seconds.
func New(baseURL, subscriptionKey string, creds models.Credentials, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		subscriptionKey: subscriptionKey,
		creds:           creds,
		httpClient:      &http.Client{Timeout: timeout},
		log:             log,
	}
}

// doJSON executes one request and decodes a 2xx response body into out.
// bearer, when non-empty, is sent as an Authorization header. Non-2xx
// responses become an error carrying the API's own error detail when the
// body provides one.
func (c *Client) doJSON(ctx context.Context, method, url string, body any, bearer string, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, c.subscriptionKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": url}).Debug("calling CSPM API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, errorDetail(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, url, err)
	}
	return nil
}

// errorDetail extracts a human-readable message from an error response body.
// It prefers the API's structured error payload ({"error":{"message":...}}
// or {"message":...}) and falls back to a snippet of the raw body.
func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

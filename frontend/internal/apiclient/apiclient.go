package apiclient

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

	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/logger"
	"github.com/studentcollab/collabhub/shared/middleware/metrics"
	"github.com/studentcollab/collabhub/shared/utils"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
	// TokenSource supplies the bearer token for each request; nil or an
	// empty token sends no Authorization header.
	TokenSource func() string
}

// New creates a client for the backend at baseURL. A zero timeout leaves
// requests unbounded.
func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{
			Timeout:   timeout,
			Transport: metrics.BackendTransport(nil),
		},
	}
}

// do is the single, unified helper for making API requests. body, when not
// nil, is sent as JSON.
func (c *APIClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.TokenSource != nil {
		if token := c.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		logger.Log.Warn("backend unavailable", "method", method, "path", path, "error", err)
		return nil, internal_errors.Network(0, "backend unavailable")
	}
	return resp, nil
}

// call performs a request and decodes a 2xx response into out (when out is
// not nil). Any other status is a network failure described by op.
func (c *APIClient) call(ctx context.Context, method, path string, body, out any, op string) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Log.Debug("backend rejected request", "op", op, "status", resp.StatusCode, "body", string(bodyBytes))
		return internal_errors.Network(resp.StatusCode, fmt.Sprintf("failed to %s: backend returned status %d", op, resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := utils.Decode(resp.Body, out); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", op, err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func pathEscape(segment string) string {
	return url.PathEscape(segment)
}

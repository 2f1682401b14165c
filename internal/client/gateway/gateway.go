// Package gateway holds the thin typed request wrappers, one per backend
// service. Each gateway owns its service's base address; callers pass the
// bearer token explicitly on authenticated operations.
//
// Every non-2xx response maps to *RequestError carrying the status code and
// the failed operation. Gateways never branch on specific status codes; that
// policy belongs to the orchestrator.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RequestError reports a non-2xx response from a backend service.
type RequestError struct {
	Op     string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed with status %d", e.Op, e.Status)
}

// apiClient is the shared plumbing under the three gateways.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string, httpClient *http.Client) apiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return apiClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// doJSON issues one request. A non-empty token is attached as a bearer
// authorization header. When out is non-nil the response body is decoded
// into it.
func (c *apiClient) doJSON(ctx context.Context, op, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &RequestError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

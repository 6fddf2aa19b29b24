package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sorteos/correlation"
)

var (
	// ErrTicketUnavailable is the conflict-class failure: the backend
	// rejected a sale because the ticket was no longer AVAILABLE.
	ErrTicketUnavailable = errors.New("ticket no longer available")

	// ErrNotFound means a lookup returned no entity.
	ErrNotFound = errors.New("not found")
)

// APIError is any non-2xx backend response that did not map to a more
// specific error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// Clients talks to the lottery backend. All sub-clients share it.
type Clients struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) (*Clients, error) {
	if baseURL == "" {
		return nil, errors.New("backend base URL is empty")
	}

	return &Clients{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// do issues a request and decodes a 2xx JSON body into out (when out is
// non-nil). Any other status becomes an *APIError carrying the response
// body, so callers can map conflict and not-found cases.
func (c *Clients) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(correlation.HeaderKey, correlation.IDFromContext(ctx))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{
			StatusCode: res.StatusCode,
			Message:    string(resBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("unmarshalling response body: %w", err)
		}
	}

	return nil
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

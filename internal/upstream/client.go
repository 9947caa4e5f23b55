// Package upstream talks to the fighter-statistics API. The API key stays
// server-side; callers never see it. One attempt per fetch, no retries;
// a failed fetch is surfaced as an upstream-unavailable condition.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aristotle-me/fightmatch/internal/fighters"
)

// ErrUnavailable wraps every transport failure and non-2xx response.
var ErrUnavailable = errors.New("upstream unavailable")

type Client interface {
	// Fighters fetches the raw roster response body. rawQuery is the
	// caller's query string (e.g. "limit=10000"), passed through verbatim.
	Fighters(ctx context.Context, rawQuery string) ([]byte, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Fighters(ctx context.Context, rawQuery string) ([]byte, error) {
	url := c.baseURL + "/api/fighters"
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}

// rosterResponse is the upstream envelope: {"data": [FighterRecord, ...]}.
type rosterResponse struct {
	Data []fighters.Fighter `json:"data"`
}

// DecodeRoster parses a roster response body into fighter records.
func DecodeRoster(body []byte) ([]fighters.Fighter, error) {
	var resp rosterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return resp.Data, nil
}

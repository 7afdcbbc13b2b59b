// Package apiclient talks JSON over HTTP to the hotel backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/config"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// HTTPClient implements ports.HotelAPI. It never retries; callers own the
// retry policy.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker

	mu    sync.RWMutex
	token string
}

var _ ports.HotelAPI = (*HTTPClient)(nil)

// NewClient builds a client whose every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb: config.NewCircuitBreaker("Hotel-API"),
	}
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// BreakerState exposes the circuit state for health and metrics.
func (c *HTTPClient) BreakerState() gobreaker.State {
	return c.cb.State()
}

// Ping calls the backend health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return &domain.Error{Kind: domain.KindValidation, Message: "encode request", Err: err}
		}
	}

	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.NewNetworkError(err)
	}
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.NewNetworkError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.Error{Kind: domain.KindServer, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	msg := http.StatusText(resp.StatusCode)
	var body apiError
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.Error{Kind: domain.KindValidation, Message: msg}
	}
	return domain.NewServerError(resp.StatusCode, msg)
}

func itemPath(collection, id string, suffix ...string) string {
	p := fmt.Sprintf("/%s/%s", collection, url.PathEscape(id))
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Client forwards validated requests to the server role and returns the
// server's status and body untouched. GET /items/search responses are
// memoized in the optional cache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	logger  *zerolog.Logger
}

func NewClient(baseURL string, cache *Cache, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

// Forward proxies one request. userID 0 means the call carries no
// X-Sharer-User-Id header. The returned body is raw JSON from the server.
func (cl *Client) Forward(ctx context.Context, method, path string, userID int64, query url.Values, body []byte, requestID string) (int, []byte, error) {
	target := cl.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	cacheable := method == http.MethodGet && path == "/items/search"
	if cacheable {
		if cached := cl.cache.Get(ctx, target); cached != nil {
			cl.logger.Debug().Str("path", path).Msg("search served from cache")
			return http.StatusOK, cached, nil
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-Sharer-User-Id", strconv.FormatInt(userID, 10))
	}
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("forward %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	if cacheable && resp.StatusCode == http.StatusOK {
		cl.cache.Set(ctx, target, respBody)
	}

	cl.logger.Info().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("forwarded request")
	return resp.StatusCode, respBody, nil
}

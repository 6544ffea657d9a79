package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every outbound request. Yahoo rejects the
// default Go user agent with HTTP 429/403, so we present a browser string.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// httpClient is shared by all providers so connections are pooled.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// ErrHTTP is returned when a request completes with a non-success status.
type ErrHTTP struct {
	StatusCode int
	URL        string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// DoGet performs a GET request with the default User-Agent plus any extra
// headers, and returns the response body and status code. The caller owns
// the body and must close it. Transport-level failures return an error;
// non-2xx statuses do not — callers decide how to treat them.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.StatusCode, nil
}

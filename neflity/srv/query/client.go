package query

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 1 << 20

// Client queries an external status service for a game server's state.
type Client interface {
	Query(ctx context.Context, ip string, port int, game string) (Info, error)
}

// httpClient queries a gameserveranalytics style endpoint with a single GET.
type httpClient struct {
	url    string
	client *http.Client
}

// NewClient returns a Client sending requests to endpoint. timeout bounds the
// whole request, including reading the body.
func NewClient(endpoint string, timeout time.Duration) Client {
	return &httpClient{
		url: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Query issues GET <endpoint>?ip=<ip>&port=<port>&game=<game>. Every error it
// returns matches ErrPollFailure.
func (c *httpClient) Query(ctx context.Context, ip string, port int, game string) (Info, error) {
	u, err := RequestURL(c.url, ip, port, game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}
	info, err := decodeInfo(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayload, err)
	}
	return info, nil
}

// RequestURL builds the query URL for a server, keeping any query parameters
// already present on endpoint.
func RequestURL(endpoint, ip string, port int, game string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid status endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("ip", ip)
	q.Set("port", strconv.Itoa(port))
	q.Set("game", game)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

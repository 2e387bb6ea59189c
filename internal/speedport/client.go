package speedport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
)

const (
	// statusPath is the router's unauthenticated status document.
	statusPath = "/data/Status.json"

	// defaultFetchTimeout bounds the whole GET including reading the body.
	defaultFetchTimeout = 5 * time.Second

	// maxBodySize guards against a misbehaving device streaming forever.
	// Real Status.json documents are a few kilobytes.
	maxBodySize = 1 << 20 // 1MB
)

// Client fetches the status document from a single router.
//
// Thread Safety: Fetch is safe for concurrent use, although the poll loop
// only ever calls it from one goroutine.
type Client struct {
	statusURL  string
	httpClient *http.Client
}

// NewClient creates a Client for the router at cfg.URL.
func NewClient(cfg config.RouterConfig) *Client {
	return newClient(cfg, defaultFetchTimeout)
}

func newClient(cfg config.RouterConfig, timeout time.Duration) *Client {
	return &Client{
		statusURL: strings.TrimRight(cfg.URL, "/") + statusPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StatusURL returns the full URL that Fetch requests.
func (c *Client) StatusURL() string {
	return c.statusURL
}

// Fetch retrieves Status.json and returns the parsed Snapshot.
//
// Parameters:
//   - ctx: Context for cancellation; the request is additionally bounded
//     by a 5 second timeout
//
// Returns:
//   - Snapshot: Fields reported by the router
//   - error: Wraps ErrFetchFailed on transport, HTTP status, or JSON errors
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	items, err := c.fetchItems(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Parse(items), nil
}

// fetchItems performs the GET and decodes the item array.
func (c *Client) fetchItems(ctx context.Context) ([]StatusItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain body to allow connection reuse
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailed, resp.StatusCode, c.statusURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetchFailed, err)
	}

	return decodeItems(body)
}

// decodeItems decodes a Status.json body. Anything other than a JSON array
// of objects is rejected.
func decodeItems(body []byte) ([]StatusItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: response is not a JSON array", ErrFetchFailed)
	}

	var items []StatusItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetchFailed, err)
	}

	return items, nil
}
